package output

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/jmylchreest/domassert/pkg/suite"
)

// TextWriter renders reports for a terminal.
type TextWriter struct {
	w       *bufio.Writer
	verbose bool

	pass  *color.Color
	fail  *color.Color
	faint *color.Color
	bold  *color.Color
}

// NewTextWriter creates a text writer. Passing checks are only listed when
// verbose is set.
func NewTextWriter(w io.Writer, colorize, verbose bool) *TextWriter {
	tw := &TextWriter{
		w:       bufio.NewWriter(w),
		verbose: verbose,
		pass:    color.New(color.FgGreen),
		fail:    color.New(color.FgRed, color.Bold),
		faint:   color.New(color.Faint),
		bold:    color.New(color.Bold),
	}
	for _, c := range []*color.Color{tw.pass, tw.fail, tw.faint, tw.bold} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return tw
}

// Write renders report immediately.
func (w *TextWriter) Write(report *suite.Report) error {
	fmt.Fprintln(w.w, w.bold.Sprint(report.Suite))

	for _, page := range report.Pages {
		if page.Error != "" {
			fmt.Fprintf(w.w, "  %s %s\n", w.fail.Sprint("ERROR"), page.Source)
			fmt.Fprintf(w.w, "        %s\n", page.Error)
			continue
		}

		fmt.Fprintf(w.w, "  %s %s\n", page.Source,
			w.faint.Sprintf("(%d, %s)", page.StatusCode, humanize.Bytes(uint64(page.Bytes))))
		for _, c := range page.Checks {
			if c.Passed {
				if w.verbose {
					fmt.Fprintf(w.w, "    %s %s\n", w.pass.Sprint("PASS"), c.Name)
				}
				continue
			}
			fmt.Fprintf(w.w, "    %s %s\n", w.fail.Sprint("FAIL"), c.Name)
			for _, msg := range c.Failures {
				fmt.Fprintf(w.w, "         %s\n", msg)
			}
		}
	}

	status := w.pass.Sprint("ok")
	if report.HasFailures() {
		status = w.fail.Sprint("FAILED")
	}
	fmt.Fprintf(w.w, "%s: %d passed, %d failed in %s\n\n",
		status, report.Passed, report.Failed, report.Duration.Round(time.Millisecond))
	return w.w.Flush()
}

// Flush flushes the buffer.
func (w *TextWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *TextWriter) Close() error {
	return w.Flush()
}
