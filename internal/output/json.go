package output

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/jmylchreest/domassert/pkg/suite"
)

// JSONWriter writes reports as JSON.
type JSONWriter struct {
	w       *bufio.Writer
	pretty  bool
	indent  string
	reports []*suite.Report
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *JSONWriter {
	return &JSONWriter{
		w:       bufio.NewWriter(w),
		pretty:  pretty,
		indent:  indent,
		reports: make([]*suite.Report, 0),
	}
}

// Write buffers a report.
func (w *JSONWriter) Write(report *suite.Report) error {
	w.reports = append(w.reports, report)
	return nil
}

// Flush writes the buffered reports. A single report is written as an
// object, several as an array.
func (w *JSONWriter) Flush() error {
	var value any = w.reports
	if len(w.reports) == 1 {
		value = w.reports[0]
	}

	var output []byte
	var err error
	if w.pretty {
		output, err = json.MarshalIndent(value, "", w.indent)
	} else {
		output, err = json.Marshal(value)
	}
	if err != nil {
		return err
	}

	if _, err := w.w.Write(output); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}
	w.reports = w.reports[:0]
	return w.w.Flush()
}

// Close flushes the writer.
func (w *JSONWriter) Close() error {
	return w.Flush()
}

// checkRecord is one JSONL line.
type checkRecord struct {
	Suite    string   `json:"suite"`
	Source   string   `json:"source"`
	Check    string   `json:"check,omitempty"`
	Passed   bool     `json:"passed"`
	Failures []string `json:"failures,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// JSONLWriter writes one JSON line per check, which suits log pipelines.
type JSONLWriter struct {
	w *bufio.Writer
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{
		w: bufio.NewWriter(w),
	}
}

// Write emits every check of report. A page that failed to load is a
// single failed line carrying its error.
func (w *JSONLWriter) Write(report *suite.Report) error {
	for _, page := range report.Pages {
		if page.Error != "" {
			if err := w.line(checkRecord{Suite: report.Suite, Source: page.Source, Error: page.Error}); err != nil {
				return err
			}
			continue
		}
		for _, c := range page.Checks {
			rec := checkRecord{
				Suite:    report.Suite,
				Source:   page.Source,
				Check:    c.Name,
				Passed:   c.Passed,
				Failures: c.Failures,
			}
			if err := w.line(rec); err != nil {
				return err
			}
		}
	}
	return w.w.Flush()
}

func (w *JSONLWriter) line(rec checkRecord) error {
	output, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(output); err != nil {
		return err
	}
	_, err = w.w.WriteString("\n")
	return err
}

// Flush flushes the buffer.
func (w *JSONLWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *JSONLWriter) Close() error {
	return w.Flush()
}
