package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/domassert/pkg/dom"
	"github.com/jmylchreest/domassert/pkg/fetcher"
	"github.com/jmylchreest/domassert/pkg/suite"
)

var queryCmd = &cobra.Command{
	Use:   "query <source> <selector>",
	Short: "Show the elements a selector matches",
	Long: `Load a page and list the elements matching a CSS selector (or an
XPath expression with --xpath). Useful when writing suites.

Examples:
  domassert query https://example.com "nav a"
  domassert query page.html "//form[@method='post']" --xpath --html`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	flags := queryCmd.Flags()
	flags.Bool("xpath", false, "treat the selector as an XPath expression")
	flags.Bool("html", false, "print the indented markup of each match")
	flags.String("mode", "", "fetch mode: static, dynamic, auto, file (default: guessed from source)")
	flags.String("wait-for", "", "CSS selector to wait for in dynamic mode")
}

func runQuery(cmd *cobra.Command, args []string) error {
	source, selector := args[0], args[1]

	cfg, err := fetcherConfig()
	if err != nil {
		return err
	}
	mode, _ := cmd.Flags().GetString("mode")
	if mode == "" {
		mode = string(fetcher.ModeFor(source))
	}
	f, err := fetcher.New(fetcher.Mode(mode), cfg)
	if err != nil {
		return err
	}
	defer f.Close()

	timeout := viper.GetDuration("timeout")
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	waitFor, _ := cmd.Flags().GetString("wait-for")
	content, err := f.Fetch(ctx, source, fetcher.Options{WaitForSelector: waitFor})
	if err != nil {
		return err
	}

	useXPath, _ := cmd.Flags().GetBool("xpath")
	rec := &suite.Recorder{}
	var matches *dom.Elements
	result := rec.Run("query", func() {
		doc := dom.Parse(rec, content.HTML)
		if useXPath {
			matches = doc.XPath(selector)
		} else {
			matches = doc.QueryAll(selector)
		}
	})
	if !result.Passed {
		return errors.New(strings.Join(result.Failures, "; "))
	}

	showHTML, _ := cmd.Flags().GetBool("html")
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d match(es) for [%s]\n", matches.Len(), selector)
	matches.Each(func(i int, el *dom.Element) {
		fmt.Fprintf(out, "%3d. %s", i+1, el.Selector())
		if text := el.Text().String(); text != "" {
			fmt.Fprintf(out, "  %q", truncate(text, 80))
		}
		fmt.Fprintln(out)
		if showHTML {
			fmt.Fprintln(out, indent(el.Dump(), "     "))
		}
	})
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
