package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/domassert/internal/logger"
	"github.com/jmylchreest/domassert/internal/output"
	"github.com/jmylchreest/domassert/pkg/fetcher"
	"github.com/jmylchreest/domassert/pkg/suite"
)

// errChecksFailed makes the process exit non-zero without printing an error;
// the report already describes the failures.
var errChecksFailed = errors.New("checks failed")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run assertion suites",
	Long: `Run one or more suite files and report the results.

Suite files are YAML (.yaml, .yml) or JSON (.json). The command exits
with status 1 when any check fails or any page cannot be loaded.

Examples:
  domassert check -s login.yaml
  domassert check -s login.yaml --format jsonl | jq 'select(.passed == false)'
  domassert check -s spa.yaml --mode dynamic --timeout 1m`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	flags := checkCmd.Flags()
	flags.StringSliceP("suite", "s", nil, "suite file(s) to run (can be repeated)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "text", "output format: text, json, jsonl, yaml")
	flags.BoolP("verbose", "v", false, "list passing checks in text output")
	flags.Bool("no-color", false, "disable colored text output")
	flags.String("mode", "", "force fetch mode for every page: static, dynamic, auto, file")
	flags.Duration("timeout", 30*time.Second, "per-page fetch timeout")
	flags.String("user-agent", "", "HTTP user agent")
	flags.String("max-body-size", "10MB", "max response size for static fetches (e.g., 512KB, 10MB, 0=unlimited)")

	_ = checkCmd.MarkFlagRequired("suite")

	_ = viper.BindPFlag("format", flags.Lookup("format"))
	_ = viper.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = viper.BindPFlag("user_agent", flags.Lookup("user-agent"))
	_ = viper.BindPFlag("max_body_size", flags.Lookup("max-body-size"))
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	paths, _ := cmd.Flags().GetStringSlice("suite")
	suites := make([]suite.Suite, 0, len(paths))
	for _, path := range paths {
		s, err := suite.Load(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		logger.Debug("suite loaded", "path", path, "name", s.Name, "pages", len(s.Pages))
		suites = append(suites, s)
	}

	cfg, err := fetcherConfig()
	if err != nil {
		return err
	}

	mode, _ := cmd.Flags().GetString("mode")
	if mode != "" {
		for i := range suites {
			for j := range suites[i].Pages {
				suites[i].Pages[j].Mode = fetcher.Mode(mode)
			}
		}
	}

	outFile := os.Stdout
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		f, err := os.Create(outPath) //#nosec G304 -- CLI tool writes to user-specified output file
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		outFile = f
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	verbose, _ := cmd.Flags().GetBool("verbose")
	writer, err := output.NewWriter(outFile, output.Format(viper.GetString("format")),
		output.WithColor(!noColor && !color.NoColor && outFile == os.Stdout),
		output.WithVerbose(verbose),
	)
	if err != nil {
		return err
	}

	runner := suite.NewRunner(
		suite.WithFetcherConfig(cfg),
		suite.WithTimeout(viper.GetDuration("timeout")),
	)
	defer func() {
		if err := runner.Close(); err != nil {
			logger.Warn("failed to close fetchers", "error", err)
		}
	}()

	failed := false
	for _, s := range suites {
		report, err := runner.Run(ctx, s)
		if err != nil {
			return err
		}
		if report.HasFailures() {
			failed = true
		}
		if err := writer.Write(report); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if failed {
		return errChecksFailed
	}
	return nil
}

func fetcherConfig() (fetcher.Config, error) {
	cfg := fetcher.DefaultConfig()
	if ua := viper.GetString("user_agent"); ua != "" {
		cfg.UserAgent = ua
	}
	if timeout := viper.GetDuration("timeout"); timeout > 0 {
		cfg.Timeout = timeout
	}

	size := strings.TrimSpace(viper.GetString("max_body_size"))
	if size == "" {
		return cfg, nil
	}
	n, err := humanize.ParseBytes(size)
	if err != nil {
		return cfg, fmt.Errorf("invalid max-body-size %q: %w", size, err)
	}
	if n == 0 {
		cfg.MaxBodySize = fetcher.UnlimitedBodySize
	} else {
		cfg.MaxBodySize = int(n)
	}
	return cfg, nil
}
