// Package fetcher loads HTML pages for assertion suites.
// Implement the Fetcher interface to plug in other page sources.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher abstracts page loading strategies.
type Fetcher interface {
	// Fetch retrieves the page at source.
	Fetch(ctx context.Context, source string, opts Options) (Content, error)

	// Close releases any resources (browser instances, etc.).
	Close() error

	// Type returns a string identifying the fetcher type (e.g., "static", "dynamic").
	Type() string
}

// Mode selects a Fetcher implementation.
type Mode string

const (
	ModeStatic  Mode = "static"
	ModeDynamic Mode = "dynamic"
	ModeAuto    Mode = "auto"
	ModeFile    Mode = "file"
)

// Options controls fetching behavior.
type Options struct {
	UserAgent       string
	Timeout         time.Duration
	WaitForSelector string        // CSS selector to wait for (dynamic fetchers)
	WaitDuration    time.Duration // Additional wait after load
	Headers         map[string]string
}

// Content represents fetched page data.
type Content struct {
	URL         string
	HTML        string
	Title       string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

// Config is shared by the built-in fetchers.
type Config struct {
	UserAgent   string
	Timeout     time.Duration
	MaxBodySize int // bytes; 0 keeps the collector default, UnlimitedBodySize lifts the cap
}

// UnlimitedBodySize disables the static fetcher's response size cap.
const UnlimitedBodySize = -1

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		UserAgent: defaultUserAgent,
		Timeout:   30 * time.Second,
	}
}

const defaultUserAgent = "domassert/1.0 (+https://github.com/jmylchreest/domassert)"

// ErrUnsupportedMode is returned by New for an unknown mode.
var ErrUnsupportedMode = errors.New("unsupported fetch mode")

// New creates a fetcher for mode.
func New(mode Mode, cfg Config) (Fetcher, error) {
	switch mode {
	case ModeStatic, "":
		return NewStatic(cfg), nil
	case ModeDynamic:
		return NewDynamic(cfg)
	case ModeAuto:
		return NewAuto(cfg)
	case ModeFile:
		return NewFile(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMode, mode)
	}
}

// ModeFor guesses the mode for a source: URLs are static, anything else a file.
func ModeFor(source string) Mode {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return ModeStatic
	}
	return ModeFile
}

func withDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	return cfg
}

// extractTitle fills content.Title from the fetched HTML.
func extractTitle(content *Content) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content.HTML))
	if err != nil {
		return err
	}
	content.Title = strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
	return nil
}

// coalesce returns the first non-empty string.
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
