package fetcher

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jmylchreest/domassert/internal/logger"
)

// AutoFetcher fetches statically and re-renders in a browser only when the
// static document looks like an unrendered single-page app.
type AutoFetcher struct {
	static  *StaticFetcher
	dynamic *DynamicFetcher
}

// NewAuto creates an auto-detecting fetcher.
func NewAuto(cfg Config) (*AutoFetcher, error) {
	dynamic, err := NewDynamic(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic fetcher: %w", err)
	}
	return &AutoFetcher{
		static:  NewStatic(cfg),
		dynamic: dynamic,
	}, nil
}

// Fetch tries a static fetch first.
func (f *AutoFetcher) Fetch(ctx context.Context, targetURL string, opts Options) (Content, error) {
	content, err := f.static.Fetch(ctx, targetURL, opts)
	if err != nil {
		logger.Debug("static fetch failed, rendering instead", "url", targetURL, "error", err)
		return f.dynamic.Fetch(ctx, targetURL, opts)
	}
	if NeedsRendering(content.HTML) {
		logger.Debug("page needs rendering", "url", targetURL)
		return f.dynamic.Fetch(ctx, targetURL, opts)
	}
	return content, nil
}

// spaMounts are framework mount points that are empty until scripts run.
const spaMounts = "#root, #app, #__next, #__nuxt, app-root"

var loadingHints = []string{"loading", "please wait", "javascript required", "enable javascript"}

// NeedsRendering reports whether html appears to require JavaScript to
// produce its content.
func NeedsRendering(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}

	emptyMount := false
	doc.Find(spaMounts).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		emptyMount = s.Children().Length() == 0 && strings.TrimSpace(s.Text()) == ""
		return !emptyMount
	})
	if emptyMount {
		return true
	}
	if doc.Find("[ng-app], [data-ng-app], [v-cloak]").Length() > 0 {
		return true
	}

	body := doc.Find("body").Clone()
	body.Find("script, style, noscript").Remove()
	text := strings.ToLower(strings.Join(strings.Fields(body.Text()), " "))
	if len(text) < 100 {
		for _, hint := range loadingHints {
			if strings.Contains(text, hint) {
				return true
			}
		}
	}

	// goquery parses <noscript> content as raw text.
	noscript := strings.ToLower(doc.Find("noscript").Text())
	return strings.Contains(noscript, "javascript")
}

// Close releases the browser.
func (f *AutoFetcher) Close() error {
	return f.dynamic.Close()
}

func (f *AutoFetcher) Type() string {
	return string(ModeAuto)
}
