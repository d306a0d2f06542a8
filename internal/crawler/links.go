package crawler

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultLinkSelector matches every anchor with an href.
const DefaultLinkSelector = "a[href]"

// Links extracts followable links from a page.
type Links struct {
	Selector string         // CSS selector for link elements
	Pattern  *regexp.Regexp // optional filter on the absolute URL
}

// NewLinks compiles a link extractor. An empty selector means
// DefaultLinkSelector.
func NewLinks(selector, pattern string) (*Links, error) {
	if selector == "" {
		selector = DefaultLinkSelector
	}
	l := &Links{Selector: selector}
	if pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid follow pattern: %w", err)
		}
		l.Pattern = re
	}
	return l, nil
}

// Extract returns the absolute, de-duplicated links in html, in document
// order. Fragment-only, javascript:, mailto: and tel: links are skipped.
func (l *Links) Extract(html, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	var links []string
	seen := make(map[string]bool)
	doc.Find(l.Selector).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || skipScheme(href) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref)
		abs.Fragment = ""
		full := abs.String()

		if l.Pattern != nil && !l.Pattern.MatchString(full) {
			return
		}
		if seen[full] {
			return
		}
		seen[full] = true
		links = append(links, full)
	})
	return links, nil
}

func skipScheme(href string) bool {
	lower := strings.ToLower(href)
	for _, scheme := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}

// BaseURL returns a URL that relative links in source can be resolved
// against. Local paths become absolute file:// URLs.
func BaseURL(source string) (string, error) {
	if strings.Contains(source, "://") {
		return source, nil
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", err
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}
