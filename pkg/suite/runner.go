package suite

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/domassert/internal/crawler"
	"github.com/jmylchreest/domassert/internal/logger"
	"github.com/jmylchreest/domassert/pkg/dom"
	"github.com/jmylchreest/domassert/pkg/fetcher"
)

// Report is the outcome of a suite run.
type Report struct {
	Suite    string        `json:"suite" yaml:"suite"`
	Pages    []PageResult  `json:"pages" yaml:"pages"`
	Passed   int           `json:"passed" yaml:"passed"`
	Failed   int           `json:"failed" yaml:"failed"`
	Duration time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

// HasFailures reports whether any check failed or any page could not be loaded.
func (r *Report) HasFailures() bool {
	if r.Failed > 0 {
		return true
	}
	for _, p := range r.Pages {
		if p.Error != "" {
			return true
		}
	}
	return false
}

// PageResult holds the checks run against one page.
type PageResult struct {
	Source     string        `json:"source" yaml:"source"`
	StatusCode int           `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	Bytes      int           `json:"bytes,omitempty" yaml:"bytes,omitempty"`
	Error      string        `json:"error,omitempty" yaml:"error,omitempty"`
	Checks     []CheckResult `json:"checks" yaml:"checks"`
}

// CheckResult is the outcome of one named check.
type CheckResult struct {
	Name     string   `json:"name" yaml:"name"`
	Passed   bool     `json:"passed" yaml:"passed"`
	Failures []string `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Runner executes suites.
type Runner struct {
	config   fetcher.Config
	timeout  time.Duration
	fetchers map[fetcher.Mode]fetcher.Fetcher
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithFetcherConfig sets the configuration used for fetchers the runner creates.
func WithFetcherConfig(cfg fetcher.Config) RunnerOption {
	return func(r *Runner) {
		r.config = cfg
	}
}

// WithFetcher installs f for mode, replacing the built-in fetcher.
func WithFetcher(mode fetcher.Mode, f fetcher.Fetcher) RunnerOption {
	return func(r *Runner) {
		r.fetchers[mode] = f
	}
}

// WithTimeout bounds each page fetch.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.timeout = d
	}
}

// NewRunner creates a runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		config:   fetcher.DefaultConfig(),
		fetchers: make(map[fetcher.Mode]fetcher.Fetcher),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Close releases every fetcher the runner holds.
func (r *Runner) Close() error {
	var firstErr error
	for mode, f := range r.fetchers {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing %s fetcher: %w", mode, err)
		}
	}
	return firstErr
}

func (r *Runner) fetcher(mode fetcher.Mode) (fetcher.Fetcher, error) {
	if f, ok := r.fetchers[mode]; ok {
		return f, nil
	}
	f, err := fetcher.New(mode, r.config)
	if err != nil {
		return nil, err
	}
	r.fetchers[mode] = f
	return f, nil
}

// Run executes every page of s. Pages that cannot be fetched are recorded in
// the report; Run only returns an error when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, s Suite) (*Report, error) {
	start := time.Now()
	report := &Report{Suite: s.Name}

	for _, page := range s.Pages {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		results, err := r.visit(ctx, page)
		for _, result := range results {
			for _, c := range result.Checks {
				if c.Passed {
					report.Passed++
				} else {
					report.Failed++
				}
			}
			report.Pages = append(report.Pages, result)
		}
		if err != nil {
			return report, err
		}
	}

	report.Duration = time.Since(start)
	logger.Debug("suite finished", "suite", s.Name, "passed", report.Passed, "failed", report.Failed)
	return report, nil
}

// visit runs page and, when it has a Follow block, the pages reachable from
// it through matching links.
func (r *Runner) visit(ctx context.Context, page Page) ([]PageResult, error) {
	result, html := r.runPage(ctx, page)
	results := []PageResult{result}
	if page.Follow == nil || result.Error != "" {
		return results, nil
	}

	follow := *page.Follow
	maxDepth := cmp.Or(follow.MaxDepth, defaultFollowDepth)
	maxPages := cmp.Or(follow.MaxPages, defaultFollowPages)

	links, err := crawler.NewLinks(follow.Selector, follow.Pattern)
	if err != nil {
		return append(results, PageResult{Source: page.Source, Error: err.Error()}), nil
	}
	seed, err := crawler.BaseURL(page.Source)
	if err != nil {
		return append(results, PageResult{Source: page.Source, Error: err.Error()}), nil
	}

	queue := crawler.NewQueue()
	queue.MarkSeen(seed)
	enqueue := func(html, from string, depth int) {
		found, err := links.Extract(html, from)
		if err != nil {
			logger.Debug("link extraction failed", "source", from, "error", err)
			return
		}
		for _, link := range found {
			if !follow.AnyHost && !crawler.SameHost(link, seed) {
				continue
			}
			queue.Add(link, depth)
		}
	}
	enqueue(html, seed, 1)

	for visited := 0; visited < maxPages; visited++ {
		item, ok := queue.Pop()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return results, err
		}

		child := page
		child.Source = item.URL
		child.Follow = nil
		res, childHTML := r.runPage(ctx, child)
		results = append(results, res)
		if res.Error == "" && item.Depth < maxDepth {
			enqueue(childHTML, item.URL, item.Depth+1)
		}
	}
	logger.Debug("follow finished", "source", page.Source, "pages", len(results)-1, "pending", queue.Len())
	return results, nil
}

// runPage fetches page and runs its checks. It also returns the fetched HTML.
func (r *Runner) runPage(ctx context.Context, page Page) (PageResult, string) {
	result := PageResult{Source: page.Source}
	log := logger.With("source", page.Source)

	mode := page.Mode
	if mode == "" {
		mode = fetcher.ModeFor(page.Source)
	}
	f, err := r.fetcher(mode)
	if err != nil {
		result.Error = err.Error()
		return result, ""
	}

	content, err := f.Fetch(ctx, page.Source, fetcher.Options{
		Timeout:         r.timeout,
		WaitForSelector: page.WaitFor,
	})
	if err != nil {
		log.Debug("page fetch failed", "mode", mode, "error", err)
		result.Error = err.Error()
		return result, ""
	}
	result.StatusCode = content.StatusCode
	result.Bytes = len(content.HTML)
	log.Debug("page fetched", "mode", mode, "status", content.StatusCode, "bytes", len(content.HTML))

	rec := &Recorder{}
	var doc *dom.Document
	parse := rec.Run("parse", func() { doc = dom.Parse(rec, content.HTML) })
	if !parse.Passed {
		result.Checks = append(result.Checks, parse)
		return result, content.HTML
	}

	add := func(name string, fn func()) {
		result.Checks = append(result.Checks, rec.Run(name, fn))
	}

	if page.Status != 0 {
		add("status", func() {
			require.Equal(rec, page.Status, content.StatusCode,
				fmt.Sprintf("The response status is %d instead of %d", content.StatusCode, page.Status))
		})
	}
	if page.Title != "" {
		add("title", func() { doc.AssertTitle(page.Title) })
	}
	if page.TitleContains != "" {
		add("title contains", func() { doc.AssertTitleContains(page.TitleContains) })
	}
	if page.Lang != "" {
		add("lang", func() { doc.AssertLang(page.Lang) })
	}
	if page.Charset != "" {
		add("charset", func() { doc.AssertCharset(page.Charset) })
	}
	if page.Favicon {
		add("favicon", func() { doc.AssertFavicon() })
	}
	for _, name := range slices.Sorted(maps.Keys(page.Meta)) {
		value := page.Meta[name]
		add("meta "+name, func() { doc.AssertMeta(name, value) })
	}
	for _, text := range page.Text {
		add("text "+text, func() { doc.AssertText(text) })
	}
	for _, text := range page.NoText {
		add("no text "+text, func() { doc.AssertDoesntSeeText(text) })
	}
	for _, check := range page.Checks {
		add(check.Label(), func() { runCheck(doc, check) })
	}

	return result, content.HTML
}

// runCheck applies one check to doc.
func runCheck(doc *dom.Document, c Check) {
	if c.Absent {
		doc.AssertDoesntContainElement(c.Selector)
		return
	}

	els := doc.QueryAll(c.Selector)
	if c.Count == nil && c.MinCount == nil && c.MaxCount == nil {
		els.AssertNotEmpty()
	}
	if c.Count != nil {
		els.AssertCount(*c.Count)
	}
	if c.MinCount != nil {
		els.AssertCountGreaterThanOrEqual(*c.MinCount)
	}
	if c.MaxCount != nil {
		els.AssertCountLessThanOrEqual(*c.MaxCount)
	}

	if c.hasElementAssertions() {
		els.AssertEach(func(el *dom.Element) { checkElement(el, c) })
	}

	if c.Form != nil {
		doc.WithForm(c.Selector, func(form *dom.Form) { checkForm(form, *c.Form) })
	}
}

func checkElement(el *dom.Element, c Check) {
	if c.Tag != "" {
		el.AssertTag(c.Tag)
	}
	if c.ID != "" {
		el.AssertID(c.ID)
	}
	if c.Text != "" {
		el.AssertTextEquals(c.Text)
	}
	if c.TextContains != "" {
		el.AssertTextContains(c.TextContains)
	}
	for _, name := range slices.Sorted(maps.Keys(c.Attributes)) {
		el.AssertAttributeEquals(name, c.Attributes[name])
	}
	for _, name := range c.AttributesPresent {
		el.AssertAttributePresent(name)
	}
	for _, name := range c.AttributesMissing {
		el.AssertAttributeMissing(name)
	}
	if len(c.Classes) > 0 {
		el.AssertClassContainsAll(c.Classes...)
	}
	for _, class := range c.ClassesMissing {
		el.AssertClassMissing(class)
	}
}

func checkForm(form *dom.Form, fc FormCheck) {
	if fc.Method != "" {
		form.AssertMethod(fc.Method)
	}
	if fc.Action != "" {
		form.AssertAction(fc.Action)
	}
	if fc.Upload {
		form.AssertAcceptsUpload()
	}
	if fc.CSRF != "" {
		form.AssertHasCSRF(fc.CSRF)
	}
	for _, field := range fc.Fields {
		form.AssertHasField(field)
	}
}
