package dom

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"github.com/yosssi/gohtml"

	"github.com/jmylchreest/domassert/internal/logger"
)

// Document is an assertable wrapper around a parsed HTML document.
type Document struct {
	t    TestingT
	doc  *goquery.Document
	html string
}

// Parse parses an HTML string.
func Parse(t TestingT, source string) *Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	require.NoError(t, err, "failed to parse HTML")
	if err != nil {
		doc = emptyDocument()
	}
	logger.Debug("document parsed", "bytes", len(source))
	return &Document{t: t, doc: doc, html: source}
}

// ParseReader reads r to the end and parses it.
func ParseReader(t TestingT, r io.Reader) *Document {
	t.Helper()
	data, err := io.ReadAll(r)
	require.NoError(t, err, "failed to read HTML")
	return Parse(t, string(data))
}

// ParseFile parses the HTML file at path.
func ParseFile(t TestingT, path string) *Document {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err, fmt.Sprintf("failed to read HTML file %s", path))
	return Parse(t, string(data))
}

// ParseResponse parses an HTTP response body and closes it.
func ParseResponse(t TestingT, resp *http.Response) *Document {
	t.Helper()
	require.NotNil(t, resp, "response is nil")
	if resp == nil || resp.Body == nil {
		return Parse(t, "")
	}
	defer resp.Body.Close()
	return ParseReader(t, resp.Body)
}

// ParseRecorder parses the body captured by an httptest.ResponseRecorder.
func ParseRecorder(t TestingT, rec *httptest.ResponseRecorder) *Document {
	t.Helper()
	require.NotNil(t, rec, "response recorder is nil")
	if rec == nil {
		return Parse(t, "")
	}
	return Parse(t, rec.Body.String())
}

// ParseHandler serves req through h and parses the response.
func ParseHandler(t TestingT, h http.Handler, req *http.Request) *Document {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	logger.Debug("handler served", "method", req.Method, "path", req.URL.Path, "status", rec.Code)
	return ParseRecorder(t, rec)
}

// ParseTemplate executes the named template with data and parses the output.
func ParseTemplate(t TestingT, tmpl *template.Template, name string, data any) *Document {
	t.Helper()
	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, name, data)
	require.NoError(t, err, fmt.Sprintf("failed to render template %s", name))
	return Parse(t, buf.String())
}

func emptyDocument() *goquery.Document {
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader(""))
	return doc
}

func (d *Document) scope() scope {
	return scope{t: d.t, doc: d, root: d.doc.Selection, label: "the document"}
}

// HTML returns the source the document was parsed from.
func (d *Document) HTML() string {
	return d.html
}

// Dump returns the document re-rendered and indented.
func (d *Document) Dump() string {
	out, err := d.doc.Html()
	if err != nil {
		return d.html
	}
	return gohtml.Format(out)
}

// Selection exposes the underlying goquery document.
func (d *Document) Selection() *goquery.Document {
	return d.doc
}

// Title returns the normalized text of the first <title>.
func (d *Document) Title() string {
	return NormalizeWhitespace(d.doc.Find("title").First().Text())
}

// Lang returns the lang attribute of <html>.
func (d *Document) Lang() string {
	lang, _ := d.doc.Find("html").First().Attr("lang")
	return lang
}

// Charset returns the declared character set, from <meta charset> or a
// Content-Type http-equiv.
func (d *Document) Charset() string {
	if charset, ok := d.doc.Find("meta[charset]").First().Attr("charset"); ok {
		return strings.TrimSpace(charset)
	}

	var charset string
	d.doc.Find("meta[http-equiv][content]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		equiv, _ := s.Attr("http-equiv")
		if !strings.EqualFold(equiv, "content-type") {
			return true
		}
		content, _ := s.Attr("content")
		if _, params, err := mime.ParseMediaType(content); err == nil {
			charset = params["charset"]
		}
		return false
	})
	return charset
}

// Root returns the <html> element.
func (d *Document) Root() *Element {
	return d.first("html")
}

// Head returns the <head> element, or nil.
func (d *Document) Head() *Element {
	return d.first("head")
}

// Body returns the <body> element, or nil.
func (d *Document) Body() *Element {
	return d.first("body")
}

func (d *Document) first(tag string) *Element {
	s := d.doc.Find(tag).First()
	if s.Length() == 0 {
		return nil
	}
	return newElement(d.t, d, s)
}

// Query returns the first element matching selector, or nil.
func (d *Document) Query(selector string) *Element {
	d.t.Helper()
	return d.scope().query(selector)
}

// QueryAll returns every element matching selector.
func (d *Document) QueryAll(selector string) *Elements {
	d.t.Helper()
	els, _ := d.scope().find(selector)
	return els
}

// XPath returns the elements selected by an XPath expression.
func (d *Document) XPath(expr string) *Elements {
	d.t.Helper()
	return d.scope().xpath(expr)
}

// AssertTitle asserts the normalized page title.
func (d *Document) AssertTitle(expected string) *Document {
	d.t.Helper()
	require.Equal(d.t, expected, d.Title(),
		fmt.Sprintf("The page title doesn't equal [%s]", expected))
	return d
}

// AssertTitleContains asserts the page title contains needle.
func (d *Document) AssertTitleContains(needle string) *Document {
	d.t.Helper()
	require.Contains(d.t, d.Title(), needle,
		fmt.Sprintf("The page title doesn't contain [%s]", needle))
	return d
}

// AssertLang asserts the lang attribute of <html>.
func (d *Document) AssertLang(expected string) *Document {
	d.t.Helper()
	require.Equal(d.t, expected, d.Lang(),
		fmt.Sprintf("The page language doesn't equal [%s]", expected))
	return d
}

// AssertCharset asserts the declared charset, ignoring case.
func (d *Document) AssertCharset(expected string) *Document {
	d.t.Helper()
	require.Equal(d.t, strings.ToLower(expected), strings.ToLower(d.Charset()),
		fmt.Sprintf("The page charset doesn't equal [%s]", expected))
	return d
}

// AssertFavicon asserts the page links an icon.
func (d *Document) AssertFavicon() *Document {
	d.t.Helper()
	found := false
	d.doc.Find("link[rel~=icon][href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		found = strings.TrimSpace(href) != ""
		return !found
	})
	require.True(d.t, found, "The page doesn't link a favicon")
	return d
}

// AssertMeta asserts the content of a <meta name> or <meta property> tag.
func (d *Document) AssertMeta(name, expected string) *Document {
	d.t.Helper()
	s := d.doc.Find(fmt.Sprintf("meta[name=%q], meta[property=%q]", name, name)).First()
	require.NotZero(d.t, s.Length(), fmt.Sprintf("The page has no meta tag [%s]", name))
	if s.Length() == 0 {
		return d
	}
	content, _ := s.Attr("content")
	require.Equal(d.t, expected, content,
		fmt.Sprintf("The meta tag [%s] doesn't equal [%s]", name, expected))
	return d
}

// AssertText asserts the normalized body text contains needle.
func (d *Document) AssertText(needle string) *Document {
	d.t.Helper()
	require.Contains(d.t, d.bodyText(), NormalizeWhitespace(needle),
		fmt.Sprintf("The page doesn't contain the text [%s]", needle))
	return d
}

// AssertDoesntSeeText asserts the normalized body text doesn't contain needle.
func (d *Document) AssertDoesntSeeText(needle string) *Document {
	d.t.Helper()
	require.NotContains(d.t, d.bodyText(), NormalizeWhitespace(needle),
		fmt.Sprintf("The page contains the text [%s]", needle))
	return d
}

func (d *Document) bodyText() string {
	return NormalizeWhitespace(d.doc.Find("body").Text())
}

// AssertContainsElement asserts at least one element matches selector.
func (d *Document) AssertContainsElement(selector string) *Document {
	d.t.Helper()
	d.scope().assertContains(selector)
	return d
}

// AssertDoesntContainElement asserts nothing matches selector.
func (d *Document) AssertDoesntContainElement(selector string) *Document {
	d.t.Helper()
	d.scope().assertDoesntContain(selector)
	return d
}

// AssertElementsCount asserts exactly expected elements match selector.
func (d *Document) AssertElementsCount(selector string, expected int) *Document {
	d.t.Helper()
	d.scope().assertCount(selector, equal, expected)
	return d
}

// AssertElementsGreaterThan asserts selector matches more than expected elements.
func (d *Document) AssertElementsGreaterThan(selector string, expected int) *Document {
	d.t.Helper()
	d.scope().assertCount(selector, greaterThan, expected)
	return d
}

// AssertElementsGreaterThanOrEqual asserts selector matches at least expected elements.
func (d *Document) AssertElementsGreaterThanOrEqual(selector string, expected int) *Document {
	d.t.Helper()
	d.scope().assertCount(selector, greaterThanOrEqual, expected)
	return d
}

// AssertElementsLessThan asserts selector matches fewer than expected elements.
func (d *Document) AssertElementsLessThan(selector string, expected int) *Document {
	d.t.Helper()
	d.scope().assertCount(selector, lessThan, expected)
	return d
}

// AssertElementsLessThanOrEqual asserts selector matches at most expected elements.
func (d *Document) AssertElementsLessThanOrEqual(selector string, expected int) *Document {
	d.t.Helper()
	d.scope().assertCount(selector, lessThanOrEqual, expected)
	return d
}

// With calls fn with the single element matching selector. It fails when
// the selector matches zero or several elements.
func (d *Document) With(selector string, fn func(*Element)) *Document {
	d.t.Helper()
	d.scope().with(selector, fn)
	return d
}

// Elsewhere is With. It exists so chains read the same on documents and
// elements.
func (d *Document) Elsewhere(selector string, fn func(*Element)) *Document {
	d.t.Helper()
	d.scope().with(selector, fn)
	return d
}

// Many calls fn with every element matching selector. At least one must match.
func (d *Document) Many(selector string, fn func(*Elements)) *Document {
	d.t.Helper()
	d.scope().many(selector, fn)
	return d
}

// When calls fn only if cond holds.
func (d *Document) When(cond bool, fn func(*Document)) *Document {
	if cond {
		fn(d)
	}
	return d
}

// WithForm scopes into a single <form>.
func (d *Document) WithForm(selector string, fn func(*Form)) *Document {
	d.t.Helper()
	withAs(d.scope(), selector, "form", fn)
	return d
}

// WithInput scopes into a single <input>.
func (d *Document) WithInput(selector string, fn func(*Input)) *Document {
	d.t.Helper()
	withAs(d.scope(), selector, "input", fn)
	return d
}

// WithSelect scopes into a single <select>.
func (d *Document) WithSelect(selector string, fn func(*Select)) *Document {
	d.t.Helper()
	withAs(d.scope(), selector, "select", fn)
	return d
}

// WithTextarea scopes into a single <textarea>.
func (d *Document) WithTextarea(selector string, fn func(*Textarea)) *Document {
	d.t.Helper()
	withAs(d.scope(), selector, "textarea", fn)
	return d
}
