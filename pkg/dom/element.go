package dom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"
)

// Element is an assertable wrapper around a single DOM element.
type Element struct {
	t   TestingT
	doc *Document
	sel *goquery.Selection
}

func newElement(t TestingT, doc *Document, sel *goquery.Selection) *Element {
	return &Element{t: t, doc: doc, sel: sel.First()}
}

func (e *Element) scope() scope {
	return scope{t: e.t, doc: e.doc, root: e.sel, label: fmt.Sprintf("the element [%s]", e.Selector())}
}

// Base returns e. Specialized wrappers inherit it to expose their element.
func (e *Element) Base() *Element {
	return e
}

// Document returns the document e belongs to.
func (e *Element) Document() *Document {
	return e.doc
}

// Node returns the underlying html node.
func (e *Element) Node() *html.Node {
	if len(e.sel.Nodes) == 0 {
		return nil
	}
	return e.sel.Nodes[0]
}

// Selection returns the underlying goquery selection.
func (e *Element) Selection() *goquery.Selection {
	return e.sel
}

// Selector describes e for failure messages.
func (e *Element) Selector() string {
	return Describe(e.Node())
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string {
	return strings.ToLower(goquery.NodeName(e.sel))
}

// ID returns the id attribute.
func (e *Element) ID() string {
	id, _ := e.sel.Attr("id")
	return id
}

// Attr returns the named attribute and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(strings.ToLower(name))
}

// Attributes returns the attribute list.
func (e *Element) Attributes() *Attributes {
	return newAttributes(e)
}

// Classes returns the class list.
func (e *Element) Classes() *ClassList {
	return newClassList(e)
}

// Text returns the text content.
func (e *Element) Text() *Text {
	return newText(e, e.sel.Text())
}

// InnerHTML renders the element's children.
func (e *Element) InnerHTML() string {
	out, err := e.sel.Html()
	if err != nil {
		return ""
	}
	return out
}

// OuterHTML renders the element itself.
func (e *Element) OuterHTML() string {
	out, err := goquery.OuterHtml(e.sel)
	if err != nil {
		return ""
	}
	return out
}

// Dump returns the element rendered and indented.
func (e *Element) Dump() string {
	return gohtml.Format(e.OuterHTML())
}

// Parent returns the parent element, or nil at the root.
func (e *Element) Parent() *Element {
	p := e.sel.Parent()
	if p.Length() == 0 {
		return nil
	}
	return newElement(e.t, e.doc, p)
}

// Children returns the element children.
func (e *Element) Children() *Elements {
	return newElements(e.t, e.doc, e.Selector()+" > *", e.sel.Children())
}

// Matches reports whether e matches selector.
func (e *Element) Matches(selector string) bool {
	e.t.Helper()
	m, ok := compile(e.t, selector)
	if !ok {
		return false
	}
	return e.sel.IsMatcher(m)
}

// Query returns the first descendant matching selector, or nil.
func (e *Element) Query(selector string) *Element {
	e.t.Helper()
	return e.scope().query(selector)
}

// QueryAll returns the descendants matching selector.
func (e *Element) QueryAll(selector string) *Elements {
	e.t.Helper()
	els, _ := e.scope().find(selector)
	return els
}

// XPath evaluates expr relative to e.
func (e *Element) XPath(expr string) *Elements {
	e.t.Helper()
	return e.scope().xpath(expr)
}

func (e *Element) message(format string, args ...any) string {
	return fmt.Sprintf("The element [%s] ", e.Selector()) + fmt.Sprintf(format, args...)
}

// AssertTag asserts the tag name, ignoring case.
func (e *Element) AssertTag(expected string) *Element {
	e.t.Helper()
	require.Equal(e.t, strings.ToLower(expected), e.Tag(), e.message("is not a <%s>", expected))
	return e
}

// AssertID asserts the id attribute.
func (e *Element) AssertID(expected string) *Element {
	e.t.Helper()
	require.Equal(e.t, expected, e.ID(), e.message("doesn't have the id [%s]", expected))
	return e
}

// AssertMatchesSelector asserts e matches selector.
func (e *Element) AssertMatchesSelector(selector string) *Element {
	e.t.Helper()
	m, ok := compile(e.t, selector)
	if !ok {
		return e
	}
	require.True(e.t, e.sel.IsMatcher(m), e.message("doesn't match the selector [%s]", selector))
	return e
}

// AssertTextEquals asserts the normalized text content.
func (e *Element) AssertTextEquals(expected string) *Element {
	e.t.Helper()
	e.Text().AssertEquals(expected)
	return e
}

// AssertTextContains asserts the normalized text contains needle.
func (e *Element) AssertTextContains(needle string) *Element {
	e.t.Helper()
	e.Text().AssertContains(needle)
	return e
}

// AssertTextDoesntContain asserts the normalized text does not contain needle.
func (e *Element) AssertTextDoesntContain(needle string) *Element {
	e.t.Helper()
	e.Text().AssertDoesntContain(needle)
	return e
}

// AssertTextStartsWith asserts the normalized text starts with prefix.
func (e *Element) AssertTextStartsWith(prefix string) *Element {
	e.t.Helper()
	e.Text().AssertStartsWith(prefix)
	return e
}

// AssertTextEndsWith asserts the normalized text ends with suffix.
func (e *Element) AssertTextEndsWith(suffix string) *Element {
	e.t.Helper()
	e.Text().AssertEndsWith(suffix)
	return e
}

// AssertTextMatches asserts the normalized text matches a regular expression.
func (e *Element) AssertTextMatches(pattern string) *Element {
	e.t.Helper()
	e.Text().AssertMatches(pattern)
	return e
}

// AssertTextEmpty asserts the element has no text after normalization.
func (e *Element) AssertTextEmpty() *Element {
	e.t.Helper()
	e.Text().AssertEmpty()
	return e
}

// AssertText calls fn with the text wrapper.
func (e *Element) AssertText(fn func(*Text)) *Element {
	fn(e.Text())
	return e
}

// AssertAttributeEquals asserts the attribute is present with the expected value.
func (e *Element) AssertAttributeEquals(name, expected string) *Element {
	e.t.Helper()
	e.Attributes().AssertEquals(name, expected)
	return e
}

// AssertAttributeContains asserts the attribute value contains needle.
func (e *Element) AssertAttributeContains(name, needle string) *Element {
	e.t.Helper()
	e.Attributes().AssertContains(name, needle)
	return e
}

// AssertAttributeDoesntContain asserts the attribute value does not contain needle.
func (e *Element) AssertAttributeDoesntContain(name, needle string) *Element {
	e.t.Helper()
	e.Attributes().AssertDoesntContain(name, needle)
	return e
}

// AssertAttributeStartsWith asserts the attribute value starts with prefix.
func (e *Element) AssertAttributeStartsWith(name, prefix string) *Element {
	e.t.Helper()
	e.Attributes().AssertStartsWith(name, prefix)
	return e
}

// AssertAttributeEndsWith asserts the attribute value ends with suffix.
func (e *Element) AssertAttributeEndsWith(name, suffix string) *Element {
	e.t.Helper()
	e.Attributes().AssertEndsWith(name, suffix)
	return e
}

// AssertAttributePresent asserts the attribute is set, possibly empty.
func (e *Element) AssertAttributePresent(name string) *Element {
	e.t.Helper()
	e.Attributes().AssertPresent(name)
	return e
}

// AssertAttributeMissing asserts the attribute is not set.
func (e *Element) AssertAttributeMissing(name string) *Element {
	e.t.Helper()
	e.Attributes().AssertMissing(name)
	return e
}

// AssertDataAttributeEquals asserts data-<name>.
func (e *Element) AssertDataAttributeEquals(name, expected string) *Element {
	e.t.Helper()
	e.Attributes().AssertEquals("data-"+name, expected)
	return e
}

// AssertAriaAttributeEquals asserts aria-<name>.
func (e *Element) AssertAriaAttributeEquals(name, expected string) *Element {
	e.t.Helper()
	e.Attributes().AssertEquals("aria-"+name, expected)
	return e
}

// AssertAttributes calls fn with the attribute list.
func (e *Element) AssertAttributes(fn func(*Attributes)) *Element {
	fn(e.Attributes())
	return e
}

// AssertClassEquals asserts the class list holds exactly classes, in any order.
func (e *Element) AssertClassEquals(classes ...string) *Element {
	e.t.Helper()
	e.Classes().AssertEquals(classes...)
	return e
}

// AssertClassContains asserts the class attribute lists class.
func (e *Element) AssertClassContains(class string) *Element {
	e.t.Helper()
	e.Classes().AssertContains(class)
	return e
}

// AssertClassMissing asserts the class attribute does not list class.
func (e *Element) AssertClassMissing(class string) *Element {
	e.t.Helper()
	e.Classes().AssertMissing(class)
	return e
}

// AssertClassContainsAll asserts every one of classes is listed.
func (e *Element) AssertClassContainsAll(classes ...string) *Element {
	e.t.Helper()
	e.Classes().AssertContainsAll(classes...)
	return e
}

// AssertClassContainsAny asserts at least one of classes is listed.
func (e *Element) AssertClassContainsAny(classes ...string) *Element {
	e.t.Helper()
	e.Classes().AssertContainsAny(classes...)
	return e
}

// AssertClassEmpty asserts the element has no classes.
func (e *Element) AssertClassEmpty() *Element {
	e.t.Helper()
	e.Classes().AssertEmpty()
	return e
}

// AssertClasses calls fn with the class list.
func (e *Element) AssertClasses(fn func(*ClassList)) *Element {
	fn(e.Classes())
	return e
}

// AssertContainsElement asserts a descendant matches selector.
func (e *Element) AssertContainsElement(selector string) *Element {
	e.t.Helper()
	e.scope().assertContains(selector)
	return e
}

// AssertDoesntContainElement asserts no descendant matches selector.
func (e *Element) AssertDoesntContainElement(selector string) *Element {
	e.t.Helper()
	e.scope().assertDoesntContain(selector)
	return e
}

// AssertElementsCount asserts selector matches exactly expected descendants.
func (e *Element) AssertElementsCount(selector string, expected int) *Element {
	e.t.Helper()
	e.scope().assertCount(selector, equal, expected)
	return e
}

// AssertElementsGreaterThan asserts selector matches more than expected descendants.
func (e *Element) AssertElementsGreaterThan(selector string, expected int) *Element {
	e.t.Helper()
	e.scope().assertCount(selector, greaterThan, expected)
	return e
}

// AssertElementsGreaterThanOrEqual asserts selector matches at least expected descendants.
func (e *Element) AssertElementsGreaterThanOrEqual(selector string, expected int) *Element {
	e.t.Helper()
	e.scope().assertCount(selector, greaterThanOrEqual, expected)
	return e
}

// AssertElementsLessThan asserts selector matches fewer than expected descendants.
func (e *Element) AssertElementsLessThan(selector string, expected int) *Element {
	e.t.Helper()
	e.scope().assertCount(selector, lessThan, expected)
	return e
}

// AssertElementsLessThanOrEqual asserts selector matches at most expected descendants.
func (e *Element) AssertElementsLessThanOrEqual(selector string, expected int) *Element {
	e.t.Helper()
	e.scope().assertCount(selector, lessThanOrEqual, expected)
	return e
}

// With calls fn with the single descendant matching selector.
func (e *Element) With(selector string, fn func(*Element)) *Element {
	e.t.Helper()
	e.scope().with(selector, fn)
	return e
}

// Elsewhere resolves selector against the whole document rather than e.
func (e *Element) Elsewhere(selector string, fn func(*Element)) *Element {
	e.t.Helper()
	e.doc.scope().with(selector, fn)
	return e
}

// Many calls fn with every descendant matching selector. At least one must match.
func (e *Element) Many(selector string, fn func(*Elements)) *Element {
	e.t.Helper()
	e.scope().many(selector, fn)
	return e
}

// When calls fn only if cond holds.
func (e *Element) When(cond bool, fn func(*Element)) *Element {
	if cond {
		fn(e)
	}
	return e
}

// WithForm runs fn against the single <form> matching selector.
func (e *Element) WithForm(selector string, fn func(*Form)) *Element {
	e.t.Helper()
	withAs(e.scope(), selector, "form", fn)
	return e
}

// WithInput runs fn against the single <input> matching selector.
func (e *Element) WithInput(selector string, fn func(*Input)) *Element {
	e.t.Helper()
	withAs(e.scope(), selector, "input", fn)
	return e
}

// WithSelect runs fn against the single <select> matching selector.
func (e *Element) WithSelect(selector string, fn func(*Select)) *Element {
	e.t.Helper()
	withAs(e.scope(), selector, "select", fn)
	return e
}

// WithTextarea runs fn against the single <textarea> matching selector.
func (e *Element) WithTextarea(selector string, fn func(*Textarea)) *Element {
	e.t.Helper()
	withAs(e.scope(), selector, "textarea", fn)
	return e
}
