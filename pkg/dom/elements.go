package dom

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

// Elements is an ordered list of elements matched by one selector.
type Elements struct {
	t        TestingT
	doc      *Document
	selector string
	items    []*Element
}

func newElements(t TestingT, doc *Document, selector string, sel *goquery.Selection) *Elements {
	els := &Elements{t: t, doc: doc, selector: selector}
	if sel == nil {
		return els
	}
	sel.Each(func(_ int, s *goquery.Selection) {
		els.items = append(els.items, newElement(t, doc, s))
	})
	return els
}

// Selector returns the selector or expression the list came from.
func (l *Elements) Selector() string {
	return l.selector
}

func (l *Elements) Len() int {
	return len(l.items)
}

// At returns the i-th element, or nil when out of range.
func (l *Elements) At(i int) *Element {
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

func (l *Elements) First() *Element {
	return l.At(0)
}

func (l *Elements) Last() *Element {
	return l.At(len(l.items) - 1)
}

// Slice returns a copy of the elements.
func (l *Elements) Slice() []*Element {
	out := make([]*Element, len(l.items))
	copy(out, l.items)
	return out
}

func (l *Elements) Each(fn func(int, *Element)) *Elements {
	for i, el := range l.items {
		fn(i, el)
	}
	return l
}

// Texts returns the normalized text of every element.
func (l *Elements) Texts() []string {
	texts := make([]string, len(l.items))
	for i, el := range l.items {
		texts[i] = el.Text().String()
	}
	return texts
}

func (l *Elements) subject() string {
	return fmt.Sprintf("The selector [%s]", l.selector)
}

// AssertCount asserts exactly expected elements.
func (l *Elements) AssertCount(expected int) *Elements {
	l.t.Helper()
	assertCount(l.t, l.Len(), equal, expected, l.subject())
	return l
}

// AssertCountGreaterThan asserts more than expected elements.
func (l *Elements) AssertCountGreaterThan(expected int) *Elements {
	l.t.Helper()
	assertCount(l.t, l.Len(), greaterThan, expected, l.subject())
	return l
}

// AssertCountGreaterThanOrEqual asserts at least expected elements.
func (l *Elements) AssertCountGreaterThanOrEqual(expected int) *Elements {
	l.t.Helper()
	assertCount(l.t, l.Len(), greaterThanOrEqual, expected, l.subject())
	return l
}

// AssertCountLessThan asserts fewer than expected elements.
func (l *Elements) AssertCountLessThan(expected int) *Elements {
	l.t.Helper()
	assertCount(l.t, l.Len(), lessThan, expected, l.subject())
	return l
}

// AssertCountLessThanOrEqual asserts at most expected elements.
func (l *Elements) AssertCountLessThanOrEqual(expected int) *Elements {
	l.t.Helper()
	assertCount(l.t, l.Len(), lessThanOrEqual, expected, l.subject())
	return l
}

func (l *Elements) AssertEmpty() *Elements {
	l.t.Helper()
	require.Zero(l.t, l.Len(), fmt.Sprintf("%s matches %d elements, expected none", l.subject(), l.Len()))
	return l
}

func (l *Elements) AssertNotEmpty() *Elements {
	l.t.Helper()
	require.NotZero(l.t, l.Len(), fmt.Sprintf("%s matches no elements", l.subject()))
	return l
}

// AssertEach calls fn for every element.
func (l *Elements) AssertEach(fn func(*Element)) *Elements {
	for _, el := range l.items {
		fn(el)
	}
	return l
}

// AssertAny asserts pred holds for at least one element.
func (l *Elements) AssertAny(pred func(*Element) bool, msg string) *Elements {
	l.t.Helper()
	found := false
	for _, el := range l.items {
		if pred(el) {
			found = true
			break
		}
	}
	require.True(l.t, found, fmt.Sprintf("%s: no element satisfies: %s", l.subject(), msg))
	return l
}

// AssertTexts asserts the normalized texts, in document order.
func (l *Elements) AssertTexts(expected ...string) *Elements {
	l.t.Helper()
	want := make([]string, len(expected))
	for i, s := range expected {
		want[i] = NormalizeWhitespace(s)
	}
	require.Equal(l.t, want, l.Texts(), fmt.Sprintf("%s texts don't match", l.subject()))
	return l
}
