package dom

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// scope is the part of the tree a Document or Element searches.
type scope struct {
	t     TestingT
	doc   *Document
	root  *goquery.Selection
	label string
}

// find returns the elements below the scope matching selector.
func (s scope) find(selector string) (*Elements, bool) {
	s.t.Helper()
	m, ok := compile(s.t, selector)
	if !ok {
		return newElements(s.t, s.doc, selector, nil), false
	}
	return newElements(s.t, s.doc, selector, s.root.FindMatcher(m)), true
}

func (s scope) query(selector string) *Element {
	s.t.Helper()
	els, _ := s.find(selector)
	return els.First()
}

func (s scope) xpath(expr string) *Elements {
	s.t.Helper()
	var found []*html.Node
	for _, n := range s.root.Nodes {
		nodes, err := htmlquery.QueryAll(n, expr)
		if err != nil {
			require.Fail(s.t, "invalid xpath", fmt.Sprintf("The xpath expression [%s] is invalid: %v", expr, err))
			return newElements(s.t, s.doc, expr, nil)
		}
		for _, node := range nodes {
			if node.Type == html.ElementNode {
				found = append(found, node)
			}
		}
	}
	sel := s.doc.doc.Selection.Slice(0, 0).AddNodes(found...)
	return newElements(s.t, s.doc, expr, sel)
}

// one resolves selector to exactly one element.
func (s scope) one(selector string) (*Element, bool) {
	s.t.Helper()
	els, ok := s.find(selector)
	if !ok {
		return nil, false
	}
	if els.Len() != 1 {
		require.Fail(s.t, "selector cardinality",
			fmt.Sprintf("The selector [%s] matches %d elements instead of exactly 1", selector, els.Len()))
		return nil, false
	}
	return els.First(), true
}

func (s scope) with(selector string, fn func(*Element)) {
	s.t.Helper()
	el, ok := s.one(selector)
	if !ok {
		return
	}
	fn(el)
}

func (s scope) many(selector string, fn func(*Elements)) {
	s.t.Helper()
	els, ok := s.find(selector)
	if !ok {
		return
	}
	if els.Len() == 0 {
		require.Fail(s.t, "selector cardinality",
			fmt.Sprintf("The selector [%s] matches no elements", selector))
		return
	}
	fn(els)
}

// withAs scopes into selector and hands fn the promoted wrapper when it has
// type T.
func withAs[T Assertable](s scope, selector, tag string, fn func(T)) {
	s.t.Helper()
	s.with(selector, func(el *Element) {
		el.t.Helper()
		promoted, ok := Promote(el).(T)
		if !ok {
			require.Fail(el.t, "unexpected element type",
				fmt.Sprintf("The element [%s] is not a <%s>", el.Selector(), tag))
			return
		}
		fn(promoted)
	})
}

func (s scope) assertContains(selector string) {
	s.t.Helper()
	els, ok := s.find(selector)
	if !ok {
		return
	}
	require.NotZero(s.t, els.Len(),
		fmt.Sprintf("Expected %s to contain an element matching [%s]", s.label, selector))
}

func (s scope) assertDoesntContain(selector string) {
	s.t.Helper()
	els, ok := s.find(selector)
	if !ok {
		return
	}
	require.Zero(s.t, els.Len(),
		fmt.Sprintf("Expected %s not to contain an element matching [%s], found %d", s.label, selector, els.Len()))
}

// comparison names a count assertion.
type comparison int

const (
	equal comparison = iota
	greaterThan
	greaterThanOrEqual
	lessThan
	lessThanOrEqual
)

func (s scope) assertCount(selector string, cmp comparison, expected int) {
	s.t.Helper()
	els, ok := s.find(selector)
	if !ok {
		return
	}
	assertCount(s.t, els.Len(), cmp, expected,
		fmt.Sprintf("The selector [%s] in %s", selector, s.label))
}

// assertCount compares a count, using subject to open the failure message.
func assertCount(t TestingT, actual int, cmp comparison, expected int, subject string) {
	t.Helper()
	switch cmp {
	case equal:
		require.Equal(t, expected, actual,
			fmt.Sprintf("%s matches %d elements instead of %d", subject, actual, expected))
	case greaterThan:
		require.Greater(t, actual, expected,
			fmt.Sprintf("%s matches %d elements, expected more than %d", subject, actual, expected))
	case greaterThanOrEqual:
		require.GreaterOrEqual(t, actual, expected,
			fmt.Sprintf("%s matches %d elements, expected at least %d", subject, actual, expected))
	case lessThan:
		require.Less(t, actual, expected,
			fmt.Sprintf("%s matches %d elements, expected fewer than %d", subject, actual, expected))
	case lessThanOrEqual:
		require.LessOrEqual(t, actual, expected,
			fmt.Sprintf("%s matches %d elements, expected at most %d", subject, actual, expected))
	}
}
