package dom

import (
	"regexp"
	"strings"

	"github.com/stretchr/testify/require"
)

// Text is the text content of one element. Assertions compare the
// whitespace-normalized form.
type Text struct {
	el  *Element
	raw string
}

func newText(el *Element, raw string) *Text {
	return &Text{el: el, raw: raw}
}

// Raw returns the text exactly as it appears in the document.
func (x *Text) Raw() string {
	return x.raw
}

// String returns the normalized text.
func (x *Text) String() string {
	return NormalizeWhitespace(x.raw)
}

func (x *Text) AssertEquals(expected string) *Text {
	x.el.t.Helper()
	require.Equal(x.el.t, NormalizeWhitespace(expected), x.String(),
		x.el.message("text doesn't equal [%s]", expected))
	return x
}

func (x *Text) AssertContains(needle string) *Text {
	x.el.t.Helper()
	require.Contains(x.el.t, x.String(), NormalizeWhitespace(needle),
		x.el.message("text doesn't contain [%s]", needle))
	return x
}

func (x *Text) AssertDoesntContain(needle string) *Text {
	x.el.t.Helper()
	require.NotContains(x.el.t, x.String(), NormalizeWhitespace(needle),
		x.el.message("text contains [%s]", needle))
	return x
}

func (x *Text) AssertStartsWith(prefix string) *Text {
	x.el.t.Helper()
	require.True(x.el.t, strings.HasPrefix(x.String(), NormalizeWhitespace(prefix)),
		x.el.message("text doesn't start with [%s], got [%s]", prefix, x.String()))
	return x
}

func (x *Text) AssertEndsWith(suffix string) *Text {
	x.el.t.Helper()
	require.True(x.el.t, strings.HasSuffix(x.String(), NormalizeWhitespace(suffix)),
		x.el.message("text doesn't end with [%s], got [%s]", suffix, x.String()))
	return x
}

// AssertMatches asserts the normalized text matches a regular expression.
func (x *Text) AssertMatches(pattern string) *Text {
	x.el.t.Helper()
	re, err := regexp.Compile(pattern)
	if err != nil {
		require.Fail(x.el.t, "invalid pattern", x.el.message("text pattern [%s] is invalid: %v", pattern, err))
		return x
	}
	require.Regexp(x.el.t, re, x.String(),
		x.el.message("text doesn't match [%s]", pattern))
	return x
}

func (x *Text) AssertEmpty() *Text {
	x.el.t.Helper()
	require.Empty(x.el.t, x.String(), x.el.message("text is not empty"))
	return x
}

func (x *Text) AssertNotEmpty() *Text {
	x.el.t.Helper()
	require.NotEmpty(x.el.t, x.String(), x.el.message("text is empty"))
	return x
}
