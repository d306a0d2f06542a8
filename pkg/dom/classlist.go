package dom

import (
	"slices"
	"strings"

	"github.com/stretchr/testify/require"
)

// ClassList holds the class tokens of one element.
type ClassList struct {
	el     *Element
	tokens []string
}

func newClassList(el *Element) *ClassList {
	value, _ := el.sel.Attr("class")
	return &ClassList{el: el, tokens: classTokens(value)}
}

// Values returns the tokens in document order.
func (c *ClassList) Values() []string {
	return slices.Clone(c.tokens)
}

func (c *ClassList) Contains(class string) bool {
	return slices.Contains(c.tokens, class)
}

func (c *ClassList) Len() int {
	return len(c.tokens)
}

func (c *ClassList) String() string {
	return strings.Join(c.tokens, " ")
}

func (c *ClassList) AssertContains(class string) *ClassList {
	c.el.t.Helper()
	require.True(c.el.t, c.Contains(class), c.el.message("doesn't have the class [%s]", class))
	return c
}

func (c *ClassList) AssertMissing(class string) *ClassList {
	c.el.t.Helper()
	require.False(c.el.t, c.Contains(class), c.el.message("has the class [%s]", class))
	return c
}

func (c *ClassList) AssertContainsAll(classes ...string) *ClassList {
	c.el.t.Helper()
	require.Subset(c.el.t, c.tokens, classes,
		c.el.message("doesn't have all the classes [%s]", strings.Join(classes, " ")))
	return c
}

func (c *ClassList) AssertContainsAny(classes ...string) *ClassList {
	c.el.t.Helper()
	found := slices.ContainsFunc(classes, c.Contains)
	require.True(c.el.t, found,
		c.el.message("doesn't have any of the classes [%s]", strings.Join(classes, " ")))
	return c
}

// AssertEquals asserts the list holds exactly classes, in any order.
func (c *ClassList) AssertEquals(classes ...string) *ClassList {
	c.el.t.Helper()
	require.ElementsMatch(c.el.t, classTokens(strings.Join(classes, " ")), c.tokens,
		c.el.message("class list doesn't equal [%s]", strings.Join(classes, " ")))
	return c
}

func (c *ClassList) AssertEmpty() *ClassList {
	c.el.t.Helper()
	require.Empty(c.el.t, c.tokens, c.el.message("has classes [%s]", c.String()))
	return c
}

func (c *ClassList) AssertNotEmpty() *ClassList {
	c.el.t.Helper()
	require.NotEmpty(c.el.t, c.tokens, c.el.message("has no classes"))
	return c
}

func (c *ClassList) AssertCount(expected int) *ClassList {
	c.el.t.Helper()
	require.Len(c.el.t, c.tokens, expected,
		c.el.message("has %d classes instead of %d", len(c.tokens), expected))
	return c
}
