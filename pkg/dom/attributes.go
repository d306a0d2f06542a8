package dom

import (
	"fmt"
	"strings"

	"github.com/stretchr/testify/require"
)

// Attributes is the attribute list of one element.
type Attributes struct {
	el    *Element
	names []string
	vals  map[string]string
}

func newAttributes(el *Element) *Attributes {
	a := &Attributes{el: el, vals: make(map[string]string)}
	n := el.Node()
	if n == nil {
		return a
	}
	for _, attr := range n.Attr {
		key := attr.Key
		if attr.Namespace != "" {
			key = attr.Namespace + ":" + attr.Key
		}
		if _, dup := a.vals[key]; dup {
			continue
		}
		a.names = append(a.names, key)
		a.vals[key] = attr.Val
	}
	return a
}

// Get returns the value of name and whether it is present.
func (a *Attributes) Get(name string) (string, bool) {
	v, ok := a.vals[strings.ToLower(name)]
	return v, ok
}

func (a *Attributes) Has(name string) bool {
	_, ok := a.Get(name)
	return ok
}

// Names returns the attribute names in document order.
func (a *Attributes) Names() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

func (a *Attributes) Len() int {
	return len(a.names)
}

// Map returns a copy of the name to value mapping.
func (a *Attributes) Map() map[string]string {
	out := make(map[string]string, len(a.vals))
	for k, v := range a.vals {
		out[k] = v
	}
	return out
}

// value fetches name for comparison, failing when it is absent.
func (a *Attributes) value(name string) (string, bool) {
	t := a.el.t
	t.Helper()
	v, ok := a.Get(name)
	require.True(t, ok, a.el.message("is missing the attribute [%s]", name))
	return attributeValue(name, v), ok
}

func (a *Attributes) AssertPresent(name string) *Attributes {
	a.el.t.Helper()
	require.True(a.el.t, a.Has(name), a.el.message("is missing the attribute [%s]", name))
	return a
}

func (a *Attributes) AssertMissing(name string) *Attributes {
	a.el.t.Helper()
	require.False(a.el.t, a.Has(name), a.el.message("has the attribute [%s]", name))
	return a
}

func (a *Attributes) AssertEquals(name, expected string) *Attributes {
	a.el.t.Helper()
	if v, ok := a.value(name); ok {
		require.Equal(a.el.t, attributeValue(name, expected), v,
			a.el.message("attribute [%s] doesn't equal [%s]", name, expected))
	}
	return a
}

func (a *Attributes) AssertContains(name, needle string) *Attributes {
	a.el.t.Helper()
	if v, ok := a.value(name); ok {
		require.Contains(a.el.t, v, needle,
			a.el.message("attribute [%s] doesn't contain [%s]", name, needle))
	}
	return a
}

func (a *Attributes) AssertDoesntContain(name, needle string) *Attributes {
	a.el.t.Helper()
	if v, ok := a.value(name); ok {
		require.NotContains(a.el.t, v, needle,
			a.el.message("attribute [%s] contains [%s]", name, needle))
	}
	return a
}

func (a *Attributes) AssertStartsWith(name, prefix string) *Attributes {
	a.el.t.Helper()
	if v, ok := a.value(name); ok {
		require.True(a.el.t, strings.HasPrefix(v, prefix),
			a.el.message("attribute [%s] doesn't start with [%s], got [%s]", name, prefix, v))
	}
	return a
}

func (a *Attributes) AssertEndsWith(name, suffix string) *Attributes {
	a.el.t.Helper()
	if v, ok := a.value(name); ok {
		require.True(a.el.t, strings.HasSuffix(v, suffix),
			a.el.message("attribute [%s] doesn't end with [%s], got [%s]", name, suffix, v))
	}
	return a
}

// AssertEmpty asserts name is present with an empty (or whitespace) value.
func (a *Attributes) AssertEmpty(name string) *Attributes {
	a.el.t.Helper()
	if v, ok := a.value(name); ok {
		require.Empty(a.el.t, strings.TrimSpace(v),
			a.el.message("attribute [%s] is not empty", name))
	}
	return a
}

func (a *Attributes) AssertCount(expected int) *Attributes {
	a.el.t.Helper()
	require.Equal(a.el.t, expected, a.Len(),
		a.el.message("has %d attributes instead of %d", a.Len(), expected))
	return a
}

func (a *Attributes) String() string {
	parts := make([]string, len(a.names))
	for i, name := range a.names {
		parts[i] = fmt.Sprintf("%s=%q", name, a.vals[name])
	}
	return strings.Join(parts, " ")
}
