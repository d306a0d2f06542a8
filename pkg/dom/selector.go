package dom

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// formFields get a [name] qualifier in element descriptions.
var formFields = map[string]bool{
	"input":    true,
	"select":   true,
	"textarea": true,
	"button":   true,
}

// Describe builds a CSS-like selector for n that reads well in failure
// messages, e.g. input#email.form-control[type="email"][name="email"].
func Describe(n *html.Node) string {
	if n == nil {
		return ""
	}
	switch n.Type {
	case html.DocumentNode:
		return "#document"
	case html.TextNode:
		return "#text"
	case html.CommentNode:
		return "#comment"
	}

	var sb strings.Builder
	sb.WriteString(n.Data)

	if id := nodeAttr(n, "id"); id != "" {
		sb.WriteString("#")
		sb.WriteString(id)
	}
	for _, class := range classTokens(nodeAttr(n, "class")) {
		sb.WriteString(".")
		sb.WriteString(class)
	}
	if n.Data == "input" {
		if typ := nodeAttr(n, "type"); typ != "" {
			sb.WriteString(fmt.Sprintf("[type=%q]", typ))
		}
	}
	if formFields[n.Data] {
		if name := nodeAttr(n, "name"); name != "" {
			sb.WriteString(fmt.Sprintf("[name=%q]", name))
		}
	}

	return sb.String()
}

// compile parses selector, failing t when it is not valid CSS.
func compile(t TestingT, selector string) (cascadia.Selector, bool) {
	t.Helper()
	m, err := cascadia.Compile(selector)
	if err != nil {
		require.Fail(t, "invalid selector", fmt.Sprintf("The selector [%s] is invalid: %v", selector, err))
		return nil, false
	}
	return m, true
}

func nodeAttr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val
		}
	}
	return ""
}
