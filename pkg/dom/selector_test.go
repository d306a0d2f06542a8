package dom

import (
	"testing"

	"golang.org/x/net/html"
)

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"a", "a"},
		{"  a \n\t b  ", "a b"},
		{"a  b", "a b"},
	}

	for _, tt := range tests {
		if got := NormalizeWhitespace(tt.in); got != tt.want {
			t.Errorf("NormalizeWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDescribe(t *testing.T) {
	rt := &recordingT{}
	d := page(t, rt)

	tests := []struct {
		selector string
		want     string
	}{
		{"nav", "nav#main-nav.nav.nav-dark"},
		{"h1", "h1.title"},
		{"#email", `input#email.form-control[type="email"][name="email"]`},
		{"select[name=country]", `select[name="country"]`},
		{"input[name=q]", `input[name="q"]`},
		{"#items > li", "li"},
	}

	for _, tt := range tests {
		el := d.Query(tt.selector)
		if el == nil {
			t.Fatalf("no element for %s", tt.selector)
		}
		if got := el.Selector(); got != tt.want {
			t.Errorf("Describe(%s) = %q, want %q", tt.selector, got, tt.want)
		}
	}
	expectPass(t, rt)
}

func TestDescribe_NonElements(t *testing.T) {
	if got := Describe(nil); got != "" {
		t.Errorf("Describe(nil) = %q", got)
	}
	if got := Describe(&html.Node{Type: html.DocumentNode}); got != "#document" {
		t.Errorf("Describe(document) = %q", got)
	}
	if got := Describe(&html.Node{Type: html.TextNode, Data: "x"}); got != "#text" {
		t.Errorf("Describe(text) = %q", got)
	}
}
