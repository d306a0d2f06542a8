package dom_test

import (
	"fmt"

	"github.com/jmylchreest/domassert/pkg/dom"
)

// printT prints failures instead of failing a test.
type printT struct{}

func (printT) Errorf(format string, args ...any) { fmt.Println("assertion failed") }
func (printT) FailNow()                          {}
func (printT) Helper()                           {}

func ExampleParse() {
	doc := dom.Parse(printT{}, `<ul id="items"><li class="done">One</li><li>  Two
	</li></ul>`)

	doc.AssertElementsCount("li", 2).
		With("#items", func(ul *dom.Element) {
			ul.AssertTag("ul").AssertContainsElement("li.done")
			fmt.Println(ul.Selector())
		})
	fmt.Println(doc.QueryAll("li").Texts())
	// Output:
	// ul#items
	// [One Two]
}

func ExampleDocument_WithForm() {
	doc := dom.Parse(printT{}, `<form method="post" action="/profile">
	  <input type="hidden" name="_method" value="put">
	  <input type="hidden" name="_token" value="s3cret">
	  <input type="email" name="email" value="ada@example.com">
	</form>`)

	doc.WithForm("form", func(form *dom.Form) {
		form.AssertMethod("PUT").AssertHasCSRF("").AssertHasField("email")
		fmt.Println(form.Method())
	})
	doc.WithInput("input[type=email]", func(in *dom.Input) {
		fmt.Println(in.Selector())
	})
	// Output:
	// PUT
	// input[type="email"][name="email"]
}

func ExampleNormalizeWhitespace() {
	fmt.Printf("%q\n", dom.NormalizeWhitespace("  Account\n\t settings "))
	// Output: "Account settings"
}

func ExampleDocument_AssertElementsGreaterThan() {
	doc := dom.Parse(printT{}, `<nav><a href="/">Home</a><a href="/about">About</a><a href="/blog">Blog</a></nav>`)

	doc.AssertElementsGreaterThan("nav a", 2).
		AssertElementsGreaterThanOrEqual("nav a", 3).
		AssertElementsLessThan("nav a", 4).
		AssertElementsLessThanOrEqual("nav a", 3).
		AssertElementsLessThan("nav a", 3)
	// Output: assertion failed
}
