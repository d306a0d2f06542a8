package dom

import (
	"reflect"
	"testing"
)

// --- Elements Tests ---

func TestElements_Accessors(t *testing.T) {
	rt := &recordingT{}
	items := page(t, rt).QueryAll("#items li")

	if items.Selector() != "#items li" {
		t.Errorf("Selector() = %q", items.Selector())
	}
	if items.Len() != 3 {
		t.Fatalf("Len() = %d", items.Len())
	}
	if items.First().Text().String() != "One" || items.Last().Text().String() != "Three" {
		t.Errorf("unexpected First/Last: %v", items.Texts())
	}
	if items.At(3) != nil || items.At(-1) != nil {
		t.Error("expected nil for out of range index")
	}

	var seen []int
	items.Each(func(i int, _ *Element) { seen = append(seen, i) })
	if !reflect.DeepEqual(seen, []int{0, 1, 2}) {
		t.Errorf("Each visited %v", seen)
	}

	s := items.Slice()
	s[0] = nil
	if items.First() == nil {
		t.Error("Slice() must return a copy")
	}
	expectPass(t, rt)
}

func TestElements_Assertions_Pass(t *testing.T) {
	rt := &recordingT{}
	d := page(t, rt)

	d.QueryAll("li").
		AssertCount(3).
		AssertCountGreaterThan(2).
		AssertCountGreaterThanOrEqual(3).
		AssertCountLessThan(4).
		AssertCountLessThanOrEqual(3).
		AssertNotEmpty().
		AssertTexts("One", "Two", " Three ").
		AssertAny(func(e *Element) bool { return e.Text().String() == "Two" }, "text is Two")
	d.QueryAll("table").AssertEmpty()

	expectPass(t, rt)
}

func TestElements_AssertCount_Fails(t *testing.T) {
	rt := &recordingT{}
	page(t, rt).QueryAll("li").AssertCount(5)

	expectFailure(t, rt, "The selector [li] matches 3 elements instead of 5")
}

func TestElements_AssertAny_Fails(t *testing.T) {
	rt := &recordingT{}
	page(t, rt).QueryAll("li").AssertAny(func(e *Element) bool { return false }, "never")

	expectFailure(t, rt, "The selector [li]: no element satisfies: never")
}

func TestElements_AssertNotEmpty_Fails(t *testing.T) {
	rt := &recordingT{}
	page(t, rt).QueryAll("table").AssertNotEmpty()

	expectFailure(t, rt, "The selector [table] matches no elements")
}

// --- Attributes Tests ---

func TestAttributes_Accessors(t *testing.T) {
	rt := &recordingT{}
	attrs := page(t, rt).Query("nav").Attributes()

	want := []string{"id", "class", "data-state", "aria-label"}
	if !reflect.DeepEqual(attrs.Names(), want) {
		t.Errorf("Names() = %v, want %v", attrs.Names(), want)
	}
	if attrs.Len() != 4 {
		t.Errorf("Len() = %d", attrs.Len())
	}
	if v, ok := attrs.Get("Class"); !ok || v != "nav  nav-dark" {
		t.Errorf("Get(Class) = %q, %v", v, ok)
	}
	if attrs.Has("hidden") {
		t.Error("Has(hidden) should be false")
	}
	m := attrs.Map()
	m["id"] = "changed"
	if v, _ := attrs.Get("id"); v != "main-nav" {
		t.Error("Map() must return a copy")
	}
	if attrs.String() == "" {
		t.Error("expected String() to render attributes")
	}
	expectPass(t, rt)
}

func TestAttributes_Assertions(t *testing.T) {
	rt := &recordingT{}
	page(t, rt).With("#email", func(el *Element) {
		el.Attributes().
			AssertPresent("required").
			AssertMissing("checked").
			AssertEquals("type", "email").
			AssertContains("value", "@example").
			AssertDoesntContain("value", " ").
			AssertStartsWith("placeholder", "Em").
			AssertEndsWith("placeholder", "ail").
			AssertEmpty("required")
	})

	expectPass(t, rt)
}

func TestAttributes_OnlyClassAndStyleAreNormalized(t *testing.T) {
	rt := &recordingT{}
	Parse(rt, `<div title="a  b" style="color: red;   margin: 0"></div>`).With("div", func(div *Element) {
		div.AssertAttributeEquals("style", "color: red; margin: 0").
			AssertAttributeEquals("title", "a  b")
	})
	expectPass(t, rt)

	rt = &recordingT{}
	Parse(rt, `<div title="a  b"></div>`).With("div", func(div *Element) {
		div.AssertAttributeEquals("title", "a b")
	})
	expectFailure(t, rt, "attribute [title] doesn't equal [a b]")
}

// --- ClassList Tests ---

func TestClassList_Tokens(t *testing.T) {
	rt := &recordingT{}
	classes := Parse(rt, `<p class=" b  a b c "></p>`).Query("p").Classes()

	if !reflect.DeepEqual(classes.Values(), []string{"b", "a", "c"}) {
		t.Errorf("Values() = %v", classes.Values())
	}
	if classes.String() != "b a c" {
		t.Errorf("String() = %q", classes.String())
	}
	if !classes.Contains("a") || classes.Contains("d") {
		t.Error("Contains() mismatch")
	}
	classes.AssertCount(3).AssertEquals("a", "b", "c").AssertNotEmpty()
	expectPass(t, rt)
}

func TestClassList_AssertContainsAll_Fails(t *testing.T) {
	rt := &recordingT{}
	page(t, rt).Query("h1").Classes().AssertContainsAll("title", "large")

	expectFailure(t, rt, "The element [h1.title] doesn't have all the classes [title large]")
}

func TestClassList_AssertEmpty_Fails(t *testing.T) {
	rt := &recordingT{}
	page(t, rt).Query("h1").Classes().AssertEmpty()

	expectFailure(t, rt, "The element [h1.title] has classes [title]")
}

// --- Text Tests ---

func TestText_RawAndNormalized(t *testing.T) {
	rt := &recordingT{}
	text := page(t, rt).Query("h1").Text()

	if text.Raw() == text.String() {
		t.Error("expected raw text to keep original whitespace")
	}
	if text.String() != "Account settings" {
		t.Errorf("String() = %q", text.String())
	}
	text.AssertEquals("Account\n settings").
		AssertContains("count set").
		AssertStartsWith("Account").
		AssertEndsWith("settings").
		AssertMatches(`^Account`).
		AssertNotEmpty()
	expectPass(t, rt)
}

func TestText_AssertDoesntContain_Fails(t *testing.T) {
	rt := &recordingT{}
	page(t, rt).Query("h1").Text().AssertDoesntContain("Account")

	expectFailure(t, rt, "The element [h1.title] text contains [Account]")
}

func TestText_AssertMatches_InvalidPattern(t *testing.T) {
	rt := &recordingT{}
	Parse(rt, "<p>hi</p>").Query("p").AssertTextMatches("(")

	expectFailure(t, rt, "The element [p] text pattern [(] is invalid")
}
