package dom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

// Assertable is implemented by Element and by every specialized wrapper.
type Assertable interface {
	Base() *Element
}

type promotion struct {
	matches func(*Element) bool
	wrap    func(*Element) Assertable
}

func tagIs(tag string) func(*Element) bool {
	return func(e *Element) bool { return e.Tag() == tag }
}

// promotions is scanned in order; the first match wins.
var promotions = []promotion{
	{matches: tagIs("form"), wrap: func(e *Element) Assertable { return &Form{Element: e} }},
	{matches: tagIs("input"), wrap: func(e *Element) Assertable { return &Input{Element: e} }},
	{matches: tagIs("select"), wrap: func(e *Element) Assertable { return &Select{Element: e} }},
	{matches: tagIs("textarea"), wrap: func(e *Element) Assertable { return &Textarea{Element: e} }},
}

// Promote returns the specialized wrapper for e, or e itself when no
// specialization applies.
func Promote(e *Element) Assertable {
	for _, p := range promotions {
		if p.matches(e) {
			return p.wrap(e)
		}
	}
	return e
}

// Form adds form-specific assertions.
type Form struct {
	*Element
}

// Method returns the effective method, honouring a hidden _method field.
func (f *Form) Method() string {
	if spoof := f.sel.Find(`input[type=hidden][name="_method"]`).First(); spoof.Length() > 0 {
		if v, ok := spoof.Attr("value"); ok && v != "" {
			return strings.ToUpper(v)
		}
	}
	if m, ok := f.Attr("method"); ok && m != "" {
		return strings.ToUpper(m)
	}
	return "GET"
}

func (f *Form) AssertMethod(expected string) *Form {
	f.t.Helper()
	require.Equal(f.t, strings.ToUpper(expected), f.Method(),
		f.message("doesn't use the method [%s]", strings.ToUpper(expected)))
	return f
}

func (f *Form) AssertAction(expected string) *Form {
	f.t.Helper()
	action, _ := f.Attr("action")
	require.Equal(f.t, expected, action, f.message("doesn't submit to [%s]", expected))
	return f
}

// AssertAcceptsUpload asserts the form is multipart encoded.
func (f *Form) AssertAcceptsUpload() *Form {
	f.t.Helper()
	enctype, _ := f.Attr("enctype")
	require.Equal(f.t, "multipart/form-data", strings.ToLower(strings.TrimSpace(enctype)),
		f.message("doesn't accept uploads"))
	return f
}

// AssertHasField asserts a named control exists inside the form.
func (f *Form) AssertHasField(name string) *Form {
	f.t.Helper()
	n := f.field(name).Length()
	require.NotZero(f.t, n, f.message("has no field named [%s]", name))
	return f
}

func (f *Form) AssertHiddenInput(name, expected string) *Form {
	f.t.Helper()
	s := f.sel.Find(fmt.Sprintf("input[type=hidden][name=%q]", name)).First()
	require.NotZero(f.t, s.Length(), f.message("has no hidden input named [%s]", name))
	if s.Length() == 0 {
		return f
	}
	v, _ := s.Attr("value")
	require.Equal(f.t, expected, v, f.message("hidden input [%s] doesn't equal [%s]", name, expected))
	return f
}

// AssertHasCSRF asserts a hidden token field with a value. An empty
// fieldName defaults to _token.
func (f *Form) AssertHasCSRF(fieldName string) *Form {
	f.t.Helper()
	if fieldName == "" {
		fieldName = "_token"
	}
	s := f.sel.Find(fmt.Sprintf("input[type=hidden][name=%q]", fieldName)).First()
	v, _ := s.Attr("value")
	require.NotEmpty(f.t, strings.TrimSpace(v), f.message("has no CSRF token field [%s]", fieldName))
	return f
}

// AssertSubmitButton asserts a submit control labelled label.
func (f *Form) AssertSubmitButton(label string) *Form {
	f.t.Helper()
	want := NormalizeWhitespace(label)
	found := false
	f.sel.Find(`button, input[type=submit]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if goquery.NodeName(s) == "button" {
			typ, ok := s.Attr("type")
			if ok && !strings.EqualFold(typ, "submit") {
				return true
			}
			found = NormalizeWhitespace(s.Text()) == want
		} else {
			v, _ := s.Attr("value")
			found = NormalizeWhitespace(v) == want
		}
		return !found
	})
	require.True(f.t, found, f.message("has no submit button [%s]", label))
	return f
}

func (f *Form) field(name string) *goquery.Selection {
	return f.sel.Find(fmt.Sprintf("input[name=%q], select[name=%q], textarea[name=%q], button[name=%q]",
		name, name, name, name))
}

// Input adds <input> assertions.
type Input struct {
	*Element
}

// Type returns the input type, text when unset.
func (i *Input) Type() string {
	if typ, ok := i.Attr("type"); ok && typ != "" {
		return strings.ToLower(typ)
	}
	return "text"
}

func (i *Input) AssertType(expected string) *Input {
	i.t.Helper()
	require.Equal(i.t, strings.ToLower(expected), i.Type(), i.message("is not of type [%s]", expected))
	return i
}

func (i *Input) AssertName(expected string) *Input {
	i.t.Helper()
	name, _ := i.Attr("name")
	require.Equal(i.t, expected, name, i.message("is not named [%s]", expected))
	return i
}

func (i *Input) AssertValue(expected string) *Input {
	i.t.Helper()
	v, _ := i.Attr("value")
	require.Equal(i.t, expected, v, i.message("value doesn't equal [%s]", expected))
	return i
}

func (i *Input) AssertPlaceholder(expected string) *Input {
	i.t.Helper()
	v, _ := i.Attr("placeholder")
	require.Equal(i.t, expected, v, i.message("placeholder doesn't equal [%s]", expected))
	return i
}

func (i *Input) AssertChecked() *Input {
	i.t.Helper()
	_, ok := i.Attr("checked")
	require.True(i.t, ok, i.message("is not checked"))
	return i
}

func (i *Input) AssertNotChecked() *Input {
	i.t.Helper()
	_, ok := i.Attr("checked")
	require.False(i.t, ok, i.message("is checked"))
	return i
}

func (i *Input) AssertRequired() *Input {
	i.t.Helper()
	_, ok := i.Attr("required")
	require.True(i.t, ok, i.message("is not required"))
	return i
}

func (i *Input) AssertDisabled() *Input {
	i.t.Helper()
	_, ok := i.Attr("disabled")
	require.True(i.t, ok, i.message("is not disabled"))
	return i
}

func (i *Input) AssertReadonly() *Input {
	i.t.Helper()
	_, ok := i.Attr("readonly")
	require.True(i.t, ok, i.message("is not readonly"))
	return i
}

// Select adds <select> assertions.
type Select struct {
	*Element
}

// Options returns every option value. An option without a value attribute
// uses its normalized text.
func (s *Select) Options() []string {
	var values []string
	s.sel.Find("option").Each(func(_ int, o *goquery.Selection) {
		values = append(values, optionValue(o))
	})
	return values
}

// Selected returns the values of the selected options.
func (s *Select) Selected() []string {
	var values []string
	s.sel.Find("option[selected]").Each(func(_ int, o *goquery.Selection) {
		values = append(values, optionValue(o))
	})
	return values
}

func optionValue(o *goquery.Selection) string {
	if v, ok := o.Attr("value"); ok {
		return v
	}
	return NormalizeWhitespace(o.Text())
}

func (s *Select) AssertName(expected string) *Select {
	s.t.Helper()
	name, _ := s.Attr("name")
	require.Equal(s.t, expected, name, s.message("is not named [%s]", expected))
	return s
}

// AssertSelected asserts exactly values are selected, in any order.
func (s *Select) AssertSelected(values ...string) *Select {
	s.t.Helper()
	require.ElementsMatch(s.t, values, s.Selected(),
		s.message("doesn't have [%s] selected", strings.Join(values, ", ")))
	return s
}

// AssertOptions asserts the option values, in order.
func (s *Select) AssertOptions(values ...string) *Select {
	s.t.Helper()
	require.Equal(s.t, values, s.Options(),
		s.message("options don't equal [%s]", strings.Join(values, ", ")))
	return s
}

func (s *Select) AssertMultiple() *Select {
	s.t.Helper()
	_, ok := s.Attr("multiple")
	require.True(s.t, ok, s.message("doesn't allow multiple selections"))
	return s
}

// Textarea adds <textarea> assertions.
type Textarea struct {
	*Element
}

// Value returns the raw content. The parser has already dropped the single
// newline that may follow the opening tag, as browsers do.
func (x *Textarea) Value() string {
	return x.sel.Text()
}

func (x *Textarea) AssertName(expected string) *Textarea {
	x.t.Helper()
	name, _ := x.Attr("name")
	require.Equal(x.t, expected, name, x.message("is not named [%s]", expected))
	return x
}

func (x *Textarea) AssertValue(expected string) *Textarea {
	x.t.Helper()
	require.Equal(x.t, expected, x.Value(), x.message("value doesn't equal [%s]", expected))
	return x
}
