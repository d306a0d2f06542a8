package dom

import (
	"testing"
)

func TestPromote(t *testing.T) {
	rt := &recordingT{}
	d := page(t, rt)

	tests := []struct {
		selector string
		want     string
	}{
		{"#profile", "*dom.Form"},
		{"#email", "*dom.Input"},
		{"select[name=country]", "*dom.Select"},
		{"textarea", "*dom.Textarea"},
		{"h1", "*dom.Element"},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			el := d.Query(tt.selector)
			if el == nil {
				t.Fatalf("no element for %s", tt.selector)
			}
			got := Promote(el)
			if name := typeName(got); name != tt.want {
				t.Errorf("Promote(%s) = %s, want %s", tt.selector, name, tt.want)
			}
			if got.Base() != el {
				t.Error("Base() should return the wrapped element")
			}
		})
	}
	expectPass(t, rt)
}

func typeName(a Assertable) string {
	switch a.(type) {
	case *Form:
		return "*dom.Form"
	case *Input:
		return "*dom.Input"
	case *Select:
		return "*dom.Select"
	case *Textarea:
		return "*dom.Textarea"
	case *Element:
		return "*dom.Element"
	}
	return "unknown"
}

// --- Form Tests ---

func TestForm_Assertions(t *testing.T) {
	rt := &recordingT{}
	page(t, rt).WithForm("#profile", func(f *Form) {
		if f.Method() != "PUT" {
			t.Errorf("Method() = %q, want PUT (spoofed)", f.Method())
		}
		f.AssertMethod("put").
			AssertAction("/profile").
			AssertAcceptsUpload().
			AssertHasCSRF("").
			AssertHiddenInput("_token", "abc123").
			AssertHasField("country").
			AssertHasField("bio").
			AssertSubmitButton("Save changes")
	})

	expectPass(t, rt)
}

func TestForm_DefaultsToGet(t *testing.T) {
	rt := &recordingT{}
	page(t, rt).WithForm("#search", func(f *Form) {
		f.AssertMethod("GET").AssertSubmitButton("Search")
	})

	expectPass(t, rt)
}

func TestForm_AssertAcceptsUpload_Fails(t *testing.T) {
	rt := &recordingT{}
	page(t, rt).WithForm("#search", func(f *Form) {
		f.AssertAcceptsUpload()
	})

	expectFailure(t, rt, "The element [form#search] doesn't accept uploads")
}

func TestForm_AssertHasCSRF_Fails(t *testing.T) {
	rt := &recordingT{}
	page(t, rt).WithForm("#search", func(f *Form) {
		f.AssertHasCSRF("csrf_token")
	})

	expectFailure(t, rt, "has no CSRF token field [csrf_token]")
}

func TestWithForm_WrongElement(t *testing.T) {
	rt := &recordingT{}
	called := false

	page(t, rt).WithForm("#items", func(*Form) { called = true })

	if called {
		t.Error("callback must not run for a non-form element")
	}
	expectFailure(t, rt, "The element [ul#items] is not a <form>")
}

// --- Input Tests ---

func TestInput_Assertions(t *testing.T) {
	rt := &recordingT{}
	d := page(t, rt)

	d.WithInput("#email", func(in *Input) {
		in.AssertType("email").
			AssertName("email").
			AssertValue("jo@example.test").
			AssertPlaceholder("Email").
			AssertRequired().
			AssertNotChecked()
	})
	d.WithInput("input[name=newsletter]", func(in *Input) {
		in.AssertType("checkbox").AssertChecked()
	})
	d.WithInput("input[name=nickname]", func(in *Input) {
		in.AssertDisabled().AssertReadonly()
	})
	d.WithInput("input[name=q]", func(in *Input) {
		if in.Type() != "text" {
			t.Errorf("Type() = %q, want text", in.Type())
		}
	})

	expectPass(t, rt)
}

func TestInput_AssertChecked_Fails(t *testing.T) {
	rt := &recordingT{}
	page(t, rt).WithInput("#email", func(in *Input) {
		in.AssertChecked()
	})

	expectFailure(t, rt, "is not checked")
}

// --- Select and Textarea Tests ---

func TestSelect_Assertions(t *testing.T) {
	rt := &recordingT{}
	d := page(t, rt)

	d.WithSelect("select[name=country]", func(s *Select) {
		s.AssertName("country").
			AssertOptions("nz", "uk", "Elsewhere").
			AssertSelected("uk")
	})
	d.WithSelect("select[name=tags]", func(s *Select) {
		s.AssertMultiple().AssertSelected("html", "go")
	})

	expectPass(t, rt)
}

func TestSelect_AssertSelected_Fails(t *testing.T) {
	rt := &recordingT{}
	page(t, rt).WithSelect("select[name=country]", func(s *Select) {
		s.AssertSelected("nz")
	})

	expectFailure(t, rt, `doesn't have [nz] selected`)
}

func TestTextarea_Assertions(t *testing.T) {
	rt := &recordingT{}
	page(t, rt).Query("form#profile").WithTextarea("textarea", func(x *Textarea) {
		x.AssertName("bio").AssertValue("Hello there")
	})

	expectPass(t, rt)
}

func TestTextarea_Value_KeepsSecondLeadingNewline(t *testing.T) {
	rt := &recordingT{}
	doc := Parse(rt, "<form><textarea name=bio>\n\nhello</textarea></form>")
	doc.Query("form").WithTextarea("textarea", func(x *Textarea) {
		if got := x.Value(); got != "\nhello" {
			t.Errorf("Value() = %q, want %q", got, "\nhello")
		}
		x.AssertValue("\nhello")
	})

	expectPass(t, rt)
}
