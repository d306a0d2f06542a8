// Package dom provides fluent, chainable assertions against parsed HTML documents.
//
// Documents are parsed with goquery and every check is forwarded to testify's
// require package, so a failing assertion stops the test immediately:
//
//	dom.Parse(t, body).
//	    AssertTitle("Dashboard").
//	    With("form#login", func(form *dom.Element) {
//	        form.AssertAttributeEquals("method", "post").
//	            AssertContainsElement("input[name=email]")
//	    })
//
// Wrappers never return errors. Parse and query problems fail the TestingT
// the wrapper was created with.
package dom

import (
	"github.com/stretchr/testify/require"
)

// TestingT is the subset of testing.TB used by the assertions.
// *testing.T and *testing.B satisfy it.
type TestingT interface {
	require.TestingT
	Helper()
}
