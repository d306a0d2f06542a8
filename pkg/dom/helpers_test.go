package dom

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// recordingT captures failures instead of stopping the test.
type recordingT struct {
	errors []string
	failed bool
}

func (r *recordingT) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recordingT) FailNow() {
	r.failed = true
}

func (r *recordingT) Helper() {}

func (r *recordingT) output() string {
	return strings.Join(r.errors, "\n")
}

// readTestdata reads a file from the testdata directory
func readTestdata(t *testing.T, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", filename))
	if err != nil {
		t.Fatalf("failed to read testdata %s: %v", filename, err)
	}
	return string(data)
}

// page parses the shared fixture against rt.
func page(t *testing.T, rt *recordingT) *Document {
	t.Helper()
	return Parse(rt, readTestdata(t, "page.html"))
}

// expectPass fails t when rt recorded a failure.
func expectPass(t *testing.T, rt *recordingT) {
	t.Helper()
	if rt.failed || len(rt.errors) > 0 {
		t.Fatalf("expected no failures, got:\n%s", rt.output())
	}
}

// expectFailure fails t unless rt recorded a failure mentioning want.
func expectFailure(t *testing.T, rt *recordingT, want string) {
	t.Helper()
	if !rt.failed {
		t.Fatalf("expected a failure containing %q, got none", want)
	}
	if !strings.Contains(rt.output(), want) {
		t.Errorf("expected failure containing %q, got:\n%s", want, rt.output())
	}
}
