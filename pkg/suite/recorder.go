package suite

import (
	"fmt"
	"strings"
)

// failNow unwinds the current check when an assertion calls FailNow.
type failNow struct{}

// Recorder is a dom.TestingT that records failures per check instead of
// failing a Go test.
type Recorder struct {
	current *CheckResult
}

func (r *Recorder) Errorf(format string, args ...any) {
	if r.current == nil {
		return
	}
	r.current.Failures = append(r.current.Failures, summarize(fmt.Sprintf(format, args...)))
}

// FailNow aborts the running check. It must only be called from inside Run.
func (r *Recorder) FailNow() {
	panic(failNow{})
}

func (r *Recorder) Helper() {}

// Run executes fn as the check called name. Assertions made through r inside
// fn are recorded against the returned result.
func (r *Recorder) Run(name string, fn func()) (result CheckResult) {
	result = CheckResult{Name: name}
	r.current = &result
	defer func() {
		if rec := recover(); rec != nil {
			if _, ok := rec.(failNow); !ok {
				result.Failures = append(result.Failures, fmt.Sprintf("panic: %v", rec))
			}
		}
		result.Passed = len(result.Failures) == 0
		r.current = nil
	}()
	fn()
	return result
}

// summarize reduces testify's labeled failure output to its message, or to
// the error line when no message was given.
func summarize(out string) string {
	var errLine string
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "Messages:"):
			return strings.TrimSpace(strings.TrimPrefix(trimmed, "Messages:"))
		case strings.HasPrefix(trimmed, "Error:") && errLine == "":
			errLine = strings.TrimSpace(strings.TrimPrefix(trimmed, "Error:"))
		}
	}
	if errLine != "" {
		return errLine
	}
	return strings.TrimSpace(out)
}
