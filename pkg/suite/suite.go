// Package suite runs declarative HTML assertion suites.
//
// A suite file lists pages and the checks to run against each of them.
// Checks are executed through the dom package, so a suite reports exactly
// the failures an equivalent Go test would.
package suite

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/domassert/pkg/fetcher"
)

// Suite is a named collection of page checks.
type Suite struct {
	Name  string `json:"name" yaml:"name" validate:"required"`
	Pages []Page `json:"pages" yaml:"pages" validate:"required,min=1,dive"`
}

// Page describes one document and the assertions made against it.
type Page struct {
	Source  string       `json:"source" yaml:"source" validate:"required"`
	Mode    fetcher.Mode `json:"mode,omitempty" yaml:"mode,omitempty" validate:"omitempty,oneof=static dynamic auto file"`
	WaitFor string       `json:"wait_for,omitempty" yaml:"wait_for,omitempty"`
	Status  int          `json:"status,omitempty" yaml:"status,omitempty" validate:"omitempty,min=100,max=599"`

	Title         string            `json:"title,omitempty" yaml:"title,omitempty"`
	TitleContains string            `json:"title_contains,omitempty" yaml:"title_contains,omitempty"`
	Lang          string            `json:"lang,omitempty" yaml:"lang,omitempty"`
	Charset       string            `json:"charset,omitempty" yaml:"charset,omitempty"`
	Favicon       bool              `json:"favicon,omitempty" yaml:"favicon,omitempty"`
	Meta          map[string]string `json:"meta,omitempty" yaml:"meta,omitempty"`
	Text          []string          `json:"text,omitempty" yaml:"text,omitempty"`
	NoText        []string          `json:"no_text,omitempty" yaml:"no_text,omitempty"`

	Checks []Check `json:"checks,omitempty" yaml:"checks,omitempty" validate:"dive"`

	Follow *Follow `json:"follow,omitempty" yaml:"follow,omitempty"`
}

// Follow runs a page's assertions again on the pages it links to.
type Follow struct {
	Selector string `json:"selector,omitempty" yaml:"selector,omitempty"`
	Pattern  string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MaxDepth int    `json:"max_depth,omitempty" yaml:"max_depth,omitempty" validate:"omitempty,min=1"`
	MaxPages int    `json:"max_pages,omitempty" yaml:"max_pages,omitempty" validate:"omitempty,min=1"`
	AnyHost  bool   `json:"any_host,omitempty" yaml:"any_host,omitempty"`
}

const (
	defaultFollowDepth = 1
	defaultFollowPages = 20
)

// Check is a group of assertions about the elements matching Selector.
// Count-style fields apply to the whole match set; element fields apply to
// every matched element.
type Check struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Selector string `json:"selector" yaml:"selector" validate:"required"`

	Count    *int `json:"count,omitempty" yaml:"count,omitempty" validate:"omitempty,min=0"`
	MinCount *int `json:"min_count,omitempty" yaml:"min_count,omitempty" validate:"omitempty,min=0"`
	MaxCount *int `json:"max_count,omitempty" yaml:"max_count,omitempty" validate:"omitempty,min=0"`
	Absent   bool `json:"absent,omitempty" yaml:"absent,omitempty" validate:"excluded_with=Count MinCount"`

	Tag               string            `json:"tag,omitempty" yaml:"tag,omitempty"`
	ID                string            `json:"id,omitempty" yaml:"id,omitempty"`
	Text              string            `json:"text,omitempty" yaml:"text,omitempty"`
	TextContains      string            `json:"text_contains,omitempty" yaml:"text_contains,omitempty"`
	Attributes        map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	AttributesPresent []string          `json:"attributes_present,omitempty" yaml:"attributes_present,omitempty"`
	AttributesMissing []string          `json:"attributes_missing,omitempty" yaml:"attributes_missing,omitempty"`
	Classes           []string          `json:"classes,omitempty" yaml:"classes,omitempty"`
	ClassesMissing    []string          `json:"classes_missing,omitempty" yaml:"classes_missing,omitempty"`

	Form *FormCheck `json:"form,omitempty" yaml:"form,omitempty"`
}

// FormCheck holds assertions for a selector that matches a single <form>.
type FormCheck struct {
	Method string   `json:"method,omitempty" yaml:"method,omitempty" validate:"omitempty,oneof=GET POST PUT PATCH DELETE get post put patch delete"`
	Action string   `json:"action,omitempty" yaml:"action,omitempty"`
	Upload bool     `json:"upload,omitempty" yaml:"upload,omitempty"`
	CSRF   string   `json:"csrf,omitempty" yaml:"csrf,omitempty"`
	Fields []string `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Label names the check in reports.
func (c Check) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Selector
}

// hasElementAssertions reports whether any per-element field is set.
func (c Check) hasElementAssertions() bool {
	return c.Tag != "" || c.ID != "" || c.Text != "" || c.TextContains != "" ||
		len(c.Attributes) > 0 || len(c.AttributesPresent) > 0 || len(c.AttributesMissing) > 0 ||
		len(c.Classes) > 0 || len(c.ClassesMissing) > 0
}

var (
	// ErrInvalidSuite wraps validation failures.
	ErrInvalidSuite = errors.New("invalid suite")
	// ErrUnsupportedFormat is returned for unknown suite file extensions.
	ErrUnsupportedFormat = errors.New("unsupported suite file format")
)

var validate = validator.New()

// Load reads a suite from a JSON or YAML file.
func Load(path string) (Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Suite{}, fmt.Errorf("failed to read suite file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FromJSON(data)
	case ".yaml", ".yml":
		return FromYAML(data)
	default:
		return Suite{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// FromJSON parses and validates a JSON suite.
func FromJSON(data []byte) (Suite, error) {
	var s Suite
	if err := json.Unmarshal(data, &s); err != nil {
		return Suite{}, fmt.Errorf("failed to parse JSON suite: %w", err)
	}
	return s, s.Validate()
}

// FromYAML parses and validates a YAML suite.
func FromYAML(data []byte) (Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Suite{}, fmt.Errorf("failed to parse YAML suite: %w", err)
	}
	return s, s.Validate()
}

// Validate checks the suite structure.
func (s Suite) Validate() error {
	if err := validate.Struct(s); err != nil {
		return validationError(err)
	}
	for i, p := range s.Pages {
		if p.Follow == nil || p.Follow.Pattern == "" {
			continue
		}
		if _, err := regexp.Compile(p.Follow.Pattern); err != nil {
			return fmt.Errorf("%w: Suite.Pages[%d].Follow.Pattern: %v", ErrInvalidSuite, i, err)
		}
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidSuite, err)
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
	}
	return fmt.Errorf("%w: %s", ErrInvalidSuite, strings.Join(msgs, "; "))
}
