package suite

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/domassert/pkg/fetcher"
)

// --- Load Tests ---

func TestLoad_YAML(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "login.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if s.Name != "login page" {
		t.Errorf("Name = %q", s.Name)
	}
	if len(s.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(s.Pages))
	}
	page := s.Pages[0]
	if len(page.Checks) != 3 {
		t.Fatalf("expected 3 checks, got %d", len(page.Checks))
	}
	if page.Checks[0].Count == nil || *page.Checks[0].Count != 1 {
		t.Error("expected count 1 on the first check")
	}
	if page.Checks[0].Form == nil || page.Checks[0].Form.Action != "/session" {
		t.Error("expected form check to be parsed")
	}
	if page.Meta["robots"] != "noindex" {
		t.Errorf("Meta = %v", page.Meta)
	}
}

func TestLoad_JSON(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "login.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if s.Pages[0].Mode != fetcher.ModeFile {
		t.Errorf("Mode = %q", s.Pages[0].Mode)
	}
	if s.Pages[0].Checks[0].Label() != "h1" {
		t.Errorf("Label() = %q", s.Pages[0].Checks[0].Label())
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.toml")
	if err := os.WriteFile(path, []byte("name = 'x'"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

// --- Validation Tests ---

func TestFromYAML_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing name",
			yaml: "pages:\n  - source: a.html\n",
			want: "Suite.Name",
		},
		{
			name: "no pages",
			yaml: "name: x\npages: []\n",
			want: "Suite.Pages",
		},
		{
			name: "missing source",
			yaml: "name: x\npages:\n  - title: y\n",
			want: "Source",
		},
		{
			name: "bad mode",
			yaml: "name: x\npages:\n  - source: a\n    mode: ftp\n",
			want: "Mode",
		},
		{
			name: "missing selector",
			yaml: "name: x\npages:\n  - source: a\n    checks:\n      - tag: div\n",
			want: "Selector",
		},
		{
			name: "bad form method",
			yaml: "name: x\npages:\n  - source: a\n    checks:\n      - selector: form\n        form: {method: TRACE}\n",
			want: "Method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromYAML([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalidSuite) {
				t.Fatalf("expected ErrInvalidSuite, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidate_FollowPattern(t *testing.T) {
	s := Suite{Name: "x", Pages: []Page{{Source: "a.html", Follow: &Follow{Pattern: "[bad"}}}}
	err := s.Validate()
	if !errors.Is(err, ErrInvalidSuite) || !strings.Contains(err.Error(), "Follow.Pattern") {
		t.Errorf("expected follow pattern error, got %v", err)
	}

	s.Pages[0].Follow.Pattern = `\.html$`
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestFromJSON_Malformed(t *testing.T) {
	_, err := FromJSON([]byte(`{"name":`))
	if err == nil || errors.Is(err, ErrInvalidSuite) {
		t.Errorf("expected a parse error, got %v", err)
	}
}
