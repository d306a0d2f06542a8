package crawler

import (
	"path/filepath"
	"strings"
	"testing"
)

// --- Queue Tests ---

func TestQueue_AddDeduplicates(t *testing.T) {
	q := NewQueue()

	if !q.Add("https://example.com/a", 0) {
		t.Error("Add() should return true for a new URL")
	}
	for _, dup := range []string{"https://example.com/a", "https://example.com/a/", "https://example.com/a#top"} {
		if q.Add(dup, 1) {
			t.Errorf("Add(%q) should return false for a duplicate", dup)
		}
	}
	if q.Add("://invalid", 0) {
		t.Error("Add() should return false for an invalid URL")
	}
	if q.Len() != 1 {
		t.Errorf("expected queue length 1, got %d", q.Len())
	}
}

func TestQueue_PopOrder(t *testing.T) {
	q := NewQueue()
	q.Add("https://example.com/first", 0)
	q.Add("https://example.com/second", 1)

	item, ok := q.Pop()
	if !ok || item.URL != "https://example.com/first" || item.Depth != 0 {
		t.Errorf("unexpected first item %+v", item)
	}
	item, ok = q.Pop()
	if !ok || item.URL != "https://example.com/second" || item.Depth != 1 {
		t.Errorf("unexpected second item %+v", item)
	}
	if _, ok := q.Pop(); ok {
		t.Error("Pop() should return false for an empty queue")
	}
}

func TestQueue_MarkSeen(t *testing.T) {
	q := NewQueue()
	q.MarkSeen("https://example.com/")

	if q.Add("https://example.com/", 1) {
		t.Error("Add() should reject a URL marked seen")
	}

	q.MarkSeen("https://other.example.com")
	if q.Add("https://other.example.com/", 1) {
		t.Error("Add() should treat a bare host and its root path as the same URL")
	}
	if got, want := Normalize("https://example.com"), Normalize("https://example.com/"); got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestSameHost(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"https://example.com/a", "https://example.com/b", true},
		{"https://example.com/a", "https://other.com/a", false},
		{"file:///tmp/a.html", "file:///tmp/b.html", true},
		{"https://example.com", "://bad", false},
	}
	for _, tt := range tests {
		if got := SameHost(tt.a, tt.b); got != tt.want {
			t.Errorf("SameHost(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

// --- Links Tests ---

const linksHTML = `<html><body>
<nav>
  <a href="/about">About</a>
  <a href="/about#team">Team</a>
  <a href="products/1">Product 1</a>
  <a href="https://other.com/x">Elsewhere</a>
  <a href="#top">Top</a>
  <a href="javascript:void(0)">JS</a>
  <a href="mailto:hi@example.com">Mail</a>
  <a>No href</a>
</nav>
<footer><a class="legal" href="/terms">Terms</a></footer>
</body></html>`

func TestLinks_Extract_Default(t *testing.T) {
	l, err := NewLinks("", "")
	if err != nil {
		t.Fatalf("NewLinks() error = %v", err)
	}

	links, err := l.Extract(linksHTML, "https://example.com/shop/")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	want := []string{
		"https://example.com/about",
		"https://example.com/shop/products/1",
		"https://other.com/x",
		"https://example.com/terms",
	}
	if strings.Join(links, ",") != strings.Join(want, ",") {
		t.Errorf("Extract() = %v, want %v", links, want)
	}
}

func TestLinks_Extract_SelectorAndPattern(t *testing.T) {
	l, err := NewLinks("nav a", `/products/\d+$`)
	if err != nil {
		t.Fatalf("NewLinks() error = %v", err)
	}

	links, err := l.Extract(linksHTML, "https://example.com/shop/")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(links) != 1 || links[0] != "https://example.com/shop/products/1" {
		t.Errorf("Extract() = %v", links)
	}
}

func TestNewLinks_InvalidPattern(t *testing.T) {
	if _, err := NewLinks("a", "[invalid"); err == nil {
		t.Error("expected error for invalid regex pattern")
	}
}

func TestBaseURL(t *testing.T) {
	got, err := BaseURL("https://example.com/a")
	if err != nil || got != "https://example.com/a" {
		t.Errorf("BaseURL() = %q, %v", got, err)
	}

	got, err = BaseURL(filepath.Join("testdata", "index.html"))
	if err != nil {
		t.Fatalf("BaseURL() error = %v", err)
	}
	if !strings.HasPrefix(got, "file:///") || !strings.HasSuffix(got, "/testdata/index.html") {
		t.Errorf("BaseURL() = %q", got)
	}
}
