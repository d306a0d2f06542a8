package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// requireChrome skips the test when no Chrome or Chromium binary is installed.
func requireChrome(t *testing.T) {
	t.Helper()
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell"} {
		if _, err := exec.LookPath(name); err == nil {
			return
		}
	}
	t.Skip("chrome not installed")
}

const spaPage = `<!DOCTYPE html>
<html><head><title>Loading</title></head>
<body>
<div id="root"></div>
<script>
document.title = "Dashboard";
document.getElementById("root").innerHTML = '<h1 class="greeting">Rendered by script</h1>';
</script>
</body></html>`

func spaServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(spaPage))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// --- DynamicFetcher Tests ---

func TestDynamicFetcher_Fetch(t *testing.T) {
	requireChrome(t)
	srv := spaServer(t)

	f, err := NewDynamic(Config{Timeout: 30 * time.Second})
	if err != nil {
		t.Fatalf("NewDynamic() error = %v", err)
	}
	defer f.Close()

	content, err := f.Fetch(context.Background(), srv.URL, Options{WaitForSelector: "h1.greeting"})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if content.Title != "Dashboard" {
		t.Errorf("Title = %q, want %q", content.Title, "Dashboard")
	}
	if !strings.Contains(content.HTML, "Rendered by script") {
		t.Errorf("expected rendered markup, got %s", content.HTML)
	}
	if content.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d", content.StatusCode)
	}
}

// --- AutoFetcher Render Tests ---

func TestAutoFetcher_Fetch_RendersEmptyMount(t *testing.T) {
	requireChrome(t)
	srv := spaServer(t)

	f, err := NewAuto(Config{Timeout: 30 * time.Second})
	if err != nil {
		t.Fatalf("NewAuto() error = %v", err)
	}
	defer f.Close()

	content, err := f.Fetch(context.Background(), srv.URL, Options{WaitForSelector: "h1.greeting"})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !strings.Contains(content.HTML, "Rendered by script") {
		t.Errorf("expected the browser-rendered document, got %s", content.HTML)
	}
	if NeedsRendering(content.HTML) {
		t.Error("rendered document should not need rendering again")
	}
}
