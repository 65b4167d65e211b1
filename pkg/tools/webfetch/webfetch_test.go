package webfetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		html := `<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
	<h1>Welcome</h1>
	<p>This is a <strong>test</strong> paragraph.</p>
</body>
</html>`
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, html)
	}))
	defer server.Close()

	result, err := Fetch(context.Background(), FetchArgs{URL: server.URL})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if result.URL != server.URL {
		t.Errorf("Expected URL %s, got %s", server.URL, result.URL)
	}
	if !strings.Contains(result.Markdown, "Welcome") {
		t.Error("Markdown should contain 'Welcome' heading")
	}
	if !strings.Contains(result.Markdown, "test") {
		t.Error("Markdown should contain 'test' text")
	}
}

func TestFetch_EmptyURL(t *testing.T) {
	_, err := Fetch(context.Background(), FetchArgs{URL: "   "})
	if err == nil {
		t.Fatal("Expected error for empty URL")
	}
	if !strings.Contains(err.Error(), "url cannot be empty") {
		t.Errorf("Expected 'url cannot be empty' error, got: %v", err)
	}
}

func TestFetch_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := Fetch(context.Background(), FetchArgs{URL: server.URL})
	if err == nil {
		t.Fatal("Expected error for non-200 response")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("Expected status code in error, got: %v", err)
	}
}

func TestFetch_FollowsRedirects(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><h1>Final</h1></body></html>")
	}))
	defer target.Close()

	redirecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL, http.StatusFound)
	}))
	defer redirecting.Close()

	result, err := Fetch(context.Background(), FetchArgs{URL: redirecting.URL})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if result.URL != target.URL {
		t.Errorf("Expected final URL %s, got %s", target.URL, result.URL)
	}
	if !strings.Contains(result.Markdown, "Final") {
		t.Errorf("Expected redirected content, got %q", result.Markdown)
	}
}
