// Package webfetch provides a local single-page fetch capability: it
// retrieves one URL over HTTP and converts the HTML body to markdown.
// Unlike the crawl capability it involves no external retrieval service,
// which makes it the cheaper choice when the model only needs one page.
package webfetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/hamzaessahbaoui/crawl-agent/agent"
)

const (
	// DefaultTimeout bounds one fetch end to end.
	DefaultTimeout = 30 * time.Second
	// MaxBodySize caps the response body at 10MB.
	MaxBodySize = 10 * 1024 * 1024
	// maxRedirects limits redirect chains.
	maxRedirects = 10
)

// Fetch retrieves the page at args.URL and returns its content as markdown.
// Partial URLs (e.g. "example.com") are normalised by prepending "https://".
// The final URL after redirects is reported in the result.
func Fetch(ctx context.Context, args FetchArgs) (FetchResult, error) {
	url := strings.TrimSpace(args.URL)
	if url == "" {
		return FetchResult{}, fmt.Errorf("url cannot be empty")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return FetchResult{}, fmt.Errorf("failed to create request: %w", err)
	}

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("too many redirects (>%d)", maxRedirects)
			}
			return nil
		},
	}

	resp, err := client.Do(req)
	if err != nil {
		return FetchResult{}, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return FetchResult{}, fmt.Errorf("unexpected status code: %d %s", resp.StatusCode, resp.Status)
	}

	htmlBytes, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return FetchResult{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(htmlBytes) == MaxBodySize {
		return FetchResult{}, fmt.Errorf("response body exceeds maximum size of %d bytes", MaxBodySize)
	}

	markdown, err := htmltomarkdown.ConvertString(string(htmlBytes))
	if err != nil {
		return FetchResult{}, fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}

	return FetchResult{
		URL:      resp.Request.URL.String(),
		Markdown: markdown,
	}, nil
}

// NewFetchCapability exposes Fetch as the "fetch_page" capability.
func NewFetchCapability() agent.Capability {
	return agent.NewCapability(
		"fetch_page",
		"Fetches a single web page and converts its HTML content to markdown. "+
			"Use this instead of the crawl tool when the answer is likely on one specific page.",
		func(ctx context.Context, args FetchArgs) (interface{}, error) {
			log.Println("Executing Fetch for URL:", args.URL)
			return Fetch(ctx, args)
		},
	)
}
