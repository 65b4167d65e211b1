// Package crawl wraps the Firecrawl crawl API as an agent capability.
// A crawl recursively gathers the pages under a URL and converts them to
// markdown suited for LLM consumption. Crawl jobs are asynchronous on the
// service side: the client starts a job and polls its status at a fixed
// interval until it reaches a terminal state.
package crawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/hamzaessahbaoui/crawl-agent/agent"
)

const (
	// DefaultBaseURL is the production Firecrawl endpoint.
	DefaultBaseURL = "https://api.firecrawl.dev"
	// DefaultPollInterval is the delay between crawl status checks.
	DefaultPollInterval = 30 * time.Second
	// DefaultPageLimit caps the number of pages gathered per crawl.
	DefaultPageLimit = 100
)

// Client calls the Firecrawl v1 crawl API.
type Client struct {
	apiKey       string
	baseURL      string
	httpClient   *http.Client
	pollInterval time.Duration
	pageLimit    int
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at an alternate endpoint. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithPollInterval overrides the delay between status checks.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.pollInterval = interval
		}
	}
}

// WithPageLimit overrides the per-crawl page ceiling.
func WithPageLimit(limit int) Option {
	return func(c *Client) {
		if limit > 0 {
			c.pageLimit = limit
		}
	}
}

// NewClient creates a Firecrawl client authenticated with apiKey.
func NewClient(apiKey string, options ...Option) *Client {
	client := &Client{
		apiKey:       apiKey,
		baseURL:      DefaultBaseURL,
		httpClient:   &http.Client{},
		pollInterval: DefaultPollInterval,
		pageLimit:    DefaultPageLimit,
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// Crawl starts a crawl job for site and blocks, polling at the configured
// interval, until the job reaches a terminal state. The total runtime is
// bounded by the service's own job limits and by ctx; no additional timeout
// is imposed here.
func (c *Client) Crawl(ctx context.Context, site string) (CrawlResult, error) {
	jobID, err := c.startCrawl(ctx, site)
	if err != nil {
		return CrawlResult{}, err
	}
	log.Printf("Crawl job %s started for %s", jobID, site)

	for {
		status, err := c.crawlStatus(ctx, jobID)
		if err != nil {
			return CrawlResult{}, err
		}

		switch status.Status {
		case "completed":
			return toResult(status), nil
		case "failed", "cancelled":
			message := status.Error
			if message == "" {
				message = fmt.Sprintf("crawl job %s ended with status '%s'", jobID, status.Status)
			}
			return CrawlResult{}, fmt.Errorf("firecrawl: %s", message)
		}

		log.Printf("Crawl job %s: %s (%d/%d pages)", jobID, status.Status, status.Completed, status.Total)
		select {
		case <-ctx.Done():
			return CrawlResult{}, ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

// startCrawl submits the crawl job and returns its identifier.
func (c *Client) startCrawl(ctx context.Context, site string) (string, error) {
	body, err := json.Marshal(crawlRequest{
		URL:           site,
		Limit:         c.pageLimit,
		ScrapeOptions: scrapeOptions{Formats: []string{"markdown"}},
	})
	if err != nil {
		return "", fmt.Errorf("error marshaling crawl request: %w", err)
	}

	var started crawlStartResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/crawl", bytes.NewReader(body), &started); err != nil {
		return "", err
	}
	if !started.Success || started.ID == "" {
		message := started.Error
		if message == "" {
			message = "crawl job was not accepted"
		}
		return "", fmt.Errorf("firecrawl: %s", message)
	}
	return started.ID, nil
}

// crawlStatus fetches the current state of a crawl job.
func (c *Client) crawlStatus(ctx context.Context, jobID string) (crawlStatusResponse, error) {
	var status crawlStatusResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/crawl/"+jobID, nil, &status); err != nil {
		return crawlStatusResponse{}, err
	}
	return status, nil
}

// doJSON performs one authenticated request and decodes the JSON response
// into out. Non-2xx statuses are returned as errors carrying the body.
func (c *Client) doJSON(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(respBody))
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("error parsing response: %w", err)
	}
	return nil
}

// toResult converts a terminal status payload into the capability output.
func toResult(status crawlStatusResponse) CrawlResult {
	result := CrawlResult{
		Status:      status.Status,
		Total:       status.Total,
		Completed:   status.Completed,
		CreditsUsed: status.CreditsUsed,
	}
	for _, page := range status.Data {
		result.Pages = append(result.Pages, Page{
			Markdown:  page.Markdown,
			SourceURL: page.Metadata.SourceURL,
			Title:     page.Metadata.Title,
		})
	}
	return result
}

// NewCrawlCapability wraps the client as the "firecrawl_crawl" capability.
func NewCrawlCapability(client *Client) agent.Capability {
	return agent.NewCapability(
		"firecrawl_crawl",
		"Recursively search through a urls subdomains, and gather the content. "+
			"Begins with a specified URL, identifying links by looking at the sitemap and then crawling the website. "+
			"Then converts collected data into clean markdown or structured output, perfect for LLM processing or any other task.",
		func(ctx context.Context, args CrawlArgs) (interface{}, error) {
			log.Println("Executing Crawl for site:", args.Site)
			return client.Crawl(ctx, args.Site)
		},
	)
}
