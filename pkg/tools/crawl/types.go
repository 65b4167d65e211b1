package crawl

// crawl specific types

// CrawlArgs represents arguments for the Crawl operation.
type CrawlArgs struct {
	Site string `json:"site" jsonschema:"required,description=The url to crawl."`
}

// CrawlResult represents the terminal state of a completed crawl job.
type CrawlResult struct {
	Status      string `json:"status"`
	Total       int    `json:"total"`
	Completed   int    `json:"completed"`
	CreditsUsed int    `json:"creditsUsed,omitempty"`
	Pages       []Page `json:"pages,omitempty"`
}

// Page is one crawled document, already converted to markdown by the
// retrieval service.
type Page struct {
	Markdown  string `json:"markdown"`
	SourceURL string `json:"sourceUrl,omitempty"`
	Title     string `json:"title,omitempty"`
}

// --- Wire Types (Firecrawl v1) ---

// crawlRequest is the body of POST /v1/crawl.
type crawlRequest struct {
	URL           string        `json:"url"`
	Limit         int           `json:"limit"`
	ScrapeOptions scrapeOptions `json:"scrapeOptions"`
}

type scrapeOptions struct {
	Formats []string `json:"formats"`
}

// crawlStartResponse is the body returned when a crawl job is accepted.
type crawlStartResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Error   string `json:"error,omitempty"`
}

// crawlStatusResponse is the body of GET /v1/crawl/{id}.
type crawlStatusResponse struct {
	Status      string     `json:"status"`
	Total       int        `json:"total"`
	Completed   int        `json:"completed"`
	CreditsUsed int        `json:"creditsUsed"`
	Error       string     `json:"error,omitempty"`
	Data        []pageData `json:"data,omitempty"`
}

type pageData struct {
	Markdown string       `json:"markdown"`
	Metadata pageMetadata `json:"metadata"`
}

type pageMetadata struct {
	Title     string `json:"title"`
	SourceURL string `json:"sourceURL"`
}
