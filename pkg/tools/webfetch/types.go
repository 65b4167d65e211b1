package webfetch

// webfetch specific types

// FetchArgs represents arguments for the Fetch operation.
type FetchArgs struct {
	URL string `json:"url" jsonschema:"required,description=The URL of the single page to fetch."`
}

// FetchResult represents the response for the Fetch operation.
type FetchResult struct {
	URL      string `json:"url"`      // Final URL after redirects
	Markdown string `json:"markdown"` // Page content converted to markdown
}
