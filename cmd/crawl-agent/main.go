// Command crawl-agent runs an interactive session that answers questions
// about web resources. The language model decides per turn whether to answer
// directly or to delegate to the registered retrieval capabilities (site
// crawl via Firecrawl, or a local single-page fetch).
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/hamzaessahbaoui/crawl-agent/agent"
	"github.com/hamzaessahbaoui/crawl-agent/pkg/llm/openai"
	"github.com/hamzaessahbaoui/crawl-agent/pkg/tools/crawl"
	"github.com/hamzaessahbaoui/crawl-agent/pkg/tools/webfetch"
)

const systemPrompt = "You are an agent that has access to web retrieval tools: one crawls a whole site " +
	"and one fetches a single page, both returning markdown text. Please provide the user with the " +
	"information they are looking for by using the tools provided."

// config holds the process-level configuration, read once at startup.
type config struct {
	OpenAIKey    string
	FirecrawlKey string
	Model        string
	PollInterval time.Duration
}

// loadConfig reads credentials and optional overrides from the environment.
// Missing credentials fail fast rather than proceeding with null values.
func loadConfig() (config, error) {
	cfg := config{
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		FirecrawlKey: os.Getenv("FIRECRAWL_API_KEY"),
		Model:        os.Getenv("OPENAI_MODEL"),
	}
	if cfg.OpenAIKey == "" {
		return config{}, agent.NewError(agent.CodeMissingConfiguration, "OPENAI_API_KEY environment variable is required")
	}
	if cfg.FirecrawlKey == "" {
		return config{}, agent.NewError(agent.CodeMissingConfiguration, "FIRECRAWL_API_KEY environment variable is required")
	}

	if raw := os.Getenv("FIRECRAWL_POLL_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return config{}, agent.NewError(agent.CodeMissingConfiguration,
				fmt.Sprintf("FIRECRAWL_POLL_SECONDS must be a positive integer, got %q", raw))
		}
		cfg.PollInterval = time.Duration(seconds) * time.Second
	}
	return cfg, nil
}

func main() {
	// Load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Println("Error:", err)
		fmt.Println("Please create a .env file with OPENAI_API_KEY and FIRECRAWL_API_KEY")
		os.Exit(1)
	}

	crawlOptions := []crawl.Option{}
	if cfg.PollInterval > 0 {
		crawlOptions = append(crawlOptions, crawl.WithPollInterval(cfg.PollInterval))
	}
	crawlClient := crawl.NewClient(cfg.FirecrawlKey, crawlOptions...)

	registry, err := agent.NewRegistry(
		crawl.NewCrawlCapability(crawlClient),
		webfetch.NewFetchCapability(),
	)
	if err != nil {
		fmt.Println("Error building capability registry:", err)
		os.Exit(1)
	}

	model := openai.NewClient(cfg.OpenAIKey, openai.WithModel(cfg.Model))
	session := agent.NewSessionLoop(model, registry, systemPrompt)

	if err := session.Run(context.Background(), os.Stdin, os.Stdout); err != nil {
		fmt.Println("Error reading input:", err)
		os.Exit(1)
	}
}
