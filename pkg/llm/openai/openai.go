// Package openai adapts the OpenAI chat completions API (with function
// calling) to the agent.ModelClient interface.
package openai

import (
	"context"
	"encoding/json"
	"log"

	"github.com/sashabaranov/go-openai"

	"github.com/hamzaessahbaoui/crawl-agent/agent"
)

// DefaultModel is the chat model used when no override is configured.
const DefaultModel = "gpt-4o-mini"

// Client is an agent.ModelClient backed by the OpenAI chat completions API.
type Client struct {
	api   *openai.Client
	model string
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	model   string
	baseURL string
}

// WithModel overrides the default chat model.
func WithModel(model string) Option {
	return func(o *clientOptions) {
		if model != "" {
			o.model = model
		}
	}
}

// WithBaseURL points the client at an alternate API endpoint. Used by tests
// and OpenAI-compatible gateways.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// NewClient creates a model client authenticated with apiKey.
func NewClient(apiKey string, options ...Option) *Client {
	opts := &clientOptions{model: DefaultModel}
	for _, option := range options {
		option(opts)
	}

	config := openai.DefaultConfig(apiKey)
	if opts.baseURL != "" {
		config.BaseURL = opts.baseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(config),
		model: opts.model,
	}
}

// Complete submits the transcript (and, when non-nil, the capability catalog
// as a function-tool offer) to the chat completions endpoint and decodes the
// response into an agent.ModelDecision. A response carrying tool calls
// yields agent.Invocations; anything else yields agent.Answer.
func (c *Client) Complete(ctx context.Context, messages []agent.Message, catalog []agent.Capability) (agent.ModelDecision, error) {
	request := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: toChatMessages(messages),
		Tools:    toTools(catalog),
	}

	response, err := c.api.CreateChatCompletion(ctx, request)
	if err != nil {
		return nil, agent.NewError(agent.CodeModelService, err.Error())
	}
	if len(response.Choices) == 0 {
		return nil, agent.NewError(agent.CodeModelService, "no choices in model response")
	}

	choice := response.Choices[0].Message
	if len(choice.ToolCalls) == 0 {
		return agent.Answer{Text: choice.Content}, nil
	}

	requests := make([]agent.InvocationRequest, 0, len(choice.ToolCalls))
	for _, call := range choice.ToolCalls {
		log.Printf("Model requested capability %s (%s)", call.Function.Name, call.ID)
		requests = append(requests, agent.InvocationRequest{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: json.RawMessage(call.Function.Arguments),
		})
	}
	return agent.Invocations{Requests: requests}, nil
}

// toChatMessages converts the transcript into the wire message format.
// Assistant decision messages are reconstructed with their tool calls so the
// model can correlate the tool messages that follow.
func toChatMessages(messages []agent.Message) []openai.ChatCompletionMessage {
	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, message := range messages {
		chatMessage := openai.ChatCompletionMessage{
			Role:       string(message.Role),
			Content:    message.Content,
			ToolCallID: message.ToolCallID,
		}
		for _, request := range message.Requests {
			chatMessage.ToolCalls = append(chatMessage.ToolCalls, openai.ToolCall{
				ID:   request.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      request.Name,
					Arguments: string(request.Arguments),
				},
			})
		}
		chatMessages = append(chatMessages, chatMessage)
	}
	return chatMessages
}

// toTools converts the capability catalog, in order, into function-tool
// definitions. A nil catalog produces no tool offer at all.
func toTools(catalog []agent.Capability) []openai.Tool {
	if len(catalog) == 0 {
		return nil
	}
	tools := make([]openai.Tool, 0, len(catalog))
	for _, capability := range catalog {
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        capability.GetName(),
				Description: capability.GetDescription(),
				Parameters:  capability.GetInputSchema(),
			},
		})
	}
	return tools
}

var _ agent.ModelClient = (*Client)(nil)
