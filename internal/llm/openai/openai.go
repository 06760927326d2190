// Package openai wraps github.com/sashabaranov/go-openai to satisfy
// the llm.Client contract, for operators running against an
// OpenAI-compatible backend — the teacher's multi-provider story
// (internal/agent/provider_types.go's LLMProvider) narrowed to one
// blocking, non-streaming call per spec §4.3.
package openai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/devwithmohit/aetheros-reasoncore/internal/llm"
)

// Config configures the client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Client implements llm.Client against the Chat Completions API.
type Client struct {
	sdk          *openai.Client
	defaultModel string
}

// New constructs a Client. APIKey is required.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4o
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Client{
		sdk:          openai.NewClientWithConfig(clientCfg),
		defaultModel: model,
	}, nil
}

// Generate implements llm.Client with a single non-streaming request.
func (c *Client) Generate(ctx context.Context, req llm.Request) (llm.Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 512
	}

	chatReq := openai.ChatCompletionRequest{
		Model: c.defaultModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: float32(req.Temperature),
		Stop:        req.Stop,
	}

	resp, err := c.sdk.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return llm.Response{}, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return llm.Response{}, fmt.Errorf("openai: empty choices in response")
	}

	return llm.Response{
		Text:       resp.Choices[0].Message.Content,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}
