// Package anthropic wraps github.com/anthropics/anthropic-sdk-go to
// satisfy the llm.Client contract with a single non-streaming message
// request, narrowed from the teacher's streaming AnthropicProvider
// (internal/agent/providers/anthropic.go) since the ReAct planner here
// issues one blocking call per iteration rather than consuming an SSE
// stream.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/devwithmohit/aetheros-reasoncore/internal/llm"
)

// Config configures the client.
type Config struct {
	APIKey  string
	BaseURL string
	// Model names the model every request is sent to; llm.Request has
	// no model field of its own.
	Model string
}

// Client implements llm.Client against the Anthropic Messages API.
type Client struct {
	sdk          anthropic.Client
	defaultModel string
}

// New constructs a Client. APIKey is required.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic: API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		sdk:          anthropic.NewClient(opts...),
		defaultModel: model,
	}, nil
}

// Generate implements llm.Client with a single non-streaming request.
func (c *Client) Generate(ctx context.Context, req llm.Request) (llm.Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 512
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.defaultModel),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if len(req.Stop) > 0 {
		params.StopSequences = req.Stop
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	msg, err := c.sdk.Messages.New(ctx, params)
	if err != nil {
		return llm.Response{}, fmt.Errorf("anthropic: %w", err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if tb := block.AsText(); tb.Text != "" {
			text.WriteString(tb.Text)
		}
	}

	trimmed := trimAtStopSequence(text.String(), req.Stop)

	return llm.Response{
		Text:       trimmed,
		TokensUsed: int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
	}, nil
}

// trimAtStopSequence cuts the text at the first occurrence of any stop
// sequence, matching the guarantee §4.3 places on every adapter.
func trimAtStopSequence(text string, stop []string) string {
	cut := len(text)
	for _, s := range stop {
		if s == "" {
			continue
		}
		if idx := strings.Index(text, s); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	return text[:cut]
}
