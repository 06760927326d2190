// Package scripted provides a deterministic in-process llm.Client used
// by the planner's tests and by the seed scenarios in spec §8. It
// follows the teacher's loopTestProvider fake
// (internal/agent/loop_test.go): a queue of canned responses returned
// in call order, with an optional override function for cases that
// need to inspect the request.
package scripted

import (
	"context"
	"sync/atomic"

	"github.com/devwithmohit/aetheros-reasoncore/internal/llm"
)

// Client returns queued responses in the order Generate is called. If
// the queue is exhausted, it returns ErrExhausted.
type Client struct {
	responses   []llm.Response
	currentCall int32

	// GenerateFunc, if set, overrides the queue entirely — used by
	// tests that need to assert on the prompt text itself.
	GenerateFunc func(ctx context.Context, req llm.Request) (llm.Response, error)
}

// New builds a scripted client that returns responses in order, one
// per call to Generate.
func New(responses ...llm.Response) *Client {
	return &Client{responses: responses}
}

// NewText is a convenience constructor for scripts that only care
// about the text field.
func NewText(texts ...string) *Client {
	responses := make([]llm.Response, len(texts))
	for i, t := range texts {
		responses[i] = llm.Response{Text: t, TokensUsed: len(t) / 4}
	}
	return &Client{responses: responses}
}

// ErrExhausted is returned once every queued response has been
// consumed.
var ErrExhausted = errExhausted{}

type errExhausted struct{}

func (errExhausted) Error() string { return "scripted: response queue exhausted" }

// Generate implements llm.Client.
func (c *Client) Generate(ctx context.Context, req llm.Request) (llm.Response, error) {
	if c.GenerateFunc != nil {
		return c.GenerateFunc(ctx, req)
	}

	call := int(atomic.AddInt32(&c.currentCall, 1)) - 1
	if call >= len(c.responses) {
		return llm.Response{}, ErrExhausted
	}

	select {
	case <-ctx.Done():
		return llm.Response{}, ctx.Err()
	default:
	}

	return c.responses[call], nil
}

// CallCount returns how many times Generate has been called.
func (c *Client) CallCount() int {
	return int(atomic.LoadInt32(&c.currentCall))
}
