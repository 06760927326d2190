// Package llm defines the single-request interface between the ReAct
// planner and a language model backend, per spec §4.3.
package llm

import "context"

// Response is the result of one Generate call.
type Response struct {
	Text       string
	TokensUsed int
}

// Request bundles one Generate call's parameters. Temperature is
// carried explicitly (rather than fixed adapter-side) because the
// planner lowers it for the terminal "produce Final Answer" iteration
// per spec §4.3.
type Request struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
	Stop        []string
}

// Client is the LLM Adapter contract. A call is blocking; the caller
// (the planner) is responsible for imposing a request deadline via ctx
// and for any retry policy — the adapter itself never retries
// internally.
type Client interface {
	// Generate issues a single completion request. Implementations must
	// guarantee stop-sequence trimming and UTF-8-safe output.
	Generate(ctx context.Context, req Request) (Response, error)
}

// Sampling defaults from spec §4.3.
const (
	DefaultTemperature        = 0.7
	FinalIterationTemperature = 0.2
)
