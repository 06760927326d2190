// Package planner implements the ReAct Planner (spec §4.4): the
// Thought->Action->Observation state machine that drives an
// IntentEnvelope and a pre-built Context to a validated ExecutionPlan.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/devwithmohit/aetheros-reasoncore/internal/catalog"
	"github.com/devwithmohit/aetheros-reasoncore/internal/llm"
	"github.com/devwithmohit/aetheros-reasoncore/internal/safety"
	"github.com/devwithmohit/aetheros-reasoncore/pkg/planmodel"
)

// DefaultMaxIterations is the spec default for MAX_ITERATIONS.
const DefaultMaxIterations = 10

// Config configures a Planner.
type Config struct {
	MaxIterations    int
	Temperature      float64
	FinalTemperature float64
	MaxTokens        int
	ContextWindow    int
	LLMTimeout       time.Duration
}

// Planner drives the ReAct loop for one request at a time; a single
// Planner value is safe to reuse concurrently across independent Plan
// calls (the catalog is read-only, the safety validator serializes its
// own per-user state).
type Planner struct {
	llm       llm.Client
	catalog   *catalog.Catalog
	validator *safety.Validator
	metrics   *Metrics
	logger    *slog.Logger
	cfg       Config
}

// New constructs a Planner.
func New(client llm.Client, cat *catalog.Catalog, validator *safety.Validator, metrics *Metrics, logger *slog.Logger, cfg Config) *Planner {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = llm.DefaultTemperature
	}
	if cfg.FinalTemperature <= 0 {
		cfg.FinalTemperature = llm.FinalIterationTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 512
	}
	if cfg.ContextWindow <= 0 {
		cfg.ContextWindow = 4096
	}
	if cfg.LLMTimeout <= 0 {
		cfg.LLMTimeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{llm: client, catalog: cat, validator: validator, metrics: metrics, logger: logger, cfg: cfg}
}

// Plan runs the full ReAct loop for one request. It returns a
// well-formed ExecutionPlan in every case except an invalid envelope,
// which is a boundary/caller error returned directly — the core never
// panics past its boundary, and every in-loop failure is reported
// through the returned plan rather than a Go error (spec §7).
func (p *Planner) Plan(ctx context.Context, envelope planmodel.IntentEnvelope, memCtx planmodel.Context) (*planmodel.ExecutionPlan, error) {
	if err := envelope.Validate(); err != nil {
		return nil, fmt.Errorf("planner: invalid envelope: %w", err)
	}

	deadline := time.Duration(p.cfg.MaxIterations)*p.cfg.LLMTimeout + 3*time.Second
	runCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	plan := &planmodel.ExecutionPlan{
		UserID:     envelope.UserID,
		IntentName: envelope.IntentName,
		RawQuery:   envelope.RawQuery,
	}

	result := p.run(runCtx, envelope, memCtx, plan)

	plan.Iterations = result.iterations
	if p.metrics != nil {
		p.metrics.observeIterations(plan.Iterations)
	}

	switch result.state {
	case stateFinalAnswer:
		plan.FinalAnswer = result.finalAnswer
		plan.Success = !plan.HasBlockedStep() && len(plan.PendingConfirmations()) == 0
		if p.metrics != nil {
			p.metrics.recordOutcome(successOutcomeLabel(plan.Success))
		}
	case stateFailed:
		plan.Error = result.failure
		plan.Success = false
		if p.metrics != nil {
			p.metrics.recordOutcome(string(result.failure.Kind))
		}
	}

	return plan, nil
}

func successOutcomeLabel(success bool) string {
	if success {
		return "success"
	}
	return "incomplete"
}

// run is the sequential ReAct loop body. The returned loopResult.iterations
// counts actual Thought->Action/Final-Answer round trips — every completed
// call to the LLM, whether its response was accepted, recovered from a
// parse/tool/parameter error, or terminal — not the number of steps
// accepted into the plan (spec §3/§8's Iterations is the loop's own trip
// count, distinct from len(plan.Steps)).
func (p *Planner) run(ctx context.Context, envelope planmodel.IntentEnvelope, memCtx planmodel.Context, plan *planmodel.ExecutionPlan) loopResult {
	var scratchpad []scratchpadEntry
	manifest := p.catalog.Manifest()
	completed := 0

	for iteration := 0; ; iteration++ {
		if err := ctx.Err(); err != nil {
			return loopResult{state: stateFailed, iterations: completed, failure: &planmodel.PlanFailure{Kind: planmodel.FailureCancelled, Message: err.Error()}}
		}

		if iteration >= p.cfg.MaxIterations {
			return loopResult{state: stateFailed, iterations: completed, failure: &planmodel.PlanFailure{Kind: planmodel.FailureIterationLimit, Message: "reasoning did not converge within the iteration budget"}}
		}

		temperature := p.cfg.Temperature
		if iteration == p.cfg.MaxIterations-1 {
			temperature = p.cfg.FinalTemperature
		}

		prompt := buildPrompt(manifest, memCtx, envelope.RawQuery, scratchpad, p.cfg.ContextWindow)

		callCtx, callCancel := context.WithTimeout(ctx, p.cfg.LLMTimeout)
		resp, err := p.llm.Generate(callCtx, llm.Request{
			Prompt:      prompt,
			MaxTokens:   p.cfg.MaxTokens,
			Temperature: temperature,
			Stop:        []string{"Observation:"},
		})
		callCancel()
		completed++
		if err != nil {
			return loopResult{state: stateFailed, iterations: completed, failure: &planmodel.PlanFailure{Kind: planmodel.FailureLLMError, Message: err.Error()}}
		}

		step, parseErr := parseResponse(resp.Text)
		if parseErr != nil {
			if p.metrics != nil {
				p.metrics.recordParseError()
			}
			scratchpad = append(scratchpad, scratchpadEntry{
				Thought:     "(unparseable response)",
				Action:      "NONE",
				ActionInput: map[string]any{},
				Observation: fmt.Sprintf("ParseError: %s", parseErr.Error()),
			})
			continue
		}

		if step.isFinal {
			return loopResult{state: stateFinalAnswer, iterations: completed, finalAnswer: step.finalAnswer}
		}

		p.acceptAction(envelope, step, &scratchpad, plan)
	}
}

// acceptAction resolves, extracts parameters for, and safety-checks
// one Action/Action Input pair, appending the corresponding scratchpad
// Observation and (when applicable) plan step.
func (p *Planner) acceptAction(envelope planmodel.IntentEnvelope, step parsedStep, scratchpad *[]scratchpadEntry, plan *planmodel.ExecutionPlan) {
	tool, err := p.catalog.Lookup(step.action)
	if err != nil {
		*scratchpad = append(*scratchpad, scratchpadEntry{
			Thought:     step.thought,
			Action:      step.action,
			ActionInput: step.actionInput,
			Observation: fmt.Sprintf("UnknownTool: %q is not a recognized tool", step.action),
		})
		return
	}

	params, err := p.catalog.ExtractParameters(tool, envelope.Entities, step.actionInput)
	if err != nil {
		var missing *catalog.MissingParametersError
		if errors.As(err, &missing) {
			*scratchpad = append(*scratchpad, scratchpadEntry{
				Thought:     step.thought,
				Action:      string(tool),
				ActionInput: step.actionInput,
				Observation: fmt.Sprintf("MissingParameters: %v", missing.Missing),
			})
			return
		}
		*scratchpad = append(*scratchpad, scratchpadEntry{
			Thought:     step.thought,
			Action:      string(tool),
			ActionInput: step.actionInput,
			Observation: fmt.Sprintf("Error: %s", err.Error()),
		})
		return
	}

	spec, _ := p.catalog.Spec(tool)
	result := p.validator.Validate(envelope.UserID, spec, params, envelope.ConfirmationToken)

	switch result.Kind {
	case planmodel.ValidationBlocked:
		if p.metrics != nil {
			p.metrics.recordBlockedStep()
		}
		plan.Steps = append(plan.Steps, planmodel.ToolCall{
			Tool:        tool,
			Parameters:  params,
			Thought:     step.thought,
			Status:      planmodel.StepBlocked,
			Risk:        result.Risk,
			BlockReason: result.Reason,
		})
		*scratchpad = append(*scratchpad, scratchpadEntry{
			Thought:     step.thought,
			Action:      string(tool),
			ActionInput: params,
			Observation: fmt.Sprintf("Blocked: %s", result.Reason),
		})

	case planmodel.ValidationRequiresConfirmation:
		if p.metrics != nil {
			p.metrics.recordConfirmation()
		}
		plan.Steps = append(plan.Steps, planmodel.ToolCall{
			Tool:                 tool,
			Parameters:           result.Parameters,
			Thought:              step.thought,
			Status:               planmodel.StepRequiresConfirmation,
			Risk:                 result.Risk,
			ConfirmationMessage:  result.Message,
		})
		*scratchpad = append(*scratchpad, scratchpadEntry{
			Thought:     step.thought,
			Action:      string(tool),
			ActionInput: result.Parameters,
			Observation: fmt.Sprintf("Awaiting confirmation: %s", result.Message),
		})

	default: // Approved or Sanitized
		status := planmodel.StepApproved
		if result.Kind == planmodel.ValidationSanitized {
			status = planmodel.StepSanitized
		}
		observation := synthesizeObservation(tool, result.Parameters)
		plan.Steps = append(plan.Steps, planmodel.ToolCall{
			Tool:        tool,
			Parameters:  result.Parameters,
			Thought:     step.thought,
			Observation: observation,
			Sanitized:   result.Kind == planmodel.ValidationSanitized,
			Status:      status,
			Risk:        result.Risk,
		})
		*scratchpad = append(*scratchpad, scratchpadEntry{
			Thought:     step.thought,
			Action:      string(tool),
			ActionInput: result.Parameters,
			Observation: observation,
		})
	}
}

// synthesizeObservation produces the canonical deterministic
// observation for a resolved tool call (spec §4.4's "Observation
// policy"): the core never executes tools itself.
func synthesizeObservation(tool planmodel.ToolType, params map[string]any) string {
	encoded, err := json.Marshal(params)
	if err != nil {
		encoded = []byte("{}")
	}
	return fmt.Sprintf("%s: executed with parameters %s", tool, string(encoded))
}
