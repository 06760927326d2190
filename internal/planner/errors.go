package planner

import "errors"

// Sentinel errors for the fatal planner outcomes, following the
// teacher's internal/agent/errors.go sentinel-error style
// (ErrMaxIterations, ErrContextCancelled, ...).
var (
	ErrIterationLimit = errors.New("planner: iteration limit reached without a final answer")
	ErrLLMFailure      = errors.New("planner: LLM adapter returned an error")
	ErrCancelled       = errors.New("planner: cancelled")
)

// StepErrorKind closes the enumeration of recoverable, per-iteration
// failures that become scratchpad Observations rather than aborting
// the plan.
type StepErrorKind string

const (
	StepErrorParse             StepErrorKind = "parse_error"
	StepErrorUnknownTool       StepErrorKind = "unknown_tool"
	StepErrorMissingParameters StepErrorKind = "missing_parameters"
)

// PlanError is a structured, recoverable per-iteration error: the
// teacher's ToolError-like shape (kind/tool/message/cause). The
// planner loop formats its Observation strings directly and does not
// construct PlanError values.
type PlanError struct {
	Kind    StepErrorKind
	Tool    string
	Message string
	Cause   error
}

func (e *PlanError) Error() string {
	if e.Tool != "" {
		return string(e.Kind) + ": " + e.Tool + ": " + e.Message
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *PlanError) Unwrap() error { return e.Cause }
