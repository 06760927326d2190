package planmodel

// StepStatus records the terminal disposition of one step the planner
// produced, before it is admitted (or not) to the final plan.
type StepStatus string

const (
	StepApproved             StepStatus = "approved"
	StepSanitized            StepStatus = "sanitized"
	StepRequiresConfirmation StepStatus = "requires_confirmation"
	StepBlocked              StepStatus = "blocked"
)

// ToolCall is one accepted step of an execution plan. Parameters holds
// the sanitized form once the safety pass has run; Observation is set
// only after the (simulated or real) execution that follows acceptance.
type ToolCall struct {
	Tool       ToolType       `json:"tool"`
	Parameters map[string]any `json:"parameters"`
	Thought    string         `json:"thought"`
	Observation string        `json:"observation,omitempty"`
	Sanitized  bool           `json:"sanitized"`
	Status     StepStatus     `json:"status"`
	Risk       RiskScore      `json:"risk"`

	// ConfirmationMessage carries the human-readable prompt when Status
	// is StepRequiresConfirmation.
	ConfirmationMessage string `json:"confirmation_message,omitempty"`

	// BlockReason carries the validator's reason when Status is
	// StepBlocked.
	BlockReason string `json:"block_reason,omitempty"`
}

// FailureKind closes the enumeration of ways a plan can fail to reach a
// successful Final Answer.
type FailureKind string

const (
	FailureNone             FailureKind = ""
	FailureIterationLimit   FailureKind = "iteration_limit"
	FailureLLMError         FailureKind = "llm_error"
	FailureCancelled        FailureKind = "cancelled"
	FailureAbuseBlocked     FailureKind = "abuse_blocked"
)

// PlanFailure describes a fatal plan-level error.
type PlanFailure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

// ExecutionPlan is the value returned to the caller for one plan call.
//
// Invariants: Iterations <= MAX_ITERATIONS; Success implies a non-empty
// FinalAnswer, no Blocked step remaining, and every
// RequiresConfirmation step carrying a valid confirmation token;
// Steps is ordered exactly as the planner accepted them.
type ExecutionPlan struct {
	UserID      string       `json:"user_id"`
	IntentName  string       `json:"intent_name"`
	RawQuery    string       `json:"raw_query"`
	Steps       []ToolCall   `json:"steps"`
	FinalAnswer string       `json:"final_answer"`
	Iterations  int          `json:"iterations"`
	Success     bool         `json:"success"`
	Error       *PlanFailure `json:"error,omitempty"`
}

// HasBlockedStep reports whether any step in the plan is Blocked.
func (p *ExecutionPlan) HasBlockedStep() bool {
	for _, s := range p.Steps {
		if s.Status == StepBlocked {
			return true
		}
	}
	return false
}

// PendingConfirmations returns the steps still awaiting confirmation.
func (p *ExecutionPlan) PendingConfirmations() []ToolCall {
	var pending []ToolCall
	for _, s := range p.Steps {
		if s.Status == StepRequiresConfirmation {
			pending = append(pending, s)
		}
	}
	return pending
}
