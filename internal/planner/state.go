package planner

import "github.com/devwithmohit/aetheros-reasoncore/pkg/planmodel"

// planState is the closed enumeration of the loop's own status, kept
// separate from planmodel.FailureKind: state drives control flow
// inside Plan, FailureKind is what gets reported once the loop has
// stopped. Modeled as an explicit state machine per the teacher's
// house style ("state machine, not coroutines") rather than a channel
// or goroutine-per-iteration design — the loop is strictly sequential
// (spec §5).
type planState string

const (
	stateRunning     planState = "running"
	stateFinalAnswer planState = "final_answer"
	stateFailed      planState = "failed"
)

// loopResult carries the terminal values produced by the loop body,
// before ExecutionPlan.Success is derived. iterations is the number of
// completed Thought->Action/Final-Answer round trips, independent of how
// many of those round trips were accepted into plan.Steps.
type loopResult struct {
	state       planState
	iterations  int
	finalAnswer string
	failure     *planmodel.PlanFailure
}
