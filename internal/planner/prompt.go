package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/devwithmohit/aetheros-reasoncore/internal/memoryclient"
	"github.com/devwithmohit/aetheros-reasoncore/pkg/planmodel"
)

// charsPerToken approximates the LLM adapter's token-based
// context_window as a character budget for prompt assembly, since the
// core has no tokenizer of its own. This mirrors the rough
// token-to-character heuristic used elsewhere when an exact count
// isn't available; it only governs *when* to start dropping content,
// not the final prompt's correctness.
const charsPerToken = 4

// scratchpadEntry is one completed ReAct iteration rendered into the
// prompt. Final-answer iterations are never recorded here — the loop
// terminates before appending one.
type scratchpadEntry struct {
	Thought     string
	Action      string
	ActionInput map[string]any
	Observation string
}

func (e scratchpadEntry) render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thought: %s\n", e.Thought)
	fmt.Fprintf(&b, "Action: %s\n", e.Action)
	encoded, err := json.Marshal(e.ActionInput)
	if err != nil {
		encoded = []byte("{}")
	}
	fmt.Fprintf(&b, "Action Input: %s\n", string(encoded))
	fmt.Fprintf(&b, "Observation: %s\n", e.Observation)
	return b.String()
}

const systemPreamble = `You are the reasoning core of a voice assistant. Follow the ReAct format exactly.
Always end your response with either an Action or a Final Answer. Never both, never neither.

Format for continuing:
Thought: <your reasoning>
Action: <TOOL_NAME>
Action Input: <JSON object of parameters>

Format for finishing:
Thought: <your reasoning>
Final Answer: <your response to the user>`

const terminator = "Thought:"

// buildPrompt assembles the prompt for one iteration, applying the
// truncation order from spec §4.4: scratchpad entries are dropped
// oldest-first until the prompt fits contextWindow (approximated in
// characters), and if still oversized, the context's knowledge and
// episode fields are dropped via memoryclient.TruncateKnowledgeAndEpisodes.
// The preamble, tool manifest, raw query, and the most recent
// scratchpad entry are never dropped.
func buildPrompt(manifest string, ctx planmodel.Context, rawQuery string, scratchpad []scratchpadEntry, contextWindow int) string {
	budget := contextWindow * charsPerToken
	if budget <= 0 {
		budget = 4096 * charsPerToken
	}

	working := scratchpad
	workingCtx := ctx

	for {
		prompt := render(manifest, workingCtx, rawQuery, working)
		if len(prompt) <= budget {
			return prompt
		}

		if len(working) > 1 {
			working = working[1:]
			continue
		}

		if len(workingCtx.Knowledge) > 0 || len(workingCtx.Episodes) > 0 {
			// Drop one knowledge/episode entry at a time via the
			// shared truncation helper, shrinking the combined
			// character budget it enforces until content is removed.
			trimBudget := contextCharLen(workingCtx) - 1
			if trimBudget < 0 {
				trimBudget = 0
			}
			trimmed := memoryclient.TruncateKnowledgeAndEpisodes(workingCtx, trimBudget)
			if contextCharLen(trimmed) == contextCharLen(workingCtx) {
				// No further reduction possible; stop to avoid
				// looping forever.
				return prompt
			}
			workingCtx = trimmed
			continue
		}

		// Nothing left to drop; return the oversized prompt as-is
		// rather than dropping the preamble, manifest, raw query, or
		// the final scratchpad entry.
		return prompt
	}
}

func contextCharLen(ctx planmodel.Context) int {
	total := 0
	for _, f := range ctx.Knowledge {
		total += len(f.Text)
	}
	for _, e := range ctx.Episodes {
		total += len(e.Text)
	}
	return total
}

func render(manifest string, ctx planmodel.Context, rawQuery string, scratchpad []scratchpadEntry) string {
	var b strings.Builder

	b.WriteString(systemPreamble)
	b.WriteString("\n\n")

	b.WriteString("Available tools:\n")
	b.WriteString(manifest)
	b.WriteString("\n")

	b.WriteString(renderContext(ctx))
	b.WriteString("\n")

	fmt.Fprintf(&b, "User query: %s\n\n", rawQuery)

	for _, entry := range scratchpad {
		b.WriteString(entry.render())
		b.WriteString("\n")
	}

	b.WriteString(terminator)
	return b.String()
}

func renderContext(ctx planmodel.Context) string {
	var b strings.Builder
	b.WriteString("Context:\n")

	if len(ctx.Preferences) > 0 {
		encoded, _ := json.Marshal(ctx.Preferences)
		fmt.Fprintf(&b, "Preferences: %s\n", string(encoded))
	}
	for _, turn := range ctx.RecentTurns {
		fmt.Fprintf(&b, "%s: %s\n", turn.Role, turn.Content)
	}
	for _, fact := range ctx.Knowledge {
		fmt.Fprintf(&b, "Known: %s\n", fact.Text)
	}
	for _, ep := range ctx.Episodes {
		fmt.Fprintf(&b, "Recalled: %s\n", ep.Text)
	}

	return b.String()
}
