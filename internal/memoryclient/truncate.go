package memoryclient

import (
	"sort"

	"github.com/devwithmohit/aetheros-reasoncore/pkg/planmodel"
)

// TruncateKnowledgeAndEpisodes enforces the caller-supplied combined
// character budget for the knowledge+episodes prompt block by dropping
// entries longest-first until the combined rendering fits, or until
// none remain. Its only caller is the planner's prompt builder, which
// passes a budget derived from the LLM context window while shrinking
// an oversized prompt; the memory.prompt_char_budget setting is not
// read by any code. Preferences and recent_turns
// are never touched here — they are rendered first and are considered
// high-signal/stable per §4.1.
//
// Longest-first was chosen (see DESIGN.md Open Questions) to preserve
// breadth: more short facts surviving beats one long fact crowding out
// everything else.
func TruncateKnowledgeAndEpisodes(ctx planmodel.Context, budget int) planmodel.Context {
	if budget <= 0 {
		ctx.Knowledge = nil
		ctx.Episodes = nil
		return ctx
	}

	type item struct {
		isKnowledge bool
		idx         int
		length      int
	}

	var items []item
	for i, f := range ctx.Knowledge {
		items = append(items, item{isKnowledge: true, idx: i, length: len(f.Text)})
	}
	for i, e := range ctx.Episodes {
		items = append(items, item{isKnowledge: false, idx: i, length: len(e.Text)})
	}

	total := 0
	for _, it := range items {
		total += it.length
	}
	if total <= budget {
		return ctx
	}

	// Drop longest-first until the remaining total fits the budget.
	sort.Slice(items, func(i, j int) bool { return items[i].length > items[j].length })

	dropKnowledge := make(map[int]bool)
	dropEpisodes := make(map[int]bool)
	for _, it := range items {
		if total <= budget {
			break
		}
		if it.isKnowledge {
			dropKnowledge[it.idx] = true
		} else {
			dropEpisodes[it.idx] = true
		}
		total -= it.length
	}

	if len(dropKnowledge) > 0 {
		kept := make([]planmodel.KnowledgeFact, 0, len(ctx.Knowledge))
		for i, f := range ctx.Knowledge {
			if !dropKnowledge[i] {
				kept = append(kept, f)
			}
		}
		ctx.Knowledge = kept
	}
	if len(dropEpisodes) > 0 {
		kept := make([]planmodel.Episode, 0, len(ctx.Episodes))
		for i, e := range ctx.Episodes {
			if !dropEpisodes[i] {
				kept = append(kept, e)
			}
		}
		ctx.Episodes = kept
	}

	return ctx
}
