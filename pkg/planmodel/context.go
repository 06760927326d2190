package planmodel

import "time"

// Turn is a single message in the recent conversation history, rendered
// into the prompt in chronological order.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// KnowledgeFact is a single retrieved fact from the long-term knowledge
// store, ranked by Relevance in [0,1].
type KnowledgeFact struct {
	Text      string  `json:"text"`
	Relevance float64 `json:"relevance"`
}

// Episode is a single semantically-retrieved past episode, ranked by
// Similarity in [0,1].
type Episode struct {
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
	Similarity float64   `json:"similarity"`
}

// Context is the per-request value assembled by the context builder
// from the external memory service. Any field may be empty — a fetch
// failure against the memory service degrades that field to empty but
// never fails the pipeline, so Context is always structurally valid.
type Context struct {
	Preferences map[string]any  `json:"preferences"`
	RecentTurns []Turn          `json:"recent_turns"`
	Knowledge   []KnowledgeFact `json:"knowledge"`
	Episodes    []Episode       `json:"episodes"`
}

// MaxRecentTurns, MaxKnowledgeFacts, and MaxEpisodes are the per-field
// caps enforced by the context builder (N=5, K=5, E=3 respectively).
const (
	MaxRecentTurns    = 5
	MaxKnowledgeFacts = 5
	MaxEpisodes       = 3
)

// Empty returns a structurally valid, entirely empty Context — the
// degraded value used when the memory service is unreachable.
func Empty() Context {
	return Context{
		Preferences: map[string]any{},
		RecentTurns: nil,
		Knowledge:   nil,
		Episodes:    nil,
	}
}
