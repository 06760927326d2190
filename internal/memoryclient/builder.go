package memoryclient

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/devwithmohit/aetheros-reasoncore/pkg/planmodel"
)

// Builder implements the Context Builder (spec §4.1): it issues the
// four Memory Service queries concurrently and collates whatever
// comes back within the deadlines, degrading any failed or slow fetch
// to empty rather than failing the whole build.
//
// The fan-out follows the teacher's
// gateway.BroadcastManager.processParallel (internal/gateway/broadcast.go):
// raw goroutines plus sync.WaitGroup, each writing into its own
// pre-assigned slot, with panic recovery per goroutine so one bad
// fetch can't take down the others.
type Builder struct {
	client *Client
	logger *slog.Logger

	perFetchTimeout time.Duration
	contextDeadline time.Duration
}

// NewBuilder constructs a Builder. If logger is nil, slog.Default() is
// used, matching the teacher's NewBroadcastManager convention.
func NewBuilder(client *Client, perFetchTimeout, contextDeadline time.Duration, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		client:          client,
		logger:          logger,
		perFetchTimeout: perFetchTimeout,
		contextDeadline: contextDeadline,
	}
}

// fetchSlot indexes the four parallel fetches by position so each
// goroutine can write its result without contending on a shared
// structure.
const (
	slotPreferences = iota
	slotRecentTurns
	slotKnowledge
	slotEpisodes
	slotCount
)

// Build assembles a planmodel.Context for one request. It never
// returns an error: every sub-fetch is isolated, and a failure or
// timeout on any of them degrades that field to empty plus a logged
// warning, per spec §4.1's "never fails" contract.
func (b *Builder) Build(ctx context.Context, userID, intentName string, entities map[string]any, rawQuery string) planmodel.Context {
	ctx, cancel := context.WithTimeout(ctx, b.contextDeadline)
	defer cancel()

	type slotResult struct {
		preferences map[string]any
		turns       []RawTurn
		facts       []RawFact
		episodes    []RawEpisode
	}
	var result slotResult

	var wg sync.WaitGroup
	wg.Add(slotCount)

	run := func(idx int, fetch func(context.Context) error) {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				b.logger.Warn("panic during memory fetch", "slot", idx, "panic", r)
			}
		}()

		fetchCtx, fetchCancel := context.WithTimeout(ctx, b.perFetchTimeout)
		defer fetchCancel()

		if err := fetch(fetchCtx); err != nil {
			b.logger.Warn("memory service fetch failed, degrading to empty", "slot", idx, "error", err)
		}
	}

	go run(slotPreferences, func(fetchCtx context.Context) error {
		prefs, err := b.client.Preferences(fetchCtx, userID)
		if err != nil {
			return err
		}
		result.preferences = prefs
		return nil
	})

	go run(slotRecentTurns, func(fetchCtx context.Context) error {
		turns, err := b.client.RecentTurns(fetchCtx, userID, planmodel.MaxRecentTurns)
		if err != nil {
			return err
		}
		result.turns = turns
		return nil
	})

	go run(slotKnowledge, func(fetchCtx context.Context) error {
		facts, err := b.client.Knowledge(fetchCtx, userID, rawQuery, planmodel.MaxKnowledgeFacts)
		if err != nil {
			return err
		}
		result.facts = facts
		return nil
	})

	go run(slotEpisodes, func(fetchCtx context.Context) error {
		episodes, err := b.client.Episodes(fetchCtx, userID, rawQuery, planmodel.MaxEpisodes)
		if err != nil {
			return err
		}
		result.episodes = episodes
		return nil
	})

	wg.Wait()

	built := planmodel.Context{
		Preferences: result.preferences,
		RecentTurns: toTurns(result.turns),
		Knowledge:   toFacts(result.facts),
		Episodes:    toEpisodes(result.episodes),
	}
	if built.Preferences == nil {
		built.Preferences = map[string]any{}
	}
	return built
}

func toTurns(raw []RawTurn) []planmodel.Turn {
	if len(raw) == 0 {
		return nil
	}
	out := make([]planmodel.Turn, 0, len(raw))
	for _, r := range raw {
		ts, _ := time.Parse(time.RFC3339, r.Timestamp)
		out = append(out, planmodel.Turn{Role: r.Role, Content: r.Content, Timestamp: ts})
	}
	if len(out) > planmodel.MaxRecentTurns {
		out = out[len(out)-planmodel.MaxRecentTurns:]
	}
	return out
}

func toFacts(raw []RawFact) []planmodel.KnowledgeFact {
	if len(raw) == 0 {
		return nil
	}
	out := make([]planmodel.KnowledgeFact, 0, len(raw))
	for _, r := range raw {
		out = append(out, planmodel.KnowledgeFact{Text: r.Text, Relevance: r.Relevance})
	}
	if len(out) > planmodel.MaxKnowledgeFacts {
		out = out[:planmodel.MaxKnowledgeFacts]
	}
	return out
}

func toEpisodes(raw []RawEpisode) []planmodel.Episode {
	if len(raw) == 0 {
		return nil
	}
	out := make([]planmodel.Episode, 0, len(raw))
	for _, r := range raw {
		ts, _ := time.Parse(time.RFC3339, r.Timestamp)
		out = append(out, planmodel.Episode{Text: r.Text, Timestamp: ts, Similarity: r.Similarity})
	}
	if len(out) > planmodel.MaxEpisodes {
		out = out[:planmodel.MaxEpisodes]
	}
	return out
}

// String is a small debug helper; not used on the hot path.
func (b *Builder) String() string {
	return fmt.Sprintf("memoryclient.Builder{perFetchTimeout=%s, contextDeadline=%s}", b.perFetchTimeout, b.contextDeadline)
}
