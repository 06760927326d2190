package memoryclient

import (
	"testing"

	"github.com/devwithmohit/aetheros-reasoncore/pkg/planmodel"
)

func TestTruncateUnderBudgetIsNoOp(t *testing.T) {
	ctx := planmodel.Context{
		Knowledge: []planmodel.KnowledgeFact{{Text: "short fact"}},
		Episodes:  []planmodel.Episode{{Text: "short episode"}},
	}
	out := TruncateKnowledgeAndEpisodes(ctx, 1000)
	if len(out.Knowledge) != 1 || len(out.Episodes) != 1 {
		t.Fatalf("expected no-op, got %+v", out)
	}
}

func TestTruncateDropsLongestFirst(t *testing.T) {
	ctx := planmodel.Context{
		Knowledge: []planmodel.KnowledgeFact{
			{Text: "short"},              // 5
			{Text: "a very long fact text here"}, // 26
		},
		Episodes: []planmodel.Episode{
			{Text: "tiny"}, // 4
		},
	}
	// total = 5 + 26 + 4 = 35. budget 20 should drop the 26-char entry first.
	out := TruncateKnowledgeAndEpisodes(ctx, 20)

	if len(out.Knowledge) != 1 || out.Knowledge[0].Text != "short" {
		t.Errorf("expected only the short fact to survive, got %+v", out.Knowledge)
	}
	if len(out.Episodes) != 1 || out.Episodes[0].Text != "tiny" {
		t.Errorf("expected episode to survive, got %+v", out.Episodes)
	}
}

func TestTruncatePreservesOriginalOrderAmongSurvivors(t *testing.T) {
	ctx := planmodel.Context{
		Knowledge: []planmodel.KnowledgeFact{
			{Text: "aa"},
			{Text: "a very long entry that will get dropped"},
			{Text: "bb"},
		},
	}
	out := TruncateKnowledgeAndEpisodes(ctx, 10)
	if len(out.Knowledge) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(out.Knowledge))
	}
	if out.Knowledge[0].Text != "aa" || out.Knowledge[1].Text != "bb" {
		t.Errorf("expected original order preserved, got %+v", out.Knowledge)
	}
}

func TestTruncateZeroBudgetDropsAll(t *testing.T) {
	ctx := planmodel.Context{
		Knowledge: []planmodel.KnowledgeFact{{Text: "fact"}},
		Episodes:  []planmodel.Episode{{Text: "episode"}},
	}
	out := TruncateKnowledgeAndEpisodes(ctx, 0)
	if len(out.Knowledge) != 0 || len(out.Episodes) != 0 {
		t.Fatalf("expected all dropped at zero budget, got %+v", out)
	}
}

func TestTruncateNegativeBudgetDropsAll(t *testing.T) {
	ctx := planmodel.Context{
		Knowledge: []planmodel.KnowledgeFact{{Text: "fact"}},
	}
	out := TruncateKnowledgeAndEpisodes(ctx, -5)
	if len(out.Knowledge) != 0 {
		t.Fatalf("expected all dropped at negative budget, got %+v", out)
	}
}

func TestTruncateExactlyAtBudgetIsNoOp(t *testing.T) {
	ctx := planmodel.Context{
		Knowledge: []planmodel.KnowledgeFact{{Text: "12345"}},
	}
	out := TruncateKnowledgeAndEpisodes(ctx, 5)
	if len(out.Knowledge) != 1 {
		t.Fatalf("expected entry to survive at exact budget, got %+v", out.Knowledge)
	}
}

func TestTruncatePreferencesAndTurnsNeverTouched(t *testing.T) {
	ctx := planmodel.Context{
		Preferences: map[string]any{"timezone": "UTC"},
		RecentTurns: []planmodel.Turn{{Role: "user", Content: "hello"}},
		Knowledge:   []planmodel.KnowledgeFact{{Text: "a very long fact that should be dropped entirely"}},
	}
	out := TruncateKnowledgeAndEpisodes(ctx, 1)
	if out.Preferences["timezone"] != "UTC" {
		t.Errorf("expected preferences untouched, got %v", out.Preferences)
	}
	if len(out.RecentTurns) != 1 {
		t.Errorf("expected recent turns untouched, got %v", out.RecentTurns)
	}
	if len(out.Knowledge) != 0 {
		t.Errorf("expected knowledge dropped, got %v", out.Knowledge)
	}
}
