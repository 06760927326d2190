package memoryclient

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/devwithmohit/aetheros-reasoncore/pkg/planmodel"
)

func newTestBuilder(t *testing.T, srv *httptest.Server, perFetch, deadline time.Duration) *Builder {
	t.Helper()
	client, err := New(Config{BaseURL: srv.URL, Timeout: deadline})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return NewBuilder(client, perFetch, deadline, slog.Default())
}

func TestBuilderNominalFanOut(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/long-term/preferences/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"timezone":"UTC"}`)
	})
	mux.HandleFunc("/short-term/conversation/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"role":"user","content":"hi","timestamp":"2026-01-01T00:00:00Z"}]`)
	})
	mux.HandleFunc("/long-term/knowledge/query", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"text":"fact one","relevance":0.9}]`)
	})
	mux.HandleFunc("/episodic/query", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"text":"episode one","timestamp":"2026-01-01T00:00:00Z","similarity":0.5}]`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	b := newTestBuilder(t, srv, 2*time.Second, 3*time.Second)
	ctx := b.Build(context.Background(), "alice", "get_weather", nil, "what's the weather")

	if ctx.Preferences["timezone"] != "UTC" {
		t.Errorf("preferences: got %v", ctx.Preferences)
	}
	if len(ctx.RecentTurns) != 1 || ctx.RecentTurns[0].Content != "hi" {
		t.Errorf("recent turns: got %v", ctx.RecentTurns)
	}
	if len(ctx.Knowledge) != 1 || ctx.Knowledge[0].Text != "fact one" {
		t.Errorf("knowledge: got %v", ctx.Knowledge)
	}
	if len(ctx.Episodes) != 1 || ctx.Episodes[0].Text != "episode one" {
		t.Errorf("episodes: got %v", ctx.Episodes)
	}
}

func TestBuilderDegradesFailedSlotsToEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/long-term/preferences/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/short-term/conversation/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"role":"user","content":"hi","timestamp":"2026-01-01T00:00:00Z"}]`)
	})
	mux.HandleFunc("/long-term/knowledge/query", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "{not json")
	})
	mux.HandleFunc("/episodic/query", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"text":"episode one","timestamp":"2026-01-01T00:00:00Z","similarity":0.5}]`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	b := newTestBuilder(t, srv, 2*time.Second, 3*time.Second)
	ctx := b.Build(context.Background(), "alice", "get_weather", nil, "what's the weather")

	if len(ctx.Preferences) != 0 {
		t.Errorf("expected empty preferences on 500, got %v", ctx.Preferences)
	}
	if len(ctx.Knowledge) != 0 {
		t.Errorf("expected empty knowledge on malformed body, got %v", ctx.Knowledge)
	}
	if len(ctx.RecentTurns) != 1 {
		t.Errorf("expected recent turns to survive, got %v", ctx.RecentTurns)
	}
	if len(ctx.Episodes) != 1 {
		t.Errorf("expected episodes to survive, got %v", ctx.Episodes)
	}
}

func TestBuilderRespectsPerFetchTimeout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/long-term/preferences/", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, `{"timezone":"UTC"}`)
	})
	mux.HandleFunc("/short-term/conversation/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	mux.HandleFunc("/long-term/knowledge/query", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	mux.HandleFunc("/episodic/query", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, err := New(Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b := NewBuilder(client, 20*time.Millisecond, 3*time.Second, slog.Default())

	start := time.Now()
	ctx := b.Build(context.Background(), "alice", "get_weather", nil, "q")
	elapsed := time.Since(start)

	if len(ctx.Preferences) != 0 {
		t.Errorf("expected preferences to degrade to empty on timeout, got %v", ctx.Preferences)
	}
	if elapsed >= 200*time.Millisecond {
		t.Errorf("expected Build to return before the slow fetch completed, took %s", elapsed)
	}
}

func TestBuilderCapsSlotSizes(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/long-term/preferences/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})
	mux.HandleFunc("/short-term/conversation/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	mux.HandleFunc("/long-term/knowledge/query", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"text":"a","relevance":1},{"text":"b","relevance":1},{"text":"c","relevance":1},{"text":"d","relevance":1},{"text":"e","relevance":1},{"text":"f","relevance":1}]`)
	})
	mux.HandleFunc("/episodic/query", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	b := newTestBuilder(t, srv, 2*time.Second, 3*time.Second)
	ctx := b.Build(context.Background(), "alice", "get_weather", nil, "q")

	if len(ctx.Knowledge) == 0 {
		t.Fatal("expected some knowledge facts")
	}
	if len(ctx.Knowledge) != planmodel.MaxKnowledgeFacts {
		t.Errorf("len(Knowledge) = %d, want %d (6 served, capped)", len(ctx.Knowledge), planmodel.MaxKnowledgeFacts)
	}
}
