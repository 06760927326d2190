package memoryclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewRejectsEmptyBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for empty base_url")
	}
}

func TestNewRejectsNonHTTPScheme(t *testing.T) {
	if _, err := New(Config{BaseURL: "ftp://example.com"}); err == nil {
		t.Fatal("expected error for non-http(s) scheme")
	}
}

func TestPreferencesNominal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/long-term/preferences/alice" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header")
		}
		fmt.Fprint(w, `{"timezone":"UTC"}`)
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	prefs, err := c.Preferences(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if prefs["timezone"] != "UTC" {
		t.Errorf("got %v", prefs)
	}
}

func TestPreferences5xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, "unavailable")
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	if _, err := c.Preferences(context.Background(), "alice"); err == nil {
		t.Fatal("expected error on 503")
	}
}

func TestPreferencesOversizeResponseRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		big := make([]byte, 100)
		for i := range big {
			big[i] = 'a'
		}
		fmt.Fprintf(w, `{"x":"%s"}`, big)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL, MaxResponseBytes: 10})
	if _, err := c.Preferences(context.Background(), "alice"); err == nil {
		t.Fatal("expected error for oversize response")
	}
}

func TestPreferencesMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "{not json")
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	if _, err := c.Preferences(context.Background(), "alice"); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestKnowledgeQueryBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		fmt.Fprint(w, `[{"text":"fact one","relevance":0.9}]`)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	facts, err := c.Knowledge(context.Background(), "alice", "weather", 5)
	if err != nil {
		t.Fatalf("Knowledge: %v", err)
	}
	if len(facts) != 1 || facts[0].Text != "fact one" {
		t.Errorf("got %v", facts)
	}
}
