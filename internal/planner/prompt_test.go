package planner

import (
	"strings"
	"testing"

	"github.com/devwithmohit/aetheros-reasoncore/pkg/planmodel"
)

func TestBuildPromptIncludesAllSections(t *testing.T) {
	ctx := planmodel.Context{Preferences: map[string]any{"timezone": "UTC"}}
	prompt := buildPrompt("GET_WEATHER: fetch weather\n", ctx, "what's the weather", nil, 4096)

	for _, want := range []string{systemPreamble[:20], "GET_WEATHER", "what's the weather", terminator} {
		if !strings.Contains(prompt, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}
}

func TestBuildPromptDropsScratchpadOldestFirstUnderBudget(t *testing.T) {
	scratchpad := []scratchpadEntry{
		{Thought: "first very long thought that takes a lot of space to force truncation of older entries", Action: "GET_WEATHER", ActionInput: map[string]any{}, Observation: "obs1"},
		{Thought: "second", Action: "GET_WEATHER", ActionInput: map[string]any{}, Observation: "obs2"},
	}
	smallBudgetTokens := 60 // ~240 chars, forces at least one drop

	prompt := buildPrompt("GET_WEATHER: fetch weather\n", planmodel.Context{}, "q", scratchpad, smallBudgetTokens)

	if strings.Contains(prompt, "obs1") {
		t.Error("expected the oldest scratchpad entry to be dropped first")
	}
	if !strings.Contains(prompt, "obs2") {
		t.Error("expected the most recent scratchpad entry to survive")
	}
}

func TestBuildPromptNeverDropsSoleScratchpadEntry(t *testing.T) {
	scratchpad := []scratchpadEntry{
		{Thought: strings.Repeat("x", 5000), Action: "GET_WEATHER", ActionInput: map[string]any{}, Observation: "only-entry"},
	}
	prompt := buildPrompt("GET_WEATHER: fetch weather\n", planmodel.Context{}, "q", scratchpad, 10)
	if !strings.Contains(prompt, "only-entry") {
		t.Error("expected the sole scratchpad entry to never be dropped")
	}
}

func TestBuildPromptDropsContextAfterScratchpadExhausted(t *testing.T) {
	ctx := planmodel.Context{
		Knowledge: []planmodel.KnowledgeFact{{Text: strings.Repeat("fact ", 200)}},
	}
	scratchpad := []scratchpadEntry{
		{Thought: "t", Action: "GET_WEATHER", ActionInput: map[string]any{}, Observation: "o"},
	}
	prompt := buildPrompt("GET_WEATHER: fetch weather\n", ctx, "q", scratchpad, 10)

	if strings.Contains(prompt, "fact fact") {
		t.Error("expected oversized knowledge content to be dropped once scratchpad can't shrink further")
	}
	if !strings.Contains(prompt, "Observation: o\n") {
		t.Error("expected scratchpad's sole entry to survive")
	}
}

func TestBuildPromptNeverDropsRawQuery(t *testing.T) {
	prompt := buildPrompt("GET_WEATHER: fetch weather\n", planmodel.Context{}, "a very specific raw query string", nil, 1)
	if !strings.Contains(prompt, "a very specific raw query string") {
		t.Error("expected raw query to always be present even when budget is tiny")
	}
}
