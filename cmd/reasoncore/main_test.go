package main

import "testing"

func TestBuildRootCmdIncludesSubcommands(t *testing.T) {
	cmd := buildRootCmd()
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}

	required := []string{"plan", "serve", "confirm"}
	for _, name := range required {
		if !names[name] {
			t.Fatalf("expected subcommand %q to be registered", name)
		}
	}
}

func TestBuildLLMClientRejectsUnknownProvider(t *testing.T) {
	if _, err := buildLLMClient("bogus"); err == nil {
		t.Fatal("expected an error for an unknown provider")
	}
}

func TestBuildLLMClientDefaultsToAnthropic(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	client, err := buildLLMClient("")
	if err != nil {
		t.Fatalf("buildLLMClient: %v", err)
	}
	if client == nil {
		t.Fatal("expected a non-nil client")
	}
}

func TestLoadConfigDefaultsWhenPathEmpty(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Planner.MaxIterations != 10 {
		t.Errorf("expected default max_iterations, got %d", cfg.Planner.MaxIterations)
	}
}

func TestToRateLimitsFallsBackToDefaultsWhenEmpty(t *testing.T) {
	limits := toRateLimits(nil)
	if len(limits) == 0 {
		t.Fatal("expected default rate limits when input is empty")
	}
}
