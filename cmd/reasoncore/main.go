// Command reasoncore runs the ReAct reasoning core: given an intent
// envelope it assembles context from the Memory Service, drives the
// ReAct planner against a configured LLM backend, and prints the
// resulting execution plan as JSON.
//
// Usage:
//
//	reasoncore plan --user alice --intent get_weather --query "what's the weather in Boston"
//	reasoncore confirm --user alice --params '{"to":"bob@example.com"}'
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Build information, populated by ldflags during release builds.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := buildRootCmd().Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// buildRootCmd assembles the command tree; split out from main for
// testability.
func buildRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "reasoncore",
		Short:   "ReAct reasoning core for a voice assistant",
		Version: fmt.Sprintf("%s (commit %s)", version, commit),
		Long: `reasoncore turns one classified intent into a validated execution
plan: it fans out to the Memory Service for context, drives a
Thought/Action/Observation loop against an LLM backend, and runs every
proposed tool call through the safety pipeline before returning.`,
		SilenceUsage: true,
	}

	root.AddCommand(buildPlanCmd(), buildServeCmd(), buildConfirmCmd())
	return root
}
