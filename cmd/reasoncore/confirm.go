package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// buildConfirmCmd issues a confirmation token for a pending high-risk
// or explicitly confirmation-gated tool call, mirroring the
// operator-approval shape of the teacher's pairing commands
// (cmd/nexus/commands_pairing.go's approve/deny pair) narrowed to a
// single issue step since the core has no separate deny state — a
// step that is never confirmed simply expires (safety.ConfirmationTTL).
func buildConfirmCmd() *cobra.Command {
	var (
		cfgPath    string
		provider   string
		userID     string
		paramsJSON string
	)

	cmd := &cobra.Command{
		Use:   "confirm",
		Short: "Issue a confirmation token for a pending tool call's parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			var params map[string]any
			if err := json.Unmarshal([]byte(paramsJSON), &params); err != nil {
				return fmt.Errorf("--params must be a JSON object: %w", err)
			}

			rt, err := buildRuntime(cfgPath, provider)
			if err != nil {
				return err
			}

			token := rt.validator.ConfirmationStore().Issue(userID, params)
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "path to a reasoncore YAML config (defaults applied if empty)")
	cmd.Flags().StringVar(&provider, "provider", "anthropic", "LLM provider: anthropic or openai")
	cmd.Flags().StringVar(&userID, "user", "", "user id the confirmation belongs to (required)")
	cmd.Flags().StringVar(&paramsJSON, "params", "{}", "the exact tool parameters, as JSON, that the token must bind to")
	cobra.CheckErr(cmd.MarkFlagRequired("user"))

	return cmd
}
