package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devwithmohit/aetheros-reasoncore/pkg/planmodel"
)

func buildPlanCmd() *cobra.Command {
	var (
		cfgPath  string
		provider string
		userID   string
		intent   string
		query    string
		token    string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build context for one intent and run the ReAct planner against it",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(cfgPath, provider)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			memCtx := rt.builder.Build(ctx, userID, intent, nil, query)

			envelope := planmodel.IntentEnvelope{
				UserID:            userID,
				IntentName:        intent,
				RawQuery:          query,
				ConfirmationToken: token,
			}

			plan, err := rt.planner.Plan(ctx, envelope, memCtx)
			if err != nil {
				return fmt.Errorf("plan: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(plan)
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "path to a reasoncore YAML config (defaults applied if empty)")
	cmd.Flags().StringVar(&provider, "provider", "anthropic", "LLM provider: anthropic or openai")
	cmd.Flags().StringVar(&userID, "user", "", "user id the intent belongs to (required)")
	cmd.Flags().StringVar(&intent, "intent", "", "classified intent name (required)")
	cmd.Flags().StringVar(&query, "query", "", "raw user query text (required)")
	cmd.Flags().StringVar(&token, "confirm-token", "", "confirmation token from a prior RequiresConfirmation step")
	cobra.CheckErr(cmd.MarkFlagRequired("user"))
	cobra.CheckErr(cmd.MarkFlagRequired("intent"))
	cobra.CheckErr(cmd.MarkFlagRequired("query"))

	return cmd
}
