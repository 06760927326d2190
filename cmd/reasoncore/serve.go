package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/devwithmohit/aetheros-reasoncore/pkg/planmodel"
)

// buildServeCmd starts a long-running HTTP server around one runtime,
// following internal/gateway/http_server.go's startHTTPServer shape:
// a single *http.Server behind net.Listen plus signal-driven graceful
// shutdown, narrowed to the endpoints this core exposes. Running
// as a long-lived process (rather than one `plan` invocation per
// process) is what lets a confirmation token issued for one request be
// redeemed by a later one — the ConfirmationStore lives in-process.
func buildServeCmd() *cobra.Command {
	var (
		cfgPath  string
		provider string
		addr     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reasoning core as an HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(cfgPath, provider)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), rt, addr)
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "path to a reasoncore YAML config (defaults applied if empty)")
	cmd.Flags().StringVar(&provider, "provider", "anthropic", "LLM provider: anthropic or openai")
	cmd.Flags().StringVar(&addr, "addr", ":8091", "address to listen on")
	return cmd
}

func runServe(ctx context.Context, rt *runtime, addr string) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", handleHealthz)
	mux.HandleFunc("/plan", handlePlan(rt))
	mux.HandleFunc("/ratelimit", handleRateLimit(rt))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			rt.logger.Error("http server error", "error", err)
		}
	}()
	rt.logger.Info("reasoncore listening", "addr", addr)

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// planRequest is the wire shape of a POST /plan body.
type planRequest struct {
	UserID            string         `json:"user_id"`
	IntentName        string         `json:"intent_name"`
	Entities          map[string]any `json:"entities"`
	RawQuery          string         `json:"raw_query"`
	ConfirmationToken string         `json:"confirmation_token"`
}

// handleRateLimit reports a user's remaining rate-limit budget for a
// RiskLevel, and clears it with ?reset=1 — an operator escape hatch
// for a user wrongly caught by the sustained burst cap.
func handleRateLimit(rt *runtime) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user")
		level := planmodel.RiskLevel(r.URL.Query().Get("level"))
		if userID == "" || level == "" {
			http.Error(w, "user and level query parameters are required", http.StatusBadRequest)
			return
		}

		limiter := rt.validator.RateLimiter()
		if r.URL.Query().Get("reset") == "1" {
			limiter.Reset(userID, level)
		}

		status, ok := limiter.Status(userID, level)
		if !ok {
			http.Error(w, fmt.Sprintf("no rate limit configured for level %q", level), http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(status)
	}
}

func handlePlan(rt *runtime) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req planRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
			return
		}

		envelope := planmodel.IntentEnvelope{
			UserID:            req.UserID,
			IntentName:        req.IntentName,
			Entities:          req.Entities,
			RawQuery:          req.RawQuery,
			ConfirmationToken: req.ConfirmationToken,
		}

		ctx := r.Context()
		memCtx := rt.builder.Build(ctx, req.UserID, req.IntentName, req.Entities, req.RawQuery)

		plan, err := rt.planner.Plan(ctx, envelope, memCtx)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(plan)
	}
}
