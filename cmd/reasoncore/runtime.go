package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/devwithmohit/aetheros-reasoncore/internal/catalog"
	"github.com/devwithmohit/aetheros-reasoncore/internal/config"
	"github.com/devwithmohit/aetheros-reasoncore/internal/llm"
	"github.com/devwithmohit/aetheros-reasoncore/internal/llm/anthropic"
	"github.com/devwithmohit/aetheros-reasoncore/internal/llm/openai"
	"github.com/devwithmohit/aetheros-reasoncore/internal/memoryclient"
	"github.com/devwithmohit/aetheros-reasoncore/internal/planner"
	"github.com/devwithmohit/aetheros-reasoncore/internal/safety"
	"github.com/devwithmohit/aetheros-reasoncore/pkg/planmodel"
)

// runtime bundles the constructed core, reused by every subcommand
// that needs to actually plan a request.
type runtime struct {
	builder   *memoryclient.Builder
	planner   *planner.Planner
	validator *safety.Validator
	logger    *slog.Logger
}

// buildRuntime wires the reasoning core from a loaded Config and a
// chosen LLM provider, following the teacher's practice of keeping
// dependency construction out of cobra RunE closures
// (cmd/nexus/main.go's buildServeCmd delegates to gateway.New rather
// than constructing inline).
func buildRuntime(cfgPath, provider string) (*runtime, error) {
	logger := slog.Default()

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, err
	}

	client, err := buildLLMClient(provider)
	if err != nil {
		return nil, err
	}

	memClient, err := memoryclient.New(memoryclient.Config{
		BaseURL: cfg.Memory.ServiceURL,
		Timeout: cfg.Memory.PerFetchTimeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("memory client: %w", err)
	}
	builder := memoryclient.NewBuilder(memClient, cfg.Memory.PerFetchTimeout(), cfg.Memory.ContextDeadline(), logger)

	validator := safety.NewValidator(safety.Config{
		Thresholds:          cfg.Safety.Thresholds.ToPlanModel(),
		RateLimits:          toRateLimits(cfg.Safety.RateLimits),
		AbuseLimitPerMinute: cfg.Safety.AbuseLimitPerMinute,
		ConfirmationTTL:     cfg.Safety.ConfirmationTTL(),
		AllowHTTPLocalhost:  cfg.Safety.AllowHTTPLocalhost,
		BlockedDomains:      cfg.Safety.BlockedDomains,
	})

	metrics := planner.NewMetrics(prometheus.DefaultRegisterer)

	p := planner.New(client, catalog.New(), validator, metrics, logger, planner.Config{
		MaxIterations:    cfg.Planner.MaxIterations,
		Temperature:      cfg.Planner.LLM.Temperature,
		FinalTemperature: cfg.Planner.LLM.FinalTemperature,
		MaxTokens:        cfg.Planner.LLM.MaxTokens,
		ContextWindow:    cfg.Planner.LLM.ContextWindow,
		LLMTimeout:       cfg.Planner.LLM.RequestTimeout(),
	})

	return &runtime{builder: builder, planner: p, validator: validator, logger: logger}, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// buildLLMClient selects an llm.Client implementation from an
// operator-chosen provider name, reading API keys from the
// environment the way the teacher's provider_types.go resolves
// credentials per channel.
func buildLLMClient(provider string) (llm.Client, error) {
	switch provider {
	case "", "anthropic":
		key := os.Getenv("ANTHROPIC_API_KEY")
		return anthropic.New(anthropic.Config{APIKey: key, Model: os.Getenv("REASONCORE_MODEL")})
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		return openai.New(openai.Config{APIKey: key, Model: os.Getenv("REASONCORE_MODEL")})
	default:
		return nil, fmt.Errorf("unknown llm provider %q (want anthropic or openai)", provider)
	}
}

func toRateLimits(in map[string]float64) safety.RateLimits {
	out := safety.RateLimits{}
	for level, rpm := range in {
		out[planmodel.RiskLevel(level)] = rpm
	}
	if len(out) == 0 {
		return safety.DefaultRateLimits()
	}
	return out
}
