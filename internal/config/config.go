// Package config loads the reasoning core's configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/devwithmohit/aetheros-reasoncore/pkg/planmodel"
)

// PlannerConfig configures the ReAct planner's iteration budget and LLM
// sampling parameters.
type PlannerConfig struct {
	MaxIterations int `yaml:"max_iterations"`

	LLM LLMConfig `yaml:"llm"`
}

// LLMConfig configures the LLM adapter.
type LLMConfig struct {
	Temperature         float64 `yaml:"temperature"`
	FinalTemperature    float64 `yaml:"final_temperature"`
	MaxTokens           int     `yaml:"max_tokens"`
	ContextWindow       int     `yaml:"context_window"`
	RequestTimeoutMS    int     `yaml:"request_timeout_ms"`
}

// MemoryConfig configures the context builder's HTTP client to the
// external Memory Service.
type MemoryConfig struct {
	ServiceURL         string `yaml:"service_url"`
	PerFetchTimeoutMS  int    `yaml:"per_fetch_timeout_ms"`
	ContextDeadlineMS  int    `yaml:"context_deadline_ms"`
	PromptCharBudget   int    `yaml:"prompt_char_budget"`
}

// SafetyConfig configures the safety validator pipeline.
type SafetyConfig struct {
	RateLimits          map[string]float64 `yaml:"rate_limits"`
	Thresholds          RiskThresholds     `yaml:"thresholds"`
	AllowHTTPLocalhost  bool               `yaml:"allow_http_localhost"`
	BlockedDomains      []string           `yaml:"blocked_domains"`
	ConfirmationTTLMS   int                `yaml:"confirmation_ttl_ms"`
	AbuseLimitPerMinute float64            `yaml:"abuse_limit_per_minute"`
}

// RiskThresholds is the yaml-decodable form of planmodel.RiskThresholds.
type RiskThresholds struct {
	Medium   float64 `yaml:"medium"`
	High     float64 `yaml:"high"`
	Critical float64 `yaml:"critical"`
}

// ToPlanModel converts to the planmodel form consumed by the risk
// scorer.
func (t RiskThresholds) ToPlanModel() planmodel.RiskThresholds {
	return planmodel.RiskThresholds{Medium: t.Medium, High: t.High, Critical: t.Critical}
}

// Config is the top-level configuration for the reasoning core.
type Config struct {
	Planner PlannerConfig `yaml:"planner"`
	Memory  MemoryConfig  `yaml:"memory"`
	Safety  SafetyConfig  `yaml:"safety"`
}

// Default returns the configuration with every default from spec §6
// applied.
func Default() *Config {
	return &Config{
		Planner: PlannerConfig{
			MaxIterations: 10,
			LLM: LLMConfig{
				Temperature:      0.7,
				FinalTemperature: 0.2,
				MaxTokens:        512,
				ContextWindow:    4096,
				RequestTimeoutMS: 30000,
			},
		},
		Memory: MemoryConfig{
			ServiceURL:        "http://localhost:8090",
			PerFetchTimeoutMS: 2000,
			ContextDeadlineMS: 3000,
			PromptCharBudget:  1500,
		},
		Safety: SafetyConfig{
			RateLimits: map[string]float64{
				"LOW":      60,
				"MEDIUM":   30,
				"HIGH":     10,
				"CRITICAL": 1,
			},
			Thresholds: RiskThresholds{
				Medium:   0.25,
				High:     0.50,
				Critical: 0.75,
			},
			AllowHTTPLocalhost:  true,
			BlockedDomains:      nil,
			ConfirmationTTLMS:   5 * 60 * 1000,
			AbuseLimitPerMinute: 5,
		},
	}
}

// Load reads and strictly decodes a YAML config file on top of the
// defaults. Unknown fields are rejected, following the teacher's
// internal/config/loader.go use of yaml.Decoder.KnownFields(true) — the
// $include/JSON5 preprocessing that loader performs is not replicated
// here; see DESIGN.md.
func Load(path string) (*Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that the configuration is self-consistent.
func (c *Config) Validate() error {
	if c.Planner.MaxIterations <= 0 {
		return fmt.Errorf("planner.max_iterations must be positive")
	}
	if c.Memory.ServiceURL == "" {
		return fmt.Errorf("memory.service_url must be set")
	}
	if c.Memory.PerFetchTimeoutMS <= 0 || c.Memory.ContextDeadlineMS <= 0 {
		return fmt.Errorf("memory timeouts must be positive")
	}
	for level, rpm := range c.Safety.RateLimits {
		if rpm < 0 {
			return fmt.Errorf("safety.rate_limits[%s] must be non-negative", level)
		}
	}
	return nil
}

// PerFetchTimeout returns the configured per-fetch timeout as a
// time.Duration.
func (c *MemoryConfig) PerFetchTimeout() time.Duration {
	return time.Duration(c.PerFetchTimeoutMS) * time.Millisecond
}

// ContextDeadline returns the configured whole-context-build deadline.
func (c *MemoryConfig) ContextDeadline() time.Duration {
	return time.Duration(c.ContextDeadlineMS) * time.Millisecond
}

// RequestTimeout returns the configured per-LLM-call timeout.
func (c *LLMConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// ConfirmationTTL returns the configured confirmation-token lifetime.
func (c *SafetyConfig) ConfirmationTTL() time.Duration {
	return time.Duration(c.ConfirmationTTLMS) * time.Millisecond
}
