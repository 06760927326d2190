package planner

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes the planner's observability surface via
// prometheus/client_golang, matching the teacher's own choice of
// observability dependency (internal/agent instruments tool execution
// counts the same way). All metrics are registered under a
// "reactcore_" prefix so the core can be scraped independently of the
// host process.
type Metrics struct {
	iterations     prometheus.Histogram
	planOutcomes   *prometheus.CounterVec
	parseErrors    prometheus.Counter
	blockedSteps   prometheus.Counter
	confirmations  prometheus.Counter
}

// NewMetrics constructs and registers a Metrics set against reg. A nil
// registry is allowed — metrics are still created but not registered,
// for use in tests that don't want to touch the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		iterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "reactcore_plan_iterations",
			Help:    "Number of ReAct iterations consumed per plan call.",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		}),
		planOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reactcore_plan_outcomes_total",
			Help: "Total plan calls by terminal outcome.",
		}, []string{"outcome"}),
		parseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reactcore_parse_errors_total",
			Help: "Total LLM responses that failed to parse against the ReAct grammar.",
		}),
		blockedSteps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reactcore_blocked_steps_total",
			Help: "Total tool calls blocked by the safety validator.",
		}),
		confirmations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reactcore_confirmations_required_total",
			Help: "Total tool calls that required explicit confirmation.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.iterations, m.planOutcomes, m.parseErrors, m.blockedSteps, m.confirmations)
	}
	return m
}

func (m *Metrics) observeIterations(n int) {
	if m == nil {
		return
	}
	m.iterations.Observe(float64(n))
}

func (m *Metrics) recordOutcome(outcome string) {
	if m == nil {
		return
	}
	m.planOutcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) recordParseError() {
	if m == nil {
		return
	}
	m.parseErrors.Inc()
}

func (m *Metrics) recordBlockedStep() {
	if m == nil {
		return
	}
	m.blockedSteps.Inc()
}

func (m *Metrics) recordConfirmation() {
	if m == nil {
		return
	}
	m.confirmations.Inc()
}
