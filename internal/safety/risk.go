package safety

import "github.com/devwithmohit/aetheros-reasoncore/pkg/planmodel"

// RiskScorer implements stage 4: the weighted RiskScore formula from
// spec §3, wired to the tool's static base risk, a per-parameter
// signal, and a context signal supplied by the caller (e.g. whether
// this user has had recent Blocked outcomes).
type RiskScorer struct {
	thresholds planmodel.RiskThresholds
}

// NewRiskScorer constructs a RiskScorer with the given threshold
// table.
func NewRiskScorer(thresholds planmodel.RiskThresholds) *RiskScorer {
	return &RiskScorer{thresholds: thresholds}
}

// toolSignal maps a ToolSpec's static BaseRisk into the [0,1] signal
// the weighted formula expects.
func toolSignal(level planmodel.RiskLevel) float64 {
	switch level {
	case planmodel.RiskCritical:
		return 1.0
	case planmodel.RiskHigh:
		return 0.75
	case planmodel.RiskMedium:
		return 0.4
	default:
		return 0.1
	}
}

// paramSignal returns a [0,1] signal derived from how much the
// sanitizer and PII scanner had to intervene: each warning category
// raises the signal, capped at 1.
func paramSignal(sanitizeWarnings, piiWarnings []string) float64 {
	hits := len(sanitizeWarnings) + len(piiWarnings)
	if hits == 0 {
		return 0
	}
	signal := 0.3 + 0.2*float64(hits)
	if signal > 1 {
		signal = 1
	}
	return signal
}

// Score computes the RiskScore for one tool call.
func (s *RiskScorer) Score(spec planmodel.ToolSpec, sanitizeWarnings, piiWarnings []string, contextSignal float64) planmodel.RiskScore {
	return planmodel.NewRiskScore(toolSignal(spec.BaseRisk), paramSignal(sanitizeWarnings, piiWarnings), contextSignal, s.thresholds)
}
