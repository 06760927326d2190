// Package safety implements the Safety Validator pipeline (spec §4.5):
// six ordered stages gating every tool call the planner emits, plus the
// per-user audit log and rate-limit state that are the core's only
// piece of process-wide mutable state.
package safety

import (
	"fmt"
	"time"

	"github.com/devwithmohit/aetheros-reasoncore/pkg/planmodel"
)

// Config configures a Validator.
type Config struct {
	BlockedTools       map[planmodel.ToolType]string
	AllowHTTPLocalhost bool
	BlockedDomains     []string
	Thresholds         planmodel.RiskThresholds
	RateLimits         RateLimits
	AbuseLimitPerMinute float64
	ConfirmationTTL    time.Duration
}

// Validator runs the six-stage pipeline in order, short-circuiting on
// the first Blocked outcome.
type Validator struct {
	whitelist   *Whitelist
	sanitizer   *Sanitizer
	pii         *PIIScanner
	risk        *RiskScorer
	rateLimiter *RateLimiter
	confirm     *ConfirmationStore
	audit       *AuditLog
}

// NewValidator constructs a Validator from Config.
func NewValidator(cfg Config) *Validator {
	return &Validator{
		whitelist: NewWhitelist(cfg.BlockedTools),
		sanitizer: NewSanitizer(SanitizerConfig{
			AllowHTTPLocalhost: cfg.AllowHTTPLocalhost,
			BlockedDomains:     cfg.BlockedDomains,
		}),
		pii:         NewPIIScanner(),
		risk:        NewRiskScorer(cfg.Thresholds),
		rateLimiter: NewRateLimiter(cfg.RateLimits, cfg.AbuseLimitPerMinute),
		confirm:     NewConfirmationStore(cfg.ConfirmationTTL),
		audit:       NewAuditLog(),
	}
}

// AuditLog exposes the underlying audit log for get_user_stats
// callers.
func (v *Validator) AuditLog() *AuditLog { return v.audit }

// ConfirmationStore exposes the confirmation token store so a caller
// can issue/redeem tokens out of band if needed (e.g. tests).
func (v *Validator) ConfirmationStore() *ConfirmationStore { return v.confirm }

// RateLimiter exposes the rate limiter for operator diagnostics (e.g.
// a GET /ratelimit endpoint reporting a user's remaining budget).
func (v *Validator) RateLimiter() *RateLimiter { return v.rateLimiter }

// Validate runs the full pipeline for one tool call. confirmationToken
// is the value carried on the IntentEnvelope, checked only when the
// call would otherwise land on RequiresConfirmation.
func (v *Validator) Validate(userID string, spec planmodel.ToolSpec, params map[string]any, confirmationToken string) planmodel.ValidationResult {
	userID = normalizeUserID(userID)

	// Stage 1: whitelist/blacklist.
	if reason, blocked := v.whitelist.Check(spec.Type); blocked {
		return v.finishBlocked(userID, spec.Type, reason, spec, nil)
	}

	// Stage 2: parameter sanitization.
	sanOutcome := v.sanitizer.Run(spec.Type, params)
	if sanOutcome.blocked {
		return v.finishBlocked(userID, spec.Type, sanOutcome.blockMsg, spec, sanOutcome.warnings)
	}
	workingParams := sanOutcome.params

	// Stage 3: PII scan.
	piiOutcome := v.pii.Run(workingParams)
	workingParams = piiOutcome.params

	// Stage 4: risk scoring. The context signal folds in how many
	// recent Blocked outcomes this user has accumulated, so repeated
	// abuse pushes later calls toward higher risk tiers even if the
	// tool itself is low-risk.
	sanPiiWarnings := allWarnings(sanOutcome.warnings, piiOutcome.warnings)
	risk := v.risk.Score(spec, sanPiiWarnings, nil, v.contextSignalFor(userID))

	// Stage 5: rate limiting. Only reached for calls that would
	// otherwise be Approved/Sanitized/RequiresConfirmation; Blocked
	// calls never consume quota (spec §5).
	if !v.rateLimiter.Allow(userID, risk.Level) {
		return v.finishBlocked(userID, spec.Type, "RateLimited", spec, sanPiiWarnings)
	}

	// Stage 6: confirmation policy.
	requiresConfirmation := risk.Level == planmodel.RiskHigh || risk.Level == planmodel.RiskCritical || spec.RequiresConfirmation
	if requiresConfirmation {
		if v.confirm.Redeem(confirmationToken, userID, workingParams) {
			result := planmodel.ValidationResult{
				Kind:       kindFor(sanOutcome.sanitized || piiOutcome.sanitized),
				Parameters: workingParams,
				Warnings:   allWarnings(sanOutcome.warnings, piiOutcome.warnings),
				Risk:       risk,
			}
			v.audit.Record(userID, AuditEntry{Tool: spec.Type, Kind: result.Kind, Timestamp: time.Now()})
			return result
		}

		token := v.confirm.Issue(userID, workingParams)
		result := planmodel.ValidationResult{
			Kind:       planmodel.ValidationRequiresConfirmation,
			Parameters: workingParams,
			Message:    fmt.Sprintf("Confirm %s with token %s to proceed", spec.Type, token),
			Warnings:   allWarnings(sanOutcome.warnings, piiOutcome.warnings),
			Risk:       risk,
		}
		v.audit.Record(userID, AuditEntry{Tool: spec.Type, Kind: result.Kind, Timestamp: time.Now()})
		return result
	}

	result := planmodel.ValidationResult{
		Kind:       kindFor(sanOutcome.sanitized || piiOutcome.sanitized),
		Parameters: workingParams,
		Warnings:   allWarnings(sanOutcome.warnings, piiOutcome.warnings),
		Risk:       risk,
	}
	v.audit.Record(userID, AuditEntry{Tool: spec.Type, Kind: result.Kind, Timestamp: time.Now()})
	return result
}

// finishBlocked records the audit entry and returns the terminal Blocked
// result, with a RiskScore computed from whatever signals are available at
// the stage that rejected the call (static BaseRisk, any sanitizer/PII
// warnings, recent-abuse context). Blocked is the pipeline's most severe
// verdict by definition, so its Level is always Critical regardless of
// where the weighted score itself lands.
func (v *Validator) finishBlocked(userID string, tool planmodel.ToolType, reason string, spec planmodel.ToolSpec, warnings []string) planmodel.ValidationResult {
	risk := v.risk.Score(spec, warnings, nil, v.contextSignalFor(userID))
	risk.Level = planmodel.RiskCritical

	v.audit.Record(userID, AuditEntry{Tool: tool, Kind: planmodel.ValidationBlocked, Reason: reason, Timestamp: time.Now()})

	if !v.rateLimiter.AllowAbuse(userID) {
		return planmodel.ValidationResult{
			Kind:   planmodel.ValidationBlocked,
			Reason: "BlockedBySafety(Abuse): repeated blocked calls exceeded the abuse window",
			Risk:   risk,
		}
	}
	return planmodel.ValidationResult{Kind: planmodel.ValidationBlocked, Reason: reason, Risk: risk}
}

// contextSignalFor folds in how many recent Blocked outcomes this user
// has accumulated, so repeated abuse pushes later calls toward higher
// risk tiers even if the tool itself is low-risk.
func (v *Validator) contextSignalFor(userID string) float64 {
	recentBlocked := v.audit.RecentBlockedCount(userID, time.Minute)
	if recentBlocked > 0 {
		return clip01Context(recentBlocked)
	}
	return 0
}

func kindFor(sanitized bool) planmodel.ValidationKind {
	if sanitized {
		return planmodel.ValidationSanitized
	}
	return planmodel.ValidationApproved
}

func allWarnings(a, b []string) []string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	for _, w := range b {
		out = appendUnique(out, w)
	}
	return out
}

// clip01Context maps a recent-blocked count onto a [0,1] context
// signal, saturating at 5 repeated blocks within the window.
func clip01Context(recentBlocked int) float64 {
	signal := float64(recentBlocked) / 5.0
	if signal > 1 {
		signal = 1
	}
	return signal
}
