package safety

import (
	"github.com/devwithmohit/aetheros-reasoncore/internal/ratelimit"
	"github.com/devwithmohit/aetheros-reasoncore/pkg/planmodel"
)

// levelLimiter is the AND-composition backing one RiskLevel's budget:
// a burst bucket sized to the full per-minute allowance, and a
// sustained bucket sized to a quarter of it, so a user can't bank an
// entire minute's budget and spend it in one second. Both buckets are
// keyed identically via ratelimit.CompositeKey, and MultiLimiter
// requires both to allow before a call proceeds.
type levelLimiter struct {
	multi     *ratelimit.MultiLimiter
	burst     *ratelimit.Limiter
	sustained *ratelimit.Limiter
}

// RateLimiter implements stage 5: a per-user, per-risk-level budget
// adapted from the teacher's token-bucket internal/ratelimit package.
// Each RiskLevel gets its own burst+sustained pair — so a user's
// LOW-risk budget is independent of their HIGH-risk budget — plus a
// separate abuse-counter Limiter keyed by user alone for the
// repeated-Blocked detection in spec §7.
type RateLimiter struct {
	perLevel map[planmodel.RiskLevel]levelLimiter
	abuse    *ratelimit.Limiter
}

// RateLimits maps a RiskLevel to its requests-per-minute budget.
type RateLimits map[planmodel.RiskLevel]float64

// DefaultRateLimits returns the spec default: LOW 60/min, MEDIUM
// 30/min, HIGH 10/min, CRITICAL 1/min.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		planmodel.RiskLow:      60,
		planmodel.RiskMedium:   30,
		planmodel.RiskHigh:     10,
		planmodel.RiskCritical: 1,
	}
}

// AbuseLimitPerMinute is the default abuse-counter budget: 5
// repeated-Blocked outcomes per user per minute. Once it is spent,
// further Blocked outcomes for that user carry the
// BlockedBySafety(Abuse) reason; tool calls that pass the other
// stages are not blocked by it, and plans are not short-circuited.
const AbuseLimitPerMinute = 5

// NewRateLimiter constructs a RateLimiter. limits defaults to
// DefaultRateLimits when nil; abuseLimitPerMinute<=0 defaults to
// AbuseLimitPerMinute.
func NewRateLimiter(limits RateLimits, abuseLimitPerMinute float64) *RateLimiter {
	if limits == nil {
		limits = DefaultRateLimits()
	}
	if abuseLimitPerMinute <= 0 {
		abuseLimitPerMinute = AbuseLimitPerMinute
	}

	perLevel := make(map[planmodel.RiskLevel]levelLimiter, len(limits))
	for level, perMinute := range limits {
		burst := ratelimit.NewLimiter(burstConfig(perMinute))
		sustained := ratelimit.NewLimiter(sustainedConfig(perMinute))
		perLevel[level] = levelLimiter{
			multi:     ratelimit.NewMultiLimiter(burst, sustained),
			burst:     burst,
			sustained: sustained,
		}
	}
	return &RateLimiter{
		perLevel: perLevel,
		abuse:    ratelimit.NewLimiter(burstConfig(abuseLimitPerMinute)),
	}
}

func burstConfig(perMinute float64) ratelimit.Config {
	if perMinute <= 0 {
		perMinute = 1
	}
	return ratelimit.Config{
		RequestsPerSecond: perMinute / 60.0,
		BurstSize:         int(perMinute),
		Enabled:           true,
	}
}

// sustainedConfig caps how much of the per-minute budget a user may
// bank as burst: a quarter of the full allowance, refilling at the
// same rate as the burst bucket.
func sustainedConfig(perMinute float64) ratelimit.Config {
	if perMinute <= 0 {
		perMinute = 1
	}
	burst := int(perMinute / 4)
	if burst < 1 {
		burst = 1
	}
	return ratelimit.Config{
		RequestsPerSecond: perMinute / 60.0,
		BurstSize:         burst,
		Enabled:           true,
	}
}

// Allow consumes one unit of the user's budget for level. Per spec §5,
// this is only called for outcomes that will become
// Approved/Sanitized/RequiresConfirmation — a Blocked call never
// reaches here.
func (r *RateLimiter) Allow(userID string, level planmodel.RiskLevel) bool {
	ll, ok := r.perLevel[level]
	if !ok {
		return true
	}
	return ll.multi.Allow(ratelimit.CompositeKey(userID, string(level)))
}

// AllowAbuse consumes one unit of the per-user abuse-counter budget.
// Called once per Blocked outcome.
func (r *RateLimiter) AllowAbuse(userID string) bool {
	return r.abuse.Allow(ratelimit.CompositeKey(userID, "abuse"))
}

// LevelStatus reports the burst and sustained bucket status for a
// user's RiskLevel budget, for operator diagnostics.
type LevelStatus struct {
	Burst     ratelimit.Status `json:"burst"`
	Sustained ratelimit.Status `json:"sustained"`
}

// Status returns the current burst/sustained status for userID at
// level, or ok=false if level has no configured budget.
func (r *RateLimiter) Status(userID string, level planmodel.RiskLevel) (status LevelStatus, ok bool) {
	ll, ok := r.perLevel[level]
	if !ok {
		return LevelStatus{}, false
	}
	key := ratelimit.CompositeKey(userID, string(level))
	return LevelStatus{Burst: ll.burst.GetStatus(key), Sustained: ll.sustained.GetStatus(key)}, true
}

// Reset clears userID's budget for level, e.g. after an operator
// manually lifts a throttle.
func (r *RateLimiter) Reset(userID string, level planmodel.RiskLevel) {
	ll, ok := r.perLevel[level]
	if !ok {
		return
	}
	key := ratelimit.CompositeKey(userID, string(level))
	ll.burst.Reset(key)
	ll.sustained.Reset(key)
}
