package safety

import (
	"strings"
	"sync"
	"time"

	"github.com/devwithmohit/aetheros-reasoncore/pkg/planmodel"
)

// AuditEntry is one recorded safety-pipeline outcome, used by
// get_user_stats.
type AuditEntry struct {
	Tool      planmodel.ToolType
	Kind      planmodel.ValidationKind
	Reason    string
	Timestamp time.Time
}

// auditRingSize is the bounded capacity per user (spec §4.5).
const auditRingSize = 1024

// userLog is one user's bounded ring buffer plus its dedicated lock.
// Grounded on the teacher's sessionLock/lockSession pattern
// (internal/agent/tool_registry.go), generalized to key by user_id
// instead of session_id and to guard a ring buffer instead of a
// critical section around tool execution.
type userLog struct {
	mu      sync.Mutex
	entries []AuditEntry
	next    int
	full    bool
}

// AuditLog is the per-user audit log: the one piece of process-wide
// mutable state in the core (spec §5). A short-lived global lock
// guards the get-or-create of each user's ring buffer; the ring
// buffer itself is then guarded independently so concurrent plan
// calls for different users never contend.
type AuditLog struct {
	globalMu sync.Mutex
	byUser   map[string]*userLog
}

// NewAuditLog constructs an empty AuditLog.
func NewAuditLog() *AuditLog {
	return &AuditLog{byUser: make(map[string]*userLog)}
}

func (a *AuditLog) logFor(userID string) *userLog {
	a.globalMu.Lock()
	defer a.globalMu.Unlock()

	log, ok := a.byUser[userID]
	if !ok {
		log = &userLog{entries: make([]AuditEntry, auditRingSize)}
		a.byUser[userID] = log
	}
	return log
}

// Record appends an entry to userID's ring buffer, overwriting the
// oldest entry once the buffer is full.
func (a *AuditLog) Record(userID string, entry AuditEntry) {
	log := a.logFor(userID)
	log.mu.Lock()
	defer log.mu.Unlock()

	log.entries[log.next] = entry
	log.next = (log.next + 1) % auditRingSize
	if log.next == 0 {
		log.full = true
	}
}

// Recent returns userID's entries in chronological order (oldest
// first), most recent auditRingSize entries.
func (a *AuditLog) Recent(userID string) []AuditEntry {
	log := a.logFor(userID)
	log.mu.Lock()
	defer log.mu.Unlock()

	if !log.full {
		out := make([]AuditEntry, log.next)
		copy(out, log.entries[:log.next])
		return out
	}

	out := make([]AuditEntry, auditRingSize)
	copy(out, log.entries[log.next:])
	copy(out[auditRingSize-log.next:], log.entries[:log.next])
	return out
}

// Stats summarizes a user's audit log for get_user_stats: total
// recorded outcomes and a count per ValidationKind.
type Stats struct {
	Total      int
	ByKind     map[planmodel.ValidationKind]int
	BlockedTop map[planmodel.ToolType]int
}

// UserStats computes Stats from userID's recent audit entries.
func (a *AuditLog) UserStats(userID string) Stats {
	entries := a.Recent(userID)
	stats := Stats{
		ByKind:     make(map[planmodel.ValidationKind]int),
		BlockedTop: make(map[planmodel.ToolType]int),
	}
	for _, e := range entries {
		stats.Total++
		stats.ByKind[e.Kind]++
		if e.Kind == planmodel.ValidationBlocked {
			stats.BlockedTop[e.Tool]++
		}
	}
	return stats
}

// RecentBlockedCount reports how many of userID's entries within
// window were Blocked — used to derive the context risk signal
// ("has this user had recent Blocked outcomes").
func (a *AuditLog) RecentBlockedCount(userID string, window time.Duration) int {
	entries := a.Recent(userID)
	cutoff := time.Now().Add(-window)
	count := 0
	for _, e := range entries {
		if e.Kind == planmodel.ValidationBlocked && e.Timestamp.After(cutoff) {
			count++
		}
	}
	return count
}

// normalizeUserID trims and lowercases a user ID for use as a map key,
// so "Alice" and "alice" share one audit log and one rate-limit
// budget.
func normalizeUserID(userID string) string {
	return strings.ToLower(strings.TrimSpace(userID))
}
