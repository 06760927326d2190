package safety

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// pendingConfirmation is a single outstanding RequiresConfirmation
// grant: a token gating exactly one (user, parameter set) pair until
// it is consumed or expires. The tool is not part of the binding. Grounded on the teacher's
// ApprovalRequest/MemoryApprovalStore (internal/agent/approval.go),
// narrowed from a UI-surfaced queue to single-use token replay.
type pendingConfirmation struct {
	userID    string
	paramHash string
	expiresAt time.Time
	consumed  bool
}

// ConfirmationStore issues and redeems confirmation tokens. It is the
// one piece of mutable state the confirmation stage owns; a global
// mutex guards it since token issuance/redemption is infrequent
// relative to the rest of the pipeline (the teacher's
// MemoryApprovalStore takes the same single-lock approach).
type ConfirmationStore struct {
	mu  sync.Mutex
	ttl time.Duration
	byToken map[string]*pendingConfirmation
}

// DefaultConfirmationTTL is the spec's default confirmation token
// lifetime, matching the teacher's ApprovalPolicy.RequestTTL default.
const DefaultConfirmationTTL = 5 * time.Minute

// NewConfirmationStore constructs a ConfirmationStore. ttl<=0 defaults
// to DefaultConfirmationTTL.
func NewConfirmationStore(ttl time.Duration) *ConfirmationStore {
	if ttl <= 0 {
		ttl = DefaultConfirmationTTL
	}
	return &ConfirmationStore{ttl: ttl, byToken: make(map[string]*pendingConfirmation)}
}

// Issue creates a new token for (userID, params) and returns it.
func (s *ConfirmationStore) Issue(userID string, params map[string]any) string {
	token := uuid.NewString()
	hash := hashParams(params)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byToken[token] = &pendingConfirmation{
		userID:    userID,
		paramHash: hash,
		expiresAt: time.Now().Add(s.ttl),
	}
	return token
}

// Redeem reports whether token is a live, unconsumed grant for
// (userID, params). On success the grant is consumed — a token is
// single-use, matching the "token-gated replay" design note.
func (s *ConfirmationStore) Redeem(token, userID string, params map[string]any) bool {
	if token == "" {
		return false
	}
	hash := hashParams(params)

	s.mu.Lock()
	defer s.mu.Unlock()

	pending, ok := s.byToken[token]
	if !ok || pending.consumed {
		return false
	}
	if time.Now().After(pending.expiresAt) {
		delete(s.byToken, token)
		return false
	}
	if pending.userID != userID || pending.paramHash != hash {
		return false
	}

	pending.consumed = true
	delete(s.byToken, token)
	return true
}

// hashParams produces a stable digest of a parameter map so a
// confirmation token can be bound to the exact call it was issued
// for. Map keys are sorted before encoding so the hash is independent
// of Go's randomized map iteration order.
func hashParams(params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ordered := make([]keyValue, 0, len(keys))
	for _, k := range keys {
		ordered = append(ordered, keyValue{Key: k, Value: params[k]})
	}

	encoded, err := json.Marshal(ordered)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:])
}

type keyValue struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}
