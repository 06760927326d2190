package main

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/devwithmohit/aetheros-reasoncore/internal/safety"
	"github.com/devwithmohit/aetheros-reasoncore/pkg/planmodel"
)

func newTestRuntime(t *testing.T) *runtime {
	t.Helper()
	v := safety.NewValidator(safety.Config{
		Thresholds:          planmodel.DefaultRiskThresholds(),
		RateLimits:          safety.RateLimits{planmodel.RiskLow: 8},
		AbuseLimitPerMinute: 5,
		ConfirmationTTL:     time.Minute,
	})
	return &runtime{validator: v}
}

func TestHandleHealthzReportsOK(t *testing.T) {
	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	handleHealthz(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHandleRateLimitRequiresUserAndLevel(t *testing.T) {
	rt := newTestRuntime(t)
	req := httptest.NewRequest("GET", "/ratelimit", nil)
	rec := httptest.NewRecorder()
	handleRateLimit(rt)(rec, req)

	if rec.Code != 400 {
		t.Fatalf("expected 400 without user/level, got %d", rec.Code)
	}
}

func TestHandleRateLimitReportsUnknownLevel(t *testing.T) {
	rt := newTestRuntime(t)
	req := httptest.NewRequest("GET", "/ratelimit?user=alice&level=NOT_A_LEVEL", nil)
	rec := httptest.NewRecorder()
	handleRateLimit(rt)(rec, req)

	if rec.Code != 404 {
		t.Fatalf("expected 404 for an unconfigured level, got %d", rec.Code)
	}
}

func TestHandleRateLimitReportsAndResetsBudget(t *testing.T) {
	rt := newTestRuntime(t)

	for i := 0; i < 8; i++ {
		rt.validator.RateLimiter().Allow("alice", planmodel.RiskLow)
	}

	req := httptest.NewRequest("GET", "/ratelimit?user=alice&level=LOW", nil)
	rec := httptest.NewRecorder()
	handleRateLimit(rt)(rec, req)
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"sustained"`) {
		t.Errorf("expected the response to include sustained bucket status, got %s", rec.Body.String())
	}

	resetReq := httptest.NewRequest("GET", "/ratelimit?user=alice&level=LOW&reset=1", nil)
	resetRec := httptest.NewRecorder()
	handleRateLimit(rt)(resetRec, resetReq)
	if resetRec.Code != 200 {
		t.Fatalf("expected 200 after reset, got %d", resetRec.Code)
	}

	status, ok := rt.validator.RateLimiter().Status("alice", planmodel.RiskLow)
	if !ok {
		t.Fatal("expected a configured status for LOW")
	}
	if status.Burst.TokensRemaining < 1 {
		t.Errorf("expected tokens available after reset, got %.2f", status.Burst.TokensRemaining)
	}
}
