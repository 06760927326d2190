package safety

import "testing"

func TestPIIScannerMasksEmail(t *testing.T) {
	s := NewPIIScanner()
	out := s.Run(map[string]any{"note": "reach me at alice@example.com please"})
	if !out.sanitized {
		t.Fatal("expected email to be flagged")
	}
	if out.params["note"] == "reach me at alice@example.com please" {
		t.Error("expected email to be masked")
	}
}

func TestPIIScannerMasksSSN(t *testing.T) {
	s := NewPIIScanner()
	out := s.Run(map[string]any{"note": "ssn 123-45-6789 on file"})
	if !out.sanitized {
		t.Fatal("expected SSN to be flagged")
	}
}

func TestPIIScannerLeavesCleanTextUntouched(t *testing.T) {
	s := NewPIIScanner()
	out := s.Run(map[string]any{"note": "buy milk and eggs"})
	if out.sanitized {
		t.Fatal("expected clean text to not be flagged")
	}
	if out.params["note"] != "buy milk and eggs" {
		t.Error("expected clean text to be unchanged")
	}
}

func TestPIIScannerIsIdempotent(t *testing.T) {
	s := NewPIIScanner()
	first := s.Run(map[string]any{"note": "call 555-123-4567"})
	second := s.Run(first.params)
	if first.params["note"] != second.params["note"] {
		t.Errorf("expected idempotent masking, got %q then %q", first.params["note"], second.params["note"])
	}
}
