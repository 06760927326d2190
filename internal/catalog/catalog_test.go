package catalog

import (
	"testing"

	"github.com/devwithmohit/aetheros-reasoncore/pkg/planmodel"
)

func TestLookupCaseInsensitiveExact(t *testing.T) {
	c := New()

	tool, err := c.Lookup("get_weather")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if tool != planmodel.ToolGetWeather {
		t.Errorf("got %s, want %s", tool, planmodel.ToolGetWeather)
	}

	tool, err = c.Lookup("GeT_WeAtHeR")
	if err != nil || tool != planmodel.ToolGetWeather {
		t.Errorf("mixed-case lookup failed: tool=%s err=%v", tool, err)
	}
}

func TestLookupUnknownTool(t *testing.T) {
	c := New()
	if _, err := c.Lookup("MAKE_COFFEE"); err != ErrUnknownTool {
		t.Errorf("expected ErrUnknownTool, got %v", err)
	}
}

func TestCandidatesUnknownIntentEmpty(t *testing.T) {
	c := New()
	if got := c.Candidates("no_such_intent"); got != nil {
		t.Errorf("expected nil candidates, got %v", got)
	}
}

func TestCandidatesKnownIntent(t *testing.T) {
	c := New()
	got := c.Candidates("get_weather")
	if len(got) != 1 || got[0] != planmodel.ToolGetWeather {
		t.Errorf("got %v", got)
	}
}

func TestExtractParametersFromActionInput(t *testing.T) {
	c := New()
	params, err := c.ExtractParameters(planmodel.ToolGetWeather, nil, map[string]any{"location": "Paris"})
	if err != nil {
		t.Fatalf("ExtractParameters: %v", err)
	}
	if params["location"] != "Paris" {
		t.Errorf("got %v", params)
	}
}

func TestExtractParametersFallsBackToEntities(t *testing.T) {
	c := New()
	params, err := c.ExtractParameters(
		planmodel.ToolGetWeather,
		map[string]any{"location": "Paris"},
		map[string]any{},
	)
	if err != nil {
		t.Fatalf("ExtractParameters: %v", err)
	}
	if params["location"] != "Paris" {
		t.Errorf("got %v", params)
	}
}

func TestExtractParametersDropsUnknownFields(t *testing.T) {
	c := New()
	params, err := c.ExtractParameters(
		planmodel.ToolGetWeather,
		nil,
		map[string]any{"location": "Paris", "unused_field": "xyz"},
	)
	if err != nil {
		t.Fatalf("ExtractParameters: %v", err)
	}
	if _, present := params["unused_field"]; present {
		t.Errorf("unknown field leaked into params: %v", params)
	}
}

func TestExtractParametersMissingRequired(t *testing.T) {
	c := New()
	_, err := c.ExtractParameters(planmodel.ToolGetWeather, nil, map[string]any{})
	var missingErr *MissingParametersError
	if err == nil {
		t.Fatal("expected MissingParametersError, got nil")
	}
	if !asMissingParams(err, &missingErr) {
		t.Fatalf("expected *MissingParametersError, got %T: %v", err, err)
	}
	if len(missingErr.Missing) != 1 || missingErr.Missing[0] != "location" {
		t.Errorf("got missing=%v", missingErr.Missing)
	}
}

func asMissingParams(err error, target **MissingParametersError) bool {
	if m, ok := err.(*MissingParametersError); ok {
		*target = m
		return true
	}
	return false
}

func TestExtractParametersCoercesNumberFromString(t *testing.T) {
	c := New()
	params, err := c.ExtractParameters(planmodel.ToolSetTimer, nil, map[string]any{"duration_seconds": "90"})
	if err != nil {
		t.Fatalf("ExtractParameters: %v", err)
	}
	if params["duration_seconds"] != float64(90) {
		t.Errorf("got %v (%T)", params["duration_seconds"], params["duration_seconds"])
	}
}

func TestManifestListsEveryTool(t *testing.T) {
	c := New()
	manifest := c.Manifest()
	if len(manifest) == 0 {
		t.Fatal("expected non-empty manifest")
	}
	for _, spec := range defaultToolSpecs {
		if !containsLine(manifest, string(spec.Type)) {
			t.Errorf("manifest missing tool %s", spec.Type)
		}
	}
}

func containsLine(haystack, needle string) bool {
	return len(haystack) >= len(needle) && (func() bool {
		for i := 0; i+len(needle) <= len(haystack); i++ {
			if haystack[i:i+len(needle)] == needle {
				return true
			}
		}
		return false
	})()
}
