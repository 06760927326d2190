package planner

import "testing"

func TestParseResponseFinalAnswer(t *testing.T) {
	text := "Thought: I know the answer\nFinal Answer: It's sunny today."
	step, err := parseResponse(text)
	if err != nil {
		t.Fatalf("parseResponse: %v", err)
	}
	if !step.isFinal || step.finalAnswer != "It's sunny today." {
		t.Errorf("got %+v", step)
	}
}

func TestParseResponseAction(t *testing.T) {
	text := "Thought: need weather\nAction: GET_WEATHER\nAction Input: {\"city\": \"Boston\"}"
	step, err := parseResponse(text)
	if err != nil {
		t.Fatalf("parseResponse: %v", err)
	}
	if step.isFinal {
		t.Fatal("expected a continuing step, not final")
	}
	if step.action != "GET_WEATHER" {
		t.Errorf("expected action GET_WEATHER, got %q", step.action)
	}
	if step.actionInput["city"] != "Boston" {
		t.Errorf("got action input %v", step.actionInput)
	}
}

func TestParseResponseToleratesWhitespace(t *testing.T) {
	text := "  Thought:   need weather  \n  Action:   GET_WEATHER  \n  Action Input:   {\"city\": \"Boston\"}  "
	step, err := parseResponse(text)
	if err != nil {
		t.Fatalf("parseResponse: %v", err)
	}
	if step.action != "GET_WEATHER" {
		t.Errorf("expected trimmed action, got %q", step.action)
	}
}

func TestParseResponseMalformedJSON(t *testing.T) {
	text := "Thought: need weather\nAction: GET_WEATHER\nAction Input: {not json}"
	if _, err := parseResponse(text); err == nil {
		t.Fatal("expected parse error for malformed JSON")
	}
}

func TestParseResponseMissingBoth(t *testing.T) {
	text := "Thought: thinking about it"
	if _, err := parseResponse(text); err == nil {
		t.Fatal("expected parse error when neither Action nor Final Answer is present")
	}
}

func TestParseResponseEmptyString(t *testing.T) {
	if _, err := parseResponse(""); err == nil {
		t.Fatal("expected parse error for empty response")
	}
}

func TestParseResponseEmptyFinalAnswer(t *testing.T) {
	text := "Thought: done\nFinal Answer:"
	if _, err := parseResponse(text); err == nil {
		t.Fatal("expected parse error for empty Final Answer")
	}
}

func TestParseResponseCaseInsensitivePrefixes(t *testing.T) {
	text := "thought: need weather\naction: GET_WEATHER\naction input: {\"city\": \"Boston\"}"
	step, err := parseResponse(text)
	if err != nil {
		t.Fatalf("parseResponse: %v", err)
	}
	if step.action != "GET_WEATHER" {
		t.Errorf("got %q", step.action)
	}
}
