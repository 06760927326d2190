package planner

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parsedStep is one parsed LLM response: either a continuing
// (thought, action, actionInput) triple or a terminating
// (thought, finalAnswer) pair, per the output grammar in spec §4.4.
type parsedStep struct {
	thought     string
	isFinal     bool
	finalAnswer string
	action      string
	actionInput map[string]any
}

const (
	prefixThought     = "thought:"
	prefixAction      = "action:"
	prefixActionInput = "action input:"
	prefixFinalAnswer = "final answer:"
)

// parseResponse parses one LLM response against the grammar:
//
//	Thought: <free text>
//	Action: <TOOL_NAME>
//	Action Input: <JSON object>
//
// or
//
//	Thought: <free text>
//	Final Answer: <free text>
//
// Parsing is line-oriented and tolerant of surrounding whitespace
// around each line and after the ':' separator; the ':' must follow
// the keyword directly.
func parseResponse(text string) (parsedStep, error) {
	lines := strings.Split(text, "\n")

	var thought string
	var haveThought bool
	var action string
	var actionInputRaw string
	var haveAction, haveActionInput bool
	var finalAnswer string
	var haveFinal bool

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, prefixThought):
			thought = strings.TrimSpace(line[len(prefixThought):])
			haveThought = true
		case strings.HasPrefix(lower, prefixActionInput):
			// Action Input may itself span multiple lines (a
			// multi-line JSON object); collect everything from here
			// to the end of the response.
			rest := []string{strings.TrimSpace(line[len(prefixActionInput):])}
			for j := i + 1; j < len(lines); j++ {
				rest = append(rest, lines[j])
			}
			actionInputRaw = strings.TrimSpace(strings.Join(rest, "\n"))
			haveActionInput = true
			i = len(lines)
		case strings.HasPrefix(lower, prefixAction):
			action = strings.TrimSpace(line[len(prefixAction):])
			haveAction = true
		case strings.HasPrefix(lower, prefixFinalAnswer):
			rest := []string{strings.TrimSpace(line[len(prefixFinalAnswer):])}
			for j := i + 1; j < len(lines); j++ {
				rest = append(rest, strings.TrimSpace(lines[j]))
			}
			finalAnswer = strings.TrimSpace(strings.Join(rest, "\n"))
			haveFinal = true
			i = len(lines)
		}
	}

	if !haveThought {
		return parsedStep{}, fmt.Errorf("planner: response is missing a Thought line")
	}

	if haveFinal {
		if finalAnswer == "" {
			return parsedStep{}, fmt.Errorf("planner: Final Answer is empty")
		}
		return parsedStep{thought: thought, isFinal: true, finalAnswer: finalAnswer}, nil
	}

	if !haveAction || !haveActionInput {
		return parsedStep{}, fmt.Errorf("planner: response has neither a complete Action/Action Input pair nor a Final Answer")
	}
	if action == "" {
		return parsedStep{}, fmt.Errorf("planner: Action is empty")
	}

	var input map[string]any
	if err := json.Unmarshal([]byte(actionInputRaw), &input); err != nil {
		return parsedStep{}, fmt.Errorf("planner: Action Input is not a valid JSON object: %w", err)
	}

	return parsedStep{thought: thought, action: action, actionInput: input}, nil
}
