package catalog

import (
	"fmt"
	"strconv"

	"github.com/devwithmohit/aetheros-reasoncore/pkg/planmodel"
)

// MissingParametersError is returned by ExtractParameters when one or
// more of a tool's required parameters could not be resolved from
// either the LLM's action_input or the intent's extracted entities.
// The planner converts this into an Observation rather than aborting
// the plan (spec §4.2 edge case).
type MissingParametersError struct {
	Tool    planmodel.ToolType
	Missing []string
}

func (e *MissingParametersError) Error() string {
	return fmt.Sprintf("catalog: tool %s missing required parameters: %v", e.Tool, e.Missing)
}

// ExtractParameters builds the final parameter map for a tool call: it
// starts from actionInput, falls back to same-named entity values for
// any required parameter actionInput didn't supply, drops any field
// the schema doesn't declare, and coerces values to the declared
// ParamType. Returns *MissingParametersError if a required parameter is
// still absent after the entities fallback.
func (c *Catalog) ExtractParameters(tool planmodel.ToolType, entities map[string]any, actionInput map[string]any) (map[string]any, error) {
	spec, ok := c.Spec(tool)
	if !ok {
		return nil, fmt.Errorf("catalog: unknown tool %s", tool)
	}

	result := make(map[string]any, len(spec.Parameters))
	var missing []string

	for _, p := range spec.Parameters {
		raw, present := actionInput[p.Name]
		if !present && p.Required {
			raw, present = entities[p.Name]
		}
		if !present {
			if p.Required {
				missing = append(missing, p.Name)
			}
			continue
		}

		coerced, err := coerce(raw, p.Type)
		if err != nil {
			if p.Required {
				missing = append(missing, p.Name)
			}
			continue
		}
		result[p.Name] = coerced
	}

	if len(missing) > 0 {
		return nil, &MissingParametersError{Tool: tool, Missing: missing}
	}

	if err := c.validateSchema(tool, result); err != nil {
		return nil, fmt.Errorf("catalog: %s parameters failed schema validation: %w", tool, err)
	}

	return result, nil
}

// coerce converts a decoded-JSON value (string, float64, bool, map,
// slice, or nil from encoding/json) to the tool's declared ParamType.
// String-to-number, number-to-string, string-to-bool and bool-to-string
// conversions are attempted since entities and action_input commonly
// disagree on representation; any other mismatch is an error.
func coerce(v any, want planmodel.ParamType) (any, error) {
	switch want {
	case planmodel.ParamString:
		switch t := v.(type) {
		case string:
			return t, nil
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64), nil
		case bool:
			return strconv.FormatBool(t), nil
		default:
			return nil, fmt.Errorf("cannot coerce %T to string", v)
		}
	case planmodel.ParamNumber:
		switch t := v.(type) {
		case float64:
			return t, nil
		case string:
			f, err := strconv.ParseFloat(t, 64)
			if err != nil {
				return nil, fmt.Errorf("cannot coerce %q to number", t)
			}
			return f, nil
		default:
			return nil, fmt.Errorf("cannot coerce %T to number", v)
		}
	case planmodel.ParamBool:
		switch t := v.(type) {
		case bool:
			return t, nil
		case string:
			b, err := strconv.ParseBool(t)
			if err != nil {
				return nil, fmt.Errorf("cannot coerce %q to bool", t)
			}
			return b, nil
		default:
			return nil, fmt.Errorf("cannot coerce %T to bool", v)
		}
	case planmodel.ParamObject:
		if m, ok := v.(map[string]any); ok {
			return m, nil
		}
		return nil, fmt.Errorf("cannot coerce %T to object", v)
	case planmodel.ParamArray:
		if a, ok := v.([]any); ok {
			return a, nil
		}
		return nil, fmt.Errorf("cannot coerce %T to array", v)
	default:
		return v, nil
	}
}
