// Package catalog implements the Tool Catalog & Selector: the closed
// registry of tools the planner may invoke, the intent->tool candidate
// hints used for prompt assembly, and case-insensitive action-name
// resolution.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/devwithmohit/aetheros-reasoncore/pkg/planmodel"
)

// entry pairs a catalog ToolSpec with its compiled JSON schema, built
// once at construction per the teacher's internal/gateway/ws_schema.go
// pattern (compile-once, validate-many via jsonschema.CompileString).
type entry struct {
	spec   planmodel.ToolSpec
	schema *jsonschema.Schema
}

// Catalog is the static, read-only-after-construction tool registry.
type Catalog struct {
	entries    map[planmodel.ToolType]entry
	candidates map[string][]planmodel.ToolType
}

// New builds a Catalog from the full tool specification table and the
// static intent->candidate-tool hints. It compiles every tool's JSON
// schema up front; a malformed schema is a programmer error and panics
// at construction, matching the teacher's sync.Once-guarded
// init-time-only failure mode in ws_schema.go (compile errors there are
// also only possible from a hand-authored schema string, never from
// runtime input).
func New() *Catalog {
	c := &Catalog{
		entries:    make(map[planmodel.ToolType]entry, len(defaultToolSpecs)),
		candidates: cloneCandidates(defaultCandidates),
	}

	for _, spec := range defaultToolSpecs {
		schema, err := jsonschema.CompileString(string(spec.Type)+"_params", buildSchemaDoc(spec.Parameters))
		if err != nil {
			panic(fmt.Sprintf("catalog: invalid schema for %s: %v", spec.Type, err))
		}
		c.entries[spec.Type] = entry{spec: spec, schema: schema}
	}

	return c
}

func cloneCandidates(src map[string][]planmodel.ToolType) map[string][]planmodel.ToolType {
	dst := make(map[string][]planmodel.ToolType, len(src))
	for k, v := range src {
		cp := make([]planmodel.ToolType, len(v))
		copy(cp, v)
		dst[k] = cp
	}
	return dst
}

// Candidates returns the ordered hint list of tool types associated
// with an intent name, or nil if the intent is unknown. This list is
// used only for prompt hinting — the planner is never restricted to
// it.
func (c *Catalog) Candidates(intentName string) []planmodel.ToolType {
	return c.candidates[strings.ToLower(strings.TrimSpace(intentName))]
}

// ErrUnknownTool is returned by Lookup when the action name does not
// case-insensitively match any registered ToolType.
var ErrUnknownTool = fmt.Errorf("catalog: unknown tool")

// Lookup resolves an action name emitted by the LLM to a known
// ToolType. Matching is case-insensitive and exact (no fuzzy
// resolution): a hallucinated tool name must be rejected so the
// planner's loop can learn from the Observation rather than silently
// mapping to the wrong tool.
func (c *Catalog) Lookup(actionName string) (planmodel.ToolType, error) {
	normalized := strings.ToUpper(strings.TrimSpace(actionName))
	for t := range c.entries {
		if string(t) == normalized {
			return t, nil
		}
	}
	return planmodel.ToolUnknown, ErrUnknownTool
}

// Spec returns the registered ToolSpec for a ToolType, and whether it
// was found.
func (c *Catalog) Spec(tool planmodel.ToolType) (planmodel.ToolSpec, bool) {
	e, ok := c.entries[tool]
	return e.spec, ok
}

// Manifest renders the tool manifest block of the prompt: one
// name/description line per tool, in a stable (sorted) order so the
// prompt is deterministic across calls for identical catalog state.
func (c *Catalog) Manifest() string {
	names := make([]string, 0, len(c.entries))
	for t := range c.entries {
		names = append(names, string(t))
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		e := c.entries[planmodel.ToolType(name)]
		fmt.Fprintf(&b, "%s: %s\n", name, e.spec.Description)
	}
	return b.String()
}

// validateSchema runs the compiled JSON schema for tool against params.
// A nil schema (unknown tool) validates successfully — the caller is
// expected to have already rejected unknown tools via Lookup.
func (c *Catalog) validateSchema(tool planmodel.ToolType, params map[string]any) error {
	e, ok := c.entries[tool]
	if !ok || e.schema == nil {
		return nil
	}
	return e.schema.Validate(params)
}

func buildSchemaDoc(params []planmodel.ParamSpec) string {
	var props strings.Builder
	var required []string

	props.WriteString("{")
	for i, p := range params {
		if i > 0 {
			props.WriteString(",")
		}
		jsonType := jsonSchemaType(p.Type)
		fmt.Fprintf(&props, "%q:{\"type\":%q}", p.Name, jsonType)
		if p.Required {
			required = append(required, fmt.Sprintf("%q", p.Name))
		}
	}
	props.WriteString("}")

	var doc strings.Builder
	doc.WriteString(`{"type":"object","properties":`)
	doc.WriteString(props.String())
	if len(required) > 0 {
		doc.WriteString(`,"required":[`)
		doc.WriteString(strings.Join(required, ","))
		doc.WriteString(`]`)
	}
	doc.WriteString("}")
	return doc.String()
}

func jsonSchemaType(t planmodel.ParamType) string {
	switch t {
	case planmodel.ParamString:
		return "string"
	case planmodel.ParamNumber:
		return "number"
	case planmodel.ParamBool:
		return "boolean"
	case planmodel.ParamObject:
		return "object"
	case planmodel.ParamArray:
		return "array"
	default:
		return "string"
	}
}
