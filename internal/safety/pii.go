package safety

import (
	"regexp"
	"sort"
)

// PII detection relies on regexp rather than a third-party library: no
// example repo in the reference corpus exercises PII redaction, and the
// patterns here (credit card, SSN, email, phone) are simple enough that
// a dedicated NLP/PII-detection dependency would be unjustified scope
// for this core. See DESIGN.md.
var piiPatterns = map[string]*regexp.Regexp{
	"credit_card": regexp.MustCompile(`\b(?:\d[ -]?){13,16}\b`),
	"ssn":         regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
	"email":       regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`),
	"phone":       regexp.MustCompile(`\b(?:\+?1[ \-.]?)?\(?\d{3}\)?[ \-.]?\d{3}[ \-.]?\d{4}\b`),
}

// piiOrder fixes iteration order over piiPatterns so masking and the
// resulting warnings list are deterministic across runs, matching the
// determinism invariant in spec §8.
var piiOrder = []string{"credit_card", "ssn", "email", "phone"}

// PIIScanner implements stage 3 of the pipeline: it masks matches of
// each category in place and reports which categories fired.
type PIIScanner struct{}

// NewPIIScanner constructs a PIIScanner.
func NewPIIScanner() *PIIScanner { return &PIIScanner{} }

// piiScanOutcome is the result of scanning one parameter set.
type piiScanOutcome struct {
	sanitized bool
	warnings  []string
	params    map[string]any
}

// Run masks every PII match across all string-valued parameters,
// returning a new parameter map only when at least one match fired.
func (s *PIIScanner) Run(params map[string]any) piiScanOutcome {
	out := piiScanOutcome{params: params}
	var cloned map[string]any

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		str, ok := params[key].(string)
		if !ok {
			continue
		}
		masked := str
		hitAny := false
		for _, category := range piiOrder {
			pattern := piiPatterns[category]
			if pattern.MatchString(masked) {
				hitAny = true
				out.warnings = appendUnique(out.warnings, category)
				masked = pattern.ReplaceAllString(masked, maskFor(category))
			}
		}
		if hitAny {
			out.sanitized = true
			if cloned == nil {
				cloned = cloneParams(params)
			}
			cloned[key] = masked
		}
	}

	if cloned != nil {
		out.params = cloned
	}
	return out
}

func maskFor(category string) string {
	switch category {
	case "credit_card":
		return "[REDACTED-CC]"
	case "ssn":
		return "[REDACTED-SSN]"
	case "email":
		return "[REDACTED-EMAIL]"
	case "phone":
		return "[REDACTED-PHONE]"
	default:
		return "[REDACTED]"
	}
}
