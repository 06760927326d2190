package safety

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/devwithmohit/aetheros-reasoncore/internal/net/ssrf"
	"github.com/devwithmohit/aetheros-reasoncore/pkg/planmodel"
)

// sqlInjectionPatterns matches the SQL-injection signature set from
// spec §4.5: statement terminators, comment markers, and UNION-based
// exfiltration.
var sqlInjectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i);\s*--`),
	regexp.MustCompile(`(?i)\bDROP\b`),
	regexp.MustCompile(`(?i)\bUNION\b\s+\bSELECT\b`),
	regexp.MustCompile(`(?i);\s*DELETE\s+FROM`),
}

// shellMetacharacters are blocked in arguments to OS-class tools
// (RUN_SHELL_COMMAND, OPEN_APPLICATION, SYSTEM_CONTROL): `;`, `|`, `&`,
// backtick, `$(`, `>`, `<`.
var shellMetacharacters = regexp.MustCompile("[;|&`><]|\\$\\(")

// pathTraversalPatterns catch directory traversal and any path under
// sensitive system roots, whether the tool reads or writes it.
var pathTraversalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\.\.[/\\]`),
	regexp.MustCompile(`(?i)^/etc(/|$)`),
	regexp.MustCompile(`(?i)^/root(/|$)`),
	regexp.MustCompile(`(?i)^[a-z]:\\windows`),
}

// xssPatterns are scrubbed rather than blocked.
var xssPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script[^>]*>.*?</script>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)\bon\w+\s*=`),
}

var osClassTools = map[planmodel.ToolType]bool{
	planmodel.ToolRunShellCommand: true,
	planmodel.ToolOpenApplication: true,
	planmodel.ToolSystemControl:   true,
}

// defaultMaliciousDomains is the explicit deny list of known-bad domains
// referenced by spec §4.5, beyond the structural file://localhost/RFC1918
// checks.
var defaultMaliciousDomains = map[string]bool{
	"malware-test.example":  true,
	"phishing-test.example": true,
}

// Sanitizer implements stage 2 of the pipeline: per-parameter pattern
// checks that either block the call outright or scrub+mark it
// Sanitized.
type Sanitizer struct {
	allowLocalhost  bool
	blockedDomains  map[string]bool
}

// SanitizerConfig configures a Sanitizer.
type SanitizerConfig struct {
	AllowHTTPLocalhost bool
	BlockedDomains     []string
}

// NewSanitizer constructs a Sanitizer.
func NewSanitizer(cfg SanitizerConfig) *Sanitizer {
	blocked := make(map[string]bool, len(defaultMaliciousDomains)+len(cfg.BlockedDomains))
	for d := range defaultMaliciousDomains {
		blocked[d] = true
	}
	for _, d := range cfg.BlockedDomains {
		blocked[strings.ToLower(strings.TrimSpace(d))] = true
	}
	return &Sanitizer{allowLocalhost: cfg.AllowHTTPLocalhost, blockedDomains: blocked}
}

// sanitizeOutcome is the per-parameter result of running the checks.
type sanitizeOutcome struct {
	blocked   bool
	blockMsg  string
	sanitized bool
	warnings  []string
	params    map[string]any
	cloned    bool
}

// Run applies every per-parameter check to params for tool, returning
// the combined outcome. Parameters are never mutated in place; a new
// map is returned whenever scrubbing occurs.
func (s *Sanitizer) Run(tool planmodel.ToolType, params map[string]any) sanitizeOutcome {
	out := sanitizeOutcome{params: params}
	isOSTool := osClassTools[tool]

	for key, v := range params {
		str, ok := v.(string)
		if !ok {
			continue
		}

		for _, p := range sqlInjectionPatterns {
			if p.MatchString(str) {
				out.blocked = true
				out.blockMsg = fmt.Sprintf("parameter %q matched SQL injection pattern", key)
				out.warnings = appendUnique(out.warnings, "sql_injection")
				return out
			}
		}

		if isOSTool && shellMetacharacters.MatchString(str) {
			out.blocked = true
			out.blockMsg = fmt.Sprintf("parameter %q contains shell metacharacters", key)
			out.warnings = appendUnique(out.warnings, "shell_metacharacters")
			return out
		}

		for _, p := range pathTraversalPatterns {
			if p.MatchString(str) {
				out.blocked = true
				out.blockMsg = fmt.Sprintf("parameter %q matched path traversal pattern", key)
				out.warnings = appendUnique(out.warnings, "path_traversal")
				return out
			}
		}

		if tool == planmodel.ToolSendEmail || tool == planmodel.ToolSendMessage || tool == planmodel.ToolCreateNote {
			if cleaned, hit := scrubXSS(str); hit {
				out.sanitized = true
				out.warnings = appendUnique(out.warnings, "xss")
				if !out.cloned {
					out.params = cloneParams(params)
					out.cloned = true
				}
				out.params[key] = cleaned
			}
		}

		if urlErr := s.checkURLScheme(key, str); urlErr != nil {
			out.blocked = true
			out.blockMsg = urlErr.Error()
			out.warnings = appendUnique(out.warnings, "blocked_url_scheme")
			return out
		}
	}

	return out
}

func scrubXSS(s string) (string, bool) {
	hit := false
	for _, p := range xssPatterns {
		if p.MatchString(s) {
			hit = true
			s = p.ReplaceAllString(s, "")
		}
	}
	return s, hit
}

// checkURLScheme enforces: only http(s)://, blocking file://, bare
// "localhost", RFC1918 addresses, and the malicious-domain list.
// Non-HTTPS is blocked except for localhost in dev mode.
func (s *Sanitizer) checkURLScheme(key, value string) error {
	lower := strings.ToLower(value)
	if !strings.Contains(lower, "://") {
		return nil
	}

	if strings.HasPrefix(lower, "file://") {
		return fmt.Errorf("parameter %q uses a blocked file:// scheme", key)
	}
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return fmt.Errorf("parameter %q uses an unsupported URL scheme", key)
	}

	host := extractHost(value)
	if host == "" {
		return nil
	}
	for domain := range s.blockedDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return fmt.Errorf("parameter %q references a blocked domain %q", key, domain)
		}
	}

	opts := ssrf.Options{AllowLocalhost: s.allowLocalhost}
	if err := ssrf.ValidatePublicHostnameOpts(host, opts); err != nil {
		return fmt.Errorf("parameter %q: %w", key, err)
	}

	if strings.HasPrefix(lower, "http://") {
		isLocalhost := host == "localhost" || host == "127.0.0.1" || host == "::1"
		if !(s.allowLocalhost && isLocalhost) {
			return fmt.Errorf("parameter %q uses non-HTTPS for a non-localhost host", key)
		}
	}

	return nil
}

func extractHost(rawURL string) string {
	trimmed := strings.SplitN(rawURL, "://", 2)
	if len(trimmed) != 2 {
		return ""
	}
	rest := trimmed[1]
	rest = strings.SplitN(rest, "/", 2)[0]
	rest = strings.SplitN(rest, "?", 2)[0]
	host, _, found := strings.Cut(rest, ":")
	if !found {
		host = rest
	}
	return strings.ToLower(host)
}

func cloneParams(original map[string]any) map[string]any {
	cloned := make(map[string]any, len(original))
	for k, v := range original {
		cloned[k] = v
	}
	return cloned
}

func appendUnique(list []string, item string) []string {
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}
