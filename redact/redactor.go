package redact

import (
	"fmt"
	"regexp"

	"github.com/SavinRazvan/hydra-logger/core"
)

// Redactor applies ordered compiled-pattern substitutions to strings
// and structured fields before they reach any destination. Patterns
// run sequentially in registration order, never as one combined
// alternation, so a later pattern cannot rematch text an earlier one
// already replaced. The built-in replacements are bracketed tokens
// ([REDACTED_EMAIL] and friends) that no catalog pattern matches.
//
// A disabled Redactor is the identity function: every Redact method
// returns its input after a single flag check.
type Redactor struct {
	patterns []redactPattern
	enabled  bool
}

// redactPattern contains a compiled regex and replacement string.
type redactPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// Built-in pattern names.
const (
	PatternEmail      = "email"
	PatternPhone      = "phone"
	PatternSSN        = "ssn"
	PatternCreditCard = "credit_card"
	PatternAPIKey     = "api_key"
	PatternPassword   = "password"
	PatternToken      = "token"
)

// defaultPatterns is the built-in catalog in application order.
var defaultPatterns = []struct {
	name        string
	regex       string
	replacement string
}{
	{
		name:        PatternEmail,
		regex:       `[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`,
		replacement: "[REDACTED_EMAIL]",
	},
	{
		name:        PatternPhone,
		regex:       `\b(?:\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`,
		replacement: "[REDACTED_PHONE]",
	},
	{
		name:        PatternSSN,
		regex:       `\b\d{3}[-\s]?\d{2}[-\s]?\d{4}\b`,
		replacement: "[REDACTED_SSN]",
	},
	// After phone and ssn have consumed 9- and 10-digit runs.
	{
		name:        PatternCreditCard,
		regex:       `\b(?:\d[ -]*?){13,16}\b`,
		replacement: "[REDACTED_CC]",
	},
	{
		name:        PatternAPIKey,
		regex:       `(?i)(sk-[a-z0-9]+|api[-_]?key[-_:=]\s*[a-z0-9]+)`,
		replacement: "[REDACTED_API_KEY]",
	},
	{
		name:        PatternPassword,
		regex:       `(?i)(password|passwd|pwd)[:=]\s*\S+`,
		replacement: "$1=[REDACTED]",
	},
	{
		name:        PatternToken,
		regex:       `(?i)(Bearer\s+[a-zA-Z0-9\-._~+/]+=*|token[:=]\s*\S+)`,
		replacement: "[REDACTED_TOKEN]",
	},
}

// New creates an enabled Redactor with the built-in pattern catalog.
func New() *Redactor {
	r := &Redactor{
		patterns: make([]redactPattern, 0, len(defaultPatterns)),
		enabled:  true,
	}
	for _, p := range defaultPatterns {
		r.patterns = append(r.patterns, redactPattern{
			name:        p.name,
			regex:       regexp.MustCompile(p.regex),
			replacement: p.replacement,
		})
	}
	return r
}

// NewDisabled creates a Redactor whose Redact methods are the
// identity function.
func NewDisabled() *Redactor {
	return &Redactor{}
}

// Enabled reports whether redaction is active.
func (r *Redactor) Enabled() bool {
	return r.enabled
}

// Register appends a custom pattern after the existing ones. The
// expression is compiled eagerly; an invalid expression is a
// configuration-time error.
func (r *Redactor) Register(name, expr, replacement string) error {
	regex, err := regexp.Compile(expr)
	if err != nil {
		return fmt.Errorf("redact pattern %q: %w", name, err)
	}
	r.patterns = append(r.patterns, redactPattern{
		name:        name,
		regex:       regex,
		replacement: replacement,
	})
	return nil
}

// PatternNames returns the names of the registered patterns in
// application order.
func (r *Redactor) PatternNames() []string {
	names := make([]string, len(r.patterns))
	for i, p := range r.patterns {
		names[i] = p.name
	}
	return names
}

// RedactString applies every pattern to the value in order.
func (r *Redactor) RedactString(value string) string {
	if !r.enabled || value == "" {
		return value
	}

	redacted := value
	for _, pattern := range r.patterns {
		redacted = pattern.regex.ReplaceAllString(redacted, pattern.replacement)
	}
	return redacted
}

// RedactMap returns a redacted copy of the map. String values are
// redacted, nested maps are recursed into, every other value is
// carried over untouched. The input map is never mutated.
func (r *Redactor) RedactMap(m map[string]interface{}) map[string]interface{} {
	if !r.enabled || m == nil {
		return m
	}

	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case string:
			out[k] = r.RedactString(val)
		case map[string]interface{}:
			out[k] = r.RedactMap(val)
		default:
			out[k] = v
		}
	}
	return out
}

// RedactFields returns a redacted copy of the fields. String-valued
// fields are redacted in place of their copies, map-valued fields are
// redacted recursively. The input slice is never mutated so records
// stay immutable.
func (r *Redactor) RedactFields(fields []core.Field) []core.Field {
	if !r.enabled || len(fields) == 0 {
		return fields
	}

	out := make([]core.Field, len(fields))
	copy(out, fields)
	for i := range out {
		switch out[i].Type {
		case core.StringType, core.ErrorType:
			out[i].Str = r.RedactString(out[i].Str)
		case core.MapType, core.AnyType:
			if m := out[i].Map(); m != nil {
				out[i].Any = r.RedactMap(m)
			} else if s, ok := out[i].Any.(string); ok {
				out[i].Any = r.RedactString(s)
			}
		}
	}
	return out
}
