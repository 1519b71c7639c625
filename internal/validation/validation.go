// Package validation checks persona form submissions against a declarative
// rule table. Rules are data, not code: adding a field means adding a row.
package validation

import (
	"fmt"
	"strconv"
	"strings"
)

// Form is a submitted field map. Values are strings or string lists,
// matching the JSON payload of the persona form.
type Form map[string]any

// String returns the trimmed string value of a field, or "" when the field
// is absent. JSON numbers are formatted, so `"age": 30` and `"age": "30"`
// validate the same way.
func (f Form) String(field string) string {
	switch v := f[field].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// List returns the string-list value of a field. JSON decoding yields
// []any, which is handled too.
func (f Form) List(field string) []string {
	switch v := f[field].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// contains reports whether the field holds the value, either as a list
// member (multi-select) or as the value itself (radio/text).
func (f Form) contains(field, value string) bool {
	if list := f.List(field); list != nil {
		for _, s := range list {
			if s == value {
				return true
			}
		}
		return false
	}
	return f.String(field) == value
}

// Errors maps failing field names to human-readable reasons.
type Errors map[string]string

// RequiredRule marks a field that must be a non-empty string.
type RequiredRule struct {
	Field   string
	Message string
}

// RangeRule requires a field to parse as an integer within [Min, Max].
// The bound is form configuration, not a universal constant.
type RangeRule struct {
	Field    string
	Min, Max int
}

// ConditionalRule makes Dependent required only while Trigger holds
// TriggerValue.
type ConditionalRule struct {
	Trigger      string
	TriggerValue string
	Dependent    string
	Message      string
}

// OneOfRule restricts a field to a fixed set of values. An absent field
// passes; presence is the required rule's job.
type OneOfRule struct {
	Field   string
	Allowed []string
	Message string
}

// RuleSet is one form's complete validation table.
type RuleSet struct {
	Required     []RequiredRule
	Ranges       []RangeRule
	Conditionals []ConditionalRule
	OneOfs       []OneOfRule
}

// Validate applies every rule to the form and returns the failing fields.
// An empty result means the submission is valid. Pure: no I/O, the form is
// not modified.
func (rs RuleSet) Validate(form Form) Errors {
	errs := Errors{}

	for _, r := range rs.Required {
		if form.String(r.Field) == "" && len(form.List(r.Field)) == 0 {
			errs[r.Field] = r.Message
		}
	}

	for _, r := range rs.Ranges {
		raw := form.String(r.Field)
		if raw == "" {
			continue // presence is the required rule's job
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < r.Min || n > r.Max {
			errs[r.Field] = fmt.Sprintf("Age must be between %d and %d", r.Min, r.Max)
		}
	}

	for _, r := range rs.Conditionals {
		if form.contains(r.Trigger, r.TriggerValue) && form.String(r.Dependent) == "" {
			errs[r.Dependent] = r.Message
		}
	}

	for _, r := range rs.OneOfs {
		v := form.String(r.Field)
		if v == "" {
			continue
		}
		allowed := false
		for _, a := range r.Allowed {
			if v == a {
				allowed = true
				break
			}
		}
		if !allowed {
			errs[r.Field] = r.Message
		}
	}

	return errs
}

// Error carries field-level validation failures across the repository
// boundary without losing the field map.
type Error struct {
	Fields Errors
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}
