// Package validate implements the declarative request validation engine.
// A Schema is a data-driven rule table: each field maps to a kind, a
// required flag, an optional default and an ordered list of
// predicate+message rules. The engine coerces untyped input (JSON body
// values, path params, query params) into typed values, applies
// defaults, strips unknown fields silently and collects every rule
// violation instead of stopping at the first one. Messages are returned
// to the client verbatim.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind is the coercion target of a field.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
)

// Rule is one predicate over a coerced value. Check receives the value
// and the coerced-so-far output map so cross-field rules (e.g. maxPrice
// >= minPrice) can reference earlier fields. Rules are evaluated in
// declaration order and every failing rule contributes its message.
type Rule struct {
	Check   func(v any, out map[string]any) bool
	Message string
}

// Field is one row of the rule table.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Default  any    // applied when the field is absent and not required
	Rules    []Rule // ordered, all evaluated
}

// Schema is an ordered set of fields. Input keys not named by any field
// are dropped from the output without an error.
type Schema struct {
	Fields []Field
}

// Apply validates and coerces in against the schema. It returns the
// cleaned output map and the full list of violation messages; the output
// is usable only when the violation list is empty.
func (s *Schema) Apply(in map[string]any) (map[string]any, []string) {
	out := make(map[string]any, len(s.Fields))
	var violations []string

	for _, f := range s.Fields {
		raw, present := in[f.Name]
		if present && raw == nil {
			present = false
		}
		// An empty query value like ?minPrice= counts as absent for
		// numeric fields; for strings emptiness is meaningful (an update
		// may deliberately clear a description).
		if present && f.Kind != KindString {
			if str, ok := raw.(string); ok && strings.TrimSpace(str) == "" {
				present = false
			}
		}
		if present && f.Required && f.Kind == KindString {
			if str, ok := raw.(string); ok && strings.TrimSpace(str) == "" {
				present = false
			}
		}

		if !present {
			if f.Required {
				violations = append(violations, fmt.Sprintf("%s is required", f.Name))
				continue
			}
			if f.Default != nil {
				out[f.Name] = f.Default
			}
			continue
		}

		v, err := coerce(f.Kind, raw)
		if err != nil {
			violations = append(violations, fmt.Sprintf("%s %s", f.Name, err.Error()))
			continue
		}
		out[f.Name] = v

		for _, r := range f.Rules {
			if !r.Check(v, out) {
				violations = append(violations, r.Message)
			}
		}
	}

	return out, violations
}

// coerce converts a raw input value into the field's kind. Numeric
// strings become numbers; anything else of the wrong shape is rejected
// with a short reason used to build the violation message.
func coerce(k Kind, raw any) (any, error) {
	switch k {
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("must be a string")
		}
		return s, nil
	case KindInt:
		switch t := raw.(type) {
		case int:
			return t, nil
		case int64:
			return int(t), nil
		case float64:
			if t != math.Trunc(t) {
				return nil, fmt.Errorf("must be an integer")
			}
			return int(t), nil
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(t))
			if err != nil {
				return nil, fmt.Errorf("must be an integer")
			}
			return n, nil
		}
		return nil, fmt.Errorf("must be an integer")
	case KindFloat:
		switch t := raw.(type) {
		case float64:
			return t, nil
		case int:
			return float64(t), nil
		case string:
			n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
			if err != nil {
				return nil, fmt.Errorf("must be a number")
			}
			return n, nil
		}
		return nil, fmt.Errorf("must be a number")
	}
	return nil, fmt.Errorf("has an unsupported kind")
}

// asFloat reads any coerced numeric value as float64 for rule checks.
func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}

// ----- rule constructors -----

// MinLen requires at least n characters (after trimming). Lengths count
// characters, not bytes, so multibyte input is bounded the same way the
// limits read.
func MinLen(n int, msg string) Rule {
	return Rule{Message: msg, Check: func(v any, _ map[string]any) bool {
		s, ok := v.(string)
		return ok && utf8.RuneCountInString(strings.TrimSpace(s)) >= n
	}}
}

// MaxLen requires at most n characters.
func MaxLen(n int, msg string) Rule {
	return Rule{Message: msg, Check: func(v any, _ map[string]any) bool {
		s, ok := v.(string)
		return ok && utf8.RuneCountInString(s) <= n
	}}
}

// Min requires a numeric value >= bound.
func Min(bound float64, msg string) Rule {
	return Rule{Message: msg, Check: func(v any, _ map[string]any) bool {
		f, ok := asFloat(v)
		return ok && f >= bound
	}}
}

// Max requires a numeric value <= bound.
func Max(bound float64, msg string) Rule {
	return Rule{Message: msg, Check: func(v any, _ map[string]any) bool {
		f, ok := asFloat(v)
		return ok && f <= bound
	}}
}

// GreaterThan requires a numeric value strictly above bound.
func GreaterThan(bound float64, msg string) Rule {
	return Rule{Message: msg, Check: func(v any, _ map[string]any) bool {
		f, ok := asFloat(v)
		return ok && f > bound
	}}
}

// MaxDecimals rejects numbers with more than n fractional digits.
func MaxDecimals(n int, msg string) Rule {
	return Rule{Message: msg, Check: func(v any, _ map[string]any) bool {
		f, ok := asFloat(v)
		if !ok {
			return false
		}
		scaled := f * math.Pow10(n)
		return math.Abs(scaled-math.Round(scaled)) < 1e-9
	}}
}

// OneOf requires the string value to be one of the given options.
func OneOf(msg string, options ...string) Rule {
	set := make(map[string]bool, len(options))
	for _, o := range options {
		set[o] = true
	}
	return Rule{Message: msg, Check: func(v any, _ map[string]any) bool {
		s, ok := v.(string)
		return ok && set[s]
	}}
}

// Pattern requires the string value to match re.
func Pattern(re *regexp.Regexp, msg string) Rule {
	return Rule{Message: msg, Check: func(v any, _ map[string]any) bool {
		s, ok := v.(string)
		return ok && re.MatchString(s)
	}}
}

// GTEField is a cross-field rule requiring the value to be >= the named
// earlier field when that field was supplied.
func GTEField(other string, msg string) Rule {
	return Rule{Message: msg, Check: func(v any, out map[string]any) bool {
		ov, present := out[other]
		if !present {
			return true
		}
		f, ok1 := asFloat(v)
		of, ok2 := asFloat(ov)
		return ok1 && ok2 && f >= of
	}}
}
