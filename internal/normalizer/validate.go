package normalizer

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// rule checks a decoded JSON value and returns the cleaned value to keep.
// Objects are rebuilt from their declared fields only, so unknown keys are dropped.
type rule func(path string, v any) (any, []Issue)

type presence int

const (
	required presence = iota
	optional          // absent or null: omitted from the output
	nullable          // absent: omitted; null: kept as null
)

type field struct {
	name     string
	rule     rule
	presence presence
}

func req(name string, r rule) field   { return field{name: name, rule: r, presence: required} }
func opt(name string, r rule) field   { return field{name: name, rule: r, presence: optional} }
func maybe(name string, r rule) field { return field{name: name, rule: r, presence: nullable} }

func object(fields ...field) rule {
	return func(path string, v any) (any, []Issue) {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, []Issue{mismatch(path, "object", v)}
		}

		out := make(map[string]any, len(fields))
		var issues []Issue
		for _, f := range fields {
			child := joinPath(path, f.name)
			val, present := m[f.name]
			if !present || val == nil {
				switch {
				case f.presence == required:
					issues = append(issues, Issue{Path: child, Message: "required"})
				case present && f.presence == nullable:
					out[f.name] = nil
				}
				continue
			}

			cleaned, errs := f.rule(child, val)
			if len(errs) > 0 {
				issues = append(issues, errs...)
				continue
			}
			out[f.name] = cleaned
		}
		return out, issues
	}
}

// list accepts an array with at least minLen elements.
func list(elem rule, minLen int) rule {
	return func(path string, v any) (any, []Issue) {
		items, ok := v.([]any)
		if !ok {
			return nil, []Issue{mismatch(path, "array", v)}
		}
		if len(items) < minLen {
			return nil, []Issue{{Path: pathOrRoot(path), Message: fmt.Sprintf("expected at least %d item(s), got %d", minLen, len(items))}}
		}
		return elements(path, elem, items)
	}
}

// listOfLength accepts an array with exactly n elements.
func listOfLength(elem rule, n int) rule {
	return func(path string, v any) (any, []Issue) {
		items, ok := v.([]any)
		if !ok {
			return nil, []Issue{mismatch(path, "array", v)}
		}
		if len(items) != n {
			return nil, []Issue{{Path: pathOrRoot(path), Message: fmt.Sprintf("expected exactly %d item(s), got %d", n, len(items))}}
		}
		return elements(path, elem, items)
	}
}

func elements(path string, elem rule, items []any) (any, []Issue) {
	out := make([]any, 0, len(items))
	var issues []Issue
	for i, item := range items {
		cleaned, errs := elem(fmt.Sprintf("%s[%d]", path, i), item)
		if len(errs) > 0 {
			issues = append(issues, errs...)
			continue
		}
		out = append(out, cleaned)
	}
	return out, issues
}

func str() rule {
	return func(path string, v any) (any, []Issue) {
		s, ok := v.(string)
		if !ok {
			return nil, []Issue{mismatch(path, "string", v)}
		}
		return s, nil
	}
}

func num() rule {
	return func(path string, v any) (any, []Issue) {
		f, ok := asFloat(v)
		if !ok {
			return nil, []Issue{mismatch(path, "number", v)}
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, []Issue{{Path: pathOrRoot(path), Message: "expected finite number"}}
		}
		return f, nil
	}
}

// integer accepts whole numbers greater than or equal to minValue.
func integer(minValue int) rule {
	return func(path string, v any) (any, []Issue) {
		f, ok := asFloat(v)
		if !ok {
			return nil, []Issue{mismatch(path, "integer", v)}
		}
		if f != math.Trunc(f) {
			return nil, []Issue{{Path: pathOrRoot(path), Message: "expected integer"}}
		}
		if f < float64(minValue) {
			return nil, []Issue{{Path: pathOrRoot(path), Message: fmt.Sprintf("must be >= %d", minValue)}}
		}
		return f, nil
	}
}

func boolean() rule {
	return func(path string, v any) (any, []Issue) {
		b, ok := v.(bool)
		if !ok {
			return nil, []Issue{mismatch(path, "boolean", v)}
		}
		return b, nil
	}
}

func enum(values ...string) rule {
	return func(path string, v any) (any, []Issue) {
		s, ok := v.(string)
		if !ok {
			return nil, []Issue{mismatch(path, "string", v)}
		}
		for _, allowed := range values {
			if s == allowed {
				return s, nil
			}
		}
		return nil, []Issue{{
			Path:    pathOrRoot(path),
			Message: fmt.Sprintf("invalid value %q, expected one of %s", s, strings.Join(values, "|")),
		}}
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func mismatch(path, want string, got any) Issue {
	return Issue{Path: pathOrRoot(path), Message: fmt.Sprintf("expected %s, got %s", want, typeName(got))}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, json.Number, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func pathOrRoot(path string) string {
	if path == "" {
		return "(root)"
	}
	return path
}
