package normalizer

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonNumeric   = regexp.MustCompile(`[^\d.\-]`)
	leadingFloat = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)
)

// coerceRelocation fixes the fields models most often return with the wrong type.
func coerceRelocation(data map[string]any) {
	if ss := nested(data, "taxation", "socialSecurity"); ss != nil {
		coerceNumber(ss, "employeeRate")
		coerceNumber(ss, "employerRate")
	}
	if wc := nested(data, "jobMarket", "workCulture"); wc != nil {
		coerceNumber(wc, "vacationDays")
	}
	if overview := nested(data, "overview"); overview != nil {
		if n, ok := overview["population"].(float64); ok {
			overview["population"] = strconv.FormatFloat(n, 'f', -1, 64)
		}
	}
}

func coerceVacation(data map[string]any) {
	attractions, ok := data["attractions"].([]any)
	if !ok {
		return
	}
	for _, item := range attractions {
		attraction, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if category, ok := attraction["category"].(string); ok {
			attraction["category"] = NormalizeCategory(category)
		}
	}
}

// NormalizeCategory maps a free-form attraction category onto free, paid or optional.
// Matching is a case-insensitive substring test in that order; anything else is paid.
func NormalizeCategory(category string) string {
	lower := strings.ToLower(category)
	switch {
	case strings.Contains(lower, CategoryFree):
		return CategoryFree
	case strings.Contains(lower, CategoryPaid):
		return CategoryPaid
	case strings.Contains(lower, CategoryOptional):
		return CategoryOptional
	default:
		return CategoryPaid
	}
}

// ToNumber converts a loosely typed value to a float. Strings keep only digits, '.' and '-'
// and are read up to the first character that cannot continue a decimal number; anything
// that yields no number becomes 0.
func ToNumber(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		match := leadingFloat.FindString(nonNumeric.ReplaceAllString(t, ""))
		if match == "" {
			return 0
		}
		f, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func coerceNumber(m map[string]any, key string) {
	v, ok := m[key]
	if !ok || v == nil {
		return
	}
	m[key] = ToNumber(v)
}

func nested(data map[string]any, keys ...string) map[string]any {
	current := data
	for _, key := range keys {
		next, ok := current[key].(map[string]any)
		if !ok {
			return nil
		}
		current = next
	}
	return current
}
