// Package normalizer turns free-text model completions into schema-valid travel plans.
//
// Normalize strips markdown fences, recovers the embedded JSON object, repairs the handful
// of fields models routinely mistype and validates the result against a fixed schema per
// plan kind. It holds no state and is safe for concurrent use.
package normalizer

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Kind string

const (
	KindVacation   Kind = "vacation"
	KindRelocation Kind = "relocation"
)

// Plan is a normalized, schema-valid structured plan.
type Plan struct {
	Kind Kind
	Data map[string]any
}

// JSON encodes the plan data.
func (p *Plan) JSON() (json.RawMessage, error) {
	return json.Marshal(p.Data)
}

// CostSection returns "costs" for vacations and "costOfLiving" for relocations.
func (p *Plan) CostSection() (map[string]any, bool) {
	key := "costs"
	if p.Kind == KindRelocation {
		key = "costOfLiving"
	}
	section, ok := p.Data[key].(map[string]any)
	return section, ok
}

// TotalDaily returns costs.totalDaily of a vacation plan.
func (p *Plan) TotalDaily() (minCost, maxCost float64, ok bool) {
	return TotalDaily(p.Data)
}

// TotalDaily reads costs.totalDaily.{min,max} from plan data, which may have been decoded
// from storage rather than produced by Normalize.
func TotalDaily(data map[string]any) (minCost, maxCost float64, ok bool) {
	total := nested(data, "costs", "totalDaily")
	if total == nil {
		return 0, 0, false
	}
	minCost, minOK := asFloat(total["min"])
	maxCost, maxOK := asFloat(total["max"])
	if !minOK || !maxOK {
		return 0, 0, false
	}
	return minCost, maxCost, true
}

type options struct {
	expectedDays int
}

type Option func(*options)

// WithExpectedDays requires a vacation itinerary to contain exactly n days.
func WithExpectedDays(n int) Option {
	return func(o *options) { o.expectedDays = n }
}

var fenceMarkers = strings.NewReplacer("```json", "", "```", "")

// Normalize converts raw model output into a Plan of the given kind.
func Normalize(raw string, kind Kind, opts ...Option) (*Plan, error) {
	var o options
	for _, apply := range opts {
		apply(&o)
	}

	schema, ok := schemaFor(kind, o.expectedDays)
	if !ok {
		return nil, fmt.Errorf("normalizer: unknown plan kind %q", kind)
	}

	data, err := extractObject(raw)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindVacation:
		coerceVacation(data)
	case KindRelocation:
		coerceRelocation(data)
	}

	cleaned, issues := schema("", data)
	if len(issues) > 0 {
		return nil, &SchemaValidationError{Kind: kind, Issues: issues}
	}
	return &Plan{Kind: kind, Data: cleaned.(map[string]any)}, nil
}

func extractObject(raw string) (map[string]any, error) {
	text := strings.TrimSpace(fenceMarkers.Replace(raw))

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, &MalformedResponseError{Reason: "no JSON object found"}
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &data); err != nil {
		return nil, &MalformedResponseError{Reason: "invalid JSON", Err: err}
	}
	return data, nil
}
