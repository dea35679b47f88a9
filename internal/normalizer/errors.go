package normalizer

import (
	"fmt"
	"strings"
)

// MalformedResponseError is returned when no JSON object can be recovered from the model output.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed model response: %s: %v", e.Reason, e.Err)
	}
	return "malformed model response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// Issue is a single schema violation at a JSON path such as "itinerary[2].morning.cost".
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i Issue) String() string { return i.Path + ": " + i.Message }

// SchemaValidationError lists every field of a plan that failed validation.
type SchemaValidationError struct {
	Kind   Kind
	Issues []Issue
}

func (e *SchemaValidationError) Error() string {
	const maxListed = 8
	parts := make([]string, 0, maxListed)
	for i, issue := range e.Issues {
		if i == maxListed {
			parts = append(parts, fmt.Sprintf("... %d more", len(e.Issues)-maxListed))
			break
		}
		parts = append(parts, issue.String())
	}
	return fmt.Sprintf("%s plan failed schema validation: %s", e.Kind, strings.Join(parts, "; "))
}

// Fields returns the paths of the violated fields in report order.
func (e *SchemaValidationError) Fields() []string {
	out := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		out[i] = issue.Path
	}
	return out
}
