package ai

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrModelNotFound marks a backend error caused by an unknown or retired model identifier.
	ErrModelNotFound = errors.New("model not found")
	// ErrUpstreamUnavailable is returned when no candidate model exists on the backend.
	ErrUpstreamUnavailable = errors.New("generation API unavailable: no candidate model could be reached")
	// ErrCancelled is returned when the caller's context ends during the fallback loop.
	ErrCancelled = errors.New("generation cancelled")
)

type modelNotFoundError struct {
	model string
	cause error
}

func (e *modelNotFoundError) Error() string {
	return fmt.Sprintf("model %q not found: %v", e.model, e.cause)
}

func (e *modelNotFoundError) Unwrap() []error { return []error{ErrModelNotFound, e.cause} }

// IsModelNotFoundSignal reports whether a backend status code and message indicate a missing model.
func IsModelNotFoundSignal(status int, message string) bool {
	return status == http.StatusNotFound || strings.Contains(strings.ToLower(message), "not found")
}

// GenerationFailedError carries the last candidate's error once every model has been tried.
type GenerationFailedError struct {
	Model    string
	Attempts int
	Err      error
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("plan generation failed after %d attempt(s), last model %s: %v", e.Attempts, e.Model, e.Err)
}

func (e *GenerationFailedError) Unwrap() error { return e.Err }
