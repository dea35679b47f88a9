package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx answer, or a 2xx answer whose envelope reports success=false.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

func newAPIError(status int, message, code string) *APIError {
	if message != "" {
		return &APIError{StatusCode: status, Message: message}
	}
	switch status {
	case http.StatusUnauthorized:
		message = "Authentication required"
	case http.StatusForbidden:
		message = "Access forbidden"
	case http.StatusNotFound:
		message = "Resource not found"
	case http.StatusServiceUnavailable:
		message = "Service temporarily unavailable"
	default:
		message = code
		if message == "" {
			message = fmt.Sprintf("Request failed with status %d", status)
		}
	}
	return &APIError{StatusCode: status, Message: message}
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}
