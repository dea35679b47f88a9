package utils

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

type APIErrorResponse struct {
	Success bool             `json:"success"`
	Error   string           `json:"error"`
	Message string           `json:"message"`
	Details []FieldViolation `json:"details,omitempty"`
	Detail  string           `json:"detail,omitempty"`
	TraceID string           `json:"trace_id,omitempty"`
}

func RespondSuccess(c *gin.Context, data any, message string) {
	respond(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data any, message string) {
	respond(c, http.StatusCreated, data, message)
}

func respond(c *gin.Context, code int, data any, message string) {
	c.JSON(code, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIErrorResponse{
		Success: false,
		Error:   errorCode(code),
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// ErrorStatus maps a service error onto an HTTP status and a client-facing message.
func ErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, "Validation failed"
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, "Authentication required"
	case errors.Is(err, ErrPlanNotFound):
		return http.StatusNotFound, "Travel plan not found"
	case errors.Is(err, ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable, "AI service is temporarily unavailable, please try again later"
	case errors.Is(err, ErrGenerationFailed):
		return http.StatusServiceUnavailable, "Could not generate a travel plan, please try again later"
	case errors.Is(err, ErrCancelled):
		return http.StatusServiceUnavailable, "Request was cancelled before the plan was generated"
	case strings.Contains(err.Error(), "API"):
		return http.StatusServiceUnavailable, "External service is temporarily unavailable"
	default:
		return http.StatusInternalServerError, "Something went wrong"
	}
}

func HandleServiceError(c *gin.Context, err error) {
	_ = c.Error(err)
	code, message := ErrorStatus(err)

	resp := APIErrorResponse{
		Success: false,
		Error:   errorCode(code),
		Message: message,
		TraceID: c.GetString("trace_id"),
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		resp.Details = verr.Details
	}
	if code == http.StatusInternalServerError && gin.IsDebugging() {
		resp.Detail = err.Error()
	}
	c.JSON(code, resp)
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "validation_error"
	case http.StatusUnauthorized:
		return "unauthenticated"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusServiceUnavailable:
		return "service_unavailable"
	default:
		return "internal_error"
	}
}
