// Package errors provides standardized error handling for the proxy's
// request pipeline.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes. They exist for
// logs and metrics only; the wire contract stays `{"error": string}` plus
// the HTTP status.
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeRouteNotFound    ErrorCode = "ROUTE_NOT_FOUND"

	ErrCodeUpstreamFailed       ErrorCode = "UPSTREAM_FAILED"
	ErrCodeUpstreamEmpty        ErrorCode = "UPSTREAM_EMPTY_RESPONSE"
	ErrCodeUpstreamMalformed    ErrorCode = "UPSTREAM_MALFORMED_RESPONSE"
	ErrCodeProviderUnconfigured ErrorCode = "PROVIDER_UNCONFIGURED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// HTTPStatus maps an error code onto the proxy's three-status taxonomy.
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodeRouteNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage is the string surfaced to the calling UI. Upstream errors
// keep their full message (provider status and body included) because the
// catalog client shows it to the end user as-is.
func (e *StandardError) ClientMessage() string {
	if e.Details != "" && e.Code != ErrCodeValidationFailed && e.Code != ErrCodeRouteNotFound {
		return e.Details
	}
	return e.Message
}

// NewValidationError creates a non-retryable client-fault error. No upstream
// call may be attempted once one of these is raised.
func NewValidationError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRouteNotFoundError creates the routing-miss error.
func NewRouteNotFoundError() *StandardError {
	return &StandardError{
		Code:      ErrCodeRouteNotFound,
		Message:   "Not found",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamError wraps a provider failure. details carries the provider's
// own message, including its status code and body text where available.
func NewUpstreamError(code ErrorCode, provider string, err error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   fmt.Sprintf("upstream %s call failed", provider),
		Details:   err.Error(),
		Retryable: false,
		Metadata:  map[string]interface{}{"provider": provider},
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderUnconfiguredError reports a missing credential. It still
// surfaces as the operation's 500, matching the original behavior where the
// upstream authentication failure did the same.
func NewProviderUnconfiguredError(provider string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderUnconfigured,
		Message:   fmt.Sprintf("provider %s has no API key configured", provider),
		Retryable: false,
		Metadata:  map[string]interface{}{"provider": provider},
		Timestamp: time.Now().UTC(),
	}
}

// Normalize ensures any error becomes a StandardError for the responder.
func Normalize(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
