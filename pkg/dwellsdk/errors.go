package dwellsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dwellhq/dwell/pkg/httpx"
)

// Stable error codes returned by the service. Clients discriminate
// outcomes by code, never by message text.
const (
	ErrorCodeInvalidRequest  = "invalid_request"
	ErrorCodeUnauthorized    = "unauthorized"
	ErrorCodeForbidden       = "insufficient_scope"
	ErrorCodeNotFound        = "not_found"
	ErrorCodeInviteInvalid   = "invite_invalid"
	ErrorCodeExpired         = "expired"
	ErrorCodeInactive        = "inactive"
	ErrorCodeExhausted       = "exhausted"
	ErrorCodeAlreadyResident = "already_resident"
	ErrorCodeRateLimited     = "rate_limited"
	ErrorCodeUnavailable     = "unavailable"
	ErrorCodeServerError     = "server_error"
)

// APIError is the service's error envelope. It implements the error
// interface and is used both by the server (to write HTTP responses) and
// by the SDK (to represent failed requests).
type APIError struct {
	// StatusCode is the HTTP status for this error
	StatusCode int `json:"-"`

	// Code is the stable machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable description
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, map[string]string{
		"code":    e.Code,
		"message": e.Message,
	})
}

// NewAPIError creates an APIError with the given status, code, and message.
func NewAPIError(statusCode int, code, message string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Message: message}
}

var (
	// ErrInvalidRequest is returned for malformed or incomplete requests.
	ErrInvalidRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidRequest,
		Message:    "the request is malformed or missing required parameters",
	}

	// ErrUnauthorized is returned when authentication is missing or invalid.
	ErrUnauthorized = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeUnauthorized,
		Message:    "authentication required",
	}

	// ErrServerError is returned for unexpected internal failures.
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Message:    "internal server error",
	}

	// ErrUnavailable is returned when the store is under contention and the
	// request should be retried.
	ErrUnavailable = &APIError{
		StatusCode: http.StatusServiceUnavailable,
		Code:       ErrorCodeUnavailable,
		Message:    "service temporarily unavailable, retry",
	}
)

// parseErrorResponse turns a non-2xx HTTP response into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var envelope struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Code != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       envelope.Code,
			Message:    envelope.Message,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       ErrorCodeServerError,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
