package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is an error reported by the store backend, either as a non-2xx
// status or as a 2xx envelope with success=false.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("backend: %s (HTTP %d)", e.Message, e.StatusCode)
	}
	return "backend: " + e.Message
}

// IsNotFound reports whether the backend said the resource does not exist.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether the bearer token was rejected.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsValidation reports whether the backend rejected the payload.
func (e *APIError) IsValidation() bool {
	return e.StatusCode == http.StatusUnprocessableEntity || e.StatusCode == http.StatusBadRequest
}

// AsAPIError extracts an *APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// parseAPIError builds an APIError from a non-2xx response body. The backend
// usually sends {message} or {success:false, message}; anything else is kept
// verbatim so the caller can still surface it.
func parseAPIError(statusCode int, body []byte) error {
	var wrapped struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil {
		if wrapped.Message != "" {
			return &APIError{StatusCode: statusCode, Message: wrapped.Message}
		}
		if wrapped.Error != "" {
			return &APIError{StatusCode: statusCode, Message: wrapped.Error}
		}
	}

	msg := string(body)
	if msg == "" {
		msg = http.StatusText(statusCode)
	}
	return &APIError{StatusCode: statusCode, Message: msg}
}

func errorMessage(message string) string {
	if message == "" {
		return "request failed"
	}
	return message
}
