package userapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes used in error response bodies.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeValidationError    = "validation_error"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeConflict           = "conflict"
	ErrorCodeServerError        = "server_error"
)

// APIError is a typed error outcome the server writes and clients parse.
// It implements the error interface.
type APIError struct {
	// StatusCode is the HTTP status code for this error.
	StatusCode int `json:"-"`

	// Code is a stable machine-readable error code.
	Code string `json:"error"`

	// Description is a human-readable description of the error.
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	// ErrInvalidRequest is returned when the request body is malformed or a
	// path parameter cannot be parsed.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidCredentials is the uniform authentication failure. It is
	// deliberately identical for unknown usernames and wrong passwords.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid username or password",
	}

	// ErrUserNotFound is returned when the addressed user does not exist.
	ErrUserNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "user not found",
	}

	// ErrUsernameTaken is returned when registration or update collides with
	// an existing username.
	ErrUsernameTaken = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeConflict,
		Description: "username is already taken",
	}

	// ErrServerError is returned for unexpected failures, e.g. the store
	// being unavailable.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// ValidationErrorResponse is returned when request validation fails.
type ValidationErrorResponse struct {
	// Code is always "validation_error".
	Code string `json:"error"`

	// Message is a human-readable error message.
	Message string `json:"error_description"`

	// Details contains field-specific validation errors (field name: rule).
	Details map[string]string `json:"details,omitempty"`
}

// WriteValidationError writes a 400 response carrying per-field details.
func WriteValidationError(w http.ResponseWriter, details map[string]string) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(ValidationErrorResponse{
		Code:    ErrorCodeValidationError,
		Message: "request validation failed",
		Details: details,
	})
}
