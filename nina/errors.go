package nina

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid nina configuration")
	// ErrInvalidLimit indicates a negative result limit
	ErrInvalidLimit = errors.New("limit must not be negative")
	// ErrEmptyKey indicates a missing public key or handle
	ErrEmptyKey = errors.New("public key or handle is required")
	// ErrEmptyQuery indicates an empty search query
	ErrEmptyQuery = errors.New("search query is required")
	// ErrNotFound indicates resource not found
	ErrNotFound = errors.New("resource not found")
)

// APIError is returned when the Nina API answers with a non-200 status.
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("nina API error: %s responded with status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// Is reports ErrNotFound for 404 responses so callers can use errors.Is.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.IsNotFound()
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsServerError checks if the API failed on its side
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

// MissingFieldError is returned when a document lacks a required field.
type MissingFieldError struct {
	Type  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Type, e.Field)
}

// field pairs a JSON key with whether it was present in the document.
type field struct {
	name    string
	present bool
}

// requireFields returns a MissingFieldError for the first absent field.
func requireFields(typ string, fields ...field) error {
	for _, f := range fields {
		if !f.present {
			return &MissingFieldError{Type: typ, Field: f.name}
		}
	}
	return nil
}
