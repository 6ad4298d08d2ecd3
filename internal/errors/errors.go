package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrInvalidCredentials covers every authentication failure: missing,
	// malformed, expired or rotated-out tokens and bad passwords alike. The
	// sub-cause is never exposed to a client.
	ErrInvalidCredentials = errors.New("invalid or expired credentials")
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when a unique field collides.
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrConflict is returned when a conditional update lost a concurrent race.
	ErrConflict = errors.New("resource was modified concurrently")
	// ErrInvalidInput covers business-rule violations that are not state
	// machine transitions.
	ErrInvalidInput = errors.New("invalid input")
)

// AuthorizationError is returned when an authenticated identity lacks the
// role required for an operation. Role names are not secret and are reported.
type AuthorizationError struct {
	Required []string
}

func (e *AuthorizationError) Error() string {
	return "operation requires role: " + strings.Join(e.Required, ", ")
}

// NewAuthorizationError builds an AuthorizationError from the allowed role set.
func NewAuthorizationError(roles ...string) *AuthorizationError {
	return &AuthorizationError{Required: roles}
}

// TransitionError reports a case or hearing state machine violation,
// identifying the current and attempted state.
type TransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid %s transition from %q to %q", e.Entity, e.From, e.To)
}

// NewTransitionError builds a TransitionError.
func NewTransitionError(entity, from, to string) *TransitionError {
	return &TransitionError{Entity: entity, From: from, To: to}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Authentication failures
// collapse to one generic 401 regardless of sub-cause.
func MapErrorToHTTP(err error) *HTTPError {
	var authzErr *AuthorizationError
	var transErr *TransitionError
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.As(err, &authzErr):
		return NewHTTPError(http.StatusForbidden, authzErr.Error(), "ROLE_NOT_PERMITTED")
	case errors.As(err, &transErr):
		return NewHTTPError(http.StatusBadRequest, transErr.Error(), "INVALID_TRANSITION")
	case errors.Is(err, ErrInvalidInput):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_EXISTS")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, err.Error(), "CONFLICT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
