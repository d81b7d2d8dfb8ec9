package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a Lexis error code.
type ErrorCode string

const (
	ErrInvalidRequest        ErrorCode = "INVALID_REQUEST"         // 400
	ErrMissingField          ErrorCode = "MISSING_FIELD"           // 400
	ErrInvalidQueryParameter ErrorCode = "INVALID_QUERY_PARAMETER" // 400
	ErrUnparseableQuery      ErrorCode = "UNPARSEABLE_QUERY"       // 400
	ErrNotFound              ErrorCode = "NOT_FOUND"               // 404
	ErrMethodNotAllowed      ErrorCode = "METHOD_NOT_ALLOWED"      // 405
	ErrConflict              ErrorCode = "CONFLICT"                // 409
	ErrValueTooLarge         ErrorCode = "VALUE_TOO_LARGE"         // 413
	ErrWrongType             ErrorCode = "WRONG_TYPE"              // 422
	ErrConflictingFilters    ErrorCode = "CONFLICTING_FILTERS"     // 422
	ErrInternal              ErrorCode = "INTERNAL"                // 500
)

// LexisError represents a structured error with code, status, and details.
type LexisError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *LexisError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for malformed requests.
func NewInvalidRequest(msg string) *LexisError {
	return &LexisError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewMissingField creates a 400 error for a required field that was not supplied.
func NewMissingField(field string) *LexisError {
	return &LexisError{
		Code:    ErrMissingField,
		Status:  400,
		Message: fmt.Sprintf("missing required field %q", field),
		Details: map[string]any{"field": field},
	}
}

// NewWrongType creates a 422 error for a field supplied with the wrong JSON type.
func NewWrongType(field, want string) *LexisError {
	return &LexisError{
		Code:    ErrWrongType,
		Status:  422,
		Message: fmt.Sprintf("field %q must be a %s", field, want),
		Details: map[string]any{"field": field, "expected_type": want},
	}
}

// NewInvalidQueryParameter creates a 400 error for a bad structured filter parameter.
func NewInvalidQueryParameter(param, reason string) *LexisError {
	return &LexisError{
		Code:    ErrInvalidQueryParameter,
		Status:  400,
		Message: fmt.Sprintf("invalid query parameter %s: %s", param, reason),
		Details: map[string]any{"parameter": param},
	}
}

// NewUnparseableQuery creates a 400 error when no known pattern matches a free-text query.
func NewUnparseableQuery(query string) *LexisError {
	return &LexisError{
		Code:    ErrUnparseableQuery,
		Status:  400,
		Message: "unable to parse natural language query",
		Details: map[string]any{"query": query},
	}
}

// NewConflictingFilters creates a 422 error when a query parses into filters
// that no record could satisfy.
func NewConflictingFilters(query, reason string) *LexisError {
	return &LexisError{
		Code:    ErrConflictingFilters,
		Status:  422,
		Message: fmt.Sprintf("query parsed but resulted in conflicting filters: %s", reason),
		Details: map[string]any{"query": query},
	}
}

// NewNotFound creates a 404 error for when a string is not stored.
func NewNotFound(identifier string) *LexisError {
	return &LexisError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "string does not exist in the system",
		Details: map[string]any{"identifier": identifier},
	}
}

// NewRouteNotFound creates a 404 error for a path no route serves.
func NewRouteNotFound(path string) *LexisError {
	return &LexisError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "route not found",
		Details: map[string]any{"path": path},
	}
}

// NewMethodNotAllowed creates a 405 error for a known path with an unsupported method.
func NewMethodNotAllowed(method string) *LexisError {
	return &LexisError{
		Code:    ErrMethodNotAllowed,
		Status:  405,
		Message: fmt.Sprintf("method %s not allowed", method),
		Details: map[string]any{"method": method},
	}
}

// NewConflict creates a 409 error for content that is already stored.
func NewConflict(id string) *LexisError {
	return &LexisError{
		Code:    ErrConflict,
		Status:  409,
		Message: "string already exists in the system",
		Details: map[string]any{"id": id},
	}
}

// NewValueTooLarge creates a 413 error when a value exceeds the configured limit.
func NewValueTooLarge(max, actual int) *LexisError {
	return &LexisError{
		Code:    ErrValueTooLarge,
		Status:  413,
		Message: fmt.Sprintf("value exceeds maximum size: %d chars (max %d)", actual, max),
		Details: map[string]any{"max_chars": max, "actual_chars": actual},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
// The message stays generic; the cause is kept in Details for logging.
func NewInternal(err error) *LexisError {
	details := map[string]any{}
	if err != nil {
		details["internal_error"] = err.Error()
	}
	return &LexisError{
		Code:    ErrInternal,
		Status:  500,
		Message: "an internal error occurred",
		Details: details,
	}
}

// As returns the LexisError in err's chain, or wraps err as INTERNAL.
func As(err error) *LexisError {
	var lErr *LexisError
	if stderrors.As(err, &lErr) {
		return lErr
	}
	return NewInternal(err)
}

// Is checks if an error is a LexisError with the given code.
func Is(err error, code ErrorCode) bool {
	var lErr *LexisError
	if stderrors.As(err, &lErr) {
		return lErr.Code == code
	}
	return false
}
