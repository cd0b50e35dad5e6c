package utils

import "net/http"

// AppError is the error type handlers know how to translate into an
// HTTP status plus a JSON failure body.
type AppError struct {
	StatusCode int
	Message    string
}

func (e *AppError) Error() string {
	return e.Message
}

// NewValidationError reports a missing or malformed required field.
// No side effect has taken place when this is returned.
func NewValidationError(message string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Message: message}
}

// NewDuplicateError reports that a byte-identical file is already stored.
func NewDuplicateError(message string) *AppError {
	return &AppError{StatusCode: http.StatusConflict, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Message: message}
}

// NewStorageError wraps a record-store or filesystem failure. The
// underlying cause is logged at the call site, never sent to the client.
func NewStorageError(message string) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Message: message}
}

func IsNotFound(err error) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.StatusCode == http.StatusNotFound
}

func IsDuplicate(err error) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.StatusCode == http.StatusConflict
}

func IsValidation(err error) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.StatusCode == http.StatusBadRequest
}
