package utils

import (
	"errors"
	"net/http"
)

// Store-level failures, translated once by the repositories so services never
// look at driver-specific error types.
var (
	ErrDuplicateKey        = errors.New("duplicate_key")
	ErrForeignKeyViolation = errors.New("foreign_key_violation")
)

// AppError carries a stable code and a public message from the services to
// the controllers. Err, when set, is the internal cause and is only logged.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NotFoundError(message string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Code: ErrCodeNotFound, Message: message}
}

func ConflictError(message string, err error) *AppError {
	return &AppError{StatusCode: http.StatusConflict, Code: ErrCodeConflict, Message: message, Err: err}
}

func InvalidArgumentError(message string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Code: ErrCodeInvalidArgument, Message: message}
}

func InternalError(message string, err error) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Code: ErrCodeInternal, Message: message, Err: err}
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}

// ErrorCode returns the stable code of an AppError, or "" for anything else.
func ErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
