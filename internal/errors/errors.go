package errors

import "fmt"

// Error codes
const (
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeInvalidInput        = "INVALID_INPUT"
	ErrCodeDuplicateCompletion = "DUPLICATE_COMPLETION"
	ErrCodeAlreadyCompleted    = "ALREADY_COMPLETED"
	ErrCodeConflict            = "CONFLICT"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeInternal            = "INTERNAL_ERROR"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "INVALID_INPUT")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewInvalidInputError creates a new INVALID_INPUT error
func NewInvalidInputError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidInput,
		Message: fmt.Sprintf("invalid %s: %s", field, reason),
		Status:  400,
	}
}

// NewDuplicateCompletionError signals a lesson already completed today
func NewDuplicateCompletionError(lessonID string) *AppError {
	return &AppError{
		Code:    ErrCodeDuplicateCompletion,
		Message: fmt.Sprintf("lesson %s already completed today", lessonID),
		Status:  409,
	}
}

// NewAlreadyCompletedError signals a placement test re-submitted without a retake
func NewAlreadyCompletedError(currentLevel string) *AppError {
	return &AppError{
		Code:    ErrCodeAlreadyCompleted,
		Message: fmt.Sprintf("placement test already completed at level %s", currentLevel),
		Status:  409,
	}
}

// NewConflictError creates a new CONFLICT error
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: message,
		Status:  409,
	}
}

// NewUnauthorizedError creates a new UNAUTHORIZED error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Status:  401,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}
