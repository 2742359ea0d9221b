package errors

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// ErrorCode identifies a machine-checkable error category.
type ErrorCode string

const (
	// Generic errors
	ErrCodeInternal   ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"

	// Entitlement errors
	ErrCodeQuotaExhausted ErrorCode = "QUOTA_EXHAUSTED"

	// Resource errors
	ErrCodeDreamNotFound   ErrorCode = "DREAM_NOT_FOUND"
	ErrCodeProfileNotFound ErrorCode = "PROFILE_NOT_FOUND"

	// Storage errors
	ErrCodeDatabaseError       ErrorCode = "DATABASE_ERROR"
	ErrCodeDatabaseUnavailable ErrorCode = "DATABASE_UNAVAILABLE"
	ErrCodeCacheError          ErrorCode = "CACHE_ERROR"

	// External collaborator errors
	ErrCodeTextGeneration ErrorCode = "TEXT_GENERATION_ERROR"
)

// AppError is the application-wide typed error.
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Context   map[string]string      `json:"context,omitempty"`
	Stack     []string               `json:"-"`
	Timestamp time.Time              `json:"timestamp"`
	RequestID string                 `json:"request_id,omitempty"`
	UserID    string                 `json:"user_id,omitempty"`
	Cause     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether the error is a "not found" error.
func (e *AppError) IsNotFound() bool {
	return e.Code == ErrCodeNotFound ||
		e.Code == ErrCodeDreamNotFound ||
		e.Code == ErrCodeProfileNotFound
}

// IsQuotaExhausted reports whether the error is the entitlement-limit error.
func (e *AppError) IsQuotaExhausted() bool {
	return e.Code == ErrCodeQuotaExhausted
}

// IsValidation reports whether the error is a validation error.
func (e *AppError) IsValidation() bool {
	return e.Code == ErrCodeValidation || e.Code == ErrCodeBadRequest
}

// IsInternal reports whether the error is an internal/collaborator error.
func (e *AppError) IsInternal() bool {
	return e.Code == ErrCodeInternal ||
		e.Code == ErrCodeDatabaseError ||
		e.Code == ErrCodeCacheError ||
		e.Code == ErrCodeTextGeneration
}

// WithContext attaches a request-scoped key/value pair.
func (e *AppError) WithContext(key, value string) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// WithDetail attaches structured detail information.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithRequestID attaches the request ID.
func (e *AppError) WithRequestID(requestID string) *AppError {
	e.RequestID = requestID
	return e
}

// WithUserID attaches the owning user ID.
func (e *AppError) WithUserID(userID string) *AppError {
	e.UserID = userID
	return e
}

// New creates a new application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
		Stack:     getStackTrace(),
	}
}

// Wrap wraps an existing error.
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

func getStackTrace() []string {
	var stack []string
	for i := 2; ; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		if strings.Contains(fn.Name(), "internal/common/errors") {
			continue
		}
		stack = append(stack, fmt.Sprintf("%s:%d %s", file, line, fn.Name()))
		if len(stack) >= 10 {
			break
		}
	}
	return stack
}

// Constructors for the recurring error shapes.

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, reason string) *AppError {
	return New(ErrCodeValidation, fmt.Sprintf("Validation failed for field '%s': %s", field, reason)).
		WithDetail("field", field).
		WithDetail("reason", reason)
}

// NewQuotaExhaustedError creates the free-tier limit error.
func NewQuotaExhaustedError(userID string, limit int) *AppError {
	return New(ErrCodeQuotaExhausted, "Free analysis limit reached, premium required").
		WithUserID(userID).
		WithDetail("limit", limit)
}

// NewDreamNotFoundError creates a "dream not found" error.
func NewDreamNotFoundError(dreamID string) *AppError {
	return New(ErrCodeDreamNotFound, fmt.Sprintf("Dream not found: %s", dreamID)).
		WithDetail("dream_id", dreamID)
}

// NewDatabaseError creates a database error.
func NewDatabaseError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeDatabaseError, fmt.Sprintf("Database operation failed: %s", operation)).
		WithDetail("operation", operation)
}

// NewDatabaseUnavailableError creates the "store never initialized" error.
func NewDatabaseUnavailableError() *AppError {
	return New(ErrCodeDatabaseUnavailable, "Database is currently unavailable")
}

// NewCacheError creates a cache error.
func NewCacheError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeCacheError, fmt.Sprintf("Cache operation failed: %s", operation)).
		WithDetail("operation", operation)
}

// NewTextGenerationError creates a text-generation collaborator error.
func NewTextGenerationError(stage string, err error) *AppError {
	return Wrap(err, ErrCodeTextGeneration, fmt.Sprintf("Text generation failed at stage: %s", stage)).
		WithDetail("stage", stage)
}

// IsAppError reports whether err is an AppError.
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// AsAppError converts err to an AppError when possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if err != nil {
		appErr, _ = err.(*AppError)
	}
	return appErr, appErr != nil
}
