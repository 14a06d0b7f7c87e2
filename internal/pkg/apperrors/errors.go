package apperrors

import "errors"

// Error kinds. Every error returned by a service unwraps to exactly one of these.
var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("conflict")
	ErrResourceNotFound = errors.New("resource not found")
	ErrStorage          = errors.New("storage error")
)

// Kind is the machine-readable error category.
type Kind string

const (
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindForbidden       Kind = "FORBIDDEN"
	KindValidation      Kind = "VALIDATION_ERROR"
	KindConflict        Kind = "CONFLICT"
	KindNotFound        Kind = "NOT_FOUND"
	KindStorage         Kind = "STORAGE_ERROR"
	KindInternal        Kind = "INTERNAL"
)

// Authentication errors
var (
	ErrTokenMissing  = newReason(ErrUnauthenticated, "TOKEN_MISSING", "authorization token missing")
	ErrTokenInvalid  = newReason(ErrUnauthenticated, "TOKEN_INVALID", "invalid or unknown token")
	ErrWrongPassword = newReason(ErrUnauthenticated, "WRONG_PASSWORD", "wrong password")
)

// Authorization errors
var (
	ErrRecruitmentRequired = newReason(ErrPermissionDenied, "RECRUITMENT_ROLE_REQUIRED", "recruitment administrator role required")
	ErrSystemAdminRequired = newReason(ErrPermissionDenied, "SYSTEM_ADMIN_ROLE_REQUIRED", "system administrator role required")
	ErrStudentRequired     = newReason(ErrPermissionDenied, "STUDENT_ROLE_REQUIRED", "student role required")
	ErrNotOwner            = newReason(ErrPermissionDenied, "NOT_OWNER", "resource belongs to another user")
)

// Conflict errors
var (
	ErrAlreadyApplied      = newReason(ErrConflict, "ALREADY_APPLIED", "student already applied to this exam")
	ErrUsernameExists      = newReason(ErrConflict, "USERNAME_EXISTS", "username already exists")
	ErrSeatAlreadyAssigned = newReason(ErrConflict, "SEAT_ALREADY_ASSIGNED", "application already holds a room assignment")
	ErrNotConfirmed        = newReason(ErrConflict, "APPLICATION_NOT_CONFIRMED", "application is not confirmed")
)

// Not found errors
var (
	ErrUserNotFound        = newReason(ErrResourceNotFound, "USER_NOT_FOUND", "user not found")
	ErrExamNotFound        = newReason(ErrResourceNotFound, "EXAM_NOT_FOUND", "exam not found")
	ErrApplicationNotFound = newReason(ErrResourceNotFound, "APPLICATION_NOT_FOUND", "application not found")
	ErrAssignmentNotFound  = newReason(ErrResourceNotFound, "ROOM_ASSIGNMENT_NOT_FOUND", "room assignment not found")
	ErrThresholdNotFound   = newReason(ErrResourceNotFound, "THRESHOLD_NOT_FOUND", "admission threshold not found")
	ErrSessionNotFound     = newReason(ErrResourceNotFound, "TOKEN_NOT_FOUND", "session not found")
)

// Validation errors
var (
	ErrPasswordTooShort = newReason(ErrValidationFailed, "PASSWORD_TOO_SHORT", "password is too short")
	ErrInvalidRole      = newReason(ErrValidationFailed, "INVALID_ROLE", "unknown role")
	ErrInvalidStatus    = newReason(ErrValidationFailed, "INVALID_STATUS", "unknown application status")
	ErrInvalidDate      = newReason(ErrValidationFailed, "INVALID_DATE", "date must use the YYYY-MM-DD format")
)

func newReason(kind error, code, message string) *CustomError {
	return &CustomError{Err: kind, Code: code, Message: message}
}

// NewValidationError creates a validation error with a reason code for the offending field.
func NewValidationError(code, message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Code:    code,
		Message: message,
	}
}

// NewStorageError wraps a driver failure. The cause stays reachable through errors.As.
func NewStorageError(op string, cause error) error {
	return &CustomError{
		Err:     ErrStorage,
		Code:    "STORAGE_FAILURE",
		Message: "storage failure while " + op,
		Cause:   cause,
	}
}

// KindOf classifies err into one of the error kinds.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, ErrPermissionDenied):
		return KindForbidden
	case errors.Is(err, ErrValidationFailed):
		return KindValidation
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrResourceNotFound):
		return KindNotFound
	case errors.Is(err, ErrStorage):
		return KindStorage
	default:
		return KindInternal
	}
}

// ReasonCode returns the most specific reason code carried by err, falling back to its kind.
func ReasonCode(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Code != "" {
		return ce.Code
	}
	return string(KindOf(err))
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Cause   error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = "unknown error"
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the underlying cause.
func (e *CustomError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Is matches reason errors by code so copies made by WithDetails still compare equal.
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code && errors.Is(e.Err, t.Err)
}

// WithDetails returns a copy of the error carrying context details.
// Package-level reason errors are shared, so they are never mutated in place.
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	cp := *e
	cp.Details = details
	return &cp
}
