package domain

import "errors"

// Credential and role errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownRole        = errors.New("unknown role")
	ErrPortalMismatch     = errors.New("portal access denied")
	ErrIdentityExists     = errors.New("identity already registered")
)

// Resolution errors
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoActiveSession = errors.New("no active remote session")
	ErrMirrorMiss      = errors.New("session mirror entry not found")
)

// Service errors
var (
	ErrRemoteUnavailable = errors.New("identity service unavailable")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrUnauthorized      = errors.New("unauthorized")
)

// TransientError marks a failure as retryable: a transport or query error,
// distinct from a confirmed absence such as ErrProfileNotFound. Callers
// branch on IsTransient rather than on the wrapped cause.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	if e.Err != nil {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + ": transient failure"
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// MarkTransient wraps err as a transient failure of the named operation.
func MarkTransient(op string, err error) error {
	return &TransientError{Op: op, Err: err}
}

// IsTransient reports whether err is a retryable transient failure.
func IsTransient(err error) bool {
	var t *TransientError
	return errors.As(err, &t)
}

// FieldError is a pre-flight validation failure tied to a single field,
// surfaced before any remote call is made.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// NewFieldError creates a validation error for a single field.
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}
