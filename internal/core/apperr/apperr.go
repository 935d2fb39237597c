package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services and repositories. Handlers map
// these onto HTTP status codes at the boundary; raw store errors never
// reach clients.
var (
	ErrNotFound           = errors.New("not found")
	ErrInUse              = errors.New("resource is referenced by other records")
	ErrDuplicate          = errors.New("duplicate record")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAccount    = errors.New("account is not active")
)

// ValidationError reports malformed or missing input detected past the
// declarative request validation layer.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validation builds a ValidationError with a formatted message.
func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// TransitionError reports an illegal status transition on an entity with
// a gated state machine.
type TransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s status cannot change from %q to %q", e.Entity, e.From, e.To)
}

// IsTransition reports whether err is a TransitionError.
func IsTransition(err error) bool {
	var te *TransitionError
	return errors.As(err, &te)
}
