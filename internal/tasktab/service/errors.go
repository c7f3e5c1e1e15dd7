package service

import "errors"

var (
	// ErrInvalidCredentials is returned for both unknown handles and wrong
	// secrets so login responses carry no enumeration signal. The logs keep
	// the distinction for operators.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrHandleTaken is returned when registering a handle that already
	// exists, whether caught by the pre-check or by the store's UNIQUE index.
	ErrHandleTaken = errors.New("handle_taken")
)

// ValidationError reports a client-fixable input problem. The message is
// safe to surface to the client.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationError(msg string) error { return &ValidationError{Msg: msg} }
