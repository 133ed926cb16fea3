package neta

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the engines. The command router maps them to
// user-facing messages; they are never surfaced as transport errors.
var (
	// ErrNotInitialized means an operation needs state (a wizard session,
	// an auto session) that does not exist yet.
	ErrNotInitialized = errors.New("not initialized")

	// ErrInvalidStep means a step id is absent from the catalog.
	ErrInvalidStep = errors.New("invalid step")

	// ErrInvalidAnswer means an answer does not match the step's shape.
	ErrInvalidAnswer = errors.New("invalid answer")

	// ErrOutOfOrder means a pipeline step ran before its predecessor.
	ErrOutOfOrder = errors.New("step out of order")

	// ErrSessionCompleted means the session already reached its terminal state.
	ErrSessionCompleted = errors.New("session already completed")

	// ErrInvalidRequest means the caller's arguments are malformed.
	ErrInvalidRequest = errors.New("invalid request")
)

// Error is a user-facing failure: Msg is shown to the caller as is and Kind
// is the sentinel it matches under errors.Is.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// Errorf returns an *Error of the given kind with a formatted message.
func Errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
