package session

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when an answer is empty or whitespace only.
	ErrEmptyInput = errors.New("empty answer")

	// ErrHalted is returned for any operation after a fatal init failure.
	ErrHalted = errors.New("session halted")

	// ErrNotReady is returned while the session is being established.
	ErrNotReady = errors.New("session not ready")

	// ErrInitDropped is the cause of a fatal error when the init response
	// was superseded before a session existed.
	ErrInitDropped = errors.New("initialization response dropped")

	// ErrNoWord is returned when the working set has no current word.
	ErrNoWord = errors.New("no current word")

	// ErrNoVerdict is returned when checking answers in a mode that has no
	// verdict flow.
	ErrNoVerdict = errors.New("mode does not check answers")

	// ErrNoDecision is returned when a review choice is made while no
	// decision is pending.
	ErrNoDecision = errors.New("no review decision pending")
)

// InitializationError is fatal: the session could not be established and
// interactive features are halted.
type InitializationError struct {
	Err error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("initialize session: %v", e.Err)
}

func (e *InitializationError) Unwrap() error { return e.Err }

// ActionError is a recoverable failure of a user action. State is left
// unchanged so the action can be retried.
type ActionError struct {
	Action string
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Action, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// ProtocolError reports a response the client does not understand. It is
// logged and causes no state change.
type ProtocolError struct {
	Action string
	Detail string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: unrecognized response: %s", e.Action, e.Detail)
}
