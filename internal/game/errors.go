package game

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means a code or id does not resolve. It always takes priority
	// over a conflict.
	ErrNotFound = errors.New("not found")
	// ErrConflict means the request is well formed but the game's current
	// state does not allow it.
	ErrConflict = errors.New("conflict")
	// ErrGone means the request can never succeed again for this code.
	ErrGone = errors.New("gone")
	// ErrInvalid means the input itself is malformed, whatever the game state.
	ErrInvalid = errors.New("invalid")
)

// RuleError carries a message that is safe to show to the caller.
type RuleError struct {
	Err     error
	Message string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, e.Message)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

func NotFound(message string) error {
	return &RuleError{Err: ErrNotFound, Message: message}
}

func Conflict(message string) error {
	return &RuleError{Err: ErrConflict, Message: message}
}

func Conflictf(format string, args ...any) error {
	return Conflict(fmt.Sprintf(format, args...))
}

func Invalidf(format string, args ...any) error {
	return &RuleError{Err: ErrInvalid, Message: fmt.Sprintf(format, args...)}
}

func Gone(message string) error {
	return &RuleError{Err: ErrGone, Message: message}
}

// Message returns the caller-facing message of a rule error.
func Message(err error) (string, bool) {
	var ruleErr *RuleError
	if errors.As(err, &ruleErr) {
		return ruleErr.Message, true
	}
	return "", false
}
