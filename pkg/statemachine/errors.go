package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidState      = errors.New("invalid state: state cannot be empty")
	ErrInvalidTransition = errors.New("invalid transition: from and to cannot be empty")
)

// NoTransitionError reports a transition that the table does not allow.
type NoTransitionError struct {
	From State
	To   State
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("no transition available from state '%s' to state '%s'", e.From, e.To)
}

// IsNoTransitionError reports whether err is a *NoTransitionError.
func IsNoTransitionError(err error) bool {
	var target *NoTransitionError
	return errors.As(err, &target)
}
