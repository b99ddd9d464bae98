package appointment

import (
	"errors"
	"fmt"
)

var (
	// ErrConflict: the guarded update found the row already changed by the
	// other actor. The caller must re-fetch; the core never retries.
	ErrConflict = errors.New("appointment changed concurrently")

	ErrNotFound = errors.New("appointment not found")
)

type InvalidTransitionError struct {
	Current Status
	Action  Action
	Actor   Actor
}

func (e *InvalidTransitionError) Error() string {
	if e.Actor != "" {
		return fmt.Sprintf("action %q not allowed for actor %q in status %q", e.Action, e.Actor, e.Current)
	}
	return fmt.Sprintf("action %q not allowed in status %q", e.Action, e.Current)
}

func IsInvalidTransition(err error) bool {
	var ite *InvalidTransitionError
	return errors.As(err, &ite)
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
