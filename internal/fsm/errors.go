package fsm

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownState        = errors.New("unknown state")
	ErrIllegalTransition   = errors.New("illegal transition")
	ErrDuplicateState      = errors.New("duplicate state")
	ErrReentrantTransition = errors.New("re-entrant transition")
)

// UnknownStateError indicates a state id that was never registered.
type UnknownStateError struct {
	State StateID
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("unknown state %q", e.State)
}

func (e *UnknownStateError) Unwrap() error { return ErrUnknownState }

// IllegalTransitionError indicates a move with no edge in the transition graph.
type IllegalTransitionError struct {
	From StateID
	To   StateID
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal transition %q -> %q", e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error { return ErrIllegalTransition }

// DuplicateStateError indicates a second registration of the same id.
type DuplicateStateError struct {
	State StateID
}

func (e *DuplicateStateError) Error() string {
	return fmt.Sprintf("state %q already registered", e.State)
}

func (e *DuplicateStateError) Unwrap() error { return ErrDuplicateState }

// ReentrantTransitionError indicates ChangeState was called from inside a
// hook or listener of the transition still in progress.
type ReentrantTransitionError struct {
	Target StateID
}

func (e *ReentrantTransitionError) Error() string {
	return fmt.Sprintf("change to %q requested while another transition is in progress", e.Target)
}

func (e *ReentrantTransitionError) Unwrap() error { return ErrReentrantTransition }
