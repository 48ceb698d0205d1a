// Package pointer tracks the single pointer interaction that may be active at
// any moment. Drags, resizes and splitter moves all share one pointer device,
// so only one of them can own it.
package pointer

import "errors"

// ErrBusy is returned when a session is started while another one is active.
var ErrBusy = errors.New("pointer: another session is active")

// Session is an in-progress pointer interaction.
type Session interface {
	// Owner identifies the component that owns the session.
	Owner() string
}

// Tracker holds the active pointer session, if any.
type Tracker struct {
	active Session
}

// Begin installs s as the active session.
func (t *Tracker) Begin(s Session) error {
	if s == nil {
		return errors.New("pointer: nil session")
	}
	if t.active != nil {
		return ErrBusy
	}
	t.active = s
	return nil
}

// End releases the active session and returns it. Releasing always succeeds,
// wherever the pointer is when the button comes up.
func (t *Tracker) End() Session {
	s := t.active
	t.active = nil
	return s
}

// Active returns the active session or nil.
func (t *Tracker) Active() Session {
	return t.active
}

// Busy reports whether a session is active.
func (t *Tracker) Busy() bool {
	return t.active != nil
}
