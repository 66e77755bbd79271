package control

import (
	"errors"
	"fmt"
)

var (
	// ErrHandlerBound indicates an attempt to replace a control's position handler.
	ErrHandlerBound = errors.New("control: position handler already bound, use AddListener")

	// ErrListenerFailed marks errors raised by change listeners.
	ErrListenerFailed = errors.New("control: listener failed")
)

// ListenerError wraps a failure from a single listener.
type ListenerError struct {
	Binding string
	ID      ListenerID
	Err     error
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("control: listener %d on %q: %v", e.ID, e.Binding, e.Err)
}

func (e *ListenerError) Unwrap() []error {
	return []error{ErrListenerFailed, e.Err}
}
