package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// notifier coalesces slider change notifications into at most one pending
// ValueMsg. listen never blocks, so it is safe to call while a binding
// holds its write lock.
type notifier struct {
	ch chan struct{}
}

func newNotifier() *notifier {
	return &notifier{ch: make(chan struct{}, 1)}
}

func (n *notifier) listen(float64) error {
	select {
	case n.ch <- struct{}{}:
	default:
	}
	return nil
}

func (n *notifier) pump(ctx context.Context, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-n.ch:
			send(ValueMsg{})
		}
	}
}
