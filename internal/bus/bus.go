// Package bus forwards named scalar updates and triggers to the downstream
// audio engine.
//
// The engine itself is an external collaborator. Implementations here log
// the traffic, publish it over MQTT, or record it in memory. Delivery is
// fire-and-forget: failures are logged, never retried or returned.
package bus

import "time"

// Bus is the parameter surface of the audio engine.
type Bus interface {
	SetScalar(name string, value float64)
	Trigger(name string)
}

type EventKind int

const (
	ScalarEvent EventKind = iota
	TriggerEvent
)

func (k EventKind) String() string {
	if k == TriggerEvent {
		return "trigger"
	}
	return "scalar"
}

type Event struct {
	Kind  EventKind
	Name  string
	Value float64
	At    time.Time
}

// Multi fans every call out to all of its buses in order.
type Multi []Bus

func (m Multi) SetScalar(name string, value float64) {
	for _, b := range m {
		b.SetScalar(name, value)
	}
}

func (m Multi) Trigger(name string) {
	for _, b := range m {
		b.Trigger(name)
	}
}
