package bus

import (
	"sync"
	"time"
)

// Recorder keeps every event in arrival order. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	now    func() time.Time
}

func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

func (r *Recorder) SetScalar(name string, value float64) {
	r.add(Event{Kind: ScalarEvent, Name: name, Value: value})
}

func (r *Recorder) Trigger(name string) {
	r.add(Event{Kind: TriggerEvent, Name: name})
}

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.At = r.now()
	r.events = append(r.events, e)
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Scalars returns the values sent for name, oldest first.
func (r *Recorder) Scalars(name string) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []float64
	for _, e := range r.events {
		if e.Kind == ScalarEvent && e.Name == name {
			out = append(out, e.Value)
		}
	}
	return out
}

// Triggers counts the triggers fired for name.
func (r *Recorder) Triggers(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == TriggerEvent && e.Name == name {
			n++
		}
	}
	return n
}

func (r *Recorder) Last(name string) (float64, bool) {
	vals := r.Scalars(name)
	if len(vals) == 0 {
		return 0, false
	}
	return vals[len(vals)-1], true
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
