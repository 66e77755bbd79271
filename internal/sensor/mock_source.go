package sensor

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// MockSource generates smoothly drifting orientation and a resting
// accelerometer with a periodic shake spike.
type MockSource struct {
	Interval   time.Duration
	ShakeEvery time.Duration

	start   time.Time
	missing map[Kind]bool
}

func NewMockSource(interval time.Duration) *MockSource {
	if interval <= 0 {
		interval = 20 * time.Millisecond
	}
	return &MockSource{
		Interval:   interval,
		ShakeEvery: 4 * time.Second,
		start:      time.Now(),
		missing:    make(map[Kind]bool),
	}
}

// Without makes the source behave as if the device lacked a sensor kind.
func (m *MockSource) Without(kind Kind) *MockSource {
	m.missing[kind] = true
	return m
}

func (m *MockSource) Subscribe(kind Kind, h Handler) (Subscription, error) {
	if m.missing[kind] {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, kind)
	}
	l := newLoop()
	go func() {
		defer close(l.done)
		ticker := time.NewTicker(m.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-l.stop:
				return
			case now := <-ticker.C:
				h(m.Sample(kind, now))
			}
		}
	}()
	return l, nil
}

// Sample returns the synthetic reading of kind at the given wall time.
func (m *MockSource) Sample(kind Kind, at time.Time) Sample {
	elapsed := at.Sub(m.start).Seconds()
	s := Sample{Kind: kind, TimestampMs: at.UnixMilli()}

	switch kind {
	case Acceleration:
		s.X = 0.2 * math.Sin(elapsed*3)
		s.Y = 0.2 * math.Cos(elapsed*2)
		s.Z = 9.81
		if m.ShakeEvery > 0 {
			phase := at.Sub(m.start) % m.ShakeEvery
			if phase < m.Interval {
				s.X += 15
			}
		}
	case Orientation:
		s.X = math.Mod(elapsed*20, 360)
		s.Y = 8 * math.Sin(elapsed*0.5)
		s.Z = 6 * math.Cos(elapsed*0.35)
	}
	return s
}

type loop struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func newLoop() *loop {
	return &loop{stop: make(chan struct{}), done: make(chan struct{})}
}

func (l *loop) Close() error {
	l.once.Do(func() {
		close(l.stop)
		<-l.done
	})
	return nil
}
