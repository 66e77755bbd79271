package control

import "sync"

// Resolution is the number of discrete steps of every slider.
const Resolution = 1000

// PositionHandler receives the position after every write to a control.
type PositionHandler func(pos int)

// Discrete is a control with an integer position in [0, Max()].
//
// SetPosition clamps its argument and then calls the bound handler, even if
// the position did not change. Exactly one handler can be bound.
type Discrete interface {
	Position() int
	Max() int
	SetMax(max int)
	SetPosition(pos int)
	Bind(h PositionHandler) error
}

// Slider is an in-memory Discrete control. It is safe for concurrent use.
type Slider struct {
	mu      sync.Mutex
	pos     int
	max     int
	handler PositionHandler
}

func NewSlider() *Slider {
	return &Slider{max: Resolution}
}

func (s *Slider) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

func (s *Slider) Max() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.max
}

// SetMax limits the reachable positions. The current position is pulled
// down if needed; the handler is not called.
func (s *Slider) SetMax(max int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.max = clampInt(max, 0, Resolution)
	if s.pos > s.max {
		s.pos = s.max
	}
}

func (s *Slider) SetPosition(pos int) {
	s.mu.Lock()
	s.pos = clampInt(pos, 0, s.max)
	pos = s.pos
	h := s.handler
	s.mu.Unlock()

	if h != nil {
		h(pos)
	}
}

func (s *Slider) Bind(h PositionHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handler != nil {
		return ErrHandlerBound
	}
	s.handler = h
	return nil
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
