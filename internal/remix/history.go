package remix

import "sync"

const DefaultHistory = 120

// History keeps the most recent values of a slider.
type History struct {
	mu     sync.Mutex
	size   int
	values []float64
}

func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistory
	}
	return &History{size: size, values: make([]float64, 0, size)}
}

func (h *History) Add(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.values) == h.size {
		copy(h.values, h.values[1:])
		h.values = h.values[:h.size-1]
	}
	h.values = append(h.values, v)
}

func (h *History) Values() []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]float64, len(h.values))
	copy(out, h.values)
	return out
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.values)
}
