package control

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/san-kum/remixer/internal/rangemap"
	"go.uber.org/zap"
)

var positionDomain = rangemap.Linear(0, Resolution)

// ListenerFunc is called with the real value after every position write.
type ListenerFunc func(value float64) error

// ListenerID identifies a registered listener for removal.
type ListenerID uint64

type listener struct {
	id ListenerID
	fn ListenerFunc
}

// Binding pairs a Discrete control with a real value in [min, max].
type Binding struct {
	name   string
	ctl    Discrete
	logger *zap.Logger

	// writeMu serializes writes from setters, drags and nudges, including
	// the handler pass and listener notification they cause.
	writeMu sync.Mutex

	mu        sync.RWMutex
	domain    rangemap.Domain
	cur       float64
	listeners []listener
	nextID    ListenerID
	onError   func(error)
}

type Option func(*Binding)

func WithName(name string) Option {
	return func(b *Binding) { b.name = name }
}

func WithLogger(l *zap.Logger) Option {
	return func(b *Binding) {
		if l != nil {
			b.logger = l
		}
	}
}

// New binds ctl and sets the initial range and value. It fails if the range
// is invalid or ctl already has a position handler.
func New(ctl Discrete, cur, min, max float64, log bool, opts ...Option) (*Binding, error) {
	b := &Binding{
		name:   "control",
		ctl:    ctl,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}

	d := rangemap.Domain{Lower: min, Upper: max, Log: log}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("control %q: %w", b.name, err)
	}
	if err := ctl.Bind(b.handlePosition); err != nil {
		return nil, fmt.Errorf("control %q: %w", b.name, err)
	}

	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	b.apply(d, cur)
	return b, nil
}

func (b *Binding) Name() string { return b.name }

func (b *Binding) RealValue() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cur
}

func (b *Binding) RealMinimum() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.domain.Lower
}

func (b *Binding) RealMaximum() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.domain.Upper
}

func (b *Binding) LogScale() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.domain.Log
}

func (b *Binding) Domain() rangemap.Domain {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.domain
}

func (b *Binding) Position() int {
	return b.ctl.Position()
}

// SetRealValue clamps v to the range and moves the control to the nearest
// position. NaN is ignored.
func (b *Binding) SetRealValue(v float64) {
	if math.IsNaN(v) {
		b.logger.Warn("ignoring NaN value", zap.String("control", b.name))
		return
	}
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	b.apply(b.Domain(), v)
}

func (b *Binding) SetRealMinimum(min float64) error {
	return b.update(func(d *rangemap.Domain) { d.Lower = min })
}

func (b *Binding) SetRealMaximum(max float64) error {
	return b.update(func(d *rangemap.Domain) { d.Upper = max })
}

func (b *Binding) SetLogScale(log bool) error {
	return b.update(func(d *rangemap.Domain) { d.Log = log })
}

// SetRange replaces both bounds and the scale in one write.
func (b *Binding) SetRange(min, max float64, log bool) error {
	return b.update(func(d *rangemap.Domain) {
		*d = rangemap.Domain{Lower: min, Upper: max, Log: log}
	})
}

func (b *Binding) update(change func(*rangemap.Domain)) error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	b.mu.RLock()
	d, cur := b.domain, b.cur
	b.mu.RUnlock()

	change(&d)
	if err := d.Validate(); err != nil {
		return fmt.Errorf("control %q: %w", b.name, err)
	}
	b.apply(d, cur)
	return nil
}

// Drag moves the control to an absolute position, as a user would.
func (b *Binding) Drag(pos int) {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	b.ctl.SetPosition(pos)
}

// Nudge moves the control by delta steps relative to its current position.
// The read and the write happen under one lock, so concurrent nudges and
// drags are never lost.
func (b *Binding) Nudge(delta int) {
	delta = clampInt(delta, -Resolution, Resolution)
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	b.ctl.SetPosition(b.ctl.Position() + delta)
}

func (b *Binding) AddListener(fn ListenerFunc) ListenerID {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.listeners = append(b.listeners, listener{id: b.nextID, fn: fn})
	return b.nextID
}

func (b *Binding) RemoveListener(id ListenerID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, l := range b.listeners {
		if l.id == id {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// OnError installs a hook that receives listener failures.
func (b *Binding) OnError(fn func(error)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onError = fn
}

// apply must be called with writeMu held.
func (b *Binding) apply(d rangemap.Domain, cur float64) {
	cur = d.Clamp(cur)

	b.mu.Lock()
	b.domain = d
	b.cur = cur
	b.mu.Unlock()

	b.ctl.SetMax(positionOf(d, d.Upper))
	b.ctl.SetPosition(positionOf(d, cur))
}

func (b *Binding) handlePosition(pos int) {
	b.mu.Lock()
	v := b.domain.Clamp(rangemap.Map(positionDomain, float64(pos), b.domain))
	b.cur = v
	ls := make([]listener, len(b.listeners))
	copy(ls, b.listeners)
	onError := b.onError
	b.mu.Unlock()

	if err := b.notify(ls, v); err != nil {
		b.logger.Warn("listener failed", zap.String("control", b.name), zap.Error(err))
		if onError != nil {
			onError(err)
		}
	}
}

func (b *Binding) notify(ls []listener, v float64) error {
	var errs []error
	for _, l := range ls {
		if err := b.call(l, v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *Binding) call(l listener, v float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ListenerError{Binding: b.name, ID: l.id, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if e := l.fn(v); e != nil {
		return &ListenerError{Binding: b.name, ID: l.id, Err: e}
	}
	return nil
}

func positionOf(d rangemap.Domain, v float64) int {
	return int(math.Round(rangemap.Map(d, d.Clamp(v), positionDomain)))
}
