package remix

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/san-kum/remixer/internal/bus"
	"github.com/san-kum/remixer/internal/config"
	"github.com/san-kum/remixer/internal/control"
	"github.com/san-kum/remixer/internal/gesture"
	"github.com/san-kum/remixer/internal/sensor"
	"go.uber.org/zap"
)

type Session struct {
	id     string
	bus    bus.Bus
	logger *zap.Logger

	speed, pitch               *control.Binding
	speedParam, pitchParam     string
	speedHistory, pitchHistory *History

	// lastSampleMs is the timestamp of the newest sample delivered while
	// resumed. Manual restarts are stamped with it so that the debounce
	// window shares the time base of the sensor stream.
	lastSampleMs atomic.Int64

	mu      sync.Mutex
	gesture config.GestureConfig
	ctl     *gesture.Controller
	stopCtx func() bool
	gen     uint64
	totals  gesture.StatsSnapshot
	closed  bool
}

// New builds both slider bindings from cfg and forwards their values to b.
func New(cfg *config.Config, b bus.Bus, logger *zap.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		id:           uuid.NewString()[:8],
		bus:          b,
		speedParam:   cfg.Sliders.Speed.Param,
		pitchParam:   cfg.Sliders.Pitch.Param,
		speedHistory: NewHistory(DefaultHistory),
		pitchHistory: NewHistory(DefaultHistory),
		gesture:      cfg.Gesture,
	}
	s.logger = logger.Named("session").With(zap.String("session", s.id))

	var err error
	if s.speed, err = s.bind("speed", cfg.Sliders.Speed, s.speedHistory); err != nil {
		return nil, err
	}
	if s.pitch, err = s.bind("pitch", cfg.Sliders.Pitch, s.pitchHistory); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) bind(name string, sc config.SliderConfig, hist *History) (*control.Binding, error) {
	b, err := control.New(control.NewSlider(), sc.Initial, sc.Min, sc.Max, sc.Log,
		control.WithName(name), control.WithLogger(s.logger))
	if err != nil {
		return nil, fmt.Errorf("slider %s: %w", name, err)
	}

	param := sc.Param
	b.AddListener(func(v float64) error {
		hist.Add(v)
		s.bus.SetScalar(param, v)
		return nil
	})

	// The binding settled on its initial value before the listener existed.
	v := b.RealValue()
	hist.Add(v)
	s.bus.SetScalar(param, v)
	return b, nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) Speed() *control.Binding { return s.speed }
func (s *Session) Pitch() *control.Binding { return s.pitch }

func (s *Session) SpeedHistory() []float64 { return s.speedHistory.Values() }
func (s *Session) PitchHistory() []float64 { return s.pitchHistory.Values() }

// Resume starts a freshly calibrated gesture controller on src. A running
// controller is paused first. When ctx ends the session pauses itself.
func (s *Session) Resume(ctx context.Context, src sensor.Source) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.pauseLocked()

	gc := gesture.Config{
		ShakeThreshold: s.gesture.ShakeThreshold,
		Debounce:       s.gesture.Debounce(),
		TiltScale:      s.gesture.TiltScale,
		RestartTrigger: s.gesture.RestartTrigger,
	}
	ctl := gesture.NewController(gc, s.bus, s.speed, s.pitch, s.logger)
	if err := ctl.Start(clockedSource{src: src, last: &s.lastSampleMs}); err != nil {
		return fmt.Errorf("resume: %w", err)
	}
	if s.gesture.RestartOnResume {
		ctl.Restart(s.lastSampleMs.Load())
	}

	s.ctl = ctl
	s.gen++
	gen := s.gen
	s.stopCtx = context.AfterFunc(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// A later Resume owns the controller now.
		if s.gen == gen {
			s.pauseLocked()
		}
	})
	s.logger.Info("resumed")
	return nil
}

// Pause detaches the gesture controller from its sensors. It is safe to
// call when not resumed.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pauseLocked()
}

func (s *Session) pauseLocked() {
	if s.ctl == nil {
		return
	}
	if s.stopCtx != nil {
		s.stopCtx()
		s.stopCtx = nil
	}
	s.ctl.Stop()
	s.totals = addStats(s.totals, s.ctl.Stats())
	s.ctl = nil
	s.logger.Info("paused")
}

func (s *Session) Resumed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctl != nil
}

// Restart fires the restart trigger. While resumed it also opens a new
// debounce window on the gesture controller.
func (s *Session) Restart() {
	s.mu.Lock()
	ctl := s.ctl
	trigger := s.gesture.RestartTrigger
	s.mu.Unlock()

	if ctl != nil {
		ctl.Restart(s.lastSampleMs.Load())
		return
	}
	s.logger.Info("restart", zap.String("trigger", trigger))
	s.bus.Trigger(trigger)
}

// Stats returns the gesture counters accumulated over every resume.
func (s *Session) Stats() gesture.StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctl == nil {
		return s.totals
	}
	return addStats(s.totals, s.ctl.Stats())
}

// ApplyConfig re-applies slider ranges and scales through the binding
// setters. Gesture settings take effect on the next Resume.
func (s *Session) ApplyConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	sp, pc := cfg.Sliders.Speed, cfg.Sliders.Pitch
	err := errors.Join(
		s.speed.SetRange(sp.Min, sp.Max, sp.Log),
		s.pitch.SetRange(pc.Min, pc.Max, pc.Log),
	)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.gesture = cfg.Gesture
	s.mu.Unlock()

	s.logger.Info("config applied",
		zap.Stringer("speed", s.speed.Domain()),
		zap.Stringer("pitch", s.pitch.Domain()))
	return nil
}

// Close pauses the session for good.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.pauseLocked()
	s.closed = true
	return nil
}

func addStats(a, b gesture.StatsSnapshot) gesture.StatsSnapshot {
	return gesture.StatsSnapshot{
		AccelSamples:     a.AccelSamples + b.AccelSamples,
		OrientSamples:    a.OrientSamples + b.OrientSamples,
		ShakesDetected:   a.ShakesDetected + b.ShakesDetected,
		ShakesSuppressed: a.ShakesSuppressed + b.ShakesSuppressed,
		Triggers:         a.Triggers + b.Triggers,
		Nudges:           a.Nudges + b.Nudges,
	}
}

type clockedSource struct {
	src  sensor.Source
	last *atomic.Int64
}

func (c clockedSource) Subscribe(kind sensor.Kind, h sensor.Handler) (sensor.Subscription, error) {
	return c.src.Subscribe(kind, func(smp sensor.Sample) {
		c.last.Store(smp.TimestampMs)
		h(smp)
	})
}
