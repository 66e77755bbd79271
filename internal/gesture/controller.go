package gesture

import (
	"errors"
	"sync"

	"github.com/san-kum/remixer/internal/sensor"
	"go.uber.org/zap"
)

// Nudger moves a slider by a number of steps relative to its position.
type Nudger interface {
	Nudge(delta int)
}

// Triggerer fires named discrete events.
type Triggerer interface {
	Trigger(name string)
}

// Controller feeds acceleration into a ShakeDetector and orientation into a
// TiltTracker. A fresh Controller starts uncalibrated on both streams.
type Controller struct {
	cfg    Config
	sink   Triggerer
	speed  Nudger
	pitch  Nudger
	logger *zap.Logger

	// shakeMu guards shake against Restart calls from outside the
	// acceleration stream.
	shakeMu sync.Mutex
	shake   *ShakeDetector

	// tilt is only touched by the orientation stream.
	tilt *TiltTracker

	stats Stats

	subsMu sync.Mutex
	subs   []sensor.Subscription
}

func NewController(cfg Config, sink Triggerer, speed, pitch Nudger, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		cfg:    cfg,
		sink:   sink,
		speed:  speed,
		pitch:  pitch,
		logger: logger.Named("gesture"),
		shake:  NewShakeDetector(cfg.ShakeThreshold, cfg.Debounce.Milliseconds()),
		tilt:   NewTiltTracker(cfg.TiltScale),
	}
}

// HandleAcceleration is the acceleration stream handler.
func (c *Controller) HandleAcceleration(s sensor.Sample) {
	c.stats.accelSamples.Add(1)

	c.shakeMu.Lock()
	res := c.shake.Step(s)
	c.shakeMu.Unlock()

	switch res {
	case ShakeFired:
		c.stats.shakes.Add(1)
		c.fire(s.TimestampMs)
	case ShakeSuppressed:
		c.stats.shakes.Add(1)
		c.stats.suppressed.Add(1)
		c.logger.Debug("shake suppressed", zap.Int64("ts", s.TimestampMs))
	}
}

// HandleOrientation is the orientation stream handler.
func (c *Controller) HandleOrientation(s sensor.Sample) {
	c.stats.orientSamples.Add(1)

	tilt, ok := c.tilt.Step(s)
	if !ok {
		c.logger.Debug("orientation sample not applied", zap.Bool("calibrated", c.tilt.Calibrated))
		return
	}
	if tilt.Speed != 0 {
		c.speed.Nudge(tilt.Speed)
		c.stats.nudges.Add(1)
	}
	if tilt.Pitch != 0 {
		c.pitch.Nudge(tilt.Pitch)
		c.stats.nudges.Add(1)
	}
}

// Restart fires the restart trigger unconditionally and starts a new
// debounce window at atMs.
func (c *Controller) Restart(atMs int64) {
	c.shakeMu.Lock()
	c.shake.Mark(atMs)
	c.shakeMu.Unlock()
	c.fire(atMs)
}

func (c *Controller) fire(atMs int64) {
	c.stats.triggers.Add(1)
	c.logger.Info("restart", zap.String("trigger", c.cfg.RestartTrigger), zap.Int64("ts", atMs))
	c.sink.Trigger(c.cfg.RestartTrigger)
}

// Start subscribes both streams on src. A missing sensor kind is logged and
// skipped; only other subscription errors are returned.
func (c *Controller) Start(src sensor.Source) error {
	streams := []struct {
		kind sensor.Kind
		h    sensor.Handler
	}{
		{sensor.Acceleration, c.HandleAcceleration},
		{sensor.Orientation, c.HandleOrientation},
	}

	for _, st := range streams {
		sub, err := src.Subscribe(st.kind, st.h)
		if errors.Is(err, sensor.ErrUnavailable) {
			c.logger.Warn("sensor unavailable, stream disabled", zap.String("kind", string(st.kind)), zap.Error(err))
			continue
		}
		if err != nil {
			c.Stop()
			return err
		}
		c.subsMu.Lock()
		c.subs = append(c.subs, sub)
		c.subsMu.Unlock()
	}
	return nil
}

// Stop closes every subscription. It is safe to call repeatedly or without
// Start.
func (c *Controller) Stop() {
	c.subsMu.Lock()
	subs := c.subs
	c.subs = nil
	c.subsMu.Unlock()

	for _, sub := range subs {
		if err := sub.Close(); err != nil {
			c.logger.Warn("unsubscribe failed", zap.Error(err))
		}
	}
}

func (c *Controller) Stats() StatsSnapshot {
	return c.stats.Snapshot()
}
