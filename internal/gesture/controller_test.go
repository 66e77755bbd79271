package gesture_test

import (
	"errors"
	"math"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/remixer/internal/bus"
	"github.com/san-kum/remixer/internal/control"
	"github.com/san-kum/remixer/internal/gesture"
	"github.com/san-kum/remixer/internal/sensor"
)

type stepLog struct {
	mu     sync.Mutex
	deltas []int
}

func (s *stepLog) Nudge(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deltas = append(s.deltas, delta)
}

type countingSub struct{ closed int }

func (c *countingSub) Close() error { c.closed++; return nil }

type fakeSource struct {
	missing  map[sensor.Kind]bool
	fail     error
	handlers map[sensor.Kind]sensor.Handler
	subs     []*countingSub
}

func (f *fakeSource) Subscribe(kind sensor.Kind, h sensor.Handler) (sensor.Subscription, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	if f.missing[kind] {
		return nil, sensor.ErrUnavailable
	}
	if f.handlers == nil {
		f.handlers = make(map[sensor.Kind]sensor.Handler)
	}
	f.handlers[kind] = h
	sub := &countingSub{}
	f.subs = append(f.subs, sub)
	return sub, nil
}

var _ = Describe("Controller", func() {
	var (
		rec          *bus.Recorder
		speed, pitch *stepLog
		c            *gesture.Controller
	)

	BeforeEach(func() {
		rec = bus.NewRecorder()
		speed, pitch = &stepLog{}, &stepLog{}
		c = gesture.NewController(gesture.DefaultConfig(), rec, speed, pitch, nil)
	})

	It("emits exactly two restarts for the debounce sequence", func() {
		for _, s := range []sensor.Sample{
			accel(0, 0, 0, 0),
			accel(100, 15, 0, 0),
			accel(500, -5, 0, 0),
			accel(1200, 15, 0, 0),
		} {
			c.HandleAcceleration(s)
		}
		Expect(rec.Triggers("restart")).To(Equal(2))

		stats := c.Stats()
		Expect(stats.AccelSamples).To(Equal(int64(4)))
		Expect(stats.ShakesDetected).To(Equal(int64(3)))
		Expect(stats.ShakesSuppressed).To(Equal(int64(1)))
		Expect(stats.Triggers).To(Equal(int64(2)))
	})

	It("suppresses shakes right after a manual restart", func() {
		c.Restart(1000)
		c.HandleAcceleration(accel(1100, 0, 0, 0))
		c.HandleAcceleration(accel(1500, 40, 0, 0))
		Expect(rec.Triggers("restart")).To(Equal(1))

		c.HandleAcceleration(accel(2000, 0, 0, 0))
		Expect(rec.Triggers("restart")).To(Equal(2))
	})

	It("nudges speed from Z and pitch from Y", func() {
		c.HandleOrientation(orient(0, 0, 0, 0))
		c.HandleOrientation(orient(20, 0, 0.2, 0.1))
		c.HandleOrientation(orient(40, 0, 0.2, -0.1))

		Expect(speed.deltas).To(Equal([]int{5, -10}))
		Expect(pitch.deltas).To(Equal([]int{10}))
		Expect(rec.Events()).To(BeEmpty())
	})

	It("accumulates nudges on a real slider binding", func() {
		b, err := control.New(control.NewSlider(), 1, 1.0/3, 3, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Position()).To(Equal(500))

		ctl := gesture.NewController(gesture.DefaultConfig(), rec, b, pitch, nil)
		for i, z := range []float64{0, 0.1, -0.1, 0.2} {
			ctl.HandleOrientation(orient(int64(i*20), 0, 0, z))
		}
		Expect(b.Position()).To(Equal(510))
	})

	It("clamps a glitched orientation jump at the slider end", func() {
		b, err := control.New(control.NewSlider(), 1, 1.0/3, 3, true)
		Expect(err).NotTo(HaveOccurred())

		ctl := gesture.NewController(gesture.DefaultConfig(), rec, b, pitch, nil)
		ctl.HandleOrientation(orient(0, 0, 0, 0))
		ctl.HandleOrientation(orient(20, 0, 0, 1e300))
		Expect(b.Position()).To(Equal(control.Resolution))

		ctl.HandleOrientation(orient(40, 0, 0, math.Inf(-1)))
		Expect(b.Position()).To(Equal(control.Resolution))
	})

	It("keeps the streams independent", func() {
		c.HandleAcceleration(accel(0, 0, 0, 0))
		c.HandleOrientation(orient(10, 0, 0, 0))
		c.HandleOrientation(orient(20, 0, 0, 0.04))
		Expect(speed.deltas).To(Equal([]int{2}))
		Expect(rec.Triggers("restart")).To(BeZero())
	})

	Describe("Start and Stop", func() {
		It("subscribes both kinds and closes them once", func() {
			src := &fakeSource{}
			Expect(c.Start(src)).To(Succeed())
			Expect(src.handlers).To(HaveLen(2))

			src.handlers[sensor.Acceleration](accel(0, 0, 0, 0))
			src.handlers[sensor.Acceleration](accel(100, 25, 0, 0))
			Expect(rec.Triggers("restart")).To(Equal(1))

			c.Stop()
			c.Stop()
			for _, sub := range src.subs {
				Expect(sub.closed).To(Equal(1))
			}
		})

		It("degrades gracefully when a sensor is missing", func() {
			src := &fakeSource{missing: map[sensor.Kind]bool{sensor.Orientation: true}}
			Expect(c.Start(src)).To(Succeed())
			Expect(src.handlers).To(HaveKey(sensor.Acceleration))
			Expect(src.handlers).NotTo(HaveKey(sensor.Orientation))
			c.Stop()
		})

		It("returns other subscription errors", func() {
			boom := errors.New("driver crashed")
			Expect(c.Start(&fakeSource{fail: boom})).To(MatchError(boom))
		})

		It("allows Stop without Start", func() {
			Expect(c.Stop).NotTo(Panic())
		})
	})
})
