package gesture_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/remixer/internal/gesture"
	"github.com/san-kum/remixer/internal/sensor"
)

func accel(ts int64, x, y, z float64) sensor.Sample {
	return sensor.Sample{Kind: sensor.Acceleration, TimestampMs: ts, X: x, Y: y, Z: z}
}

var _ = Describe("ShakeDetector", func() {
	var d *gesture.ShakeDetector

	BeforeEach(func() {
		d = gesture.NewShakeDetector(10, 1000)
	})

	It("only calibrates on the first sample", func() {
		Expect(d.Calibrated).To(BeFalse())
		Expect(d.Step(accel(0, 50, 50, 50))).To(Equal(gesture.NoShake))
		Expect(d.Calibrated).To(BeTrue())
		Expect(d.Last).To(Equal([3]float64{50, 50, 50}))
	})

	It("ignores non-finite samples", func() {
		d.Step(accel(0, 0, 0, 0))
		Expect(d.Step(accel(100, math.NaN(), 0, 0))).To(Equal(gesture.NoShake))
		Expect(d.Step(accel(200, 0, math.Inf(1), 0))).To(Equal(gesture.NoShake))
		Expect(d.Last).To(Equal([3]float64{0, 0, 0}))
		Expect(d.Step(accel(300, 15, 0, 0))).To(Equal(gesture.ShakeFired))
	})

	It("ignores changes below the threshold on every axis", func() {
		d.Step(accel(0, 0, 0, 0))
		Expect(d.Step(accel(100, 9.9, -9.9, 9.9))).To(Equal(gesture.NoShake))
	})

	It("fires when a single axis reaches the threshold", func() {
		d.Step(accel(0, 0, 0, 0))
		Expect(d.Step(accel(100, 0, 0, -10))).To(Equal(gesture.ShakeFired))
		Expect(d.LastTriggerMs).To(Equal(int64(100)))
	})

	It("compares against the previous sample, not the first", func() {
		d.Step(accel(0, 0, 0, 0))
		d.Step(accel(100, 8, 0, 0))
		d.Step(accel(200, 16, 0, 0))
		Expect(d.Step(accel(300, 24, 0, 0))).To(Equal(gesture.NoShake))
	})

	It("debounces shakes inside the window", func() {
		var results []gesture.ShakeResult
		for _, s := range []sensor.Sample{
			accel(0, 0, 0, 0),
			accel(100, 15, 0, 0),
			accel(500, -5, 0, 0),
			accel(1200, 15, 0, 0),
		} {
			results = append(results, d.Step(s))
		}
		Expect(results).To(Equal([]gesture.ShakeResult{
			gesture.NoShake, gesture.ShakeFired, gesture.ShakeSuppressed, gesture.ShakeFired,
		}))
		Expect(d.LastTriggerMs).To(Equal(int64(1200)))
	})

	It("keeps the debounce window anchored at the last accepted shake", func() {
		d.Step(accel(0, 0, 0, 0))
		d.Step(accel(100, 20, 0, 0))
		Expect(d.Step(accel(900, 0, 0, 0))).To(Equal(gesture.ShakeSuppressed))
		Expect(d.Step(accel(1099, 20, 0, 0))).To(Equal(gesture.ShakeSuppressed))
		Expect(d.Step(accel(1100, 0, 0, 0))).To(Equal(gesture.ShakeFired))
	})

	It("honours a manual mark", func() {
		d.Step(accel(0, 0, 0, 0))
		d.Mark(50)
		Expect(d.Step(accel(500, 30, 0, 0))).To(Equal(gesture.ShakeSuppressed))
	})
})
