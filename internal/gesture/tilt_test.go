package gesture_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/remixer/internal/control"
	"github.com/san-kum/remixer/internal/gesture"
	"github.com/san-kum/remixer/internal/sensor"
)

func orient(ts int64, x, y, z float64) sensor.Sample {
	return sensor.Sample{Kind: sensor.Orientation, TimestampMs: ts, X: x, Y: y, Z: z}
}

var _ = Describe("TiltTracker", func() {
	var tr *gesture.TiltTracker

	BeforeEach(func() {
		tr = gesture.NewTiltTracker(50)
	})

	It("reports nothing for the calibration sample", func() {
		_, ok := tr.Step(orient(0, 1, 2, 3))
		Expect(ok).To(BeFalse())
		Expect(tr.Calibrated).To(BeTrue())
	})

	It("maps Z to speed and Y to pitch", func() {
		tr.Step(orient(0, 0, 0, 0))
		tilt, ok := tr.Step(orient(20, 99, -0.2, 0.1))
		Expect(ok).To(BeTrue())
		Expect(tilt).To(Equal(gesture.Tilt{Speed: 5, Pitch: -10}))
	})

	It("bounds huge deltas to one full slider travel", func() {
		tr.Step(orient(0, 0, 0, 0))
		tilt, ok := tr.Step(orient(20, 0, -1e300, 1e300))
		Expect(ok).To(BeTrue())
		Expect(tilt).To(Equal(gesture.Tilt{Speed: control.Resolution, Pitch: -control.Resolution}))
	})

	It("drops non-finite samples without losing calibration", func() {
		tr.Step(orient(0, 0, 0, 0))
		for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			_, ok := tr.Step(orient(10, 0, bad, bad))
			Expect(ok).To(BeFalse())
		}
		Expect(tr.Last).To(Equal([3]float64{0, 0, 0}))

		tilt, ok := tr.Step(orient(20, 0, 0, 0.1))
		Expect(ok).To(BeTrue())
		Expect(tilt).To(Equal(gesture.Tilt{Speed: 5}))
	})

	It("rounds to the nearest step", func() {
		tr.Step(orient(0, 0, 0, 0))
		tilt, _ := tr.Step(orient(20, 0, 0.029, -0.031))
		Expect(tilt).To(Equal(gesture.Tilt{Speed: -2, Pitch: 1}))
	})
})
