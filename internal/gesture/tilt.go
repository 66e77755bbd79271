package gesture

import (
	"math"

	"github.com/san-kum/remixer/internal/control"
	"github.com/san-kum/remixer/internal/sensor"
)

// Tilt is the slider movement derived from one orientation sample.
type Tilt struct {
	Speed int
	Pitch int
}

// TiltTracker is the orientation state machine. It is not safe for
// concurrent use.
type TiltTracker struct {
	Scale float64

	Calibrated bool
	Last       [3]float64
}

func NewTiltTracker(scale float64) *TiltTracker {
	return &TiltTracker{Scale: scale}
}

// Step consumes one orientation sample and reports the steps to apply. ok is
// false for the calibration sample. Samples with a non-finite axis are
// dropped and leave the tracker unchanged.
func (t *TiltTracker) Step(s sensor.Sample) (tilt Tilt, ok bool) {
	if !finite(s.X, s.Y, s.Z) {
		return Tilt{}, false
	}
	dy := s.Y - t.Last[1]
	dz := s.Z - t.Last[2]
	t.Last = [3]float64{s.X, s.Y, s.Z}

	if !t.Calibrated {
		t.Calibrated = true
		return Tilt{}, false
	}
	return Tilt{
		Speed: steps(t.Scale * dz),
		Pitch: steps(t.Scale * dy),
	}, true
}

// steps rounds v to whole slider steps, bounded by one full slider travel.
func steps(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Round(math.Max(-control.Resolution, math.Min(control.Resolution, v))))
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
