package gesture

import (
	"math"

	"github.com/san-kum/remixer/internal/sensor"
)

type ShakeResult int

const (
	NoShake ShakeResult = iota
	ShakeFired
	ShakeSuppressed
)

func (r ShakeResult) String() string {
	switch r {
	case ShakeFired:
		return "fired"
	case ShakeSuppressed:
		return "suppressed"
	}
	return "none"
}

// ShakeDetector is the acceleration state machine. It is not safe for
// concurrent use.
type ShakeDetector struct {
	Threshold  float64
	DebounceMs int64

	Calibrated    bool
	Last          [3]float64
	LastTriggerMs int64
	armed         bool
}

func NewShakeDetector(threshold float64, debounceMs int64) *ShakeDetector {
	return &ShakeDetector{Threshold: threshold, DebounceMs: debounceMs}
}

// Step consumes one acceleration sample. The previous reading is updated on
// every call with finite axes; other samples are ignored.
func (d *ShakeDetector) Step(s sensor.Sample) ShakeResult {
	if !finite(s.X, s.Y, s.Z) {
		return NoShake
	}
	cur := [3]float64{s.X, s.Y, s.Z}
	prev := d.Last
	d.Last = cur

	if !d.Calibrated {
		d.Calibrated = true
		return NoShake
	}

	shaken := false
	for i := range cur {
		if math.Abs(cur[i]-prev[i]) >= d.Threshold {
			shaken = true
			break
		}
	}
	if !shaken {
		return NoShake
	}

	if d.armed && s.TimestampMs-d.LastTriggerMs < d.DebounceMs {
		return ShakeSuppressed
	}
	d.Mark(s.TimestampMs)
	return ShakeFired
}

// Mark records atMs as the time of the last accepted trigger.
func (d *ShakeDetector) Mark(atMs int64) {
	d.LastTriggerMs = atMs
	d.armed = true
}
