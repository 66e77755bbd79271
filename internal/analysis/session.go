package analysis

import (
	"math"

	"github.com/san-kum/remixer/internal/sensor"
)

type StreamReport struct {
	Samples    int
	DurationMs int64
	RateHz     float64
	// MaxJump is the largest per-axis change between consecutive samples.
	MaxJump float64
	// MaxTilt is the largest change in Y or Z between consecutive samples.
	MaxTilt float64
	// DominantHz is the strongest frequency in the vector magnitude.
	DominantHz float64
}

type Report struct {
	Accel  StreamReport
	Orient StreamReport
}

func Summarize(samples []sensor.Sample) Report {
	return Report{
		Accel:  summarizeKind(samples, sensor.Acceleration),
		Orient: summarizeKind(samples, sensor.Orientation),
	}
}

func summarizeKind(samples []sensor.Sample, kind sensor.Kind) StreamReport {
	var (
		r      StreamReport
		prev   sensor.Sample
		first  int64
		mags   []float64
		hasAny bool
	)
	for _, s := range samples {
		if s.Kind != kind {
			continue
		}
		if !hasAny {
			first = s.TimestampMs
		} else {
			r.MaxJump = math.Max(r.MaxJump, maxAbs(s.X-prev.X, s.Y-prev.Y, s.Z-prev.Z))
			r.MaxTilt = math.Max(r.MaxTilt, maxAbs(s.Y-prev.Y, s.Z-prev.Z))
		}
		hasAny = true
		prev = s
		r.Samples++
		r.DurationMs = s.TimestampMs - first
		mags = append(mags, math.Sqrt(s.X*s.X+s.Y*s.Y+s.Z*s.Z))
	}

	if r.Samples > 1 && r.DurationMs > 0 {
		r.RateHz = float64(r.Samples-1) / (float64(r.DurationMs) / 1000)
		r.DominantHz = DominantFrequency(Spectrum(mags, r.RateHz))
	}
	return r
}

func maxAbs(vs ...float64) float64 {
	m := 0.0
	for _, v := range vs {
		m = math.Max(m, math.Abs(v))
	}
	return m
}
