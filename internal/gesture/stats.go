package gesture

import "sync/atomic"

type Stats struct {
	accelSamples  atomic.Int64
	orientSamples atomic.Int64
	shakes        atomic.Int64
	suppressed    atomic.Int64
	triggers      atomic.Int64
	nudges        atomic.Int64
}

type StatsSnapshot struct {
	AccelSamples     int64
	OrientSamples    int64
	ShakesDetected   int64
	ShakesSuppressed int64
	Triggers         int64
	Nudges           int64
}

func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		AccelSamples:     s.accelSamples.Load(),
		OrientSamples:    s.orientSamples.Load(),
		ShakesDetected:   s.shakes.Load(),
		ShakesSuppressed: s.suppressed.Load(),
		Triggers:         s.triggers.Load(),
		Nudges:           s.nudges.Load(),
	}
}
