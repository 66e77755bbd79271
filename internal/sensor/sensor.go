// Package sensor delivers motion samples from acceleration and orientation
// sensors.
//
// A [Source] hands out one [Subscription] per sensor kind. Each subscription
// delivers samples from a single goroutine, so a handler never runs
// concurrently with itself. Sources report a missing sensor kind with
// [ErrUnavailable]; callers are expected to carry on without it.
package sensor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnavailable indicates the source cannot provide the requested kind.
	ErrUnavailable = errors.New("sensor: kind unavailable")

	// ErrClosed indicates the source has been shut down.
	ErrClosed = errors.New("sensor: source closed")
)

type Kind string

const (
	Acceleration Kind = "accel"
	Orientation  Kind = "orient"
)

var Kinds = []Kind{Acceleration, Orientation}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accel", "acceleration", "accelerometer":
		return Acceleration, nil
	case "orient", "orientation", "rotation":
		return Orientation, nil
	}
	return "", fmt.Errorf("sensor: unknown kind %q", s)
}

// Sample is a single three-axis reading. TimestampMs is in milliseconds on
// the clock of whoever produced the sample.
type Sample struct {
	Kind        Kind    `json:"kind" yaml:"kind"`
	X           float64 `json:"x" yaml:"x"`
	Y           float64 `json:"y" yaml:"y"`
	Z           float64 `json:"z" yaml:"z"`
	TimestampMs int64   `json:"ts" yaml:"ts"`
}

type Handler func(Sample)

// Subscription stops delivery when closed. Close is idempotent and must not
// be called from inside the subscription's own handler.
type Subscription interface {
	Close() error
}

type Source interface {
	Subscribe(kind Kind, h Handler) (Subscription, error)
}

type subscriptionFunc func() error

func (f subscriptionFunc) Close() error { return f() }
