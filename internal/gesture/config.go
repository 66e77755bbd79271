package gesture

import "time"

const (
	DefaultShakeThreshold = 10.0
	DefaultDebounce       = 1000 * time.Millisecond
	DefaultTiltScale      = 50.0
	DefaultRestartTrigger = "restart"
)

type Config struct {
	ShakeThreshold float64
	Debounce       time.Duration
	TiltScale      float64
	RestartTrigger string
}

func DefaultConfig() Config {
	return Config{
		ShakeThreshold: DefaultShakeThreshold,
		Debounce:       DefaultDebounce,
		TiltScale:      DefaultTiltScale,
		RestartTrigger: DefaultRestartTrigger,
	}
}
