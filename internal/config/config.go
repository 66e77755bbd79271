package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/san-kum/remixer/internal/rangemap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLogLevel       = "info"
	DefaultSliderMin      = 1.0 / 3.0
	DefaultSliderMax      = 3.0
	DefaultShakeThreshold = 10.0
	DefaultDebounceMs     = 1000
	DefaultTiltScale      = 50.0
	DefaultRestartTrigger = "restart"
	DefaultIntervalMs     = 20
	DefaultListen         = ":8090"
	DefaultBroker         = "tcp://localhost:1883"
	DefaultTopicPrefix    = "remixer"
)

const (
	SensorMock      = "mock"
	SensorReplay    = "replay"
	SensorWebSocket = "websocket"
	SensorMQTT      = "mqtt"

	BusLog  = "log"
	BusMQTT = "mqtt"
)

type Config struct {
	LogLevel string        `yaml:"log_level"`
	Sliders  SlidersConfig `yaml:"sliders"`
	Gesture  GestureConfig `yaml:"gesture"`
	Sensor   SensorConfig  `yaml:"sensor"`
	Bus      BusConfig     `yaml:"bus"`
}

type SlidersConfig struct {
	Speed SliderConfig `yaml:"speed"`
	Pitch SliderConfig `yaml:"pitch"`
}

type SliderConfig struct {
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Log     bool    `yaml:"log"`
	Initial float64 `yaml:"initial"`
	Param   string  `yaml:"param"`
}

// Domain returns the slider's real-value range.
func (s SliderConfig) Domain() rangemap.Domain {
	return rangemap.Domain{Lower: s.Min, Upper: s.Max, Log: s.Log}
}

type GestureConfig struct {
	ShakeThreshold  float64 `yaml:"shake_threshold"`
	DebounceMs      int64   `yaml:"debounce_ms"`
	TiltScale       float64 `yaml:"tilt_scale"`
	RestartTrigger  string  `yaml:"restart_trigger"`
	RestartOnResume bool    `yaml:"restart_on_resume"`
}

func (g GestureConfig) Debounce() time.Duration {
	return time.Duration(g.DebounceMs) * time.Millisecond
}

type SensorConfig struct {
	Kind       string `yaml:"kind"`
	IntervalMs int    `yaml:"interval_ms"`
	File       string `yaml:"file"`
	Listen     string `yaml:"listen"`
	Realtime   bool   `yaml:"realtime"`
	// Record tees every delivered sample to this CSV file when set.
	Record string `yaml:"record"`
}

func (s SensorConfig) Interval() time.Duration {
	return time.Duration(s.IntervalMs) * time.Millisecond
}

type BusConfig struct {
	Kind        string `yaml:"kind"`
	Broker      string `yaml:"broker"`
	TopicPrefix string `yaml:"topic_prefix"`
	ClientID    string `yaml:"client_id"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Sliders: SlidersConfig{
			Speed: SliderConfig{Min: DefaultSliderMin, Max: DefaultSliderMax, Log: true, Initial: 1, Param: "speed"},
			Pitch: SliderConfig{Min: DefaultSliderMin, Max: DefaultSliderMax, Log: true, Initial: 1, Param: "pitch"},
		},
		Gesture: GestureConfig{
			ShakeThreshold:  DefaultShakeThreshold,
			DebounceMs:      DefaultDebounceMs,
			TiltScale:       DefaultTiltScale,
			RestartTrigger:  DefaultRestartTrigger,
			RestartOnResume: true,
		},
		Sensor: SensorConfig{
			Kind:       SensorMock,
			IntervalMs: DefaultIntervalMs,
			Listen:     DefaultListen,
			Realtime:   true,
		},
		Bus: BusConfig{
			Kind:        BusLog,
			Broker:      DefaultBroker,
			TopicPrefix: DefaultTopicPrefix,
		},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto reads path over base, which it modifies, and validates the result.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalid, err)
	}

	for name, s := range map[string]SliderConfig{"speed": c.Sliders.Speed, "pitch": c.Sliders.Pitch} {
		if err := s.Domain().Validate(); err != nil {
			return fmt.Errorf("%w: sliders.%s: %w", ErrInvalid, name, err)
		}
		if math.IsNaN(s.Initial) || math.IsInf(s.Initial, 0) {
			return fmt.Errorf("%w: sliders.%s.initial is not finite", ErrInvalid, name)
		}
		if s.Param == "" {
			return fmt.Errorf("%w: sliders.%s.param is empty", ErrInvalid, name)
		}
	}

	g := c.Gesture
	switch {
	case g.ShakeThreshold <= 0:
		return fmt.Errorf("%w: gesture.shake_threshold must be positive", ErrInvalid)
	case g.DebounceMs <= 0:
		return fmt.Errorf("%w: gesture.debounce_ms must be positive", ErrInvalid)
	case g.TiltScale <= 0:
		return fmt.Errorf("%w: gesture.tilt_scale must be positive", ErrInvalid)
	case g.RestartTrigger == "":
		return fmt.Errorf("%w: gesture.restart_trigger is empty", ErrInvalid)
	}

	switch c.Sensor.Kind {
	case SensorMock:
		if c.Sensor.IntervalMs <= 0 {
			return fmt.Errorf("%w: sensor.interval_ms must be positive", ErrInvalid)
		}
	case SensorReplay:
		if c.Sensor.File == "" {
			return fmt.Errorf("%w: sensor.file is required for replay", ErrInvalid)
		}
	case SensorWebSocket:
		if c.Sensor.Listen == "" {
			return fmt.Errorf("%w: sensor.listen is required for websocket", ErrInvalid)
		}
	case SensorMQTT:
		if c.Bus.Broker == "" {
			return fmt.Errorf("%w: bus.broker is required for the mqtt sensor", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown sensor kind %q", ErrInvalid, c.Sensor.Kind)
	}

	switch c.Bus.Kind {
	case BusLog:
	case BusMQTT:
		if c.Bus.Broker == "" {
			return fmt.Errorf("%w: bus.broker is required for mqtt", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown bus kind %q", ErrInvalid, c.Bus.Kind)
	}
	return nil
}
