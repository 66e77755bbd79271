package config

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/remixer/internal/rangemap"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Sliders.Speed.Param != "speed" || cfg.Sliders.Pitch.Param != "pitch" {
		t.Errorf("unexpected params: %+v", cfg.Sliders)
	}
	if !cfg.Sliders.Speed.Log {
		t.Error("speed should be logarithmic")
	}
	if cfg.Gesture.Debounce() != time.Second {
		t.Errorf("expected 1s debounce, got %v", cfg.Gesture.Debounce())
	}
	if cfg.Sensor.Interval() != 20*time.Millisecond {
		t.Errorf("expected 20ms interval, got %v", cfg.Sensor.Interval())
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remixer.yaml")
	data := `
sliders:
  speed: {min: 0.5, max: 2, log: true, initial: 1, param: tempo}
gesture:
  tilt_scale: 25
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Sliders.Speed.Param != "tempo" || cfg.Sliders.Speed.Min != 0.5 {
		t.Errorf("speed not loaded: %+v", cfg.Sliders.Speed)
	}
	if cfg.Gesture.TiltScale != 25 {
		t.Errorf("expected tilt scale 25, got %f", cfg.Gesture.TiltScale)
	}
	if cfg.Gesture.ShakeThreshold != DefaultShakeThreshold {
		t.Errorf("shake threshold default lost: %f", cfg.Gesture.ShakeThreshold)
	}
	if cfg.Sliders.Pitch.Param != "pitch" {
		t.Errorf("pitch default lost: %+v", cfg.Sliders.Pitch)
	}
}

func TestLoadOntoKeepsPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remixer.yaml")
	if err := os.WriteFile(path, []byte("gesture:\n  debounce_ms: 500\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOnto(path, GetPreset("gentle"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Gesture.DebounceMs != 500 {
		t.Errorf("expected debounce 500, got %d", cfg.Gesture.DebounceMs)
	}
	if cfg.Gesture.ShakeThreshold != 15 || cfg.Gesture.TiltScale != 20 {
		t.Errorf("preset values lost: %+v", cfg.Gesture)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("sliders:\n  pitch: {min: 0, max: 3, log: true, initial: 1, param: pitch}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if !errors.Is(err, rangemap.ErrNonPositiveLogBound) {
		t.Errorf("expected wrapped rangemap error, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("wide")
	cfg.Bus.Kind = BusMQTT
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"inverted slider", func(c *Config) { c.Sliders.Speed.Min, c.Sliders.Speed.Max = 3, 1 }},
		{"non-positive log bound", func(c *Config) { c.Sliders.Pitch.Min = -1 }},
		{"nan initial", func(c *Config) { c.Sliders.Speed.Initial = math.NaN() }},
		{"empty param", func(c *Config) { c.Sliders.Pitch.Param = "" }},
		{"zero threshold", func(c *Config) { c.Gesture.ShakeThreshold = 0 }},
		{"negative debounce", func(c *Config) { c.Gesture.DebounceMs = -1 }},
		{"zero tilt scale", func(c *Config) { c.Gesture.TiltScale = 0 }},
		{"empty trigger", func(c *Config) { c.Gesture.RestartTrigger = "" }},
		{"zero interval", func(c *Config) { c.Sensor.IntervalMs = 0 }},
		{"replay without file", func(c *Config) { c.Sensor.Kind = SensorReplay }},
		{"websocket without listen", func(c *Config) { c.Sensor.Kind, c.Sensor.Listen = SensorWebSocket, "" }},
		{"unknown sensor", func(c *Config) { c.Sensor.Kind = "gyro" }},
		{"mqtt bus without broker", func(c *Config) { c.Bus.Kind, c.Bus.Broker = BusMQTT, "" }},
		{"unknown bus", func(c *Config) { c.Bus.Kind = "osc" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestValidateAcceptsLinearZero(t *testing.T) {
	cfg := GetPreset("linear")
	if err := cfg.Validate(); err != nil {
		t.Errorf("linear preset should be valid: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("wide")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Sliders.Speed.Min != 0.125 || cfg.Sliders.Speed.Max != 8 {
		t.Errorf("unexpected wide range: %+v", cfg.Sliders.Speed)
	}

	gentle := GetPreset("gentle")
	if gentle.Gesture.TiltScale != 20 || gentle.Gesture.ShakeThreshold != 15 {
		t.Errorf("unexpected gentle gesture: %+v", gentle.Gesture)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if strings.Join(presets, ",") != "gentle,linear,remix,wide" {
		t.Errorf("unexpected presets: %v", presets)
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remixer.yaml")
	if err := Save(path, DefaultConfig()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 1)
	done := make(chan error, 1)
	go func() {
		done <- WatchDebounced(ctx, path, 20*time.Millisecond, nil, func(cfg *Config, err error) {
			if err != nil {
				return
			}
			select {
			case got <- cfg:
			default:
			}
		})
	}()

	updated := GetPreset("gentle")
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()

	for {
		if err := Save(path, updated); err != nil {
			t.Fatal(err)
		}
		select {
		case cfg := <-got:
			if cfg.Gesture.TiltScale != 20 {
				t.Errorf("expected reloaded tilt scale 20, got %f", cfg.Gesture.TiltScale)
			}
			cancel()
			if err := <-done; err != nil {
				t.Errorf("watch returned %v", err)
			}
			return
		case <-deadline:
			t.Fatal("no reload observed")
		case <-tick.C:
		}
	}
}

func TestWatchReloadsOverBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remixer.yaml")
	partial := []byte("gesture:\n  debounce_ms: 300\n")
	if err := os.WriteFile(path, partial, 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	base := func() *Config { return GetPreset("linear") }
	got := make(chan *Config, 1)
	done := make(chan error, 1)
	go func() {
		done <- WatchDebounced(ctx, path, 20*time.Millisecond, base, func(cfg *Config, err error) {
			if err != nil {
				return
			}
			select {
			case got <- cfg:
			default:
			}
		})
	}()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()

	for {
		if err := os.WriteFile(path, partial, 0644); err != nil {
			t.Fatal(err)
		}
		select {
		case cfg := <-got:
			if cfg.Gesture.DebounceMs != 300 {
				t.Errorf("expected debounce 300 from file, got %d", cfg.Gesture.DebounceMs)
			}
			if cfg.Sliders.Speed.Log || cfg.Sliders.Speed.Max != 2 {
				t.Errorf("linear preset lost on reload: %+v", cfg.Sliders.Speed)
			}
			cancel()
			if err := <-done; err != nil {
				t.Errorf("watch returned %v", err)
			}
			return
		case <-deadline:
			t.Fatal("no reload observed")
		case <-tick.C:
		}
	}
}
