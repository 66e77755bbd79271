package config

import "sort"

var Presets = map[string]func(*Config){
	// remix is the stock 1/3x..3x logarithmic layout.
	"remix": func(c *Config) {},
	"linear": func(c *Config) {
		for _, s := range []*SliderConfig{&c.Sliders.Speed, &c.Sliders.Pitch} {
			s.Min, s.Max, s.Log, s.Initial = 0, 2, false, 1
		}
	},
	"wide": func(c *Config) {
		for _, s := range []*SliderConfig{&c.Sliders.Speed, &c.Sliders.Pitch} {
			s.Min, s.Max, s.Log, s.Initial = 1.0/8, 8, true, 1
		}
	},
	"gentle": func(c *Config) {
		c.Gesture.TiltScale = 20
		c.Gesture.ShakeThreshold = 15
	},
}

// GetPreset returns the defaults with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// ApplyPreset applies the named preset on top of cfg.
func ApplyPreset(cfg *Config, name string) bool {
	apply, ok := Presets[name]
	if ok {
		apply(cfg)
	}
	return ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
