package sensor

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

var csvHeader = []string{"kind", "ts", "x", "y", "z"}

// Script is the YAML form of a recorded or hand-written session.
type Script struct {
	Name    string   `yaml:"name"`
	Samples []Sample `yaml:"samples"`
}

// ReplaySource plays a fixed list of samples to its subscribers.
type ReplaySource struct {
	samples  []Sample
	realtime bool

	mu       sync.Mutex
	handlers map[Kind]Handler
}

func NewReplaySource(samples []Sample, realtime bool) *ReplaySource {
	return &ReplaySource{
		samples:  samples,
		realtime: realtime,
		handlers: make(map[Kind]Handler),
	}
}

// LoadReplay reads a .csv session or a .yaml script.
func LoadReplay(path string, realtime bool) (*ReplaySource, error) {
	var (
		samples []Sample
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		samples, err = loadScript(path)
	default:
		samples, err = loadCSV(path)
	}
	if err != nil {
		return nil, err
	}
	return NewReplaySource(samples, realtime), nil
}

func (r *ReplaySource) Len() int { return len(r.samples) }

// Samples returns a copy of the recording.
func (r *ReplaySource) Samples() []Sample {
	out := make([]Sample, len(r.samples))
	copy(out, r.samples)
	return out
}

func (r *ReplaySource) Subscribe(kind Kind, h Handler) (Subscription, error) {
	if !r.has(kind) {
		return nil, fmt.Errorf("%w: %s not in recording", ErrUnavailable, kind)
	}
	r.mu.Lock()
	r.handlers[kind] = h
	r.mu.Unlock()

	var once sync.Once
	return subscriptionFunc(func() error {
		once.Do(func() {
			r.mu.Lock()
			delete(r.handlers, kind)
			r.mu.Unlock()
		})
		return nil
	}), nil
}

// Play delivers every sample in order on the calling goroutine. In realtime
// mode it sleeps for the timestamp gap between consecutive samples.
func (r *ReplaySource) Play(ctx context.Context) error {
	var prev int64
	for i, s := range r.samples {
		if r.realtime && i > 0 {
			if gap := time.Duration(s.TimestampMs-prev) * time.Millisecond; gap > 0 {
				timer := time.NewTimer(gap)
				select {
				case <-ctx.Done():
					timer.Stop()
					return ctx.Err()
				case <-timer.C:
				}
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		prev = s.TimestampMs

		r.mu.Lock()
		h := r.handlers[s.Kind]
		r.mu.Unlock()
		if h != nil {
			h(s)
		}
	}
	return nil
}

func (r *ReplaySource) has(kind Kind) bool {
	for _, s := range r.samples {
		if s.Kind == kind {
			return true
		}
	}
	return false
}

func loadScript(path string) ([]Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("replay script %s: %w", path, err)
	}
	for i, s := range script.Samples {
		kind, err := ParseKind(string(s.Kind))
		if err != nil {
			return nil, fmt.Errorf("replay script %s sample %d: %w", path, i, err)
		}
		script.Samples[i].Kind = kind
	}
	return script.Samples, nil
}

func loadCSV(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	samples, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", path, err)
	}
	return samples, nil
}

// ReadCSV parses a session written by CSVRecorder.
func ReadCSV(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	var samples []Sample
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return samples, nil
		}
		if err != nil {
			return nil, err
		}
		if line == 1 && rec[0] == csvHeader[0] {
			continue
		}
		s, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		samples = append(samples, s)
	}
}

func parseRecord(rec []string) (Sample, error) {
	kind, err := ParseKind(rec[0])
	if err != nil {
		return Sample{}, err
	}
	ts, err := strconv.ParseInt(rec[1], 10, 64)
	if err != nil {
		return Sample{}, fmt.Errorf("invalid ts %q: %w", rec[1], err)
	}
	var axes [3]float64
	for i := range axes {
		axes[i], err = strconv.ParseFloat(rec[2+i], 64)
		if err != nil {
			return Sample{}, fmt.Errorf("invalid %s %q: %w", csvHeader[2+i], rec[2+i], err)
		}
	}
	return Sample{Kind: kind, TimestampMs: ts, X: axes[0], Y: axes[1], Z: axes[2]}, nil
}
