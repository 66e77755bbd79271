package sensor

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"sync"
)

// CSVRecorder writes delivered samples to a CSV session readable by
// LoadReplay.
type CSVRecorder struct {
	mu     sync.Mutex
	w      *csv.Writer
	closer io.Closer
	err    error
}

func NewCSVRecorder(w io.Writer) *CSVRecorder {
	r := &CSVRecorder{w: csv.NewWriter(w)}
	r.err = r.w.Write(csvHeader)
	return r
}

func CreateCSVRecorder(path string) (*CSVRecorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	r := NewCSVRecorder(f)
	r.closer = f
	return r, nil
}

func (r *CSVRecorder) Record(s Sample) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.err = r.w.Write([]string{
		string(s.Kind),
		strconv.FormatInt(s.TimestampMs, 10),
		strconv.FormatFloat(s.X, 'g', -1, 64),
		strconv.FormatFloat(s.Y, 'g', -1, 64),
		strconv.FormatFloat(s.Z, 'g', -1, 64),
	})
	return r.err
}

func (r *CSVRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.w.Flush()
	err := r.w.Error()
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
		r.closer = nil
	}
	return err
}

type teeSource struct {
	src Source
	rec *CSVRecorder
}

// Tee records every sample src delivers before passing it on.
func Tee(src Source, rec *CSVRecorder) Source {
	return &teeSource{src: src, rec: rec}
}

func (t *teeSource) Subscribe(kind Kind, h Handler) (Subscription, error) {
	return t.src.Subscribe(kind, func(s Sample) {
		_ = t.rec.Record(s)
		h(s)
	})
}
