package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultWatchDebounce = 250 * time.Millisecond

// Watch reloads path over the defaults whenever it changes and passes the
// result to fn. Bursts of events inside the debounce window produce one
// reload. The parent directory is watched so that editors replacing the file
// by rename are seen. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, fn func(*Config, error)) error {
	return WatchDebounced(ctx, path, DefaultWatchDebounce, DefaultConfig, fn)
}

// WatchDebounced is Watch with an explicit debounce window. Every reload
// reads the file over a fresh config from base.
func WatchDebounced(ctx context.Context, path string, debounce time.Duration, base func() *Config, fn func(*Config, error)) error {
	if base == nil {
		base = DefaultConfig
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fn(nil, err)

		case <-timer.C:
			fn(LoadOnto(abs, base()))
		}
	}
}
