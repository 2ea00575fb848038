// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package content

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce coalesces editor write bursts into one re-seed.
const DefaultDebounce = 500 * time.Millisecond

// Invalidator drops cached content.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// Watcher re-seeds the store whenever the seed file changes.
type Watcher struct {
	path     string
	store    Store
	inv      Invalidator
	debounce time.Duration
	logger   zerolog.Logger
	now      func() time.Time

	// reloaded is signalled after each re-seed attempt; used by tests.
	reloaded chan error
}

// NewWatcher builds a Watcher. inv may be nil.
func NewWatcher(path string, store Store, inv Invalidator, debounce time.Duration, logger zerolog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     filepath.Clean(path),
		store:    store,
		inv:      inv,
		debounce: debounce,
		logger:   logger,
		now:      time.Now,
	}
}

// Run blocks until ctx is done. The parent directory is watched so editors
// that replace the file by rename are picked up.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch seed dir: %w", err)
	}
	w.logger.Info().
		Str("event", "seed.watcher_started").
		Str("path", w.path).
		Msg("watching seed file for changes")

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Str("event", "seed.watcher_stopped").Msg("seed watcher stopped")
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug().
				Str("event", "seed.file_changed").
				Str("op", ev.Op.String()).
				Msg("seed file changed")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.reload(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Str("event", "seed.watcher_error").Msg("seed watcher error")
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	n, err := Seed(ctx, w.store, w.path, w.now())
	if err != nil {
		w.logger.Error().Err(err).Str("event", "seed.reload_failed").Msg("seed reload failed; keeping previous content")
	} else {
		if w.inv != nil {
			w.inv.Invalidate(ctx)
		}
		w.logger.Info().Str("event", "seed.reloaded").Int("items", n).Msg("content re-seeded")
	}
	if w.reloaded != nil {
		select {
		case w.reloaded <- err:
		default:
		}
	}
}
