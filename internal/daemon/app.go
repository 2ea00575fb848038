// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package daemon

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Task is a background loop owned by the App. It returns when ctx is done.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
	// Critical tasks stop the daemon when they fail.
	Critical bool
}

// App runs background tasks alongside the Manager.
type App struct {
	logger  zerolog.Logger
	manager Manager
	tasks   []Task
}

// NewApp creates a new App orchestrator.
func NewApp(logger zerolog.Logger, manager Manager, tasks ...Task) *App {
	return &App{logger: logger, manager: manager, tasks: tasks}
}

// Run starts tasks and the manager and blocks until ctx is cancelled or a
// critical component fails.
func (a *App) Run(ctx context.Context) error {
	if a.manager == nil {
		return ErrMissingManager
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, t := range a.tasks {
		g.Go(func() error {
			err := t.Run(gctx)
			if err == nil || gctx.Err() != nil {
				return nil
			}
			if t.Critical {
				return err
			}
			a.logger.Warn().
				Err(err).
				Str("event", "task.failed").
				Str("task", t.Name).
				Msg("background task stopped")
			return nil
		})
	}

	g.Go(func() error {
		return a.manager.Start(gctx)
	})

	return g.Wait()
}
