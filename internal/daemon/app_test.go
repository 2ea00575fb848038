// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package daemon

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppRequiresManager(t *testing.T) {
	assert.ErrorIs(t, NewApp(zerolog.Nop(), nil).Run(context.Background()), ErrMissingManager)
}

func TestAppStopsOnContextCancel(t *testing.T) {
	m, err := NewManager(testServerConfig(), testDeps())
	require.NoError(t, err)

	taskStopped := make(chan struct{})
	app := NewApp(zerolog.Nop(), m, Task{Name: "loop", Run: func(ctx context.Context) error {
		<-ctx.Done()
		close(taskStopped)
		return nil
	}})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	<-m.(*manager).ready
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	<-taskStopped
}

func TestAppCriticalTaskFailureStopsDaemon(t *testing.T) {
	m, err := NewManager(testServerConfig(), testDeps())
	require.NoError(t, err)

	boom := errors.New("watcher exploded")
	app := NewApp(zerolog.Nop(), m, Task{Name: "critical", Critical: true, Run: func(ctx context.Context) error {
		<-m.(*manager).ready
		return boom
	}})

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, boom)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after critical failure")
	}
}

func TestAppNonCriticalTaskFailureIsLogged(t *testing.T) {
	m, err := NewManager(testServerConfig(), testDeps())
	require.NoError(t, err)

	app := NewApp(zerolog.Nop(), m, Task{Name: "optional", Run: func(context.Context) error {
		return errors.New("optional failure")
	}})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	<-m.(*manager).ready
	time.Sleep(20 * time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}
