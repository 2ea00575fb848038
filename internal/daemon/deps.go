// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package daemon

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"
)

var (
	ErrMissingLogger     = errors.New("daemon: logger is required")
	ErrMissingAPIHandler = errors.New("daemon: api handler is required")
	ErrMissingManager    = errors.New("daemon: app needs a manager")
	// ErrManagerNotStarted is returned by Shutdown before a successful Start.
	ErrManagerNotStarted = errors.New("daemon: manager not started")
)

// Deps are the handlers and logger a Manager serves with.
type Deps struct {
	// Logger must not be disabled; zerolog.Nop() is rejected.
	Logger     zerolog.Logger
	APIHandler http.Handler
	// MetricsHandler is served on Server.MetricsAddr. Nil disables the listener.
	MetricsHandler http.Handler
}

func (d Deps) validate() error {
	switch {
	case d.Logger.GetLevel() == zerolog.Disabled:
		return ErrMissingLogger
	case d.APIHandler == nil:
		return ErrMissingAPIHandler
	}
	return nil
}
