// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package content

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Backend names accepted by OpenStore.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// OpenStore opens the configured backend. For sqlite, location is the
// database file; for badger, the data directory ("" for in-memory).
func OpenStore(ctx context.Context, backend, location string, logger zerolog.Logger) (Store, error) {
	switch backend {
	case BackendSQLite, "":
		return OpenSQLiteStore(ctx, location)
	case BackendBadger:
		return OpenBadgerStore(location, logger.With().Str("component", "badger").Logger())
	default:
		return nil, fmt.Errorf("unknown content backend: %q", backend)
	}
}
