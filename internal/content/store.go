// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package content

import "context"

// Store persists items. Get returns ErrNotFound for unknown IDs.
type Store interface {
	Get(ctx context.Context, id string) (Item, error)
	Put(ctx context.Context, item Item) error
	List(ctx context.Context) ([]Item, error)
	Ping(ctx context.Context) error
	Close() error
}
