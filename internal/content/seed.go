// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ManuGH/readerpulse/internal/metrics"
)

// SeedFile is the YAML document imported by Seed.
type SeedFile struct {
	Items []Item `yaml:"items"`
}

// LoadSeed decodes and validates the seed file at path. Unknown fields and
// duplicate IDs are rejected.
func LoadSeed(path string) ([]Item, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- operator-supplied seed path
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var sf SeedFile
	if err := dec.Decode(&sf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode seed %s: %w", path, err)
	}

	seen := make(map[string]struct{}, len(sf.Items))
	for _, it := range sf.Items {
		if err := it.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidItem, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return sf.Items, nil
}

// Seed imports the seed file into store and returns the number of items
// written. Items without updatedAt are stamped with now.
func Seed(ctx context.Context, store Store, path string, now time.Time) (int, error) {
	items, err := LoadSeed(path)
	if err != nil {
		return 0, err
	}
	for _, it := range items {
		if it.UpdatedAt.IsZero() {
			it.UpdatedAt = now.UTC()
		}
		if err := store.Put(ctx, it); err != nil {
			return 0, err
		}
	}
	if all, err := store.List(ctx); err == nil {
		metrics.SetContentItems(len(all))
	}
	return len(items), nil
}
