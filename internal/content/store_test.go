// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package content

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/readerpulse/internal/access"
)

func sampleItem(id string, tier access.Tier, n int) Item {
	blocks := make([]Block, n)
	for i := range blocks {
		blocks[i] = Block{Kind: BlockParagraph, Text: id + "-" + string(rune('a'+i))}
	}
	return Item{
		ID:        id,
		Title:     "Title " + id,
		Path:      "/posts/" + id,
		Tier:      tier,
		Blocks:    blocks,
		UpdatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()

	sq, err := OpenStore(ctx, BackendSQLite, filepath.Join(t.TempDir(), "content.db"), zerolog.Nop())
	require.NoError(t, err)
	bg, err := OpenStore(ctx, BackendBadger, "", zerolog.Nop())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = sq.Close()
		_ = bg.Close()
	})
	return map[string]Store{BackendSQLite: sq, BackendBadger: bg}
}

func TestStoresRoundTripAndList(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			a := sampleItem("alpha", access.TierPremium, 5)
			b := sampleItem("beta", access.TierFree, 1)
			require.NoError(t, store.Put(ctx, b))
			require.NoError(t, store.Put(ctx, a))

			got, err := store.Get(ctx, "alpha")
			require.NoError(t, err)
			if diff := cmp.Diff(a, got); diff != "" {
				t.Errorf("item mismatch (-want +got):\n%s", diff)
			}

			a.Title = "Updated"
			require.NoError(t, store.Put(ctx, a))
			got, err = store.Get(ctx, "alpha")
			require.NoError(t, err)
			assert.Equal(t, "Updated", got.Title)

			all, err := store.List(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, "alpha", all[0].ID)
			assert.Equal(t, "beta", all[1].ID)

			require.NoError(t, store.Ping(ctx))
		})
	}
}

func TestStoresReturnNotFound(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(context.Background(), "missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestOpenStoreRejectsUnknownBackend(t *testing.T) {
	_, err := OpenStore(context.Background(), "mongo", "", zerolog.Nop())
	assert.ErrorContains(t, err, "unknown content backend")
}

func TestItemValidate(t *testing.T) {
	ok := sampleItem("ok", access.TierFree, 2)
	require.NoError(t, ok.Validate())

	cases := map[string]func(*Item){
		"bad id":        func(it *Item) { it.ID = "Has Spaces" },
		"empty title":   func(it *Item) { it.Title = "" },
		"unknown tier":  func(it *Item) { it.Tier = "gold" },
		"unknown kind":  func(it *Item) { it.Blocks[0].Kind = "video" },
		"image w/o src": func(it *Item) { it.Blocks[1] = Block{Kind: BlockImage} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			it := sampleItem("ok", access.TierFree, 2)
			mutate(&it)
			assert.ErrorIs(t, it.Validate(), ErrInvalidItem)
		})
	}
}
