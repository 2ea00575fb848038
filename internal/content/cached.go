// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package content

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/ManuGH/readerpulse/internal/cache"
	"github.com/ManuGH/readerpulse/internal/metrics"
)

const cacheKeyPrefix = "content:"

// CachedStore serves Get from a cache and writes through to the wrapped Store.
// Cached values are full items; truncation always happens after lookup.
type CachedStore struct {
	Store
	cache  cache.Cache
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedStore wraps store. A zero ttl caches without expiry.
func NewCachedStore(store Store, c cache.Cache, ttl time.Duration, logger zerolog.Logger) *CachedStore {
	return &CachedStore{Store: store, cache: c, ttl: ttl, logger: logger}
}

func (s *CachedStore) Get(ctx context.Context, id string) (Item, error) {
	key := cacheKeyPrefix + id
	if raw, ok := s.cache.Get(ctx, key); ok {
		var it Item
		if err := json.Unmarshal(raw, &it); err == nil {
			metrics.RecordCacheHit()
			return it, nil
		}
		s.logger.Warn().Str("event", "cache.corrupt").Str("key", key).Msg("dropping undecodable cache entry")
		s.cache.Delete(ctx, key)
	}
	metrics.RecordCacheMiss()

	it, err := s.Store.Get(ctx, id)
	if err != nil {
		return Item{}, err
	}
	if raw, err := json.Marshal(it); err == nil {
		s.cache.Set(ctx, key, raw, s.ttl)
	}
	return it, nil
}

func (s *CachedStore) Put(ctx context.Context, it Item) error {
	if err := s.Store.Put(ctx, it); err != nil {
		return err
	}
	s.cache.Delete(ctx, cacheKeyPrefix+it.ID)
	return nil
}

// Invalidate drops every cached item.
func (s *CachedStore) Invalidate(ctx context.Context) {
	s.cache.Clear(ctx)
}
