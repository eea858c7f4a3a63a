// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/userdesk/internal/cache"
)

const keyPrefix = "session:"

// CacheStore is an scs.CtxStore backed by the console's cache, so sessions
// live next to console state in memory or Redis.
type CacheStore struct {
	c cache.Cacher
}

// NewCacheStore wraps c as a session store.
func NewCacheStore(c cache.Cacher) *CacheStore {
	return &CacheStore{c: c}
}

// FindCtx returns the session data for token.
func (s *CacheStore) FindCtx(ctx context.Context, token string) ([]byte, bool, error) {
	b, err := s.c.Get(ctx, keyPrefix+token)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// CommitCtx stores the session data until expiry.
func (s *CacheStore) CommitCtx(ctx context.Context, token string, b []byte, expiry time.Time) error {
	ttl := time.Until(expiry)
	if ttl <= 0 {
		return s.c.Delete(ctx, keyPrefix+token)
	}
	return s.c.Set(ctx, keyPrefix+token, b, ttl)
}

// DeleteCtx removes the session.
func (s *CacheStore) DeleteCtx(ctx context.Context, token string) error {
	return s.c.Delete(ctx, keyPrefix+token)
}

// Find implements scs.Store.
func (s *CacheStore) Find(token string) ([]byte, bool, error) {
	return s.FindCtx(context.Background(), token)
}

// Commit implements scs.Store.
func (s *CacheStore) Commit(token string, b []byte, expiry time.Time) error {
	return s.CommitCtx(context.Background(), token, b, expiry)
}

// Delete implements scs.Store.
func (s *CacheStore) Delete(token string) error {
	return s.DeleteCtx(context.Background(), token)
}

var (
	_ scs.Store    = (*CacheStore)(nil)
	_ scs.CtxStore = (*CacheStore)(nil)
)
