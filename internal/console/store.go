// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package console

import (
	"context"
	"fmt"
	"time"

	"github.com/olegiv/userdesk/internal/cache"
)

const stateKeyPrefix = "console:"

// StateStore keeps one State per console session id.
type StateStore struct {
	states *cache.TypedCache[State]
}

// NewStateStore stores states in c; each save refreshes the ttl.
func NewStateStore(c cache.Cacher, ttl time.Duration) *StateStore {
	return &StateStore{states: cache.NewTypedCache[State](c, ttl)}
}

// Load returns the stored state, or nil when there is none.
func (s *StateStore) Load(ctx context.Context, id string) (*State, error) {
	st, err := s.states.Get(ctx, stateKeyPrefix+id)
	if err != nil {
		return nil, fmt.Errorf("loading console state: %w", err)
	}
	return st, nil
}

// Save stores st under id.
func (s *StateStore) Save(ctx context.Context, id string, st *State) error {
	if err := s.states.Set(ctx, stateKeyPrefix+id, st); err != nil {
		return fmt.Errorf("saving console state: %w", err)
	}
	return nil
}

// Delete drops the state for id.
func (s *StateStore) Delete(ctx context.Context, id string) error {
	return s.states.Delete(ctx, stateKeyPrefix+id)
}
