// Package store provides the marketplace's persistence variants.
package store

import (
	"context"
	"sync"

	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/platform/sentinel"
)

// MemoryStore keeps marketplace counters in mutex-guarded state.
type MemoryStore struct {
	mu      sync.RWMutex
	asset   domain.AssetID
	total   uint64
	credits map[domain.Address]uint64
}

// NewMemoryStore creates an empty in-memory marketplace store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{credits: make(map[domain.Address]uint64)}
}

// BoundAsset returns the bound token, zero when unset.
func (s *MemoryStore) BoundAsset(ctx context.Context) (domain.AssetID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.asset, nil
}

// BindAsset records the token. Write-once: sentinel.ErrConflict once set.
func (s *MemoryStore) BindAsset(ctx context.Context, asset domain.AssetID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.asset.IsZero() {
		return sentinel.ErrConflict
	}
	s.asset = asset
	return nil
}

// TotalCredits returns credits currently in circulation.
func (s *MemoryStore) TotalCredits(ctx context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total, nil
}

// AddTotalCredits increments circulation and returns the new value.
func (s *MemoryStore) AddTotalCredits(ctx context.Context, amount uint64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total += amount
	return s.total, nil
}

// Credits returns the per-account minted counter.
func (s *MemoryStore) Credits(ctx context.Context, account domain.Address) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credits[account], nil
}

// AddCredits increments a per-account counter and returns the new value.
func (s *MemoryStore) AddCredits(ctx context.Context, account domain.Address, amount uint64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credits[account] += amount
	return s.credits[account], nil
}
