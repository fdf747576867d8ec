// Package store provides the retirement manager's persistence variants.
package store

import (
	"context"
	"sync"

	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/platform/sentinel"
)

// MemoryStore keeps retirement counters in mutex-guarded state.
type MemoryStore struct {
	mu      sync.RWMutex
	asset   domain.AssetID
	total   uint64
	retired uint64
}

// NewMemoryStore creates an empty in-memory retirement store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// BoundAsset returns the bound credit token, zero when unset.
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

// TotalSupply returns the cumulative retireable pool.
func (s *MemoryStore) TotalSupply(ctx context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total, nil
}

// AddSupply grows the pool and returns the new value.
func (s *MemoryStore) AddSupply(ctx context.Context, amount uint64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total += amount
	return s.total, nil
}

// RetiredCredits returns the cumulative retirement tally.
func (s *MemoryStore) RetiredCredits(ctx context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.retired, nil
}

// AddRetired bumps the tally and returns the new value.
func (s *MemoryStore) AddRetired(ctx context.Context, amount uint64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.retired += amount
	return s.retired, nil
}
