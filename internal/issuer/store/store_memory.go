// Package store provides the issuer registry's persistence variants.
package store

import (
	"context"
	"sync"

	"github.com/Eklavvyaaaaa/Carbonx/internal/issuer/models"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/platform/sentinel"
)

// MemoryStore keeps registry state in mutex-guarded maps. This is the
// canonical single-instance implementation; RedisStore and PostgresStore
// cover distributed deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[domain.Address]models.IssuerAccount
	votes    map[domain.VoteKey]struct{}
	approved uint64
}

// NewMemoryStore creates an empty in-memory registry store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[domain.Address]models.IssuerAccount),
		votes:    make(map[domain.VoteKey]struct{}),
	}
}

// Account returns the record for an address, or sentinel.ErrNotFound.
func (s *MemoryStore) Account(ctx context.Context, addr domain.Address) (*models.IssuerAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[addr]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := acct
	return &copied, nil
}

// SaveAccount upserts a record.
func (s *MemoryStore) SaveAccount(ctx context.Context, acct *models.IssuerAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[acct.Address] = *acct
	return nil
}

// HasVote reports whether the replay-guard record exists.
func (s *MemoryStore) HasVote(ctx context.Context, key domain.VoteKey) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.votes[key]
	return ok, nil
}

// PutVote persists a replay-guard record.
func (s *MemoryStore) PutVote(ctx context.Context, key domain.VoteKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.votes[key]; ok {
		return sentinel.ErrConflict
	}
	s.votes[key] = struct{}{}
	return nil
}

// ApprovedCount returns the approved-issuer counter.
func (s *MemoryStore) ApprovedCount(ctx context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.approved, nil
}

// AddApprovedCount adjusts the counter and returns the new value.
func (s *MemoryStore) AddApprovedCount(ctx context.Context, delta int64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if delta < 0 && uint64(-delta) > s.approved {
		return 0, sentinel.ErrInvalidState
	}
	s.approved = uint64(int64(s.approved) + delta)
	return s.approved, nil
}
