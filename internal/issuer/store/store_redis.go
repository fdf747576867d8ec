package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Eklavvyaaaaa/Carbonx/internal/issuer/models"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/platform/sentinel"
)

const (
	accountKeyPrefix = "issuer:acct:"
	voteKeyPrefix    = "issuer:vote:"
	approvedCountKey = "issuer:approved_count"
)

// RedisStore is a Redis-backed registry store for deployments where
// multiple instances share registry state.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a Redis-backed registry store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Account returns the record for an address, or sentinel.ErrNotFound.
func (s *RedisStore) Account(ctx context.Context, addr domain.Address) (*models.IssuerAccount, error) {
	fields, err := s.client.HGetAll(ctx, accountKeyPrefix+addr.String()).Result()
	if err != nil {
		return nil, fmt.Errorf("load issuer account: %w", err)
	}
	if len(fields) == 0 {
		return nil, sentinel.ErrNotFound
	}
	acct := &models.IssuerAccount{Address: addr}
	acct.Registered = fields["registered"] == "1"
	acct.Approved = fields["approved"] == "1"
	if _, err := fmt.Sscanf(fields["vote_count"], "%d", &acct.VoteCount); err != nil && fields["vote_count"] != "" {
		return nil, fmt.Errorf("parse vote count: %w", err)
	}
	return acct, nil
}

// SaveAccount upserts a record as a hash.
func (s *RedisStore) SaveAccount(ctx context.Context, acct *models.IssuerAccount) error {
	err := s.client.HSet(ctx, accountKeyPrefix+acct.Address.String(),
		"registered", boolField(acct.Registered),
		"approved", boolField(acct.Approved),
		"vote_count", fmt.Sprintf("%d", acct.VoteCount),
	).Err()
	if err != nil {
		return fmt.Errorf("save issuer account: %w", err)
	}
	return nil
}

// HasVote reports whether the replay-guard record exists.
func (s *RedisStore) HasVote(ctx context.Context, key domain.VoteKey) (bool, error) {
	n, err := s.client.Exists(ctx, voteKeyPrefix+key.String()).Result()
	if err != nil {
		return false, fmt.Errorf("check vote record: %w", err)
	}
	return n > 0, nil
}

// PutVote persists a replay-guard record with SETNX so the once-only
// invariant holds across instances.
func (s *RedisStore) PutVote(ctx context.Context, key domain.VoteKey) error {
	set, err := s.client.SetNX(ctx, voteKeyPrefix+key.String(), "1", 0).Result()
	if err != nil {
		return fmt.Errorf("record vote: %w", err)
	}
	if !set {
		return sentinel.ErrConflict
	}
	return nil
}

// ApprovedCount returns the approved-issuer counter.
func (s *RedisStore) ApprovedCount(ctx context.Context) (uint64, error) {
	value, err := s.client.Get(ctx, approvedCountKey).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load approved count: %w", err)
	}
	return value, nil
}

// AddApprovedCount adjusts the counter and returns the new value.
func (s *RedisStore) AddApprovedCount(ctx context.Context, delta int64) (uint64, error) {
	value, err := s.client.IncrBy(ctx, approvedCountKey, delta).Result()
	if err != nil {
		return 0, fmt.Errorf("adjust approved count: %w", err)
	}
	if value < 0 {
		// Undo; the caller violated the non-negative invariant.
		if _, err := s.client.IncrBy(ctx, approvedCountKey, -delta).Result(); err != nil {
			return 0, fmt.Errorf("restore approved count: %w", err)
		}
		return 0, sentinel.ErrInvalidState
	}
	return uint64(value), nil
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
