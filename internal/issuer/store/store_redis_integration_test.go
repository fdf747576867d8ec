//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Eklavvyaaaaa/Carbonx/internal/issuer/models"
	"github.com/Eklavvyaaaaa/Carbonx/internal/issuer/store"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/platform/sentinel"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *store.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = store.NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestAccountRoundTrip() {
	ctx := context.Background()

	_, err := s.store.Account(ctx, "alice")
	s.ErrorIs(err, sentinel.ErrNotFound)

	acct := &models.IssuerAccount{Address: "alice", Registered: true, Approved: true, VoteCount: 7}
	s.Require().NoError(s.store.SaveAccount(ctx, acct))

	got, err := s.store.Account(ctx, "alice")
	s.Require().NoError(err)
	s.True(got.Registered)
	s.True(got.Approved)
	s.EqualValues(7, got.VoteCount)
}

func (s *RedisStoreSuite) TestVoteReplayGuard() {
	ctx := context.Background()
	key := domain.NewVoteKey("alice", "bob")

	voted, err := s.store.HasVote(ctx, key)
	s.Require().NoError(err)
	s.False(voted)

	s.Require().NoError(s.store.PutVote(ctx, key))
	s.ErrorIs(s.store.PutVote(ctx, key), sentinel.ErrConflict)

	// The guard is order-independent.
	s.ErrorIs(s.store.PutVote(ctx, domain.NewVoteKey("bob", "alice")), sentinel.ErrConflict)
}

func (s *RedisStoreSuite) TestApprovedCounter() {
	ctx := context.Background()

	count, err := s.store.ApprovedCount(ctx)
	s.Require().NoError(err)
	s.EqualValues(0, count)

	count, err = s.store.AddApprovedCount(ctx, 2)
	s.Require().NoError(err)
	s.EqualValues(2, count)

	_, err = s.store.AddApprovedCount(ctx, -3)
	s.ErrorIs(err, sentinel.ErrInvalidState)

	count, err = s.store.ApprovedCount(ctx)
	s.Require().NoError(err)
	s.EqualValues(2, count)
}
