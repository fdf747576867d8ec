package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Eklavvyaaaaa/Carbonx/internal/issuer/models"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite

	ctx   context.Context
	store *MemoryStore
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewMemoryStore()
}

func (s *MemoryStoreSuite) TestAccounts() {
	s.Run("missing account yields ErrNotFound", func() {
		_, err := s.store.Account(s.ctx, "alice")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("save then load round-trips", func() {
		acct := &models.IssuerAccount{Address: "alice", Registered: true, VoteCount: 3}
		s.Require().NoError(s.store.SaveAccount(s.ctx, acct))

		got, err := s.store.Account(s.ctx, "alice")
		s.Require().NoError(err)
		s.Equal(acct.Address, got.Address)
		s.True(got.Registered)
		s.EqualValues(3, got.VoteCount)
	})

	s.Run("loaded record is a copy", func() {
		got, err := s.store.Account(s.ctx, "alice")
		s.Require().NoError(err)
		got.VoteCount = 99

		again, err := s.store.Account(s.ctx, "alice")
		s.Require().NoError(err)
		s.EqualValues(3, again.VoteCount)
	})
}

func (s *MemoryStoreSuite) TestVotes() {
	key := domain.NewVoteKey("alice", "bob")

	s.Run("absent vote reads false", func() {
		voted, err := s.store.HasVote(s.ctx, key)
		s.Require().NoError(err)
		s.False(voted)
	})

	s.Run("put then check", func() {
		s.Require().NoError(s.store.PutVote(s.ctx, key))

		voted, err := s.store.HasVote(s.ctx, key)
		s.Require().NoError(err)
		s.True(voted)
	})

	s.Run("duplicate put conflicts", func() {
		s.ErrorIs(s.store.PutVote(s.ctx, key), sentinel.ErrConflict)
	})
}

func (s *MemoryStoreSuite) TestApprovedCount() {
	count, err := s.store.ApprovedCount(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(0, count)

	count, err = s.store.AddApprovedCount(s.ctx, 2)
	s.Require().NoError(err)
	s.EqualValues(2, count)

	count, err = s.store.AddApprovedCount(s.ctx, -1)
	s.Require().NoError(err)
	s.EqualValues(1, count)

	s.Run("counter never goes negative", func() {
		_, err := s.store.AddApprovedCount(s.ctx, -5)
		s.Error(err)

		count, err := s.store.ApprovedCount(s.ctx)
		s.Require().NoError(err)
		s.EqualValues(1, count)
	})
}
