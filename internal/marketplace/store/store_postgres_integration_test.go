//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Eklavvyaaaaa/Carbonx/internal/marketplace/store"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/platform/sentinel"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/testutil/containers"
)

const marketplaceSchema = `
CREATE TABLE IF NOT EXISTS marketplace_state (
    id            INT PRIMARY KEY CHECK (id = 1),
    bound_asset   BIGINT NOT NULL DEFAULT 0,
    total_credits BIGINT NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS marketplace_credits (
    address TEXT PRIMARY KEY,
    credits BIGINT NOT NULL DEFAULT 0
);
`

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.postgres.Exec(s.T(), marketplaceSchema)
	s.store = store.NewPostgresStore(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.postgres.Exec(s.T(), `TRUNCATE marketplace_state, marketplace_credits`)
	s.postgres.Exec(s.T(), `INSERT INTO marketplace_state (id) VALUES (1)`)
}

func (s *PostgresStoreSuite) TestBindAssetWriteOnce() {
	ctx := context.Background()

	bound, err := s.store.BoundAsset(ctx)
	s.Require().NoError(err)
	s.True(bound.IsZero())

	s.Require().NoError(s.store.BindAsset(ctx, domain.AssetID(2001)))
	s.ErrorIs(s.store.BindAsset(ctx, domain.AssetID(9)), sentinel.ErrConflict)

	bound, err = s.store.BoundAsset(ctx)
	s.Require().NoError(err)
	s.Equal(domain.AssetID(2001), bound)
}

func (s *PostgresStoreSuite) TestCounters() {
	ctx := context.Background()

	total, err := s.store.AddTotalCredits(ctx, 10)
	s.Require().NoError(err)
	s.EqualValues(10, total)

	total, err = s.store.TotalCredits(ctx)
	s.Require().NoError(err)
	s.EqualValues(10, total)

	credits, err := s.store.Credits(ctx, "nobody")
	s.Require().NoError(err)
	s.EqualValues(0, credits)

	credits, err = s.store.AddCredits(ctx, "alice", 4)
	s.Require().NoError(err)
	s.EqualValues(4, credits)

	credits, err = s.store.AddCredits(ctx, "alice", 3)
	s.Require().NoError(err)
	s.EqualValues(7, credits)
}
