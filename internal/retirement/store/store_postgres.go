package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/platform/sentinel"
)

// PostgresStore persists retirement state in PostgreSQL.
//
// Schema:
//
//	CREATE TABLE retirement_state (
//	    id              INT PRIMARY KEY CHECK (id = 1),
//	    bound_asset     BIGINT NOT NULL DEFAULT 0,
//	    total_supply    BIGINT NOT NULL DEFAULT 0,
//	    retired_credits BIGINT NOT NULL DEFAULT 0
//	);
//	INSERT INTO retirement_state (id) VALUES (1);
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed retirement store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// BoundAsset returns the bound credit token, zero when unset.
func (s *PostgresStore) BoundAsset(ctx context.Context) (domain.AssetID, error) {
	var asset int64
	err := s.db.QueryRowContext(ctx,
		`SELECT bound_asset FROM retirement_state WHERE id = 1`).Scan(&asset)
	if err != nil {
		return 0, fmt.Errorf("load bound asset: %w", err)
	}
	return domain.AssetID(asset), nil
}

// BindAsset records the token. The WHERE clause enforces write-once
// semantics even across concurrent writers.
func (s *PostgresStore) BindAsset(ctx context.Context, asset domain.AssetID) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE retirement_state SET bound_asset = $1
		WHERE id = 1 AND bound_asset = 0
	`, int64(asset))
	if err != nil {
		return fmt.Errorf("bind asset: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("bind asset: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

// TotalSupply returns the cumulative retireable pool.
func (s *PostgresStore) TotalSupply(ctx context.Context) (uint64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx,
		`SELECT total_supply FROM retirement_state WHERE id = 1`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("load total supply: %w", err)
	}
	return uint64(total), nil
}

// AddSupply grows the pool atomically.
func (s *PostgresStore) AddSupply(ctx context.Context, amount uint64) (uint64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx, `
		UPDATE retirement_state SET total_supply = total_supply + $1
		WHERE id = 1
		RETURNING total_supply
	`, int64(amount)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("grow total supply: %w", err)
	}
	return uint64(total), nil
}

// RetiredCredits returns the cumulative retirement tally.
func (s *PostgresStore) RetiredCredits(ctx context.Context) (uint64, error) {
	var retired int64
	err := s.db.QueryRowContext(ctx,
		`SELECT retired_credits FROM retirement_state WHERE id = 1`).Scan(&retired)
	if err != nil {
		return 0, fmt.Errorf("load retired credits: %w", err)
	}
	return uint64(retired), nil
}

// AddRetired bumps the tally atomically.
func (s *PostgresStore) AddRetired(ctx context.Context, amount uint64) (uint64, error) {
	var retired int64
	err := s.db.QueryRowContext(ctx, `
		UPDATE retirement_state SET retired_credits = retired_credits + $1
		WHERE id = 1
		RETURNING retired_credits
	`, int64(amount)).Scan(&retired)
	if err != nil {
		return 0, fmt.Errorf("bump retired credits: %w", err)
	}
	return uint64(retired), nil
}
