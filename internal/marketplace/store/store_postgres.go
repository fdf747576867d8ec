package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/platform/sentinel"
)

// PostgresStore persists marketplace state in PostgreSQL.
//
// Schema:
//
//	CREATE TABLE marketplace_state (
//	    id            INT PRIMARY KEY CHECK (id = 1),
//	    bound_asset   BIGINT NOT NULL DEFAULT 0,
//	    total_credits BIGINT NOT NULL DEFAULT 0
//	);
//	INSERT INTO marketplace_state (id) VALUES (1);
//	CREATE TABLE marketplace_credits (
//	    address TEXT PRIMARY KEY,
//	    credits BIGINT NOT NULL DEFAULT 0
//	);
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed marketplace store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// BoundAsset returns the bound token, zero when unset.
func (s *PostgresStore) BoundAsset(ctx context.Context) (domain.AssetID, error) {
	var asset int64
	err := s.db.QueryRowContext(ctx,
		`SELECT bound_asset FROM marketplace_state WHERE id = 1`).Scan(&asset)
	if err != nil {
		return 0, fmt.Errorf("load bound asset: %w", err)
	}
	return domain.AssetID(asset), nil
}

// BindAsset records the token. The WHERE clause enforces write-once
// semantics even across concurrent writers.
func (s *PostgresStore) BindAsset(ctx context.Context, asset domain.AssetID) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE marketplace_state SET bound_asset = $1
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

// TotalCredits returns credits currently in circulation.
func (s *PostgresStore) TotalCredits(ctx context.Context) (uint64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx,
		`SELECT total_credits FROM marketplace_state WHERE id = 1`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("load total credits: %w", err)
	}
	return uint64(total), nil
}

// AddTotalCredits increments circulation atomically.
func (s *PostgresStore) AddTotalCredits(ctx context.Context, amount uint64) (uint64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx, `
		UPDATE marketplace_state SET total_credits = total_credits + $1
		WHERE id = 1
		RETURNING total_credits
	`, int64(amount)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("bump total credits: %w", err)
	}
	return uint64(total), nil
}

// Credits returns the per-account minted counter.
func (s *PostgresStore) Credits(ctx context.Context, account domain.Address) (uint64, error) {
	var credits int64
	err := s.db.QueryRowContext(ctx,
		`SELECT credits FROM marketplace_credits WHERE address = $1`,
		account.String()).Scan(&credits)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load credits: %w", err)
	}
	return uint64(credits), nil
}

// AddCredits increments a per-account counter, creating the row on first
// write.
func (s *PostgresStore) AddCredits(ctx context.Context, account domain.Address, amount uint64) (uint64, error) {
	var credits int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO marketplace_credits (address, credits)
		VALUES ($1, $2)
		ON CONFLICT (address) DO UPDATE SET credits = marketplace_credits.credits + EXCLUDED.credits
		RETURNING credits
	`, account.String(), int64(amount)).Scan(&credits)
	if err != nil {
		return 0, fmt.Errorf("credit account: %w", err)
	}
	return uint64(credits), nil
}
