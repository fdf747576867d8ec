package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/Eklavvyaaaaa/Carbonx/internal/issuer/models"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/platform/sentinel"
)

// PostgresStore persists registry state in PostgreSQL.
//
// Schema:
//
//	CREATE TABLE issuer_accounts (
//	    address     TEXT PRIMARY KEY,
//	    registered  BOOLEAN NOT NULL DEFAULT FALSE,
//	    approved    BOOLEAN NOT NULL DEFAULT FALSE,
//	    vote_count  BIGINT  NOT NULL DEFAULT 0
//	);
//	CREATE TABLE issuer_votes (
//	    vote_key TEXT PRIMARY KEY
//	);
//	CREATE TABLE issuer_counters (
//	    name  TEXT PRIMARY KEY,
//	    value BIGINT NOT NULL
//	);
//	INSERT INTO issuer_counters (name, value) VALUES ('approved', 0);
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed registry store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Account returns the record for an address, or sentinel.ErrNotFound.
func (s *PostgresStore) Account(ctx context.Context, addr domain.Address) (*models.IssuerAccount, error) {
	var acct models.IssuerAccount
	var voteCount int64
	err := s.db.QueryRowContext(ctx, `
		SELECT address, registered, approved, vote_count
		FROM issuer_accounts WHERE address = $1
	`, addr.String()).Scan(&acct.Address, &acct.Registered, &acct.Approved, &voteCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load issuer account: %w", err)
	}
	acct.VoteCount = uint64(voteCount)
	return &acct, nil
}

// SaveAccount upserts a record.
func (s *PostgresStore) SaveAccount(ctx context.Context, acct *models.IssuerAccount) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO issuer_accounts (address, registered, approved, vote_count)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (address) DO UPDATE SET
			registered = EXCLUDED.registered,
			approved   = EXCLUDED.approved,
			vote_count = EXCLUDED.vote_count
	`, acct.Address.String(), acct.Registered, acct.Approved, int64(acct.VoteCount))
	if err != nil {
		return fmt.Errorf("save issuer account: %w", err)
	}
	return nil
}

// HasVote reports whether the replay-guard record exists.
func (s *PostgresStore) HasVote(ctx context.Context, key domain.VoteKey) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM issuer_votes WHERE vote_key = $1`, key.String()).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check vote record: %w", err)
	}
	return true, nil
}

// PutVote persists a replay-guard record; the primary key enforces the
// once-only invariant even under concurrent writers.
func (s *PostgresStore) PutVote(ctx context.Context, key domain.VoteKey) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO issuer_votes (vote_key) VALUES ($1)
		ON CONFLICT (vote_key) DO NOTHING
	`, key.String())
	if err != nil {
		return fmt.Errorf("record vote: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("record vote: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

// ApprovedCount returns the approved-issuer counter.
func (s *PostgresStore) ApprovedCount(ctx context.Context) (uint64, error) {
	var value int64
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM issuer_counters WHERE name = 'approved'`).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("load approved count: %w", err)
	}
	return uint64(value), nil
}

// AddApprovedCount adjusts the counter atomically and returns the new
// value. The guard keeps the counter from going negative.
func (s *PostgresStore) AddApprovedCount(ctx context.Context, delta int64) (uint64, error) {
	var value int64
	err := s.db.QueryRowContext(ctx, `
		UPDATE issuer_counters SET value = value + $1
		WHERE name = 'approved' AND value + $1 >= 0
		RETURNING value
	`, delta).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, sentinel.ErrInvalidState
	}
	if err != nil {
		return 0, fmt.Errorf("adjust approved count: %w", err)
	}
	return uint64(value), nil
}
