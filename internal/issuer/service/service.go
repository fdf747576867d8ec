// Package service implements the issuer approval state machine: admin- or
// quorum-gated granting of issuer trust, with replay-proof voting.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Eklavvyaaaaa/Carbonx/internal/issuer/models"
	"github.com/Eklavvyaaaaa/Carbonx/internal/platform/metrics"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
	dErrors "github.com/Eklavvyaaaaa/Carbonx/pkg/domain-errors"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/platform/audit"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/platform/sentinel"
)

// Store persists registry records. Implementations return sentinel errors
// for infrastructure facts; the service translates them.
type Store interface {
	// Account returns the record for an address, or sentinel.ErrNotFound.
	Account(ctx context.Context, addr domain.Address) (*models.IssuerAccount, error)

	// SaveAccount upserts a record.
	SaveAccount(ctx context.Context, acct *models.IssuerAccount) error

	// HasVote reports whether the replay-guard record for a pair exists.
	HasVote(ctx context.Context, key domain.VoteKey) (bool, error)

	// PutVote persists a replay-guard record. Records are never cleared.
	PutVote(ctx context.Context, key domain.VoteKey) error

	// ApprovedCount returns the number of currently approved issuers.
	ApprovedCount(ctx context.Context) (uint64, error)

	// AddApprovedCount adjusts the approved counter and returns the new
	// value.
	AddApprovedCount(ctx context.Context, delta int64) (uint64, error)
}

// BalanceQuerier is the slice of the settlement layer the registry needs:
// the governance-token gate on voting.
type BalanceQuerier interface {
	HasBalance(ctx context.Context, account domain.Address, asset domain.AssetID) (bool, error)
}

// Config carries the deployment constants for the registry.
type Config struct {
	// Admin may approve and revoke unilaterally.
	Admin domain.Address

	// Quorum is the vote count that approves a candidate without admin
	// intervention.
	Quorum uint64

	// GovernanceAsset gates voting: only holders may vote.
	GovernanceAsset domain.AssetID
}

// Service is the issuer registry state machine. Every action applies fully
// or not at all; the internal mutex serializes read-then-write sequences on
// the shared counters so genuinely parallel callers cannot lose updates.
type Service struct {
	mu      sync.Mutex
	cfg     Config
	store   Store
	ledger  BalanceQuerier
	logger  *slog.Logger
	metrics *metrics.Metrics
	auditor audit.Publisher
}

// New creates the registry service.
func New(cfg Config, store Store, ledger BalanceQuerier, logger *slog.Logger, m *metrics.Metrics, auditor audit.Publisher) (*Service, error) {
	if store == nil {
		return nil, errors.New("issuer store is required")
	}
	if ledger == nil {
		return nil, errors.New("settlement ledger is required")
	}
	if cfg.Admin.IsNil() {
		return nil, errors.New("admin address is required")
	}
	if cfg.Quorum == 0 {
		return nil, errors.New("vote quorum must be positive")
	}
	if cfg.GovernanceAsset.IsZero() {
		return nil, errors.New("governance asset is required")
	}
	return &Service{
		cfg:     cfg,
		store:   store,
		ledger:  ledger,
		logger:  logger,
		metrics: m,
		auditor: auditor,
	}, nil
}

// Register applies for issuer status for the caller.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := req.Validate(); err != nil {
		return s.reject(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.account(ctx, req.Caller)
	if err != nil {
		return err
	}
	if acct.Registered {
		return s.reject(dErrors.New(dErrors.CodeAlreadyRegistered, "already registered"))
	}

	acct.Registered = true
	acct.VoteCount = 0
	if err := s.store.SaveAccount(ctx, acct); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save registration")
	}

	audit.Log(ctx, s.logger, s.auditor, audit.Event{
		Category: audit.CategoryGovernance,
		Action:   audit.ActionIssuerRegistered,
		Actor:    req.Caller,
		Subject:  req.Caller,
	})
	return nil
}

// Vote casts one vote for a pending candidate. The caller must hold a
// positive balance of the governance token; weight is always 1 per
// distinct (voter, candidate) pair regardless of balance magnitude.
func (s *Service) Vote(ctx context.Context, req models.VoteRequest) error {
	if err := req.Validate(); err != nil {
		return s.reject(err)
	}

	holds, err := s.ledger.HasBalance(ctx, req.Caller, s.cfg.GovernanceAsset)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to query governance balance")
	}
	if !holds {
		s.security(ctx, audit.ActionUnauthorized, req.Caller, req.Candidate, "no governance token")
		return s.reject(dErrors.New(dErrors.CodeUnauthorized, "must hold governance token"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	candidate, err := s.account(ctx, req.Candidate)
	if err != nil {
		return err
	}
	if !candidate.Registered {
		return s.reject(dErrors.New(dErrors.CodeCandidateNotRegistered, "candidate not registered"))
	}
	if candidate.Approved {
		return s.reject(dErrors.New(dErrors.CodeAlreadyApproved, "candidate already approved"))
	}

	key := domain.NewVoteKey(req.Caller, req.Candidate)
	voted, err := s.store.HasVote(ctx, key)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check vote record")
	}
	if voted {
		s.security(ctx, audit.ActionVoteReplayed, req.Caller, req.Candidate, "duplicate vote")
		return s.reject(dErrors.New(dErrors.CodeDuplicateVote, "already voted for this candidate"))
	}

	if err := s.store.PutVote(ctx, key); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record vote")
	}
	candidate.VoteCount++
	if err := s.store.SaveAccount(ctx, candidate); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save vote count")
	}

	if s.metrics != nil {
		s.metrics.VotesCast.Inc()
	}
	audit.Log(ctx, s.logger, s.auditor, audit.Event{
		Category: audit.CategoryGovernance,
		Action:   audit.ActionVoteCast,
		Actor:    req.Caller,
		Subject:  req.Candidate,
	})
	return nil
}

// Approve grants issuer status. Authorized when the caller is admin or the
// candidate has reached the vote quorum; the two predicates are an explicit
// union, not a hierarchy.
func (s *Service) Approve(ctx context.Context, req models.ApproveRequest) error {
	if err := req.Validate(); err != nil {
		return s.reject(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	candidate, err := s.account(ctx, req.Candidate)
	if err != nil {
		return err
	}

	isAdmin := req.Caller == s.cfg.Admin
	hasQuorum := candidate.VoteCount >= s.cfg.Quorum
	if !isAdmin && !hasQuorum {
		s.security(ctx, audit.ActionUnauthorized, req.Caller, req.Candidate, "not admin and below quorum")
		return s.reject(dErrors.New(dErrors.CodeUnauthorized, "admin or quorum required"))
	}
	if !candidate.Registered {
		return s.reject(dErrors.New(dErrors.CodeCandidateNotRegistered, "candidate not registered"))
	}
	if candidate.Approved {
		return s.reject(dErrors.New(dErrors.CodeAlreadyApproved, "candidate already approved"))
	}

	candidate.Approved = true
	if err := s.store.SaveAccount(ctx, candidate); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save approval")
	}
	count, err := s.store.AddApprovedCount(ctx, 1)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to bump approved count")
	}

	if s.metrics != nil {
		s.metrics.IssuersApproved.Inc()
		s.metrics.ApprovedIssuers.Set(float64(count))
	}
	audit.Log(ctx, s.logger, s.auditor, audit.Event{
		Category: audit.CategoryGovernance,
		Action:   audit.ActionIssuerApproved,
		Actor:    req.Caller,
		Subject:  req.Candidate,
	})
	return nil
}

// Revoke withdraws issuer status. Admin only. Vote counts and replay-guard
// records stay in place: once revoked, prior votes remain spent and cannot
// be recast.
func (s *Service) Revoke(ctx context.Context, req models.RevokeRequest) error {
	if err := req.Validate(); err != nil {
		return s.reject(err)
	}

	if req.Caller != s.cfg.Admin {
		s.security(ctx, audit.ActionUnauthorized, req.Caller, req.Account, "revoke requires admin")
		return s.reject(dErrors.New(dErrors.CodeUnauthorized, "only admin can revoke"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.account(ctx, req.Account)
	if err != nil {
		return err
	}
	if !acct.Approved {
		return s.reject(dErrors.New(dErrors.CodeNotApproved, "account not approved"))
	}

	acct.Approved = false
	if err := s.store.SaveAccount(ctx, acct); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save revocation")
	}
	count, err := s.store.AddApprovedCount(ctx, -1)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to drop approved count")
	}

	if s.metrics != nil {
		s.metrics.IssuersRevoked.Inc()
		s.metrics.ApprovedIssuers.Set(float64(count))
	}
	audit.Log(ctx, s.logger, s.auditor, audit.Event{
		Category: audit.CategoryGovernance,
		Action:   audit.ActionIssuerRevoked,
		Actor:    req.Caller,
		Subject:  req.Account,
	})
	return nil
}

// Status returns the tri-state view of an account without mutation.
func (s *Service) Status(ctx context.Context, account domain.Address) (models.StatusResult, error) {
	if account.IsNil() {
		return models.StatusResult{}, dErrors.New(dErrors.CodeValidation, "account is required")
	}
	acct, err := s.store.Account(ctx, account)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return models.StatusResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load account")
	}
	result := models.StatusResult{
		Account: account,
		Status:  acct.Status(),
	}
	if acct != nil {
		result.VoteCount = acct.VoteCount
	}
	return result, nil
}

// ApprovedCount returns the number of currently approved issuers.
func (s *Service) ApprovedCount(ctx context.Context) (uint64, error) {
	count, err := s.store.ApprovedCount(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load approved count")
	}
	return count, nil
}

// account loads a record, mapping absence to a zero-value record keyed by
// the address (sparse per-account state, absent reads as zero).
func (s *Service) account(ctx context.Context, addr domain.Address) (*models.IssuerAccount, error) {
	acct, err := s.store.Account(ctx, addr)
	if errors.Is(err, sentinel.ErrNotFound) {
		return &models.IssuerAccount{Address: addr}, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load account")
	}
	return acct, nil
}

// reject counts a deterministic rejection. The shared state stays valid;
// retries belong to the caller.
func (s *Service) reject(err error) error {
	if s.metrics != nil {
		s.metrics.RejectedActions.WithLabelValues(string(dErrors.CodeOf(err))).Inc()
	}
	return err
}

func (s *Service) security(ctx context.Context, action audit.Action, actor, subject domain.Address, reason string) {
	audit.Log(ctx, s.logger, s.auditor, audit.Event{
		Category: audit.CategorySecurity,
		Action:   action,
		Actor:    actor,
		Subject:  subject,
		Reason:   reason,
	})
}
