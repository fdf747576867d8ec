// Package service implements the credit marketplace state machine: bonding
// curve pricing, backing-token custody, and creator deposits.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Eklavvyaaaaa/Carbonx/internal/marketplace/models"
	"github.com/Eklavvyaaaaa/Carbonx/internal/marketplace/pricing"
	"github.com/Eklavvyaaaaa/Carbonx/internal/platform/metrics"
	"github.com/Eklavvyaaaaa/Carbonx/internal/settlement"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
	dErrors "github.com/Eklavvyaaaaa/Carbonx/pkg/domain-errors"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/platform/audit"
)

// Store persists marketplace counters and the asset binding.
type Store interface {
	// BoundAsset returns the bound token, zero when unset.
	BoundAsset(ctx context.Context) (domain.AssetID, error)

	// BindAsset records the token; sentinel.ErrConflict once set.
	BindAsset(ctx context.Context, asset domain.AssetID) error

	// TotalCredits returns credits currently in circulation.
	TotalCredits(ctx context.Context) (uint64, error)

	// AddTotalCredits increments circulation and returns the new value.
	AddTotalCredits(ctx context.Context, amount uint64) (uint64, error)

	// Credits returns the per-account minted counter (legacy ledger mode).
	Credits(ctx context.Context, account domain.Address) (uint64, error)

	// AddCredits increments a per-account counter and returns the new value.
	AddCredits(ctx context.Context, account domain.Address, amount uint64) (uint64, error)
}

// RetiredReader exposes the retirement tally for the read-only marketplace
// stats; the retirement manager owns the counter.
type RetiredReader interface {
	RetiredCredits(ctx context.Context) (uint64, error)
}

// Config carries the deployment constants for the marketplace.
type Config struct {
	// Creator is the privileged deployment account.
	Creator domain.Address

	// ContractAddress is the custody account inbound payments must name.
	ContractAddress domain.Address

	// Curve prices every mint.
	Curve pricing.Curve

	// LegacyCounterMode keeps the pre-token counter-only behavior: local
	// per-account mint counters, creator-only minting, no pricing.
	LegacyCounterMode bool
}

// Service is the marketplace state machine. The mutex serializes
// read-then-write sequences on total supply so parallel buys cannot price
// against a stale curve position.
type Service struct {
	mu      sync.Mutex
	cfg     Config
	store   Store
	ledger  settlement.Ledger
	retired RetiredReader
	logger  *slog.Logger
	metrics *metrics.Metrics
	auditor audit.Publisher
}

// New creates the marketplace service. retired may be nil when no
// retirement manager is deployed alongside.
func New(cfg Config, store Store, ledger settlement.Ledger, retired RetiredReader, logger *slog.Logger, m *metrics.Metrics, auditor audit.Publisher) (*Service, error) {
	if store == nil {
		return nil, errors.New("marketplace store is required")
	}
	if ledger == nil {
		return nil, errors.New("settlement ledger is required")
	}
	if cfg.Creator.IsNil() {
		return nil, errors.New("creator address is required")
	}
	if cfg.ContractAddress.IsNil() {
		return nil, errors.New("contract address is required")
	}
	return &Service{
		cfg:     cfg,
		store:   store,
		ledger:  ledger,
		retired: retired,
		logger:  logger,
		metrics: m,
		auditor: auditor,
	}, nil
}

// InitAsset binds the backing token. Creator only, write-once. The
// zero-amount custody transfer establishes the deployment's ability to hold
// and send the token before any sale.
func (s *Service) InitAsset(ctx context.Context, req models.InitAssetRequest) error {
	if err := req.Validate(); err != nil {
		return s.reject(err)
	}
	if req.Caller != s.cfg.Creator {
		return s.reject(dErrors.New(dErrors.CodeUnauthorized, "only creator can init asset"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bound, err := s.store.BoundAsset(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load asset binding")
	}
	if !bound.IsZero() {
		return s.reject(dErrors.New(dErrors.CodeAlreadyInitialized, "asset already initialized"))
	}

	if err := s.ledger.Transfer(ctx, req.Asset, s.cfg.ContractAddress, 0); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "custody opt-in failed")
	}
	if err := s.store.BindAsset(ctx, req.Asset); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to bind asset")
	}

	audit.Log(ctx, s.logger, s.auditor, audit.Event{
		Category: audit.CategoryLedger,
		Action:   audit.ActionAssetBound,
		Actor:    req.Caller,
		Asset:    req.Asset,
	})
	return nil
}

// BuyCredits sells amount credits against the bonding curve. The payment
// must ride in the caller's atomic group, name this deployment as receiver,
// and cover the total cost at the pre-mint supply.
func (s *Service) BuyCredits(ctx context.Context, req models.BuyRequest) error {
	if err := req.Validate(); err != nil {
		return s.reject(err)
	}
	if req.Amount == 0 {
		return s.reject(dErrors.New(dErrors.CodeInvalidAmount, "amount must be greater than zero"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bound, err := s.store.BoundAsset(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load asset binding")
	}
	if bound.IsZero() {
		return s.reject(dErrors.New(dErrors.CodeAssetNotInitialized, "asset not initialized"))
	}

	payment, ok, err := s.ledger.GroupTransfer(ctx, req.Group)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to inspect atomic group")
	}
	if !ok || payment.Receiver != s.cfg.ContractAddress {
		return s.reject(dErrors.New(dErrors.CodeWrongRecipient, "payment must be to contract"))
	}
	if !payment.IsPayment() {
		return s.reject(dErrors.New(dErrors.CodeWrongAsset, "payment must be in native units"))
	}

	supply, err := s.store.TotalCredits(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load supply")
	}
	cost, ok := s.cfg.Curve.TotalCost(supply, req.Amount)
	if !ok {
		return s.reject(dErrors.New(dErrors.CodeInvalidAmount, "amount overflows total cost"))
	}
	if payment.Amount < cost {
		s.securityPayment(ctx, req.Caller, payment.Amount, cost)
		return s.reject(dErrors.New(dErrors.CodeInsufficientPayment, "insufficient payment"))
	}

	if err := s.ledger.Transfer(ctx, bound, req.Caller, req.Amount); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "credit delivery failed")
	}
	if _, err := s.store.AddTotalCredits(ctx, req.Amount); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to bump supply")
	}

	if s.metrics != nil {
		s.metrics.CreditsSold.Add(float64(req.Amount))
	}
	audit.Log(ctx, s.logger, s.auditor, audit.Event{
		Category: audit.CategoryLedger,
		Action:   audit.ActionCreditsBought,
		Actor:    req.Caller,
		Asset:    bound,
		Amount:   req.Amount,
	})
	return nil
}

// MintCredits records a creator deposit. In token mode the co-submitted
// transfer is verified and the custody balance on the external ledger is
// authoritative — no local counter moves, so the deposit is never counted
// twice against custody. In legacy mode it mints counter credits directly.
func (s *Service) MintCredits(ctx context.Context, req models.MintRequest) error {
	if err := req.Validate(); err != nil {
		return s.reject(err)
	}
	if req.Caller != s.cfg.Creator {
		return s.reject(dErrors.New(dErrors.CodeUnauthorized, "only creator can mint credits"))
	}

	if s.cfg.LegacyCounterMode {
		return s.mintLegacy(ctx, req)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bound, err := s.store.BoundAsset(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load asset binding")
	}
	if bound.IsZero() {
		return s.reject(dErrors.New(dErrors.CodeAssetNotInitialized, "asset not initialized"))
	}

	transfer, ok, err := s.ledger.GroupTransfer(ctx, req.Group)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to inspect atomic group")
	}
	if !ok || transfer.Receiver != s.cfg.ContractAddress {
		return s.reject(dErrors.New(dErrors.CodeWrongRecipient, "transfer must be to contract"))
	}
	if transfer.Asset != bound {
		return s.reject(dErrors.New(dErrors.CodeWrongAsset, "incorrect asset"))
	}

	if s.metrics != nil {
		s.metrics.CreditsMinted.Add(float64(transfer.Amount))
	}
	audit.Log(ctx, s.logger, s.auditor, audit.Event{
		Category: audit.CategoryLedger,
		Action:   audit.ActionCreditsMinted,
		Actor:    req.Caller,
		Asset:    bound,
		Amount:   transfer.Amount,
	})
	return nil
}

// mintLegacy is the historical counter-only mint: creator-only, no pricing,
// credits attributed to the caller's local counter.
func (s *Service) mintLegacy(ctx context.Context, req models.MintRequest) error {
	if req.Amount == 0 {
		return s.reject(dErrors.New(dErrors.CodeInvalidAmount, "amount must be greater than zero"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.AddTotalCredits(ctx, req.Amount); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to bump supply")
	}
	if _, err := s.store.AddCredits(ctx, req.Caller, req.Amount); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to credit account")
	}

	if s.metrics != nil {
		s.metrics.CreditsMinted.Add(float64(req.Amount))
	}
	audit.Log(ctx, s.logger, s.auditor, audit.Event{
		Category: audit.CategoryLedger,
		Action:   audit.ActionCreditsMinted,
		Actor:    req.Caller,
		Amount:   req.Amount,
	})
	return nil
}

// CurrentPrice returns the unit price at the current supply.
func (s *Service) CurrentPrice(ctx context.Context) (uint64, error) {
	supply, err := s.store.TotalCredits(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load supply")
	}
	return s.cfg.Curve.UnitPrice(supply), nil
}

// TotalCredits returns credits currently in circulation.
func (s *Service) TotalCredits(ctx context.Context) (uint64, error) {
	total, err := s.store.TotalCredits(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load supply")
	}
	return total, nil
}

// RetiredCredits returns the cumulative retirement tally, zero when no
// retirement manager is wired.
func (s *Service) RetiredCredits(ctx context.Context) (uint64, error) {
	if s.retired == nil {
		return 0, nil
	}
	retired, err := s.retired.RetiredCredits(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load retired credits")
	}
	return retired, nil
}

// Credits returns the per-account minted counter.
func (s *Service) Credits(ctx context.Context, account domain.Address) (uint64, error) {
	if account.IsNil() {
		return 0, dErrors.New(dErrors.CodeValidation, "account is required")
	}
	credits, err := s.store.Credits(ctx, account)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load credits")
	}
	return credits, nil
}

// Stats returns the combined read-only view.
func (s *Service) Stats(ctx context.Context) (models.Stats, error) {
	bound, err := s.store.BoundAsset(ctx)
	if err != nil {
		return models.Stats{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load asset binding")
	}
	total, err := s.store.TotalCredits(ctx)
	if err != nil {
		return models.Stats{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load supply")
	}
	retired, err := s.RetiredCredits(ctx)
	if err != nil {
		return models.Stats{}, err
	}
	return models.Stats{
		BoundAsset:     bound,
		TotalCredits:   total,
		RetiredCredits: retired,
		UnitPrice:      s.cfg.Curve.UnitPrice(total),
	}, nil
}

func (s *Service) reject(err error) error {
	if s.metrics != nil {
		s.metrics.RejectedActions.WithLabelValues(string(dErrors.CodeOf(err))).Inc()
	}
	return err
}

func (s *Service) securityPayment(ctx context.Context, actor domain.Address, paid, cost uint64) {
	audit.Log(ctx, s.logger, s.auditor, audit.Event{
		Category: audit.CategorySecurity,
		Action:   audit.ActionPaymentTooLow,
		Actor:    actor,
		Amount:   paid,
		Reason:   fmt.Sprintf("payment below total cost %d", cost),
	})
}
