// Package service implements the retirement manager: permanent removal of
// credits from circulation, verified against burn transfers once a credit
// token is bound.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Eklavvyaaaaa/Carbonx/internal/platform/metrics"
	"github.com/Eklavvyaaaaa/Carbonx/internal/retirement/models"
	"github.com/Eklavvyaaaaa/Carbonx/internal/settlement"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
	dErrors "github.com/Eklavvyaaaaa/Carbonx/pkg/domain-errors"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/platform/audit"
)

// Store persists the retirement counters and the asset binding.
type Store interface {
	// BoundAsset returns the bound credit token, zero when unset.
	BoundAsset(ctx context.Context) (domain.AssetID, error)

	// BindAsset records the token; sentinel.ErrConflict once set.
	BindAsset(ctx context.Context, asset domain.AssetID) error

	// TotalSupply returns the cumulative retireable pool.
	TotalSupply(ctx context.Context) (uint64, error)

	// AddSupply grows the pool and returns the new value.
	AddSupply(ctx context.Context, amount uint64) (uint64, error)

	// RetiredCredits returns the cumulative retirement tally.
	RetiredCredits(ctx context.Context) (uint64, error)

	// AddRetired bumps the tally and returns the new value.
	AddRetired(ctx context.Context, amount uint64) (uint64, error)
}

// Config carries the deployment constants for the retirement manager.
type Config struct {
	// Creator is the privileged deployment account.
	Creator domain.Address

	// ContractAddress is the custody account burn transfers must name.
	ContractAddress domain.Address
}

// Service is the retirement state machine. Until a credit token is bound it
// runs as a plain counter pair: creator grows the pool, anyone retires from
// it. Once a token is bound, retirement is verified against the caller's
// atomic group and the tally follows the transferred amount. The mutex
// serializes each read-then-write sequence.
type Service struct {
	mu      sync.Mutex
	cfg     Config
	store   Store
	ledger  settlement.Ledger
	logger  *slog.Logger
	metrics *metrics.Metrics
	auditor audit.Publisher
}

// New creates the retirement service. ledger may be nil when the deployment
// runs counter-only.
func New(cfg Config, store Store, ledger settlement.Ledger, logger *slog.Logger, m *metrics.Metrics, auditor audit.Publisher) (*Service, error) {
	if store == nil {
		return nil, errors.New("retirement store is required")
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
		logger:  logger,
		metrics: m,
		auditor: auditor,
	}, nil
}

// InitAsset binds the credit token burns are verified against. Creator only,
// write-once.
func (s *Service) InitAsset(ctx context.Context, req models.InitAssetRequest) error {
	if err := req.Validate(); err != nil {
		return s.reject(err)
	}
	if req.Caller != s.cfg.Creator {
		return s.reject(dErrors.New(dErrors.CodeUnauthorized, "only creator can init asset"))
	}
	if s.ledger == nil {
		return dErrors.New(dErrors.CodeInternal, "no settlement ledger configured")
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

// AddSupply grows the retireable pool. Creator only; counter mode only — once
// a token is bound the pool tracks the external ledger, not this counter.
func (s *Service) AddSupply(ctx context.Context, req models.AddSupplyRequest) error {
	if err := req.Validate(); err != nil {
		return s.reject(err)
	}
	if req.Caller != s.cfg.Creator {
		return s.reject(dErrors.New(dErrors.CodeUnauthorized, "only creator can add supply"))
	}
	if req.Amount == 0 {
		return s.reject(dErrors.New(dErrors.CodeInvalidAmount, "amount must be greater than zero"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.AddSupply(ctx, req.Amount); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to grow supply")
	}

	audit.Log(ctx, s.logger, s.auditor, audit.Event{
		Category: audit.CategoryLedger,
		Action:   audit.ActionSupplyAdded,
		Actor:    req.Caller,
		Amount:   req.Amount,
	})
	return nil
}

// RetireCredits permanently removes credits from circulation. With a bound
// token the caller's atomic group must carry a transfer of that token into
// custody and the verified amount drives the tally; without one the request
// amount is debited from the counter pool.
func (s *Service) RetireCredits(ctx context.Context, req models.RetireRequest) error {
	if err := req.Validate(); err != nil {
		return s.reject(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bound, err := s.store.BoundAsset(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load asset binding")
	}
	if !bound.IsZero() {
		return s.retireVerified(ctx, req, bound)
	}
	return s.retireCounter(ctx, req)
}

// retireVerified checks the co-submitted burn transfer and records its
// amount. The transferred tokens stay in custody and never re-enter
// circulation.
func (s *Service) retireVerified(ctx context.Context, req models.RetireRequest, bound domain.AssetID) error {
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
	if transfer.Amount == 0 {
		return s.reject(dErrors.New(dErrors.CodeInvalidAmount, "amount must be greater than zero"))
	}

	if _, err := s.store.AddRetired(ctx, transfer.Amount); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record retirement")
	}

	if s.metrics != nil {
		s.metrics.CreditsRetired.Add(float64(transfer.Amount))
	}
	audit.Log(ctx, s.logger, s.auditor, audit.Event{
		Category: audit.CategoryLedger,
		Action:   audit.ActionCreditsRetired,
		Actor:    req.Caller,
		Asset:    bound,
		Amount:   transfer.Amount,
	})
	return nil
}

// retireCounter debits the counter pool directly.
func (s *Service) retireCounter(ctx context.Context, req models.RetireRequest) error {
	if req.Amount == 0 {
		return s.reject(dErrors.New(dErrors.CodeInvalidAmount, "amount must be greater than zero"))
	}

	total, err := s.store.TotalSupply(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load supply")
	}
	retired, err := s.store.RetiredCredits(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load retired credits")
	}
	if req.Amount > total-retired {
		return s.reject(dErrors.New(dErrors.CodeInsufficientSupply, "insufficient supply"))
	}

	if _, err := s.store.AddRetired(ctx, req.Amount); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record retirement")
	}

	if s.metrics != nil {
		s.metrics.CreditsRetired.Add(float64(req.Amount))
	}
	audit.Log(ctx, s.logger, s.auditor, audit.Event{
		Category: audit.CategoryLedger,
		Action:   audit.ActionCreditsRetired,
		Actor:    req.Caller,
		Amount:   req.Amount,
	})
	return nil
}

// RetiredCredits returns the cumulative retirement tally.
func (s *Service) RetiredCredits(ctx context.Context) (uint64, error) {
	retired, err := s.store.RetiredCredits(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load retired credits")
	}
	return retired, nil
}

// TotalSupply returns the cumulative retireable pool.
func (s *Service) TotalSupply(ctx context.Context) (uint64, error) {
	total, err := s.store.TotalSupply(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load supply")
	}
	return total, nil
}

// Stats returns the combined read-only view. AvailableSupply tracks the
// counter pool; with a bound token the external ledger holds the truth.
func (s *Service) Stats(ctx context.Context) (models.Stats, error) {
	bound, err := s.store.BoundAsset(ctx)
	if err != nil {
		return models.Stats{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load asset binding")
	}
	total, err := s.store.TotalSupply(ctx)
	if err != nil {
		return models.Stats{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load supply")
	}
	retired, err := s.store.RetiredCredits(ctx)
	if err != nil {
		return models.Stats{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load retired credits")
	}
	available := uint64(0)
	if total > retired {
		available = total - retired
	}
	return models.Stats{
		BoundAsset:      bound,
		TotalSupply:     total,
		RetiredCredits:  retired,
		AvailableSupply: available,
	}, nil
}

func (s *Service) reject(err error) error {
	if s.metrics != nil {
		s.metrics.RejectedActions.WithLabelValues(string(dErrors.CodeOf(err))).Inc()
	}
	return err
}
