package service

import (
	"context"
	"testing"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"github.com/Eklavvyaaaaa/Carbonx/internal/marketplace/models"
	"github.com/Eklavvyaaaaa/Carbonx/internal/marketplace/pricing"
	"github.com/Eklavvyaaaaa/Carbonx/internal/marketplace/store"
	"github.com/Eklavvyaaaaa/Carbonx/internal/platform/logger"
	"github.com/Eklavvyaaaaa/Carbonx/internal/platform/metrics"
	"github.com/Eklavvyaaaaa/Carbonx/internal/settlement"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
	dErrors "github.com/Eklavvyaaaaa/Carbonx/pkg/domain-errors"
)

const (
	creator  = domain.Address("creator")
	contract = domain.Address("contract")
	buyer    = domain.Address("buyer")

	creditAsset = domain.AssetID(2001)
	basePrice   = 100_000
	slope       = 1
)

type MarketplaceSuite struct {
	suite.Suite

	ctx    context.Context
	store  *store.MemoryStore
	ledger *settlement.MemoryLedger
	svc    *Service
}

func TestMarketplaceSuite(t *testing.T) {
	suite.Run(t, new(MarketplaceSuite))
}

func (s *MarketplaceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = store.NewMemoryStore()
	s.ledger = settlement.NewMemoryLedger(contract)
	s.svc = s.newService(false)
}

func (s *MarketplaceSuite) newService(legacy bool) *Service {
	svc, err := New(Config{
		Creator:           creator,
		ContractAddress:   contract,
		Curve:             pricing.Curve{Base: basePrice, Slope: slope},
		LegacyCounterMode: legacy,
	}, s.store, s.ledger, nil, logger.New(), nil, nil)
	s.Require().NoError(err)
	return svc
}

// initAsset binds the credit token and stocks custody for deliveries.
func (s *MarketplaceSuite) initAsset() {
	s.Require().NoError(s.svc.InitAsset(s.ctx, models.InitAssetRequest{
		Caller: creator,
		Asset:  creditAsset,
	}))
	s.ledger.Credit(contract, creditAsset, 1_000_000)
}

// stagePayment registers a native-unit payment to the given receiver inside
// a group and returns the group ID.
func (s *MarketplaceSuite) stagePayment(receiver domain.Address, amount uint64) settlement.GroupID {
	group := settlement.GroupID("grp-" + receiver.String())
	s.ledger.StageGroup(group, settlement.Transfer{
		Sender:   buyer,
		Receiver: receiver,
		Amount:   amount,
	})
	return group
}

func (s *MarketplaceSuite) TestInitAsset() {
	s.Run("non-creator rejected", func() {
		err := s.svc.InitAsset(s.ctx, models.InitAssetRequest{Caller: buyer, Asset: creditAsset})
		s.Equal(dErrors.CodeUnauthorized, dErrors.CodeOf(err))
	})

	s.Run("creator binds the token", func() {
		s.Require().NoError(s.svc.InitAsset(s.ctx, models.InitAssetRequest{Caller: creator, Asset: creditAsset}))

		stats, err := s.svc.Stats(s.ctx)
		s.Require().NoError(err)
		s.Equal(creditAsset, stats.BoundAsset)
	})

	s.Run("binding is write-once", func() {
		err := s.svc.InitAsset(s.ctx, models.InitAssetRequest{Caller: creator, Asset: domain.AssetID(9)})
		s.Equal(dErrors.CodeAlreadyInitialized, dErrors.CodeOf(err))

		stats, err := s.svc.Stats(s.ctx)
		s.Require().NoError(err)
		s.Equal(creditAsset, stats.BoundAsset)
	})
}

func (s *MarketplaceSuite) TestBuyCredits() {
	s.Run("buy before init rejected", func() {
		err := s.svc.BuyCredits(s.ctx, models.BuyRequest{Caller: buyer, Group: "g", Amount: 1})
		s.Equal(dErrors.CodeAssetNotInitialized, dErrors.CodeOf(err))
	})

	s.initAsset()

	s.Run("zero amount rejected", func() {
		err := s.svc.BuyCredits(s.ctx, models.BuyRequest{Caller: buyer, Group: "g", Amount: 0})
		s.Equal(dErrors.CodeInvalidAmount, dErrors.CodeOf(err))
	})

	s.Run("group without payment rejected", func() {
		err := s.svc.BuyCredits(s.ctx, models.BuyRequest{Caller: buyer, Group: "missing", Amount: 1})
		s.Equal(dErrors.CodeWrongRecipient, dErrors.CodeOf(err))
	})

	s.Run("payment to wrong receiver rejected", func() {
		group := s.stagePayment("somebody-else", basePrice)
		err := s.svc.BuyCredits(s.ctx, models.BuyRequest{Caller: buyer, Group: group, Amount: 1})
		s.Equal(dErrors.CodeWrongRecipient, dErrors.CodeOf(err))
	})

	s.Run("token transfer instead of payment rejected", func() {
		group := settlement.GroupID("asset-group")
		s.ledger.StageGroup(group, settlement.Transfer{
			Sender:   buyer,
			Receiver: contract,
			Asset:    creditAsset,
			Amount:   basePrice,
		})
		err := s.svc.BuyCredits(s.ctx, models.BuyRequest{Caller: buyer, Group: group, Amount: 1})
		s.Equal(dErrors.CodeWrongAsset, dErrors.CodeOf(err))
	})

	s.Run("underpayment by one unit rejected", func() {
		// 10 credits at supply 0 cost 10 * 100000; one unit short fails.
		group := s.stagePayment(contract, 999_999)
		err := s.svc.BuyCredits(s.ctx, models.BuyRequest{Caller: buyer, Group: group, Amount: 10})
		s.Equal(dErrors.CodeInsufficientPayment, dErrors.CodeOf(err))

		total, err := s.svc.TotalCredits(s.ctx)
		s.Require().NoError(err)
		s.EqualValues(0, total)
		s.EqualValues(0, s.ledger.Balance(buyer, creditAsset))
	})

	s.Run("amount whose cost wraps rejected", func() {
		// 1<<60 units at the base price exceeds 64 bits; a wrapped cost
		// would read as zero and let any payment through.
		group := s.stagePayment(contract, 0)
		err := s.svc.BuyCredits(s.ctx, models.BuyRequest{Caller: buyer, Group: group, Amount: 1 << 60})
		s.Equal(dErrors.CodeInvalidAmount, dErrors.CodeOf(err))

		total, err := s.svc.TotalCredits(s.ctx)
		s.Require().NoError(err)
		s.EqualValues(0, total)
		s.EqualValues(0, s.ledger.Balance(buyer, creditAsset))
	})

	s.Run("exact payment delivers credits", func() {
		group := s.stagePayment(contract, 1_000_000)
		s.Require().NoError(s.svc.BuyCredits(s.ctx, models.BuyRequest{Caller: buyer, Group: group, Amount: 10}))

		total, err := s.svc.TotalCredits(s.ctx)
		s.Require().NoError(err)
		s.EqualValues(10, total)
		s.EqualValues(10, s.ledger.Balance(buyer, creditAsset))
	})

	s.Run("price rises with supply", func() {
		price, err := s.svc.CurrentPrice(s.ctx)
		s.Require().NoError(err)
		s.EqualValues(basePrice+10*slope, price)

		// The old price no longer covers a unit at the new supply.
		group := s.stagePayment(contract, basePrice)
		err = s.svc.BuyCredits(s.ctx, models.BuyRequest{Caller: buyer, Group: group, Amount: 1})
		s.Equal(dErrors.CodeInsufficientPayment, dErrors.CodeOf(err))
	})

	s.Run("overpayment accepted", func() {
		group := s.stagePayment(contract, 10_000_000)
		s.Require().NoError(s.svc.BuyCredits(s.ctx, models.BuyRequest{Caller: buyer, Group: group, Amount: 1}))

		total, err := s.svc.TotalCredits(s.ctx)
		s.Require().NoError(err)
		s.EqualValues(11, total)
	})
}

// Registered once per test binary; prometheus collectors cannot be
// registered twice.
var testMetrics = metrics.New()

func (s *MarketplaceSuite) TestMintTracksMintedCounter() {
	svc, err := New(Config{
		Creator:         creator,
		ContractAddress: contract,
		Curve:           pricing.Curve{Base: basePrice, Slope: slope},
	}, s.store, s.ledger, nil, logger.New(), testMetrics, nil)
	s.Require().NoError(err)
	s.Require().NoError(svc.InitAsset(s.ctx, models.InitAssetRequest{Caller: creator, Asset: creditAsset}))

	group := settlement.GroupID("metric-deposit")
	s.ledger.StageGroup(group, settlement.Transfer{
		Sender:   creator,
		Receiver: contract,
		Asset:    creditAsset,
		Amount:   500,
	})

	before := promtestutil.ToFloat64(testMetrics.CreditsMinted)
	s.Require().NoError(svc.MintCredits(s.ctx, models.MintRequest{Caller: creator, Group: group}))
	s.InDelta(before+500, promtestutil.ToFloat64(testMetrics.CreditsMinted), 0.001)
}

func (s *MarketplaceSuite) TestMintCredits() {
	s.initAsset()

	s.Run("non-creator rejected", func() {
		err := s.svc.MintCredits(s.ctx, models.MintRequest{Caller: buyer, Group: "g"})
		s.Equal(dErrors.CodeUnauthorized, dErrors.CodeOf(err))
	})

	s.Run("deposit of wrong asset rejected", func() {
		group := settlement.GroupID("wrong-asset")
		s.ledger.StageGroup(group, settlement.Transfer{
			Sender:   creator,
			Receiver: contract,
			Asset:    domain.AssetID(7),
			Amount:   500,
		})
		err := s.svc.MintCredits(s.ctx, models.MintRequest{Caller: creator, Group: group})
		s.Equal(dErrors.CodeWrongAsset, dErrors.CodeOf(err))
	})

	s.Run("deposit to wrong receiver rejected", func() {
		group := settlement.GroupID("wrong-receiver")
		s.ledger.StageGroup(group, settlement.Transfer{
			Sender:   creator,
			Receiver: buyer,
			Asset:    creditAsset,
			Amount:   500,
		})
		err := s.svc.MintCredits(s.ctx, models.MintRequest{Caller: creator, Group: group})
		s.Equal(dErrors.CodeWrongRecipient, dErrors.CodeOf(err))
	})

	s.Run("verified deposit leaves counters alone", func() {
		group := settlement.GroupID("deposit")
		s.ledger.StageGroup(group, settlement.Transfer{
			Sender:   creator,
			Receiver: contract,
			Asset:    creditAsset,
			Amount:   500,
		})
		s.Require().NoError(s.svc.MintCredits(s.ctx, models.MintRequest{Caller: creator, Group: group}))

		total, err := s.svc.TotalCredits(s.ctx)
		s.Require().NoError(err)
		s.EqualValues(0, total)
	})
}

func (s *MarketplaceSuite) TestMintLegacyMode() {
	svc := s.newService(true)

	s.Run("zero amount rejected", func() {
		err := svc.MintCredits(s.ctx, models.MintRequest{Caller: creator, Amount: 0})
		s.Equal(dErrors.CodeInvalidAmount, dErrors.CodeOf(err))
	})

	s.Run("mint grows supply and caller counter", func() {
		s.Require().NoError(svc.MintCredits(s.ctx, models.MintRequest{Caller: creator, Amount: 40}))

		total, err := svc.TotalCredits(s.ctx)
		s.Require().NoError(err)
		s.EqualValues(40, total)

		credits, err := svc.Credits(s.ctx, creator)
		s.Require().NoError(err)
		s.EqualValues(40, credits)
	})
}

func (s *MarketplaceSuite) TestStats() {
	s.initAsset()
	group := s.stagePayment(contract, 1_000_000)
	s.Require().NoError(s.svc.BuyCredits(s.ctx, models.BuyRequest{Caller: buyer, Group: group, Amount: 10}))

	stats, err := s.svc.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(creditAsset, stats.BoundAsset)
	s.EqualValues(10, stats.TotalCredits)
	s.EqualValues(0, stats.RetiredCredits)
	s.EqualValues(basePrice+10*slope, stats.UnitPrice)
}

// retiredStub satisfies RetiredReader with a fixed tally.
type retiredStub uint64

func (r retiredStub) RetiredCredits(context.Context) (uint64, error) {
	return uint64(r), nil
}

func (s *MarketplaceSuite) TestRetiredReaderWiring() {
	svc, err := New(Config{
		Creator:         creator,
		ContractAddress: contract,
		Curve:           pricing.Curve{Base: basePrice, Slope: slope},
	}, s.store, s.ledger, retiredStub(123), logger.New(), nil, nil)
	s.Require().NoError(err)

	retired, err := svc.RetiredCredits(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(123, retired)
}
