package handler

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"github.com/Eklavvyaaaaa/Carbonx/internal/platform/logger"
	"github.com/Eklavvyaaaaa/Carbonx/internal/retirement/service"
	"github.com/Eklavvyaaaaa/Carbonx/internal/retirement/store"
	"github.com/Eklavvyaaaaa/Carbonx/internal/settlement"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
	dErrors "github.com/Eklavvyaaaaa/Carbonx/pkg/domain-errors"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/testutil"
)

type tokenValidator map[string]domain.Address

func (v tokenValidator) Validate(token string) (domain.Address, error) {
	addr, ok := v[token]
	if !ok {
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	return addr, nil
}

type HandlerSuite struct {
	suite.Suite

	router chi.Router
	ledger *settlement.MemoryLedger
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	log := logger.New()
	s.ledger = settlement.NewMemoryLedger("contract")

	svc, err := service.New(service.Config{
		Creator:         "creator",
		ContractAddress: "contract",
	}, store.NewMemoryStore(), s.ledger, log, nil, nil)
	s.Require().NoError(err)

	validator := tokenValidator{
		"creator-token": "creator",
		"holder-token":  "holder",
	}

	s.router = chi.NewRouter()
	New(svc, log, validator).Register(s.router)
}

func (s *HandlerSuite) TestCounterFlow() {
	s.Run("non-creator cannot add supply", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/retirement/add-supply", map[string]uint64{"amount": 100})
		req.Header.Set("Authorization", "Bearer holder-token")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
	})

	s.Run("creator adds supply", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/retirement/add-supply", map[string]uint64{"amount": 100})
		req.Header.Set("Authorization", "Bearer creator-token")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusOK(s.T(), rr)
	})

	s.Run("anyone retires from the pool", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/retirement/retire", map[string]any{"amount": 60})
		req.Header.Set("Authorization", "Bearer holder-token")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusOK(s.T(), rr)
	})

	s.Run("over-retirement maps to 422", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/retirement/retire", map[string]any{"amount": 41})
		req.Header.Set("Authorization", "Bearer holder-token")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, string(dErrors.CodeInsufficientSupply))
	})

	s.Run("stats are open to read", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/retirement/stats")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "total_supply", float64(100))
		testutil.AssertJSONContains(s.T(), rr, "retired_credits", float64(60))
		testutil.AssertJSONContains(s.T(), rr, "available_supply", float64(40))
	})
}

func (s *HandlerSuite) TestTokenVerifiedRetire() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/retirement/init-asset", map[string]uint64{"asset": 2001})
	req.Header.Set("Authorization", "Bearer creator-token")
	testutil.AssertStatus(s.T(), testutil.DoRequest(s.router, req), http.StatusCreated)

	s.ledger.StageGroup("burn", settlement.Transfer{
		Sender:   "holder",
		Receiver: "contract",
		Asset:    2001,
		Amount:   50,
	})

	retire := testutil.NewJSONRequest(s.T(), http.MethodPost, "/retirement/retire", map[string]any{"group": "burn"})
	retire.Header.Set("Authorization", "Bearer holder-token")
	rr := testutil.DoRequest(s.router, retire)
	testutil.AssertStatusOK(s.T(), rr)

	stats := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/retirement/stats"))
	testutil.AssertJSONContains(s.T(), stats, "retired_credits", float64(50))
}
