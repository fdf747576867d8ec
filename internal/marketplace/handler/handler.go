// Package handler exposes the credit marketplace over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	marketModel "github.com/Eklavvyaaaaa/Carbonx/internal/marketplace/models"
	"github.com/Eklavvyaaaaa/Carbonx/internal/platform/middleware"
	"github.com/Eklavvyaaaaa/Carbonx/internal/settlement"
	"github.com/Eklavvyaaaaa/Carbonx/internal/transport/http/shared"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
	dErrors "github.com/Eklavvyaaaaa/Carbonx/pkg/domain-errors"
)

// Service defines the marketplace operations the handler needs.
type Service interface {
	InitAsset(ctx context.Context, req marketModel.InitAssetRequest) error
	BuyCredits(ctx context.Context, req marketModel.BuyRequest) error
	MintCredits(ctx context.Context, req marketModel.MintRequest) error
	Credits(ctx context.Context, account domain.Address) (uint64, error)
	Stats(ctx context.Context) (marketModel.Stats, error)
}

// Handler handles marketplace endpoints.
type Handler struct {
	logger    *slog.Logger
	market    Service
	validator middleware.CallerValidator
}

// New creates a marketplace Handler.
func New(market Service, logger *slog.Logger, validator middleware.CallerValidator) *Handler {
	return &Handler{
		logger:    logger,
		market:    market,
		validator: validator,
	}
}

// Register mounts the marketplace routes.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireCaller(h.validator, h.logger))
		r.Post("/marketplace/init-asset", h.handleInitAsset)
		r.Post("/marketplace/buy", h.handleBuy)
		r.Post("/marketplace/mint", h.handleMint)
	})
	r.Get("/marketplace/stats", h.handleStats)
	r.Get("/marketplace/credits/{account}", h.handleCredits)
}

type initAssetBody struct {
	Asset uint64 `json:"asset"`
}

func (h *Handler) handleInitAsset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var body initAssetBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	asset, err := domain.ParseAssetID(body.Asset)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.market.InitAsset(ctx, marketModel.InitAssetRequest{
		Caller: middleware.GetCaller(ctx),
		Asset:  asset,
	}); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, map[string]string{"status": "asset bound"})
}

type buyBody struct {
	Group  string `json:"group"`
	Amount uint64 `json:"amount"`
}

func (h *Handler) handleBuy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var body buyBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := h.market.BuyCredits(ctx, marketModel.BuyRequest{
		Caller: middleware.GetCaller(ctx),
		Group:  settlement.GroupID(body.Group),
		Amount: body.Amount,
	}); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "credits delivered"})
}

type mintBody struct {
	Group  string `json:"group"`
	Amount uint64 `json:"amount"`
}

func (h *Handler) handleMint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var body mintBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := h.market.MintCredits(ctx, marketModel.MintRequest{
		Caller: middleware.GetCaller(ctx),
		Group:  settlement.GroupID(body.Group),
		Amount: body.Amount,
	}); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "deposit recorded"})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.market.Stats(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleCredits(w http.ResponseWriter, r *http.Request) {
	account, err := domain.ParseAddress(chi.URLParam(r, "account"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	credits, err := h.market.Credits(r.Context(), account)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]uint64{"credits": credits})
}
