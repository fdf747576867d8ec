// Package handler exposes the retirement manager over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Eklavvyaaaaa/Carbonx/internal/platform/middleware"
	retireModel "github.com/Eklavvyaaaaa/Carbonx/internal/retirement/models"
	"github.com/Eklavvyaaaaa/Carbonx/internal/settlement"
	"github.com/Eklavvyaaaaa/Carbonx/internal/transport/http/shared"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
	dErrors "github.com/Eklavvyaaaaa/Carbonx/pkg/domain-errors"
)

// Service defines the retirement operations the handler needs.
type Service interface {
	InitAsset(ctx context.Context, req retireModel.InitAssetRequest) error
	AddSupply(ctx context.Context, req retireModel.AddSupplyRequest) error
	RetireCredits(ctx context.Context, req retireModel.RetireRequest) error
	Stats(ctx context.Context) (retireModel.Stats, error)
}

// Handler handles retirement endpoints.
type Handler struct {
	logger     *slog.Logger
	retirement Service
	validator  middleware.CallerValidator
}

// New creates a retirement Handler.
func New(retirement Service, logger *slog.Logger, validator middleware.CallerValidator) *Handler {
	return &Handler{
		logger:     logger,
		retirement: retirement,
		validator:  validator,
	}
}

// Register mounts the retirement routes.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireCaller(h.validator, h.logger))
		r.Post("/retirement/init-asset", h.handleInitAsset)
		r.Post("/retirement/add-supply", h.handleAddSupply)
		r.Post("/retirement/retire", h.handleRetire)
	})
	r.Get("/retirement/stats", h.handleStats)
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
	if err := h.retirement.InitAsset(ctx, retireModel.InitAssetRequest{
		Caller: middleware.GetCaller(ctx),
		Asset:  asset,
	}); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, map[string]string{"status": "asset bound"})
}

type addSupplyBody struct {
	Amount uint64 `json:"amount"`
}

func (h *Handler) handleAddSupply(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var body addSupplyBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := h.retirement.AddSupply(ctx, retireModel.AddSupplyRequest{
		Caller: middleware.GetCaller(ctx),
		Amount: body.Amount,
	}); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "supply added"})
}

type retireBody struct {
	Group  string `json:"group"`
	Amount uint64 `json:"amount"`
}

func (h *Handler) handleRetire(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var body retireBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := h.retirement.RetireCredits(ctx, retireModel.RetireRequest{
		Caller: middleware.GetCaller(ctx),
		Group:  settlement.GroupID(body.Group),
		Amount: body.Amount,
	}); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "credits retired"})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.retirement.Stats(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, stats)
}
