// Package handler exposes the issuer registry over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	issuerModel "github.com/Eklavvyaaaaa/Carbonx/internal/issuer/models"
	"github.com/Eklavvyaaaaa/Carbonx/internal/platform/middleware"
	"github.com/Eklavvyaaaaa/Carbonx/internal/transport/http/shared"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
	dErrors "github.com/Eklavvyaaaaa/Carbonx/pkg/domain-errors"
)

// Service defines the registry operations the handler needs.
type Service interface {
	Register(ctx context.Context, req issuerModel.RegisterRequest) error
	Vote(ctx context.Context, req issuerModel.VoteRequest) error
	Approve(ctx context.Context, req issuerModel.ApproveRequest) error
	Revoke(ctx context.Context, req issuerModel.RevokeRequest) error
	Status(ctx context.Context, account domain.Address) (issuerModel.StatusResult, error)
	ApprovedCount(ctx context.Context) (uint64, error)
}

// Handler handles issuer registry endpoints.
type Handler struct {
	logger    *slog.Logger
	registry  Service
	validator middleware.CallerValidator
}

// New creates a registry Handler.
func New(registry Service, logger *slog.Logger, validator middleware.CallerValidator) *Handler {
	return &Handler{
		logger:    logger,
		registry:  registry,
		validator: validator,
	}
}

// Register mounts the registry routes. Mutating routes require a caller
// token; the read-only accessors stay open for polling.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireCaller(h.validator, h.logger))
		r.Post("/issuers/register", h.handleRegister)
		r.Post("/issuers/vote", h.handleVote)
		r.Post("/issuers/approve", h.handleApprove)
		r.Post("/issuers/revoke", h.handleRevoke)
	})
	r.Get("/issuers/{account}", h.handleStatus)
	r.Get("/issuers/approved-count", h.handleApprovedCount)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.registry.Register(ctx, issuerModel.RegisterRequest{
		Caller: middleware.GetCaller(ctx),
	}); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, map[string]string{"status": "registered"})
}

type voteBody struct {
	Candidate string `json:"candidate"`
}

func (h *Handler) handleVote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var body voteBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	candidate, err := domain.ParseAddress(body.Candidate)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.registry.Vote(ctx, issuerModel.VoteRequest{
		Caller:    middleware.GetCaller(ctx),
		Candidate: candidate,
	}); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "vote recorded"})
}

type approveBody struct {
	Candidate string `json:"candidate"`
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var body approveBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	candidate, err := domain.ParseAddress(body.Candidate)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.registry.Approve(ctx, issuerModel.ApproveRequest{
		Caller:    middleware.GetCaller(ctx),
		Candidate: candidate,
	}); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "approved"})
}

type revokeBody struct {
	Account string `json:"account"`
}

func (h *Handler) handleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var body revokeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	account, err := domain.ParseAddress(body.Account)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.registry.Revoke(ctx, issuerModel.RevokeRequest{
		Caller:  middleware.GetCaller(ctx),
		Account: account,
	}); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "revoked"})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	account, err := domain.ParseAddress(chi.URLParam(r, "account"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	result, err := h.registry.Status(r.Context(), account)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleApprovedCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.registry.ApprovedCount(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]uint64{"approved_count": count})
}
