package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rollcall/internal/account"
	"rollcall/internal/platform/middleware"
	"rollcall/internal/transport/http/shared"
	dErrors "rollcall/pkg/domain-errors"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the account operations the handler needs.
type Service interface {
	Register(ctx context.Context, owner, name, password, referenceImage string) (*account.Account, error)
	Login(ctx context.Context, owner, password string) (string, error)
}

// Handler handles account endpoints (registration and token issuance).
type Handler struct {
	logger   *slog.Logger
	accounts Service
}

func New(accounts Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, accounts: accounts}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)
}

type registerRequest struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	Password       string `json:"password"`
	ReferenceImage string `json:"referenceImage"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	acct, err := h.accounts.Register(ctx, req.Email, req.Name, req.Password, req.ReferenceImage)
	if err != nil {
		h.logger.WarnContext(ctx, "registration rejected",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteSuccess(w, "account created", map[string]string{
		"id":    acct.ID.String(),
		"owner": acct.Owner.String(),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	token, err := h.accounts.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "login rejected",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteSuccess(w, "", map[string]string{"accessToken": token})
}
