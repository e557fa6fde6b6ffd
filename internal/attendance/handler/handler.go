// Package handler exposes the attendance operations over HTTP. It decodes
// requests, resolves the owner from the authenticated context, and delegates
// every rule to the service.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rollcall/internal/attendance/service"
	"rollcall/internal/platform/middleware"
	"rollcall/internal/transport/http/shared"
	id "rollcall/pkg/domain"
	dErrors "rollcall/pkg/domain-errors"
	"rollcall/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the attendance operations the handler needs.
type Service interface {
	CheckIn(ctx context.Context, owner id.OwnerID, liveSample []byte) (service.CheckInResult, error)
	CheckOut(ctx context.Context, owner id.OwnerID, verified bool) (service.CheckOutResult, error)
	Reconcile(ctx context.Context, owner id.OwnerID) (service.ReconcileResult, error)
	Status(ctx context.Context, owner id.OwnerID) (service.StatusView, error)
	Calendar(ctx context.Context, owner id.OwnerID) (service.CalendarView, error)
}

// Handler handles attendance endpoints.
type Handler struct {
	logger     *slog.Logger
	attendance Service
	validator  middleware.TokenValidator
}

// New creates an attendance Handler.
func New(attendance Service, validator middleware.TokenValidator, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, attendance: attendance, validator: validator}
}

// Register mounts the attendance routes. All of them require auth; the owner
// is always the token subject.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth(h.validator, h.logger))
	router.Post("/attendance/check-in", h.handleCheckIn)
	router.Post("/attendance/check-out", h.handleCheckOut)
	router.Post("/attendance/reconcile", h.handleReconcile)
	router.Get("/attendance/status", h.handleStatus)
	router.Get("/attendance/calendar", h.handleCalendar)
	r.Mount("/", router)
}

type checkInRequest struct {
	// Image is the base64-encoded live sample captured by the client.
	Image string `json:"image"`
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner := requestcontext.Owner(ctx)

	var req checkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid check-in request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	sample, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "image must be base64-encoded"))
		return
	}

	result, err := h.attendance.CheckIn(ctx, owner, sample)
	if err != nil {
		h.logOperationError(ctx, "check-in failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteSuccess(w, "attendance marked", result)
}

type checkOutRequest struct {
	Verified bool `json:"verified"`
}

func (h *Handler) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner := requestcontext.Owner(ctx)

	var req checkOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.attendance.CheckOut(ctx, owner, req.Verified)
	if err != nil {
		h.logOperationError(ctx, "check-out failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteSuccess(w, "checked out", result)
}

func (h *Handler) handleReconcile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner := requestcontext.Owner(ctx)

	result, err := h.attendance.Reconcile(ctx, owner)
	if err != nil {
		h.logOperationError(ctx, "reconcile failed", err)
		shared.WriteError(w, err)
		return
	}
	message := "attendance auto-completed"
	if !result.AutoUpdated {
		message = "working day still in progress"
	}
	shared.WriteSuccess(w, message, result)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view, err := h.attendance.Status(ctx, requestcontext.Owner(ctx))
	if err != nil {
		h.logOperationError(ctx, "status query failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteSuccess(w, "", view)
}

func (h *Handler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view, err := h.attendance.Calendar(ctx, requestcontext.Owner(ctx))
	if err != nil {
		h.logOperationError(ctx, "calendar query failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteSuccess(w, "", view)
}

// logOperationError logs at warn for expected rejections and error for
// everything else. Conflicts are routine (duplicate check-in, reconcile
// losing the close race) and must not page anyone.
func (h *Handler) logOperationError(ctx context.Context, msg string, err error) {
	attrs := []any{
		"request_id", middleware.GetRequestID(ctx),
		"error", err.Error(),
	}
	switch dErrors.CodeOf(err) {
	case dErrors.CodeInternal, dErrors.CodeTimeout:
		h.logger.ErrorContext(ctx, msg, attrs...)
	default:
		h.logger.WarnContext(ctx, msg, attrs...)
	}
}
