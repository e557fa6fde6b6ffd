// Package service implements the attendance state machine: the verification-
// gated check-in, the gated check-out, the poll-driven auto-completion, and
// the read-side views. Handlers stay thin; every rule lives here or in the
// store's conditional writes.
package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"rollcall/internal/attendance/metrics"
	"rollcall/internal/attendance/models"
	"rollcall/internal/verify"
	id "rollcall/pkg/domain"
	"rollcall/pkg/platform/audit"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// AttendanceStore is the persistence dependency, satisfied by the attendance
// store implementations. See store.Store for the invariant contract.
type AttendanceStore interface {
	FindRecord(ctx context.Context, owner id.OwnerID) (*models.AttendanceRecord, error)
	FindDayRecord(ctx context.Context, owner id.OwnerID, date string) (*models.DayRecord, error)
	LatestDay(ctx context.Context, owner id.OwnerID) (string, *models.DayRecord, error)
	UpsertDayRecord(ctx context.Context, owner id.OwnerID, monthLabel string, day models.DayRecord) error
	CloseDayRecord(ctx context.Context, owner id.OwnerID, date string, exitTime string) error
}

// DefaultMatchThreshold is the maximum similarity distance accepted as the
// same person. Lower distance means more similar.
const DefaultMatchThreshold = 0.45

// DefaultWorkday is the duration after which an open entry is eligible for
// auto-completion.
const DefaultWorkday = 8 * time.Hour

// ReferenceResolver resolves the stored reference image for an owner.
// Satisfied by the account service.
type ReferenceResolver interface {
	ReferenceImage(ctx context.Context, owner id.OwnerID) (string, error)
}

// Service orchestrates the attendance gates over a Store, the account
// registry and the verification collaborator.
type Service struct {
	store          AttendanceStore
	accounts       ReferenceResolver
	verifier       verify.Verifier
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditor        *audit.Publisher
	tracer         trace.Tracer
	matchThreshold float64
	workday        time.Duration
	verifyTimeout  time.Duration
}

// Option customizes a Service.
type Option func(*Service)

// WithMatchThreshold overrides the verification acceptance threshold.
func WithMatchThreshold(threshold float64) Option {
	return func(s *Service) { s.matchThreshold = threshold }
}

// WithWorkday overrides the auto-completion working-day duration.
func WithWorkday(d time.Duration) Option {
	return func(s *Service) { s.workday = d }
}

// WithVerifyTimeout bounds the verification collaborator call.
func WithVerifyTimeout(d time.Duration) Option {
	return func(s *Service) { s.verifyTimeout = d }
}

// WithMetrics attaches the attendance metrics collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithAuditor attaches the audit publisher.
func WithAuditor(p *audit.Publisher) Option {
	return func(s *Service) { s.auditor = p }
}

func New(store AttendanceStore, accounts ReferenceResolver, verifier verify.Verifier, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:          store,
		accounts:       accounts,
		verifier:       verifier,
		logger:         logger,
		tracer:         otel.Tracer("rollcall/attendance"),
		matchThreshold: DefaultMatchThreshold,
		workday:        DefaultWorkday,
		verifyTimeout:  5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
