package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rollcall/internal/attendance/models"
	id "rollcall/pkg/domain"
	"rollcall/pkg/platform/sentinel"
)

// PostgresStore persists attendance days as one row per (owner, date).
// Months are a projection: rows group by month_label at read time, ordered by
// date, so the aggregate shape clients see is identical to the in-memory
// representation.
//
// The two invariant-bearing writes map onto native conditional statements:
// insert-if-absent is ON CONFLICT DO NOTHING on the (owner, day_date) primary
// key, and the close is UPDATE ... WHERE exit_time IS NULL. The database is
// the arbiter of the checkout/reconcile race; no advisory locks needed.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) FindRecord(ctx context.Context, owner id.OwnerID) (*models.AttendanceRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT month_label, day_date, entry_time, COALESCE(exit_time, ''), verified
		FROM attendance_days
		WHERE owner = $1
		ORDER BY day_date ASC`, owner.String())
	if err != nil {
		return nil, fmt.Errorf("find attendance record: %w", err)
	}
	defer rows.Close()

	rec := models.NewAttendanceRecord(owner)
	for rows.Next() {
		var label string
		day := models.DayRecord{}
		if err := rows.Scan(&label, &day.Date, &day.EntryTime, &day.ExitTime, &day.Verified); err != nil {
			return nil, fmt.Errorf("scan attendance day: %w", err)
		}
		month := rec.EnsureMonth(label)
		month.Days = append(month.Days, &day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance days: %w", err)
	}
	if len(rec.Months) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return rec, nil
}

func (s *PostgresStore) FindDayRecord(ctx context.Context, owner id.OwnerID, date string) (*models.DayRecord, error) {
	day := models.DayRecord{}
	err := s.pool.QueryRow(ctx, `
		SELECT day_date, entry_time, COALESCE(exit_time, ''), verified
		FROM attendance_days
		WHERE owner = $1 AND day_date = $2`, owner.String(), date).
		Scan(&day.Date, &day.EntryTime, &day.ExitTime, &day.Verified)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find day record: %w", err)
	}
	return &day, nil
}

func (s *PostgresStore) LatestDay(ctx context.Context, owner id.OwnerID) (string, *models.DayRecord, error) {
	var label string
	day := models.DayRecord{}
	err := s.pool.QueryRow(ctx, `
		SELECT month_label, day_date, entry_time, COALESCE(exit_time, ''), verified
		FROM attendance_days
		WHERE owner = $1
		ORDER BY day_date DESC
		LIMIT 1`, owner.String()).
		Scan(&label, &day.Date, &day.EntryTime, &day.ExitTime, &day.Verified)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, sentinel.ErrNotFound
		}
		return "", nil, fmt.Errorf("latest day record: %w", err)
	}
	return label, &day, nil
}

func (s *PostgresStore) UpsertDayRecord(ctx context.Context, owner id.OwnerID, monthLabel string, day models.DayRecord) error {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO attendance_days (owner, month_label, day_date, entry_time, exit_time, verified)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		ON CONFLICT (owner, day_date) DO NOTHING`,
		owner.String(), monthLabel, day.Date, day.EntryTime, day.ExitTime, day.Verified)
	if err != nil {
		return fmt.Errorf("upsert day record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresStore) CloseDayRecord(ctx context.Context, owner id.OwnerID, date string, exitTime string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE attendance_days
		SET exit_time = $3
		WHERE owner = $1 AND day_date = $2 AND exit_time IS NULL`,
		owner.String(), date, exitTime)
	if err != nil {
		return fmt.Errorf("close day record: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	// Zero rows: either the day never existed or it is already closed.
	var exists bool
	if err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM attendance_days WHERE owner = $1 AND day_date = $2)`,
		owner.String(), date).Scan(&exists); err != nil {
		return fmt.Errorf("close day record: %w", err)
	}
	if !exists {
		return sentinel.ErrNotFound
	}
	return sentinel.ErrInvalidState
}

func (s *PostgresStore) Health(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Schema is the DDL for the attendance store. Applied by deployment
// migrations and by the integration test harness.
const Schema = `
CREATE TABLE IF NOT EXISTS attendance_days (
	owner       TEXT        NOT NULL,
	month_label TEXT        NOT NULL,
	day_date    TEXT        NOT NULL,
	entry_time  TEXT        NOT NULL,
	exit_time   TEXT,
	verified    BOOLEAN     NOT NULL DEFAULT FALSE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (owner, day_date)
);`
