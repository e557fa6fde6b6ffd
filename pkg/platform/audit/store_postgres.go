package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// PostgresStore implements Store using the transactional outbox pattern.
// Events are written to the outbox table; a relay (or the Kafka worker in
// simpler deployments) drains it downstream.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// outboxPayload is the JSON structure written to the outbox. Field names
// match Event so consumers can deserialize without a mapping layer.
type outboxPayload struct {
	ID        string `json:"ID"`
	Owner     string `json:"Owner"`
	Action    string `json:"Action"`
	Date      string `json:"Date,omitempty"`
	Detail    string `json:"Detail,omitempty"`
	Device    string `json:"Device,omitempty"`
	RequestID string `json:"RequestID,omitempty"`
	Timestamp string `json:"Timestamp"`
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	payload, err := json.Marshal(outboxPayload{
		ID:        event.ID,
		Owner:     event.Owner.String(),
		Action:    string(event.Action),
		Date:      event.Date,
		Detail:    event.Detail,
		Device:    event.Device,
		RequestID: event.RequestID,
		Timestamp: event.Timestamp.Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	const query = `
		INSERT INTO audit_outbox (id, aggregate_type, aggregate_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := s.db.ExecContext(ctx, query,
		event.ID, "attendance", event.Owner.String(), string(event.Action), payload, event.Timestamp,
	); err != nil {
		return fmt.Errorf("insert audit outbox row: %w", err)
	}
	return nil
}

// Schema is the DDL for the audit outbox, applied by deployment migrations
// and the integration test harness.
const Schema = `
CREATE TABLE IF NOT EXISTS audit_outbox (
	id             TEXT        PRIMARY KEY,
	aggregate_type TEXT        NOT NULL,
	aggregate_id   TEXT        NOT NULL,
	event_type     TEXT        NOT NULL,
	payload        JSONB       NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`
