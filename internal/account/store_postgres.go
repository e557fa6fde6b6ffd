package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	id "rollcall/pkg/domain"
	"rollcall/pkg/platform/sentinel"
)

// PostgresStore persists accounts one row per owner. Registration races map
// onto ON CONFLICT DO NOTHING on the owner key, so duplicate sign-ups surface
// as sentinel.ErrConflict the same way the in-memory store reports them.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Save(ctx context.Context, acct *Account) error {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO accounts (id, owner, name, reference_image, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (owner) DO NOTHING`,
		acct.ID.String(), acct.Owner.String(), acct.Name, acct.ReferenceImage, acct.PasswordHash, acct.CreatedAt)
	if err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresStore) FindByOwner(ctx context.Context, owner id.OwnerID) (*Account, error) {
	var (
		acct     Account
		rawID    string
		rawOwner string
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, owner, name, reference_image, password_hash, created_at
		FROM accounts
		WHERE owner = $1`, owner.String()).
		Scan(&rawID, &rawOwner, &acct.Name, &acct.ReferenceImage, &acct.PasswordHash, &acct.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	acct.ID, err = id.ParseAccountID(rawID)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	acct.Owner = id.OwnerID(rawOwner)
	return &acct, nil
}

func (s *PostgresStore) Health(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Schema is the DDL for the account store. Applied by deployment migrations
// and by the integration test harness.
const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id              TEXT        NOT NULL,
	owner           TEXT        NOT NULL PRIMARY KEY,
	name            TEXT        NOT NULL,
	reference_image TEXT        NOT NULL DEFAULT '',
	password_hash   BYTEA       NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL
);`
