package account

import (
	"context"

	id "rollcall/pkg/domain"
)

// Store persists accounts. Implementations return sentinel.ErrNotFound for
// missing owners and sentinel.ErrConflict for duplicate registration.
type Store interface {
	Save(ctx context.Context, acct *Account) error
	FindByOwner(ctx context.Context, owner id.OwnerID) (*Account, error)
}
