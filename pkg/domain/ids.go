// Package domain holds typed identifiers shared across modules. Keeping them
// in one place prevents accidental mixing of ID kinds at call sites.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "rollcall/pkg/domain-errors"
)

// OwnerID identifies the person a record belongs to. The source system keys
// everything by the account email, so the ID is an email-equivalent string,
// lower-cased for stable map lookups.
type OwnerID string

// ParseOwnerID normalizes and validates an owner identifier.
func ParseOwnerID(s string) (OwnerID, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, "owner id is required")
	}
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return "", dErrors.New(dErrors.CodeValidation, "owner id must be an email address")
	}
	return OwnerID(s), nil
}

func (o OwnerID) String() string { return string(o) }

// IsZero reports whether the owner ID is unset.
func (o OwnerID) IsZero() bool { return o == "" }

// AccountID identifies an account row independently of its email.
type AccountID uuid.UUID

// NewAccountID returns a fresh random account ID.
func NewAccountID() AccountID { return AccountID(uuid.New()) }

// ParseAccountID parses an account ID from its string form.
func ParseAccountID(s string) (AccountID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return AccountID{}, dErrors.New(dErrors.CodeValidation, "invalid account id")
	}
	return AccountID(u), nil
}

func (a AccountID) String() string { return uuid.UUID(a).String() }

// IsNil reports whether the account ID is the zero UUID.
func (a AccountID) IsNil() bool { return uuid.UUID(a) == uuid.Nil }
