package account

import (
	"time"

	id "rollcall/pkg/domain"
)

// Account is the minimal identity this service needs: who the owner is, the
// stored reference image the verifier compares against, and a credential for
// issuing API tokens. Full user management lives elsewhere.
type Account struct {
	ID             id.AccountID
	Owner          id.OwnerID
	Name           string
	ReferenceImage string // URL or encoded blob handed to the verifier
	PasswordHash   []byte
	CreatedAt      time.Time
}

// HasReferenceImage reports whether the account can go through face-verified
// check-in at all.
func (a *Account) HasReferenceImage() bool { return a.ReferenceImage != "" }
