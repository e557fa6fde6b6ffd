package account

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"rollcall/internal/jwttoken"
	id "rollcall/pkg/domain"
	dErrors "rollcall/pkg/domain-errors"
	"rollcall/pkg/platform/sentinel"
	"rollcall/pkg/requestcontext"
)

// Service manages account registration and token issuance. It exists so the
// attendance gates have somewhere to resolve reference images from and the
// protected endpoints have a token source; it is deliberately not a full
// identity system.
type Service struct {
	store  Store
	tokens *jwttoken.Service
}

func NewService(store Store, tokens *jwttoken.Service) *Service {
	return &Service{store: store, tokens: tokens}
}

// Register creates an account with a bcrypt-hashed credential.
func (s *Service) Register(ctx context.Context, ownerRaw, name, password, referenceImage string) (*Account, error) {
	owner, err := id.ParseOwnerID(ownerRaw)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if len(password) < 8 {
		return nil, dErrors.New(dErrors.CodeValidation, "password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	acct := &Account{
		ID:             id.NewAccountID(),
		Owner:          owner,
		Name:           strings.TrimSpace(name),
		ReferenceImage: referenceImage,
		PasswordHash:   hash,
		CreatedAt:      requestcontext.Now(ctx),
	}
	if err := s.store.Save(ctx, acct); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "account already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save account")
	}
	return acct, nil
}

// Login verifies the credential and issues an access token.
func (s *Service) Login(ctx context.Context, ownerRaw, password string) (string, error) {
	owner, err := id.ParseOwnerID(ownerRaw)
	if err != nil {
		return "", err
	}
	acct, err := s.store.FindByOwner(ctx, owner)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// Same message as a bad password so probes cannot enumerate accounts.
			return "", dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load account")
	}
	if err := bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(password)); err != nil {
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}
	return s.tokens.GenerateAccessToken(acct.Owner, requestcontext.Now(ctx))
}

// ReferenceImage resolves the stored reference image for an owner. The
// check-in gate calls this before every verification round-trip.
func (s *Service) ReferenceImage(ctx context.Context, owner id.OwnerID) (string, error) {
	acct, err := s.store.FindByOwner(ctx, owner)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", dErrors.New(dErrors.CodeNotFound, "account not found")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load account")
	}
	if !acct.HasReferenceImage() {
		return "", dErrors.New(dErrors.CodeNotFound, "no reference image on file")
	}
	return acct.ReferenceImage, nil
}
