package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/contacts-api/internal/model"
)

var (
	// ErrNoCredential means the request carried no token.
	ErrNoCredential = errors.New("no credential presented")

	// ErrInvalidCredential means no user holds the presented token.
	ErrInvalidCredential = errors.New("credential not recognized")

	// ErrCredentialExpired means the token matched but its expiry has passed.
	ErrCredentialExpired = errors.New("credential expired")

	// ErrBadCredentials is the single login failure for unknown user and wrong password.
	ErrBadCredentials = errors.New("username or password wrong")
)

// Authenticator resolves a presented token to the user owning it.
type Authenticator struct {
	store SessionStore
	now   Clock
}

// NewAuthenticator creates an Authenticator. A nil clock means time.Now.
func NewAuthenticator(store SessionStore, now Clock) *Authenticator {
	if now == nil {
		now = time.Now
	}
	return &Authenticator{store: store, now: now}
}

// Authenticate returns the user whose session token equals token.
//
// A token is valid up to and including its expiry instant. The stored
// session is never modified here, expired or not.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrNoCredential
	}

	user, err := a.store.FindByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if user == nil || user.TokenExpiredAt == nil {
		return nil, ErrInvalidCredential
	}

	if user.TokenExpiredAt.Before(a.now()) {
		return nil, ErrCredentialExpired
	}

	return user, nil
}

// IsRejection reports whether err is one of the gate's rejection reasons,
// as opposed to a store failure.
func IsRejection(err error) bool {
	return errors.Is(err, ErrNoCredential) ||
		errors.Is(err, ErrInvalidCredential) ||
		errors.Is(err, ErrCredentialExpired)
}
