package auth

import (
	"context"

	"github.com/deppfellow/contacts-api/internal/model"
)

// SessionStore is the persistence the auth flow needs.
//
// FindByUsername and FindByToken return (nil, nil) when nothing matches;
// an error always means the lookup itself failed. Save persists the whole
// user row, including the token and its expiry.
type SessionStore interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByToken(ctx context.Context, token string) (*model.User, error)
	Save(ctx context.Context, user *model.User) error
}
