package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/contacts-api/internal/auth"
	"github.com/deppfellow/contacts-api/internal/errs"
	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/deppfellow/contacts-api/internal/sqlerr"
	"github.com/rs/zerolog"
)

// badCredentialsMessage is shared by unknown-user and wrong-password failures.
const badCredentialsMessage = "Username or password wrong"

// AuthService issues and revokes sessions.
type AuthService struct {
	store  auth.SessionStore
	hasher auth.PasswordHasher
	issuer *auth.TokenIssuer
	logger *zerolog.Logger
}

func NewAuthService(store auth.SessionStore, hasher auth.PasswordHasher, issuer *auth.TokenIssuer, logger *zerolog.Logger) *AuthService {
	return &AuthService{
		store:  store,
		hasher: hasher,
		issuer: issuer,
		logger: logger,
	}
}

// Login verifies the password and replaces the user's session with a new
// token, which invalidates any token issued before.
func (s *AuthService) Login(ctx context.Context, req *model.LoginUserRequest) (*model.TokenResponse, error) {
	user, err := s.store.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("login lookup: %w", err))
	}

	if user == nil || !s.hasher.Verify(req.Password, user.PasswordHash) {
		auth.RecordAttempt(auth.OutcomeOf(auth.ErrBadCredentials))
		s.logger.Info().
			Str("event", "login_failed").
			Bool("user_exists", user != nil).
			Msg("login rejected")
		return nil, errs.NewUnauthorizedError(badCredentialsMessage, true)
	}

	session, err := s.issuer.Issue()
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}

	user.SetSession(session.Token, session.ExpiresAt)
	if err := s.store.Save(ctx, user); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	auth.RecordAttempt(auth.OutcomeLoginSuccess)
	s.logger.Info().
		Str("event", "login").
		Str("user_id", user.ID.String()).
		Time("expires_at", session.ExpiresAt).
		Msg("session issued")

	return &model.TokenResponse{
		Token:     session.Token,
		ExpiredAt: session.ExpiresAt.UnixMilli(),
	}, nil
}

// Logout clears the user's session; the token stops working immediately.
func (s *AuthService) Logout(ctx context.Context, user *model.User) error {
	user.ClearSession()
	if err := s.store.Save(ctx, user); err != nil {
		return sqlerr.HandleError(err)
	}

	s.logger.Info().
		Str("event", "logout").
		Str("user_id", user.ID.String()).
		Msg("session cleared")

	return nil
}
