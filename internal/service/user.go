package service

import (
	"context"
	"errors"

	"github.com/deppfellow/contacts-api/internal/auth"
	"github.com/deppfellow/contacts-api/internal/errs"
	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/deppfellow/contacts-api/internal/sqlerr"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	users  UserRepository
	hasher auth.PasswordHasher
	mailer WelcomeMailer
	logger *zerolog.Logger
}

func NewUserService(users UserRepository, hasher auth.PasswordHasher, mailer WelcomeMailer, logger *zerolog.Logger) *UserService {
	return &UserService{
		users:  users,
		hasher: hasher,
		mailer: mailer,
		logger: logger,
	}
}

// Register creates an account without a session. A duplicate username
// surfaces as USER_ALREADY_EXISTS.
func (s *UserService) Register(ctx context.Context, req *model.RegisterUserRequest) error {
	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: hash,
		Name:         req.Name,
		Email:        req.Email,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return sqlerr.HandleError(err)
	}

	s.logger.Info().
		Str("event", "user_registered").
		Str("user_id", user.ID.String()).
		Msg("user registered")

	if user.Email != nil && s.mailer != nil {
		// Registration already succeeded; a queue outage only loses the greeting.
		if err := s.mailer.EnqueueWelcomeEmail(ctx, *user.Email, user.Name); err != nil {
			s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to enqueue welcome email")
		}
	}

	return nil
}

// Current returns the public view of the authenticated user.
func (s *UserService) Current(user *model.User) model.UserResponse {
	return user.ToResponse()
}

// Update changes the name and/or password. The session is kept.
func (s *UserService) Update(ctx context.Context, user *model.User, req *model.UpdateUserRequest) (model.UserResponse, error) {
	if req.Name != nil {
		user.Name = *req.Name
	}

	if req.Password != nil {
		hash, err := s.hashPassword(*req.Password)
		if err != nil {
			return model.UserResponse{}, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Save(ctx, user); err != nil {
		return model.UserResponse{}, sqlerr.HandleError(err)
	}

	return user.ToResponse(), nil
}

// hashPassword reports passwords bcrypt refuses as field errors, not 500s.
func (s *UserService) hashPassword(password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	switch {
	case err == nil:
		return hash, nil
	case errors.Is(err, auth.ErrEmptyPassword):
		return "", errs.ValidationError("Validation failed", []errs.FieldError{{Field: "password", Error: "is required"}})
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		return "", errs.ValidationError("Validation failed", []errs.FieldError{{Field: "password", Error: "must not exceed 72 bytes"}})
	default:
		return "", err
	}
}
