// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives
// validated requests from handlers, applies ownership and session rules,
// and calls repositories. Database errors leave this package already
// translated to *errs.HTTPError by sqlerr.
package service

import (
	"context"

	"github.com/deppfellow/contacts-api/internal/auth"
	"github.com/deppfellow/contacts-api/internal/config"
	"github.com/deppfellow/contacts-api/internal/lib/job"
	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/deppfellow/contacts-api/internal/repository"
	"github.com/deppfellow/contacts-api/internal/server"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// UserRepository is what the user and auth services need from storage.
type UserRepository interface {
	auth.SessionStore
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type ContactRepository interface {
	Create(ctx context.Context, contact *model.Contact) error
	GetForUser(ctx context.Context, userID, contactID uuid.UUID) (*model.Contact, error)
	Update(ctx context.Context, contact *model.Contact) error
	Delete(ctx context.Context, userID, contactID uuid.UUID) error
	Search(ctx context.Context, userID uuid.UUID, f repository.ContactFilter) ([]model.Contact, int64, error)
}

type AddressRepository interface {
	Create(ctx context.Context, address *model.Address) error
	Get(ctx context.Context, contactID, addressID uuid.UUID) (*model.Address, error)
	Update(ctx context.Context, address *model.Address) error
	Delete(ctx context.Context, contactID, addressID uuid.UUID) error
	ListByContact(ctx context.Context, contactID uuid.UUID) ([]model.Address, error)
}

// WelcomeMailer queues the welcome email sent after registration.
type WelcomeMailer interface {
	EnqueueWelcomeEmail(ctx context.Context, to, name string) error
}

// Deps are the collaborators of every service.
type Deps struct {
	Users     UserRepository
	Contacts  ContactRepository
	Addresses AddressRepository
	Mailer    WelcomeMailer
	Auth      config.AuthConfig
	Clock     auth.Clock
	Logger    *zerolog.Logger
}

type Services struct {
	Auth          *AuthService
	User          *UserService
	Contact       *ContactService
	Address       *AddressService
	Authenticator *auth.Authenticator
	Job           *job.JobService
}

// New wires the services from explicit dependencies.
func New(d Deps) *Services {
	if d.Logger == nil {
		nop := zerolog.Nop()
		d.Logger = &nop
	}

	hasher := auth.NewBcryptHasher(d.Auth.BcryptCost)
	issuer := auth.NewTokenIssuer(d.Auth, d.Clock)
	contacts := NewContactService(d.Contacts)

	return &Services{
		Auth:          NewAuthService(d.Users, hasher, issuer, d.Logger),
		User:          NewUserService(d.Users, hasher, d.Mailer, d.Logger),
		Contact:       contacts,
		Address:       NewAddressService(contacts, d.Addresses),
		Authenticator: auth.NewAuthenticator(d.Users, d.Clock),
	}
}

// NewServices wires the services on the server's repositories and job queue.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	d := Deps{
		Users:     repos.Users,
		Contacts:  repos.Contacts,
		Addresses: repos.Addresses,
		Auth:      s.Config.Auth,
		Logger:    s.Logger,
	}
	if s.Job != nil {
		d.Mailer = s.Job
	}

	services := New(d)
	services.Job = s.Job

	return services, nil
}
