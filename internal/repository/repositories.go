// Package repository holds the SQL for users, contacts and addresses.
//
// Repositories accept a DBTX so they run against a pgxpool.Pool in
// production and a pgxmock pool in tests. Missing rows are reported with
// sqlerr.NotFound, except for the session lookups, which follow the
// auth.SessionStore contract and return a nil user.
package repository

import (
	"context"

	"github.com/deppfellow/contacts-api/internal/server"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool the repositories use.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories groups every repository behind one value for the service layer.
type Repositories struct {
	Users     *UserRepository
	Contacts  *ContactRepository
	Addresses *AddressRepository
}

// NewRepositories builds the repositories on the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return NewRepositoriesWithDB(s.DB.Pool)
}

// NewRepositoriesWithDB builds the repositories on any DBTX.
func NewRepositoriesWithDB(db DBTX) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(db),
		Contacts:  NewContactRepository(db),
		Addresses: NewAddressRepository(db),
	}
}
