//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/contacts-api/internal/auth"
	"github.com/deppfellow/contacts-api/internal/database"
	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/deppfellow/contacts-api/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgres starts a migrated PostgreSQL container and returns a pool on it.
func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("contacts_test"),
		postgres.WithUsername("contacts"),
		postgres.WithPassword("contacts"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	logger := zerolog.Nop()
	require.NoError(t, database.MigrateDSN(ctx, &logger, connStr))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func TestRepositories_Integration(t *testing.T) {
	pool := setupPostgres(t)
	repos := repository.NewRepositoriesWithDB(pool)
	ctx := context.Background()

	alice := &model.User{Username: "alice", PasswordHash: "$2a$10$hash", Name: "Alice A"}
	require.NoError(t, repos.Users.Create(ctx, alice))

	t.Run("duplicate username violates the unique key", func(t *testing.T) {
		err := repos.Users.Create(ctx, &model.User{Username: "alice", PasswordHash: "h", Name: "Other"})
		require.Error(t, err)
	})

	t.Run("session round trip", func(t *testing.T) {
		expiry := time.Now().Add(time.Hour).UTC().Truncate(time.Microsecond)
		alice.SetSession("tok-1", expiry)
		require.NoError(t, repos.Users.Save(ctx, alice))

		found, err := repos.Users.FindByToken(ctx, "tok-1")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, alice.ID, found.ID)
		assert.True(t, expiry.Equal(*found.TokenExpiredAt))

		a := auth.NewAuthenticator(repos.Users, func() time.Time { return expiry })
		_, err = a.Authenticate(ctx, "tok-1")
		require.NoError(t, err)

		alice.ClearSession()
		require.NoError(t, repos.Users.Save(ctx, alice))

		found, err = repos.Users.FindByToken(ctx, "tok-1")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("contacts search and cascade delete", func(t *testing.T) {
		for i := 0; i < 15; i++ {
			require.NoError(t, repos.Contacts.Create(ctx, &model.Contact{
				UserID:    alice.ID,
				FirstName: "Helmy",
				LastName:  strPtr("Fadlail"),
				Phone:     strPtr("081334105663"),
			}))
		}

		page, total, err := repos.Contacts.Search(ctx, alice.ID, repository.ContactFilter{Name: "fadlail", Limit: 10, Offset: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		assert.Len(t, page, 5)

		target := page[0]
		require.NoError(t, repos.Addresses.Create(ctx, &model.Address{ContactID: target.ID, Country: "Indonesia"}))

		require.NoError(t, repos.Contacts.Delete(ctx, alice.ID, target.ID))

		list, err := repos.Addresses.ListByContact(ctx, target.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func strPtr(s string) *string { return &s }
