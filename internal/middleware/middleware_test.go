package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deppfellow/contacts-api/internal/auth"
	"github.com/deppfellow/contacts-api/internal/config"
	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/deppfellow/contacts-api/internal/server"
	"github.com/deppfellow/contacts-api/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Auth: config.DefaultAuthConfig(),
			Server: config.ServerConfig{
				CORSAllowedOrigins: []string{"*"},
			},
		},
		Logger: &logger,
	}
}

// newTestEcho wires the global error handler and a protected /whoami route.
func newTestEcho(s *server.Server, store auth.SessionStore, now auth.Clock) *echo.Echo {
	mw := NewMiddlewares(s, auth.NewAuthenticator(store, now))

	e := echo.New()
	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler
	e.Use(RequestID(), mw.ContextEnhancer.EnhanceContext())

	e.GET("/whoami", func(c echo.Context) error {
		fromCtx := auth.UserFromContext(c.Request().Context())
		if fromCtx == nil || fromCtx != GetUser(c) {
			return errors.New("user not bound to request")
		}
		return c.JSON(http.StatusOK, model.OK(fromCtx.ToResponse()))
	}, mw.Auth.RequireAuth)

	return e
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRequireAuth(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	store := testutil.NewStore()
	users := store.Users()

	alice := &model.User{Username: "alice", Name: "Alice A", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, alice))
	alice.SetSession("live-token", now.Add(time.Hour))
	require.NoError(t, users.Save(ctx, alice))

	bob := &model.User{Username: "bob", Name: "Bob B", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, bob))
	bob.SetSession("stale-token", now.Add(-time.Millisecond))
	require.NoError(t, users.Save(ctx, bob))

	s := newTestServer()
	e := newTestEcho(s, users, func() time.Time { return now })

	rejected := []struct {
		name   string
		header string
	}{
		{name: "missing header"},
		{name: "unknown token", header: "nope"},
		{name: "expired token", header: "stale-token"},
	}

	var bodies []string
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("X-API-TOKEN", tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"data":null,"errors":"Unauthorized"}`, rec.Body.String())
			bodies = append(bodies, rec.Body.String())
		})
	}
	for _, b := range bodies {
		assert.Equal(t, bodies[0], b)
	}

	t.Run("expired session is left in place", func(t *testing.T) {
		stored, err := users.GetByID(ctx, bob.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.Token)
		assert.Equal(t, "stale-token", *stored.Token)
	})

	t.Run("valid token binds the user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("X-API-TOKEN", "live-token")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":{"username":"alice","name":"Alice A"},"errors":null}`, rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	})

	t.Run("custom header name", func(t *testing.T) {
		custom := newTestServer()
		custom.Config.Auth.TokenHeader = "X-Session"
		ce := newTestEcho(custom, users, func() time.Time { return now })

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("X-Session", "live-token")
		rec := httptest.NewRecorder()
		ce.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

type brokenStore struct{ auth.SessionStore }

func (brokenStore) FindByToken(context.Context, string) (*model.User, error) {
	return nil, errors.New("connection refused")
}

func TestRequireAuth_StoreFailure(t *testing.T) {
	e := newTestEcho(newTestServer(), brokenStore{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-API-TOKEN", "anything")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Nil(t, body["data"])
	assert.Equal(t, "Internal Server Error", body["errors"])
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestGlobalErrorHandler(t *testing.T) {
	s := newTestServer()
	global := NewGlobalMiddlewares(s)

	e := echo.New()
	e.HTTPErrorHandler = global.GlobalErrorHandler
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("pq: relation does not exist")
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"data":null,"errors":"Route not found"}`, rec.Body.String())
	})

	t.Run("internal details stay in the logs", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"data":null,"errors":"Internal Server Error"}`, rec.Body.String())
	})
}

func TestLoginLimiter(t *testing.T) {
	s := newTestServer()
	s.Config.Auth.LoginRateLimit = 0.001
	s.Config.Auth.LoginBurst = 1

	mw := NewMiddlewares(s, auth.NewAuthenticator(testutil.NewStore().Users(), nil))

	e := echo.New()
	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler
	e.POST("/login", func(c echo.Context) error {
		return c.JSON(http.StatusOK, model.OK("OK"))
	}, mw.RateLimit.LoginLimiter())

	first := httptest.NewRecorder()
	e.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	e.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "Too many login attempts, try again later", decode(t, second)["errors"])
}
