package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/contacts-api/internal/config"
	"github.com/deppfellow/contacts-api/internal/handler"
	"github.com/deppfellow/contacts-api/internal/server"
	"github.com/deppfellow/contacts-api/internal/service"
	"github.com/deppfellow/contacts-api/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors *string         `json:"errors"`
	Paging *struct {
		CurrentPage int `json:"currentPage"`
		TotalPage   int `json:"totalPage"`
		Size        int `json:"size"`
	} `json:"paging"`
}

type api struct {
	t *testing.T
	e *echo.Echo
}

func newAPI(t *testing.T) *api {
	t.Helper()

	authCfg := config.DefaultAuthConfig()
	authCfg.BcryptCost = bcrypt.MinCost

	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Server:        config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
			Auth:          authCfg,
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}

	store := testutil.NewStore()
	services := service.New(service.Deps{
		Users:     store.Users(),
		Contacts:  store.Contacts(),
		Addresses: store.Addresses(),
		Mailer:    &testutil.Mailer{},
		Auth:      authCfg,
	})

	return &api{t: t, e: NewRouter(s, handler.NewHandlers(s, services), services)}
}

func (a *api) do(method, path, token, body string) (int, envelope) {
	a.t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("X-API-TOKEN", token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func (a *api) register(username, password, name string) {
	a.t.Helper()

	code, env := a.do(http.MethodPost, "/api/users", "",
		`{"username":"`+username+`","password":"`+password+`","name":"`+name+`"}`)
	require.Equal(a.t, http.StatusOK, code)
	require.Nil(a.t, env.Errors)
}

func (a *api) login(username, password string) string {
	a.t.Helper()

	code, env := a.do(http.MethodPost, "/api/auth/login", "",
		`{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(a.t, http.StatusOK, code)

	var tok struct {
		Token     string `json:"token"`
		ExpiredAt int64  `json:"expiredAt"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &tok))
	require.NotEmpty(a.t, tok.Token)
	require.Positive(a.t, tok.ExpiredAt)
	return tok.Token
}

func TestSessionScenario(t *testing.T) {
	a := newAPI(t)

	a.register("alice", "pw1", "Alice A")
	token := a.login("alice", "pw1")

	code, env := a.do(http.MethodGet, "/api/users/current", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"username":"alice","name":"Alice A"}`, string(env.Data))

	code, env = a.do(http.MethodDelete, "/api/auth/logout", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `"OK"`, string(env.Data))

	code, env = a.do(http.MethodGet, "/api/users/current", token, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	require.NotNil(t, env.Errors)
	assert.Equal(t, "Unauthorized", *env.Errors)
	assert.JSONEq(t, `null`, string(env.Data))
}

func TestUserEndpoints(t *testing.T) {
	a := newAPI(t)
	a.register("alice", "pw1", "Alice A")

	t.Run("duplicate username", func(t *testing.T) {
		code, env := a.do(http.MethodPost, "/api/users", "", `{"username":"alice","password":"x","name":"Other"}`)
		assert.Equal(t, http.StatusBadRequest, code)
		require.NotNil(t, env.Errors)
		assert.Equal(t, "A user with this username already exists", *env.Errors)
	})

	t.Run("empty fields", func(t *testing.T) {
		code, env := a.do(http.MethodPost, "/api/users", "", `{"username":"","password":"","name":""}`)
		assert.Equal(t, http.StatusBadRequest, code)
		require.NotNil(t, env.Errors)
	})

	t.Run("multibyte password over 72 bytes", func(t *testing.T) {
		code, env := a.do(http.MethodPost, "/api/users", "",
			`{"username":"carol","password":"`+strings.Repeat("é", 72)+`","name":"Carol C"}`)
		assert.Equal(t, http.StatusBadRequest, code)
		require.NotNil(t, env.Errors)
		assert.Equal(t, "Validation failed: password: must not exceed 72 bytes", *env.Errors)
	})

	t.Run("login failures share a message", func(t *testing.T) {
		codeUnknown, envUnknown := a.do(http.MethodPost, "/api/auth/login", "", `{"username":"bob","password":"pw1"}`)
		codeWrong, envWrong := a.do(http.MethodPost, "/api/auth/login", "", `{"username":"alice","password":"bad"}`)

		assert.Equal(t, http.StatusUnauthorized, codeUnknown)
		assert.Equal(t, codeUnknown, codeWrong)
		require.NotNil(t, envUnknown.Errors)
		require.NotNil(t, envWrong.Errors)
		assert.Equal(t, "Username or password wrong", *envUnknown.Errors)
		assert.Equal(t, *envUnknown.Errors, *envWrong.Errors)
	})

	t.Run("missing and unknown token look the same", func(t *testing.T) {
		codeMissing, envMissing := a.do(http.MethodGet, "/api/users/current", "", "")
		codeUnknown, envUnknown := a.do(http.MethodGet, "/api/users/current", "salah", "")

		assert.Equal(t, http.StatusUnauthorized, codeMissing)
		assert.Equal(t, codeMissing, codeUnknown)
		assert.Equal(t, *envMissing.Errors, *envUnknown.Errors)
	})

	t.Run("update name", func(t *testing.T) {
		token := a.login("alice", "pw1")
		code, env := a.do(http.MethodPatch, "/api/users/current", token, `{"name":"Alice B"}`)
		assert.Equal(t, http.StatusOK, code)
		assert.JSONEq(t, `{"username":"alice","name":"Alice B"}`, string(env.Data))
	})
}

func TestContactEndpoints(t *testing.T) {
	a := newAPI(t)
	a.register("alice", "pw1", "Alice A")
	a.register("bob", "pw1", "Bob B")
	alice := a.login("alice", "pw1")
	bob := a.login("bob", "pw1")

	code, env := a.do(http.MethodPost, "/api/contacts", alice,
		`{"firstName":"Helmy","lastName":"Fadlail","email":"helmy@example.com","phone":"081334105663"}`)
	require.Equal(t, http.StatusOK, code)

	var contact struct {
		ID        string `json:"id"`
		FirstName string `json:"firstName"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &contact))
	require.NotEmpty(t, contact.ID)

	t.Run("get", func(t *testing.T) {
		code, env := a.do(http.MethodGet, "/api/contacts/"+contact.ID, alice, "")
		assert.Equal(t, http.StatusOK, code)
		assert.Contains(t, string(env.Data), `"firstName":"Helmy"`)
	})

	t.Run("other user gets not found", func(t *testing.T) {
		code, env := a.do(http.MethodGet, "/api/contacts/"+contact.ID, bob, "")
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Contact not found", *env.Errors)
	})

	t.Run("malformed id gets not found", func(t *testing.T) {
		code, env := a.do(http.MethodGet, "/api/contacts/salah", alice, "")
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Contact not found", *env.Errors)
	})

	t.Run("update with put and patch", func(t *testing.T) {
		for _, method := range []string{http.MethodPut, http.MethodPatch} {
			code, env := a.do(method, "/api/contacts/"+contact.ID, alice, `{"firstName":"Helmi"}`)
			assert.Equal(t, http.StatusOK, code)
			assert.Contains(t, string(env.Data), `"firstName":"Helmi"`)
		}
	})

	t.Run("search pages", func(t *testing.T) {
		for i := 0; i < 14; i++ {
			code, _ := a.do(http.MethodPost, "/api/contacts", alice, `{"firstName":"Eko","lastName":"Khannedy"}`)
			require.Equal(t, http.StatusOK, code)
		}

		code, env := a.do(http.MethodGet, "/api/contacts?name=khannedy&page=1&size=10", alice, "")
		require.Equal(t, http.StatusOK, code)
		require.NotNil(t, env.Paging)
		assert.Equal(t, 1, env.Paging.CurrentPage)
		assert.Equal(t, 2, env.Paging.TotalPage)
		assert.Equal(t, 10, env.Paging.Size)

		var items []json.RawMessage
		require.NoError(t, json.Unmarshal(env.Data, &items))
		assert.Len(t, items, 4)

		code, env = a.do(http.MethodGet, "/api/contacts?page=500", alice, "")
		require.Equal(t, http.StatusOK, code)
		assert.JSONEq(t, `[]`, string(env.Data))
		assert.Equal(t, 2, env.Paging.TotalPage)

		code, env = a.do(http.MethodGet, "/api/contacts?page=1000000000000000000&size=100", alice, "")
		assert.Equal(t, http.StatusBadRequest, code)
		require.NotNil(t, env.Errors)
		assert.Nil(t, env.Paging)
	})

	t.Run("addresses", func(t *testing.T) {
		base := "/api/contacts/" + contact.ID + "/addresses"

		code, env := a.do(http.MethodPost, base, alice, `{"street":"Jalan","city":"Jakarta","country":"Indonesia","postalCode":"12345"}`)
		require.Equal(t, http.StatusOK, code)
		var address struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &address))

		code, env = a.do(http.MethodGet, base, alice, "")
		require.Equal(t, http.StatusOK, code)
		var list []json.RawMessage
		require.NoError(t, json.Unmarshal(env.Data, &list))
		assert.Len(t, list, 1)

		code, _ = a.do(http.MethodGet, base+"/"+address.ID, bob, "")
		assert.Equal(t, http.StatusNotFound, code)

		code, env = a.do(http.MethodDelete, base+"/"+address.ID, alice, "")
		assert.Equal(t, http.StatusOK, code)
		assert.JSONEq(t, `"OK"`, string(env.Data))
	})

	t.Run("delete", func(t *testing.T) {
		code, env := a.do(http.MethodDelete, "/api/contacts/"+contact.ID, alice, "")
		assert.Equal(t, http.StatusOK, code)
		assert.JSONEq(t, `"OK"`, string(env.Data))

		code, _ = a.do(http.MethodGet, "/api/contacts/"+contact.ID, alice, "")
		assert.Equal(t, http.StatusNotFound, code)
	})
}

func TestSystemRoutes(t *testing.T) {
	a := newAPI(t)
	a.register("alice", "pw1", "Alice A")
	a.login("alice", "pw1")

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "contacts_api_auth_attempts_total")

	rec = httptest.NewRecorder()
	a.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}
