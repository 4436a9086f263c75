// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file
// when present), loads them into structured Go types and validates
// that required values are present so they can be reused across the
// application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (auth, observability).
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process environment before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix CONTACTS_. The prefix is removed and
	the remainder lowercased; "." is the nesting delimiter, so

		CONTACTS_SERVER.PORT      -> server.port      -> Config.Server.Port
		CONTACTS_AUTH.SESSION_TTL -> auth.session_ttl -> Config.Auth.SessionTTL
*/

// EnvPrefix is the prefix every configuration variable must carry.
const EnvPrefix = "CONTACTS_"

// Config is the root configuration object for the application.
//
// Auth and Observability are filled with defaults when not provided.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// DSN builds the postgres URL for the configured database.
// The password is URL-escaped so characters like ':' or '@' survive.
func (d DatabaseConfig) DSN() string {
	hostPort := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		d.User,
		url.QueryEscape(d.Password),
		hostPort,
		d.Name,
		d.SSLMode,
	)
}

// RedisConfig contains Redis connection details.
// Address is typically "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig configures the session token scheme.
//
// The same struct is injected into the token issuer and the
// authentication gate, so tests can shorten SessionTTL or change the
// header without touching globals.
type AuthConfig struct {
	// SessionTTL is how long an issued token stays valid.
	SessionTTL time.Duration `koanf:"session_ttl" validate:"min=1s"`

	// TokenHeader is the request header carrying the session token.
	TokenHeader string `koanf:"token_header" validate:"required"`

	// TokenBytes is the number of random bytes in a token (hex encoded on the wire).
	TokenBytes int `koanf:"token_bytes" validate:"min=16,max=128"`

	// BcryptCost is the work factor for password hashes.
	BcryptCost int `koanf:"bcrypt_cost" validate:"min=4,max=31"`

	// LoginRateLimit is the sustained number of login attempts per second per client IP.
	LoginRateLimit float64 `koanf:"login_rate_limit" validate:"gt=0"`

	// LoginBurst is the burst size allowed on top of LoginRateLimit.
	LoginBurst int `koanf:"login_burst" validate:"min=1"`
}

// IntegrationConfig holds credentials for third-party services.
type IntegrationConfig struct {
	// ResendAPIKey enables welcome emails. Empty disables sending.
	ResendAPIKey string `koanf:"resend_api_key"`

	// EmailFrom is the sender address used for outgoing emails.
	EmailFrom string `koanf:"email_from"`
}

// DefaultAuthConfig returns the auth defaults: 30 day sessions carried in X-API-TOKEN.
func DefaultAuthConfig() AuthConfig {
	return AuthConfig{
		SessionTTL:     30 * 24 * time.Hour,
		TokenHeader:    "X-API-TOKEN",
		TokenBytes:     32,
		BcryptCost:     10,
		LoginRateLimit: 5,
		LoginBurst:     10,
	}
}

// applyAuthDefaults fills every zero field of a with its default.
func applyAuthDefaults(a *AuthConfig) {
	def := DefaultAuthConfig()

	if a.SessionTTL == 0 {
		a.SessionTTL = def.SessionTTL
	}
	if a.TokenHeader == "" {
		a.TokenHeader = def.TokenHeader
	}
	if a.TokenBytes == 0 {
		a.TokenBytes = def.TokenBytes
	}
	if a.BcryptCost == 0 {
		a.BcryptCost = def.BcryptCost
	}
	if a.LoginRateLimit == 0 {
		a.LoginRateLimit = def.LoginRateLimit
	}
	if a.LoginBurst == 0 {
		a.LoginBurst = def.LoginBurst
	}
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, applies defaults and validates the result.
//
// Behavior summary:
//   - Loads env vars with prefix CONTACTS_
//   - Unmarshals into Config
//   - Fills auth and observability defaults
//   - Overrides observability service name + environment
//   - Validates the struct tags and the observability rules
//
// Errors are returned instead of exiting; the command decides what to do.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load initial env variables: %w", err)
	}

	mainConfig := &Config{}

	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	applyAuthDefaults(&mainConfig.Auth)

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name is fixed; environment always follows primary.env.
	mainConfig.Observability.ServiceName = "contacts-api"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
