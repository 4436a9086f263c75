package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/deppfellow/contacts-api/internal/config"
)

// Clock returns the current time. Tests pin it; production uses time.Now.
type Clock func() time.Time

// Session is a freshly issued token and the instant it stops being valid.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// TokenIssuer mints opaque session tokens.
type TokenIssuer struct {
	ttl  time.Duration
	size int
	now  Clock
	rand io.Reader
}

// NewTokenIssuer reads the TTL and token size from cfg. A nil clock means time.Now.
func NewTokenIssuer(cfg config.AuthConfig, now Clock) *TokenIssuer {
	if now == nil {
		now = time.Now
	}

	size := cfg.TokenBytes
	if size <= 0 {
		size = config.DefaultAuthConfig().TokenBytes
	}

	return &TokenIssuer{
		ttl:  cfg.SessionTTL,
		size: size,
		now:  now,
		rand: rand.Reader,
	}
}

// Issue returns a new hex token expiring one TTL from now.
func (i *TokenIssuer) Issue() (Session, error) {
	buf := make([]byte, i.size)
	if _, err := io.ReadFull(i.rand, buf); err != nil {
		return Session{}, fmt.Errorf("generate session token: %w", err)
	}

	return Session{
		Token:     hex.EncodeToString(buf),
		ExpiresAt: i.now().Add(i.ttl),
	}, nil
}

// TTL is the lifetime of issued tokens.
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}
