package auth

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for the auth attempts counter.
const (
	OutcomeAccepted     = "accepted"
	OutcomeMissing      = "missing"
	OutcomeInvalid      = "invalid"
	OutcomeExpired      = "expired"
	OutcomeLoginSuccess = "login_success"
	OutcomeLoginFailed  = "login_failed"
	OutcomeError        = "error"
)

var authAttempts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "contacts_api",
		Name:      "auth_attempts_total",
		Help:      "Authentication attempts by outcome.",
	},
	[]string{"outcome"},
)

// OutcomeOf maps an Authenticate result to its counter label.
func OutcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeAccepted
	case errors.Is(err, ErrNoCredential):
		return OutcomeMissing
	case errors.Is(err, ErrInvalidCredential):
		return OutcomeInvalid
	case errors.Is(err, ErrCredentialExpired):
		return OutcomeExpired
	case errors.Is(err, ErrBadCredentials):
		return OutcomeLoginFailed
	default:
		return OutcomeError
	}
}

// RecordAttempt increments the counter for outcome.
func RecordAttempt(outcome string) {
	authAttempts.WithLabelValues(outcome).Inc()
}
