package middleware

import (
	"time"

	"github.com/deppfellow/contacts-api/internal/auth"
	"github.com/deppfellow/contacts-api/internal/errs"
	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/deppfellow/contacts-api/internal/server"
	"github.com/labstack/echo/v4"
)

// UserKey is the Echo context key holding the authenticated *model.User.
const UserKey = "user"

// AuthMiddleware gates routes behind the session token header.
type AuthMiddleware struct {
	server        *server.Server
	authenticator *auth.Authenticator
}

func NewAuthMiddleware(s *server.Server, authenticator *auth.Authenticator) *AuthMiddleware {
	return &AuthMiddleware{
		server:        s,
		authenticator: authenticator,
	}
}

// RequireAuth resolves the token header to a user and binds it to the request.
//
// Missing, unknown and expired tokens all produce the same 401; the reason
// only reaches the logs and the auth attempts counter.
func (am *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		token := c.Request().Header.Get(am.server.Config.Auth.TokenHeader)

		user, err := am.authenticator.Authenticate(c.Request().Context(), token)
		outcome := auth.OutcomeOf(err)
		auth.RecordAttempt(outcome)

		if err != nil {
			logger := GetLogger(c)

			if auth.IsRejection(err) {
				logger.Warn().
					Str("function", "RequireAuth").
					Str("reason", outcome).
					Dur("duration", time.Since(start)).
					Msg("request rejected by auth gate")

				return errs.NewUnauthorizedError("Unauthorized", false)
			}

			logger.Error().
				Err(err).
				Str("function", "RequireAuth").
				Dur("duration", time.Since(start)).
				Msg("session lookup failed")

			return errs.NewInternalServerError()
		}

		c.Set(UserKey, user)
		c.SetRequest(c.Request().WithContext(auth.WithUser(c.Request().Context(), user)))

		userLogger := GetLogger(c).With().Str("user_id", user.ID.String()).Logger()
		c.Set(LoggerKey, &userLogger)

		userLogger.Debug().
			Str("function", "RequireAuth").
			Dur("duration", time.Since(start)).
			Msg("user authenticated")

		return next(c)
	}
}

// GetUser returns the user bound by RequireAuth, or nil on public routes.
func GetUser(c echo.Context) *model.User {
	if user, ok := c.Get(UserKey).(*model.User); ok {
		return user
	}
	return nil
}
