package handler

import (
	"github.com/deppfellow/contacts-api/internal/errs"
	"github.com/deppfellow/contacts-api/internal/middleware"
	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/deppfellow/contacts-api/internal/server"
	"github.com/deppfellow/contacts-api/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Handler
	authService *service.AuthService
}

func NewAuthHandler(s *server.Server, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler:     NewHandler(s),
		authService: authService,
	}
}

func (h *AuthHandler) Login(c echo.Context, req *model.LoginUserRequest) (*model.TokenResponse, error) {
	return h.authService.Login(c.Request().Context(), req)
}

func (h *AuthHandler) Logout(c echo.Context, _ *model.EmptyRequest) (string, error) {
	user, err := currentUser(c)
	if err != nil {
		return "", err
	}

	if err := h.authService.Logout(c.Request().Context(), user); err != nil {
		return "", err
	}
	return "OK", nil
}

// currentUser is the user bound by the auth gate. Protected routes always
// have one; the error only guards against a route registered without it.
func currentUser(c echo.Context) (*model.User, error) {
	user := middleware.GetUser(c)
	if user == nil {
		return nil, errs.NewUnauthorizedError("Unauthorized", false)
	}
	return user, nil
}
