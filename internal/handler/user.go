package handler

import (
	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/deppfellow/contacts-api/internal/server"
	"github.com/deppfellow/contacts-api/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Handler
	userService *service.UserService
}

func NewUserHandler(s *server.Server, userService *service.UserService) *UserHandler {
	return &UserHandler{
		Handler:     NewHandler(s),
		userService: userService,
	}
}

func (h *UserHandler) Register(c echo.Context, req *model.RegisterUserRequest) (string, error) {
	if err := h.userService.Register(c.Request().Context(), req); err != nil {
		return "", err
	}
	return "OK", nil
}

func (h *UserHandler) Current(c echo.Context, _ *model.EmptyRequest) (model.UserResponse, error) {
	user, err := currentUser(c)
	if err != nil {
		return model.UserResponse{}, err
	}
	return h.userService.Current(user), nil
}

func (h *UserHandler) Update(c echo.Context, req *model.UpdateUserRequest) (model.UserResponse, error) {
	user, err := currentUser(c)
	if err != nil {
		return model.UserResponse{}, err
	}
	return h.userService.Update(c.Request().Context(), user, req)
}
