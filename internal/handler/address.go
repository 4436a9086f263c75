package handler

import (
	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/deppfellow/contacts-api/internal/server"
	"github.com/deppfellow/contacts-api/internal/service"
	"github.com/labstack/echo/v4"
)

type AddressHandler struct {
	Handler
	addressService *service.AddressService
}

func NewAddressHandler(s *server.Server, addressService *service.AddressService) *AddressHandler {
	return &AddressHandler{
		Handler:        NewHandler(s),
		addressService: addressService,
	}
}

func (h *AddressHandler) Create(c echo.Context, req *model.CreateAddressRequest) (*model.Address, error) {
	user, err := currentUser(c)
	if err != nil {
		return nil, err
	}
	return h.addressService.Create(c.Request().Context(), user, req)
}

func (h *AddressHandler) Get(c echo.Context, req *model.AddressPathRequest) (*model.Address, error) {
	user, err := currentUser(c)
	if err != nil {
		return nil, err
	}
	return h.addressService.Get(c.Request().Context(), user, req)
}

func (h *AddressHandler) Update(c echo.Context, req *model.UpdateAddressRequest) (*model.Address, error) {
	user, err := currentUser(c)
	if err != nil {
		return nil, err
	}
	return h.addressService.Update(c.Request().Context(), user, req)
}

func (h *AddressHandler) Delete(c echo.Context, req *model.AddressPathRequest) (string, error) {
	user, err := currentUser(c)
	if err != nil {
		return "", err
	}

	if err := h.addressService.Delete(c.Request().Context(), user, req); err != nil {
		return "", err
	}
	return "OK", nil
}

func (h *AddressHandler) List(c echo.Context, req *model.ContactPathRequest) ([]model.Address, error) {
	user, err := currentUser(c)
	if err != nil {
		return nil, err
	}
	return h.addressService.List(c.Request().Context(), user, req.ContactID)
}
