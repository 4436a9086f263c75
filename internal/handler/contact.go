package handler

import (
	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/deppfellow/contacts-api/internal/server"
	"github.com/deppfellow/contacts-api/internal/service"
	"github.com/labstack/echo/v4"
)

type ContactHandler struct {
	Handler
	contactService *service.ContactService
}

func NewContactHandler(s *server.Server, contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{
		Handler:        NewHandler(s),
		contactService: contactService,
	}
}

func (h *ContactHandler) Create(c echo.Context, req *model.CreateContactRequest) (*model.Contact, error) {
	user, err := currentUser(c)
	if err != nil {
		return nil, err
	}
	return h.contactService.Create(c.Request().Context(), user, req)
}

func (h *ContactHandler) Get(c echo.Context, req *model.ContactPathRequest) (*model.Contact, error) {
	user, err := currentUser(c)
	if err != nil {
		return nil, err
	}
	return h.contactService.Get(c.Request().Context(), user, req.ContactID)
}

func (h *ContactHandler) Update(c echo.Context, req *model.UpdateContactRequest) (*model.Contact, error) {
	user, err := currentUser(c)
	if err != nil {
		return nil, err
	}
	return h.contactService.Update(c.Request().Context(), user, req)
}

func (h *ContactHandler) Delete(c echo.Context, req *model.ContactPathRequest) (string, error) {
	user, err := currentUser(c)
	if err != nil {
		return "", err
	}

	if err := h.contactService.Delete(c.Request().Context(), user, req.ContactID); err != nil {
		return "", err
	}
	return "OK", nil
}

func (h *ContactHandler) Search(c echo.Context, req *model.SearchContactRequest) (model.Page[model.Contact], error) {
	user, err := currentUser(c)
	if err != nil {
		return model.Page[model.Contact]{}, err
	}
	return h.contactService.Search(c.Request().Context(), user, req)
}
