// Package handler is the HTTP layer.
//
// Handlers receive requests that the router has already passed through the
// auth gate (on protected routes), bind and validate them, call the service
// layer and return the payload that goes into the response envelope. They
// never authenticate anything themselves.
package handler

import (
	"github.com/deppfellow/contacts-api/internal/server"
	"github.com/deppfellow/contacts-api/internal/service"
)

type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Auth    *AuthHandler
	User    *UserHandler
	Contact *ContactHandler
	Address *AddressHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Auth:    NewAuthHandler(s, services.Auth),
		User:    NewUserHandler(s, services.User),
		Contact: NewContactHandler(s, services.Contact),
		Address: NewAddressHandler(s, services.Address),
	}
}
