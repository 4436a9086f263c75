// Package router assembles the Echo instance: global middleware, the
// system routes and the /api routes.
package router

import (
	"net/http"

	"github.com/deppfellow/contacts-api/internal/handler"
	"github.com/deppfellow/contacts-api/internal/middleware"
	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/deppfellow/contacts-api/internal/server"
	"github.com/deppfellow/contacts-api/internal/service"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the HTTP router. Middleware order matters: the request
// id must exist before the logger is enhanced, and New Relic must start
// the transaction before anything reads it.
func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	mw := middleware.NewMiddlewares(s, services.Authenticator)

	router := echo.New()
	router.HideBanner = true
	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	router.Use(
		mw.Global.CORS(),
		mw.Global.Secure(),
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api")
	registerPublicRoutes(api, h, mw)

	protected := api.Group("", mw.Auth.RequireAuth)
	registerUserRoutes(protected, h)
	registerContactRoutes(protected, h)

	return router
}

func registerPublicRoutes(api *echo.Group, h *handler.Handlers, mw *middleware.Middlewares) {
	api.POST("/users", handler.Handle(h.User.Handler, h.User.Register, http.StatusOK, &model.RegisterUserRequest{}))
	api.POST("/auth/login", handler.Handle(h.Auth.Handler, h.Auth.Login, http.StatusOK, &model.LoginUserRequest{}), mw.RateLimit.LoginLimiter())
}

func registerUserRoutes(api *echo.Group, h *handler.Handlers) {
	api.DELETE("/auth/logout", handler.Handle(h.Auth.Handler, h.Auth.Logout, http.StatusOK, &model.EmptyRequest{}))
	api.GET("/users/current", handler.Handle(h.User.Handler, h.User.Current, http.StatusOK, &model.EmptyRequest{}))
	api.PATCH("/users/current", handler.Handle(h.User.Handler, h.User.Update, http.StatusOK, &model.UpdateUserRequest{}))
}

func registerContactRoutes(api *echo.Group, h *handler.Handlers) {
	contacts := api.Group("/contacts")

	contacts.POST("", handler.Handle(h.Contact.Handler, h.Contact.Create, http.StatusOK, &model.CreateContactRequest{}))
	contacts.GET("", handler.Handle(h.Contact.Handler, h.Contact.Search, http.StatusOK, &model.SearchContactRequest{}))
	contacts.GET("/:contactId", handler.Handle(h.Contact.Handler, h.Contact.Get, http.StatusOK, &model.ContactPathRequest{}))
	update := handler.Handle(h.Contact.Handler, h.Contact.Update, http.StatusOK, &model.UpdateContactRequest{})
	contacts.PUT("/:contactId", update)
	contacts.PATCH("/:contactId", update)
	contacts.DELETE("/:contactId", handler.Handle(h.Contact.Handler, h.Contact.Delete, http.StatusOK, &model.ContactPathRequest{}))

	addresses := contacts.Group("/:contactId/addresses")

	addresses.POST("", handler.Handle(h.Address.Handler, h.Address.Create, http.StatusOK, &model.CreateAddressRequest{}))
	addresses.GET("", handler.Handle(h.Address.Handler, h.Address.List, http.StatusOK, &model.ContactPathRequest{}))
	addresses.GET("/:addressId", handler.Handle(h.Address.Handler, h.Address.Get, http.StatusOK, &model.AddressPathRequest{}))
	updateAddress := handler.Handle(h.Address.Handler, h.Address.Update, http.StatusOK, &model.UpdateAddressRequest{})
	addresses.PUT("/:addressId", updateAddress)
	addresses.PATCH("/:addressId", updateAddress)
	addresses.DELETE("/:addressId", handler.Handle(h.Address.Handler, h.Address.Delete, http.StatusOK, &model.AddressPathRequest{}))
}
