// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns such as the
// session token gate, request logging, CORS, login rate limiting, tracing
// and panic recovery.
package middleware
