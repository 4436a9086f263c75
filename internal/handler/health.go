package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/contacts-api/internal/middleware"
	"github.com/deppfellow/contacts-api/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler serves /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type checkFunc func(ctx context.Context) error

// probes lists the dependency checks enabled in the observability config.
// The database is required; Redis only degrades welcome emails, so its
// failure is reported without failing the check.
func (h *HealthHandler) probes() (map[string]checkFunc, map[string]bool) {
	probes := make(map[string]checkFunc)
	required := make(map[string]bool)
	obs := h.server.Config.Observability

	if h.server.DB != nil && (obs == nil || obs.HealthCheckEnabled("database")) {
		probes["database"] = func(ctx context.Context) error { return h.server.DB.Pool.Ping(ctx) }
		required["database"] = true
	}
	if h.server.Redis != nil && (obs == nil || obs.HealthCheckEnabled("redis")) {
		probes["redis"] = func(ctx context.Context) error { return h.server.Redis.Ping(ctx).Err() }
	}

	return probes, required
}

func (h *HealthHandler) recordFailure(checkType string, fields map[string]interface{}) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}

	fields["check_type"] = checkType
	fields["operation"] = "health_check"
	h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", fields)
}

// CheckHealth answers 200 when every required dependency responds and 503
// otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	timeout := 5 * time.Second
	if obs := h.server.Config.Observability; obs != nil && obs.HealthChecks.Timeout > 0 {
		timeout = obs.HealthChecks.Timeout
	}

	checks := make(map[string]interface{})
	isHealthy := true

	probes, required := h.probes()
	for name, probe := range probes {
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		probeStart := time.Now()
		err := probe(ctx)
		cancel()

		if err != nil {
			checks[name] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": time.Since(probeStart).String(),
				"error":         err.Error(),
			}
			if required[name] {
				isHealthy = false
			}

			logger.Error().
				Err(err).
				Str("check", name).
				Dur("response_time", time.Since(probeStart)).
				Msg("health check failed")

			h.recordFailure(name, map[string]interface{}{
				"error_type":       name + "_unhealthy",
				"response_time_ms": time.Since(probeStart).Milliseconds(),
				"error_message":    err.Error(),
			})
			continue
		}

		checks[name] = map[string]interface{}{
			"status":        "healthy",
			"response_time": time.Since(probeStart).String(),
		}
	}

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordFailure("overall", map[string]interface{}{
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}
