// Package handler implements the HTTP surface: one file per persona plus
// the auth and health endpoints. Handlers read the session resolved by the
// auth middleware and funnel every data access through the injected store.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"salarypay-service/internal/store"
	"salarypay-service/pkg/config"
	"salarypay-service/pkg/jwtutil"
	"salarypay-service/prometheus"
)

// Handler carries the dependencies shared by all endpoints.
type Handler struct {
	store *store.Store
	jwt   *jwtutil.JWTUtil
	cfg   *config.Config
}

// New creates a Handler with its dependencies injected.
func New(st *store.Store, jwt *jwtutil.JWTUtil, cfg *config.Config) *Handler {
	return &Handler{store: st, jwt: jwt, cfg: cfg}
}

// Hello returns a simple welcome message
func (h *Handler) Hello(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Welcome to SalaryPay API",
		"version": "1.0.0",
	})
}

// HealthCheck handles the health check endpoint
func (h *Handler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// validationStatus maps a store validation error to an HTTP status code.
// Missing-id no-ops never reach here; they are reported as changed=false.
func validationStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrLimitExceeded):
		prometheus.LimitRejectionCounter.Inc()
		return http.StatusConflict
	case errors.Is(err, store.ErrAmountNotPositive),
		errors.Is(err, store.ErrSalaryNotPositive),
		errors.Is(err, store.ErrPercentOutOfRange),
		errors.Is(err, store.ErrInvalidStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
