package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"salarypay-service/internal/model"
	"salarypay-service/internal/session"
	"salarypay-service/pkg/logger"
	"salarypay-service/prometheus"
)

// demoCredentials mirrors the demo login shortcuts of the original product.
var demoCredentials = map[model.Role]string{
	model.RoleConsumer: "john@techcorp.com",
	model.RoleEmployer: "hr@techcorp.com",
	model.RoleBusiness: "owner@fitlifegym.com",
	model.RoleAdmin:    "admin@salarypay.com",
}

// Login resolves or auto-provisions the user for an (email, role) claim and
// issues a session token. There is no credential verification: this is a
// trust-the-claim demo session model.
func (h *Handler) Login(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Email string     `json:"email"`
		Role  model.Role `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
	}
	if !req.Role.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}

	// Simulated upstream latency, as in the original login flow.
	if h.cfg.Auth.LoginDelay > 0 {
		time.Sleep(h.cfg.Auth.LoginDelay)
	}

	user := session.Resolve(h.store, req.Email, req.Role)

	token, err := h.jwt.GenerateToken(user)
	if err != nil {
		log.Error("Failed to issue session token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token issuance failed"})
	}

	prometheus.LoginCounter.WithLabelValues(string(user.Role)).Inc()
	log.Info("User logged in",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))

	return c.JSON(http.StatusOK, echo.Map{
		"token":        token,
		"user":         user,
		"capabilities": session.CapabilityFor(user.Role, false),
	})
}

// Logout acknowledges a logout. Sessions are stateless tokens, so the
// client discarding its token is the actual logout.
func (h *Handler) Logout(c echo.Context) error {
	if sess, ok := session.FromEcho(c); ok {
		logger.FromContext(c).Info("User logged out", zap.String("user_id", sess.User.ID))
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// DemoCredentials lists the seeded demo account per role.
func (h *Handler) DemoCredentials(c echo.Context) error {
	return c.JSON(http.StatusOK, demoCredentials)
}

// Me returns the session's acting identity, overlay and capabilities.
func (h *Handler) Me(c echo.Context) error {
	sess, ok := session.FromEcho(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	resp := echo.Map{
		"user":          sess.User,
		"effective":     sess.Effective(),
		"impersonating": sess.IsImpersonating(),
		"capabilities":  session.CapabilityFor(sess.Effective().Role, sess.IsImpersonating()),
	}
	if sess.IsImpersonating() {
		resp["impersonated"] = *sess.Impersonated
	}
	return c.JSON(http.StatusOK, resp)
}
