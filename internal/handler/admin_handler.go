package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"salarypay-service/internal/model"
	"salarypay-service/internal/session"
	"salarypay-service/internal/store"
	"salarypay-service/pkg/logger"
	"salarypay-service/prometheus"
)

// AdminOverview returns platform-wide counts.
func (h *Handler) AdminOverview(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.PlatformStatsAll())
}

// AdminEmployers lists all employers.
func (h *Handler) AdminEmployers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Employers())
}

// AdminBusinesses lists all businesses.
func (h *Handler) AdminBusinesses(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Businesses())
}

// ToggleBusinessStatus flips a business between Active and Suspended.
// Pending businesses report no change.
func (h *Handler) ToggleBusinessStatus(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	status, changed := h.store.ToggleBusinessStatus(id)
	if changed {
		log.Info("Business status toggled",
			zap.String("business_id", id),
			zap.String("status", status))
	}
	return c.JSON(http.StatusOK, echo.Map{"status": status, "changed": changed})
}

// AdminConsumers lists consumer accounts with their employer names.
func (h *Handler) AdminConsumers(c echo.Context) error {
	consumers := h.store.UsersByRole(model.RoleConsumer)

	type row struct {
		model.User
		EmployerName string `json:"employer_name,omitempty"`
	}
	out := make([]row, 0, len(consumers))
	for _, u := range consumers {
		r := row{User: u}
		if emp, ok := h.store.EmployerByID(u.EmployerID); ok {
			r.EmployerName = emp.Name
		}
		out = append(out, r)
	}
	return c.JSON(http.StatusOK, out)
}

// AdminCommitments lists commitments, optionally narrowed by consumer,
// business or employer.
func (h *Handler) AdminCommitments(c echo.Context) error {
	commitments := h.store.ListCommitments(store.CommitmentFilter{
		ConsumerID: c.QueryParam("consumer_id"),
		BusinessID: c.QueryParam("business_id"),
		EmployerID: c.QueryParam("employer_id"),
	})
	return c.JSON(http.StatusOK, commitments)
}

// StartImpersonation issues a read-only view-as token for the target user.
func (h *Handler) StartImpersonation(c echo.Context) error {
	log := logger.FromContext(c)
	sess, _ := session.FromEcho(c)

	var req struct {
		UserID string `json:"user_id"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse impersonation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	target, ok := h.store.UserByID(req.UserID)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	token, err := h.jwt.GenerateImpersonationToken(sess.User, target.ID)
	if err != nil {
		log.Error("Failed to issue impersonation token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token issuance failed"})
	}

	prometheus.ImpersonationCounter.WithLabelValues("start").Inc()
	log.Info("Impersonation started",
		zap.String("admin_id", sess.User.ID),
		zap.String("target_id", target.ID))

	return c.JSON(http.StatusOK, echo.Map{
		"token":        token,
		"impersonated": target,
		"capabilities": session.CapabilityFor(target.Role, true),
	})
}

// StopImpersonation clears the overlay, restoring the underlying admin
// identity with a fresh token.
func (h *Handler) StopImpersonation(c echo.Context) error {
	log := logger.FromContext(c)
	sess, _ := session.FromEcho(c)

	// Checked against the acting identity: while the overlay is active the
	// effective role is the target's, so the admin role guard cannot cover
	// this route.
	if sess.User.Role != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	token, err := h.jwt.GenerateToken(sess.User)
	if err != nil {
		log.Error("Failed to issue session token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token issuance failed"})
	}

	prometheus.ImpersonationCounter.WithLabelValues("stop").Inc()
	log.Info("Impersonation stopped", zap.String("admin_id", sess.User.ID))

	return c.JSON(http.StatusOK, echo.Map{
		"token":        token,
		"user":         sess.User,
		"capabilities": session.CapabilityFor(sess.User.Role, false),
	})
}
