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

// ConsumerOverview returns the consumer dashboard: salary, deduction-limit
// breakdown, active commitment count and the next deductions.
func (h *Handler) ConsumerOverview(c echo.Context) error {
	sess, _ := session.FromEcho(c)
	consumer := sess.Effective()

	res, _ := h.store.DeductionLimit(consumer.ID)

	active := 0
	for _, cm := range h.store.ListCommitments(store.CommitmentFilter{ConsumerID: consumer.ID}) {
		if cm.Status == model.CommitmentActive {
			active++
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"salary":             res.Salary,
		"max_deduction":      res.MaxDeduction,
		"used":               res.Used,
		"safe_to_spend":      res.SafeToSpend,
		"active_commitments": active,
		"upcoming":           h.store.UpcomingDeductions(consumer.ID, store.UpcomingDisplayCount),
		"utilization": echo.Map{
			"used":      res.Used,
			"available": res.SafeToSpend,
		},
	})
}

// ConsumerCommitments lists the consumer's commitments, any status, with
// payment history served newest-first.
func (h *Handler) ConsumerCommitments(c echo.Context) error {
	sess, _ := session.FromEcho(c)
	consumer := sess.Effective()

	commitments := h.store.ListCommitments(store.CommitmentFilter{ConsumerID: consumer.ID})
	for i := range commitments {
		reverseHistory(commitments[i].History)
	}
	return c.JSON(http.StatusOK, commitments)
}

// AmendCommitment replaces the monthly amount on one of the consumer's
// Active commitments.
func (h *Handler) AmendCommitment(c echo.Context) error {
	log := logger.FromContext(c)
	sess, _ := session.FromEcho(c)
	consumer := sess.Effective()
	id := c.Param("id")

	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse amend request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if !h.ownsCommitment(consumer.ID, id) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	changed, err := h.store.AmendCommitmentAmount(id, req.Amount)
	if err != nil {
		log.Warn("Commitment amendment rejected", zap.String("commitment_id", id), zap.Error(err))
		return c.JSON(validationStatus(err), echo.Map{"error": err.Error()})
	}
	if changed {
		prometheus.CommitmentAmendedCounter.Inc()
		log.Info("Commitment amended",
			zap.String("commitment_id", id),
			zap.Float64("amount", req.Amount))
	}
	return c.JSON(http.StatusOK, echo.Map{"changed": changed})
}

// CancelCommitment cancels one of the consumer's commitments. Cancelling an
// already-cancelled commitment reports no change.
func (h *Handler) CancelCommitment(c echo.Context) error {
	log := logger.FromContext(c)
	sess, _ := session.FromEcho(c)
	consumer := sess.Effective()
	id := c.Param("id")

	if !h.ownsCommitment(consumer.ID, id) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	changed, err := h.store.CancelCommitment(id)
	if err != nil {
		return c.JSON(validationStatus(err), echo.Map{"error": err.Error()})
	}
	if changed {
		prometheus.CommitmentCancelledCounter.Inc()
		log.Info("Commitment cancelled", zap.String("commitment_id", id))
	}
	return c.JSON(http.StatusOK, echo.Map{"changed": changed})
}

// ConsumerMerchants lists the Active businesses a consumer can commit to.
func (h *Handler) ConsumerMerchants(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.ActiveBusinesses())
}

// ownsCommitment reports whether the commitment exists and belongs to the
// consumer. A missing commitment passes: the mutator reports it as a no-op.
func (h *Handler) ownsCommitment(consumerID, commitmentID string) bool {
	cm, ok := h.store.CommitmentByID(commitmentID)
	if !ok {
		return true
	}
	return cm.ConsumerID == consumerID
}

func reverseHistory(history []model.PaymentRecord) {
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
}
