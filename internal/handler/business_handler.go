package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"salarypay-service/internal/session"
	"salarypay-service/internal/store"
	"salarypay-service/pkg/logger"
	"salarypay-service/prometheus"
)

const recentActivityCount = 5

// BusinessOverview returns the merchant dashboard: recurring revenue,
// subscription and customer counts, and recent activity.
func (h *Handler) BusinessOverview(c echo.Context) error {
	sess, _ := session.FromEcho(c)
	business, ok := h.store.BusinessByID(sess.Effective().BusinessID)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "business not found"})
	}

	recent := h.store.ListCommitments(store.CommitmentFilter{BusinessID: business.ID})
	if len(recent) > recentActivityCount {
		recent = recent[:recentActivityCount]
	}

	return c.JSON(http.StatusOK, echo.Map{
		"business":        business,
		"stats":           h.store.BusinessStatsFor(business.ID),
		"recent_activity": recent,
	})
}

// BusinessCustomers lists the merchant's commitments across all customers.
func (h *Handler) BusinessCustomers(c echo.Context) error {
	sess, _ := session.FromEcho(c)
	return c.JSON(http.StatusOK, h.store.ListCommitments(store.CommitmentFilter{BusinessID: sess.Effective().BusinessID}))
}

// BusinessSettlements lists the merchant's payout batches.
func (h *Handler) BusinessSettlements(c echo.Context) error {
	sess, _ := session.FromEcho(c)
	return c.JSON(http.StatusOK, h.store.SettlementsByBusiness(sess.Effective().BusinessID))
}

// CreateCommitment starts a merchant-initiated recurring commitment for a
// consumer.
func (h *Handler) CreateCommitment(c echo.Context) error {
	log := logger.FromContext(c)
	sess, _ := session.FromEcho(c)
	business, ok := h.store.BusinessByID(sess.Effective().BusinessID)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "business not found"})
	}

	var req struct {
		ConsumerID        string  `json:"consumer_id"`
		Amount            float64 `json:"amount"`
		StartDate         string  `json:"start_date"`
		NextDeductionDate string  `json:"next_deduction_date"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse commitment request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.ConsumerID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "consumer_id is required"})
	}

	commitment, err := h.store.CreateCommitment(req.ConsumerID, business.ID, business.Name, req.Amount, req.StartDate, req.NextDeductionDate)
	if err != nil {
		log.Warn("Commitment rejected",
			zap.String("consumer_id", req.ConsumerID),
			zap.Float64("amount", req.Amount),
			zap.Error(err))
		return c.JSON(validationStatus(err), echo.Map{"error": err.Error()})
	}

	prometheus.CommitmentCreatedCounter.Inc()
	log.Info("Commitment created",
		zap.String("commitment_id", commitment.ID),
		zap.String("consumer_id", commitment.ConsumerID),
		zap.Float64("amount", commitment.Amount))

	return c.JSON(http.StatusCreated, commitment)
}
