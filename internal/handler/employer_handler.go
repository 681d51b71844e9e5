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

// EmployerOverview returns the employer dashboard: employee counts, the sum
// of active deductions across the payroll, and the current policy.
func (h *Handler) EmployerOverview(c echo.Context) error {
	sess, _ := session.FromEcho(c)
	employer, ok := h.store.EmployerByID(sess.Effective().EmployerID)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "employer not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"employer": employer,
		"stats":    h.store.EmployerStatsFor(employer.ID),
	})
}

// EmployerEmployees lists the employer's payroll records.
func (h *Handler) EmployerEmployees(c echo.Context) error {
	sess, _ := session.FromEcho(c)
	return c.JSON(http.StatusOK, h.store.EmployeesByEmployer(sess.Effective().EmployerID))
}

// AddEmployee appends a payroll record to the employer's roster.
func (h *Handler) AddEmployee(c echo.Context) error {
	log := logger.FromContext(c)
	sess, _ := session.FromEcho(c)
	employerID := sess.Effective().EmployerID

	var req struct {
		Name       string  `json:"name"`
		Email      string  `json:"email"`
		Salary     float64 `json:"salary"`
		JoinedDate string  `json:"joined_date"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse employee request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Name == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and email are required"})
	}
	if req.JoinedDate == "" {
		req.JoinedDate = time.Now().Format("2006-01-02")
	}

	employee, err := h.store.AddEmployee(model.Employee{
		EmployerID: employerID,
		Name:       req.Name,
		Email:      req.Email,
		Salary:     req.Salary,
		Status:     model.EmployeeEnabled,
		JoinedDate: req.JoinedDate,
	})
	if err != nil {
		log.Warn("Employee rejected", zap.String("email", req.Email), zap.Error(err))
		return c.JSON(validationStatus(err), echo.Map{"error": err.Error()})
	}

	prometheus.EmployeeAddedCounter.Inc()
	log.Info("Employee added",
		zap.String("employee_id", employee.ID),
		zap.String("employer_id", employerID))

	return c.JSON(http.StatusCreated, employee)
}

// SetEmployeeStatus enables or disables a payroll record.
func (h *Handler) SetEmployeeStatus(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse status request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	changed, err := h.store.SetEmployeeStatus(id, req.Status)
	if err != nil {
		return c.JSON(validationStatus(err), echo.Map{"error": err.Error()})
	}
	if changed {
		log.Info("Employee status updated",
			zap.String("employee_id", id),
			zap.String("status", req.Status))
	}
	return c.JSON(http.StatusOK, echo.Map{"changed": changed})
}

// EmployerRule returns the employer's deduction policy.
func (h *Handler) EmployerRule(c echo.Context) error {
	sess, _ := session.FromEcho(c)
	employer, ok := h.store.EmployerByID(sess.Effective().EmployerID)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "employer not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"max_deduction_percent": employer.MaxDeductionPercent})
}

// SetEmployerRule updates the max-deduction percent. Out-of-range values
// are rejected.
func (h *Handler) SetEmployerRule(c echo.Context) error {
	log := logger.FromContext(c)
	sess, _ := session.FromEcho(c)
	employerID := sess.Effective().EmployerID

	var req struct {
		Percent float64 `json:"percent"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse rule request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	changed, err := h.store.SetEmployerRule(employerID, req.Percent)
	if err != nil {
		log.Warn("Rule update rejected",
			zap.String("employer_id", employerID),
			zap.Float64("percent", req.Percent),
			zap.Error(err))
		return c.JSON(validationStatus(err), echo.Map{"error": err.Error()})
	}
	if changed {
		log.Info("Deduction rule updated",
			zap.String("employer_id", employerID),
			zap.Float64("percent", req.Percent))
	}
	return c.JSON(http.StatusOK, echo.Map{"changed": changed})
}
