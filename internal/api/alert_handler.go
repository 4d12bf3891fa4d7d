package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/banking/aml-core/internal/core"
	"github.com/banking/aml-core/internal/domain"
	"github.com/banking/aml-core/internal/errs"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AlertHandler exposes a representative subset of §6's alert, case,
// overdue-workflow and match-candidate review operations over HTTP, in the
// same thin-handler style as AuditHandler.
type AlertHandler struct {
	core *core.AmlCore
}

func NewAlertHandler(amlCore *core.AmlCore) *AlertHandler {
	return &AlertHandler{core: amlCore}
}

// GetAlert handles GET /alerts/:alert_id
func (h *AlertHandler) GetAlert(c echo.Context) error {
	alertID, err := uuid.Parse(c.Param("alert_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid alert_id"})
	}

	alert, err := h.core.GetAlert(alertID)
	if err != nil {
		if errs.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, alert)
}

// GetOverdueWorkflows handles GET /workflows/overdue
func (h *AlertHandler) GetOverdueWorkflows(c echo.Context) error {
	overdue := h.core.OverdueWorkflows(time.Now())
	return c.JSON(http.StatusOK, overdue)
}

// SearchAlerts handles GET /alerts
func (h *AlertHandler) SearchAlerts(c echo.Context) error {
	var criteria domain.AlertFilter
	if status := c.QueryParam("status"); status != "" {
		s := domain.AlertStatus(status)
		criteria.Status = &s
	}
	if severity := c.QueryParam("severity"); severity != "" {
		s := domain.Severity(severity)
		criteria.Severity = &s
	}
	if customerID := c.QueryParam("customer_id"); customerID != "" {
		id, err := uuid.Parse(customerID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid customer_id"})
		}
		criteria.CustomerID = &id
	}
	criteria.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	criteria.Offset, _ = strconv.Atoi(c.QueryParam("offset"))

	return c.JSON(http.StatusOK, h.core.SearchAlerts(criteria))
}

// GetAlertStatistics handles GET /alerts/statistics
func (h *AlertHandler) GetAlertStatistics(c echo.Context) error {
	return c.JSON(http.StatusOK, h.core.GetStatistics(time.Now()))
}

// SearchCases handles GET /cases
func (h *AlertHandler) SearchCases(c echo.Context) error {
	var criteria domain.CaseFilter
	if status := c.QueryParam("status"); status != "" {
		s := domain.CaseStatus(status)
		criteria.Status = &s
	}
	if category := c.QueryParam("category"); category != "" {
		cat := domain.CaseCategory(category)
		criteria.Category = &cat
	}
	criteria.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	criteria.Offset, _ = strconv.Atoi(c.QueryParam("offset"))

	return c.JSON(http.StatusOK, h.core.SearchCases(criteria))
}

// GetCaseStatistics handles GET /cases/statistics
func (h *AlertHandler) GetCaseStatistics(c echo.Context) error {
	return c.JSON(http.StatusOK, h.core.GetCaseStatistics(time.Now()))
}

// reviewCandidateRequest is the body of POST /candidates/:candidate_id/review
type reviewCandidateRequest struct {
	ActorID uuid.UUID `json:"actor_id"`
	Approve bool      `json:"approve"`
}

// ReviewCandidate handles POST /candidates/:candidate_id/review
func (h *AlertHandler) ReviewCandidate(c echo.Context) error {
	candidateID, err := uuid.Parse(c.Param("candidate_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid candidate_id"})
	}
	var req reviewCandidateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	candidate, entity, err := h.core.ReviewCandidate(candidateID, req.ActorID, req.Approve)
	if err != nil {
		if errs.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"candidate": candidate, "entity": entity})
}

// RegisterRoutes registers the API routes
func (h *AlertHandler) RegisterRoutes(e *echo.Group) {
	e.GET("/alerts", h.SearchAlerts)
	e.GET("/alerts/statistics", h.GetAlertStatistics)
	e.GET("/alerts/:alert_id", h.GetAlert)
	e.GET("/cases", h.SearchCases)
	e.GET("/cases/statistics", h.GetCaseStatistics)
	e.GET("/workflows/overdue", h.GetOverdueWorkflows)
	e.POST("/candidates/:candidate_id/review", h.ReviewCandidate)
}
