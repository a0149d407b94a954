package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salaryengine/internal/service"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	payroll service.PayrollService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(payroll service.PayrollService) *HealthHandler {
	return &HealthHandler{payroll: payroll}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.payroll.Rates(c.Request.Context()).Validate(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "rate configuration not loaded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
