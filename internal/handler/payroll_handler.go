package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"salaryengine/internal/csvexport"
	"salaryengine/internal/domain"
	"salaryengine/internal/service"
	"salaryengine/internal/validator"
)

// PayrollHandler handles stateless contribution and validation endpoints.
type PayrollHandler struct {
	payroll service.PayrollService
	now     func() time.Time
}

// NewPayrollHandler creates a new PayrollHandler.
func NewPayrollHandler(payroll service.PayrollService) *PayrollHandler {
	return &PayrollHandler{payroll: payroll, now: time.Now}
}

// Rates handles GET /api/v1/rates
// @Summary Get rate configuration
// @Tags payroll
// @Produce json
// @Success 200 {object} APIResponse{data=domain.RateSet}
// @Router /rates [get]
func (h *PayrollHandler) Rates(c *gin.Context) {
	RespondOK(c, h.payroll.Rates(c.Request.Context()))
}

// Contributions handles POST /api/v1/contributions
// @Summary Compute PF and ESI contributions
// @Tags payroll
// @Accept json
// @Produce json
// @Param request body domain.SalaryProfile true "Salary profile"
// @Success 200 {object} APIResponse{data=service.Contributions}
// @Failure 400 {object} APIResponse "Malformed profile"
// @Router /contributions [post]
func (h *PayrollHandler) Contributions(c *gin.Context) {
	var profile domain.SalaryProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		HandleError(c, fmt.Errorf("%w: %v", domain.ErrInvalidProfile, err))
		return
	}
	if err := profile.Validate(); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, h.payroll.ComputeContributions(c.Request.Context(), profile))
}

// Analytics handles POST /api/v1/analytics
// @Summary Compute contributions and payroll analytics
// @Tags payroll
// @Accept json
// @Produce json
// @Param request body domain.SalaryProfile true "Salary profile"
// @Success 200 {object} APIResponse{data=AnalyticsResult}
// @Failure 400 {object} APIResponse "Malformed profile"
// @Router /analytics [post]
func (h *PayrollHandler) Analytics(c *gin.Context) {
	var profile domain.SalaryProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		HandleError(c, fmt.Errorf("%w: %v", domain.ErrInvalidProfile, err))
		return
	}
	if err := profile.Validate(); err != nil {
		HandleError(c, err)
		return
	}

	ctx := c.Request.Context()
	res := h.payroll.ComputeContributions(ctx, profile)
	RespondOK(c, AnalyticsResult{
		PF:        res.PF,
		ESI:       res.ESI,
		Analytics: h.payroll.DeriveAnalytics(ctx, profile, res.PF, res.ESI),
	})
}

// ValidateField handles POST /api/v1/validate/:field
// @Summary Validate a single form field
// @Tags validation
// @Accept json
// @Produce json
// @Param field path string true "Field name"
// @Param request body ValidateFieldRequest true "Candidate value and form context"
// @Success 200 {object} APIResponse{data=FieldResult}
// @Failure 400 {object} APIResponse "Unknown field"
// @Router /validate/{field} [post]
func (h *PayrollHandler) ValidateField(c *gin.Context) {
	var req ValidateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	field := domain.Field(c.Param("field"))
	verr, err := h.payroll.ValidateField(c.Request.Context(), field, req.Value, req.Values)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, FieldResult{Field: field, Valid: verr == nil, Error: verr})
}

// ValidateAll handles POST /api/v1/validate
// @Summary Validate the whole form
// @Tags validation
// @Accept json
// @Produce json
// @Param request body FormRequest true "Form values"
// @Success 200 {object} APIResponse{data=ValidationResult}
// @Router /validate [post]
func (h *PayrollHandler) ValidateAll(c *gin.Context) {
	var req FormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	errs := h.payroll.ValidateAll(c.Request.Context(), req.Values)
	RespondOK(c, ValidationResult{
		Errors:  validator.Prioritize(errs),
		Summary: validator.Summarize(errs),
	})
}

// Evaluate handles POST /api/v1/evaluate
// @Summary Validate the form and compute every result
// @Tags payroll
// @Accept json
// @Produce json
// @Param request body FormRequest true "Form values"
// @Success 200 {object} APIResponse{data=service.Evaluation}
// @Router /evaluate [post]
func (h *PayrollHandler) Evaluate(c *gin.Context) {
	var req FormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	RespondOK(c, h.payroll.Recompute(c.Request.Context(), req.Values))
}

// ExportRegister handles POST /api/v1/register/export
// @Summary Export a payroll register as CSV
// @Tags payroll
// @Accept json
// @Produce text/csv
// @Param request body ExportRegisterRequest true "Register entries"
// @Success 200 {file} file "CSV file"
// @Router /register/export [post]
func (h *PayrollHandler) ExportRegister(c *gin.Context) {
	var req ExportRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	filename := csvexport.BuildFilename(req.Name, h.now())
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if err := h.payroll.ExportRegister(c.Request.Context(), c.Writer, req.Entries); err != nil {
		// Headers are already sent; abort so nothing else is written.
		_ = c.Error(err)
		c.Abort()
	}
}
