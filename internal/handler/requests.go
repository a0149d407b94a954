package handler

import (
	"salaryengine/internal/domain"
	"salaryengine/internal/service"
	"salaryengine/internal/validator"
)

// FormRequest carries raw form values.
type FormRequest struct {
	Values domain.FormValues `json:"values"`
}

// ValidateFieldRequest carries a candidate value for one field and the rest of the form.
type ValidateFieldRequest struct {
	Value  string            `json:"value"`
	Values domain.FormValues `json:"values"`
}

// UpdateFieldRequest carries a field edit within a session.
type UpdateFieldRequest struct {
	Value   string `json:"value"`
	Trigger string `json:"trigger" example:"change"`
}

// ExportRegisterRequest carries the forms of a payroll register.
type ExportRegisterRequest struct {
	Name    string                  `json:"name" example:"March Payroll"`
	Entries []service.RegisterEntry `json:"entries" binding:"required"`
}

// ValidationResult is the response of a whole-form validation pass.
type ValidationResult struct {
	Errors  []domain.ValidationError `json:"errors"`
	Summary validator.Summary        `json:"summary"`
}

// FieldResult is the response of a single-field validation.
type FieldResult struct {
	Field domain.Field            `json:"field"`
	Valid bool                    `json:"valid"`
	Error *domain.ValidationError `json:"error,omitempty"`
}

// AnalyticsResult pairs the contribution results with the derived snapshot.
type AnalyticsResult struct {
	PF        domain.ContributionResult       `json:"pf"`
	ESI       domain.ContributionResult       `json:"esi"`
	Analytics domain.PayrollAnalyticsSnapshot `json:"analytics"`
}
