package salary

import (
	"fmt"
	"strings"

	"salaryengine/internal/domain"
	v "salaryengine/internal/validator"
)

// SchemeCrossFieldRules returns the rules spanning several fields of one scheme.
func SchemeCrossFieldRules(cfg *domain.RateConfiguration) []*v.CrossFieldRule {
	fields := domain.FieldsFor(cfg.Scheme)
	label := schemeLabels[cfg.Scheme]
	prefix := strings.ToLower(label)
	requiredLabels := map[domain.Field]string{
		fields.Number:       label + " number",
		fields.EmployeeRate: label + " employee rate",
	}

	rules := []*v.CrossFieldRule{
		{
			Key: "xf." + prefix + ".conditional_required", Name: "Cross-field: " + label + " Required When Enabled",
			Kind:        v.KindConditionalRequired,
			Toggle:      fields.Enabled,
			Targets:     []domain.Field{fields.Number, fields.EmployeeRate},
			Label:       label,
			FieldLabels: requiredLabels,
		},
		{
			Key: "xf." + prefix + ".rate_sum", Name: "Cross-field: " + label + " Total Rate",
			Kind:     v.KindRateSum,
			Toggle:   fields.Enabled,
			Operands: []domain.Field{fields.EmployeeRate, fields.AdditionalRate},
			Target:   fields.TotalRate,
			Cap:      cfg.MaxTotalRate,
			Label:    label + " total rate",
		},
	}

	if cfg.HasEligibilityBand() {
		rules = append(rules, &v.CrossFieldRule{
			Key: "xf." + prefix + ".eligibility", Name: "Cross-field: " + label + " Salary Eligibility",
			Kind:     v.KindEligibility,
			Toggle:   fields.Enabled,
			Operands: []domain.Field{domain.FieldSalaryAmount},
			Target:   fields.Enabled,
			Min:      cfg.MinSalaryThreshold,
			Max:      cfg.SalaryThreshold,
			Category: domain.CategoryBusinessRule,
			Level:    domain.ValidationSeverityError,
			Message:  eligibilityMessage(label, cfg),
		})
	}
	return rules
}

func eligibilityMessage(label string, cfg *domain.RateConfiguration) string {
	switch {
	case cfg.MinSalaryThreshold != nil && cfg.SalaryThreshold != nil:
		return fmt.Sprintf("%s applies only to salaries between %s and %s",
			label, cfg.MinSalaryThreshold, cfg.SalaryThreshold)
	case cfg.SalaryThreshold != nil:
		return fmt.Sprintf("%s applies only to salaries up to %s", label, cfg.SalaryThreshold)
	default:
		return fmt.Sprintf("%s applies only to salaries of at least %s", label, cfg.MinSalaryThreshold)
	}
}
