package salary

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"salaryengine/internal/domain"
	v "salaryengine/internal/validator"
)

var schemeLabels = map[domain.Scheme]string{
	domain.SchemePF:  "PF",
	domain.SchemeESI: "ESI",
}

// ProfileFieldRules returns the rules for the fields shared by every profile.
func ProfileFieldRules(opts Options) []*v.FieldRule {
	return []*v.FieldRule{
		{
			Key: "req.salary.amount", Name: "Required: Salary Amount",
			Field: domain.FieldSalaryAmount, Label: "Salary amount",
			Checks: []v.Check{
				v.Required(),
				v.Number(),
				v.MaxDecimals(2),
				v.Min(decimal.Zero),
				v.Max(opts.ceiling()),
			},
		},
		{
			Key: "req.salary.basis", Name: "Required: Salary Basis",
			Field: domain.FieldSalaryBasis, Label: "Salary basis",
			Checks: []v.Check{v.Required(), v.OneOf(domain.AllowedSalaryBases...)},
		},
		{
			Key: "req.salary.payment_type", Name: "Required: Payment Type",
			Field: domain.FieldPaymentType, Label: "Payment type",
			Checks: []v.Check{v.Required(), v.OneOf(domain.AllowedPaymentTypes...)},
		},
	}
}

// SchemeFieldRules returns the per-field rules for one scheme. Number and
// rate rules only apply while the scheme is enabled; requiredness is handled
// by the scheme's conditional-requirement rule.
func SchemeFieldRules(cfg *domain.RateConfiguration) ([]*v.FieldRule, error) {
	re, err := regexp.Compile(cfg.NumberPattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s number pattern: %v", domain.ErrInvalidRateConfig, cfg.Scheme, err)
	}
	fields := domain.FieldsFor(cfg.Scheme)
	label := schemeLabels[cfg.Scheme]
	prefix := strings.ToLower(label)

	return []*v.FieldRule{
		{
			Key: "fmt." + prefix + ".enabled", Name: "Format: " + label + " Enabled",
			Field: fields.Enabled, Label: label + " enabled",
			Checks: []v.Check{v.Boolean()},
		},
		{
			Key: "fmt." + prefix + ".number", Name: "Format: " + label + " Number",
			Field: fields.Number, Label: label + " number", ActiveWhen: fields.Enabled,
			Checks: []v.Check{v.Pattern(re, cfg.NumberExample)},
		},
		{
			Key: "range." + prefix + ".employee_rate", Name: "Range: " + label + " Employee Rate",
			Field: fields.EmployeeRate, Label: label + " employee rate", ActiveWhen: fields.Enabled,
			Checks: []v.Check{
				v.Number(),
				v.Whole(),
				v.Min(cfg.MinEmployeeRate),
				v.Max(cfg.MaxEmployeeRate),
			},
		},
		{
			Key: "range." + prefix + ".additional_rate", Name: "Range: " + label + " Additional Rate",
			Field: fields.AdditionalRate, Label: label + " additional rate", ActiveWhen: fields.Enabled,
			Checks: []v.Check{
				v.Number(),
				v.MaxDecimals(2),
				v.Min(cfg.MinAdditionalRate),
				v.Max(cfg.MaxAdditionalRate),
			},
		},
	}, nil
}
