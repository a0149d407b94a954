// Package analytics derives payroll figures from a salary profile and its
// contribution results.
package analytics

import (
	"github.com/shopspring/decimal"

	"salaryengine/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Derive builds the analytics snapshot. Every figure is recomputed from the
// inputs on each call so a snapshot is always internally consistent.
func Derive(profile *domain.SalaryProfile, pf, esi domain.ContributionResult) domain.PayrollAnalyticsSnapshot {
	gross := profile.Salary()
	deductions := pf.EmployeeContribution.Add(esi.EmployeeContribution)
	employer := pf.EmployerContribution.Add(esi.EmployerContribution)
	net := gross.Sub(deductions)

	return domain.PayrollAnalyticsSnapshot{
		GrossSalary:        gross,
		TotalDeductions:    deductions,
		NetSalary:          net,
		TakeHomePercentage: TakeHomePercentage(net, gross),
		CostToCompany:      gross.Add(employer),
		PF:                 breakdown(pf),
		ESI:                breakdown(esi),
	}
}

// TakeHomePercentage returns round2(net / gross * 100), or zero when gross is zero.
func TakeHomePercentage(net, gross decimal.Decimal) decimal.Decimal {
	if gross.IsZero() {
		return decimal.Zero
	}
	return net.Mul(hundred).Div(gross).Round(2)
}

func breakdown(r domain.ContributionResult) domain.SchemeBreakdown {
	return domain.SchemeBreakdown{
		Employee: r.EmployeeContribution,
		Employer: r.EmployerContribution,
		Total:    r.TotalContribution,
	}
}
