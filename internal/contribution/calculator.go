// Package contribution computes statutory PF and ESI contributions.
package contribution

import (
	"fmt"

	"github.com/shopspring/decimal"

	"salaryengine/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// round2 rounds half-up to two fractional digits. Amounts are never negative,
// so decimal's half-away-from-zero rounding is half-up here.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// percentOf returns round2(amount * rate / 100).
func percentOf(amount, rate decimal.Decimal) decimal.Decimal {
	return round2(amount.Mul(rate).Div(hundred))
}

// mustConfig panics on a missing configuration. A nil configuration is a
// deployment error, not a user input problem.
func mustConfig(cfg *domain.RateConfiguration) {
	if cfg == nil {
		panic(fmt.Errorf("contribution: %w", domain.ErrRateConfigMissing))
	}
}

// Compute returns the contribution result for one scheme.
//
// A disabled scheme or an absent/zero salary yields a zeroed, non-compliant
// result. This is a defined state rather than a failure. Out-of-range rates are
// reported through IsCompliant and never clamped.
func Compute(profile *domain.SalaryProfile, scheme domain.ContributionScheme, cfg *domain.RateConfiguration) domain.ContributionResult {
	mustConfig(cfg)

	result := domain.ContributionResult{
		Scheme:               cfg.Scheme,
		EmployeeContribution: decimal.Zero,
		EmployerContribution: decimal.Zero,
		TotalContribution:    decimal.Zero,
		TotalRate:            decimal.Zero,
		IsEligible:           ProfileEligible(profile, cfg),
	}

	salary := profile.Salary()
	if !scheme.Enabled || salary.IsZero() {
		return result
	}

	result.EmployeeContribution = percentOf(salary, scheme.Employee())
	result.EmployerContribution = percentOf(salary, cfg.EmployerRate)
	result.TotalContribution = result.EmployeeContribution.Add(result.EmployerContribution)
	result.TotalRate = scheme.TotalRate()
	result.IsCompliant = IsCompliant(scheme, cfg)
	return result
}

// ComputeAll computes both schemes for a profile.
func ComputeAll(profile *domain.SalaryProfile, rates domain.RateSet) (pf, esi domain.ContributionResult) {
	pf = Compute(profile, profile.PF, rates.PF)
	esi = Compute(profile, profile.ESI, rates.ESI)
	return pf, esi
}

// IsCompliant reports whether the employee and additional rates sit inside
// their configured bands and their sum does not exceed the total cap.
func IsCompliant(scheme domain.ContributionScheme, cfg *domain.RateConfiguration) bool {
	mustConfig(cfg)
	employee := scheme.Employee()
	additional := scheme.Additional()
	if !within(employee, cfg.MinEmployeeRate, cfg.MaxEmployeeRate) {
		return false
	}
	if !within(additional, cfg.MinAdditionalRate, cfg.MaxAdditionalRate) {
		return false
	}
	return scheme.TotalRate().LessThanOrEqual(cfg.MaxTotalRate)
}

func within(v, lo, hi decimal.Decimal) bool {
	return v.GreaterThanOrEqual(lo) && v.LessThanOrEqual(hi)
}
