package contribution

import (
	"github.com/shopspring/decimal"

	"salaryengine/internal/domain"
)

// IsEligible reports whether salary falls inside the scheme's inclusive
// eligibility band. Schemes without a band are always eligible. The result does
// not depend on whether the scheme is enabled.
func IsEligible(salary decimal.Decimal, cfg *domain.RateConfiguration) bool {
	mustConfig(cfg)
	if cfg.MinSalaryThreshold != nil && salary.LessThan(*cfg.MinSalaryThreshold) {
		return false
	}
	if cfg.SalaryThreshold != nil && salary.GreaterThan(*cfg.SalaryThreshold) {
		return false
	}
	return true
}

// ProfileEligible evaluates eligibility for a profile. An absent salary is
// never eligible for a banded scheme, so nothing is contributed until a salary
// is entered. Form validation reports the missing salary through its own
// required rule instead, and the salary eligibility rule stays silent.
func ProfileEligible(profile *domain.SalaryProfile, cfg *domain.RateConfiguration) bool {
	mustConfig(cfg)
	if !cfg.HasEligibilityBand() {
		return true
	}
	if profile.SalaryAmount == nil {
		return false
	}
	return IsEligible(*profile.SalaryAmount, cfg)
}
