package domain

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// SalaryProfile is the salary record under edit together with its two
// contribution schemes. A nil SalaryAmount means the amount has not been entered.
type SalaryProfile struct {
	SalaryAmount *decimal.Decimal   `json:"salary_amount"`
	SalaryBasis  SalaryBasis        `json:"salary_basis"`
	PaymentType  PaymentType        `json:"payment_type"`
	PF           ContributionScheme `json:"pf"`
	ESI          ContributionScheme `json:"esi"`
}

// Salary returns the salary amount, or zero when absent.
func (p *SalaryProfile) Salary() decimal.Decimal {
	if p.SalaryAmount == nil {
		return decimal.Zero
	}
	return *p.SalaryAmount
}

// Scheme returns the contribution scheme for s.
func (p *SalaryProfile) Scheme(s Scheme) ContributionScheme {
	if s == SchemeESI {
		return p.ESI
	}
	return p.PF
}

// Validate rejects decoded amounts whose exponent falls outside the accepted
// band. Decoding JSON numbers honours exponent notation.
func (p *SalaryProfile) Validate() error {
	if p.SalaryAmount != nil && !InRange(*p.SalaryAmount) {
		return fmt.Errorf("%w: salary_amount is out of range", ErrInvalidProfile)
	}
	for _, s := range Schemes {
		scheme := p.Scheme(s)
		for name, d := range map[string]*decimal.Decimal{
			"employee_rate":   scheme.EmployeeRate,
			"additional_rate": scheme.AdditionalRate,
		} {
			if d != nil && !InRange(*d) {
				return fmt.Errorf("%w: %s.%s is out of range", ErrInvalidProfile, s, name)
			}
		}
	}
	return nil
}

// ContributionScheme holds the user-entered settings for one scheme.
type ContributionScheme struct {
	Enabled         bool             `json:"enabled"`
	StatutoryNumber string           `json:"statutory_number"`
	EmployeeRate    *decimal.Decimal `json:"employee_rate"`
	AdditionalRate  *decimal.Decimal `json:"additional_rate"`
}

// Employee returns the employee rate, or zero when absent.
func (c ContributionScheme) Employee() decimal.Decimal {
	if c.EmployeeRate == nil {
		return decimal.Zero
	}
	return *c.EmployeeRate
}

// Additional returns the additional rate, or zero when absent.
func (c ContributionScheme) Additional() decimal.Decimal {
	if c.AdditionalRate == nil {
		return decimal.Zero
	}
	return *c.AdditionalRate
}

// TotalRate is the employee rate plus the additional rate.
func (c ContributionScheme) TotalRate() decimal.Decimal {
	return c.Employee().Add(c.Additional())
}

// RateConfiguration holds the immutable statutory constants for one scheme.
// MaxTotalRate is an independent cap and need not equal the sum of the
// employee and additional maxima.
type RateConfiguration struct {
	Scheme             Scheme           `json:"scheme"`
	EmployerRate       decimal.Decimal  `json:"employer_rate"`
	MinEmployeeRate    decimal.Decimal  `json:"min_employee_rate"`
	MaxEmployeeRate    decimal.Decimal  `json:"max_employee_rate"`
	MinAdditionalRate  decimal.Decimal  `json:"min_additional_rate"`
	MaxAdditionalRate  decimal.Decimal  `json:"max_additional_rate"`
	MaxTotalRate       decimal.Decimal  `json:"max_total_rate"`
	NumberPattern      string           `json:"number_pattern"`
	NumberExample      string           `json:"number_example"`
	MinSalaryThreshold *decimal.Decimal `json:"min_salary_threshold,omitempty"`
	SalaryThreshold    *decimal.Decimal `json:"salary_threshold,omitempty"`
}

// HasEligibilityBand reports whether the scheme restricts applicability by salary.
func (c *RateConfiguration) HasEligibilityBand() bool {
	return c.MinSalaryThreshold != nil || c.SalaryThreshold != nil
}

// Validate checks the internal consistency of the configuration.
func (c *RateConfiguration) Validate() error {
	if c.MinEmployeeRate.GreaterThan(c.MaxEmployeeRate) {
		return fmt.Errorf("%w: %s min employee rate %s exceeds max %s",
			ErrInvalidRateConfig, c.Scheme, c.MinEmployeeRate, c.MaxEmployeeRate)
	}
	if c.MinAdditionalRate.GreaterThan(c.MaxAdditionalRate) {
		return fmt.Errorf("%w: %s min additional rate %s exceeds max %s",
			ErrInvalidRateConfig, c.Scheme, c.MinAdditionalRate, c.MaxAdditionalRate)
	}
	if c.EmployerRate.IsNegative() || c.MinEmployeeRate.IsNegative() || c.MinAdditionalRate.IsNegative() || c.MaxTotalRate.IsNegative() {
		return fmt.Errorf("%w: %s rates must not be negative", ErrInvalidRateConfig, c.Scheme)
	}
	if c.MinSalaryThreshold != nil && c.SalaryThreshold != nil && c.MinSalaryThreshold.GreaterThan(*c.SalaryThreshold) {
		return fmt.Errorf("%w: %s min salary threshold %s exceeds threshold %s",
			ErrInvalidRateConfig, c.Scheme, c.MinSalaryThreshold, c.SalaryThreshold)
	}
	if c.NumberPattern == "" {
		return fmt.Errorf("%w: %s number pattern is empty", ErrInvalidRateConfig, c.Scheme)
	}
	if _, err := regexp.Compile(c.NumberPattern); err != nil {
		return fmt.Errorf("%w: %s number pattern: %v", ErrInvalidRateConfig, c.Scheme, err)
	}
	return nil
}

// RateSet is the pair of configurations the engine runs with.
type RateSet struct {
	PF  *RateConfiguration `json:"pf"`
	ESI *RateConfiguration `json:"esi"`
}

// For returns the configuration for s, or nil when it is not loaded.
func (r RateSet) For(s Scheme) *RateConfiguration {
	if s == SchemeESI {
		return r.ESI
	}
	return r.PF
}

// Validate checks both configurations are present and consistent.
func (r RateSet) Validate() error {
	for _, s := range Schemes {
		cfg := r.For(s)
		if cfg == nil {
			return fmt.Errorf("%w: %s", ErrRateConfigMissing, s)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ContributionResult is the computed outcome for one scheme. It is a value
// and is always replaced as a whole.
type ContributionResult struct {
	Scheme               Scheme          `json:"scheme"`
	EmployeeContribution decimal.Decimal `json:"employee_contribution"`
	EmployerContribution decimal.Decimal `json:"employer_contribution"`
	TotalContribution    decimal.Decimal `json:"total_contribution"`
	TotalRate            decimal.Decimal `json:"total_rate"`
	IsCompliant          bool            `json:"is_compliant"`
	IsEligible           bool            `json:"is_eligible"`
}

// ValidationError is a single problem found on a form field. It is data, not a Go error.
type ValidationError struct {
	Field    Field              `json:"field"`
	Rule     string             `json:"rule"`
	Message  string             `json:"message"`
	Category ErrorCategory      `json:"category"`
	Severity ValidationSeverity `json:"severity"`
}

// SchemeBreakdown is the per-scheme split shown in payroll analytics.
type SchemeBreakdown struct {
	Employee decimal.Decimal `json:"employee"`
	Employer decimal.Decimal `json:"employer"`
	Total    decimal.Decimal `json:"total"`
}

// PayrollAnalyticsSnapshot is derived from a profile and its two results.
type PayrollAnalyticsSnapshot struct {
	GrossSalary        decimal.Decimal `json:"gross_salary"`
	TotalDeductions    decimal.Decimal `json:"total_deductions"`
	NetSalary          decimal.Decimal `json:"net_salary"`
	TakeHomePercentage decimal.Decimal `json:"take_home_percentage"`
	CostToCompany      decimal.Decimal `json:"cost_to_company"`
	PF                 SchemeBreakdown `json:"pf"`
	ESI                SchemeBreakdown `json:"esi"`
}
