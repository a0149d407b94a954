package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"salaryengine/internal/domain"
)

// RateSet converts the inline rate settings into validated configurations.
func (r *RatesConfig) RateSet() (domain.RateSet, error) {
	var set domain.RateSet
	for _, s := range domain.Schemes {
		cfg, err := r.For(s).RateConfiguration(s)
		if err != nil {
			return domain.RateSet{}, err
		}
		if s == domain.SchemeESI {
			set.ESI = cfg
		} else {
			set.PF = cfg
		}
	}
	if err := set.Validate(); err != nil {
		return domain.RateSet{}, err
	}
	return set, nil
}

// RateConfiguration parses the settings of one scheme.
func (c SchemeRatesConfig) RateConfiguration(s domain.Scheme) (*domain.RateConfiguration, error) {
	p := parser{scheme: s}
	cfg := &domain.RateConfiguration{
		Scheme:             s,
		EmployerRate:       p.required("employer_rate", c.EmployerRate),
		MinEmployeeRate:    p.required("min_employee_rate", c.MinEmployeeRate),
		MaxEmployeeRate:    p.required("max_employee_rate", c.MaxEmployeeRate),
		MinAdditionalRate:  p.required("min_additional_rate", c.MinAdditionalRate),
		MaxAdditionalRate:  p.required("max_additional_rate", c.MaxAdditionalRate),
		MaxTotalRate:       p.required("max_total_rate", c.MaxTotalRate),
		NumberPattern:      strings.TrimSpace(c.NumberPattern),
		NumberExample:      strings.TrimSpace(c.NumberExample),
		MinSalaryThreshold: p.optional("min_salary_threshold", c.MinSalaryThreshold),
		SalaryThreshold:    p.optional("salary_threshold", c.SalaryThreshold),
	}
	if p.err != nil {
		return nil, p.err
	}
	return cfg, nil
}

// ParseDecimal parses a configured decimal, naming key in the error.
func ParseDecimal(key, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s=%q is not a number: %w", key, raw, err)
	}
	return d, nil
}

// Ceiling parses the salary ceiling.
func (c ValidationConfig) Ceiling() (decimal.Decimal, error) {
	return ParseDecimal("validation.salary_ceiling", c.SalaryCeiling)
}

// parser keeps the first parse error so a whole struct can be filled in one go.
type parser struct {
	scheme domain.Scheme
	err    error
}

func (p *parser) required(key, raw string) decimal.Decimal {
	if p.err != nil {
		return decimal.Zero
	}
	d, err := ParseDecimal(string(p.scheme)+"."+key, raw)
	if err != nil {
		p.err = fmt.Errorf("%w: %v", domain.ErrInvalidRateConfig, err)
	}
	return d
}

func (p *parser) optional(key, raw string) *decimal.Decimal {
	if p.err != nil || strings.TrimSpace(raw) == "" {
		return nil
	}
	d := p.required(key, raw)
	if p.err != nil {
		return nil
	}
	return &d
}
