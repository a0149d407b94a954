package salary

import (
	"fmt"

	"salaryengine/internal/domain"
	v "salaryengine/internal/validator"
)

// AllRules returns every built-in rule in evaluation order: profile fields,
// then per-scheme field rules, then cross-field rules.
func AllRules(rates domain.RateSet, opts Options) ([]v.Reporter, error) {
	if err := rates.Validate(); err != nil {
		return nil, err
	}

	var all []v.Reporter
	for _, r := range ProfileFieldRules(opts) {
		all = append(all, r)
	}
	for _, s := range domain.Schemes {
		rules, err := SchemeFieldRules(rates.For(s))
		if err != nil {
			return nil, err
		}
		for _, r := range rules {
			all = append(all, r)
		}
	}
	for _, s := range domain.Schemes {
		for _, r := range SchemeCrossFieldRules(rates.For(s)) {
			all = append(all, r)
		}
	}
	return all, nil
}

// NewRegistry builds a registry holding every built-in rule.
func NewRegistry(rates domain.RateSet, opts Options) (*v.Registry, error) {
	rules, err := AllRules(rates, opts)
	if err != nil {
		return nil, fmt.Errorf("building salary rules: %w", err)
	}
	reg := v.NewRegistry()
	for _, r := range rules {
		reg.Register(r)
	}
	return reg, nil
}

// NewChecker builds a checker over the built-in rules.
func NewChecker(rates domain.RateSet, opts Options) (*v.Checker, error) {
	reg, err := NewRegistry(rates, opts)
	if err != nil {
		return nil, err
	}
	return v.NewChecker(reg), nil
}
