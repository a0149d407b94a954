package domain

import "github.com/shopspring/decimal"

// Statutory number formats.
const (
	PFNumberPattern  = `^[A-Z]{2}/[A-Z]{3}/\d{7}/\d{3}/\d{7}$`
	PFNumberExample  = "DL/DLI/1234567/123/1234567"
	ESINumberPattern = `^\d{10}$`
	ESINumberExample = "1234567890"
)

func pct(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func pctPtr(v string) *decimal.Decimal {
	d := pct(v)
	return &d
}

// DefaultPFConfig returns the built-in Provident Fund configuration.
func DefaultPFConfig() *RateConfiguration {
	return &RateConfiguration{
		Scheme:            SchemePF,
		EmployerRate:      pct("12"),
		MinEmployeeRate:   pct("0"),
		MaxEmployeeRate:   pct("12"),
		MinAdditionalRate: pct("0"),
		MaxAdditionalRate: pct("12"),
		MaxTotalRate:      pct("20"),
		NumberPattern:     PFNumberPattern,
		NumberExample:     PFNumberExample,
	}
}

// DefaultESIConfig returns the built-in Employee State Insurance configuration.
func DefaultESIConfig() *RateConfiguration {
	return &RateConfiguration{
		Scheme:             SchemeESI,
		EmployerRate:       pct("3.25"),
		MinEmployeeRate:    pct("0"),
		MaxEmployeeRate:    pct("4"),
		MinAdditionalRate:  pct("0"),
		MaxAdditionalRate:  pct("5"),
		MaxTotalRate:       pct("10"),
		NumberPattern:      ESINumberPattern,
		NumberExample:      ESINumberExample,
		MinSalaryThreshold: pctPtr("0"),
		SalaryThreshold:    pctPtr("21000"),
	}
}

// DefaultRateSet returns the built-in configuration for both schemes.
func DefaultRateSet() RateSet {
	return RateSet{PF: DefaultPFConfig(), ESI: DefaultESIConfig()}
}
