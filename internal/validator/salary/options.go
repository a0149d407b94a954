// Package salary holds the built-in rule tables for the salary form.
package salary

import (
	"github.com/shopspring/decimal"
)

// DefaultSalaryCeiling is the largest accepted salary amount.
var DefaultSalaryCeiling = decimal.NewFromInt(10_000_000)

// Options tunes the rule tables.
type Options struct {
	SalaryCeiling decimal.Decimal
}

// DefaultOptions returns the built-in options.
func DefaultOptions() Options {
	return Options{SalaryCeiling: DefaultSalaryCeiling}
}

func (o Options) ceiling() decimal.Decimal {
	if o.SalaryCeiling.IsPositive() {
		return o.SalaryCeiling
	}
	return DefaultSalaryCeiling
}
