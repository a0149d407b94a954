package domain

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// MaxExponent bounds the decimal exponent accepted from untrusted input.
// Comparing a decimal rescales both operands, so a large exponent costs
// time proportional to its size.
const MaxExponent = 18

var plainNumber = regexp.MustCompile(`^[+-]?\d+(\.\d+)?$`)

// ParseNumber parses raw as a plain decimal. Exponent notation is rejected.
func ParseNumber(raw string) (decimal.Decimal, error) {
	if !plainNumber.MatchString(raw) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedNumber, raw)
	}
	return decimal.NewFromString(raw)
}

// InRange reports whether d's exponent lies within the accepted band.
func InRange(d decimal.Decimal) bool {
	e := d.Exponent()
	return e >= -MaxExponent && e <= MaxExponent
}
