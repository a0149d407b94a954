package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormValues is the raw, as-typed state of the salary form keyed by field.
// Validation runs over these strings so that malformed input can be reported;
// calculations run over the typed SalaryProfile derived from them.
type FormValues map[Field]string

// FormFromProfile renders a profile as raw form values.
func FormFromProfile(p SalaryProfile) FormValues {
	f := FormValues{
		FieldSalaryBasis: string(p.SalaryBasis),
		FieldPaymentType: string(p.PaymentType),
	}
	if p.SalaryAmount != nil {
		f[FieldSalaryAmount] = p.SalaryAmount.String()
	}
	for _, s := range Schemes {
		fields := FieldsFor(s)
		scheme := p.Scheme(s)
		f[fields.Enabled] = strconv.FormatBool(scheme.Enabled)
		f[fields.Number] = scheme.StatutoryNumber
		if scheme.EmployeeRate != nil {
			f[fields.EmployeeRate] = scheme.EmployeeRate.String()
		}
		if scheme.AdditionalRate != nil {
			f[fields.AdditionalRate] = scheme.AdditionalRate.String()
		}
	}
	return f
}

// Get returns the trimmed raw value of field.
func (f FormValues) Get(field Field) string {
	return strings.TrimSpace(f[field])
}

// Has reports whether field holds a non-blank value.
func (f FormValues) Has(field Field) bool {
	return f.Get(field) != ""
}

// Enabled reports whether a toggle field is switched on. Unparseable values count as off.
func (f FormValues) Enabled(field Field) bool {
	on, err := strconv.ParseBool(f.Get(field))
	return err == nil && on
}

// Decimal parses field as a decimal. ok is false when the field is blank or malformed.
func (f FormValues) Decimal(field Field) (value decimal.Decimal, ok bool) {
	raw := f.Get(field)
	if raw == "" {
		return decimal.Zero, false
	}
	d, err := ParseNumber(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Set assigns a raw value to an input field.
func (f FormValues) Set(field Field, value string) error {
	if !IsInput(field) {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	f[field] = value
	return nil
}

// Clone returns an independent copy of the form.
func (f FormValues) Clone() FormValues {
	out := make(FormValues, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Profile derives the typed profile. Blank or malformed numeric values become
// absent so that calculations always get a best-effort snapshot.
func (f FormValues) Profile() SalaryProfile {
	p := SalaryProfile{
		SalaryBasis: SalaryBasis(f.Get(FieldSalaryBasis)),
		PaymentType: PaymentType(f.Get(FieldPaymentType)),
	}
	if d, ok := f.Decimal(FieldSalaryAmount); ok {
		p.SalaryAmount = &d
	}
	p.PF = f.scheme(FieldsFor(SchemePF))
	p.ESI = f.scheme(FieldsFor(SchemeESI))
	return p
}

func (f FormValues) scheme(fields SchemeFields) ContributionScheme {
	c := ContributionScheme{
		Enabled:         f.Enabled(fields.Enabled),
		StatutoryNumber: f.Get(fields.Number),
	}
	if d, ok := f.Decimal(fields.EmployeeRate); ok {
		c.EmployeeRate = &d
	}
	if d, ok := f.Decimal(fields.AdditionalRate); ok {
		c.AdditionalRate = &d
	}
	return c
}
