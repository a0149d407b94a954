package domain

// Field names a single input of the salary form. Synthetic fields such as the
// per-scheme total rate carry errors but have no input of their own.
type Field string

const (
	FieldSalaryAmount Field = "salary_amount"
	FieldSalaryBasis  Field = "salary_basis"
	FieldPaymentType  Field = "payment_type"

	FieldPFEnabled        Field = "pf_enabled"
	FieldPFNumber         Field = "pf_number"
	FieldPFEmployeeRate   Field = "pf_employee_rate"
	FieldPFAdditionalRate Field = "pf_additional_rate"
	FieldPFTotalRate      Field = "pf_total_rate"

	FieldESIEnabled        Field = "esi_enabled"
	FieldESINumber         Field = "esi_number"
	FieldESIEmployeeRate   Field = "esi_employee_rate"
	FieldESIAdditionalRate Field = "esi_additional_rate"
	FieldESITotalRate      Field = "esi_total_rate"
)

// SchemeFields groups the form fields that belong to one scheme.
type SchemeFields struct {
	Enabled        Field
	Number         Field
	EmployeeRate   Field
	AdditionalRate Field
	TotalRate      Field
}

var schemeFields = map[Scheme]SchemeFields{
	SchemePF: {
		Enabled:        FieldPFEnabled,
		Number:         FieldPFNumber,
		EmployeeRate:   FieldPFEmployeeRate,
		AdditionalRate: FieldPFAdditionalRate,
		TotalRate:      FieldPFTotalRate,
	},
	SchemeESI: {
		Enabled:        FieldESIEnabled,
		Number:         FieldESINumber,
		EmployeeRate:   FieldESIEmployeeRate,
		AdditionalRate: FieldESIAdditionalRate,
		TotalRate:      FieldESITotalRate,
	},
}

// FieldsFor returns the field set for the given scheme.
func FieldsFor(s Scheme) SchemeFields {
	return schemeFields[s]
}

// InputFields lists every user-editable field in form order.
var InputFields = []Field{
	FieldSalaryAmount,
	FieldSalaryBasis,
	FieldPaymentType,
	FieldPFEnabled,
	FieldPFNumber,
	FieldPFEmployeeRate,
	FieldPFAdditionalRate,
	FieldESIEnabled,
	FieldESINumber,
	FieldESIEmployeeRate,
	FieldESIAdditionalRate,
}

// IsInput reports whether f is a user-editable field.
func IsInput(f Field) bool {
	for _, in := range InputFields {
		if in == f {
			return true
		}
	}
	return false
}
