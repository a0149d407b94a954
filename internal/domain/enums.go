package domain

// Scheme identifies a statutory contribution scheme.
type Scheme string

const (
	SchemePF  Scheme = "pf"
	SchemeESI Scheme = "esi"
)

// Schemes lists every supported scheme in display order.
var Schemes = []Scheme{SchemePF, SchemeESI}

// SalaryBasis is the period a salary amount is quoted for.
type SalaryBasis string

const (
	SalaryBasisHourly  SalaryBasis = "hourly"
	SalaryBasisDaily   SalaryBasis = "daily"
	SalaryBasisWeekly  SalaryBasis = "weekly"
	SalaryBasisMonthly SalaryBasis = "monthly"
)

// AllowedSalaryBases lists the accepted salary basis values.
var AllowedSalaryBases = []string{
	string(SalaryBasisHourly),
	string(SalaryBasisDaily),
	string(SalaryBasisWeekly),
	string(SalaryBasisMonthly),
}

// PaymentType is how the salary is disbursed.
type PaymentType string

const (
	PaymentTypeBankTransfer PaymentType = "bank_transfer"
	PaymentTypeCheck        PaymentType = "check"
	PaymentTypeCash         PaymentType = "cash"
)

// AllowedPaymentTypes lists the accepted payment type values.
var AllowedPaymentTypes = []string{
	string(PaymentTypeBankTransfer),
	string(PaymentTypeCheck),
	string(PaymentTypeCash),
}

// ErrorCategory groups validation errors for display and localization.
type ErrorCategory string

const (
	CategoryRequired     ErrorCategory = "required"
	CategoryFormat       ErrorCategory = "format"
	CategoryDuplicate    ErrorCategory = "duplicate"
	CategoryBusinessRule ErrorCategory = "business_rule"
	CategoryRelationship ErrorCategory = "relationship"
	CategoryAge          ErrorCategory = "age"
	CategoryPhone        ErrorCategory = "phone"
	CategoryOther        ErrorCategory = "other"
)

// ValidationSeverity represents the severity level of a validation error.
type ValidationSeverity string

const (
	ValidationSeverityError   ValidationSeverity = "error"
	ValidationSeverityWarning ValidationSeverity = "warning"
	ValidationSeverityInfo    ValidationSeverity = "info"
)

// ValidationRuleType represents the type of a validation rule.
type ValidationRuleType string

const (
	ValidationRuleRequired    ValidationRuleType = "required_field"
	ValidationRuleRegex       ValidationRuleType = "regex"
	ValidationRuleRange       ValidationRuleType = "range"
	ValidationRuleSumCheck    ValidationRuleType = "sum_check"
	ValidationRuleCrossField  ValidationRuleType = "cross_field"
	ValidationRuleEligibility ValidationRuleType = "eligibility"
)

// FieldState is the per-field position in the validation state machine.
type FieldState string

const (
	FieldStateUntouched FieldState = "untouched"
	FieldStateValid     FieldState = "valid"
	FieldStateInvalid   FieldState = "invalid"
)

// ValidationTrigger is the form event that caused a validation pass.
type ValidationTrigger string

const (
	TriggerChanged   ValidationTrigger = "change"
	TriggerBlurred   ValidationTrigger = "blur"
	TriggerSubmitted ValidationTrigger = "submit"
)

// ParseTrigger maps a raw trigger name to a ValidationTrigger.
func ParseTrigger(s string) (ValidationTrigger, bool) {
	switch ValidationTrigger(s) {
	case TriggerChanged, TriggerBlurred, TriggerSubmitted:
		return ValidationTrigger(s), true
	case "":
		return TriggerChanged, true
	default:
		return "", false
	}
}

// ValidationStatus represents the overall validation state of a form.
type ValidationStatus string

const (
	ValidationStatusValid   ValidationStatus = "valid"
	ValidationStatusWarning ValidationStatus = "warning"
	ValidationStatusInvalid ValidationStatus = "invalid"
)
