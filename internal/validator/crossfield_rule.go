package validator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"salaryengine/internal/domain"
)

// CrossFieldKind selects how a CrossFieldRule is interpreted.
type CrossFieldKind string

const (
	// KindConditionalRequired makes Targets required while Toggle is on.
	KindConditionalRequired CrossFieldKind = "conditional_required"
	// KindRateSum caps the sum of Operands at Cap and reports on Target.
	KindRateSum CrossFieldKind = "rate_sum"
	// KindEligibility requires Operands[0] to sit inside [Min, Max] while
	// Toggle is on and reports on Target.
	KindEligibility CrossFieldKind = "eligibility"
)

// CrossFieldRule is a declarative rule spanning several fields of one form.
// Every kind is inactive while Toggle is set and switched off. FieldLabels
// names fields in messages; a field without one is named by its id.
type CrossFieldRule struct {
	Key         string
	Name        string
	Kind        CrossFieldKind
	Toggle      domain.Field
	Targets     []domain.Field
	Operands    []domain.Field
	Target      domain.Field
	Cap         decimal.Decimal
	Min         *decimal.Decimal
	Max         *decimal.Decimal
	Label       string
	FieldLabels map[domain.Field]string
	Category    domain.ErrorCategory
	Level       domain.ValidationSeverity
	Message     string
}

func (r *CrossFieldRule) RuleKey() string  { return r.Key }
func (r *CrossFieldRule) RuleName() string { return r.Name }
func (r *CrossFieldRule) RuleType() domain.ValidationRuleType {
	switch r.Kind {
	case KindRateSum:
		return domain.ValidationRuleSumCheck
	case KindEligibility:
		return domain.ValidationRuleEligibility
	default:
		return domain.ValidationRuleCrossField
	}
}
func (r *CrossFieldRule) Severity() domain.ValidationSeverity {
	if r.Level == "" {
		return domain.ValidationSeverityError
	}
	return r.Level
}

func (r *CrossFieldRule) Reads() []domain.Field {
	var out []domain.Field
	if r.Toggle != "" {
		out = append(out, r.Toggle)
	}
	out = append(out, r.Targets...)
	return append(out, r.Operands...)
}

func (r *CrossFieldRule) Reports() []domain.Field {
	if r.Kind == KindConditionalRequired {
		return r.Targets
	}
	return []domain.Field{r.Target}
}

func (r *CrossFieldRule) Evaluate(form domain.FormValues) []domain.ValidationError {
	if r.Toggle != "" && !form.Enabled(r.Toggle) {
		return nil
	}
	switch r.Kind {
	case KindConditionalRequired:
		return r.conditionalRequired(form)
	case KindRateSum:
		return r.rateSum(form)
	case KindEligibility:
		return r.eligibility(form)
	}
	return nil
}

func (r *CrossFieldRule) conditionalRequired(form domain.FormValues) []domain.ValidationError {
	var out []domain.ValidationError
	for _, f := range r.Targets {
		if form.Has(f) {
			continue
		}
		out = append(out, r.fail(f, domain.CategoryRequired,
			fmt.Sprintf("%s is required when %s is enabled", r.fieldLabel(f), r.label())))
	}
	return out
}

// rateSum treats blank and malformed operands as zero; their own field rules
// report the format problem.
func (r *CrossFieldRule) rateSum(form domain.FormValues) []domain.ValidationError {
	sum := decimal.Zero
	for _, f := range r.Operands {
		if d, ok := form.Decimal(f); ok {
			sum = sum.Add(d)
		}
	}
	if sum.LessThanOrEqual(r.Cap) {
		return nil
	}
	return []domain.ValidationError{r.fail(r.Target, domain.CategoryBusinessRule,
		fmt.Sprintf("%s %s exceeds the maximum of %s", r.label(), sum, r.Cap))}
}

// eligibility skips a blank or malformed value; the value's own rule reports it.
func (r *CrossFieldRule) eligibility(form domain.FormValues) []domain.ValidationError {
	if len(r.Operands) == 0 {
		return nil
	}
	v, ok := form.Decimal(r.Operands[0])
	if !ok {
		return nil
	}
	if (r.Min == nil || v.GreaterThanOrEqual(*r.Min)) && (r.Max == nil || v.LessThanOrEqual(*r.Max)) {
		return nil
	}
	return []domain.ValidationError{r.fail(r.Target, domain.CategoryBusinessRule,
		fmt.Sprintf("%s is not available for %s %s", r.label(), r.fieldLabel(r.Operands[0]), v))}
}

func (r *CrossFieldRule) label() string {
	switch {
	case r.Label != "":
		return r.Label
	case r.Kind == KindConditionalRequired:
		return string(r.Toggle)
	default:
		return string(r.Target)
	}
}

func (r *CrossFieldRule) fieldLabel(f domain.Field) string {
	if l, ok := r.FieldLabels[f]; ok {
		return l
	}
	return string(f)
}

func (r *CrossFieldRule) fail(field domain.Field, category domain.ErrorCategory, msg string) domain.ValidationError {
	if r.Message != "" {
		msg = r.Message
	}
	if r.Category != "" {
		category = r.Category
	}
	return domain.ValidationError{
		Field:    field,
		Rule:     r.Key,
		Message:  msg,
		Category: category,
		Severity: r.Severity(),
	}
}
