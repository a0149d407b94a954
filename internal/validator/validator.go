package validator

import (
	"salaryengine/internal/domain"
)

// Rule is the metadata every built-in validation rule exposes to the registry.
type Rule interface {
	RuleKey() string
	RuleName() string
	RuleType() domain.ValidationRuleType
	Severity() domain.ValidationSeverity
}

// Reporter is implemented by rules that attach errors to form fields.
type Reporter interface {
	Rule
	// Reads lists every field whose value can change the rule's outcome.
	Reads() []domain.Field
	// Reports lists the fields the rule attaches errors to.
	Reports() []domain.Field
	// Evaluate returns at most one error per reported field.
	Evaluate(form domain.FormValues) []domain.ValidationError
}
