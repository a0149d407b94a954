package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"salaryengine/internal/domain"
)

// CheckKind identifies a single check inside a FieldRule.
type CheckKind string

const (
	CheckRequired CheckKind = "required"
	CheckNumber   CheckKind = "number"
	CheckBoolean  CheckKind = "boolean"
	CheckPattern  CheckKind = "pattern"
	CheckOneOf    CheckKind = "one_of"
	CheckDecimals CheckKind = "decimals"
	CheckWhole    CheckKind = "whole"
	CheckMin      CheckKind = "min"
	CheckMax      CheckKind = "max"
)

type stage int

const (
	stageRequired stage = iota
	stageFormat
	stageBounds
)

func (k CheckKind) stage() stage {
	switch k {
	case CheckRequired:
		return stageRequired
	case CheckMin, CheckMax:
		return stageBounds
	default:
		return stageFormat
	}
}

func (k CheckKind) category() domain.ErrorCategory {
	switch k.stage() {
	case stageRequired:
		return domain.CategoryRequired
	case stageBounds:
		return domain.CategoryBusinessRule
	default:
		return domain.CategoryFormat
	}
}

// Check is one declarative constraint on a raw field value. Only the
// parameters relevant to Kind are read.
type Check struct {
	Kind    CheckKind
	Pattern *regexp.Regexp
	Example string
	Options []string
	Limit   decimal.Decimal
	Places  int32
	// Message overrides the generated message.
	Message string
}

// Required, Number and the other constructors build checks for rule tables.
func Required() Check { return Check{Kind: CheckRequired} }
func Number() Check   { return Check{Kind: CheckNumber} }
func Boolean() Check  { return Check{Kind: CheckBoolean} }
func Whole() Check    { return Check{Kind: CheckWhole} }

func Pattern(re *regexp.Regexp, example string) Check {
	return Check{Kind: CheckPattern, Pattern: re, Example: example}
}

func OneOf(options ...string) Check {
	return Check{Kind: CheckOneOf, Options: options}
}

func MaxDecimals(places int32) Check {
	return Check{Kind: CheckDecimals, Places: places}
}

func Min(limit decimal.Decimal) Check { return Check{Kind: CheckMin, Limit: limit} }
func Max(limit decimal.Decimal) Check { return Check{Kind: CheckMax, Limit: limit} }

// run reports whether raw passes the check and, when it does not, the
// default message. raw is never blank here.
func (c Check) run(raw, label string) (bool, string) {
	switch c.Kind {
	case CheckNumber:
		if _, err := domain.ParseNumber(raw); err != nil {
			return false, fmt.Sprintf("%s must be a number", label)
		}
	case CheckBoolean:
		if _, err := strconv.ParseBool(raw); err != nil {
			return false, fmt.Sprintf("%s must be true or false", label)
		}
	case CheckPattern:
		if !c.Pattern.MatchString(raw) {
			if c.Example != "" {
				return false, fmt.Sprintf("%s must match the format %s", label, c.Example)
			}
			return false, fmt.Sprintf("%s has an invalid format", label)
		}
	case CheckOneOf:
		for _, opt := range c.Options {
			if raw == opt {
				return true, ""
			}
		}
		return false, fmt.Sprintf("%s must be one of %s", label, strings.Join(c.Options, ", "))
	case CheckDecimals:
		d, err := domain.ParseNumber(raw)
		if err != nil {
			return false, fmt.Sprintf("%s must be a number", label)
		}
		if !d.Equal(d.Truncate(c.Places)) {
			return false, fmt.Sprintf("%s must have at most %d decimal places", label, c.Places)
		}
	case CheckWhole:
		d, err := domain.ParseNumber(raw)
		if err != nil {
			return false, fmt.Sprintf("%s must be a number", label)
		}
		if !d.IsInteger() {
			return false, fmt.Sprintf("%s must be a whole number", label)
		}
	case CheckMin:
		d, err := domain.ParseNumber(raw)
		if err != nil {
			return false, fmt.Sprintf("%s must be a number", label)
		}
		if d.LessThan(c.Limit) {
			return false, fmt.Sprintf("%s must be at least %s", label, c.Limit)
		}
	case CheckMax:
		d, err := domain.ParseNumber(raw)
		if err != nil {
			return false, fmt.Sprintf("%s must be a number", label)
		}
		if d.GreaterThan(c.Limit) {
			return false, fmt.Sprintf("%s must not exceed %s", label, c.Limit)
		}
	}
	return true, ""
}

// FieldRule is a declarative, per-field rule: an ordered list of checks run
// required first, then format, then bounds. The first failing check is the
// only error reported for the field in a pass.
type FieldRule struct {
	Key   string
	Name  string
	Field domain.Field
	Label string
	// ActiveWhen names a toggle field. When set and the toggle is off the rule
	// is skipped entirely.
	ActiveWhen domain.Field
	Level      domain.ValidationSeverity
	Checks     []Check
}

func (r *FieldRule) RuleKey() string  { return r.Key }
func (r *FieldRule) RuleName() string { return r.Name }
func (r *FieldRule) RuleType() domain.ValidationRuleType {
	for _, c := range r.Checks {
		if c.Kind == CheckRequired {
			return domain.ValidationRuleRequired
		}
	}
	for _, c := range r.Checks {
		if c.Kind == CheckPattern {
			return domain.ValidationRuleRegex
		}
	}
	return domain.ValidationRuleRange
}
func (r *FieldRule) Severity() domain.ValidationSeverity {
	if r.Level == "" {
		return domain.ValidationSeverityError
	}
	return r.Level
}

func (r *FieldRule) Reads() []domain.Field {
	if r.ActiveWhen != "" {
		return []domain.Field{r.Field, r.ActiveWhen}
	}
	return []domain.Field{r.Field}
}

func (r *FieldRule) Reports() []domain.Field { return []domain.Field{r.Field} }

func (r *FieldRule) Evaluate(form domain.FormValues) []domain.ValidationError {
	if e := r.Validate(form); e != nil {
		return []domain.ValidationError{*e}
	}
	return nil
}

// Validate runs the rule against the form and returns its single error, if any.
func (r *FieldRule) Validate(form domain.FormValues) *domain.ValidationError {
	if r.ActiveWhen != "" && !form.Enabled(r.ActiveWhen) {
		return nil
	}
	label := r.label()
	raw := form.Get(r.Field)
	if raw == "" {
		for _, c := range r.Checks {
			if c.Kind == CheckRequired {
				return r.fail(c, fmt.Sprintf("%s is required", label))
			}
		}
		return nil
	}
	for _, st := range []stage{stageFormat, stageBounds} {
		for _, c := range r.Checks {
			if c.Kind.stage() != st {
				continue
			}
			if ok, msg := c.run(raw, label); !ok {
				return r.fail(c, msg)
			}
		}
	}
	return nil
}

func (r *FieldRule) label() string {
	if r.Label != "" {
		return r.Label
	}
	return string(r.Field)
}

func (r *FieldRule) fail(c Check, msg string) *domain.ValidationError {
	if c.Message != "" {
		msg = c.Message
	}
	return &domain.ValidationError{
		Field:    r.Field,
		Rule:     r.Key,
		Message:  msg,
		Category: c.Kind.category(),
		Severity: r.Severity(),
	}
}
