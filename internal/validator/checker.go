package validator

import (
	"sort"
	"strconv"
	"strings"

	"salaryengine/internal/domain"
)

// Checker interprets the rules of a Registry against form values. It is
// immutable after construction and safe for concurrent use.
type Checker struct {
	fields     []domain.Field
	fieldRules map[domain.Field][]Reporter
	crossRules map[domain.Field][]Reporter
	context    map[domain.Field][]domain.Field
	dependents map[domain.Field][]domain.Field
}

func isCrossField(r Rule) bool {
	switch r.RuleType() {
	case domain.ValidationRuleCrossField, domain.ValidationRuleSumCheck, domain.ValidationRuleEligibility:
		return true
	}
	return false
}

// NewChecker indexes the registry's rules by the fields they report on.
func NewChecker(reg *Registry) *Checker {
	c := &Checker{
		fieldRules: make(map[domain.Field][]Reporter),
		crossRules: make(map[domain.Field][]Reporter),
		context:    make(map[domain.Field][]domain.Field),
		dependents: make(map[domain.Field][]domain.Field),
	}

	seen := make(map[domain.Field]bool)
	reads := make(map[domain.Field]map[domain.Field]bool)
	for _, rule := range reg.All() {
		for _, f := range rule.Reports() {
			if !seen[f] {
				seen[f] = true
				c.fields = append(c.fields, f)
				reads[f] = make(map[domain.Field]bool)
			}
			if isCrossField(rule) {
				c.crossRules[f] = append(c.crossRules[f], rule)
			} else {
				c.fieldRules[f] = append(c.fieldRules[f], rule)
			}
			for _, r := range rule.Reads() {
				if r != f {
					reads[f][r] = true
				}
			}
		}
	}

	for _, f := range c.fields {
		ctx := make([]domain.Field, 0, len(reads[f]))
		for r := range reads[f] {
			ctx = append(ctx, r)
		}
		sort.Slice(ctx, func(i, j int) bool { return ctx[i] < ctx[j] })
		c.context[f] = ctx
	}
	for _, f := range c.fields {
		for _, dep := range c.fields {
			if reads[dep][f] {
				c.dependents[f] = append(c.dependents[f], dep)
			}
		}
	}
	return c
}

// Fields returns every field the checker can report on, in rule order.
func (c *Checker) Fields() []domain.Field {
	return append([]domain.Field(nil), c.fields...)
}

// Knows reports whether any rule reports on field.
func (c *Checker) Knows(field domain.Field) bool {
	_, ok := c.context[field]
	return ok
}

// Context returns the other fields whose values can change field's outcome.
func (c *Checker) Context(field domain.Field) []domain.Field {
	return c.context[field]
}

// Dependents returns the fields whose outcome can change when field changes.
func (c *Checker) Dependents(field domain.Field) []domain.Field {
	return c.dependents[field]
}

// Key builds the cache key for a field: its value plus every context value.
// Each part is length-prefixed so that no two forms share a key.
func (c *Checker) Key(field domain.Field, form domain.FormValues) string {
	var b strings.Builder
	writeKeyPart(&b, string(field))
	writeKeyPart(&b, form.Get(field))
	for _, ctx := range c.context[field] {
		writeKeyPart(&b, string(ctx))
		writeKeyPart(&b, form.Get(ctx))
	}
	return b.String()
}

func writeKeyPart(b *strings.Builder, part string) {
	b.WriteString(strconv.Itoa(len(part)))
	b.WriteByte(':')
	b.WriteString(part)
}

// CheckField returns the single error to show for field, or nil. A cross-field
// error takes precedence over the field's own format or bounds error.
func (c *Checker) CheckField(field domain.Field, form domain.FormValues) *domain.ValidationError {
	for _, rule := range c.crossRules[field] {
		for _, e := range rule.Evaluate(form) {
			if e.Field == field {
				return &e
			}
		}
	}
	for _, rule := range c.fieldRules[field] {
		for _, e := range rule.Evaluate(form) {
			if e.Field == field {
				return &e
			}
		}
	}
	return nil
}

// CheckAll validates every known field. One invalid field never stops the
// others from being checked.
func (c *Checker) CheckAll(form domain.FormValues) map[domain.Field]domain.ValidationError {
	out := make(map[domain.Field]domain.ValidationError)
	for _, f := range c.fields {
		if e := c.CheckField(f, form); e != nil {
			out[f] = *e
		}
	}
	return out
}
