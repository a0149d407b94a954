package validator

import (
	"sort"

	"salaryengine/internal/domain"
)

var severityRank = map[domain.ValidationSeverity]int{
	domain.ValidationSeverityError:   0,
	domain.ValidationSeverityWarning: 1,
	domain.ValidationSeverityInfo:    2,
}

var categoryRank = map[domain.ErrorCategory]int{
	domain.CategoryBusinessRule: 0,
	domain.CategoryRequired:     1,
	domain.CategoryFormat:       2,
	domain.CategoryDuplicate:    3,
	domain.CategoryRelationship: 4,
	domain.CategoryAge:          5,
	domain.CategoryPhone:        6,
	domain.CategoryOther:        7,
}

// Prioritize orders errors for grouped display: severity first, then
// category, then field name.
func Prioritize(errs map[domain.Field]domain.ValidationError) []domain.ValidationError {
	out := make([]domain.ValidationError, 0, len(errs))
	for _, e := range errs {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if sa, sb := severityOrder(a.Severity), severityOrder(b.Severity); sa != sb {
			return sa < sb
		}
		if ca, cb := categoryOrder(a.Category), categoryOrder(b.Category); ca != cb {
			return ca < cb
		}
		return a.Field < b.Field
	})
	return out
}

func severityOrder(s domain.ValidationSeverity) int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return len(severityRank)
}

func categoryOrder(c domain.ErrorCategory) int {
	if r, ok := categoryRank[c]; ok {
		return r
	}
	return len(categoryRank)
}

// Summary holds aggregate counts over an error set.
type Summary struct {
	Status     domain.ValidationStatus      `json:"status"`
	Errors     int                          `json:"errors"`
	Warnings   int                          `json:"warnings"`
	Infos      int                          `json:"infos"`
	ByCategory map[domain.ErrorCategory]int `json:"by_category"`
}

// Summarize counts errors by severity and category and derives the overall
// status: invalid on any error, warning on any warning, valid otherwise.
func Summarize(errs map[domain.Field]domain.ValidationError) Summary {
	s := Summary{ByCategory: make(map[domain.ErrorCategory]int)}
	for _, e := range errs {
		switch e.Severity {
		case domain.ValidationSeverityError:
			s.Errors++
		case domain.ValidationSeverityWarning:
			s.Warnings++
		default:
			s.Infos++
		}
		s.ByCategory[e.Category]++
	}

	switch {
	case s.Errors > 0:
		s.Status = domain.ValidationStatusInvalid
	case s.Warnings > 0:
		s.Status = domain.ValidationStatusWarning
	default:
		s.Status = domain.ValidationStatusValid
	}
	return s
}
