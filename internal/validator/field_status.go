package validator

import (
	"salaryengine/internal/domain"
)

// FieldStatus represents the computed display state for a single field.
type FieldStatus struct {
	State    domain.FieldState         `json:"state"`
	Category domain.ErrorCategory      `json:"category,omitempty"`
	Severity domain.ValidationSeverity `json:"severity,omitempty"`
	Messages []string                  `json:"messages"`
}

// ComputeFieldStatuses merges field states with the current error set. Fields
// that carry an error are reported invalid even when their recorded state lags.
func ComputeFieldStatuses(
	states map[domain.Field]domain.FieldState,
	errs map[domain.Field]domain.ValidationError,
) map[domain.Field]*FieldStatus {
	statuses := make(map[domain.Field]*FieldStatus, len(states))
	for field, state := range states {
		statuses[field] = &FieldStatus{State: state, Messages: []string{}}
	}

	for field, e := range errs {
		fs, ok := statuses[field]
		if !ok {
			fs = &FieldStatus{Messages: []string{}}
			statuses[field] = fs
		}
		fs.State = domain.FieldStateInvalid
		fs.Category = e.Category
		fs.Severity = e.Severity
		fs.Messages = append(fs.Messages, e.Message)
	}

	return statuses
}
