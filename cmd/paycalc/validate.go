package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"salaryengine/internal/domain"
	"salaryengine/internal/validator"
)

// errFormInvalid makes the process exit non-zero when a form has errors.
var errFormInvalid = errors.New("form has validation errors")

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <form.json>",
		Short: "Validate a salary form",
		Long: `Validate a JSON object of raw form values keyed by field name and print
the errors in priority order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := readForm(args[0])
			if err != nil {
				return err
			}

			errs := a.payroll.ValidateAll(cmd.Context(), form)
			out := struct {
				Errors  []domain.ValidationError `json:"errors"`
				Summary validator.Summary        `json:"summary"`
			}{validator.Prioritize(errs), validator.Summarize(errs)}
			if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			if out.Summary.Status == domain.ValidationStatusInvalid {
				return errFormInvalid
			}
			return nil
		},
	}
}

func readForm(path string) (domain.FormValues, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading form: %w", err)
	}
	var form domain.FormValues
	if err := json.Unmarshal(raw, &form); err != nil {
		return nil, fmt.Errorf("decoding form %s: %w", path, err)
	}
	return form, nil
}
