package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"salaryengine/internal/ratesheet"
)

func ratesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Inspect the statutory rate configuration",
	}
	cmd.AddCommand(ratesShowCmd(a))
	cmd.AddCommand(ratesExportCmd(a))
	return cmd
}

func ratesShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the active rates as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeJSON(cmd.OutOrStdout(), a.payroll.Rates(cmd.Context()))
		},
	}
}

func ratesExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <rates.xlsx>",
		Short: "Write the active rates to an Excel workbook",
		Long: `Write the active rates to a workbook that can be edited and loaded back
with --rates-sheet or SALARYENGINE_RATES_SHEET_PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating %s: %w", args[0], err)
			}
			defer f.Close()

			if err := ratesheet.Write(f, a.payroll.Rates(cmd.Context())); err != nil {
				return err
			}
			slog.Info("rates exported", "path", args[0])
			return nil
		},
	}
}
