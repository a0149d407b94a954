package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"salaryengine/internal/config"
	"salaryengine/internal/logger"
	"salaryengine/internal/ratesheet"
	"salaryengine/internal/service"
	"salaryengine/internal/validator/salary"
)

// app holds what every subcommand needs once configuration is loaded.
type app struct {
	cfgFile string
	cfg     *config.Config
	payroll service.PayrollService
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "paycalc",
		Short: "PF and ESI contribution calculator",
		Long: `paycalc computes statutory Provident Fund and Employee State Insurance
contributions for a salary profile, validates salary forms and exports
payroll registers.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "YAML config file (default: $SALARYENGINE_CONFIG_FILE)")
	cmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("rates-sheet", "", "Excel workbook with rate configuration")

	cmd.AddCommand(computeCmd(a))
	cmd.AddCommand(validateCmd(a))
	cmd.AddCommand(registerCmd(a))
	cmd.AddCommand(ratesCmd(a))
	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.LoadFile(a.cfgFile)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		a.cfg.Log.Level = lvl
	}
	if sheet, _ := cmd.Flags().GetString("rates-sheet"); sheet != "" {
		a.cfg.Rates.SheetPath = sheet
	}
	if err := logger.Setup(a.cfg.Log); err != nil {
		return err
	}

	rates, err := ratesheet.Resolve(&a.cfg.Rates)
	if err != nil {
		return err
	}
	ceiling, err := a.cfg.Validation.Ceiling()
	if err != nil {
		return err
	}
	a.payroll, err = service.NewPayrollService(rates, salary.Options{SalaryCeiling: ceiling})
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
