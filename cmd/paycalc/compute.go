package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"salaryengine/internal/domain"
)

func computeCmd(a *app) *cobra.Command {
	var (
		salary, basis, payment string
		pfOn, esiOn            bool
		pfNumber, esiNumber    string
		pfRate, pfAdditional   string
		esiRate, esiAdditional string
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute contributions and analytics for one salary",
		Long: `Compute PF and ESI contributions, payroll analytics and validation
errors for a salary given on the command line. Results are best effort:
they are printed even when the form has errors.`,
		Example: `  paycalc compute --salary 20000 --pf --pf-rate 12 --esi --esi-rate 0.75`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form := domain.FormValues{
				domain.FieldSalaryAmount:      salary,
				domain.FieldSalaryBasis:       basis,
				domain.FieldPaymentType:       payment,
				domain.FieldPFEnabled:         strconv.FormatBool(pfOn),
				domain.FieldPFNumber:          pfNumber,
				domain.FieldPFEmployeeRate:    pfRate,
				domain.FieldPFAdditionalRate:  pfAdditional,
				domain.FieldESIEnabled:        strconv.FormatBool(esiOn),
				domain.FieldESINumber:         esiNumber,
				domain.FieldESIEmployeeRate:   esiRate,
				domain.FieldESIAdditionalRate: esiAdditional,
			}
			return writeJSON(cmd.OutOrStdout(), a.payroll.Recompute(cmd.Context(), form))
		},
	}

	f := cmd.Flags()
	f.StringVar(&salary, "salary", "", "salary amount")
	f.StringVar(&basis, "basis", string(domain.SalaryBasisMonthly), "salary basis (hourly, daily, weekly, monthly)")
	f.StringVar(&payment, "payment", string(domain.PaymentTypeBankTransfer), "payment type (bank_transfer, check, cash)")
	f.BoolVar(&pfOn, "pf", false, "enable Provident Fund")
	f.StringVar(&pfNumber, "pf-number", domain.PFNumberExample, "PF statutory number")
	f.StringVar(&pfRate, "pf-rate", "", "PF employee rate (%)")
	f.StringVar(&pfAdditional, "pf-additional", "", "PF additional rate (%)")
	f.BoolVar(&esiOn, "esi", false, "enable Employee State Insurance")
	f.StringVar(&esiNumber, "esi-number", domain.ESINumberExample, "ESI statutory number")
	f.StringVar(&esiRate, "esi-rate", "", "ESI employee rate (%)")
	f.StringVar(&esiAdditional, "esi-additional", "", "ESI additional rate (%)")
	_ = cmd.MarkFlagRequired("salary")
	return cmd
}
