package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"salaryengine/internal/service"
)

func registerCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "register <entries.json>",
		Short: "Export a payroll register as CSV",
		Long: `Read a JSON array of {"label", "values"} entries, evaluate each form and
write one CSV row per entry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading entries: %w", err)
			}
			var entries []service.RegisterEntry
			if err := json.Unmarshal(raw, &entries); err != nil {
				return fmt.Errorf("decoding entries %s: %w", args[0], err)
			}

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			return a.payroll.ExportRegister(cmd.Context(), w, entries)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}
