// Package ratesheet loads and writes the statutory rate workbook.
//
// The workbook holds a sheet named "Rates" whose first row is a header. Each
// following row configures one scheme; the "scheme" column holds "pf" or
// "esi". Columns are matched by header name, so their order is free.
package ratesheet

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"salaryengine/internal/config"
	"salaryengine/internal/domain"
)

// SheetName is the worksheet holding the rates.
const SheetName = "Rates"

// Columns lists the header cells in the order Write emits them.
var Columns = []string{
	"scheme",
	"employer_rate",
	"min_employee_rate",
	"max_employee_rate",
	"min_additional_rate",
	"max_additional_rate",
	"max_total_rate",
	"number_pattern",
	"number_example",
	"min_salary_threshold",
	"salary_threshold",
}

// Resolve returns the rate set the engine runs with: the workbook when a sheet
// path is configured, the inline settings otherwise.
func Resolve(cfg *config.RatesConfig) (domain.RateSet, error) {
	if cfg.SheetPath == "" {
		return cfg.RateSet()
	}
	rates, err := Load(cfg.SheetPath)
	if err != nil {
		return domain.RateSet{}, fmt.Errorf("loading rate sheet %s: %w", cfg.SheetPath, err)
	}
	slog.Info("ratesheet: loaded rates from workbook", "path", cfg.SheetPath)
	return rates, nil
}

// Load reads a rate workbook from disk.
func Load(path string) (domain.RateSet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.RateSet{}, fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return parse(f)
}

// Read reads a rate workbook from r.
func Read(r io.Reader) (domain.RateSet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return domain.RateSet{}, fmt.Errorf("open Excel stream: %w", err)
	}
	defer func() { _ = f.Close() }()
	return parse(f)
}

func parse(f *excelize.File) (domain.RateSet, error) {
	rows, err := f.GetRows(SheetName)
	if err != nil {
		return domain.RateSet{}, fmt.Errorf("%w: %v", domain.ErrRateSheetInvalid, err)
	}
	if len(rows) < 2 {
		return domain.RateSet{}, fmt.Errorf("%w: sheet %s has no data rows", domain.ErrRateSheetInvalid, SheetName)
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index["scheme"]; !ok {
		return domain.RateSet{}, fmt.Errorf("%w: missing scheme column", domain.ErrRateSheetInvalid)
	}

	var set domain.RateSet
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		get := func(col string) string {
			idx, ok := index[col]
			if !ok {
				return ""
			}
			return strings.TrimSpace(cellVal(row, idx))
		}

		raw := strings.ToLower(get("scheme"))
		if raw == "" {
			continue
		}
		scheme := domain.Scheme(raw)
		if scheme != domain.SchemePF && scheme != domain.SchemeESI {
			return domain.RateSet{}, fmt.Errorf("%w: row %d: unknown scheme %q", domain.ErrRateSheetInvalid, i+1, raw)
		}
		if set.For(scheme) != nil {
			return domain.RateSet{}, fmt.Errorf("%w: row %d: duplicate scheme %q", domain.ErrRateSheetInvalid, i+1, raw)
		}

		cfg, err := config.SchemeRatesConfig{
			EmployerRate:       get("employer_rate"),
			MinEmployeeRate:    get("min_employee_rate"),
			MaxEmployeeRate:    get("max_employee_rate"),
			MinAdditionalRate:  get("min_additional_rate"),
			MaxAdditionalRate:  get("max_additional_rate"),
			MaxTotalRate:       get("max_total_rate"),
			NumberPattern:      get("number_pattern"),
			NumberExample:      get("number_example"),
			MinSalaryThreshold: get("min_salary_threshold"),
			SalaryThreshold:    get("salary_threshold"),
		}.RateConfiguration(scheme)
		if err != nil {
			return domain.RateSet{}, fmt.Errorf("row %d: %w", i+1, err)
		}
		if scheme == domain.SchemeESI {
			set.ESI = cfg
		} else {
			set.PF = cfg
		}
	}

	if err := set.Validate(); err != nil {
		return domain.RateSet{}, err
	}
	return set, nil
}

// Write emits rates as a workbook in the layout Load reads.
func Write(w io.Writer, rates domain.RateSet) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := 2
	for _, s := range domain.Schemes {
		cfg := rates.For(s)
		if cfg == nil {
			continue
		}
		cells := []interface{}{
			string(cfg.Scheme),
			cfg.EmployerRate.String(),
			cfg.MinEmployeeRate.String(),
			cfg.MaxEmployeeRate.String(),
			cfg.MinAdditionalRate.String(),
			cfg.MaxAdditionalRate.String(),
			cfg.MaxTotalRate.String(),
			cfg.NumberPattern,
			cfg.NumberExample,
			decimalOrEmpty(cfg.MinSalaryThreshold),
			decimalOrEmpty(cfg.SalaryThreshold),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return fmt.Errorf("writing %s row: %w", s, err)
		}
		row++
	}

	return f.Write(w)
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func decimalOrEmpty(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
