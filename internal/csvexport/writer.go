package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"salaryengine/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the payroll register header row.
var columns = []string{
	"Label",
	"Salary Amount",
	"Salary Basis",
	"Payment Type",
	"PF Employee",
	"PF Employer",
	"PF Total",
	"ESI Employee",
	"ESI Employer",
	"ESI Total",
	"ESI Eligible",
	"Gross Salary",
	"Total Deductions",
	"Net Salary",
	"Cost To Company",
	"Take Home %",
	"Validation Status",
	"Error Count",
}

// RegisterRow is one evaluated salary profile in the register.
type RegisterRow struct {
	Label     string
	Profile   domain.SalaryProfile
	PF        domain.ContributionResult
	ESI       domain.ContributionResult
	Analytics domain.PayrollAnalyticsSnapshot
	Status    domain.ValidationStatus
	Errors    int
}

// Writer wraps csv.Writer for exporting a payroll register as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRow writes a single register row.
func (w *Writer) WriteRow(r RegisterRow) error {
	return w.csv.Write(registerToRow(&r))
}

// WriteRows writes a batch of register rows.
func (w *Writer) WriteRows(rows []RegisterRow) error {
	for i := range rows {
		if err := w.csv.Write(registerToRow(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// registerToRow converts a register row to a string slice. An absent salary
// amount leaves its column empty; computed columns are always filled.
func registerToRow(r *RegisterRow) []string {
	row := make([]string, len(columns))

	row[0] = r.Label
	if r.Profile.SalaryAmount != nil {
		row[1] = formatMoney(*r.Profile.SalaryAmount)
	}
	row[2] = string(r.Profile.SalaryBasis)
	row[3] = string(r.Profile.PaymentType)
	row[4] = formatMoney(r.PF.EmployeeContribution)
	row[5] = formatMoney(r.PF.EmployerContribution)
	row[6] = formatMoney(r.PF.TotalContribution)
	row[7] = formatMoney(r.ESI.EmployeeContribution)
	row[8] = formatMoney(r.ESI.EmployerContribution)
	row[9] = formatMoney(r.ESI.TotalContribution)
	row[10] = formatBool(r.ESI.IsEligible)
	row[11] = formatMoney(r.Analytics.GrossSalary)
	row[12] = formatMoney(r.Analytics.TotalDeductions)
	row[13] = formatMoney(r.Analytics.NetSalary)
	row[14] = formatMoney(r.Analytics.CostToCompany)
	row[15] = formatMoney(r.Analytics.TakeHomePercentage)
	row[16] = string(r.Status)
	row[17] = strconv.Itoa(r.Errors)

	return row
}

func formatMoney(v decimal.Decimal) string {
	return v.StringFixed(2)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a register name for use in Content-Disposition.
// Non-alphanumeric runs become a single underscore and the result is
// truncated to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "payroll_register"
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.csv for the given day.
func BuildFilename(name string, day time.Time) string {
	return fmt.Sprintf("%s_%s.csv", SanitizeFilename(name), day.Format("2006-01-02"))
}
