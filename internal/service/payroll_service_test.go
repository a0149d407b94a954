package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salaryengine/internal/domain"
	"salaryengine/internal/validator/salary"
)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func newPayroll(t *testing.T) PayrollService {
	t.Helper()
	svc, err := NewPayrollService(domain.DefaultRateSet(), salary.DefaultOptions())
	require.NoError(t, err)
	return svc
}

func validForm() domain.FormValues {
	return domain.FormValues{
		domain.FieldSalaryAmount:      "20000",
		domain.FieldSalaryBasis:       "monthly",
		domain.FieldPaymentType:       "bank_transfer",
		domain.FieldPFEnabled:         "true",
		domain.FieldPFNumber:          "DL/DLI/1234567/123/1234567",
		domain.FieldPFEmployeeRate:    "12",
		domain.FieldPFAdditionalRate:  "0",
		domain.FieldESIEnabled:        "true",
		domain.FieldESINumber:         "1234567890",
		domain.FieldESIEmployeeRate:   "1",
		domain.FieldESIAdditionalRate: "",
	}
}

func TestNewPayrollService_MissingRates(t *testing.T) {
	rates := domain.DefaultRateSet()
	rates.PF = nil
	_, err := NewPayrollService(rates, salary.DefaultOptions())
	assert.ErrorIs(t, err, domain.ErrRateConfigMissing)
}

func TestComputeContributions(t *testing.T) {
	svc := newPayroll(t)
	profile := domain.SalaryProfile{
		SalaryAmount: decPtr("50000"),
		PF:           domain.ContributionScheme{Enabled: true, EmployeeRate: decPtr("12")},
	}

	got := svc.ComputeContributions(context.Background(), profile)
	assert.True(t, dec("6000").Equal(got.PF.EmployeeContribution))
	assert.True(t, dec("6000").Equal(got.PF.EmployerContribution))
	assert.True(t, dec("12000").Equal(got.PF.TotalContribution))
	assert.True(t, got.PF.IsCompliant)
	assert.True(t, got.ESI.TotalContribution.IsZero())
	assert.False(t, got.ESI.IsEligible)
}

func TestDeriveAnalytics(t *testing.T) {
	svc := newPayroll(t)
	ctx := context.Background()
	profile := validForm().Profile()
	c := svc.ComputeContributions(ctx, profile)

	snap := svc.DeriveAnalytics(ctx, profile, c.PF, c.ESI)
	assert.True(t, dec("20000").Equal(snap.GrossSalary))
	assert.True(t, dec("2600").Equal(snap.TotalDeductions))
	assert.True(t, dec("17400").Equal(snap.NetSalary))
	assert.True(t, dec("23050").Equal(snap.CostToCompany))
	assert.True(t, dec("87").Equal(snap.TakeHomePercentage))
}

func TestValidateField_UsesCandidateValue(t *testing.T) {
	svc := newPayroll(t)
	form := validForm()

	e, err := svc.ValidateField(context.Background(), domain.FieldPFNumber, "DL-123", form)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, domain.CategoryFormat, e.Category)
	assert.Equal(t, "DL/DLI/1234567/123/1234567", form[domain.FieldPFNumber], "caller form must not change")

	e, err = svc.ValidateField(context.Background(), domain.FieldPFNumber, "DL/DLI/7654321/321/7654321", form)
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestValidateField_Unknown(t *testing.T) {
	_, err := newPayroll(t).ValidateField(context.Background(), "nickname", "x", validForm())
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

func TestRecompute_BestEffortWithErrors(t *testing.T) {
	svc := newPayroll(t)
	form := validForm()
	form[domain.FieldPFNumber] = ""
	form[domain.FieldPaymentType] = "barter"

	ev := svc.Recompute(context.Background(), form)
	require.Len(t, ev.Errors, 2)
	assert.Equal(t, domain.ValidationStatusInvalid, ev.Summary.Status)
	assert.Equal(t, 2, ev.Summary.Errors)
	// Results are still computed from whatever parses.
	assert.True(t, dec("2400").Equal(ev.PF.EmployeeContribution))
	assert.True(t, dec("17400").Equal(ev.Analytics.NetSalary))
}

func TestRecompute_Valid(t *testing.T) {
	ev := newPayroll(t).Recompute(context.Background(), validForm())
	assert.Empty(t, ev.Errors)
	assert.Equal(t, domain.ValidationStatusValid, ev.Summary.Status)
	assert.True(t, ev.ESI.IsEligible)
	assert.True(t, ev.ESI.IsCompliant)
}

func TestExportRegister(t *testing.T) {
	svc := newPayroll(t)
	bad := validForm()
	bad[domain.FieldSalaryAmount] = ""

	var buf bytes.Buffer
	err := svc.ExportRegister(context.Background(), &buf, []RegisterEntry{
		{Label: "good", Values: validForm()},
		{Label: "bad", Values: bad},
	})
	require.NoError(t, err)

	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}))
	rows, err := csv.NewReader(bytes.NewReader(raw[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Label", rows[0][0])
	assert.Equal(t, "good", rows[1][0])
	assert.Equal(t, "20000.00", rows[1][1])
	assert.Equal(t, "2400.00", rows[1][4])
	assert.Equal(t, "valid", rows[1][16])
	assert.Equal(t, "bad", rows[2][0])
	assert.Empty(t, rows[2][1])
	assert.Equal(t, "invalid", rows[2][16])
}
