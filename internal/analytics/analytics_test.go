package analytics_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"salaryengine/internal/analytics"
	"salaryengine/internal/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func result(employee, employer string) domain.ContributionResult {
	e, r := dec(employee), dec(employer)
	return domain.ContributionResult{
		EmployeeContribution: e,
		EmployerContribution: r,
		TotalContribution:    e.Add(r),
	}
}

func TestDerive_BothSchemes(t *testing.T) {
	salary := dec("20000")
	profile := &domain.SalaryProfile{SalaryAmount: &salary}
	pf := result("2400", "2400")
	esi := result("150", "650")

	snap := analytics.Derive(profile, pf, esi)

	assert.True(t, dec("20000").Equal(snap.GrossSalary))
	assert.True(t, dec("2550").Equal(snap.TotalDeductions))
	assert.True(t, dec("17450").Equal(snap.NetSalary))
	assert.True(t, dec("23050").Equal(snap.CostToCompany))
	assert.True(t, dec("87.25").Equal(snap.TakeHomePercentage))
	assert.True(t, dec("4800").Equal(snap.PF.Total))
	assert.True(t, dec("150").Equal(snap.ESI.Employee))
	assert.True(t, dec("650").Equal(snap.ESI.Employer))
}

func TestDerive_ZeroGross(t *testing.T) {
	t.Run("absent_salary", func(t *testing.T) {
		snap := analytics.Derive(&domain.SalaryProfile{}, result("0", "0"), result("0", "0"))
		assert.True(t, snap.GrossSalary.IsZero())
		assert.True(t, snap.TakeHomePercentage.IsZero())
		assert.True(t, snap.CostToCompany.IsZero())
	})

	t.Run("zero_salary", func(t *testing.T) {
		zero := decimal.Zero
		snap := analytics.Derive(&domain.SalaryProfile{SalaryAmount: &zero}, result("0", "0"), result("0", "0"))
		assert.True(t, snap.TakeHomePercentage.IsZero())
	})
}

func TestDerive_NoContributions(t *testing.T) {
	salary := dec("50000")
	snap := analytics.Derive(&domain.SalaryProfile{SalaryAmount: &salary}, result("0", "0"), result("0", "0"))
	assert.True(t, dec("50000").Equal(snap.NetSalary))
	assert.True(t, dec("100").Equal(snap.TakeHomePercentage))
	assert.True(t, dec("50000").Equal(snap.CostToCompany))
}

func TestTakeHomePercentage_Rounding(t *testing.T) {
	tests := []struct {
		net, gross, want string
	}{
		{"2", "3", "66.67"},
		{"1", "3", "33.33"},
		{"0", "100", "0"},
		{"44000", "50000", "88"},
		{"10", "0", "0"},
	}
	for _, tt := range tests {
		got := analytics.TakeHomePercentage(dec(tt.net), dec(tt.gross))
		assert.True(t, dec(tt.want).Equal(got), "net=%s gross=%s got=%s", tt.net, tt.gross, got)
	}
}
