package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"salaryengine/internal/domain"
	"salaryengine/internal/service"
	"salaryengine/internal/validator"
)

// MockPayrollService is a mock implementation of service.PayrollService.
type MockPayrollService struct {
	mock.Mock
}

func (m *MockPayrollService) Rates(ctx context.Context) domain.RateSet {
	args := m.Called(ctx)
	return args.Get(0).(domain.RateSet)
}

func (m *MockPayrollService) ComputeContributions(ctx context.Context, profile domain.SalaryProfile) service.Contributions {
	args := m.Called(ctx, profile)
	return args.Get(0).(service.Contributions)
}

func (m *MockPayrollService) DeriveAnalytics(ctx context.Context, profile domain.SalaryProfile, pf, esi domain.ContributionResult) domain.PayrollAnalyticsSnapshot {
	args := m.Called(ctx, profile, pf, esi)
	return args.Get(0).(domain.PayrollAnalyticsSnapshot)
}

func (m *MockPayrollService) ValidateField(ctx context.Context, field domain.Field, value string, form domain.FormValues) (*domain.ValidationError, error) {
	args := m.Called(ctx, field, value, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValidationError), args.Error(1)
}

func (m *MockPayrollService) ValidateAll(ctx context.Context, form domain.FormValues) map[domain.Field]domain.ValidationError {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(map[domain.Field]domain.ValidationError)
}

func (m *MockPayrollService) Recompute(ctx context.Context, form domain.FormValues) service.Evaluation {
	args := m.Called(ctx, form)
	return args.Get(0).(service.Evaluation)
}

func (m *MockPayrollService) Evaluate(ctx context.Context, form domain.FormValues, errs map[domain.Field]domain.ValidationError) service.Evaluation {
	args := m.Called(ctx, form, errs)
	return args.Get(0).(service.Evaluation)
}

func (m *MockPayrollService) ExportRegister(ctx context.Context, w io.Writer, entries []service.RegisterEntry) error {
	args := m.Called(ctx, w, entries)
	return args.Error(0)
}

func (m *MockPayrollService) NewPipeline(cfg service.PipelineConfig) *validator.Pipeline {
	args := m.Called(cfg)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*validator.Pipeline)
}
