package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"salaryengine/internal/analytics"
	"salaryengine/internal/contribution"
	"salaryengine/internal/csvexport"
	"salaryengine/internal/domain"
	"salaryengine/internal/validator"
	"salaryengine/internal/validator/salary"
)

// Contributions pairs the results of both schemes.
type Contributions struct {
	PF  domain.ContributionResult `json:"pf"`
	ESI domain.ContributionResult `json:"esi"`
}

// Evaluation is the full recomputed state of a form: best-effort results
// alongside the error set. It is built in one pass and never updated in place.
type Evaluation struct {
	PF        domain.ContributionResult       `json:"pf"`
	ESI       domain.ContributionResult       `json:"esi"`
	Analytics domain.PayrollAnalyticsSnapshot `json:"analytics"`
	Errors    []domain.ValidationError        `json:"errors"`
	Summary   validator.Summary               `json:"summary"`
}

// RegisterEntry is one labelled form in a payroll register export.
type RegisterEntry struct {
	Label  string            `json:"label"`
	Values domain.FormValues `json:"values"`
}

// PayrollService defines the contribution and validation contract.
type PayrollService interface {
	Rates(ctx context.Context) domain.RateSet
	ComputeContributions(ctx context.Context, profile domain.SalaryProfile) Contributions
	DeriveAnalytics(ctx context.Context, profile domain.SalaryProfile, pf, esi domain.ContributionResult) domain.PayrollAnalyticsSnapshot
	ValidateField(ctx context.Context, field domain.Field, value string, form domain.FormValues) (*domain.ValidationError, error)
	ValidateAll(ctx context.Context, form domain.FormValues) map[domain.Field]domain.ValidationError
	Recompute(ctx context.Context, form domain.FormValues) Evaluation
	Evaluate(ctx context.Context, form domain.FormValues, errs map[domain.Field]domain.ValidationError) Evaluation
	ExportRegister(ctx context.Context, w io.Writer, entries []RegisterEntry) error
	NewPipeline(cfg PipelineConfig) *validator.Pipeline
}

// PipelineConfig sizes the per-session validation pipeline.
type PipelineConfig struct {
	Debounce  time.Duration
	CacheSize int
}

type payrollService struct {
	rates   domain.RateSet
	checker *validator.Checker
}

// NewPayrollService creates a PayrollService over a validated rate set.
func NewPayrollService(rates domain.RateSet, opts salary.Options) (PayrollService, error) {
	checker, err := salary.NewChecker(rates, opts)
	if err != nil {
		return nil, fmt.Errorf("creating payroll service: %w", err)
	}
	return &payrollService{rates: rates, checker: checker}, nil
}

func (s *payrollService) Rates(_ context.Context) domain.RateSet {
	return s.rates
}

func (s *payrollService) ComputeContributions(_ context.Context, profile domain.SalaryProfile) Contributions {
	pf, esi := contribution.ComputeAll(&profile, s.rates)
	return Contributions{PF: pf, ESI: esi}
}

func (s *payrollService) DeriveAnalytics(_ context.Context, profile domain.SalaryProfile, pf, esi domain.ContributionResult) domain.PayrollAnalyticsSnapshot {
	return analytics.Derive(&profile, pf, esi)
}

// ValidateField checks field as if it held value, using the rest of form as context.
func (s *payrollService) ValidateField(_ context.Context, field domain.Field, value string, form domain.FormValues) (*domain.ValidationError, error) {
	if !s.checker.Knows(field) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownField, field)
	}
	snapshot := form.Clone()
	if domain.IsInput(field) {
		snapshot[field] = value
	}
	return s.checker.CheckField(field, snapshot), nil
}

func (s *payrollService) ValidateAll(_ context.Context, form domain.FormValues) map[domain.Field]domain.ValidationError {
	return s.checker.CheckAll(form)
}

func (s *payrollService) Recompute(ctx context.Context, form domain.FormValues) Evaluation {
	return s.Evaluate(ctx, form, s.ValidateAll(ctx, form))
}

// Evaluate builds an Evaluation from form and an error set computed elsewhere,
// such as the live errors of an editing session.
func (s *payrollService) Evaluate(_ context.Context, form domain.FormValues, errs map[domain.Field]domain.ValidationError) Evaluation {
	profile := form.Profile()
	pf, esi := contribution.ComputeAll(&profile, s.rates)
	return Evaluation{
		PF:        pf,
		ESI:       esi,
		Analytics: analytics.Derive(&profile, pf, esi),
		Errors:    validator.Prioritize(errs),
		Summary:   validator.Summarize(errs),
	}
}

func (s *payrollService) ExportRegister(ctx context.Context, w io.Writer, entries []RegisterEntry) error {
	if _, err := w.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, e := range entries {
		ev := s.Recompute(ctx, e.Values)
		row := csvexport.RegisterRow{
			Label:     e.Label,
			Profile:   e.Values.Profile(),
			PF:        ev.PF,
			ESI:       ev.ESI,
			Analytics: ev.Analytics,
			Status:    ev.Summary.Status,
			Errors:    len(ev.Errors),
		}
		if err := cw.WriteRow(row); err != nil {
			return fmt.Errorf("writing row %q: %w", e.Label, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing register: %w", err)
	}
	slog.Info("service.Payroll: register exported", "rows", len(entries))
	return nil
}

func (s *payrollService) NewPipeline(cfg PipelineConfig) *validator.Pipeline {
	return validator.NewPipeline(s.checker, validator.NewCache(cfg.CacheSize), validator.NewDebouncer(cfg.Debounce))
}
