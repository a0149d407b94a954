package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salaryengine/internal/domain"
)

func newSessions(t *testing.T, debounce time.Duration) SessionService {
	t.Helper()
	return NewSessionService(newPayroll(t), PipelineConfig{Debounce: debounce, CacheSize: 64})
}

func TestSessionOpen(t *testing.T) {
	svc := newSessions(t, 0)
	ctx := context.Background()

	st, err := svc.Open(ctx, validForm())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, st.ID)
	assert.Equal(t, 1, svc.Count())
	assert.Equal(t, domain.FieldStateUntouched, st.Fields[domain.FieldSalaryAmount].State)
	assert.Empty(t, st.Result.Errors)
	assert.True(t, dec("2400").Equal(st.Result.PF.EmployeeContribution))

	got, err := svc.Get(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, st.ID, got.ID)
	assert.Equal(t, "20000", got.Values[domain.FieldSalaryAmount])
}

func TestSessionOpen_RejectsSyntheticField(t *testing.T) {
	_, err := newSessions(t, 0).Open(context.Background(), domain.FormValues{domain.FieldPFTotalRate: "12"})
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

func TestSessionUpdate_BlurValidatesImmediately(t *testing.T) {
	svc := newSessions(t, time.Hour)
	ctx := context.Background()
	st, err := svc.Open(ctx, validForm())
	require.NoError(t, err)

	st, err = svc.UpdateField(ctx, st.ID, domain.FieldESINumber, "12345", domain.TriggerBlurred)
	require.NoError(t, err)
	fs := st.Fields[domain.FieldESINumber]
	assert.Equal(t, domain.FieldStateInvalid, fs.State)
	assert.Equal(t, domain.CategoryFormat, fs.Category)
	assert.Equal(t, 0, st.Pending)
	require.Len(t, st.Result.Errors, 1)
}

func TestSessionUpdate_BlurAfterChangeKeepsLatestValue(t *testing.T) {
	svc := newSessions(t, time.Hour)
	ctx := context.Background()
	st, err := svc.Open(ctx, validForm())
	require.NoError(t, err)

	_, err = svc.UpdateField(ctx, st.ID, domain.FieldPFNumber, "DL/DLI", domain.TriggerChanged)
	require.NoError(t, err)
	st, err = svc.UpdateField(ctx, st.ID, domain.FieldPFNumber, "DL/DLI/1234567/123/1234567", domain.TriggerBlurred)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Pending)
	assert.Equal(t, domain.FieldStateValid, st.Fields[domain.FieldPFNumber].State)

	st, err = svc.Flush(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FieldStateValid, st.Fields[domain.FieldPFNumber].State)
	assert.Empty(t, st.Result.Errors)
}

func TestSessionUpdate_ChangeIsDebounced(t *testing.T) {
	svc := newSessions(t, time.Hour)
	ctx := context.Background()
	st, err := svc.Open(ctx, validForm())
	require.NoError(t, err)

	st, err = svc.UpdateField(ctx, st.ID, domain.FieldSalaryAmount, "abc", domain.TriggerChanged)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Pending)
	assert.Equal(t, domain.FieldStateUntouched, st.Fields[domain.FieldSalaryAmount].State)
	// Contributions follow the latest value even before validation runs.
	assert.True(t, st.Result.PF.TotalContribution.IsZero())

	st, err = svc.UpdateField(ctx, st.ID, domain.FieldSalaryAmount, "-5", domain.TriggerChanged)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Pending)

	st, err = svc.Flush(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Pending)
	fs := st.Fields[domain.FieldSalaryAmount]
	assert.Equal(t, domain.FieldStateInvalid, fs.State)
	assert.Equal(t, domain.CategoryBusinessRule, fs.Category)
	assert.Equal(t, []string{"Salary amount must be at least 0"}, fs.Messages)
}

func TestSessionUpdate_ZeroWindowRunsInline(t *testing.T) {
	svc := newSessions(t, 0)
	ctx := context.Background()
	st, err := svc.Open(ctx, validForm())
	require.NoError(t, err)

	st, err = svc.UpdateField(ctx, st.ID, domain.FieldPFAdditionalRate, "12", domain.TriggerChanged)
	require.NoError(t, err)
	assert.Equal(t, domain.FieldStateInvalid, st.Fields[domain.FieldPFTotalRate].State)
	assert.Equal(t, domain.FieldStateValid, st.Fields[domain.FieldPFAdditionalRate].State)
	assert.False(t, st.Result.PF.IsCompliant)
}

func TestSessionUpdate_Errors(t *testing.T) {
	svc := newSessions(t, 0)
	ctx := context.Background()
	st, err := svc.Open(ctx, validForm())
	require.NoError(t, err)

	_, err = svc.UpdateField(ctx, uuid.New(), domain.FieldSalaryAmount, "1", domain.TriggerBlurred)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = svc.UpdateField(ctx, st.ID, "nickname", "1", domain.TriggerBlurred)
	assert.ErrorIs(t, err, domain.ErrUnknownField)

	_, err = svc.UpdateField(ctx, st.ID, domain.FieldSalaryAmount, "1", "hover")
	assert.ErrorIs(t, err, domain.ErrInvalidTrigger)
}

func TestSessionSubmit_MarksAllFields(t *testing.T) {
	svc := newSessions(t, time.Hour)
	ctx := context.Background()
	form := validForm()
	form[domain.FieldPFNumber] = ""
	st, err := svc.Open(ctx, form)
	require.NoError(t, err)

	_, err = svc.UpdateField(ctx, st.ID, domain.FieldSalaryAmount, "25000", domain.TriggerChanged)
	require.NoError(t, err)

	st, err = svc.Submit(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Pending)
	for f, fs := range st.Fields {
		assert.NotEqual(t, domain.FieldStateUntouched, fs.State, f)
	}
	assert.Equal(t, domain.FieldStateInvalid, st.Fields[domain.FieldPFNumber].State)
	assert.Equal(t, domain.FieldStateInvalid, st.Fields[domain.FieldESIEnabled].State)
	assert.Equal(t, domain.ValidationStatusInvalid, st.Result.Summary.Status)
	assert.Len(t, st.Result.Errors, 2)
}

func TestSessionUpdate_SubmitTrigger(t *testing.T) {
	svc := newSessions(t, time.Hour)
	ctx := context.Background()
	st, err := svc.Open(ctx, validForm())
	require.NoError(t, err)

	st, err = svc.UpdateField(ctx, st.ID, domain.FieldPaymentType, "barter", domain.TriggerSubmitted)
	require.NoError(t, err)
	assert.Equal(t, domain.FieldStateInvalid, st.Fields[domain.FieldPaymentType].State)
	assert.Equal(t, domain.FieldStateValid, st.Fields[domain.FieldSalaryAmount].State)
}

func TestSessionClose(t *testing.T) {
	svc := newSessions(t, 0)
	ctx := context.Background()
	st, err := svc.Open(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Close(ctx, st.ID))
	assert.Equal(t, 0, svc.Count())
	assert.ErrorIs(t, svc.Close(ctx, st.ID), domain.ErrSessionNotFound)
	_, err = svc.Get(ctx, st.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionCacheStats(t *testing.T) {
	svc := newSessions(t, 0)
	ctx := context.Background()
	st, err := svc.Open(ctx, validForm())
	require.NoError(t, err)

	_, err = svc.UpdateField(ctx, st.ID, domain.FieldESINumber, "1234567890", domain.TriggerBlurred)
	require.NoError(t, err)
	st, err = svc.UpdateField(ctx, st.ID, domain.FieldESINumber, "1234567890", domain.TriggerBlurred)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Cache.Hits)
	assert.Positive(t, st.Cache.Size)
}
