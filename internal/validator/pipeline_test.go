package validator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salaryengine/internal/domain"
	"salaryengine/internal/validator"
	"salaryengine/internal/validator/salary"
)

func salaryPipeline(t *testing.T, window time.Duration) *validator.Pipeline {
	t.Helper()
	checker, err := salary.NewChecker(domain.DefaultRateSet(), salary.DefaultOptions())
	require.NoError(t, err)
	p := validator.NewPipeline(checker, validator.NewCache(64), validator.NewDebouncer(window))
	t.Cleanup(p.Close)
	return p
}

func baseForm() domain.FormValues {
	return domain.FormValues{
		domain.FieldSalaryAmount:   "18000",
		domain.FieldSalaryBasis:    "monthly",
		domain.FieldPaymentType:    "cash",
		domain.FieldPFEnabled:      "true",
		domain.FieldPFEmployeeRate: "12",
		domain.FieldESIEnabled:     "false",
	}
}

func TestPipeline_StateMachine(t *testing.T) {
	p := salaryPipeline(t, 0)
	form := baseForm()

	assert.Equal(t, domain.FieldStateUntouched, p.State(domain.FieldPFNumber))

	e, err := p.ValidateField(domain.FieldPFNumber, form, domain.TriggerBlurred)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, domain.CategoryRequired, e.Category)
	assert.Equal(t, domain.FieldStateInvalid, p.State(domain.FieldPFNumber))

	form[domain.FieldPFNumber] = "DL/DLI/1234567/123/1234567"
	e, err = p.ValidateField(domain.FieldPFNumber, form, domain.TriggerChanged)
	require.NoError(t, err)
	assert.Nil(t, e)
	assert.Equal(t, domain.FieldStateValid, p.State(domain.FieldPFNumber))
	assert.Empty(t, p.Errors())
}

func TestPipeline_DisablingSchemeClearsErrors(t *testing.T) {
	p := salaryPipeline(t, 0)
	form := baseForm()
	form[domain.FieldPFEmployeeRate] = ""

	all := p.ValidateAll(form)
	require.Contains(t, all, domain.FieldPFNumber)
	require.Contains(t, all, domain.FieldPFEmployeeRate)

	form[domain.FieldPFEnabled] = "false"
	_, err := p.ValidateField(domain.FieldPFEnabled, form, domain.TriggerChanged)
	require.NoError(t, err)

	errs := p.Errors()
	assert.NotContains(t, errs, domain.FieldPFNumber)
	assert.NotContains(t, errs, domain.FieldPFEmployeeRate)
	assert.Equal(t, domain.FieldStateValid, p.State(domain.FieldPFNumber))
}

func TestPipeline_RateSumSurfacesOnSyntheticField(t *testing.T) {
	p := salaryPipeline(t, 0)
	form := baseForm()
	form[domain.FieldPFEmployeeRate] = "9"
	form[domain.FieldPFAdditionalRate] = "12"

	e, err := p.ValidateField(domain.FieldPFAdditionalRate, form, domain.TriggerChanged)
	require.NoError(t, err)
	assert.Nil(t, e)

	errs := p.Errors()
	require.Contains(t, errs, domain.FieldPFTotalRate)
	assert.Equal(t, domain.CategoryBusinessRule, errs[domain.FieldPFTotalRate].Category)
	assert.NotContains(t, errs, domain.FieldPFEmployeeRate)

	form[domain.FieldPFAdditionalRate] = "9"
	_, err = p.ValidateField(domain.FieldPFAdditionalRate, form, domain.TriggerChanged)
	require.NoError(t, err)
	assert.NotContains(t, p.Errors(), domain.FieldPFTotalRate)
}

func TestPipeline_UntouchedDependentsStayUntouched(t *testing.T) {
	p := salaryPipeline(t, 0)
	form := baseForm()
	form[domain.FieldSalaryAmount] = "30000"
	form[domain.FieldESIEnabled] = "true"

	_, err := p.ValidateField(domain.FieldSalaryAmount, form, domain.TriggerChanged)
	require.NoError(t, err)
	assert.Equal(t, domain.FieldStateUntouched, p.State(domain.FieldESIEnabled))

	_, err = p.ValidateField(domain.FieldESIEnabled, form, domain.TriggerChanged)
	require.NoError(t, err)
	assert.Equal(t, domain.FieldStateInvalid, p.State(domain.FieldESIEnabled))

	form[domain.FieldSalaryAmount] = "20000"
	_, err = p.ValidateField(domain.FieldSalaryAmount, form, domain.TriggerChanged)
	require.NoError(t, err)
	assert.Equal(t, domain.FieldStateValid, p.State(domain.FieldESIEnabled))
}

func TestPipeline_CacheHit(t *testing.T) {
	p := salaryPipeline(t, 0)
	form := baseForm()

	_, err := p.ValidateField(domain.FieldSalaryAmount, form, domain.TriggerChanged)
	require.NoError(t, err)
	before := p.CacheStats()

	_, err = p.ValidateField(domain.FieldSalaryAmount, form, domain.TriggerChanged)
	require.NoError(t, err)
	after := p.CacheStats()
	assert.Greater(t, after.Hits, before.Hits)

	p.Close()
	assert.Equal(t, 0, p.CacheStats().Size)
}

func TestPipeline_CacheKeepsSeparatorCollisionsApart(t *testing.T) {
	p := salaryPipeline(t, 0)
	a := baseForm()
	a[domain.FieldPFNumber] = "AB"
	a[domain.FieldPFEmployeeRate] = "1|pf_enabled=false"
	a[domain.FieldPFEnabled] = "true"

	b := baseForm()
	b[domain.FieldPFNumber] = "AB"
	b[domain.FieldPFEmployeeRate] = "1"
	b[domain.FieldPFEnabled] = "false|pf_enabled=true"

	first, err := p.ValidateField(domain.FieldPFNumber, a, domain.TriggerChanged)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := p.ValidateField(domain.FieldPFNumber, b, domain.TriggerChanged)
	require.NoError(t, err)
	assert.Nil(t, second)
	assert.Equal(t, 0, p.CacheStats().Hits)
}

func TestPipeline_UnknownField(t *testing.T) {
	p := salaryPipeline(t, 0)
	_, err := p.ValidateField("nickname", baseForm(), domain.TriggerChanged)
	assert.ErrorIs(t, err, domain.ErrUnknownField)
	assert.ErrorIs(t, p.ValidateFieldDebounced("nickname", baseForm(), domain.TriggerChanged, nil), domain.ErrUnknownField)
}

func TestPipeline_ValidateAllDeterministicAndExhaustive(t *testing.T) {
	p := salaryPipeline(t, 0)
	form := domain.FormValues{
		domain.FieldPFEnabled:  "true",
		domain.FieldESIEnabled: "true",
	}

	first := p.ValidateAll(form)
	second := p.ValidateAll(form)
	assert.Equal(t, first, second)
	for _, f := range []domain.Field{
		domain.FieldSalaryAmount, domain.FieldSalaryBasis, domain.FieldPaymentType,
		domain.FieldPFNumber, domain.FieldPFEmployeeRate, domain.FieldESINumber, domain.FieldESIEmployeeRate,
	} {
		assert.Contains(t, first, f)
	}
	for f, s := range p.States() {
		assert.NotEqual(t, domain.FieldStateUntouched, s, "field %s", f)
	}
}

func TestPipeline_DebouncedLatestWins(t *testing.T) {
	p := salaryPipeline(t, time.Hour)
	form := baseForm()

	var got []*domain.ValidationError
	for _, v := range []string{"abc", "-1", "25000"} {
		form[domain.FieldSalaryAmount] = v
		require.NoError(t, p.ValidateFieldDebounced(domain.FieldSalaryAmount, form, domain.TriggerChanged,
			func(e *domain.ValidationError, err error) {
				require.NoError(t, err)
				got = append(got, e)
			}))
	}
	assert.Equal(t, 1, p.Pending())
	assert.Equal(t, domain.FieldStateUntouched, p.State(domain.FieldSalaryAmount))

	p.Flush()
	require.Len(t, got, 1)
	assert.Nil(t, got[0])
	assert.Equal(t, domain.FieldStateValid, p.State(domain.FieldSalaryAmount))
}

func TestPipeline_ValidateAllDropsPending(t *testing.T) {
	p := salaryPipeline(t, time.Hour)
	form := baseForm()
	form[domain.FieldSalaryAmount] = "abc"
	require.NoError(t, p.ValidateFieldDebounced(domain.FieldSalaryAmount, form, domain.TriggerChanged, nil))

	form[domain.FieldSalaryAmount] = "1000"
	form[domain.FieldPFNumber] = "DL/DLI/1234567/123/1234567"
	assert.Empty(t, p.ValidateAll(form))
	assert.Equal(t, 0, p.Pending())
}

func TestPipeline_BlurSupersedesPendingChange(t *testing.T) {
	p := salaryPipeline(t, time.Hour)
	stale := baseForm()
	stale[domain.FieldPFNumber] = "DL/DLI"
	require.NoError(t, p.ValidateFieldDebounced(domain.FieldPFNumber, stale, domain.TriggerChanged, nil))

	fresh := baseForm()
	fresh[domain.FieldPFNumber] = "DL/DLI/1234567/123/1234567"
	res, err := p.ValidateField(domain.FieldPFNumber, fresh, domain.TriggerBlurred)
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Equal(t, 0, p.Pending())

	p.Flush()
	assert.Equal(t, domain.FieldStateValid, p.State(domain.FieldPFNumber))
	assert.NotContains(t, p.Errors(), domain.FieldPFNumber)
}

func TestComputeFieldStatuses(t *testing.T) {
	p := salaryPipeline(t, 0)
	form := baseForm()
	p.ValidateAll(form)

	statuses := validator.ComputeFieldStatuses(p.States(), p.Errors())
	require.Contains(t, statuses, domain.FieldPFNumber)
	assert.Equal(t, domain.FieldStateInvalid, statuses[domain.FieldPFNumber].State)
	assert.Equal(t, domain.CategoryRequired, statuses[domain.FieldPFNumber].Category)
	assert.Len(t, statuses[domain.FieldPFNumber].Messages, 1)
	assert.Equal(t, domain.FieldStateValid, statuses[domain.FieldSalaryAmount].State)
	assert.Empty(t, statuses[domain.FieldSalaryAmount].Messages)
}
