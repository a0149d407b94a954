package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"salaryengine/internal/domain"
	"salaryengine/internal/handler"
	"salaryengine/mocks"
)

func TestHealthHandler_Liveness(t *testing.T) {
	h := handler.NewHealthHandler(new(mocks.MockPayrollService))

	w, c := jsonRequest(t, http.MethodGet, "/healthz", nil)
	h.Liveness(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthHandler_Readiness(t *testing.T) {
	mockSvc := new(mocks.MockPayrollService)
	mockSvc.On("Rates", mock.Anything).Return(domain.DefaultRateSet())
	h := handler.NewHealthHandler(mockSvc)

	w, c := jsonRequest(t, http.MethodGet, "/readyz", nil)
	h.Readiness(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthHandler_Readiness_NoRates(t *testing.T) {
	mockSvc := new(mocks.MockPayrollService)
	mockSvc.On("Rates", mock.Anything).Return(domain.RateSet{})
	h := handler.NewHealthHandler(mockSvc)

	w, c := jsonRequest(t, http.MethodGet, "/readyz", nil)
	h.Readiness(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unavailable")
}
