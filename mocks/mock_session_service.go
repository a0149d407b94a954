package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"salaryengine/internal/domain"
	"salaryengine/internal/service"
)

// MockSessionService is a mock implementation of service.SessionService.
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Open(ctx context.Context, initial domain.FormValues) (*service.SessionState, error) {
	args := m.Called(ctx, initial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionState), args.Error(1)
}

func (m *MockSessionService) Get(ctx context.Context, id uuid.UUID) (*service.SessionState, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionState), args.Error(1)
}

func (m *MockSessionService) UpdateField(ctx context.Context, id uuid.UUID, field domain.Field, value string, trigger domain.ValidationTrigger) (*service.SessionState, error) {
	args := m.Called(ctx, id, field, value, trigger)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionState), args.Error(1)
}

func (m *MockSessionService) Submit(ctx context.Context, id uuid.UUID) (*service.SessionState, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionState), args.Error(1)
}

func (m *MockSessionService) Flush(ctx context.Context, id uuid.UUID) (*service.SessionState, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionState), args.Error(1)
}

func (m *MockSessionService) Close(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionService) Count() int {
	args := m.Called()
	return args.Int(0)
}
