package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"wattbill/internal/domain"
	"wattbill/internal/service"
)

// MockUsageService is a mock implementation of service.UsageService.
type MockUsageService struct {
	mock.Mock
}

func (m *MockUsageService) Create(ctx context.Context, input service.CreateUsageInput) (*domain.UsageEntry, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UsageEntry), args.Error(1)
}

func (m *MockUsageService) GetByID(ctx context.Context, id uuid.UUID) (*domain.UsageEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UsageEntry), args.Error(1)
}

func (m *MockUsageService) ListByHousehold(ctx context.Context, householdID uuid.UUID) ([]domain.UsageEntry, error) {
	args := m.Called(ctx, householdID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UsageEntry), args.Error(1)
}

func (m *MockUsageService) Update(ctx context.Context, id uuid.UUID, input service.UpdateUsageInput) (*domain.UsageEntry, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UsageEntry), args.Error(1)
}

func (m *MockUsageService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUsageService) GetMonthlyTotalUnits(ctx context.Context, householdID uuid.UUID, month, year int) (*domain.MonthlySummary, error) {
	args := m.Called(ctx, householdID, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlySummary), args.Error(1)
}

func (m *MockUsageService) GetMonthlyCostSummary(ctx context.Context, householdID uuid.UUID, month, year int) (*domain.MonthlyCostSummary, error) {
	args := m.Called(ctx, householdID, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyCostSummary), args.Error(1)
}
