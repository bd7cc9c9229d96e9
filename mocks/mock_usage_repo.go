package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"wattbill/internal/domain"
)

// MockUsageRepo is a mock implementation of port.UsageRepository.
type MockUsageRepo struct {
	mock.Mock
}

func (m *MockUsageRepo) Create(ctx context.Context, entry *domain.UsageEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockUsageRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.UsageEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UsageEntry), args.Error(1)
}

func (m *MockUsageRepo) ListByHousehold(ctx context.Context, householdID uuid.UUID) ([]domain.UsageEntry, error) {
	args := m.Called(ctx, householdID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UsageEntry), args.Error(1)
}

func (m *MockUsageRepo) Update(ctx context.Context, entry *domain.UsageEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockUsageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUsageRepo) SumRange(ctx context.Context, householdID uuid.UUID, from, to time.Time) (*domain.MonthlySummary, error) {
	args := m.Called(ctx, householdID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlySummary), args.Error(1)
}
