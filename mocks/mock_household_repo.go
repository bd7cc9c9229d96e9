package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"wattbill/internal/domain"
)

// MockHouseholdRepo is a mock implementation of port.HouseholdRepository.
type MockHouseholdRepo struct {
	mock.Mock
}

func (m *MockHouseholdRepo) Create(ctx context.Context, household *domain.Household) error {
	args := m.Called(ctx, household)
	return args.Error(0)
}

func (m *MockHouseholdRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Household, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Household), args.Error(1)
}

func (m *MockHouseholdRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Household, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Household), args.Error(1)
}

func (m *MockHouseholdRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Household, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Household), args.Error(1)
}

func (m *MockHouseholdRepo) List(ctx context.Context) ([]domain.Household, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Household), args.Error(1)
}

func (m *MockHouseholdRepo) Update(ctx context.Context, household *domain.Household) error {
	args := m.Called(ctx, household)
	return args.Error(0)
}

func (m *MockHouseholdRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
