package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"wattbill/internal/domain"
	"wattbill/internal/service"
)

// MockHouseholdService is a mock implementation of service.HouseholdService.
type MockHouseholdService struct {
	mock.Mock
}

func (m *MockHouseholdService) Create(ctx context.Context, ownerID uuid.UUID, input service.CreateHouseholdInput) (*domain.Household, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Household), args.Error(1)
}

func (m *MockHouseholdService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Household, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Household), args.Error(1)
}

func (m *MockHouseholdService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Household, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Household), args.Error(1)
}

func (m *MockHouseholdService) List(ctx context.Context) ([]domain.Household, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Household), args.Error(1)
}

func (m *MockHouseholdService) Update(ctx context.Context, id, ownerID uuid.UUID, role domain.UserRole, input service.UpdateHouseholdInput) (*domain.Household, error) {
	args := m.Called(ctx, id, ownerID, role, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Household), args.Error(1)
}

func (m *MockHouseholdService) Delete(ctx context.Context, id, ownerID uuid.UUID, role domain.UserRole) error {
	args := m.Called(ctx, id, ownerID, role)
	return args.Error(0)
}

func (m *MockHouseholdService) VerifyOwner(ctx context.Context, householdID, ownerID uuid.UUID, role domain.UserRole) (*domain.Household, error) {
	args := m.Called(ctx, householdID, ownerID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Household), args.Error(1)
}
