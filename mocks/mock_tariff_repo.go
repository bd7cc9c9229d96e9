package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wattbill/internal/domain"
)

// MockTariffRepo is a mock implementation of port.TariffRepository.
type MockTariffRepo struct {
	mock.Mock
}

func (m *MockTariffRepo) GetByName(ctx context.Context, name string) (*domain.Tariff, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tariff), args.Error(1)
}

func (m *MockTariffRepo) Upsert(ctx context.Context, tariff *domain.Tariff) error {
	args := m.Called(ctx, tariff)
	return args.Error(0)
}
