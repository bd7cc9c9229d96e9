package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wattbill/internal/domain"
	"wattbill/internal/service"
)

// MockTariffService is a mock implementation of service.TariffService.
type MockTariffService struct {
	mock.Mock
}

func (m *MockTariffService) GetTariff(ctx context.Context) (*domain.Tariff, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tariff), args.Error(1)
}

func (m *MockTariffService) UpdateTariff(ctx context.Context, input service.UpdateTariffInput) (*domain.Tariff, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tariff), args.Error(1)
}
