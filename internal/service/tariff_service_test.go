package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wattbill/internal/domain"
	"wattbill/internal/service"
	"wattbill/mocks"
)

func TestGetTariff_ReturnsExisting(t *testing.T) {
	repo := new(mocks.MockTariffRepo)
	svc := service.NewTariffService(repo, "domestic")

	existing := cebTariff()
	repo.On("GetByName", mock.Anything, "domestic").Return(existing, nil)

	tariff, err := svc.GetTariff(context.Background())

	require.NoError(t, err)
	assert.Same(t, existing, tariff)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestGetTariff_SeedsDefaultsOnFirstRead(t *testing.T) {
	repo := new(mocks.MockTariffRepo)
	svc := service.NewTariffService(repo, "domestic")

	repo.On("GetByName", mock.Anything, "domestic").Return(nil, domain.ErrNotFound)
	repo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Tariff")).Return(nil)

	tariff, err := svc.GetTariff(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "domestic", tariff.Name)
	assert.Equal(t, 0.025, tariff.SSCLRate)
	require.Len(t, tariff.TariffLow, 2)
	require.Len(t, tariff.TariffHigh, 5)
	assert.Equal(t, 4.50, tariff.TariffLow[0].Rate)
	assert.Nil(t, tariff.TariffHigh[4].UpTo)
	assert.Equal(t, 61.00, tariff.TariffHigh[4].Rate)
	repo.AssertExpectations(t)
}

func TestGetTariff_PropagatesRepoError(t *testing.T) {
	repo := new(mocks.MockTariffRepo)
	svc := service.NewTariffService(repo, "domestic")

	repo.On("GetByName", mock.Anything, "domestic").Return(nil, assert.AnError)

	_, err := svc.GetTariff(context.Background())

	assert.ErrorIs(t, err, assert.AnError)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUpdateTariff_PartialMergeKeepsAbsentFields(t *testing.T) {
	repo := new(mocks.MockTariffRepo)
	svc := service.NewTariffService(repo, "domestic")

	repo.On("GetByName", mock.Anything, "domestic").Return(cebTariff(), nil)

	var upserted *domain.Tariff
	repo.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		upserted = args.Get(1).(*domain.Tariff)
	}).Return(nil)

	newRate := 0.03
	tariff, err := svc.UpdateTariff(context.Background(), service.UpdateTariffInput{
		SSCLRate: &newRate,
	})

	require.NoError(t, err)
	assert.Equal(t, 0.03, tariff.SSCLRate)
	require.NotNil(t, upserted)
	assert.Equal(t, 0.03, upserted.SSCLRate)
	// Slab tables untouched by a surcharge-only update.
	require.Len(t, upserted.TariffLow, 2)
	require.Len(t, upserted.TariffHigh, 5)
	assert.Equal(t, 8.00, upserted.TariffLow[1].Rate)
}

func TestUpdateTariff_ReplacesSlabTable(t *testing.T) {
	repo := new(mocks.MockTariffRepo)
	svc := service.NewTariffService(repo, "domestic")

	repo.On("GetByName", mock.Anything, "domestic").Return(cebTariff(), nil)
	repo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	tariff, err := svc.UpdateTariff(context.Background(), service.UpdateTariffInput{
		TariffLow: domain.SlabList{
			{UpTo: upTo(60), Rate: 6.00, FixedCharge: 150.00},
		},
	})

	require.NoError(t, err)
	require.Len(t, tariff.TariffLow, 1)
	assert.Equal(t, 6.00, tariff.TariffLow[0].Rate)
	assert.Equal(t, 0.025, tariff.SSCLRate)
	require.Len(t, tariff.TariffHigh, 5)
}
