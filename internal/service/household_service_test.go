package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wattbill/internal/domain"
	"wattbill/internal/service"
	"wattbill/mocks"
)

func TestVerifyOwner_OwnerLookupScopedToCaller(t *testing.T) {
	repo := new(mocks.MockHouseholdRepo)
	svc := service.NewHouseholdService(repo)
	householdID, ownerID := uuid.New(), uuid.New()

	repo.On("GetByIDAndOwner", mock.Anything, householdID, ownerID).
		Return(&domain.Household{ID: householdID, OwnerID: ownerID}, nil)

	household, err := svc.VerifyOwner(context.Background(), householdID, ownerID, domain.RoleUser)

	require.NoError(t, err)
	assert.Equal(t, householdID, household.ID)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestVerifyOwner_AdminBypassesOwnership(t *testing.T) {
	repo := new(mocks.MockHouseholdRepo)
	svc := service.NewHouseholdService(repo)
	householdID := uuid.New()

	repo.On("GetByID", mock.Anything, householdID).
		Return(&domain.Household{ID: householdID}, nil)

	_, err := svc.VerifyOwner(context.Background(), householdID, uuid.New(), domain.RoleAdmin)

	require.NoError(t, err)
	repo.AssertNotCalled(t, "GetByIDAndOwner", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyOwner_ForeignHouseholdIndistinguishableFromMissing(t *testing.T) {
	repo := new(mocks.MockHouseholdRepo)
	svc := service.NewHouseholdService(repo)

	repo.On("GetByIDAndOwner", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.ErrHouseholdNotFound)

	_, err := svc.VerifyOwner(context.Background(), uuid.New(), uuid.New(), domain.RoleUser)

	assert.ErrorIs(t, err, domain.ErrHouseholdNotFound)
}

func TestUpdateHousehold_MergesOnlyProvidedFields(t *testing.T) {
	repo := new(mocks.MockHouseholdRepo)
	svc := service.NewHouseholdService(repo)
	householdID, ownerID := uuid.New(), uuid.New()

	repo.On("GetByIDAndOwner", mock.Anything, householdID, ownerID).
		Return(&domain.Household{
			ID:        householdID,
			OwnerID:   ownerID,
			Name:      "Home",
			City:      "Colombo",
			Occupants: 4,
			Currency:  "LKR",
		}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	city := "Kandy"
	household, err := svc.Update(context.Background(), householdID, ownerID, domain.RoleUser,
		service.UpdateHouseholdInput{City: &city})

	require.NoError(t, err)
	assert.Equal(t, "Kandy", household.City)
	assert.Equal(t, "Home", household.Name)
	assert.Equal(t, 4, household.Occupants)
}
