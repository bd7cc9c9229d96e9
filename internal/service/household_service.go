package service

import (
	"context"

	"github.com/google/uuid"

	"wattbill/internal/domain"
	"wattbill/internal/port"
)

// CreateHouseholdInput is the DTO for registering a household.
type CreateHouseholdInput struct {
	Name              string  `json:"name" binding:"required"`
	City              string  `json:"city" binding:"required"`
	Occupants         int     `json:"occupants" binding:"required,min=1"`
	MonthlyKwhTarget  float64 `json:"monthly_kwh_target" binding:"omitempty,gte=0"`
	MonthlyCostTarget float64 `json:"monthly_cost_target" binding:"omitempty,gte=0"`
	Currency          string  `json:"currency"`
}

// UpdateHouseholdInput is the DTO for updating a household.
type UpdateHouseholdInput struct {
	Name              *string  `json:"name"`
	City              *string  `json:"city"`
	Occupants         *int     `json:"occupants" binding:"omitempty,min=1"`
	MonthlyKwhTarget  *float64 `json:"monthly_kwh_target" binding:"omitempty,gte=0"`
	MonthlyCostTarget *float64 `json:"monthly_cost_target" binding:"omitempty,gte=0"`
	Currency          *string  `json:"currency"`
}

// HouseholdService manages households and answers the ownership checks the
// billing paths depend on.
type HouseholdService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreateHouseholdInput) (*domain.Household, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Household, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Household, error)
	List(ctx context.Context) ([]domain.Household, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, role domain.UserRole, input UpdateHouseholdInput) (*domain.Household, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID, role domain.UserRole) error
	// VerifyOwner returns the household only when ownerID owns it; admins
	// bypass the check. Failure is domain.ErrHouseholdNotFound, deliberately
	// indistinguishable from a missing household.
	VerifyOwner(ctx context.Context, householdID, ownerID uuid.UUID, role domain.UserRole) (*domain.Household, error)
}

type householdService struct {
	repo port.HouseholdRepository
}

// NewHouseholdService creates a new HouseholdService implementation.
func NewHouseholdService(repo port.HouseholdRepository) HouseholdService {
	return &householdService{repo: repo}
}

func (s *householdService) Create(ctx context.Context, ownerID uuid.UUID, input CreateHouseholdInput) (*domain.Household, error) {
	household := &domain.Household{
		OwnerID:           ownerID,
		Name:              input.Name,
		City:              input.City,
		Occupants:         input.Occupants,
		MonthlyKwhTarget:  input.MonthlyKwhTarget,
		MonthlyCostTarget: input.MonthlyCostTarget,
		Currency:          input.Currency,
	}
	if err := s.repo.Create(ctx, household); err != nil {
		return nil, err
	}
	return household, nil
}

func (s *householdService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Household, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *householdService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Household, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *householdService) List(ctx context.Context) ([]domain.Household, error) {
	return s.repo.List(ctx)
}

func (s *householdService) Update(ctx context.Context, id, ownerID uuid.UUID, role domain.UserRole, input UpdateHouseholdInput) (*domain.Household, error) {
	household, err := s.VerifyOwner(ctx, id, ownerID, role)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		household.Name = *input.Name
	}
	if input.City != nil {
		household.City = *input.City
	}
	if input.Occupants != nil {
		household.Occupants = *input.Occupants
	}
	if input.MonthlyKwhTarget != nil {
		household.MonthlyKwhTarget = *input.MonthlyKwhTarget
	}
	if input.MonthlyCostTarget != nil {
		household.MonthlyCostTarget = *input.MonthlyCostTarget
	}
	if input.Currency != nil {
		household.Currency = *input.Currency
	}

	if err := s.repo.Update(ctx, household); err != nil {
		return nil, err
	}
	return household, nil
}

func (s *householdService) Delete(ctx context.Context, id, ownerID uuid.UUID, role domain.UserRole) error {
	if _, err := s.VerifyOwner(ctx, id, ownerID, role); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *householdService) VerifyOwner(ctx context.Context, householdID, ownerID uuid.UUID, role domain.UserRole) (*domain.Household, error) {
	if role == domain.RoleAdmin {
		return s.repo.GetByID(ctx, householdID)
	}
	return s.repo.GetByIDAndOwner(ctx, householdID, ownerID)
}
