package port

import (
	"context"

	"github.com/google/uuid"

	"wattbill/internal/domain"
)

// HouseholdRepository persists households and answers ownership lookups.
type HouseholdRepository interface {
	Create(ctx context.Context, household *domain.Household) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Household, error)
	// GetByIDAndOwner returns the household only when owned by ownerID,
	// otherwise domain.ErrHouseholdNotFound. This is the ownership check every
	// user-scoped billing operation funnels through.
	GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Household, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Household, error)
	List(ctx context.Context) ([]domain.Household, error)
	Update(ctx context.Context, household *domain.Household) error
	Delete(ctx context.Context, id uuid.UUID) error
}
