package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"wattbill/internal/domain"
)

// UsageRepository persists per-day usage entries.
type UsageRepository interface {
	Create(ctx context.Context, entry *domain.UsageEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UsageEntry, error)
	ListByHousehold(ctx context.Context, householdID uuid.UUID) ([]domain.UsageEntry, error)
	Update(ctx context.Context, entry *domain.UsageEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	// SumRange aggregates units_used and entry count for a household over the
	// half-open window [from, to). An empty window yields a zero summary, not
	// an error.
	SumRange(ctx context.Context, householdID uuid.UUID, from, to time.Time) (*domain.MonthlySummary, error)
}
