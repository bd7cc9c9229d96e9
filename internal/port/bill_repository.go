package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"wattbill/internal/domain"
)

// BillRepository persists bills, one per (household, month, year).
type BillRepository interface {
	// Upsert atomically creates or fully replaces the bill for the given
	// household and period, overwriting every derived field including the
	// payment state. The passed bill is updated in place with the stored row.
	Upsert(ctx context.Context, bill *domain.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error)
	// GetByPeriod returns the bill for a household and period, or
	// domain.ErrBillNotFound.
	GetByPeriod(ctx context.Context, householdID uuid.UUID, month, year int) (*domain.Bill, error)
	ListByHousehold(ctx context.Context, householdID uuid.UUID) ([]domain.Bill, error)
	List(ctx context.Context) ([]domain.Bill, error)
	// UpdateStatus sets the payment state; paidAt is nil when unpaid.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BillStatus, paidAt *time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}
