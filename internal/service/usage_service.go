package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"wattbill/internal/billing"
	"wattbill/internal/domain"
	"wattbill/internal/port"
)

// CreateUsageInput is the DTO for recording a usage entry. Units may be
// entered directly or derived from a meter reading pair.
type CreateUsageInput struct {
	HouseholdID     uuid.UUID        `json:"household_id" binding:"required"`
	Date            time.Time        `json:"date" binding:"required"`
	EntryType       domain.EntryType `json:"entry_type" binding:"omitempty,oneof=manual meter"`
	UnitsUsed       *float64         `json:"units_used" binding:"omitempty,gte=0"`
	PreviousReading *float64         `json:"previous_reading" binding:"omitempty,gte=0"`
	CurrentReading  *float64         `json:"current_reading" binding:"omitempty,gte=0"`
}

// UpdateUsageInput is the DTO for updating a usage entry. Absent fields keep
// their current value.
type UpdateUsageInput struct {
	Date            *time.Time        `json:"date"`
	EntryType       *domain.EntryType `json:"entry_type" binding:"omitempty,oneof=manual meter"`
	UnitsUsed       *float64          `json:"units_used" binding:"omitempty,gte=0"`
	PreviousReading *float64          `json:"previous_reading" binding:"omitempty,gte=0"`
	CurrentReading  *float64          `json:"current_reading" binding:"omitempty,gte=0"`
}

// UsageService manages usage entries and the monthly aggregation the bill
// generator consumes.
type UsageService interface {
	Create(ctx context.Context, input CreateUsageInput) (*domain.UsageEntry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UsageEntry, error)
	ListByHousehold(ctx context.Context, householdID uuid.UUID) ([]domain.UsageEntry, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUsageInput) (*domain.UsageEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// GetMonthlyTotalUnits sums a household's entries over the calendar month.
	// A month with no entries yields a zero summary, not an error.
	GetMonthlyTotalUnits(ctx context.Context, householdID uuid.UUID, month, year int) (*domain.MonthlySummary, error)
	// GetMonthlyCostSummary combines the monthly aggregate with the cost the
	// live tariff would charge for it.
	GetMonthlyCostSummary(ctx context.Context, householdID uuid.UUID, month, year int) (*domain.MonthlyCostSummary, error)
}

type usageService struct {
	repo    port.UsageRepository
	tariffs TariffService
}

// NewUsageService creates a new UsageService implementation.
func NewUsageService(repo port.UsageRepository, tariffs TariffService) UsageService {
	return &usageService{repo: repo, tariffs: tariffs}
}

func (s *usageService) Create(ctx context.Context, input CreateUsageInput) (*domain.UsageEntry, error) {
	entryType := input.EntryType
	if entryType == "" {
		entryType = domain.EntryManual
	}

	var units float64
	switch {
	case input.PreviousReading != nil && input.CurrentReading != nil:
		if *input.CurrentReading < *input.PreviousReading {
			return nil, domain.ErrReadingsOutOfOrder
		}
		units = *input.CurrentReading - *input.PreviousReading
	case input.UnitsUsed != nil:
		units = *input.UnitsUsed
	default:
		return nil, domain.ErrUsageInputMissing
	}

	entry := &domain.UsageEntry{
		HouseholdID:     input.HouseholdID,
		Date:            input.Date,
		EntryType:       entryType,
		UnitsUsed:       units,
		PreviousReading: input.PreviousReading,
		CurrentReading:  input.CurrentReading,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *usageService) GetByID(ctx context.Context, id uuid.UUID) (*domain.UsageEntry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *usageService) ListByHousehold(ctx context.Context, householdID uuid.UUID) ([]domain.UsageEntry, error) {
	return s.repo.ListByHousehold(ctx, householdID)
}

func (s *usageService) Update(ctx context.Context, id uuid.UUID, input UpdateUsageInput) (*domain.UsageEntry, error) {
	if input.Date == nil && input.EntryType == nil && input.UnitsUsed == nil &&
		input.PreviousReading == nil && input.CurrentReading == nil {
		return nil, domain.ErrNoUpdatableFields
	}

	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Date != nil {
		entry.Date = *input.Date
	}
	if input.EntryType != nil {
		entry.EntryType = *input.EntryType
	}
	if input.PreviousReading != nil {
		entry.PreviousReading = input.PreviousReading
	}
	if input.CurrentReading != nil {
		entry.CurrentReading = input.CurrentReading
	}

	switch {
	case entry.PreviousReading != nil && entry.CurrentReading != nil &&
		(input.PreviousReading != nil || input.CurrentReading != nil):
		if *entry.CurrentReading < *entry.PreviousReading {
			return nil, domain.ErrReadingsOutOfOrder
		}
		entry.UnitsUsed = *entry.CurrentReading - *entry.PreviousReading
	case input.UnitsUsed != nil:
		entry.UnitsUsed = *input.UnitsUsed
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *usageService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *usageService) GetMonthlyTotalUnits(ctx context.Context, householdID uuid.UUID, month, year int) (*domain.MonthlySummary, error) {
	from, to := monthWindow(month, year)
	return s.repo.SumRange(ctx, householdID, from, to)
}

func (s *usageService) GetMonthlyCostSummary(ctx context.Context, householdID uuid.UUID, month, year int) (*domain.MonthlyCostSummary, error) {
	var (
		summary *domain.MonthlySummary
		tariff  *domain.Tariff
	)

	// Aggregation and tariff fetch are independent reads; issue them
	// concurrently and join.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = s.GetMonthlyTotalUnits(gctx, householdID, month, year)
		return err
	})
	g.Go(func() error {
		var err error
		tariff, err = s.tariffs.GetTariff(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.MonthlyCostSummary{
		HouseholdID: householdID,
		Month:       month,
		Year:        year,
		Entries:     summary.Entries,
		CostResult:  billing.CalculateCost(summary.TotalUnits, tariff),
	}, nil
}

// monthWindow returns the half-open UTC window [first of month, first of next
// month) for a 1-based month.
func monthWindow(month, year int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}
