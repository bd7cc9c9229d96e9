package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"wattbill/internal/billing"
	"wattbill/internal/domain"
	"wattbill/internal/port"
)

// CreateBillInput is the DTO for a user-entered bill. Exactly one unit source
// must be usable: a direct total, or both meter readings.
type CreateBillInput struct {
	HouseholdID     uuid.UUID `json:"household_id" binding:"required"`
	Month           int       `json:"month" binding:"required,min=1,max=12"`
	Year            int       `json:"year" binding:"required,min=2000,max=2100"`
	TotalUnits      *float64  `json:"total_units" binding:"omitempty,gte=0"`
	PreviousReading *float64  `json:"previous_reading" binding:"omitempty,gte=0"`
	CurrentReading  *float64  `json:"current_reading" binding:"omitempty,gte=0"`
}

// BillService produces, compares, and manages bills.
type BillService interface {
	// GenerateBill aggregates the household's recorded usage for the period,
	// prices it against the live tariff, and upserts the bill. Regeneration
	// replaces all derived fields and resets any prior payment state.
	GenerateBill(ctx context.Context, householdID uuid.UUID, month, year int) (*domain.Bill, error)
	// CreateUserBill prices user-supplied units (direct or derived from a
	// reading pair) with the same upsert semantics as GenerateBill,
	// additionally persisting the readings used.
	CreateUserBill(ctx context.Context, input CreateBillInput) (*domain.Bill, error)
	// CompareBills compares the requested period with the immediately
	// preceding month. A missing current bill is a valid result (nil
	// Current), not an error.
	CompareBills(ctx context.Context, householdID uuid.UUID, month, year int) (*domain.BillComparison, error)
	// Regenerate recomputes an existing bill from the latest usage data.
	Regenerate(ctx context.Context, billID uuid.UUID) (*domain.Bill, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error)
	ListByHousehold(ctx context.Context, householdID uuid.UUID) ([]domain.Bill, error)
	List(ctx context.Context) ([]domain.Bill, error)
	// UpdateStatus marks a bill paid or unpaid; paying stamps paid_at.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BillStatus) (*domain.Bill, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type billService struct {
	bills   port.BillRepository
	usage   UsageService
	tariffs TariffService
	periods *periodLocks
}

// NewBillService creates a new BillService implementation.
func NewBillService(bills port.BillRepository, usage UsageService, tariffs TariffService) BillService {
	return &billService{
		bills:   bills,
		usage:   usage,
		tariffs: tariffs,
		periods: newPeriodLocks(),
	}
}

func (s *billService) GenerateBill(ctx context.Context, householdID uuid.UUID, month, year int) (*domain.Bill, error) {
	release := s.periods.acquire(householdID, month, year)
	defer release()

	var (
		summary *domain.MonthlySummary
		tariff  *domain.Tariff
	)

	// Usage aggregation and tariff fetch are independent reads; issue them
	// concurrently and join.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = s.usage.GetMonthlyTotalUnits(gctx, householdID, month, year)
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

	cost := billing.CalculateCost(summary.TotalUnits, tariff)
	bill := buildBill(householdID, month, year, nil, nil, cost)
	if err := s.bills.Upsert(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *billService) CreateUserBill(ctx context.Context, input CreateBillInput) (*domain.Bill, error) {
	var totalUnits float64
	switch {
	case input.TotalUnits != nil:
		totalUnits = *input.TotalUnits
	case input.PreviousReading != nil && input.CurrentReading != nil:
		if *input.CurrentReading < *input.PreviousReading {
			return nil, domain.ErrReadingsOutOfOrder
		}
		totalUnits = *input.CurrentReading - *input.PreviousReading
	default:
		return nil, domain.ErrBillInputMissing
	}

	release := s.periods.acquire(input.HouseholdID, input.Month, input.Year)
	defer release()

	tariff, err := s.tariffs.GetTariff(ctx)
	if err != nil {
		return nil, err
	}

	cost := billing.CalculateCost(totalUnits, tariff)
	bill := buildBill(input.HouseholdID, input.Month, input.Year,
		input.PreviousReading, input.CurrentReading, cost)
	if err := s.bills.Upsert(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *billService) CompareBills(ctx context.Context, householdID uuid.UUID, month, year int) (*domain.BillComparison, error) {
	prevMonth, prevYear := previousPeriod(month, year)

	var current, previous *domain.Bill

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := s.bills.GetByPeriod(gctx, householdID, month, year)
		if err != nil && !errors.Is(err, domain.ErrBillNotFound) {
			return err
		}
		current = b
		return nil
	})
	g.Go(func() error {
		b, err := s.bills.GetByPeriod(gctx, householdID, prevMonth, prevYear)
		if err != nil && !errors.Is(err, domain.ErrBillNotFound) {
			return err
		}
		previous = b
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if current == nil {
		return &domain.BillComparison{}, nil
	}

	comparison := &domain.BillComparison{
		Current: &domain.BillPeriodSummary{
			Month:      month,
			Year:       year,
			TotalUnits: current.TotalUnits,
			TotalCost:  current.TotalCost,
		},
	}
	if previous == nil {
		return comparison, nil
	}

	comparison.Previous = &domain.BillPeriodSummary{
		Month:      prevMonth,
		Year:       prevYear,
		TotalUnits: previous.TotalUnits,
		TotalCost:  previous.TotalCost,
	}

	unitsDiff := current.TotalUnits - previous.TotalUnits
	costDiff := current.TotalCost - previous.TotalCost

	diff := &domain.BillDifference{
		Units: unitsDiff,
		Cost:  billing.Round2(costDiff),
		Trend: domain.TrendUnchanged,
	}
	if previous.TotalUnits > 0 {
		pct := billing.Round1(unitsDiff / previous.TotalUnits * 100)
		diff.UnitsChangePercent = &pct
	}
	if previous.TotalCost > 0 {
		pct := billing.Round1(costDiff / previous.TotalCost * 100)
		diff.CostChangePercent = &pct
	}
	switch {
	case unitsDiff > 0:
		diff.Trend = domain.TrendIncreased
	case unitsDiff < 0:
		diff.Trend = domain.TrendDecreased
	}
	comparison.Difference = diff

	return comparison, nil
}

func (s *billService) Regenerate(ctx context.Context, billID uuid.UUID) (*domain.Bill, error) {
	bill, err := s.bills.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	return s.GenerateBill(ctx, bill.HouseholdID, bill.Month, bill.Year)
}

func (s *billService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error) {
	return s.bills.GetByID(ctx, id)
}

func (s *billService) ListByHousehold(ctx context.Context, householdID uuid.UUID) ([]domain.Bill, error) {
	return s.bills.ListByHousehold(ctx, householdID)
}

func (s *billService) List(ctx context.Context) ([]domain.Bill, error) {
	return s.bills.List(ctx)
}

func (s *billService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BillStatus) (*domain.Bill, error) {
	var paidAt *time.Time
	if status == domain.BillPaid {
		now := time.Now().UTC()
		paidAt = &now
	}
	if err := s.bills.UpdateStatus(ctx, id, status, paidAt); err != nil {
		return nil, err
	}
	return s.bills.GetByID(ctx, id)
}

func (s *billService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.bills.Delete(ctx, id)
}

// buildBill assembles an unpaid bill from a cost result. The due date is the
// 20th of the month following the billing month; time.Date normalizes
// December to January of the next year.
func buildBill(householdID uuid.UUID, month, year int, prev, curr *float64, cost domain.CostResult) *domain.Bill {
	return &domain.Bill{
		HouseholdID:     householdID,
		Month:           month,
		Year:            year,
		PreviousReading: prev,
		CurrentReading:  curr,
		TotalUnits:      cost.TotalUnits,
		EnergyCharge:    cost.EnergyCharge,
		FixedCharge:     cost.FixedCharge,
		SubTotal:        cost.SubTotal,
		SSCL:            cost.SSCL,
		TotalCost:       cost.TotalCost,
		Breakdown:       cost.Breakdown,
		Status:          domain.BillUnpaid,
		DueDate:         time.Date(year, time.Month(month)+1, 20, 0, 0, 0, 0, time.UTC),
	}
}

// previousPeriod wraps January back to December of the prior year.
func previousPeriod(month, year int) (int, int) {
	if month == 1 {
		return 12, year - 1
	}
	return month - 1, year
}
