package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"wattbill/internal/domain"
	"wattbill/internal/port"
)

type billRepo struct {
	db *sqlx.DB
}

// NewBillRepo creates a new PostgreSQL-backed BillRepository.
func NewBillRepo(db *sqlx.DB) port.BillRepository {
	return &billRepo{db: db}
}

// Upsert creates or fully replaces the bill for (household_id, month, year)
// in a single atomic statement. Every derived field is overwritten and the
// payment state is reset; regeneration is destructive to a prior "paid"
// status.
func (r *billRepo) Upsert(ctx context.Context, bill *domain.Bill) error {
	if bill.ID == uuid.Nil {
		bill.ID = uuid.New()
	}
	now := time.Now().UTC()
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = now
	}
	bill.UpdatedAt = now
	bill.Status = domain.BillUnpaid
	bill.PaidAt = nil

	query := `INSERT INTO bills
		(id, household_id, month, year, previous_reading, current_reading,
		 total_units, energy_charge, fixed_charge, sub_total, sscl, total_cost,
		 breakdown, status, due_date, paid_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (household_id, month, year) DO UPDATE SET
			previous_reading = EXCLUDED.previous_reading,
			current_reading = EXCLUDED.current_reading,
			total_units = EXCLUDED.total_units,
			energy_charge = EXCLUDED.energy_charge,
			fixed_charge = EXCLUDED.fixed_charge,
			sub_total = EXCLUDED.sub_total,
			sscl = EXCLUDED.sscl,
			total_cost = EXCLUDED.total_cost,
			breakdown = EXCLUDED.breakdown,
			status = EXCLUDED.status,
			due_date = EXCLUDED.due_date,
			paid_at = EXCLUDED.paid_at,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		bill.ID, bill.HouseholdID, bill.Month, bill.Year,
		bill.PreviousReading, bill.CurrentReading,
		bill.TotalUnits, bill.EnergyCharge, bill.FixedCharge,
		bill.SubTotal, bill.SSCL, bill.TotalCost,
		bill.Breakdown, bill.Status, bill.DueDate, bill.PaidAt,
		bill.CreatedAt, bill.UpdatedAt,
	).Scan(&bill.ID, &bill.CreatedAt)
	if err != nil {
		return fmt.Errorf("billRepo.Upsert: %w", err)
	}
	return nil
}

func (r *billRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error) {
	var bill domain.Bill
	err := r.db.GetContext(ctx, &bill, "SELECT * FROM bills WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBillNotFound
		}
		return nil, fmt.Errorf("billRepo.GetByID: %w", err)
	}
	return &bill, nil
}

func (r *billRepo) GetByPeriod(ctx context.Context, householdID uuid.UUID, month, year int) (*domain.Bill, error) {
	var bill domain.Bill
	err := r.db.GetContext(ctx, &bill,
		"SELECT * FROM bills WHERE household_id = $1 AND month = $2 AND year = $3",
		householdID, month, year)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBillNotFound
		}
		return nil, fmt.Errorf("billRepo.GetByPeriod: %w", err)
	}
	return &bill, nil
}

func (r *billRepo) ListByHousehold(ctx context.Context, householdID uuid.UUID) ([]domain.Bill, error) {
	var bills []domain.Bill
	err := r.db.SelectContext(ctx, &bills,
		"SELECT * FROM bills WHERE household_id = $1 ORDER BY year DESC, month DESC", householdID)
	if err != nil {
		return nil, fmt.Errorf("billRepo.ListByHousehold: %w", err)
	}
	return bills, nil
}

func (r *billRepo) List(ctx context.Context) ([]domain.Bill, error) {
	var bills []domain.Bill
	err := r.db.SelectContext(ctx, &bills, "SELECT * FROM bills ORDER BY year DESC, month DESC")
	if err != nil {
		return nil, fmt.Errorf("billRepo.List: %w", err)
	}
	return bills, nil
}

func (r *billRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BillStatus, paidAt *time.Time) error {
	query := `UPDATE bills SET status = $1, paid_at = $2, updated_at = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, status, paidAt, time.Now().UTC(), id)
	if err != nil {
		if strings.Contains(err.Error(), "invalid input value") {
			return fmt.Errorf("billRepo.UpdateStatus: invalid status %q: %w", status, err)
		}
		return fmt.Errorf("billRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrBillNotFound
	}
	return nil
}

func (r *billRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM bills WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("billRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrBillNotFound
	}
	return nil
}
