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

type usageRepo struct {
	db *sqlx.DB
}

// NewUsageRepo creates a new PostgreSQL-backed UsageRepository.
func NewUsageRepo(db *sqlx.DB) port.UsageRepository {
	return &usageRepo{db: db}
}

func (r *usageRepo) Create(ctx context.Context, entry *domain.UsageEntry) error {
	entry.ID = uuid.New()
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	query := `INSERT INTO usage_entries
		(id, household_id, date, entry_type, units_used, previous_reading, current_reading, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.HouseholdID, entry.Date, entry.EntryType, entry.UnitsUsed,
		entry.PreviousReading, entry.CurrentReading, entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateUsageDate
		}
		return fmt.Errorf("usageRepo.Create: %w", err)
	}
	return nil
}

func (r *usageRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.UsageEntry, error) {
	var entry domain.UsageEntry
	err := r.db.GetContext(ctx, &entry, "SELECT * FROM usage_entries WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUsageNotFound
		}
		return nil, fmt.Errorf("usageRepo.GetByID: %w", err)
	}
	return &entry, nil
}

func (r *usageRepo) ListByHousehold(ctx context.Context, householdID uuid.UUID) ([]domain.UsageEntry, error) {
	var entries []domain.UsageEntry
	err := r.db.SelectContext(ctx, &entries,
		"SELECT * FROM usage_entries WHERE household_id = $1 ORDER BY date DESC", householdID)
	if err != nil {
		return nil, fmt.Errorf("usageRepo.ListByHousehold: %w", err)
	}
	return entries, nil
}

func (r *usageRepo) Update(ctx context.Context, entry *domain.UsageEntry) error {
	entry.UpdatedAt = time.Now().UTC()
	query := `UPDATE usage_entries SET date = $1, entry_type = $2, units_used = $3,
		previous_reading = $4, current_reading = $5, updated_at = $6
		WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query,
		entry.Date, entry.EntryType, entry.UnitsUsed,
		entry.PreviousReading, entry.CurrentReading, entry.UpdatedAt, entry.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateUsageDate
		}
		return fmt.Errorf("usageRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrUsageNotFound
	}
	return nil
}

func (r *usageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM usage_entries WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("usageRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrUsageNotFound
	}
	return nil
}

func (r *usageRepo) SumRange(ctx context.Context, householdID uuid.UUID, from, to time.Time) (*domain.MonthlySummary, error) {
	var summary domain.MonthlySummary
	query := `SELECT COALESCE(SUM(units_used), 0) AS total_units, COUNT(*) AS entries
		FROM usage_entries
		WHERE household_id = $1 AND date >= $2 AND date < $3`
	err := r.db.GetContext(ctx, &summary, query, householdID, from, to)
	if err != nil {
		return nil, fmt.Errorf("usageRepo.SumRange: %w", err)
	}
	return &summary, nil
}
