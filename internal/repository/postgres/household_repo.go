package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"wattbill/internal/domain"
	"wattbill/internal/port"
)

type householdRepo struct {
	db *sqlx.DB
}

// NewHouseholdRepo creates a new PostgreSQL-backed HouseholdRepository.
func NewHouseholdRepo(db *sqlx.DB) port.HouseholdRepository {
	return &householdRepo{db: db}
}

func (r *householdRepo) Create(ctx context.Context, household *domain.Household) error {
	household.ID = uuid.New()
	now := time.Now().UTC()
	household.CreatedAt = now
	household.UpdatedAt = now
	if household.Currency == "" {
		household.Currency = "LKR"
	}

	query := `INSERT INTO households
		(id, owner_id, name, city, occupants, monthly_kwh_target, monthly_cost_target, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		household.ID, household.OwnerID, household.Name, household.City,
		household.Occupants, household.MonthlyKwhTarget, household.MonthlyCostTarget,
		household.Currency, household.CreatedAt, household.UpdatedAt)
	if err != nil {
		return fmt.Errorf("householdRepo.Create: %w", err)
	}
	return nil
}

func (r *householdRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Household, error) {
	var household domain.Household
	err := r.db.GetContext(ctx, &household, "SELECT * FROM households WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHouseholdNotFound
		}
		return nil, fmt.Errorf("householdRepo.GetByID: %w", err)
	}
	return &household, nil
}

func (r *householdRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Household, error) {
	var household domain.Household
	err := r.db.GetContext(ctx, &household,
		"SELECT * FROM households WHERE id = $1 AND owner_id = $2", id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHouseholdNotFound
		}
		return nil, fmt.Errorf("householdRepo.GetByIDAndOwner: %w", err)
	}
	return &household, nil
}

func (r *householdRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Household, error) {
	var households []domain.Household
	err := r.db.SelectContext(ctx, &households,
		"SELECT * FROM households WHERE owner_id = $1 ORDER BY created_at DESC", ownerID)
	if err != nil {
		return nil, fmt.Errorf("householdRepo.ListByOwner: %w", err)
	}
	return households, nil
}

func (r *householdRepo) List(ctx context.Context) ([]domain.Household, error) {
	var households []domain.Household
	err := r.db.SelectContext(ctx, &households, "SELECT * FROM households ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("householdRepo.List: %w", err)
	}
	return households, nil
}

func (r *householdRepo) Update(ctx context.Context, household *domain.Household) error {
	household.UpdatedAt = time.Now().UTC()
	query := `UPDATE households SET name = $1, city = $2, occupants = $3,
		monthly_kwh_target = $4, monthly_cost_target = $5, currency = $6, updated_at = $7
		WHERE id = $8`
	result, err := r.db.ExecContext(ctx, query,
		household.Name, household.City, household.Occupants,
		household.MonthlyKwhTarget, household.MonthlyCostTarget, household.Currency,
		household.UpdatedAt, household.ID)
	if err != nil {
		return fmt.Errorf("householdRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrHouseholdNotFound
	}
	return nil
}

func (r *householdRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM households WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("householdRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrHouseholdNotFound
	}
	return nil
}
