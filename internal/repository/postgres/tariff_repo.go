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

type tariffRepo struct {
	db *sqlx.DB
}

// NewTariffRepo creates a new PostgreSQL-backed TariffRepository.
func NewTariffRepo(db *sqlx.DB) port.TariffRepository {
	return &tariffRepo{db: db}
}

func (r *tariffRepo) GetByName(ctx context.Context, name string) (*domain.Tariff, error) {
	var tariff domain.Tariff
	err := r.db.GetContext(ctx, &tariff, "SELECT * FROM tariffs WHERE name = $1", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("tariffRepo.GetByName: %w", err)
	}
	return &tariff, nil
}

func (r *tariffRepo) Upsert(ctx context.Context, tariff *domain.Tariff) error {
	if tariff.ID == uuid.Nil {
		tariff.ID = uuid.New()
	}
	now := time.Now().UTC()
	if tariff.CreatedAt.IsZero() {
		tariff.CreatedAt = now
	}
	tariff.UpdatedAt = now

	query := `INSERT INTO tariffs (id, name, tariff_low, tariff_high, sscl_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name) DO UPDATE SET
			tariff_low = EXCLUDED.tariff_low,
			tariff_high = EXCLUDED.tariff_high,
			sscl_rate = EXCLUDED.sscl_rate,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		tariff.ID, tariff.Name, tariff.TariffLow, tariff.TariffHigh,
		tariff.SSCLRate, tariff.CreatedAt, tariff.UpdatedAt,
	).Scan(&tariff.ID, &tariff.CreatedAt)
	if err != nil {
		return fmt.Errorf("tariffRepo.Upsert: %w", err)
	}
	return nil
}
