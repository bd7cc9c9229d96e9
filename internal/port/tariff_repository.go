package port

import (
	"context"

	"wattbill/internal/domain"
)

// TariffRepository persists the live tariff documents.
type TariffRepository interface {
	// GetByName returns the tariff with the given name, or domain.ErrNotFound.
	GetByName(ctx context.Context, name string) (*domain.Tariff, error)
	// Upsert creates the tariff if absent, otherwise replaces its slab tables
	// and surcharge rate, keyed by the unique name.
	Upsert(ctx context.Context, tariff *domain.Tariff) error
}
