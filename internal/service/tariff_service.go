package service

import (
	"context"
	"errors"
	"log"

	"wattbill/internal/domain"
	"wattbill/internal/port"
)

// defaultTariff returns the CEB domestic slab table used to seed the live
// tariff on first read.
func defaultTariff(name string) *domain.Tariff {
	upTo := func(v float64) *float64 { return &v }
	return &domain.Tariff{
		Name: name,
		TariffLow: domain.SlabList{
			{UpTo: upTo(30), Rate: 4.50, FixedCharge: 80.00},
			{UpTo: upTo(60), Rate: 8.00, FixedCharge: 210.00},
		},
		TariffHigh: domain.SlabList{
			{UpTo: upTo(60), Rate: 12.75, FixedCharge: 0},
			{UpTo: upTo(90), Rate: 18.50, FixedCharge: 400.00},
			{UpTo: upTo(120), Rate: 24.00, FixedCharge: 1000.00},
			{UpTo: upTo(180), Rate: 41.00, FixedCharge: 1500.00},
			{UpTo: nil, Rate: 61.00, FixedCharge: 2100.00},
		},
		SSCLRate: 0.025,
	}
}

// UpdateTariffInput is the DTO for an admin partial tariff update. Absent
// fields keep their current value.
type UpdateTariffInput struct {
	TariffLow  domain.SlabList `json:"tariff_low" binding:"omitempty,min=1,dive"`
	TariffHigh domain.SlabList `json:"tariff_high" binding:"omitempty,min=1,dive"`
	SSCLRate   *float64        `json:"sscl_rate" binding:"omitempty,gte=0,lte=1"`
}

// TariffService supplies and updates the single live tariff.
type TariffService interface {
	// GetTariff returns the live tariff, seeding it with the default slab
	// table on first call if none exists.
	GetTariff(ctx context.Context) (*domain.Tariff, error)
	// UpdateTariff merges the provided fields into the live tariff. Slab
	// ordering and range continuity are not re-validated here; the calculator
	// tolerates misconfigured tables by truncating.
	UpdateTariff(ctx context.Context, input UpdateTariffInput) (*domain.Tariff, error)
}

type tariffService struct {
	repo port.TariffRepository
	name string
}

// NewTariffService creates a new TariffService for the named tariff.
func NewTariffService(repo port.TariffRepository, name string) TariffService {
	return &tariffService{repo: repo, name: name}
}

func (s *tariffService) GetTariff(ctx context.Context) (*domain.Tariff, error) {
	tariff, err := s.repo.GetByName(ctx, s.name)
	if err == nil {
		return tariff, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	seeded := defaultTariff(s.name)
	if err := s.repo.Upsert(ctx, seeded); err != nil {
		return nil, err
	}
	log.Printf("tariff %q seeded with CEB defaults", s.name)
	return seeded, nil
}

func (s *tariffService) UpdateTariff(ctx context.Context, input UpdateTariffInput) (*domain.Tariff, error) {
	tariff, err := s.GetTariff(ctx)
	if err != nil {
		return nil, err
	}

	if input.TariffLow != nil {
		tariff.TariffLow = input.TariffLow
	}
	if input.TariffHigh != nil {
		tariff.TariffHigh = input.TariffHigh
	}
	if input.SSCLRate != nil {
		tariff.SSCLRate = *input.SSCLRate
	}

	if err := s.repo.Upsert(ctx, tariff); err != nil {
		return nil, err
	}
	return tariff, nil
}
