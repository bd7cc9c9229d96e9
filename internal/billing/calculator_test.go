package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wattbill/internal/billing"
	"wattbill/internal/domain"
)

func upTo(v float64) *float64 { return &v }

// cebTariff mirrors the default domestic slab tables.
func cebTariff() *domain.Tariff {
	return &domain.Tariff{
		Name: "domestic",
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

func TestCalculateCost_LowTierWorkedExample(t *testing.T) {
	// 45 kWh: 30 at 4.50 plus 15 at 8.00.
	result := billing.CalculateCost(45, cebTariff())

	assert.Equal(t, 45.0, result.TotalUnits)
	assert.Equal(t, 255.0, result.EnergyCharge)
	assert.Equal(t, 210.0, result.FixedCharge)
	assert.Equal(t, 465.0, result.SubTotal)
	assert.Equal(t, 11.63, result.SSCL)
	assert.Equal(t, 476.63, result.TotalCost)

	require.Len(t, result.Breakdown, 2)
	assert.Equal(t, "1–30 kWh", result.Breakdown[0].Range)
	assert.Equal(t, 30.0, result.Breakdown[0].Units)
	assert.Equal(t, 135.0, result.Breakdown[0].Cost)
	assert.Equal(t, "31–45 kWh", result.Breakdown[1].Range)
	assert.Equal(t, 15.0, result.Breakdown[1].Units)
	assert.Equal(t, 120.0, result.Breakdown[1].Cost)
}

func TestCalculateCost_TierBoundary(t *testing.T) {
	// 60 kWh still prices on the low table.
	atBoundary := billing.CalculateCost(60, cebTariff())
	assert.Equal(t, 375.0, atBoundary.EnergyCharge)
	assert.Equal(t, 210.0, atBoundary.FixedCharge)
	assert.Equal(t, 599.63, atBoundary.TotalCost)

	// One unit more reprices the entire consumption on the high table.
	aboveBoundary := billing.CalculateCost(61, cebTariff())
	assert.Equal(t, 783.5, aboveBoundary.EnergyCharge)
	assert.Equal(t, 400.0, aboveBoundary.FixedCharge)
	assert.Equal(t, 1213.09, aboveBoundary.TotalCost)

	// The discontinuity: 61 units cost more than double 60 units.
	assert.Greater(t, aboveBoundary.TotalCost, 2*atBoundary.TotalCost)
}

func TestCalculateCost_FixedChargeIsMaxNotSum(t *testing.T) {
	// 100 kWh reaches the third high slab; fixed charge is that slab's 1000,
	// not 0+400+1000.
	result := billing.CalculateCost(100, cebTariff())

	assert.Equal(t, 1000.0, result.FixedCharge)
	assert.Equal(t, 1560.0, result.EnergyCharge)
	assert.Equal(t, 2560.0, result.SubTotal)
	assert.Equal(t, 64.0, result.SSCL)
	assert.Equal(t, 2624.0, result.TotalCost)
}

func TestCalculateCost_OpenEndedSlab(t *testing.T) {
	// 500 kWh spills 320 units into the unbounded last slab.
	result := billing.CalculateCost(500, cebTariff())

	require.Len(t, result.Breakdown, 5)
	last := result.Breakdown[4]
	assert.Equal(t, "181–500 kWh", last.Range)
	assert.Equal(t, 320.0, last.Units)
	assert.Equal(t, 19520.0, last.Cost)

	assert.Equal(t, 24020.0, result.EnergyCharge)
	assert.Equal(t, 2100.0, result.FixedCharge)
	assert.Equal(t, 26773.0, result.TotalCost)
}

func TestCalculateCost_BreakdownSumsToEnergyCharge(t *testing.T) {
	for _, units := range []float64{0.5, 29, 59.9, 60, 61, 88, 145, 999} {
		result := billing.CalculateCost(units, cebTariff())

		var sum float64
		for _, line := range result.Breakdown {
			sum += line.Cost
		}
		assert.InDelta(t, result.EnergyCharge, sum, 0.001, "units=%v", units)
	}
}

func TestCalculateCost_ZeroUnits(t *testing.T) {
	result := billing.CalculateCost(0, cebTariff())

	assert.Equal(t, 0.0, result.EnergyCharge)
	assert.Equal(t, 0.0, result.FixedCharge)
	assert.Equal(t, 0.0, result.TotalCost)
	assert.Empty(t, result.Breakdown)
}

func TestCalculateCost_EmptySlabList(t *testing.T) {
	tariff := &domain.Tariff{SSCLRate: 0.025}

	result := billing.CalculateCost(50, tariff)

	assert.Equal(t, 50.0, result.TotalUnits)
	assert.Equal(t, 0.0, result.EnergyCharge)
	assert.Equal(t, 0.0, result.TotalCost)
	assert.Empty(t, result.Breakdown)
}

func TestCalculateCost_UnderflowTruncates(t *testing.T) {
	// A bounded table that runs out of slabs before the units do prices only
	// what the slabs cover.
	tariff := &domain.Tariff{
		TariffLow: domain.SlabList{
			{UpTo: upTo(30), Rate: 5.00, FixedCharge: 100.00},
		},
		SSCLRate: 0,
	}

	result := billing.CalculateCost(50, tariff)

	assert.Equal(t, 150.0, result.EnergyCharge)
	assert.Equal(t, 100.0, result.FixedCharge)
	require.Len(t, result.Breakdown, 1)
	assert.Equal(t, 30.0, result.Breakdown[0].Units)
}

func TestCalculateCost_FractionalUnits(t *testing.T) {
	// 30.5 kWh: 30 at 4.50, then 0.5 at 8.00.
	result := billing.CalculateCost(30.5, cebTariff())

	require.Len(t, result.Breakdown, 2)
	assert.Equal(t, 0.5, result.Breakdown[1].Units)
	assert.Equal(t, 4.0, result.Breakdown[1].Cost)
	assert.Equal(t, 139.0, result.EnergyCharge)
}

func TestRoundingHelpers(t *testing.T) {
	assert.Equal(t, 11.63, billing.Round2(11.625))
	assert.Equal(t, -16.7, billing.Round1(-16.666666))
	assert.Equal(t, 20.0, billing.Round1(20))
}
