// Package billing implements the slab/tier cost computation shared by every
// bill-producing path. CalculateCost is a pure function: no I/O, no side
// effects, deterministic for a given (units, tariff) pair.
package billing

import (
	"fmt"
	"math"
	"strconv"

	"wattbill/internal/domain"
)

// LowTierMax is the monthly consumption (kWh) at or below which the low
// tariff tier applies. Tier selection is by total consumption, not marginal
// progression, so crossing this threshold reprices every unit — a deliberate
// property of the CEB domestic tariff carried over unchanged.
const LowTierMax = 60

// CalculateCost maps total monthly consumption and a tariff to an itemized
// cost breakdown.
//
// The slab walk tracks the units not yet priced and the cumulative limit
// consumed by prior slabs. A nil UpTo marks an open-ended last slab that
// absorbs all remaining units. The bill's fixed charge is the fixed charge
// of the highest slab reached, not a sum. If the slab table underflows the
// requested units the leftover is silently truncated; an empty slab list
// yields a zero energy charge. Both are degenerate tariff configurations,
// not errors.
func CalculateCost(totalUnits float64, tariff *domain.Tariff) domain.CostResult {
	slabs := tariff.TariffHigh
	if totalUnits <= LowTierMax {
		slabs = tariff.TariffLow
	}

	remaining := totalUnits
	var energyCharge, fixedCharge, prevLimit float64
	breakdown := domain.BreakdownLines{}

	for _, slab := range slabs {
		if remaining <= 0 {
			break
		}

		width := remaining
		if slab.UpTo != nil {
			width = *slab.UpTo - prevLimit
		}
		unitsInSlab := math.Min(remaining, width)
		cost := round2(unitsInSlab * slab.Rate)

		breakdown = append(breakdown, domain.BreakdownLine{
			Range: fmt.Sprintf("%s–%s kWh", formatUnits(prevLimit+1), formatUnits(prevLimit+unitsInSlab)),
			Units: unitsInSlab,
			Rate:  slab.Rate,
			Cost:  cost,
		})

		energyCharge += cost
		if slab.FixedCharge > fixedCharge {
			fixedCharge = slab.FixedCharge
		}

		remaining -= unitsInSlab
		if slab.UpTo != nil {
			prevLimit = *slab.UpTo
		} else {
			prevLimit += unitsInSlab
		}
	}

	subTotal := round2(energyCharge + fixedCharge)
	sscl := round2(subTotal * tariff.SSCLRate)
	totalCost := round2(subTotal + sscl)

	return domain.CostResult{
		TotalUnits:   totalUnits,
		EnergyCharge: round2(energyCharge),
		FixedCharge:  fixedCharge,
		SubTotal:     subTotal,
		SSCL:         sscl,
		TotalCost:    totalCost,
		Breakdown:    breakdown,
	}
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round2 exposes the bill rounding convention to other packages.
func Round2(v float64) float64 {
	return round2(v)
}

// Round1 rounds to one decimal place, used for percentage deltas.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func formatUnits(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
