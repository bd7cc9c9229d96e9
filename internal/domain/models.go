package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Household is the billing unit. It is owned by exactly one user account and
// aggregates usage entries and bills.
type Household struct {
	ID                uuid.UUID `db:"id" json:"id"`
	OwnerID           uuid.UUID `db:"owner_id" json:"owner_id"`
	Name              string    `db:"name" json:"name"`
	City              string    `db:"city" json:"city"`
	Occupants         int       `db:"occupants" json:"occupants"`
	MonthlyKwhTarget  float64   `db:"monthly_kwh_target" json:"monthly_kwh_target"`
	MonthlyCostTarget float64   `db:"monthly_cost_target" json:"monthly_cost_target"`
	Currency          string    `db:"currency" json:"currency"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// Slab is one pricing bracket of a tariff tier. UpTo is the inclusive
// cumulative-unit upper bound; nil means the slab is open-ended and must be
// the last slab of its tier.
type Slab struct {
	UpTo        *float64 `json:"up_to" binding:"omitempty,gt=0"`
	Rate        float64  `json:"rate" binding:"gte=0"`
	FixedCharge float64  `json:"fixed_charge" binding:"gte=0"`
}

// SlabList is an ordered sequence of slabs, stored as a JSONB column.
type SlabList []Slab

// Value implements driver.Valuer for JSONB storage.
func (s SlabList) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB storage.
func (s *SlabList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = nil
		return nil
	default:
		return fmt.Errorf("SlabList.Scan: unsupported type %T", src)
	}
}

// Tariff is the slab-based pricing policy. A single live tariff exists per
// name; the bundled deployment only ever uses "domestic". TariffLow applies
// when monthly consumption is at or below the tier threshold, TariffHigh
// above it.
type Tariff struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	TariffLow  SlabList  `db:"tariff_low" json:"tariff_low"`
	TariffHigh SlabList  `db:"tariff_high" json:"tariff_high"`
	SSCLRate   float64   `db:"sscl_rate" json:"sscl_rate"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// UsageEntry is one recorded consumption row per household per calendar date.
type UsageEntry struct {
	ID              uuid.UUID `db:"id" json:"id"`
	HouseholdID     uuid.UUID `db:"household_id" json:"household_id"`
	Date            time.Time `db:"date" json:"date"`
	EntryType       EntryType `db:"entry_type" json:"entry_type"`
	UnitsUsed       float64   `db:"units_used" json:"units_used"`
	PreviousReading *float64  `db:"previous_reading" json:"previous_reading"`
	CurrentReading  *float64  `db:"current_reading" json:"current_reading"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// BreakdownLine is one per-slab line item of a computed bill.
type BreakdownLine struct {
	Range string  `json:"range"`
	Units float64 `json:"units"`
	Rate  float64 `json:"rate"`
	Cost  float64 `json:"cost"`
}

// BreakdownLines is an ordered breakdown, stored as a JSONB column.
type BreakdownLines []BreakdownLine

// Value implements driver.Valuer for JSONB storage.
func (b BreakdownLines) Value() (driver.Value, error) {
	return json.Marshal(b)
}

// Scan implements sql.Scanner for JSONB storage.
func (b *BreakdownLines) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	case nil:
		*b = nil
		return nil
	default:
		return fmt.Errorf("BreakdownLines.Scan: unsupported type %T", src)
	}
}

// Bill is a generated (or user-entered) bill for one household and billing
// period. Exactly one bill exists per (household, month, year); regeneration
// replaces every derived field.
type Bill struct {
	ID              uuid.UUID      `db:"id" json:"id"`
	HouseholdID     uuid.UUID      `db:"household_id" json:"household_id"`
	Month           int            `db:"month" json:"month"`
	Year            int            `db:"year" json:"year"`
	PreviousReading *float64       `db:"previous_reading" json:"previous_reading"`
	CurrentReading  *float64       `db:"current_reading" json:"current_reading"`
	TotalUnits      float64        `db:"total_units" json:"total_units"`
	EnergyCharge    float64        `db:"energy_charge" json:"energy_charge"`
	FixedCharge     float64        `db:"fixed_charge" json:"fixed_charge"`
	SubTotal        float64        `db:"sub_total" json:"sub_total"`
	SSCL            float64        `db:"sscl" json:"sscl"`
	TotalCost       float64        `db:"total_cost" json:"total_cost"`
	Breakdown       BreakdownLines `db:"breakdown" json:"breakdown"`
	Status          BillStatus     `db:"status" json:"status"`
	DueDate         time.Time      `db:"due_date" json:"due_date"`
	PaidAt          *time.Time     `db:"paid_at" json:"paid_at"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// CostResult is the itemized output of the cost calculator.
type CostResult struct {
	TotalUnits   float64        `json:"total_units"`
	EnergyCharge float64        `json:"energy_charge"`
	FixedCharge  float64        `json:"fixed_charge"`
	SubTotal     float64        `json:"sub_total"`
	SSCL         float64        `json:"sscl"`
	TotalCost    float64        `json:"total_cost"`
	Breakdown    BreakdownLines `json:"breakdown"`
}

// MonthlySummary is the aggregate of a household's usage entries within one
// calendar month.
type MonthlySummary struct {
	TotalUnits float64 `db:"total_units" json:"total_units"`
	Entries    int     `db:"entries" json:"entries"`
}

// MonthlyCostSummary combines a monthly usage summary with the cost the live
// tariff would charge for it.
type MonthlyCostSummary struct {
	HouseholdID uuid.UUID `json:"household_id"`
	Month       int       `json:"month"`
	Year        int       `json:"year"`
	Entries     int       `json:"entries"`
	CostResult
}

// BillPeriodSummary is one side of a month-over-month comparison.
type BillPeriodSummary struct {
	Month      int     `json:"month"`
	Year       int     `json:"year"`
	TotalUnits float64 `json:"total_units"`
	TotalCost  float64 `json:"total_cost"`
}

// BillDifference holds the deltas between two compared billing periods.
// Percentage fields are nil when the previous baseline is zero.
type BillDifference struct {
	Units              float64  `json:"units"`
	Cost               float64  `json:"cost"`
	UnitsChangePercent *float64 `json:"units_change_percent"`
	CostChangePercent  *float64 `json:"cost_change_percent"`
	Trend              Trend    `json:"trend"`
}

// BillComparison compares a household's bill with the immediately preceding
// month. Current is nil when no bill exists for the requested month — a
// valid, reportable state rather than an error. Difference is omitted
// entirely when there is no previous bill.
type BillComparison struct {
	Current    *BillPeriodSummary `json:"current"`
	Previous   *BillPeriodSummary `json:"previous"`
	Difference *BillDifference    `json:"difference,omitempty"`
}
