package domain

import "errors"

var (
	ErrNotFound          = errors.New("resource not found")
	ErrHouseholdNotFound = errors.New("household not found or access denied")
	ErrBillNotFound      = errors.New("bill not found")
	ErrUsageNotFound     = errors.New("usage entry not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")

	// Input validation.
	ErrBillInputMissing   = errors.New("provide either total_units or both previous_reading and current_reading")
	ErrUsageInputMissing  = errors.New("provide either units_used or both previous_reading and current_reading")
	ErrReadingsOutOfOrder = errors.New("current_reading must be greater than or equal to previous_reading")

	// Uniqueness constraints.
	ErrDuplicateUsageDate  = errors.New("usage entry already exists for this household and date")
	ErrDuplicateBillPeriod = errors.New("bill already exists for this household and period")

	ErrNoUpdatableFields = errors.New("no valid fields to update")
)
