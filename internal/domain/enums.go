package domain

// UserRole defines the two access levels carried in auth tokens.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// EntryType distinguishes how a usage entry's units were obtained.
type EntryType string

const (
	EntryManual EntryType = "manual"
	EntryMeter  EntryType = "meter"
)

// BillStatus is the payment state of a bill.
type BillStatus string

const (
	BillUnpaid BillStatus = "unpaid"
	BillPaid   BillStatus = "paid"
)

// Trend tags the direction of a month-over-month comparison.
type Trend string

const (
	TrendIncreased Trend = "increased"
	TrendDecreased Trend = "decreased"
	TrendUnchanged Trend = "unchanged"
)
