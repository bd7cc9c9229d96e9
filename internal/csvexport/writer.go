package csvexport

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"wattbill/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row (13 columns).
var columns = []string{
	"Household",
	"Month",
	"Year",
	"Total Units (kWh)",
	"Energy Charge",
	"Fixed Charge",
	"Sub Total",
	"SSCL",
	"Total Cost",
	"Currency",
	"Status",
	"Due Date",
	"Paid At",
}

// Writer wraps csv.Writer for exporting bill history as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteBills converts a batch of bills to CSV rows and writes them.
func (w *Writer) WriteBills(household *domain.Household, bills []domain.Bill) error {
	for i := range bills {
		row := billToRow(household, &bills[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteBillHistory writes the BOM, header, and all bill rows to w.
func WriteBillHistory(w io.Writer, household *domain.Household, bills []domain.Bill) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}

	cw := NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := cw.WriteBills(household, bills); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// billToRow converts a single bill to a 13-element string slice.
func billToRow(household *domain.Household, bill *domain.Bill) []string {
	row := make([]string, len(columns))

	row[0] = household.Name
	row[1] = time.Month(bill.Month).String()
	row[2] = strconv.Itoa(bill.Year)
	row[3] = formatUnits(bill.TotalUnits)
	row[4] = formatMoney(bill.EnergyCharge)
	row[5] = formatMoney(bill.FixedCharge)
	row[6] = formatMoney(bill.SubTotal)
	row[7] = formatMoney(bill.SSCL)
	row[8] = formatMoney(bill.TotalCost)
	row[9] = household.Currency
	row[10] = string(bill.Status)
	row[11] = bill.DueDate.Format("2006-01-02")
	if bill.PaidAt != nil {
		row[12] = bill.PaidAt.Format(time.RFC3339)
	}

	return row
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatUnits(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
