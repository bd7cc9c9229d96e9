// Command importusage converts an Excel export of meter readings into a SQL
// seed file for the usage_entries table.
// Expected columns: A=household UUID, B=date (YYYY-MM-DD), C=previous reading,
// D=current reading. Rows with an empty reading pair are skipped.
// Usage: go run ./cmd/importusage readings.xlsx
// Output: db/seeds/usage_entries.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const batchSize = 500

type usageRow struct {
	householdID string
	date        string
	unitsUsed   float64
	prevReading float64
	currReading float64
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: importusage <readings.xlsx>")
	}
	xlsxPath := os.Args[1]
	outPath := "db/seeds/usage_entries.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, skipped, err := parseReadingsSheet(f)
	if err != nil {
		return fmt.Errorf("parse readings sheet: %w", err)
	}
	log.Printf("parsed %d entries, skipped %d rows", len(entries), skipped)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	w := func(s string) error { _, werr := fmt.Fprintln(out, s); return werr }

	for _, line := range []string{
		"-- Usage entry seed data generated from meter reading Excel export.",
		fmt.Sprintf("-- %d entries in batches of %d.", len(entries), batchSize),
		"BEGIN;",
		"",
	} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write header: %w", werr)
		}
	}

	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := writeBatch(out, entries[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	for _, line := range []string{"", "COMMIT;"} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write footer: %w", werr)
		}
	}

	log.Printf("generated %d entries (%d batches) in %s",
		len(entries), (len(entries)+batchSize-1)/batchSize, outPath)
	return nil
}

// parseReadingsSheet reads the first sheet. Row 0 is the header.
func parseReadingsSheet(f *excelize.File) ([]usageRow, int, error) {
	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, err
	}

	var entries []usageRow
	skipped := 0
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 4 {
			skipped++
			continue
		}

		id := strings.TrimSpace(cellVal(row, 0))
		if _, perr := uuid.Parse(id); perr != nil {
			skipped++
			continue
		}

		dateStr := strings.TrimSpace(cellVal(row, 1))
		date, perr := time.Parse("2006-01-02", dateStr)
		if perr != nil {
			skipped++
			continue
		}

		prev, perr1 := strconv.ParseFloat(strings.TrimSpace(cellVal(row, 2)), 64)
		curr, perr2 := strconv.ParseFloat(strings.TrimSpace(cellVal(row, 3)), 64)
		if perr1 != nil || perr2 != nil || curr < prev {
			skipped++
			continue
		}

		entries = append(entries, usageRow{
			householdID: id,
			date:        date.Format("2006-01-02"),
			unitsUsed:   curr - prev,
			prevReading: prev,
			currReading: curr,
		})
	}
	return entries, skipped, nil
}

func writeBatch(out *os.File, batch []usageRow) error {
	if len(batch) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO usage_entries (id, household_id, date, entry_type, units_used, previous_reading, current_reading, created_at, updated_at) VALUES\n")

	for i := range batch {
		e := &batch[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  (gen_random_uuid(), '%s', '%s', 'meter', %g, %g, %g, now(), now())",
			e.householdID, e.date, e.unitsUsed, e.prevReading, e.currReading)
	}

	b.WriteString("\nON CONFLICT (household_id, date) DO NOTHING;\n")

	_, err := out.WriteString(b.String())
	return err
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
