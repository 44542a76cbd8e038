package banks

import (
	"fmt"
	"strings"

	"statement-converter-service/internal/core/domain"
)

// validateCSV runs the shared CSV validation steps: readable file, required
// columns present, at least one data row, then a format check over the first
// few rows.
func validateCSV(data []byte, comma rune, required []string, check func(*table) []string, label string) domain.ValidationResult {
	t, err := readTable(data, comma)
	if err != nil {
		return domain.ValidationResult{Valid: false, Error: fmt.Sprintf("error reading %s file: %v", label, err)}
	}

	if missing := t.missing(required...); len(missing) > 0 {
		return domain.ValidationResult{
			Valid:   false,
			Error:   "missing required columns: " + strings.Join(missing, ", "),
			Columns: t.columns,
		}
	}

	if len(t.rows) == 0 {
		return domain.ValidationResult{Valid: false, Error: "CSV file is empty", Columns: t.columns}
	}

	if errs := check(t); len(errs) > 0 {
		return domain.ValidationResult{
			Valid:   false,
			Error:   "format validation errors: " + strings.Join(errs, "; "),
			Columns: t.columns,
		}
	}

	return domain.ValidationResult{
		Valid:    true,
		Message:  fmt.Sprintf("%s file is valid with %d transactions", label, len(t.rows)),
		Columns:  t.columns,
		RowCount: len(t.rows),
	}
}

// checkRows verifies date and amount formats on the first five data rows.
func checkRows(t *table, dateColumn, amountColumn string, dateLayouts ...string) []string {
	var errs []string
	for i, record := range t.rows {
		if i >= 5 {
			break
		}
		if _, err := parseDate(t.get(record, dateColumn), dateLayouts...); err != nil {
			errs = append(errs, fmt.Sprintf("invalid date format in row %d: %s", i, t.get(record, dateColumn)))
		}
		if _, err := parseAmount(t.get(record, amountColumn)); err != nil {
			errs = append(errs, fmt.Sprintf("invalid amount format in row %d: %s", i, t.get(record, amountColumn)))
		}
	}
	return errs
}
