package banks

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"statement-converter-service/internal/core/domain"
)

// decodeText normalizes raw file bytes to UTF-8. Bank exports arrive as
// utf-8 (sometimes with a BOM), latin-1 or cp1252 depending on how the file
// was downloaded.
func decodeText(data []byte) []byte {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(data) {
		return data
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return data
	}
	return decoded
}

// table is a header-indexed CSV file.
type table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

func readTable(data []byte, comma rune) (*table, error) {
	r := csv.NewReader(bytes.NewReader(decodeText(data)))
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidFileFormat, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: file is empty", domain.ErrInvalidFileFormat)
	}

	t := &table{index: make(map[string]int)}
	for i, col := range records[0] {
		col = cleanHeader(col)
		t.columns = append(t.columns, col)
		if _, ok := t.index[col]; !ok {
			t.index[col] = i
		}
	}
	t.rows = records[1:]
	return t, nil
}

// cleanHeader strips BOM remnants and non-breaking spaces that Rabobank and
// ICS exports carry in their header rows.
func cleanHeader(s string) string {
	s = strings.ReplaceAll(s, "\ufeff", "")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(s)
}

func (t *table) missing(required ...string) []string {
	var missing []string
	for _, col := range required {
		if _, ok := t.index[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// get returns the trimmed cell value for a named column, or "" when the
// column is absent or the row is short.
func (t *table) get(row []string, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseAmount handles European number formats: "1.234,56", "-108", "11,99".
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ".", "")
	}
	s = strings.ReplaceAll(s, ",", ".")
	return decimal.NewFromString(s)
}

func parseDate(s string, layouts ...string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func containsAny(s string, keywords []string) bool {
	s = strings.ToLower(s)
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// dateRange returns the first and last transaction dates of a file, falling
// back to now when no date could be parsed.
func dateRange(dates []time.Time) (time.Time, time.Time) {
	if len(dates) == 0 {
		now := time.Now()
		return now, now
	}
	min, max := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}
	return min, max
}
