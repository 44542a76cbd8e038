package banks

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var excelDateLayouts = []string{"2-1-2006", "2006-01-02", "2/1/2006", "2006/01/02", "1/2/06", "01-02-06"}

// excelEpoch is the base of Excel serial date numbers.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// sheetRows returns the cell values of the first sheet.
func sheetRows(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

// parseExcelDate accepts formatted dates and Excel serial numbers.
func parseExcelDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if d, err := parseDate(value, excelDateLayouts...); err == nil {
		return d, nil
	}
	if serial, err := strconv.ParseFloat(value, 64); err == nil && serial > 0 {
		return excelEpoch.Add(time.Duration(serial * 24 * float64(time.Hour))), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// parseExcelAmount strips currency symbols before parsing.
func parseExcelAmount(value string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("€", "", "$", "", "EUR", "", " ", "").Replace(value)
	if cleaned == "" || !strings.ContainsAny(cleaned, "0123456789") {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", value)
	}
	return parseAmount(cleaned)
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
