package banks

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"statement-converter-service/internal/core/domain"
)

const (
	templateSheet      = "Transacties"
	spreadsheetAccount = "NL00BANK0000000000"
)

var spreadsheetColumns = []string{"Datum", "Bedrag", "Omschrijving", "Tegenrekening", "Referentie"}

// SpreadsheetParser reads the manual-entry Excel template: users download
// the template, replace the example rows with their own transactions and
// upload it back.
type SpreadsheetParser struct{}

func NewSpreadsheetParser() *SpreadsheetParser { return &SpreadsheetParser{} }

func (p *SpreadsheetParser) Bank() string        { return "excel" }
func (p *SpreadsheetParser) Name() string        { return "Excel (Handmatig)" }
func (p *SpreadsheetParser) DisplayName() string { return "Excel (Handmatig)" }
func (p *SpreadsheetParser) FileTypes() []string { return []string{"xlsx", "xls"} }

func (p *SpreadsheetParser) Parse(data []byte) ([]domain.Transaction, error) {
	rows, err := sheetRows(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidFileFormat, err)
	}
	columns, err := p.columnIndex(rows)
	if err != nil {
		return nil, err
	}

	var transactions []domain.Transaction
	for i, row := range rows[1:] {
		dateStr := cellAt(row, columns["Datum"])
		amountStr := cellAt(row, columns["Bedrag"])
		if dateStr == "" || amountStr == "" {
			continue
		}

		date, err := parseExcelDate(dateStr)
		if err != nil {
			log.Warnf("excel row %d: %v", i, err)
			continue
		}
		amount, err := parseExcelAmount(amountStr)
		if err != nil {
			log.Warnf("excel row %d: invalid amount %q", i, amountStr)
			continue
		}

		description := cellAt(row, columns["Omschrijving"])
		if description == "" {
			log.Warnf("excel row %d: empty description, skipping", i)
			continue
		}

		reference := cellAt(row, columns["Referentie"])
		if reference == "" {
			reference = fmt.Sprintf("EXCEL_%06d", i)
		}

		transactions = append(transactions, domain.Transaction{
			Date:           date,
			Amount:         amount,
			Description:    description,
			CounterAccount: cellAt(row, columns["Tegenrekening"]),
			Reference:      reference,
			Type:           p.classify(amount),
		})
	}
	return transactions, nil
}

func (p *SpreadsheetParser) columnIndex(rows [][]string) (map[string]int, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: file is empty", domain.ErrInvalidFileFormat)
	}
	index := make(map[string]int)
	for i, col := range rows[0] {
		index[strings.TrimSpace(col)] = i
	}
	var missing []string
	for _, col := range spreadsheetColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", domain.ErrInvalidFileFormat, strings.Join(missing, ", "))
	}
	return index, nil
}

func (p *SpreadsheetParser) classify(amount decimal.Decimal) domain.TransactionType {
	if amount.IsPositive() {
		return domain.TypeCredit
	}
	return domain.TypeTransfer
}

func (p *SpreadsheetParser) AccountInfo(data []byte) (domain.AccountInfo, error) {
	rows, err := sheetRows(data)
	if err != nil {
		return domain.AccountInfo{}, fmt.Errorf("%w: %v", domain.ErrInvalidFileFormat, err)
	}
	columns, err := p.columnIndex(rows)
	if err != nil {
		return domain.AccountInfo{}, err
	}

	var dates []time.Time
	for _, row := range rows[1:] {
		if d, err := parseExcelDate(cellAt(row, columns["Datum"])); err == nil {
			dates = append(dates, d)
		}
	}
	start, end := dateRange(dates)

	return domain.AccountInfo{AccountNumber: spreadsheetAccount, StartDate: start, EndDate: end}, nil
}

func (p *SpreadsheetParser) Validate(data []byte) domain.ValidationResult {
	rows, err := sheetRows(data)
	if err != nil {
		return domain.ValidationResult{Valid: false, Error: fmt.Sprintf("error reading Excel file: %v", err)}
	}
	columns, err := p.columnIndex(rows)
	if err != nil {
		var found []string
		if len(rows) > 0 {
			found = rows[0]
		}
		return domain.ValidationResult{
			Valid:   false,
			Error:   "missing required columns, download the template first",
			Columns: found,
		}
	}
	if len(rows) <= 1 {
		return domain.ValidationResult{Valid: false, Error: "Excel file contains no transactions", Columns: rows[0]}
	}

	var errs []string
	dataCount := 0
	for i, row := range rows[1:] {
		dateStr := cellAt(row, columns["Datum"])
		amountStr := cellAt(row, columns["Bedrag"])
		if dateStr == "" && amountStr == "" {
			continue
		}
		dataCount++
		if i < 5 {
			if _, err := parseExcelDate(dateStr); err != nil {
				errs = append(errs, fmt.Sprintf("invalid date format in row %d: %s", i+2, dateStr))
			}
			if amountStr != "" {
				if _, err := parseExcelAmount(amountStr); err != nil {
					errs = append(errs, fmt.Sprintf("invalid amount in row %d: %s", i+2, amountStr))
				}
			}
		}
	}
	if len(errs) > 0 {
		return domain.ValidationResult{Valid: false, Error: strings.Join(errs, "; "), Columns: rows[0]}
	}

	return domain.ValidationResult{
		Valid:    true,
		Message:  fmt.Sprintf("Excel file is valid with %d transactions", dataCount),
		Columns:  rows[0],
		RowCount: dataCount,
	}
}

// TemplateGenerator produces the manual-entry template with example rows so
// users understand the expected format.
type TemplateGenerator struct{}

func NewTemplateGenerator() *TemplateGenerator { return &TemplateGenerator{} }

func (g *TemplateGenerator) Generate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	today := time.Now()
	rows := [][]interface{}{
		{"Datum", "Bedrag", "Omschrijving", "Tegenrekening", "Referentie"},
		{today.AddDate(0, 0, -10).Format("02-01-2006"), -49.99, "Albert Heijn - Boodschappen", "NL91ABNA0417164300", "AH-001"},
		{today.AddDate(0, 0, -8).Format("02-01-2006"), -12.50, "Spotify Premium maandabonnement", "", "SPOTIFY"},
		{today.AddDate(0, 0, -5).Format("02-01-2006"), 1500.00, "Salaris", "NL20INGB0001234567", "SAL-001"},
		{today.AddDate(0, 0, -3).Format("02-01-2006"), -85.00, "Ziggo Internet & TV", "NL45RABO0123456789", ""},
		{today.AddDate(0, 0, -1).Format("02-01-2006"), -29.99, "bol.com - Bestelling #9283746", "", "BOL-9283746"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(templateSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write template row %d: %w", i+1, err)
		}
	}

	for col, width := range map[string]float64{"A": 14, "B": 12, "C": 36, "D": 24, "E": 16} {
		if err := f.SetColWidth(templateSheet, col, col, width); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}
	return buf.Bytes(), nil
}
