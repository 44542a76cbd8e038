package banks

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"statement-converter-service/internal/core/domain"
)

var (
	amexPaymentKeywords = []string{"hartelijk bedankt voor uw betaling"}
	amexHeaderTokens    = []string{"date", "datum", "amount", "bedrag", "description", "omschrijving", "transaction"}
)

// AmexParser reads AMEX credit card Excel exports. AMEX sheets vary in
// layout, so the parser discovers the header row and falls back across
// columns for dates and amounts.
type AmexParser struct{}

func NewAmexParser() *AmexParser { return &AmexParser{} }

func (p *AmexParser) Bank() string        { return "amex" }
func (p *AmexParser) Name() string        { return "AMEX" }
func (p *AmexParser) DisplayName() string { return "AMEX" }
func (p *AmexParser) FileTypes() []string { return []string{"xlsx", "xls"} }

func (p *AmexParser) Parse(data []byte) ([]domain.Transaction, error) {
	rows, err := sheetRows(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidFileFormat, err)
	}

	var transactions []domain.Transaction
	for i, row := range dataRows(rows) {
		if cellAt(row, 0) == "" {
			continue
		}
		tx, ok := p.parseRow(row, i)
		if !ok {
			continue
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

// dataRows skips everything up to and including the discovered header row.
func dataRows(rows [][]string) [][]string {
	for i, row := range rows {
		joined := strings.ToLower(strings.Join(row, " "))
		if containsAny(joined, amexHeaderTokens) {
			return rows[i+1:]
		}
	}
	return rows
}

func (p *AmexParser) parseRow(row []string, index int) (domain.Transaction, bool) {
	// Date in the first column, second column as fallback.
	dateCol := 0
	date, err := parseExcelDate(cellAt(row, dateCol))
	if err != nil {
		dateCol = 1
		date, err = parseExcelDate(cellAt(row, dateCol))
		if err != nil {
			return domain.Transaction{}, false
		}
	}

	// Amount expected in the third column ("Bedrag"), otherwise the first
	// cell that parses.
	amountCol := 2
	amount, err := parseExcelAmount(cellAt(row, amountCol))
	if err != nil {
		amountCol = -1
		for i := range row {
			if i == dateCol {
				continue
			}
			if a, aerr := parseExcelAmount(cellAt(row, i)); aerr == nil {
				amount, amountCol = a, i
				break
			}
		}
		if amountCol < 0 {
			log.Warnf("amex row %d: no parseable amount", index)
			return domain.Transaction{}, false
		}
	}

	description := ""
	for i := range row {
		if i == dateCol || i == amountCol {
			continue
		}
		cell := cellAt(row, i)
		if cell != "" && !looksLikeDateOrAmount(cell) && len(cell) > len(description) {
			description = cell
		}
	}
	if description == "" {
		description = fmt.Sprintf("AMEX Transaction %d", index+1)
	}

	amount, txType := p.applyPaymentLogic(amount, description)

	return domain.Transaction{
		Date:           date,
		Amount:         amount,
		Description:    description,
		CounterAccount: "AMEX",
		Reference:      fmt.Sprintf("AMEX-%s-%d", date.Format("20060102"), index+1),
		Type:           txType,
	}, true
}

// applyPaymentLogic forces payments to AMEX positive and everything else
// (purchases) negative.
func (p *AmexParser) applyPaymentLogic(amount decimal.Decimal, description string) (decimal.Decimal, domain.TransactionType) {
	if containsAny(description, amexPaymentKeywords) {
		return amount.Abs(), domain.TypeCredit
	}
	return amount.Abs().Neg(), domain.TypeCard
}

func looksLikeDateOrAmount(text string) bool {
	if !strings.ContainsAny(text, "0123456789") {
		return false
	}
	return strings.ContainsAny(text, ".,€$-/")
}

func (p *AmexParser) AccountInfo(data []byte) (domain.AccountInfo, error) {
	rows, err := sheetRows(data)
	if err != nil {
		return domain.AccountInfo{}, fmt.Errorf("%w: %v", domain.ErrInvalidFileFormat, err)
	}

	var dates []time.Time
	for _, row := range rows {
		for _, col := range []int{0, 1} {
			if d, err := parseExcelDate(cellAt(row, col)); err == nil {
				dates = append(dates, d)
				break
			}
		}
	}
	start, end := dateRange(dates)

	// AMEX does not use IBAN account numbers.
	return domain.AccountInfo{AccountNumber: "AMEX", StartDate: start, EndDate: end}, nil
}

func (p *AmexParser) Validate(data []byte) domain.ValidationResult {
	rows, err := sheetRows(data)
	if err != nil {
		return domain.ValidationResult{Valid: false, Error: "could not read Excel file, ensure it is a valid Excel format"}
	}
	if len(rows) == 0 {
		return domain.ValidationResult{Valid: false, Error: "Excel file is empty"}
	}

	for i, row := range dataRows(rows) {
		if cellAt(row, 0) == "" {
			continue
		}
		if _, ok := p.parseRow(row, i); ok {
			return domain.ValidationResult{
				Valid:    true,
				Message:  fmt.Sprintf("AMEX Excel file is valid with %d rows", len(rows)),
				RowCount: len(rows),
			}
		}
	}

	return domain.ValidationResult{
		Valid: false,
		Error: "no valid transactions found in AMEX Excel file, expected date in column 1 and amount in column 3",
	}
}
