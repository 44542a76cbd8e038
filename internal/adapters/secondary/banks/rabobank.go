package banks

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"statement-converter-service/internal/core/domain"
)

const rabobankDateLayout = "2006-01-02"

var rabobankColumns = []string{
	"Counterpty IBAN",
	"Transaction Reference",
	"Date",
	"Amount",
	"Description",
}

// RabobankParser reads the new comma-separated Rabobank credit card export
// (English column names, ISO dates).
type RabobankParser struct{}

func NewRabobankParser() *RabobankParser { return &RabobankParser{} }

func (p *RabobankParser) Bank() string        { return "rabobank_new" }
func (p *RabobankParser) Name() string        { return "Rabobank" }
func (p *RabobankParser) DisplayName() string { return "Rabobank (New Format)" }
func (p *RabobankParser) FileTypes() []string { return []string{"csv"} }

func (p *RabobankParser) Parse(data []byte) ([]domain.Transaction, error) {
	t, err := readTable(data, ',')
	if err != nil {
		return nil, err
	}
	if missing := t.missing(rabobankColumns...); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", domain.ErrInvalidFileFormat, strings.Join(missing, ", "))
	}
	return applyRabobankRules(p.rawRows(t), p.classify), nil
}

func (p *RabobankParser) rawRows(t *table) []rabobankRow {
	var rows []rabobankRow
	for i, record := range t.rows {
		description := t.get(record, "Description")
		amountStr := t.get(record, "Amount")
		if description == "" || amountStr == "" {
			continue
		}

		date, err := parseDate(t.get(record, "Date"), rabobankDateLayout)
		if err != nil {
			log.Warnf("rabobank row %d: %v", i, err)
			continue
		}
		amount, err := parseAmount(amountStr)
		if err != nil {
			log.Warnf("rabobank row %d: invalid amount %q", i, amountStr)
			continue
		}

		if containsAny(description, rabobankIgnoredKeywords) {
			continue
		}

		rows = append(rows, rabobankRow{
			counterAccount: t.get(record, "Counterpty IBAN"),
			reference:      t.get(record, "Transaction Reference"),
			date:           date,
			amount:         amount,
			description:    description,
		})
	}
	return rows
}

func (p *RabobankParser) classify(row rabobankRow) domain.TransactionType {
	description := strings.ToLower(row.description)
	if containsAny(description, []string{"apple pay", "card", "pos"}) {
		return domain.TypeCard
	}
	if containsAny(description, []string{"incasso", "automatische", "subscription", "recurring"}) {
		return domain.TypeDirectDebit
	}
	if row.amount.IsPositive() {
		return domain.TypeCredit
	}
	return domain.TypeTransfer
}

func (p *RabobankParser) AccountInfo(data []byte) (domain.AccountInfo, error) {
	t, err := readTable(data, ',')
	if err != nil {
		return domain.AccountInfo{}, err
	}
	if missing := t.missing(rabobankColumns...); len(missing) > 0 {
		return domain.AccountInfo{}, fmt.Errorf("%w: missing columns %s", domain.ErrInvalidFileFormat, strings.Join(missing, ", "))
	}

	accountNumber := ""
	if len(t.rows) > 0 {
		accountNumber = t.get(t.rows[0], "Counterpty IBAN")
	}

	var dates []time.Time
	for _, record := range t.rows {
		if d, err := parseDate(t.get(record, "Date"), rabobankDateLayout); err == nil {
			dates = append(dates, d)
		}
	}
	start, end := dateRange(dates)

	return domain.AccountInfo{AccountNumber: accountNumber, StartDate: start, EndDate: end}, nil
}

func (p *RabobankParser) Validate(data []byte) domain.ValidationResult {
	return validateCSV(data, ',', rabobankColumns, func(t *table) []string {
		return checkRows(t, "Date", "Amount", rabobankDateLayout)
	}, "new format Rabobank CSV")
}
