package banks

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"statement-converter-service/internal/core/domain"
)

const rabobankLegacyDateLayout = "2-1-2006"

var rabobankLegacyColumns = []string{
	"Tegenrekening IBAN",
	"Transactiereferentie",
	"Datum",
	"Bedrag",
	"Omschrijving",
}

// RabobankLegacyParser reads the old semicolon-separated Rabobank credit
// card export (Dutch column names, DD-MM-YYYY dates).
type RabobankLegacyParser struct{}

func NewRabobankLegacyParser() *RabobankLegacyParser { return &RabobankLegacyParser{} }

func (p *RabobankLegacyParser) Bank() string        { return "rabobank_old" }
func (p *RabobankLegacyParser) Name() string        { return "Rabobank" }
func (p *RabobankLegacyParser) DisplayName() string { return "Rabobank (Old Format)" }
func (p *RabobankLegacyParser) FileTypes() []string { return []string{"csv"} }

func (p *RabobankLegacyParser) Parse(data []byte) ([]domain.Transaction, error) {
	t, err := readTable(data, ';')
	if err != nil {
		return nil, err
	}
	if missing := t.missing(rabobankLegacyColumns...); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", domain.ErrInvalidFileFormat, strings.Join(missing, ", "))
	}
	return applyRabobankRules(p.rawRows(t), p.classify), nil
}

func (p *RabobankLegacyParser) rawRows(t *table) []rabobankRow {
	var rows []rabobankRow
	for i, record := range t.rows {
		description := t.get(record, "Omschrijving")
		amountStr := t.get(record, "Bedrag")
		if description == "" || amountStr == "" {
			continue
		}

		date, err := parseDate(t.get(record, "Datum"), rabobankLegacyDateLayout)
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
			counterAccount: t.get(record, "Tegenrekening IBAN"),
			reference:      t.get(record, "Transactiereferentie"),
			date:           date,
			amount:         amount,
			description:    description,
		})
	}
	return rows
}

func (p *RabobankLegacyParser) classify(row rabobankRow) domain.TransactionType {
	description := strings.ToLower(row.description)
	if containsAny(description, []string{"betaalautomaat", "apple pay", "card", "pos"}) {
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

func (p *RabobankLegacyParser) AccountInfo(data []byte) (domain.AccountInfo, error) {
	t, err := readTable(data, ';')
	if err != nil {
		return domain.AccountInfo{}, err
	}
	if missing := t.missing(rabobankLegacyColumns...); len(missing) > 0 {
		return domain.AccountInfo{}, fmt.Errorf("%w: missing columns %s", domain.ErrInvalidFileFormat, strings.Join(missing, ", "))
	}

	accountNumber := ""
	if len(t.rows) > 0 {
		accountNumber = t.get(t.rows[0], "Tegenrekening IBAN")
	}

	var dates []time.Time
	for _, record := range t.rows {
		if d, err := parseDate(t.get(record, "Datum"), rabobankLegacyDateLayout); err == nil {
			dates = append(dates, d)
		}
	}
	start, end := dateRange(dates)

	return domain.AccountInfo{AccountNumber: accountNumber, StartDate: start, EndDate: end}, nil
}

func (p *RabobankLegacyParser) Validate(data []byte) domain.ValidationResult {
	return validateCSV(data, ';', rabobankLegacyColumns, func(t *table) []string {
		return checkRows(t, "Datum", "Bedrag", rabobankLegacyDateLayout)
	}, "Rabobank CSV")
}
