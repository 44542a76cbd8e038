package banks

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"statement-converter-service/internal/core/domain"
)

const ingDateLayout = "2006-01-02"

var ingColumns = []string{
	"Accountnummer",
	"Kaartnummer",
	"Naam op kaart",
	"Transactiedatum",
	"Boekingsdatum",
	"Omschrijving",
	"Bedrag in EUR",
}

// IngParser reads ING credit card CSV exports. ING rows map 1:1 to
// transactions, no merging rules apply.
type IngParser struct{}

func NewIngParser() *IngParser { return &IngParser{} }

func (p *IngParser) Bank() string        { return "ing" }
func (p *IngParser) Name() string        { return "ING" }
func (p *IngParser) DisplayName() string { return "ING" }
func (p *IngParser) FileTypes() []string { return []string{"csv"} }

func (p *IngParser) Parse(data []byte) ([]domain.Transaction, error) {
	t, err := readTable(data, ',')
	if err != nil {
		return nil, err
	}
	if missing := t.missing(ingColumns...); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", domain.ErrInvalidFileFormat, strings.Join(missing, ", "))
	}

	var transactions []domain.Transaction
	for i, record := range t.rows {
		description := t.get(record, "Omschrijving")
		amountStr := t.get(record, "Bedrag in EUR")
		if description == "" || amountStr == "" {
			continue
		}

		date, err := parseDate(t.get(record, "Transactiedatum"), ingDateLayout)
		if err != nil {
			log.Warnf("ing row %d: %v", i, err)
			continue
		}
		amount, err := parseAmount(amountStr)
		if err != nil {
			log.Warnf("ing row %d: invalid amount %q", i, amountStr)
			continue
		}

		transactions = append(transactions, domain.Transaction{
			Date:           date,
			Amount:         amount,
			Description:    description,
			CounterAccount: t.get(record, "Accountnummer"),
			// ING does not provide a transaction reference.
			Reference: fmt.Sprintf("ING_%06d", i),
			Type:      p.classify(description, amount.IsPositive()),
		})
	}
	return transactions, nil
}

func (p *IngParser) classify(description string, positive bool) domain.TransactionType {
	if positive {
		return domain.TypeCredit
	}
	description = strings.ToLower(description)
	if containsAny(description, []string{"betaalautomaat", "apple pay", "card", "pos"}) {
		return domain.TypeCard
	}
	return domain.TypeTransfer
}

func (p *IngParser) AccountInfo(data []byte) (domain.AccountInfo, error) {
	t, err := readTable(data, ',')
	if err != nil {
		return domain.AccountInfo{}, err
	}
	if missing := t.missing(ingColumns...); len(missing) > 0 {
		return domain.AccountInfo{}, fmt.Errorf("%w: missing columns %s", domain.ErrInvalidFileFormat, strings.Join(missing, ", "))
	}

	accountNumber := ""
	if len(t.rows) > 0 {
		accountNumber = t.get(t.rows[0], "Accountnummer")
	}

	var dates []time.Time
	for _, record := range t.rows {
		if d, err := parseDate(t.get(record, "Transactiedatum"), ingDateLayout); err == nil {
			dates = append(dates, d)
		}
	}
	start, end := dateRange(dates)

	return domain.AccountInfo{AccountNumber: accountNumber, StartDate: start, EndDate: end}, nil
}

func (p *IngParser) Validate(data []byte) domain.ValidationResult {
	return validateCSV(data, ',', ingColumns, func(t *table) []string {
		return checkRows(t, "Transactiedatum", "Bedrag in EUR", ingDateLayout)
	}, "ING CSV")
}
