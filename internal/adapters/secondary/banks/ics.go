package banks

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"statement-converter-service/internal/core/domain"
)

const (
	icsDateLayout     = "2-1-2006"
	icsReferenceBase  = 50000000000
	icsDefaultAccount = "NL00ICS0000000000"
)

var (
	icsColumns = []string{
		"Transactiedatum",
		"Omschrijving",
		"Debit/Credit",
		"Bedrag",
	}
	icsSettlementKeywords = []string{"geincasseerd vorig saldo", "verrekening vorig saldo"}
)

// IcsParser reads International Card Services CSV exports. ICS reports
// amounts from the card issuer's perspective, so both debit and credit rows
// have their sign flipped to match the statement convention.
type IcsParser struct{}

func NewIcsParser() *IcsParser { return &IcsParser{} }

func (p *IcsParser) Bank() string        { return "ics" }
func (p *IcsParser) Name() string        { return "ICS" }
func (p *IcsParser) DisplayName() string { return "ICS" }
func (p *IcsParser) FileTypes() []string { return []string{"csv"} }

func (p *IcsParser) Parse(data []byte) ([]domain.Transaction, error) {
	t, err := readTable(data, ';')
	if err != nil {
		return nil, err
	}
	if missing := t.missing(icsColumns...); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", domain.ErrInvalidFileFormat, strings.Join(missing, ", "))
	}

	var transactions []domain.Transaction
	seq := 0
	for i, record := range t.rows {
		description := t.get(record, "Omschrijving")
		amountStr := t.get(record, "Bedrag")
		if description == "" || amountStr == "" {
			continue
		}

		date, err := parseDate(t.get(record, "Transactiedatum"), icsDateLayout)
		if err != nil {
			log.Warnf("ics row %d: %v", i, err)
			continue
		}
		amount, err := parseAmount(amountStr)
		if err != nil {
			log.Warnf("ics row %d: invalid amount %q", i, amountStr)
			continue
		}

		indicator := strings.ToUpper(t.get(record, "Debit/Credit"))
		amount, txType := p.applySignLogic(amount, indicator)

		cardNumber := t.get(record, "Card nummer")
		seq++
		reference := fmt.Sprintf("%d", icsReferenceBase+seq)

		if containsAny(description, icsSettlementKeywords) {
			transactions = append(transactions, domain.Transaction{
				Date:           date,
				Amount:         amount,
				Description:    "Settlement previous statement",
				CounterAccount: "ICS" + cardNumber,
				Reference:      reference,
				Type:           domain.TypeCredit,
			})
			continue
		}

		transactions = append(transactions, domain.Transaction{
			Date:           date,
			Amount:         amount,
			Description:    description,
			CounterAccount: icsCounterAccount(cardNumber),
			Reference:      reference,
			Type:           txType,
		})
	}
	return transactions, nil
}

// applySignLogic negates the raw amount for both debit and credit rows;
// rows without a recognized indicator keep their sign.
func (p *IcsParser) applySignLogic(amount decimal.Decimal, indicator string) (decimal.Decimal, domain.TransactionType) {
	switch indicator {
	case "C":
		return amount.Neg(), domain.TypeCredit
	case "D":
		return amount.Neg(), domain.TypeTransfer
	default:
		return amount, domain.TypeTransfer
	}
}

// icsCounterAccount builds a pseudo-IBAN from the masked card number.
func icsCounterAccount(cardNumber string) string {
	return "NL00ICS0" + strings.ReplaceAll(cardNumber, "*", "0")
}

func (p *IcsParser) AccountInfo(data []byte) (domain.AccountInfo, error) {
	t, err := readTable(data, ';')
	if err != nil {
		return domain.AccountInfo{}, err
	}

	var dates []time.Time
	for _, record := range t.rows {
		if d, err := parseDate(t.get(record, "Transactiedatum"), icsDateLayout); err == nil {
			dates = append(dates, d)
		}
	}
	start, end := dateRange(dates)

	accountNumber := icsDefaultAccount
	for _, record := range t.rows {
		if card := t.get(record, "Card nummer"); card != "" {
			accountNumber = icsCounterAccount(card)
			break
		}
	}

	return domain.AccountInfo{AccountNumber: accountNumber, StartDate: start, EndDate: end}, nil
}

func (p *IcsParser) Validate(data []byte) domain.ValidationResult {
	return validateCSV(data, ';', icsColumns, func(t *table) []string {
		errs := checkRows(t, "Transactiedatum", "Bedrag", icsDateLayout)
		for i, record := range t.rows {
			if i >= 5 {
				break
			}
			indicator := strings.ToUpper(t.get(record, "Debit/Credit"))
			if indicator != "D" && indicator != "C" {
				errs = append(errs, fmt.Sprintf("invalid Debit/Credit indicator in row %d: %s", i, indicator))
			}
		}
		return errs
	}, "ICS CSV")
}
