package banks

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"statement-converter-service/internal/core/domain"
)

// Keywords that trigger the Rabobank statement rules. Matching is
// case-insensitive substring matching on the description.
var (
	rabobankSurchargeKeywords  = []string{"koersopslag"}
	rabobankSettlementKeywords = []string{"verrekening vorig overzicht"}
	rabobankIgnoredKeywords    = []string{"monthly payment memo"}
)

// rabobankRow is one raw CSV row shared by the old and new export formats.
type rabobankRow struct {
	counterAccount string
	reference      string
	date           time.Time
	amount         decimal.Decimal
	description    string
}

// applyRabobankRules turns raw rows into transactions:
//   - an exchange-rate surcharge row ("koersopslag") is folded into the
//     preceding row when it has the same date and the next consecutive
//     reference; an unmatched surcharge row is dropped;
//   - a previous-statement settlement becomes a positive CREDIT transaction.
func applyRabobankRules(rows []rabobankRow, classify func(rabobankRow) domain.TransactionType) []domain.Transaction {
	transactions := make([]domain.Transaction, 0, len(rows))

	for i := 0; i < len(rows); i++ {
		row := rows[i]

		if containsAny(row.description, rabobankSurchargeKeywords) {
			continue
		}

		if containsAny(row.description, rabobankSettlementKeywords) {
			transactions = append(transactions, domain.Transaction{
				Date:           row.date,
				Amount:         row.amount.Abs(),
				Description:    "Settlement previous statement",
				CounterAccount: row.counterAccount,
				Reference:      row.reference,
				Type:           domain.TypeCredit,
			})
			continue
		}

		amount := row.amount
		description := row.description

		if i+1 < len(rows) &&
			containsAny(rows[i+1].description, rabobankSurchargeKeywords) &&
			surchargeBelongsTo(row, rows[i+1]) {
			amount = amount.Add(rows[i+1].amount)
			description += " (incl. exchange rate surcharge)"
			i++
		}

		transactions = append(transactions, domain.Transaction{
			Date:           row.date,
			Amount:         amount,
			Description:    description,
			CounterAccount: row.counterAccount,
			Reference:      row.reference,
			Type:           classify(row),
		})
	}

	return transactions
}

// surchargeBelongsTo reports whether the surcharge row is booked on the same
// day with the directly following transaction reference.
func surchargeBelongsTo(row, surcharge rabobankRow) bool {
	y1, m1, d1 := row.date.Date()
	y2, m2, d2 := surcharge.date.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return false
	}

	ref1, err1 := strconv.ParseInt(row.reference, 10, 64)
	ref2, err2 := strconv.ParseInt(surcharge.reference, 10, 64)
	if err1 != nil || err2 != nil {
		return false
	}
	return ref2 == ref1+1
}
