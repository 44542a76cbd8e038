// Package mt940 renders account statements as SWIFT MT940 customer
// statement messages.
package mt940

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"statement-converter-service/internal/core/domain"
)

const descriptionLimit = 35

type Formatter struct{}

func NewFormatter() *Formatter { return &Formatter{} }

func (f *Formatter) ContentType() string   { return "text/plain; charset=utf-8" }
func (f *Formatter) FileExtension() string { return "txt" }

// Format renders the statement with fields :20:, :25:, :28C:, :60F:, one
// :61:/:86: pair per transaction, and :62F:.
func (f *Formatter) Format(stmt *domain.AccountStatement) (string, error) {
	date := stmt.Date
	if date.IsZero() {
		date = time.Now()
	}

	var lines []string
	lines = append(lines,
		":20:"+stmt.StatementNumber,
		":25:"+stmt.AccountNumber,
		":28C:"+stmt.StatementNumber,
		formatBalance("60F", stmt.OpeningBalance, stmt.Currency, date),
	)

	ref := 1
	for _, tx := range stmt.Transactions {
		lines = append(lines, formatTransaction(tx, ref), formatInfo(tx))
		ref++
	}

	lines = append(lines, formatBalance("62F", stmt.ClosingBalance, stmt.Currency, date))

	return strings.Join(lines, "\n"), nil
}

// formatBalance encodes C/D indicator, YYMMDD, currency and the absolute
// amount with the decimal point removed.
func formatBalance(field string, amount decimal.Decimal, currency string, date time.Time) string {
	return fmt.Sprintf(":%s:%s%s%s%s", field, creditDebit(amount), date.Format("060102"), currency, plainAmount(amount))
}

func formatTransaction(tx domain.Transaction, ref int) string {
	txType := tx.Type
	if txType == "" {
		txType = domain.TypeNonSwift
	}
	return fmt.Sprintf(":61:%s%s%s%s%010d", tx.Date.Format("060102"), creditDebit(tx.Amount), plainAmount(tx.Amount), txType, ref)
}

func formatInfo(tx domain.Transaction) string {
	var parts []string
	if tx.Description != "" {
		parts = append(parts, truncate(tx.Description, descriptionLimit))
	}
	if tx.CounterAccount != "" {
		parts = append(parts, "IBAN:"+tx.CounterAccount)
	}
	if tx.Reference != "" {
		parts = append(parts, "REF:"+tx.Reference)
	}
	return ":86:" + strings.Join(parts, " ")
}

func creditDebit(amount decimal.Decimal) string {
	if amount.Sign() < 0 {
		return "D"
	}
	return "C"
}

// plainAmount renders the absolute amount with two decimals and no
// separator, e.g. 108.00 -> "10800".
func plainAmount(amount decimal.Decimal) string {
	return strings.Replace(amount.Abs().StringFixed(2), ".", "", 1)
}

// truncate caps s at limit characters, never splitting a multi-byte rune.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
