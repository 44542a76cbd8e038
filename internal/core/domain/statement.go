package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a booked transaction. The zero value is not
// valid; parsers default to TypeNonSwift.
type TransactionType string

const (
	TypeNonSwift    TransactionType = "NMSC"
	TypeCard        TransactionType = "CARD"
	TypeTransfer    TransactionType = "TRANSFER"
	TypeDirectDebit TransactionType = "DIRECT_DEBIT"
	TypeCredit      TransactionType = "CREDIT"
)

// Transaction is a single booked credit-card transaction. Amount is signed:
// purchases are negative, payments and settlements positive.
type Transaction struct {
	Date           time.Time
	Amount         decimal.Decimal
	Description    string
	CounterAccount string
	Reference      string
	Type           TransactionType
}

// AccountStatement is the unit handed to formatters.
type AccountStatement struct {
	AccountNumber   string
	StatementNumber string
	OpeningBalance  decimal.Decimal
	ClosingBalance  decimal.Decimal
	Currency        string
	Date            time.Time
	Transactions    []Transaction
}

// AccountInfo is what a parser can tell about a file without converting it.
type AccountInfo struct {
	AccountNumber string
	StartDate     time.Time
	EndDate       time.Time
}

// Summary aggregates a parsed file for preview purposes.
type Summary struct {
	AccountNumber string
	StartDate     time.Time
	EndDate       time.Time
	Count         int
	TotalCredits  decimal.Decimal
	TotalDebits   decimal.Decimal
	NetTotal      decimal.Decimal
	Transactions  []Transaction
}

// ValidationResult reports whether a file matches the selected bank format.
// Error is set when Valid is false; Message when it is true.
type ValidationResult struct {
	Valid    bool
	Message  string
	Error    string
	Columns  []string
	RowCount int
}

// BankInfo describes one supported bank in the catalog.
type BankInfo struct {
	Key         string
	Name        string
	DisplayName string
	FileTypes   []string
}

// Summarize computes totals over a set of parsed transactions.
func Summarize(accountNumber string, start, end time.Time, transactions []Transaction) *Summary {
	credits := decimal.Zero
	debits := decimal.Zero
	for _, t := range transactions {
		if t.Amount.IsPositive() {
			credits = credits.Add(t.Amount)
		} else if t.Amount.IsNegative() {
			debits = debits.Add(t.Amount)
		}
	}
	return &Summary{
		AccountNumber: accountNumber,
		StartDate:     start,
		EndDate:       end,
		Count:         len(transactions),
		TotalCredits:  credits,
		TotalDebits:   debits,
		NetTotal:      credits.Add(debits),
		Transactions:  transactions,
	}
}

// ClosingBalance is the opening balance plus all transaction amounts.
func ClosingBalance(opening decimal.Decimal, transactions []Transaction) decimal.Decimal {
	total := opening
	for _, t := range transactions {
		total = total.Add(t.Amount)
	}
	return total
}
