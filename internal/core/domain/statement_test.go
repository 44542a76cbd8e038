package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	txs := []Transaction{
		{Amount: decimal.RequireFromString("-49.99")},
		{Amount: decimal.RequireFromString("1500.00")},
		{Amount: decimal.Zero},
	}

	s := Summarize("NL20INGB0001234567", start, end, txs)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, "1500", s.TotalCredits.String())
	assert.Equal(t, "-49.99", s.TotalDebits.String())
	assert.Equal(t, "1450.01", s.NetTotal.String())
	assert.Equal(t, start, s.StartDate)
	assert.Equal(t, end, s.EndDate)
}

func TestClosingBalance(t *testing.T) {
	opening := decimal.RequireFromString("250.00")
	txs := []Transaction{
		{Amount: decimal.RequireFromString("-49.99")},
		{Amount: decimal.RequireFromString("1500.00")},
	}

	assert.Equal(t, "1700.01", ClosingBalance(opening, txs).String())
	assert.Equal(t, "250", ClosingBalance(opening, nil).String())
}
