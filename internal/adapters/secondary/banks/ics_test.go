package banks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"statement-converter-service/internal/core/domain"
)

const icsTestCSV = `Transactiedatum;Omschrijving;Debit/Credit;Bedrag;Card nummer
1-2-2024;RESTAURANT DE KAS AMSTERDAM;D;45,00;****1234
3-2-2024;HOTEL BERLIN;D;1.250,75;****1234
5-2-2024;GEINCASSEERD VORIG SALDO;C;-890,50;****1234
`

func TestIcsParser_Parse(t *testing.T) {
	p := NewIcsParser()

	txs, err := p.Parse([]byte(icsTestCSV))
	assert.NoError(t, err)
	assert.Len(t, txs, 3)

	// Debit rows are flipped to negative
	assert.Equal(t, "-45", txs[0].Amount.String())
	assert.Equal(t, domain.TypeTransfer, txs[0].Type)
	assert.Equal(t, "50000000001", txs[0].Reference)
	assert.Equal(t, "NL00ICS000001234", txs[0].CounterAccount)

	// Thousands separator handled
	assert.Equal(t, "-1250.75", txs[1].Amount.String())
	assert.Equal(t, "50000000002", txs[1].Reference)

	// Settlement row: credit flipped to positive, fixed description
	assert.Equal(t, "890.5", txs[2].Amount.String())
	assert.Equal(t, domain.TypeCredit, txs[2].Type)
	assert.Equal(t, "Settlement previous statement", txs[2].Description)
	assert.Equal(t, "ICS****1234", txs[2].CounterAccount)
}

func TestIcsParser_UnknownIndicatorKeepsSign(t *testing.T) {
	p := NewIcsParser()

	csv := `Transactiedatum;Omschrijving;Debit/Credit;Bedrag;Card nummer
1-2-2024;Some booking;;12,00;****1234
`
	txs, err := p.Parse([]byte(csv))
	assert.NoError(t, err)
	assert.Len(t, txs, 1)
	assert.Equal(t, "12", txs[0].Amount.String())
	assert.Equal(t, domain.TypeTransfer, txs[0].Type)
}

func TestIcsParser_MissingColumns(t *testing.T) {
	p := NewIcsParser()

	_, err := p.Parse([]byte("Datum;Bedrag\n1-1-2024;5\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidFileFormat)
}

func TestIcsParser_AccountInfo(t *testing.T) {
	p := NewIcsParser()

	info, err := p.AccountInfo([]byte(icsTestCSV))
	assert.NoError(t, err)
	assert.Equal(t, "NL00ICS000001234", info.AccountNumber)
	assert.Equal(t, 1, info.StartDate.Day())
	assert.Equal(t, 5, info.EndDate.Day())
}

func TestIcsParser_Validate(t *testing.T) {
	p := NewIcsParser()

	result := p.Validate([]byte(icsTestCSV))
	assert.True(t, result.Valid)
	assert.Equal(t, 3, result.RowCount)

	badIndicator := `Transactiedatum;Omschrijving;Debit/Credit;Bedrag;Card nummer
1-2-2024;Some booking;X;12,00;****1234
`
	result = p.Validate([]byte(badIndicator))
	assert.False(t, result.Valid)
	assert.Contains(t, result.Error, "invalid Debit/Credit indicator")
}
