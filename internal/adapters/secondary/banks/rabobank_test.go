package banks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"statement-converter-service/internal/core/domain"
)

const rabobankNewCSV = `Counterpty IBAN,Transaction Reference,Date,Amount,Description
NL91RABO0123456789,1001,2024-03-01,-50.00,Card payment Amazon
NL91RABO0123456789,1002,2024-03-01,-1.25,Koersopslag
NL91RABO0123456789,1003,2024-03-05,250.00,Verrekening vorig overzicht
NL91RABO0123456789,1004,2024-03-06,-10.00,Monthly Payment Memo
NL91RABO0123456789,1005,2024-03-07,-9.99,Spotify subscription
`

func TestRabobankParser_Parse(t *testing.T) {
	p := NewRabobankParser()

	txs, err := p.Parse([]byte(rabobankNewCSV))
	assert.NoError(t, err)
	assert.Len(t, txs, 3)

	// Surcharge folded into the preceding card payment
	assert.Equal(t, "-51.25", txs[0].Amount.String())
	assert.Equal(t, "Card payment Amazon (incl. exchange rate surcharge)", txs[0].Description)
	assert.Equal(t, domain.TypeCard, txs[0].Type)
	assert.Equal(t, "1001", txs[0].Reference)

	// Settlement becomes a positive credit
	assert.Equal(t, "250", txs[1].Amount.String())
	assert.Equal(t, "Settlement previous statement", txs[1].Description)
	assert.Equal(t, domain.TypeCredit, txs[1].Type)

	// Memo row dropped, subscription classified as direct debit
	assert.Equal(t, "Spotify subscription", txs[2].Description)
	assert.Equal(t, domain.TypeDirectDebit, txs[2].Type)
}

func TestRabobankParser_SurchargeNotAdjacent(t *testing.T) {
	p := NewRabobankParser()

	// Different date: the surcharge cannot belong to the first row and is dropped
	csv := `Counterpty IBAN,Transaction Reference,Date,Amount,Description
NL91RABO0123456789,1001,2024-03-01,-50.00,Grocery store
NL91RABO0123456789,1002,2024-03-02,-1.25,Koersopslag
`
	txs, err := p.Parse([]byte(csv))
	assert.NoError(t, err)
	assert.Len(t, txs, 1)
	assert.Equal(t, "-50", txs[0].Amount.String())
	assert.Equal(t, "Grocery store", txs[0].Description)
}

func TestRabobankParser_SurchargeReferenceGap(t *testing.T) {
	p := NewRabobankParser()

	csv := `Counterpty IBAN,Transaction Reference,Date,Amount,Description
NL91RABO0123456789,1001,2024-03-01,-50.00,Grocery store
NL91RABO0123456789,1005,2024-03-01,-1.25,Koersopslag
`
	txs, err := p.Parse([]byte(csv))
	assert.NoError(t, err)
	assert.Len(t, txs, 1)
	assert.Equal(t, "-50", txs[0].Amount.String())
}

func TestRabobankParser_MissingColumns(t *testing.T) {
	p := NewRabobankParser()

	_, err := p.Parse([]byte("Foo,Bar\n1,2\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidFileFormat)
}

func TestRabobankParser_AccountInfo(t *testing.T) {
	p := NewRabobankParser()

	info, err := p.AccountInfo([]byte(rabobankNewCSV))
	assert.NoError(t, err)
	assert.Equal(t, "NL91RABO0123456789", info.AccountNumber)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), info.StartDate)
	assert.Equal(t, time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), info.EndDate)
}

func TestRabobankParser_Validate(t *testing.T) {
	p := NewRabobankParser()

	result := p.Validate([]byte(rabobankNewCSV))
	assert.True(t, result.Valid)
	assert.Equal(t, 5, result.RowCount)

	result = p.Validate([]byte("Foo,Bar\n1,2\n"))
	assert.False(t, result.Valid)
	assert.Contains(t, result.Error, "missing required columns")
}

const rabobankLegacyCSV = `Tegenrekening IBAN;Transactiereferentie;Datum;Bedrag;Omschrijving
NL91RABO0123456789;2001;1-3-2024;-108,50;Betaalautomaat Albert Heijn
NL91RABO0123456789;2002;1-3-2024;-2,10;Koersopslag
NL91RABO0123456789;2003;15-3-2024;500,00;Verrekening vorig overzicht
`

func TestRabobankLegacyParser_Parse(t *testing.T) {
	p := NewRabobankLegacyParser()

	txs, err := p.Parse([]byte(rabobankLegacyCSV))
	assert.NoError(t, err)
	assert.Len(t, txs, 2)

	assert.Equal(t, "-110.6", txs[0].Amount.String())
	assert.Equal(t, domain.TypeCard, txs[0].Type)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), txs[0].Date)

	assert.Equal(t, "500", txs[1].Amount.String())
	assert.Equal(t, domain.TypeCredit, txs[1].Type)
	assert.Equal(t, "Settlement previous statement", txs[1].Description)
}

func TestRabobankLegacyParser_Validate(t *testing.T) {
	p := NewRabobankLegacyParser()

	result := p.Validate([]byte(rabobankLegacyCSV))
	assert.True(t, result.Valid)

	badDates := `Tegenrekening IBAN;Transactiereferentie;Datum;Bedrag;Omschrijving
NL91RABO0123456789;2001;2024/03/01;-10,00;Test
`
	result = p.Validate([]byte(badDates))
	assert.False(t, result.Valid)
	assert.Contains(t, result.Error, "invalid date format")
}
