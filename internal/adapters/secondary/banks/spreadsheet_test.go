package banks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"statement-converter-service/internal/core/domain"
)

func spreadsheetFile(t *testing.T) []byte {
	return buildSheet(t, [][]interface{}{
		{"Datum", "Bedrag", "Omschrijving", "Tegenrekening", "Referentie"},
		{"10-01-2024", "-49,99", "Albert Heijn", "NL91ABNA0417164300", "AH-001"},
		{"15-01-2024", "1500,00", "Salaris", "NL20INGB0001234567", ""},
		{"20-01-2024", "-12,50", "Spotify", "", "SPOTIFY"},
	})
}

func TestSpreadsheetParser_Parse(t *testing.T) {
	p := NewSpreadsheetParser()

	txs, err := p.Parse(spreadsheetFile(t))
	assert.NoError(t, err)
	assert.Len(t, txs, 3)

	assert.Equal(t, "-49.99", txs[0].Amount.String())
	assert.Equal(t, "Albert Heijn", txs[0].Description)
	assert.Equal(t, "NL91ABNA0417164300", txs[0].CounterAccount)
	assert.Equal(t, "AH-001", txs[0].Reference)
	assert.Equal(t, domain.TypeTransfer, txs[0].Type)

	// Missing reference gets a generated one
	assert.Equal(t, "EXCEL_000001", txs[1].Reference)
	assert.Equal(t, domain.TypeCredit, txs[1].Type)
}

func TestSpreadsheetParser_SkipsIncompleteRows(t *testing.T) {
	p := NewSpreadsheetParser()

	data := buildSheet(t, [][]interface{}{
		{"Datum", "Bedrag", "Omschrijving", "Tegenrekening", "Referentie"},
		{"10-01-2024", "-49,99", "", "", ""},
		{"", "-10,00", "No date", "", ""},
		{"12-01-2024", "-10,00", "Valid", "", ""},
	})

	txs, err := p.Parse(data)
	assert.NoError(t, err)
	assert.Len(t, txs, 1)
	assert.Equal(t, "Valid", txs[0].Description)
}

func TestSpreadsheetParser_MissingColumns(t *testing.T) {
	p := NewSpreadsheetParser()

	data := buildSheet(t, [][]interface{}{
		{"Datum", "Bedrag"},
		{"10-01-2024", "-49,99"},
	})

	_, err := p.Parse(data)
	assert.ErrorIs(t, err, domain.ErrInvalidFileFormat)
}

func TestSpreadsheetParser_AccountInfo(t *testing.T) {
	p := NewSpreadsheetParser()

	info, err := p.AccountInfo(spreadsheetFile(t))
	assert.NoError(t, err)
	assert.Equal(t, "NL00BANK0000000000", info.AccountNumber)
	assert.Equal(t, 10, info.StartDate.Day())
	assert.Equal(t, 20, info.EndDate.Day())
}

func TestSpreadsheetParser_Validate(t *testing.T) {
	p := NewSpreadsheetParser()

	result := p.Validate(spreadsheetFile(t))
	assert.True(t, result.Valid)
	assert.Equal(t, 3, result.RowCount)

	headerOnly := buildSheet(t, [][]interface{}{
		{"Datum", "Bedrag", "Omschrijving", "Tegenrekening", "Referentie"},
	})
	result = p.Validate(headerOnly)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Error, "no transactions")
}

func TestTemplateGenerator_RoundTrip(t *testing.T) {
	g := NewTemplateGenerator()

	data, err := g.Generate()
	assert.NoError(t, err)
	assert.NotEmpty(t, data)

	// The generated template must validate and parse with the Excel parser
	p := NewSpreadsheetParser()
	result := p.Validate(data)
	assert.True(t, result.Valid)

	txs, err := p.Parse(data)
	assert.NoError(t, err)
	assert.Len(t, txs, 5)
}
