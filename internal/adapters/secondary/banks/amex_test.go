package banks

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"

	"statement-converter-service/internal/core/domain"
)

// buildSheet writes rows to a single-sheet workbook and returns the xlsx bytes.
func buildSheet(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		assert.NoError(t, err)
		assert.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	var buf bytes.Buffer
	assert.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func amexSheet(t *testing.T) []byte {
	return buildSheet(t, [][]interface{}{
		{"American Express", "", ""},
		{"Datum", "Omschrijving", "Bedrag"},
		{"15-01-2024", "ALBERT HEIJN 1376 AMSTERDAM", "49,99"},
		{"20-01-2024", "HARTELIJK BEDANKT VOOR UW BETALING", "500,00"},
		{"", "", ""},
	})
}

func TestAmexParser_Parse(t *testing.T) {
	p := NewAmexParser()

	txs, err := p.Parse(amexSheet(t))
	assert.NoError(t, err)
	assert.Len(t, txs, 2)

	// Purchases are forced negative
	assert.Equal(t, "-49.99", txs[0].Amount.String())
	assert.Equal(t, domain.TypeCard, txs[0].Type)
	assert.Equal(t, "ALBERT HEIJN 1376 AMSTERDAM", txs[0].Description)
	assert.Equal(t, "AMEX", txs[0].CounterAccount)
	assert.Equal(t, "AMEX-20240115-1", txs[0].Reference)

	// Payments are forced positive
	assert.Equal(t, "500", txs[1].Amount.String())
	assert.Equal(t, domain.TypeCredit, txs[1].Type)
}

func TestAmexParser_AmountFallbackColumn(t *testing.T) {
	p := NewAmexParser()

	// Amount in the second column instead of the third
	data := buildSheet(t, [][]interface{}{
		{"Date", "Amount", "Description"},
		{"15-01-2024", "€ 12,50", "COFFEE COMPANY"},
	})

	txs, err := p.Parse(data)
	assert.NoError(t, err)
	assert.Len(t, txs, 1)
	assert.Equal(t, "-12.5", txs[0].Amount.String())
	assert.Equal(t, "COFFEE COMPANY", txs[0].Description)
}

func TestAmexParser_InvalidFile(t *testing.T) {
	p := NewAmexParser()

	_, err := p.Parse([]byte("not an excel file"))
	assert.ErrorIs(t, err, domain.ErrInvalidFileFormat)
}

func TestAmexParser_AccountInfo(t *testing.T) {
	p := NewAmexParser()

	info, err := p.AccountInfo(amexSheet(t))
	assert.NoError(t, err)
	assert.Equal(t, "AMEX", info.AccountNumber)
	assert.Equal(t, 15, info.StartDate.Day())
	assert.Equal(t, 20, info.EndDate.Day())
}

func TestAmexParser_Validate(t *testing.T) {
	p := NewAmexParser()

	result := p.Validate(amexSheet(t))
	assert.True(t, result.Valid)

	result = p.Validate([]byte("garbage"))
	assert.False(t, result.Valid)

	noTx := buildSheet(t, [][]interface{}{
		{"Datum", "Omschrijving", "Bedrag"},
		{"no date here", "text", "also text"},
	})
	result = p.Validate(noTx)
	assert.False(t, result.Valid)
}

func TestParseExcelDate(t *testing.T) {
	d, err := parseExcelDate("15-01-2024")
	assert.NoError(t, err)
	assert.Equal(t, 15, d.Day())

	// Excel serial number for 2024-01-15
	d, err = parseExcelDate("45306")
	assert.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, 15, d.Day())

	_, err = parseExcelDate("")
	assert.Error(t, err)
}

func TestParseExcelAmount(t *testing.T) {
	a, err := parseExcelAmount("€ 1.234,56")
	assert.NoError(t, err)
	assert.Equal(t, "1234.56", a.String())

	_, err = parseExcelAmount("EUR")
	assert.Error(t, err)
}
