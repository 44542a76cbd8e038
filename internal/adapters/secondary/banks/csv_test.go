package banks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"11,99", "11.99"},
		{"-108", "-108"},
		{"1.234,56", "1234.56"},
		{"-1.234,56", "-1234.56"},
		{"50.00", "50"},
		{" 12,50 ", "12.5"},
	}
	for _, c := range cases {
		got, err := parseAmount(c.in)
		assert.NoError(t, err, c.in)
		assert.Equal(t, c.want, got.String(), c.in)
	}

	_, err := parseAmount("abc")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("5-3-2024", "2-1-2006")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), d)

	d, err = parseDate("2024-03-05", "2006-01-02")
	assert.NoError(t, err)
	assert.Equal(t, 5, d.Day())

	_, err = parseDate("not a date", "2006-01-02")
	assert.Error(t, err)
}

func TestDecodeText_BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Datum;Bedrag")...)
	assert.Equal(t, []byte("Datum;Bedrag"), decodeText(data))
}

func TestDecodeText_Windows1252(t *testing.T) {
	// "café" encoded as cp1252, 0xE9 is invalid utf-8 on its own
	data := []byte{'c', 'a', 'f', 0xE9}
	assert.Equal(t, "café", string(decodeText(data)))
}

func TestReadTable(t *testing.T) {
	tbl, err := readTable([]byte("\ufeffA;B\n1;2\n3;4\n"), ';')
	assert.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, tbl.columns)
	assert.Len(t, tbl.rows, 2)
	assert.Equal(t, "2", tbl.get(tbl.rows[0], "B"))
	assert.Equal(t, "", tbl.get(tbl.rows[0], "C"))
	assert.Equal(t, []string{"C"}, tbl.missing("A", "C"))
}

func TestReadTable_Empty(t *testing.T) {
	_, err := readTable(nil, ';')
	assert.Error(t, err)
}

func TestDateRange(t *testing.T) {
	a := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	c := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	start, end := dateRange([]time.Time{a, b, c})
	assert.Equal(t, b, start)
	assert.Equal(t, c, end)
}
