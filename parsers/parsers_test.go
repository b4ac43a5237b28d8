package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV_ValidData(t *testing.T) {
	csvData := `id,last,first,phone
1,Brennan,Jimmy,212-737-0349
2,Brown,Daniel,212-879-8020`

	rows := ParseCSV(csvData)

	assert.Len(t, rows, 3, "Should parse header plus 2 rows")
	assert.Equal(t, Row{"id", "last", "first", "phone"}, rows[0])
	assert.Equal(t, Row{"1", "Brennan", "Jimmy", "212-737-0349"}, rows[1])
	assert.Equal(t, "Daniel", rows[2].Field(2))
}

func TestParseCSV_EmptyInput(t *testing.T) {
	assert.Len(t, ParseCSV(""), 0, "Empty input should produce no rows")
	assert.Len(t, ParseCSV("\n\n\r\n"), 0, "Blank lines should produce no rows")
}

func TestParseCSV_TrimsCells(t *testing.T) {
	rows := ParseCSV("  a  ,b ,  c\n")

	require.Len(t, rows, 1)
	assert.Equal(t, Row{"a", "b", "c"}, rows[0])
}

func TestParseCSV_WithCommasInValues(t *testing.T) {
	csvData := `id,name,description
1,"Smith, John","A person with comma in name"
2,Jane,"Description, with, commas"`

	rows := ParseCSV(csvData)

	require.Len(t, rows, 3)
	assert.Equal(t, "Smith, John", rows[1][1])
	assert.Equal(t, "A person with comma in name", rows[1][2])
	assert.Equal(t, "Description, with, commas", rows[2][2])
}

func TestParseCSV_DoubledQuotes(t *testing.T) {
	rows := ParseCSV(`"Premium ""quality"" item",x`)

	require.Len(t, rows, 1)
	assert.Equal(t, `Premium "quality" item`, rows[0][0])
	assert.Equal(t, "x", rows[0][1])
}

func TestParseCSV_MultilineQuotedField(t *testing.T) {
	csvData := "name,note\r\nCable,\"10-foot\r\nmulti-line description\"\r\nPlug,short\r\n"

	rows := ParseCSV(csvData)

	require.Len(t, rows, 3)
	assert.Equal(t, "10-foot\nmulti-line description", rows[1][1])
	assert.Equal(t, Row{"Plug", "short"}, rows[2])
}

func TestParseCSV_BareCarriageReturns(t *testing.T) {
	rows := ParseCSV("a,b\rc,d\r")

	require.Len(t, rows, 2)
	assert.Equal(t, Row{"c", "d"}, rows[1])
}

func TestParseCSV_DropsBlankRows(t *testing.T) {
	csvData := "a,b\n,,\n , \nc,d\n"

	rows := ParseCSV(csvData)

	require.Len(t, rows, 2, "Rows of empty cells are separators")
	assert.Equal(t, Row{"a", "b"}, rows[0])
	assert.Equal(t, Row{"c", "d"}, rows[1])
}

func TestParseCSV_KeepsRowsWithSomeEmptyCells(t *testing.T) {
	rows := ParseCSV(",,x\n")

	require.Len(t, rows, 1)
	assert.Equal(t, Row{"", "", "x"}, rows[0])
}

func TestParseCSV_UnterminatedQuoteIsLenient(t *testing.T) {
	csvData := "a,b\n\"open,never closed\nmore,text"

	rows := ParseCSV(csvData)

	require.Len(t, rows, 2)
	assert.Equal(t, Row{"a", "b"}, rows[0])
	assert.Equal(t, Row{"open,never closed\nmore,text"}, rows[1])
}

func TestParseCSV_BareQuoteTogglesMidField(t *testing.T) {
	rows := ParseCSV(`ab"c,d"e,f`)

	require.Len(t, rows, 1)
	assert.Equal(t, Row{"abc,de", "f"}, rows[0])
}

func TestRow_Field(t *testing.T) {
	row := Row{"a", "b"}

	assert.Equal(t, "a", row.Field(0))
	assert.Equal(t, "b", row.Field(1))
	assert.Equal(t, "", row.Field(2))
	assert.Equal(t, "", row.Field(-1))
}

func TestParseCSV_ReparseIsStable(t *testing.T) {
	csvData := "id,name,note\n1,\"Smith, John\",\"said \"\"hi\"\"\"\n2,Jane,\"two\nlines\"\n"

	first := ParseCSV(csvData)

	var lines []string
	for _, row := range first {
		cells := make([]string, len(row))
		for i, cell := range row {
			if strings.ContainsAny(cell, ",\"\n") {
				cell = `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
			}
			cells[i] = cell
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	second := ParseCSV(strings.Join(lines, "\n"))

	assert.Equal(t, first, second)
}

func TestReadCSV_StripsBOM(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader("\xef\xbb\xbfid,name\n1,x\n"))

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "id", rows[0][0])
}

func TestReadCSV_Windows1252Fallback(t *testing.T) {
	// "Caf\xe9" is "Café" in Windows-1252 and invalid UTF-8
	rows, err := ReadCSV(strings.NewReader("name\nCaf\xe9 O\x92Brien\n"))

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Café O’Brien", rows[1][0])
}
