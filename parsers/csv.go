package parsers

import (
	"io"
	"strings"
)

// Row is a single CSV row as an ordered list of trimmed cells
type Row []string

// Field returns the cell at index, or "" when the row is shorter
func (r Row) Field(index int) string {
	if index < 0 || index >= len(r) {
		return ""
	}
	return r[index]
}

// ParseCSV tokenizes CSV text into rows of trimmed cells.
// Quoted fields may span lines and contain commas; a doubled quote inside a
// quoted field yields one literal quote. Rows whose cells are all empty are
// dropped. An unterminated quote is not an error: everything up to the end of
// input is read as quoted content.
func ParseCSV(text string) []Row {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var rows []Row
	var row Row
	var cell strings.Builder
	inQuotes := false

	endCell := func() {
		row = append(row, strings.TrimSpace(cell.String()))
		cell.Reset()
	}
	endRow := func() {
		if !isBlank(row) {
			rows = append(rows, row)
		}
		row = nil
	}

	for i := 0; i < len(text); i++ {
		ch := text[i]

		switch {
		case ch == '"':
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				cell.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			endCell()
		case ch == '\n' && !inQuotes:
			endCell()
			endRow()
		default:
			cell.WriteByte(ch)
		}
	}

	// Flush the trailing row when the input does not end with a newline
	if cell.Len() > 0 || len(row) > 0 {
		endCell()
		endRow()
	}

	return rows
}

// ReadCSV decodes the source bytes and tokenizes them
func ReadCSV(reader io.Reader) ([]Row, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	text, err := DecodeText(data)
	if err != nil {
		return nil, err
	}
	return ParseCSV(text), nil
}

func isBlank(row Row) bool {
	for _, value := range row {
		if value != "" {
			return false
		}
	}
	return true
}
