// Package parsers provides the CSV tokenizer used for directory ingestion.
//
// The tokenizer is lenient and never fails on malformed quoting:
//
//   - line endings are normalized to "\n" before scanning
//   - a bare double quote toggles quoted mode and is not emitted
//   - "" inside a quoted field emits a single literal quote
//   - a comma outside quotes ends the current cell (cells are trimmed)
//   - a newline outside quotes ends the row
//   - a row whose cells are all empty is dropped as a separator line
//
// Rows are positional: mappers address cells by index through Row.Field,
// which returns "" for short rows.
//
// Example usage:
//
//	file, _ := os.Open("members-2024.csv")
//	defer file.Close()
//	rows, err := parsers.ReadCSV(file)
//	if err != nil {
//	    log.Printf("CSV read error: %v", err)
//	}
//
//	for _, row := range rows[1:] {
//	    fmt.Println(row.Field(1), row.Field(2))
//	}
package parsers
