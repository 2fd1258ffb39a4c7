package sheet

import (
	"fmt"
	"regexp"
	"strings"
)

var spreadsheetURLPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

// ExtractID pulls the spreadsheet identifier out of a full sheet URL, or
// returns the input verbatim when it already looks like a bare ID.
func ExtractID(urlOrID string) string {
	trimmed := strings.TrimSpace(urlOrID)
	if m := spreadsheetURLPattern.FindStringSubmatch(trimmed); m != nil {
		return m[1]
	}
	return trimmed
}

// ColumnLetter converts a 0-based column index to its A1 letter form
// (0 -> A, 25 -> Z, 26 -> AA).
func ColumnLetter(index int) string {
	letters := ""
	for index >= 0 {
		letters = string(rune('A'+index%26)) + letters
		index = index/26 - 1
	}
	return letters
}

// CellRange encodes a single-cell A1 range, e.g. Leads!C2. The row is the
// 1-based sheet row, header included.
func CellRange(sheetName string, column, row int) string {
	return fmt.Sprintf("%s!%s%d", sheetName, ColumnLetter(column), row)
}

// RowRange encodes the full data range of a sheet tab.
func RowRange(sheetName string) string {
	return sheetName
}
