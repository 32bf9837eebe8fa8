package sheets

import "fmt"

// Range identifies a rectangular block of cells within a named sheet.
// EndCell is optional; a Range with only a StartCell addresses a single
// cell, or acts as an insertion hint for appends.
type Range struct {
	Sheet     string
	StartCell string
	EndCell   string
}

// A1Notation renders the range in the quoted form the Sheets API expects,
// e.g. "'My Sheet'!A1:Z100".
func (r Range) A1Notation() string {
	if r.EndCell != "" {
		return fmt.Sprintf("'%s'!%s:%s", r.Sheet, r.StartCell, r.EndCell)
	}
	return fmt.Sprintf("'%s'!%s", r.Sheet, r.StartCell)
}

// ColumnLetter converts a zero-based column index to its spreadsheet letter
// form: 0 -> "A", 25 -> "Z", 26 -> "AA", 701 -> "ZZ".
func ColumnLetter(index int) string {
	letters := ""
	for index >= 0 {
		letters = string(rune('A'+index%26)) + letters
		index = index/26 - 1
	}
	return letters
}

// CellRef builds an absolute single-cell reference like "'My Sheet'!B7".
// rowNum is 1-based, colIndex is zero-based.
func CellRef(sheet string, colIndex, rowNum int) string {
	return fmt.Sprintf("'%s'!%s%d", sheet, ColumnLetter(colIndex), rowNum)
}
