package transfer

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
)

// shortHash returns the first 8 hex characters of the SHA-1 of data, the way
// git abbreviates commit hashes. 32 bits is plenty for de-duplication at
// this scale; these are not security tokens.
func shortHash(data string) string {
	sum := sha1.Sum([]byte(data))
	return hex.EncodeToString(sum[:])[:8]
}

// cellString renders the cell at index as a string, tolerating short rows
// and nil cells.
func cellString(row []interface{}, index int) string {
	if index >= 0 && len(row) > index && row[index] != nil {
		return fmt.Sprintf("%v", row[index])
	}
	return ""
}

// fieldAt reads the named field from the row, falling back to defaultIndex
// when the column map has no entry for it.
func fieldAt(row []interface{}, columns map[string]int, field string, defaultIndex int) string {
	index, ok := columns[field]
	if !ok {
		index = defaultIndex
	}
	return cellString(row, index)
}

// GenerateRowID returns the row's identifier. A populated id cell is
// returned verbatim, so an identifier never changes once assigned.
// Otherwise the identifier is content-addressed: hashed from the row's
// name, district and village, plus phone and exact location when present.
// The timestamp only enters the hash when neither phone nor exact location
// does, to separate otherwise-identical entries. Re-deriving from the same
// content yields the same identifier, which is what makes interrupted runs
// resumable.
func GenerateRowID(row []interface{}, columns map[string]int) string {
	if idIndex, ok := columns["id"]; ok {
		if existing := cellString(row, idIndex); existing != "" {
			return existing
		}
	}

	name := fieldAt(row, columns, "name", 1)
	district := fieldAt(row, columns, "district", 2)
	village := fieldAt(row, columns, "village", 3)

	phone := ""
	if _, ok := columns["phone"]; ok {
		phone = fieldAt(row, columns, "phone", 0)
	}
	exactLocation := ""
	if _, ok := columns["exact_location"]; ok {
		exactLocation = fieldAt(row, columns, "exact_location", 0)
	}
	timestamp := fieldAt(row, columns, "timestamp", 0)

	components := []string{name, district, village}
	if phone != "" {
		components = append(components, phone)
	}
	if exactLocation != "" {
		components = append(components, exactLocation)
	}
	if phone == "" && exactLocation == "" && timestamp != "" {
		components = append(components, timestamp)
	}

	return shortHash(strings.Join(components, "|"))
}
