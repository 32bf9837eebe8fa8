package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestA1Notation(t *testing.T) {
	r := Range{Sheet: "My Sheet", StartCell: "A1", EndCell: "Z100"}
	assert.Equal(t, "'My Sheet'!A1:Z100", r.A1Notation())

	single := Range{Sheet: "gps_logs", StartCell: "B7"}
	assert.Equal(t, "'gps_logs'!B7", single.A1Notation())
}

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		index    int
		expected string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, ColumnLetter(test.index), "index %d", test.index)
	}
}

func TestCellRef(t *testing.T) {
	assert.Equal(t, "'Intake'!A2", CellRef("Intake", 0, 2))
	assert.Equal(t, "'Intake'!K15", CellRef("Intake", 10, 15))
	assert.Equal(t, "'Intake'!AA1", CellRef("Intake", 26, 1))
}
