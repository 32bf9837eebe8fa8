package sheets

import "context"

// Port is the minimal sheet-access surface consumed by the transfer engine
// and the HTTP relay. The production implementation is *Client; tests supply
// in-memory fakes.
type Port interface {
	// ReadRange returns a snapshot of the cells in the range. Trailing
	// empty rows and cells are omitted, matching the Sheets API.
	ReadRange(ctx context.Context, r Range) ([][]interface{}, error)

	// AppendRows writes rows after the last populated row at or below the
	// range's start cell and returns the range actually written.
	AppendRows(ctx context.Context, r Range, rows [][]interface{}, valueInputOption string) (string, error)

	// BatchUpdate applies a set of disjoint range writes, keyed by absolute
	// A1 notation, in a single round trip. Returns total cells updated.
	BatchUpdate(ctx context.Context, updates map[string][][]interface{}) (int64, error)

	// SheetNames lists the sheet (tab) titles of the spreadsheet in order.
	SheetNames(ctx context.Context) ([]string, error)

	// ClearRange blanks the cells in the range and returns the cleared range.
	ClearRange(ctx context.Context, r Range) (string, error)
}
