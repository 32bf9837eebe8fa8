package transfer

// Config tells the engine which sheet pair to reconcile and how the human
// headers map to logical fields. Everything here is data so the same engine
// can serve other sheet pairs.
type Config struct {
	SourceSheet string
	TargetSheet string

	// Logical field name -> expected header text, as authored in the sheet.
	SourceColumns map[string]string
	TargetColumns map[string]string

	// Read window for the initial full-grid snapshots.
	MaxRows int
	MaxCols int

	// Queued target rows that trigger an immediate flush.
	BatchSize int

	// Re-verify both header rows every N processed rows.
	HeaderCheckEvery int

	// Width of a built target row when the target map is empty.
	DefaultTargetWidth int

	// Initial value for the target status column.
	PendingStatus string

	// Layout for the server-assigned added_date cell.
	AddedDateFormat string
}

// DefaultConfig returns the production sheet pair: the free-form intake
// sheet filled by affected people and the normalized list volunteers work
// from.
func DefaultConfig() Config {
	return Config{
		SourceSheet: "დაზარალებულთა შევსებული ინფორმაცია",
		TargetSheet: "დაზარალებულთა სია",
		SourceColumns: map[string]string{
			"timestamp":      "Column 1",
			"name":           "სახელი, გვარი",
			"district":       "რაიონი",
			"village":        "სოფელი",
			"exact_location": "ზუსტი ადგილმდებარეობა",
			"phone":          "ტელეფონის ნომერი",
			"needs":          "რა სჭირდება?",
			"detailed_info":  "დეტალური ინფორმაცია",
			"last_contact":   "ბოლო კავშირი",
			"id":             "id",
			"added":          "added",
		},
		TargetColumns: map[string]string{
			"name":           "სახელი",
			"district":       "რაიონი",
			"village":        "სოფელი",
			"lat":            "lat",
			"lon":            "lon",
			"exact_location": "ზუსტი ადგილმდებარეობა",
			"phone":          "ტელეფონი",
			"needs":          "საჭიროება",
			"detailed_info":  "დეტალური ინფორმაცია",
			"priority":       "პრიორიტეტი",
			"added_date":     "დამატების თარიღი",
			"status":         "სტატუსი",
			"updates":        "განახლებები",
			"id":             "id",
		},
		MaxRows:            100000,
		MaxCols:            26,
		BatchSize:          100,
		HeaderCheckEvery:   10,
		DefaultTargetWidth: 14,
		PendingStatus:      "მომლოდინე",
		AddedDateFormat:    "01/02/2006 15:04:05",
	}
}

// transferFields are the logical fields copied from source to target when
// both column maps carry them.
var transferFields = []string{
	"name",
	"district",
	"village",
	"exact_location",
	"phone",
	"needs",
	"detailed_info",
}
