package server

import (
	"time"

	"github.com/foige/moxalise-api/internal/sheets"
)

// RangeRequest names a rectangular block of cells in request payloads.
type RangeRequest struct {
	SheetName string `json:"sheet_name"`
	StartCell string `json:"start_cell"`
	EndCell   string `json:"end_cell,omitempty"`
}

func (r RangeRequest) toRange() sheets.Range {
	return sheets.Range{Sheet: r.SheetName, StartCell: r.StartCell, EndCell: r.EndCell}
}

// SheetData is the read response: the resolved range plus its cell values.
type SheetData struct {
	Range  string          `json:"range"`
	Values [][]interface{} `json:"values"`
}

type UpdateRequest struct {
	Range            RangeRequest    `json:"range"`
	Values           [][]interface{} `json:"values"`
	ValueInputOption string          `json:"value_input_option,omitempty"`
}

type UpdateResponse struct {
	UpdatedCells int64  `json:"updated_cells"`
	UpdatedRange string `json:"updated_range"`
}

type AppendRequest struct {
	Range            RangeRequest    `json:"range"`
	Values           [][]interface{} `json:"values"`
	ValueInputOption string          `json:"value_input_option,omitempty"`
}

type AppendResponse struct {
	AppendedRows  int    `json:"appended_rows"`
	AppendedRange string `json:"appended_range"`
}

// LocationData carries a browser geolocation fix submitted by the relay's
// public form.
type LocationData struct {
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	Accuracy         float64  `json:"accuracy"`
	Altitude         *float64 `json:"altitude,omitempty"`
	AltitudeAccuracy *float64 `json:"altitude_accuracy,omitempty"`
	Heading          *float64 `json:"heading,omitempty"`
	Speed            *float64 `json:"speed,omitempty"`
	PhoneNumber      string   `json:"phone_number"`
	Message          string   `json:"message,omitempty"`
}

type LocationResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error string `json:"error"`
}
