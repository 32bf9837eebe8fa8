package transfer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/foige/moxalise-api/internal/metrics"
	"github.com/foige/moxalise-api/internal/sheets"
	"github.com/foige/moxalise-api/internal/transfer/runctx"
)

// Engine incrementally migrates rows from the intake sheet to the
// normalized sheet. The spreadsheet itself is the only durable state: the
// per-row id cells and added flags written back to the source sheet are the
// idempotency ledger that lets many short runs make progress together.
type Engine struct {
	port sheets.Port
	cfg  Config
}

// Stats summarizes one transfer pass.
type Stats struct {
	RowsScanned     int
	RowsTransferred int
	Flushes         int
}

func NewEngine(port sheets.Port, cfg Config) *Engine {
	return &Engine{port: port, cfg: cfg}
}

// Run executes one transfer pass. Partial progress is valid and expected;
// the job is scheduled repeatedly and picks up where the flags left off.
// Header drift aborts the pass after flushing what is already queued.
func (e *Engine) Run(ctx context.Context, rc *runctx.RunContext) (Stats, error) {
	var stats Stats
	started := time.Now()
	defer func() {
		metrics.ObserveTransferRun(stats.RowsScanned, stats.RowsTransferred, time.Since(started))
	}()

	readWindow := sheets.ColumnLetter(e.cfg.MaxCols-1) + strconv.Itoa(e.cfg.MaxRows)

	sourceData, err := e.port.ReadRange(ctx, sheets.Range{
		Sheet: e.cfg.SourceSheet, StartCell: "A1", EndCell: readWindow,
	})
	if err != nil {
		return stats, fmt.Errorf("reading source sheet: %w", err)
	}
	if len(sourceData) == 0 {
		log.Warn().Str("sheet", e.cfg.SourceSheet).Msg("No data found in source sheet")
		return stats, nil
	}

	sourceHeaders := headerRow(sourceData[0])
	sourceCols := MapColumns(sourceHeaders, e.cfg.SourceColumns)

	targetData, err := e.port.ReadRange(ctx, sheets.Range{
		Sheet: e.cfg.TargetSheet, StartCell: "A1", EndCell: readWindow,
	})
	if err != nil {
		return stats, fmt.Errorf("reading target sheet: %w", err)
	}
	if len(targetData) == 0 {
		log.Warn().Str("sheet", e.cfg.TargetSheet).Msg("No data found in target sheet")
		return stats, nil
	}

	targetHeaders := headerRow(targetData[0])
	targetCols := MapColumns(targetHeaders, e.cfg.TargetColumns)

	targetWidth := e.cfg.DefaultTargetWidth
	if len(targetCols) > 0 {
		maxIndex := 0
		for _, index := range targetCols {
			if index > maxIndex {
				maxIndex = index
			}
		}
		targetWidth = maxIndex + 1
	}

	// Insertion point for appends, advanced only from this single read.
	// External appenders to the target sheet mid-run are assumed absent.
	nextRow := len(targetData) + 1

	var rowsToAppend [][]interface{}
	cellWrites := make(map[string][][]interface{})

	flush := func() error {
		if len(rowsToAppend) == 0 && len(cellWrites) == 0 {
			return nil
		}
		stats.Flushes++

		if len(rowsToAppend) > 0 {
			log.Info().Int("row", nextRow).Msg("Appending at row")
			appendedRange, err := e.port.AppendRows(ctx, sheets.Range{
				Sheet: e.cfg.TargetSheet, StartCell: "A" + strconv.Itoa(nextRow),
			}, rowsToAppend, "USER_ENTERED")
			if err != nil {
				return fmt.Errorf("appending rows to target sheet: %w", err)
			}
			log.Info().
				Int("rows", len(rowsToAppend)).
				Str("range", appendedRange).
				Msg("Batch appended rows to target sheet")
			stats.RowsTransferred += len(rowsToAppend)
			nextRow += len(rowsToAppend)
			rowsToAppend = nil
		}

		if len(cellWrites) > 0 {
			updated, err := e.port.BatchUpdate(ctx, cellWrites)
			if err != nil {
				return fmt.Errorf("batch updating source sheet: %w", err)
			}
			log.Info().Int64("cells", updated).Msg("Batch updated cells in source sheet")
			cellWrites = make(map[string][][]interface{})
		}
		return nil
	}

	for i := 1; i < len(sourceData); i++ {
		if rc.ShouldStop(ctx) && stats.RowsScanned > 0 {
			log.Info().
				Int("rows_processed", stats.RowsScanned).
				Msg("Exiting due to time limit, flushing pending batch")
			if err := flush(); err != nil {
				return stats, err
			}
			break
		}

		stats.RowsScanned++
		row := sourceData[i]

		if addedIndex, ok := sourceCols["added"]; ok {
			if strings.EqualFold(strings.TrimSpace(cellString(row, addedIndex)), "TRUE") {
				continue
			}
		}

		// Concurrent structural edits would silently scramble the column
		// mapping, so re-verify both header rows periodically and abort
		// rather than risk corrupting either sheet.
		if stats.RowsScanned%e.cfg.HeaderCheckEvery == 0 {
			sourceOK := e.verifyHeaders(ctx, e.cfg.SourceSheet, sourceHeaders)
			targetOK := e.verifyHeaders(ctx, e.cfg.TargetSheet, targetHeaders)
			if !sourceOK || !targetOK {
				log.Error().Msg("Headers changed during processing, aborting to prevent data corruption")
				if err := flush(); err != nil {
					return stats, err
				}
				break
			}
		}

		hadExistingID := false
		if idIndex, ok := sourceCols["id"]; ok {
			hadExistingID = cellString(row, idIndex) != ""
		}

		rowID := GenerateRowID(row, sourceCols)

		if idIndex, ok := sourceCols["id"]; ok && !hadExistingID {
			cellWrites[sheets.CellRef(e.cfg.SourceSheet, idIndex, i+1)] = [][]interface{}{{rowID}}

			// Patch the in-memory copy so field mapping below sees the id.
			for len(row) <= idIndex {
				row = append(row, "")
			}
			row[idIndex] = rowID
			sourceData[i] = row
		}

		targetRow := make([]interface{}, targetWidth)
		for j := range targetRow {
			targetRow[j] = ""
		}

		for _, field := range transferFields {
			sourceIndex, inSource := sourceCols[field]
			targetIndex, inTarget := targetCols[field]
			if inSource && inTarget && len(row) > sourceIndex {
				targetRow[targetIndex] = row[sourceIndex]
			}
		}

		if index, ok := targetCols["added_date"]; ok {
			targetRow[index] = time.Now().Format(e.cfg.AddedDateFormat)
		}
		if index, ok := targetCols["status"]; ok {
			targetRow[index] = e.cfg.PendingStatus
		}
		if index, ok := targetCols["id"]; ok {
			targetRow[index] = rowID
		}

		rowsToAppend = append(rowsToAppend, targetRow)

		if addedIndex, ok := sourceCols["added"]; ok {
			cellWrites[sheets.CellRef(e.cfg.SourceSheet, addedIndex, i+1)] = [][]interface{}{{"TRUE"}}
		}

		if len(rowsToAppend) >= e.cfg.BatchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}

	if err := flush(); err != nil {
		return stats, err
	}

	log.Info().
		Int("rows_scanned", stats.RowsScanned).
		Int("rows_transferred", stats.RowsTransferred).
		Int("flushes", stats.Flushes).
		Msg("Transfer pass complete")

	return stats, nil
}

// verifyHeaders re-reads just the header row and compares it cell-by-cell
// against the snapshot taken at the start of the run.
func (e *Engine) verifyHeaders(ctx context.Context, sheet string, original []string) bool {
	headerWindow := sheets.ColumnLetter(e.cfg.MaxCols-1) + "1"
	data, err := e.port.ReadRange(ctx, sheets.Range{
		Sheet: sheet, StartCell: "A1", EndCell: headerWindow,
	})
	if err != nil {
		log.Error().Err(err).Str("sheet", sheet).Msg("Error verifying headers")
		return false
	}
	if len(data) == 0 {
		log.Warn().Str("sheet", sheet).Msg("Could not retrieve current headers")
		return false
	}

	current := headerRow(data[0])
	if len(current) != len(original) {
		log.Warn().
			Str("sheet", sheet).
			Int("original", len(original)).
			Int("current", len(current)).
			Msg("Header count changed")
		return false
	}

	for i := range original {
		if current[i] != original[i] {
			log.Warn().
				Str("sheet", sheet).
				Int("position", i).
				Str("original", original[i]).
				Str("current", current[i]).
				Msg("Header changed")
			return false
		}
	}

	return true
}

// headerRow renders a raw header row as strings for mapping and drift
// comparison.
func headerRow(row []interface{}) []string {
	headers := make([]string, len(row))
	for i := range row {
		headers[i] = cellString(row, i)
	}
	return headers
}
