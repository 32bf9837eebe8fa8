package sheets

import (
	"context"
	"fmt"
	"sort"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/foige/moxalise-api/internal/retry"
)

// Client implements Port against the Google Sheets v4 API. All calls go
// through the shared retry profile; the engine above never retries.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
	retry         retry.Config
}

// NewClient builds a Sheets API client for one spreadsheet. With an empty
// credentialsFile it falls back to Application Default Credentials, which is
// what Cloud Run provides.
func NewClient(ctx context.Context, spreadsheetID, credentialsFile string) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service:       service,
		spreadsheetID: spreadsheetID,
		retry:         retry.SheetCall,
	}, nil
}

func (c *Client) ReadRange(ctx context.Context, r Range) ([][]interface{}, error) {
	return retry.WithRetry(ctx, c.retry, func(ctx context.Context) ([][]interface{}, error) {
		resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, r.A1Notation()).Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to read range %s: %w", r.A1Notation(), err)
		}
		return resp.Values, nil
	})
}

func (c *Client) AppendRows(ctx context.Context, r Range, rows [][]interface{}, valueInputOption string) (string, error) {
	valueRange := &sheets.ValueRange{
		Values: rows,
	}

	return retry.WithRetry(ctx, c.retry, func(ctx context.Context) (string, error) {
		resp, err := c.service.Spreadsheets.Values.Append(c.spreadsheetID, r.A1Notation(), valueRange).
			ValueInputOption(valueInputOption).
			InsertDataOption("INSERT_ROWS").
			Context(ctx).
			Do()
		if err != nil {
			return "", fmt.Errorf("failed to append rows: %w", err)
		}
		if resp.Updates == nil {
			return "", nil
		}
		return resp.Updates.UpdatedRange, nil
	})
}

func (c *Client) BatchUpdate(ctx context.Context, updates map[string][][]interface{}) (int64, error) {
	// Stable ordering keeps request bodies reproducible across runs.
	ranges := make([]string, 0, len(updates))
	for rangeA1 := range updates {
		ranges = append(ranges, rangeA1)
	}
	sort.Strings(ranges)

	data := make([]*sheets.ValueRange, 0, len(ranges))
	for _, rangeA1 := range ranges {
		data = append(data, &sheets.ValueRange{
			Range:  rangeA1,
			Values: updates[rangeA1],
		})
	}

	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             data,
	}

	return retry.WithRetry(ctx, c.retry, func(ctx context.Context) (int64, error) {
		resp, err := c.service.Spreadsheets.Values.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
		if err != nil {
			return 0, fmt.Errorf("failed to batch update cells: %w", err)
		}
		return resp.TotalUpdatedCells, nil
	})
}

func (c *Client) SheetNames(ctx context.Context) ([]string, error) {
	return retry.WithRetry(ctx, c.retry, func(ctx context.Context) ([]string, error) {
		resp, err := c.service.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to get spreadsheet metadata: %w", err)
		}
		names := make([]string, 0, len(resp.Sheets))
		for _, sheet := range resp.Sheets {
			if sheet.Properties != nil {
				names = append(names, sheet.Properties.Title)
			}
		}
		return names, nil
	})
}

func (c *Client) ClearRange(ctx context.Context, r Range) (string, error) {
	return retry.WithRetry(ctx, c.retry, func(ctx context.Context) (string, error) {
		resp, err := c.service.Spreadsheets.Values.Clear(c.spreadsheetID, r.A1Notation(), &sheets.ClearValuesRequest{}).
			Context(ctx).
			Do()
		if err != nil {
			return "", fmt.Errorf("failed to clear range %s: %w", r.A1Notation(), err)
		}
		return resp.ClearedRange, nil
	})
}
