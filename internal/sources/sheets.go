package sources

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"brewery_dashboard/internal/engine"
)

// DefaultRange covers every column the form-response sheet has grown to.
const DefaultRange = "A1:ZZ1000"

// SheetsClient reads the form-response sheet through the Sheets v4 values API.
type SheetsClient struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheetID string
	readRange     string
}

// NewSheetsClient authenticates with an API key. Extra options (endpoint, HTTP
// client) are passed through to the Google client.
func NewSheetsClient(ctx context.Context, spreadsheetID, readRange, apiKey string, opts ...option.ClientOption) (*SheetsClient, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("sheets: spreadsheet id is required")
	}
	if readRange == "" {
		readRange = DefaultRange
	}
	if apiKey != "" {
		opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &SheetsClient{
		values:        svc.Spreadsheets.Values,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
	}, nil
}

// FetchTable returns the configured range with its first row as the header.
func (c *SheetsClient) FetchTable(ctx context.Context) (engine.Table, error) {
	resp, err := c.values.Get(c.spreadsheetID, c.readRange).Context(ctx).Do()
	if err != nil {
		return engine.Table{}, fmt.Errorf("failed to read sheet %s!%s: %w", c.spreadsheetID, c.readRange, err)
	}
	return engine.TableFromValues(cellsToStrings(resp.Values)), nil
}

// cellsToStrings flattens the API's loosely typed cells. Formatted values arrive
// as strings already; anything else is printed.
func cellsToStrings(values [][]interface{}) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			switch s := v.(type) {
			case nil:
			case string:
				cells[j] = s
			default:
				cells[j] = fmt.Sprint(s)
			}
		}
		out[i] = cells
	}
	return out
}
