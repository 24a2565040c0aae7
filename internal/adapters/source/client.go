// Package source fetches published spreadsheet CSV exports and parses them
// into untyped rows. Columns are addressed by header name, never by position,
// so supersets and reordering in the published sheet are tolerated.
package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Row is one parsed CSV row keyed by the verbatim header names. Cell values
// are float64 for numeric-looking text, string otherwise, nil when empty.
type Row map[string]any

// Client fetches one table export per call over HTTP.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
}

// New constructs a Client with default configuration.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		timeout:    defaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch downloads and parses the CSV export identified by base+gid. The base
// is the published workbook URL ending in "?"; the gid selects the table.
func (c *Client) Fetch(ctx context.Context, base, gid string) ([]Row, error) {
	url := fmt.Sprintf("%sgid=%s&single=true&output=csv", base, gid)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: gid %s returned %d", ErrStatus, gid, resp.StatusCode)
	}

	rows, err := parseCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: gid %s: %v", ErrParse, gid, err)
	}
	return rows, nil
}

// parseCSV reads a header-bearing CSV stream into rows. The first record
// supplies column names verbatim; short records pad with nil and long
// records drop trailing extras.
func parseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(Row, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = typeCell(rec[i])
			} else {
				row[name] = nil
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// typeCell applies dynamic typing: numeric-looking text becomes float64,
// empty cells become nil, everything else stays a string.
func typeCell(cell string) any {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	return cell
}
