package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode"

	pkgerrors "github.com/harborlight/storefront-backend/pkg/errors"
)

const sheetBodyReadLimit int64 = 8 << 20

// Row is one spreadsheet row keyed by camelCased column header.
type Row map[string]string

// Client fetches rows from a published Google Sheet through its CSV export
// endpoint. Public sheets need no credentials.
type Client struct {
	httpClient *http.Client
	baseURL    string
	sheetID    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the spreadsheet host, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds a sheet client for the given spreadsheet ID.
func NewClient(sheetID string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(sheetID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sheet id is required")
	}
	client := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://docs.google.com",
		sheetID:    strings.TrimSpace(sheetID),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// FetchRows downloads one tab of the spreadsheet and returns its data rows.
// A sheet with only a header row yields no rows.
func (c *Client) FetchRows(ctx context.Context, gid string) ([]Row, error) {
	url := fmt.Sprintf("%s/spreadsheets/d/%s/gviz/tq?tqx=out:csv&gid=%s", c.baseURL, c.sheetID, gid)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build sheet request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute sheet request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d", resp.StatusCode), "sheet request failed")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, sheetBodyReadLimit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read sheet body")
	}

	return parseRows(string(body)), nil
}

func parseRows(csvContent string) []Row {
	var lines []string
	for _, line := range strings.Split(csvContent, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil
	}

	headers := splitLine(lines[0])
	keys := make([]string, len(headers))
	for i, header := range headers {
		keys[i] = camelKey(header)
	}

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := splitLine(line)
		row := make(Row, len(keys))
		for i, key := range keys {
			if i < len(values) {
				row[key] = strings.TrimSpace(values[i])
			} else {
				row[key] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// camelKey turns a column header like "Hours Weekday" into "hoursWeekday".
func camelKey(header string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(header)))
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(words[0])
	for _, word := range words[1:] {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}

func splitLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}

	fields = append(fields, current.String())
	return fields
}
