// Package airtable implements the remote table client: authenticated HTTP
// access to the row-based store that is the system of record for entries,
// users and reference lists. It maps between the store's record/fields
// representation and the application's entity shapes.
package airtable

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ltemarine/shiplog/internal/config"
	"github.com/ltemarine/shiplog/internal/logger"
)

const defaultBaseURL = "https://api.airtable.com/v0"

// Config carries everything the client needs to reach one base. BaseURL is
// overridable for tests and defaults to the public API.
type Config struct {
	APIKey string
	BaseID string

	EntriesTable string
	UsersTable   string
	VesselsTable string
	TagsTable    string

	Fields  EntryFields
	BaseURL string
	Timeout time.Duration
}

// Client issues list/create/update/delete calls against one Airtable base.
type Client struct {
	http   *resty.Client
	cfg    Config
	logger *logger.Logger
}

// NewClient validates the entry column mapping and constructs a client.
// Returns an error when required credentials are absent or the mapping is
// incomplete — missing columns fail fast here rather than silently
// defaulting at call time.
func NewClient(cfg Config, log *logger.Logger) (*Client, error) {
	if cfg.APIKey == "" || cfg.BaseID == "" {
		return nil, fmt.Errorf("airtable client: api key and base id are required")
	}
	if (cfg.Fields == EntryFields{}) {
		cfg.Fields = DefaultEntryFields()
	}
	if err := cfg.Fields.validate(); err != nil {
		return nil, err
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/") + "/" + cfg.BaseID).
		SetAuthToken(cfg.APIKey).
		SetTimeout(cfg.Timeout)

	return &Client{http: httpClient, cfg: cfg, logger: log}, nil
}

// NewClientFromConfig is a convenience wrapper mapping the application
// configuration onto a client.
func NewClientFromConfig(cfg config.Airtable, log *logger.Logger) (*Client, error) {
	return NewClient(Config{
		APIKey:       cfg.APIKey,
		BaseID:       cfg.BaseID,
		EntriesTable: cfg.EntriesTable,
		UsersTable:   cfg.UsersTable,
		VesselsTable: cfg.VesselsTable,
		TagsTable:    cfg.TagsTable,
		Fields:       EntryFieldsFromConfig(cfg.Fields),
		Timeout:      cfg.RequestTimeout,
	}, log)
}

// record is the wire shape of a single row.
type record struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

type listResponse struct {
	Records []record `json:"records"`
	Offset  string   `json:"offset"`
}

// recordRequest is the body of create and update calls. Typecast lets the
// store coerce select-style columns from plain strings.
type recordRequest struct {
	Fields   map[string]any `json:"fields"`
	Typecast bool           `json:"typecast"`
}

// listAll fetches every row of a table matching the optional formula,
// following the opaque pagination offset until exhausted.
func (c *Client) listAll(ctx context.Context, table, formula string) ([]record, error) {
	var all []record
	offset := ""

	for {
		req := c.http.R().
			SetContext(ctx).
			SetResult(&listResponse{}).
			SetError(&apiError{})
		if formula != "" {
			req.SetQueryParam("filterByFormula", formula)
		}
		if offset != "" {
			req.SetQueryParam("offset", offset)
		}

		resp, err := req.Get("/" + table)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", table, err)
		}
		if err = mapHTTPError(resp); err != nil {
			return nil, err
		}

		page, ok := resp.Result().(*listResponse)
		if !ok {
			return nil, fmt.Errorf("list %s: unexpected response shape", table)
		}
		all = append(all, page.Records...)

		if page.Offset == "" {
			return all, nil
		}
		offset = page.Offset
	}
}

func (c *Client) createRecord(ctx context.Context, table string, fields map[string]any) (record, error) {
	var created record

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(recordRequest{Fields: fields, Typecast: true}).
		SetResult(&created).
		SetError(&apiError{}).
		Post("/" + table)
	if err != nil {
		return record{}, fmt.Errorf("create in %s: %w", table, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return record{}, err
	}

	return created, nil
}

func (c *Client) updateRecord(ctx context.Context, table, id string, fields map[string]any) (record, error) {
	var updated record

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(recordRequest{Fields: fields, Typecast: true}).
		SetResult(&updated).
		SetError(&apiError{}).
		Patch("/" + table + "/" + id)
	if err != nil {
		return record{}, fmt.Errorf("update %s in %s: %w", id, table, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return record{}, err
	}

	return updated, nil
}

func (c *Client) deleteRecord(ctx context.Context, table, id string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetError(&apiError{}).
		Delete("/" + table + "/" + id)
	if err != nil {
		return fmt.Errorf("delete %s from %s: %w", id, table, err)
	}

	return mapHTTPError(resp)
}

// formulaEq builds an exact-match filterByFormula clause for one column.
func formulaEq(column, value string) string {
	escaped := strings.ReplaceAll(value, `"`, `\"`)
	return fmt.Sprintf(`{%s}="%s"`, column, escaped)
}

func fieldString(rec record, column string) string {
	v, ok := rec.Fields[column]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func fieldInt(rec record, column string) int {
	switch v := rec.Fields[column].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
