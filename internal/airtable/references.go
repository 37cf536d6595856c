package airtable

import (
	"context"
	"errors"
)

// ErrTableNotConfigured is returned from reference mirror calls when the
// corresponding table id is absent from configuration. Mirroring is
// optional: the reference-list store treats this the same as any other
// remote failure — logged and ignored.
var ErrTableNotConfigured = errors.New("table not configured")

// CreateVessel mirrors a vessel name to the remote vessels table and
// returns the remote record identifier.
func (c *Client) CreateVessel(ctx context.Context, name string) (string, error) {
	if c.cfg.VesselsTable == "" {
		return "", ErrTableNotConfigured
	}
	rec, err := c.createRecord(ctx, c.cfg.VesselsTable, map[string]any{refFieldName: name})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// RenameVessel patches the remote vessel row.
func (c *Client) RenameVessel(ctx context.Context, recordID, name string) error {
	if c.cfg.VesselsTable == "" {
		return ErrTableNotConfigured
	}
	_, err := c.updateRecord(ctx, c.cfg.VesselsTable, recordID, map[string]any{refFieldName: name})
	return err
}

// DeleteVessel removes the remote vessel row.
func (c *Client) DeleteVessel(ctx context.Context, recordID string) error {
	if c.cfg.VesselsTable == "" {
		return ErrTableNotConfigured
	}
	return c.deleteRecord(ctx, c.cfg.VesselsTable, recordID)
}

// CreateTag mirrors a tag to the remote tags table and returns the remote
// record identifier.
func (c *Client) CreateTag(ctx context.Context, name, color string) (string, error) {
	if c.cfg.TagsTable == "" {
		return "", ErrTableNotConfigured
	}
	rec, err := c.createRecord(ctx, c.cfg.TagsTable, map[string]any{refFieldName: name, tagFieldColor: color})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// UpdateTag patches the remote tag row.
func (c *Client) UpdateTag(ctx context.Context, recordID, name, color string) error {
	if c.cfg.TagsTable == "" {
		return ErrTableNotConfigured
	}
	_, err := c.updateRecord(ctx, c.cfg.TagsTable, recordID, map[string]any{refFieldName: name, tagFieldColor: color})
	return err
}

// DeleteTag removes the remote tag row.
func (c *Client) DeleteTag(ctx context.Context, recordID string) error {
	if c.cfg.TagsTable == "" {
		return ErrTableNotConfigured
	}
	return c.deleteRecord(ctx, c.cfg.TagsTable, recordID)
}
