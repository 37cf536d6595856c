package airtable

import (
	"context"

	"github.com/ltemarine/shiplog/models"
)

// ListEntriesForVessel fetches every entry row for one vessel, filtered
// server-side via filterByFormula and paginated until exhausted. Date
// filtering is left to the caller: formula filtering on date-typed columns
// has proven unreliable, so the sync layer matches the ISO string exactly
// on the client side.
func (c *Client) ListEntriesForVessel(ctx context.Context, vessel string) ([]models.Entry, error) {
	records, err := c.listAll(ctx, c.cfg.EntriesTable, formulaEq(c.cfg.Fields.Vessel, vessel))
	if err != nil {
		return nil, err
	}

	entries := make([]models.Entry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, c.entryFromRecord(rec))
	}
	return entries, nil
}

// CreateEntry inserts a row and returns the authoritative stored entry,
// including the remote-assigned identifier and any server-side transforms.
func (c *Client) CreateEntry(ctx context.Context, entry models.Entry) (models.Entry, error) {
	rec, err := c.createRecord(ctx, c.cfg.EntriesTable, c.entryToFields(entry))
	if err != nil {
		return models.Entry{}, err
	}
	return c.entryFromRecord(rec), nil
}

// UpdateEntry patches the row with the given remote identifier and returns
// the stored result.
func (c *Client) UpdateEntry(ctx context.Context, id string, entry models.Entry) (models.Entry, error) {
	rec, err := c.updateRecord(ctx, c.cfg.EntriesTable, id, c.entryToFields(entry))
	if err != nil {
		return models.Entry{}, err
	}
	return c.entryFromRecord(rec), nil
}

// DeleteEntry removes the row with the given remote identifier.
func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	return c.deleteRecord(ctx, c.cfg.EntriesTable, id)
}

func (c *Client) entryToFields(entry models.Entry) map[string]any {
	return map[string]any{
		c.cfg.Fields.Vessel:   entry.Vessel,
		c.cfg.Fields.Date:     entry.Date,
		c.cfg.Fields.Start:    entry.Start,
		c.cfg.Fields.End:      entry.End,
		c.cfg.Fields.Activity: entry.Activity,
		c.cfg.Fields.Tag:      entry.Tag,
	}
}

func (c *Client) entryFromRecord(rec record) models.Entry {
	return models.Entry{
		ID:       rec.ID,
		Vessel:   fieldString(rec, c.cfg.Fields.Vessel),
		Date:     fieldString(rec, c.cfg.Fields.Date),
		Start:    fieldString(rec, c.cfg.Fields.Start),
		End:      fieldString(rec, c.cfg.Fields.End),
		Activity: fieldString(rec, c.cfg.Fields.Activity),
		Tag:      fieldString(rec, c.cfg.Fields.Tag),
	}
}
