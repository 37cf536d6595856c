package airtable

import (
	"fmt"

	"github.com/ltemarine/shiplog/internal/config"
)

// EntryFields is the statically declared column mapping for the entries
// table. It is resolved once at startup and validated; a blank column name
// is a configuration error, never a silent default at call time.
type EntryFields struct {
	Vessel   string
	Date     string
	Start    string
	End      string
	Activity string
	Tag      string
}

// DefaultEntryFields matches the column names of the original base layout.
func DefaultEntryFields() EntryFields {
	return EntryFields{
		Vessel:   "Vessel",
		Date:     "Date",
		Start:    "From",
		End:      "To",
		Activity: "Description",
		Tag:      "Tag",
	}
}

// EntryFieldsFromConfig overlays configured overrides on the defaults.
func EntryFieldsFromConfig(cfg config.Fields) EntryFields {
	f := DefaultEntryFields()
	if cfg.Vessel != "" {
		f.Vessel = cfg.Vessel
	}
	if cfg.Date != "" {
		f.Date = cfg.Date
	}
	if cfg.Start != "" {
		f.Start = cfg.Start
	}
	if cfg.End != "" {
		f.End = cfg.End
	}
	if cfg.Activity != "" {
		f.Activity = cfg.Activity
	}
	if cfg.Tag != "" {
		f.Tag = cfg.Tag
	}
	return f
}

func (f EntryFields) validate() error {
	named := map[string]string{
		"vessel":   f.Vessel,
		"date":     f.Date,
		"start":    f.Start,
		"end":      f.End,
		"activity": f.Activity,
		"tag":      f.Tag,
	}
	for field, column := range named {
		if column == "" {
			return fmt.Errorf("%w: no column mapped for %s", ErrBadFieldMapping, field)
		}
	}
	return nil
}

// Column names of the users table and the reference-list tables. These are
// fixed by the base layout rather than configurable: the tables are owned by
// this application, unlike the entries table which predates it.
const (
	userFieldName   = "Name"
	userFieldEmail  = "Email"
	userFieldRole   = "Role"
	userFieldSortID = "ID"

	refFieldName  = "Name"
	tagFieldColor = "Color"
)
