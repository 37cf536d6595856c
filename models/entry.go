package models

import "strings"

// LocalIDPrefix marks entry identifiers that were minted on the client
// because the remote store was unreachable. Entries carrying this prefix
// exist only in the local cache until they are successfully re-submitted.
const LocalIDPrefix = "local_"

// Entry is one logged activity block on a vessel's timesheet.
//
// Start and End are zero-padded 24-hour "HHMM" strings; input validation
// rejects Start >= End, so a stored entry never spans midnight. Tag refers
// to a Tag by its name, not by a record identifier.
type Entry struct {
	// ID is the remote record identifier, or a locally minted one with
	// LocalIDPrefix when the entry has not reached the remote store yet.
	ID string `json:"id"`

	// Vessel is the display name of the vessel the entry belongs to.
	Vessel string `json:"vessel"`

	// Date is the ISO 8601 calendar date, e.g. "2026-02-17".
	Date string `json:"date"`

	// Start and End are zero-padded 24-hour "HHMM" strings.
	Start string `json:"start"`
	End   string `json:"end"`

	// Activity is the free-text description of what was done.
	Activity string `json:"activity"`

	// Tag is the name of the tag categorising this entry.
	Tag string `json:"tag"`

	// PendingSync is set when the entry was written locally but the
	// remote create/update call failed.
	PendingSync bool `json:"pending_sync,omitempty"`
}

// IsLocal reports whether the entry id was minted locally and the record
// has therefore never existed in the remote store.
func (e Entry) IsLocal() bool {
	return strings.HasPrefix(e.ID, LocalIDPrefix)
}

// Overlaps reports whether the half-open intervals [e.Start, e.End) and
// [other.Start, other.End) intersect. Zero-padded HHMM strings compare
// correctly lexicographically, so no numeric parsing is needed.
func (e Entry) Overlaps(other Entry) bool {
	return e.Start < other.End && e.End > other.Start
}
