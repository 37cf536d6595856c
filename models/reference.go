package models

// Vessel is a reference-list item: a unique display name and nothing else.
// Position is the explicit list order maintained by the admin UI.
type Vessel struct {
	Name string `json:"name"`

	// RecordID is the remote row identifier when the vessel is mirrored
	// to the remote store; empty for local-only rows.
	RecordID string `json:"record_id,omitempty"`

	Position int `json:"position"`
}

// Tag categorises entries and drives chart colors. Name is unique
// case-insensitively.
type Tag struct {
	Name string `json:"name"`

	// Color is a hex string like "#4299e1".
	Color string `json:"color"`

	RecordID string `json:"record_id,omitempty"`
	Position int    `json:"position"`
}

// DefaultTagColor is assigned when a tag is created without an explicit color.
const DefaultTagColor = "#cbd5e0"
