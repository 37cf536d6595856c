package service

import (
	"context"

	"github.com/ltemarine/shiplog/models"
)

// RemoteEntries is the slice of the remote base the entry service talks to.
// Satisfied by [airtable.Client]; narrowed here so tests can fake the remote.
type RemoteEntries interface {
	ListEntriesForVessel(ctx context.Context, vessel string) ([]models.Entry, error)
	CreateEntry(ctx context.Context, entry models.Entry) (models.Entry, error)
	UpdateEntry(ctx context.Context, id string, entry models.Entry) (models.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
}

// RemoteReferences mirrors reference-list edits to the remote base.
// All calls are best-effort: the lists stay usable offline.
type RemoteReferences interface {
	CreateVessel(ctx context.Context, name string) (string, error)
	RenameVessel(ctx context.Context, recordID, name string) error
	DeleteVessel(ctx context.Context, recordID string) error

	CreateTag(ctx context.Context, name, color string) (string, error)
	UpdateTag(ctx context.Context, recordID, name, color string) error
	DeleteTag(ctx context.Context, recordID string) error

	CreateUser(ctx context.Context, user models.User) (string, error)
	UpdateUser(ctx context.Context, recordID string, user models.User) error
	DeleteUser(ctx context.Context, recordID string) error
}

// ClientEntryService is the offline-tolerant timesheet layer. Reads refresh
// the local cache from the remote base when possible and fall back to the
// cache when not; writes go remote-first and degrade to pending local rows.
type ClientEntryService interface {
	// EntriesForDate returns the entries for one vessel and day, sorted by
	// start time. The remote base is consulted first and the cache updated;
	// if the base is unreachable the cached day is returned instead. The
	// returned error is non-nil only when the cache itself fails.
	EntriesForDate(ctx context.Context, vessel, date string) ([]models.Entry, error)

	// CreateEntry writes a new entry remote-first. If the remote write fails
	// the entry is kept locally with a generated local ID and the pending
	// flag set; in that case both the local entry AND the remote error are
	// returned so the caller can show the entry alongside a warning.
	CreateEntry(ctx context.Context, entry models.Entry) (models.Entry, error)

	// UpdateEntry edits an existing entry. Local-only entries are edited in
	// the cache and stay pending. Remote entries are updated remote-first
	// with the same degrade-to-pending behaviour as CreateEntry.
	UpdateEntry(ctx context.Context, entry models.Entry) (models.Entry, error)

	// DeleteEntry removes an entry. Local-only entries disappear from the
	// cache outright. For remote entries the base delete is attempted and
	// the cache row is removed regardless; a failed remote delete is
	// reported but not retried.
	DeleteEntry(ctx context.Context, id string) error

	// CheckOverlap reports whether candidate's time range collides with any
	// cached entry on the same vessel and day, ignoring the entry with
	// excludeID. Touching ranges (end == start) do not collide.
	CheckOverlap(ctx context.Context, candidate models.Entry, excludeID string) (*models.Entry, error)
}

// ClientListService owns the ordered reference lists (vessels, users, tags).
// Edits apply to the local cache immediately and mirror to the remote base
// best-effort.
type ClientListService interface {
	Vessels(ctx context.Context) ([]models.Vessel, error)
	AddVessel(ctx context.Context, name string) error
	RenameVessel(ctx context.Context, oldName, newName string) error
	RemoveVessel(ctx context.Context, name string) error
	MoveVessel(ctx context.Context, fromIndex, toIndex int) error

	Users(ctx context.Context) ([]models.User, error)
	AddUser(ctx context.Context, user models.User) error
	UpdateUser(ctx context.Context, oldName string, user models.User) error
	RemoveUser(ctx context.Context, name string) error
	MoveUser(ctx context.Context, fromIndex, toIndex int) error

	Tags(ctx context.Context) ([]models.Tag, error)
	AddTag(ctx context.Context, tag models.Tag) error
	UpdateTag(ctx context.Context, oldName string, tag models.Tag) error
	RemoveTag(ctx context.Context, name string) error
	MoveTag(ctx context.Context, fromIndex, toIndex int) error
}

// ClientAuthService drives the login handshake against the auth server and
// keeps the session persisted between launches.
type ClientAuthService interface {
	// RequestCode starts a login for email and returns the verification
	// token to echo into VerifyCode.
	RequestCode(ctx context.Context, email string) (string, error)

	// VerifyCode completes the login, persists the session locally and arms
	// the adapter with the session token.
	VerifyCode(ctx context.Context, email, code, token string) (models.Session, error)

	// RestoreSession loads a previously persisted session. Returns
	// [store.ErrLocalSessionNotFound] when none exists or the stored one has
	// expired (expired sessions are cleared).
	RestoreSession(ctx context.Context) (models.Session, error)

	// Logout clears the persisted session.
	Logout(ctx context.Context) error
}

// ClientDashboardService aggregates one vessel-day into the totals shown on
// the dashboard page.
type ClientDashboardService interface {
	Summary(ctx context.Context, vessel, date string) (DaySummary, error)
}

// DaySummary is the dashboard aggregation of a single vessel-day.
type DaySummary struct {
	Vessel       string
	Date         string
	EntryCount   int
	TotalMinutes int

	// TagMinutes maps tag name to logged minutes; untagged time is keyed
	// by the empty string.
	TagMinutes map[string]int
}
