package store

import (
	"context"

	"github.com/ltemarine/shiplog/models"
)

// EntryCache is the local copy of timesheet entries. Rows flagged
// pending_sync were written while the remote base was unreachable and must
// survive cache refreshes until they reach the base.
type EntryCache interface {
	UpsertEntry(ctx context.Context, entry models.Entry) error
	GetEntry(ctx context.Context, id string) (models.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
	EntriesForVesselDate(ctx context.Context, vessel, date string) ([]models.Entry, error)
	ReplaceForVesselDate(ctx context.Context, vessel, date string, fetched []models.Entry) error
}

// ListStore keeps the ordered reference lists. Ordering is positional and
// mutations happen slice-at-a-time: callers read a list, rearrange it and
// write the whole thing back.
type ListStore interface {
	Vessels(ctx context.Context) ([]models.Vessel, error)
	ReplaceVessels(ctx context.Context, vessels []models.Vessel) error
	Users(ctx context.Context) ([]models.User, error)
	ReplaceUsers(ctx context.Context, users []models.User) error
	Tags(ctx context.Context) ([]models.Tag, error)
	ReplaceTags(ctx context.Context, tags []models.Tag) error
	Seed(ctx context.Context) error
}

// SessionStore persists at most one login session between app launches.
type SessionStore interface {
	SaveSession(ctx context.Context, session models.Session) error
	LoadSession(ctx context.Context) (models.Session, error)
	ClearSession(ctx context.Context) error
}
