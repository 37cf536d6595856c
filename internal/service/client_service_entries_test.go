package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ltemarine/shiplog/internal/logger"
	"github.com/ltemarine/shiplog/internal/store"
	"github.com/ltemarine/shiplog/models"
)

// memEntryCache is an in-memory store.EntryCache with the same replace
// semantics as the SQLite repository: a refresh drops synced rows for the
// vessel/date and leaves pending rows alone.
type memEntryCache struct {
	entries map[string]models.Entry
}

func newMemEntryCache() *memEntryCache {
	return &memEntryCache{entries: map[string]models.Entry{}}
}

func (c *memEntryCache) UpsertEntry(_ context.Context, entry models.Entry) error {
	c.entries[entry.ID] = entry
	return nil
}

func (c *memEntryCache) GetEntry(_ context.Context, id string) (models.Entry, error) {
	entry, ok := c.entries[id]
	if !ok {
		return models.Entry{}, store.ErrEntryNotFound
	}
	return entry, nil
}

func (c *memEntryCache) DeleteEntry(_ context.Context, id string) error {
	delete(c.entries, id)
	return nil
}

func (c *memEntryCache) EntriesForVesselDate(_ context.Context, vessel, date string) ([]models.Entry, error) {
	var out []models.Entry
	for _, entry := range c.entries {
		if entry.Vessel == vessel && entry.Date == date {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (c *memEntryCache) ReplaceForVesselDate(_ context.Context, vessel, date string, fetched []models.Entry) error {
	for id, entry := range c.entries {
		if entry.Vessel == vessel && entry.Date == date && !entry.PendingSync {
			delete(c.entries, id)
		}
	}
	for _, entry := range fetched {
		c.entries[entry.ID] = entry
	}
	return nil
}

type fakeRemoteEntries struct {
	listFn   func(ctx context.Context, vessel string) ([]models.Entry, error)
	createFn func(ctx context.Context, entry models.Entry) (models.Entry, error)
	updateFn func(ctx context.Context, id string, entry models.Entry) (models.Entry, error)
	deleteFn func(ctx context.Context, id string) error
}

var _ RemoteEntries = (*fakeRemoteEntries)(nil)

func (f *fakeRemoteEntries) ListEntriesForVessel(ctx context.Context, vessel string) ([]models.Entry, error) {
	return f.listFn(ctx, vessel)
}

func (f *fakeRemoteEntries) CreateEntry(ctx context.Context, entry models.Entry) (models.Entry, error) {
	return f.createFn(ctx, entry)
}

func (f *fakeRemoteEntries) UpdateEntry(ctx context.Context, id string, entry models.Entry) (models.Entry, error) {
	return f.updateFn(ctx, id, entry)
}

func (f *fakeRemoteEntries) DeleteEntry(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func remoteEntry(id, start, end, activity string) models.Entry {
	return models.Entry{
		ID: id, Vessel: "Aegir", Date: "2026-02-17",
		Start: start, End: end, Activity: activity,
	}
}

// ── EntriesForDate ───────────────────────────────────────────────────────────

func TestClientEntryService_EntriesForDate_RefreshesCache(t *testing.T) {
	cache := newMemEntryCache()
	remote := &fakeRemoteEntries{listFn: func(context.Context, string) ([]models.Entry, error) {
		return []models.Entry{
			remoteEntry("rec1", "0800", "1200", "Cargo watch"),
			remoteEntry("rec2", "1200", "1400", "Lunch relief"),
			{ID: "rec3", Vessel: "Aegir", Date: "2026-02-18", Start: "0800", End: "0900", Activity: "Other day"},
		}, nil
	}}
	svc := NewClientEntryService(cache, remote, logger.Nop())

	got, err := svc.EntriesForDate(context.Background(), "Aegir", "2026-02-17")
	require.NoError(t, err)
	require.Len(t, got, 2, "entries for other dates are filtered out")
	assert.Equal(t, "rec1", got[0].ID)
	assert.Equal(t, "rec2", got[1].ID)
}

func TestClientEntryService_EntriesForDate_RemoteDownServesCache(t *testing.T) {
	cache := newMemEntryCache()
	require.NoError(t, cache.UpsertEntry(context.Background(), remoteEntry("rec1", "0800", "1200", "Cargo watch")))

	remote := &fakeRemoteEntries{listFn: func(context.Context, string) ([]models.Entry, error) {
		return nil, errors.New("dial tcp: no route to host")
	}}
	svc := NewClientEntryService(cache, remote, logger.Nop())

	got, err := svc.EntriesForDate(context.Background(), "Aegir", "2026-02-17")
	require.NoError(t, err, "an unreachable base is not an error for reads")
	require.Len(t, got, 1)
	assert.Equal(t, "rec1", got[0].ID)
}

func TestClientEntryService_EntriesForDate_RefreshPreservesPendingRows(t *testing.T) {
	cache := newMemEntryCache()
	pending := remoteEntry("local_abc", "1400", "1500", "Written offline")
	pending.PendingSync = true
	require.NoError(t, cache.UpsertEntry(context.Background(), pending))

	remote := &fakeRemoteEntries{listFn: func(context.Context, string) ([]models.Entry, error) {
		return []models.Entry{remoteEntry("rec1", "0800", "1200", "Cargo watch")}, nil
	}}
	svc := NewClientEntryService(cache, remote, logger.Nop())

	got, err := svc.EntriesForDate(context.Background(), "Aegir", "2026-02-17")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "rec1", got[0].ID)
	assert.Equal(t, "local_abc", got[1].ID)
	assert.True(t, got[1].PendingSync)
}

func TestClientEntryService_EntriesForDate_RefreshDropsRemotelyDeletedRows(t *testing.T) {
	cache := newMemEntryCache()
	require.NoError(t, cache.UpsertEntry(context.Background(), remoteEntry("rec-gone", "0800", "0900", "Deleted elsewhere")))

	remote := &fakeRemoteEntries{listFn: func(context.Context, string) ([]models.Entry, error) {
		return []models.Entry{}, nil
	}}
	svc := NewClientEntryService(cache, remote, logger.Nop())

	got, err := svc.EntriesForDate(context.Background(), "Aegir", "2026-02-17")
	require.NoError(t, err)
	assert.Empty(t, got)
}

// ── CreateEntry ──────────────────────────────────────────────────────────────

func TestClientEntryService_CreateEntry_RemoteFirst(t *testing.T) {
	cache := newMemEntryCache()
	remote := &fakeRemoteEntries{createFn: func(_ context.Context, entry models.Entry) (models.Entry, error) {
		entry.ID = "rec-new"
		return entry, nil
	}}
	svc := NewClientEntryService(cache, remote, logger.Nop())

	created, err := svc.CreateEntry(context.Background(), remoteEntry("", "0800", "1200", "Cargo watch"))
	require.NoError(t, err)
	assert.Equal(t, "rec-new", created.ID)
	assert.False(t, created.PendingSync)

	cached, err := cache.GetEntry(context.Background(), "rec-new")
	require.NoError(t, err)
	assert.Equal(t, created, cached)
}

func TestClientEntryService_CreateEntry_RemoteDownFallsBackToLocal(t *testing.T) {
	cache := newMemEntryCache()
	remote := &fakeRemoteEntries{createFn: func(context.Context, models.Entry) (models.Entry, error) {
		return models.Entry{}, errors.New("dial tcp: no route to host")
	}}
	svc := NewClientEntryService(cache, remote, logger.Nop())
	ctx := context.Background()

	created, err := svc.CreateEntry(ctx, remoteEntry("", "0800", "1200", "Cargo watch"))
	require.Error(t, err, "the failure is reported")
	assert.True(t, created.IsLocal(), "entry got a locally minted id")
	assert.True(t, created.PendingSync)

	// The locally kept entry must appear in subsequent reads.
	remote.listFn = func(context.Context, string) ([]models.Entry, error) {
		return nil, errors.New("still down")
	}
	got, readErr := svc.EntriesForDate(ctx, "Aegir", "2026-02-17")
	require.NoError(t, readErr)
	require.Len(t, got, 1)
	assert.Equal(t, created.ID, got[0].ID)
}

// ── UpdateEntry ──────────────────────────────────────────────────────────────

func TestClientEntryService_UpdateEntry_LocalEntryStaysLocal(t *testing.T) {
	cache := newMemEntryCache()
	pending := remoteEntry("local_abc", "0800", "1200", "Written offline")
	pending.PendingSync = true
	require.NoError(t, cache.UpsertEntry(context.Background(), pending))

	remoteCalled := false
	remote := &fakeRemoteEntries{updateFn: func(_ context.Context, _ string, entry models.Entry) (models.Entry, error) {
		remoteCalled = true
		return entry, nil
	}}
	svc := NewClientEntryService(cache, remote, logger.Nop())

	pending.Activity = "Edited offline"
	updated, err := svc.UpdateEntry(context.Background(), pending)
	require.NoError(t, err)
	assert.False(t, remoteCalled, "a never-synced entry must not hit the remote")
	assert.True(t, updated.PendingSync)

	cached, err := cache.GetEntry(context.Background(), "local_abc")
	require.NoError(t, err)
	assert.Equal(t, "Edited offline", cached.Activity)
}

func TestClientEntryService_UpdateEntry_RemoteDownMarksPending(t *testing.T) {
	cache := newMemEntryCache()
	existing := remoteEntry("rec1", "0800", "1200", "Cargo watch")
	require.NoError(t, cache.UpsertEntry(context.Background(), existing))

	remote := &fakeRemoteEntries{updateFn: func(context.Context, string, models.Entry) (models.Entry, error) {
		return models.Entry{}, errors.New("dial tcp: no route to host")
	}}
	svc := NewClientEntryService(cache, remote, logger.Nop())

	existing.Activity = "Edited"
	updated, err := svc.UpdateEntry(context.Background(), existing)
	require.Error(t, err)
	assert.Equal(t, "rec1", updated.ID, "remote ids are kept")
	assert.True(t, updated.PendingSync)
}

// ── DeleteEntry ──────────────────────────────────────────────────────────────

func TestClientEntryService_DeleteEntry_LocalSkipsRemote(t *testing.T) {
	cache := newMemEntryCache()
	require.NoError(t, cache.UpsertEntry(context.Background(), remoteEntry("local_abc", "0800", "0900", "Offline")))

	remoteCalled := false
	remote := &fakeRemoteEntries{deleteFn: func(context.Context, string) error {
		remoteCalled = true
		return nil
	}}
	svc := NewClientEntryService(cache, remote, logger.Nop())

	require.NoError(t, svc.DeleteEntry(context.Background(), "local_abc"))
	assert.False(t, remoteCalled)

	_, err := cache.GetEntry(context.Background(), "local_abc")
	assert.ErrorIs(t, err, store.ErrEntryNotFound)
}

func TestClientEntryService_DeleteEntry_RemoteDownStillRemovesCachedRow(t *testing.T) {
	cache := newMemEntryCache()
	require.NoError(t, cache.UpsertEntry(context.Background(), remoteEntry("rec1", "0800", "0900", "Cargo watch")))

	remote := &fakeRemoteEntries{deleteFn: func(context.Context, string) error {
		return errors.New("dial tcp: no route to host")
	}}
	svc := NewClientEntryService(cache, remote, logger.Nop())

	err := svc.DeleteEntry(context.Background(), "rec1")
	require.Error(t, err, "the remote failure is still reported")

	_, getErr := cache.GetEntry(context.Background(), "rec1")
	assert.ErrorIs(t, getErr, store.ErrEntryNotFound)
}

// ── CheckOverlap ─────────────────────────────────────────────────────────────

func TestClientEntryService_CheckOverlap(t *testing.T) {
	cache := newMemEntryCache()
	ctx := context.Background()
	require.NoError(t, cache.UpsertEntry(ctx, remoteEntry("rec1", "0800", "1200", "Cargo watch")))
	require.NoError(t, cache.UpsertEntry(ctx, remoteEntry("rec2", "1400", "1600", "Bunkering")))

	svc := NewClientEntryService(cache, &fakeRemoteEntries{}, logger.Nop())

	conflict, err := svc.CheckOverlap(ctx, remoteEntry("", "1100", "1300", "Overlapping"), "")
	require.NoError(t, err)
	require.NotNil(t, conflict)
	assert.Equal(t, "rec1", conflict.ID)

	// Touching intervals do not overlap.
	conflict, err = svc.CheckOverlap(ctx, remoteEntry("", "1200", "1400", "Back to back"), "")
	require.NoError(t, err)
	assert.Nil(t, conflict)

	// An entry never conflicts with itself while being edited.
	conflict, err = svc.CheckOverlap(ctx, remoteEntry("rec1", "0900", "1100", "Shortened"), "rec1")
	require.NoError(t, err)
	assert.Nil(t, conflict)
}
