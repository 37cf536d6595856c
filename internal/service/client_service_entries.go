package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ltemarine/shiplog/internal/logger"
	"github.com/ltemarine/shiplog/internal/store"
	"github.com/ltemarine/shiplog/internal/utils"
	"github.com/ltemarine/shiplog/models"
)

type clientEntryService struct {
	cache  store.EntryCache
	remote RemoteEntries
	logger *logger.Logger
}

func NewClientEntryService(cache store.EntryCache, remote RemoteEntries, logger *logger.Logger) ClientEntryService {
	return &clientEntryService{cache: cache, remote: remote, logger: logger}
}

// EntriesForDate implements [ClientEntryService]. The base is filtered by
// vessel server-side; the date filter happens here because the base call is
// shared across days and the per-day slice is small.
func (s *clientEntryService) EntriesForDate(ctx context.Context, vessel, date string) ([]models.Entry, error) {
	log := logger.FromContext(ctx)

	fetched, err := s.remote.ListEntriesForVessel(ctx, vessel)
	if err != nil {
		log.Warn().Err(err).Str("vessel", vessel).Str("date", date).Msg("remote fetch failed, serving cached entries")
		return s.cache.EntriesForVesselDate(ctx, vessel, date)
	}

	dayEntries := fetched[:0:0]
	for _, entry := range fetched {
		if entry.Date == date {
			dayEntries = append(dayEntries, entry)
		}
	}

	if err = s.cache.ReplaceForVesselDate(ctx, vessel, date, dayEntries); err != nil {
		return nil, fmt.Errorf("refresh cached entries: %w", err)
	}

	// Read back from the cache so pending local rows appear alongside the
	// fetched ones.
	return s.cache.EntriesForVesselDate(ctx, vessel, date)
}

// CreateEntry implements [ClientEntryService].
func (s *clientEntryService) CreateEntry(ctx context.Context, entry models.Entry) (models.Entry, error) {
	log := logger.FromContext(ctx)

	created, err := s.remote.CreateEntry(ctx, entry)
	if err != nil {
		log.Warn().Err(err).Str("vessel", entry.Vessel).Str("date", entry.Date).Msg("remote create failed, keeping entry locally")

		entry.ID = utils.NewLocalEntryID()
		entry.PendingSync = true
		if cacheErr := s.cache.UpsertEntry(ctx, entry); cacheErr != nil {
			return models.Entry{}, fmt.Errorf("save entry locally after remote failure: %w", cacheErr)
		}
		return entry, fmt.Errorf("create entry on remote: %w", err)
	}

	if err = s.cache.UpsertEntry(ctx, created); err != nil {
		return created, fmt.Errorf("cache created entry: %w", err)
	}

	return created, nil
}

// UpdateEntry implements [ClientEntryService].
func (s *clientEntryService) UpdateEntry(ctx context.Context, entry models.Entry) (models.Entry, error) {
	log := logger.FromContext(ctx)

	if entry.IsLocal() {
		// Never reached the base; edit the pending row in place.
		entry.PendingSync = true
		if err := s.cache.UpsertEntry(ctx, entry); err != nil {
			return models.Entry{}, fmt.Errorf("update local entry: %w", err)
		}
		return entry, nil
	}

	updated, err := s.remote.UpdateEntry(ctx, entry.ID, entry)
	if err != nil {
		log.Warn().Err(err).Str("entry_id", entry.ID).Msg("remote update failed, keeping edit locally")

		entry.PendingSync = true
		if cacheErr := s.cache.UpsertEntry(ctx, entry); cacheErr != nil {
			return models.Entry{}, fmt.Errorf("save edit locally after remote failure: %w", cacheErr)
		}
		return entry, fmt.Errorf("update entry on remote: %w", err)
	}

	if err = s.cache.UpsertEntry(ctx, updated); err != nil {
		return updated, fmt.Errorf("cache updated entry: %w", err)
	}

	return updated, nil
}

// DeleteEntry implements [ClientEntryService]. The cache row goes away even
// when the remote delete fails: the user asked for the entry to be gone, and
// the next successful day refresh resolves any drift.
func (s *clientEntryService) DeleteEntry(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if strings.HasPrefix(id, models.LocalIDPrefix) {
		return s.cache.DeleteEntry(ctx, id)
	}

	remoteErr := s.remote.DeleteEntry(ctx, id)
	if remoteErr != nil {
		log.Warn().Err(remoteErr).Str("entry_id", id).Msg("remote delete failed, removing cached row anyway")
	}

	if err := s.cache.DeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("delete cached entry: %w", err)
	}

	if remoteErr != nil {
		return fmt.Errorf("delete entry on remote: %w", remoteErr)
	}
	return nil
}

// CheckOverlap implements [ClientEntryService].
func (s *clientEntryService) CheckOverlap(ctx context.Context, candidate models.Entry, excludeID string) (*models.Entry, error) {
	entries, err := s.cache.EntriesForVesselDate(ctx, candidate.Vessel, candidate.Date)
	if err != nil {
		return nil, fmt.Errorf("load entries for overlap check: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Start < entries[j].Start })

	for i := range entries {
		if entries[i].ID == excludeID {
			continue
		}
		if candidate.Overlaps(entries[i]) {
			return &entries[i], nil
		}
	}

	return nil, nil
}
