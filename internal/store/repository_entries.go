package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ltemarine/shiplog/internal/logger"
	"github.com/ltemarine/shiplog/models"
)

// entryRepository is the SQLite-backed implementation of [EntryCache].
type entryRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewEntryRepository(db *DB, logger *logger.Logger) EntryCache {
	logger.Debug().Msg("creating entry cache repository")
	return &entryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *entryRepository) UpsertEntry(ctx context.Context, entry models.Entry) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, upsertEntry,
		entry.ID, entry.Vessel, entry.Date, entry.Start, entry.End, entry.Activity, entry.Tag, entry.PendingSync)
	if err != nil {
		log.Err(err).Str("func", "*entryRepository.UpsertEntry").Str("entry_id", entry.ID).Msg("error: upsert failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

func (r *entryRepository) GetEntry(ctx context.Context, id string) (models.Entry, error) {
	log := logger.FromContext(ctx)

	var entry models.Entry
	row := r.db.QueryRowContext(ctx, getEntry, id)

	if err := row.Scan(&entry.ID, &entry.Vessel, &entry.Date, &entry.Start, &entry.End, &entry.Activity, &entry.Tag, &entry.PendingSync); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Entry{}, ErrEntryNotFound
		}
		log.Err(err).Str("func", "*entryRepository.GetEntry").Str("entry_id", id).Msg("error: scanning error")
		return models.Entry{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return entry, nil
}

func (r *entryRepository) DeleteEntry(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteEntry, id); err != nil {
		log.Err(err).Str("func", "*entryRepository.DeleteEntry").Str("entry_id", id).Msg("error: delete failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

func (r *entryRepository) EntriesForVesselDate(ctx context.Context, vessel, date string) ([]models.Entry, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getEntriesForVesselDate, vessel, date)
	if err != nil {
		log.Err(err).Str("func", "*entryRepository.EntriesForVesselDate").Msg("error: query failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		var entry models.Entry
		if err = rows.Scan(&entry.ID, &entry.Vessel, &entry.Date, &entry.Start, &entry.End, &entry.Activity, &entry.Tag, &entry.PendingSync); err != nil {
			log.Err(err).Str("func", "*entryRepository.EntriesForVesselDate").Msg("error: scanning error")
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return entries, nil
}

// ReplaceForVesselDate swaps the cached day for the fetched one. Rows still
// flagged pending_sync are kept: they exist only locally and the fetch
// cannot know about them.
func (r *entryRepository) ReplaceForVesselDate(ctx context.Context, vessel, date string, fetched []models.Entry) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*entryRepository.ReplaceForVesselDate").Msg("error: begin tx failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deleteSyncedEntriesForVesselDate, vessel, date); err != nil {
		log.Err(err).Str("func", "*entryRepository.ReplaceForVesselDate").Msg("error: clearing synced rows failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	for _, entry := range fetched {
		_, err = tx.ExecContext(ctx, upsertEntry,
			entry.ID, entry.Vessel, entry.Date, entry.Start, entry.End, entry.Activity, entry.Tag, entry.PendingSync)
		if err != nil {
			log.Err(err).Str("func", "*entryRepository.ReplaceForVesselDate").Str("entry_id", entry.ID).Msg("error: upsert failed")
			return fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return tx.Commit()
}
