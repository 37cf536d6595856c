package store

import "github.com/ltemarine/shiplog/internal/logger"

type Storages struct {
	EntryCache   EntryCache
	ListStore    ListStore
	SessionStore SessionStore
}

func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		EntryCache:   NewEntryRepository(db, log),
		ListStore:    NewListRepository(db, log),
		SessionStore: NewSessionRepository(db, log),
	}
}
