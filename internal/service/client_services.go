package service

import (
	"github.com/ltemarine/shiplog/internal/adapter"
	"github.com/ltemarine/shiplog/internal/airtable"
	"github.com/ltemarine/shiplog/internal/logger"
	"github.com/ltemarine/shiplog/internal/store"
)

type ClientServices struct {
	AuthService      ClientAuthService
	EntryService     ClientEntryService
	ListService      ClientListService
	DashboardService ClientDashboardService
}

func NewClientServices(storages *store.Storages, base *airtable.Client, authAdapter adapter.AuthAdapter, logger *logger.Logger) *ClientServices {
	entrySvc := NewClientEntryService(storages.EntryCache, base, logger)

	return &ClientServices{
		AuthService:      NewClientAuthService(storages.SessionStore, authAdapter, logger),
		EntryService:     entrySvc,
		ListService:      NewClientListService(storages.ListStore, base, logger),
		DashboardService: NewClientDashboardService(entrySvc),
	}
}
