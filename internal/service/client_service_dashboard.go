package service

import (
	"context"

	"github.com/ltemarine/shiplog/internal/utils"
)

type clientDashboardService struct {
	entries ClientEntryService
}

func NewClientDashboardService(entries ClientEntryService) ClientDashboardService {
	return &clientDashboardService{entries: entries}
}

// Summary implements [ClientDashboardService]. It reuses the entry service's
// read path, so the totals reflect pending local rows too.
func (s *clientDashboardService) Summary(ctx context.Context, vessel, date string) (DaySummary, error) {
	entries, err := s.entries.EntriesForDate(ctx, vessel, date)
	if err != nil {
		return DaySummary{}, err
	}

	summary := DaySummary{
		Vessel:     vessel,
		Date:       date,
		EntryCount: len(entries),
		TagMinutes: make(map[string]int),
	}

	for _, entry := range entries {
		minutes := utils.CalcDuration(entry.Start, entry.End)
		summary.TotalMinutes += minutes
		summary.TagMinutes[entry.Tag] += minutes
	}

	return summary, nil
}
