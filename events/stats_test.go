package events

import (
	"testing"
	"time"

	"invitra/models"
)

func TestComputeEventStats(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	events := []models.Event{
		{EventID: "e1", Date: now.AddDate(0, 0, 7)},
		{EventID: "e2", Date: now.AddDate(0, 0, -7)},
		{EventID: "e3", Date: now},
		{EventID: "e4", Date: now.AddDate(0, -2, 0)},
	}

	stats := computeEventStats(events, now)
	if stats.Total != 4 {
		t.Errorf("Total = %d, want 4", stats.Total)
	}
	if stats.Upcoming != 2 {
		t.Errorf("Upcoming = %d, want 2", stats.Upcoming)
	}
	if stats.Past != 2 {
		t.Errorf("Past = %d, want 2", stats.Past)
	}
}

func TestComputeEventStatsEmpty(t *testing.T) {
	stats := computeEventStats(nil, time.Now())
	if stats.Total != 0 || stats.Upcoming != 0 || stats.Past != 0 {
		t.Errorf("empty stats = %+v, want zeroes", stats)
	}
}
