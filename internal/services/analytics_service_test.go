package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/gatherly/internal/models"
)

func eventOn(title string, date time.Time) *models.Event {
	return &models.Event{
		ID:           uuid.New(),
		Title:        title,
		Description:  "d",
		Date:         date,
		Location:     "l",
		MaxAttendees: 10,
	}
}

func TestAggregateEventsDedupAndOrder(t *testing.T) {
	a := eventOn("A", time.Now())
	b := eventOn("B", time.Now())
	c := eventOn("C", time.Now())

	// Attended copy of B shares the ID but differs in content
	bAttended := *b
	bAttended.Title = "B attended copy"

	got := AggregateEvents([]*models.Event{a, b}, []*models.Event{&bAttended, c})

	if len(got) != 3 {
		t.Fatalf("expected 3 unique events, got %d", len(got))
	}
	if got[0].ID != a.ID || got[1].ID != b.ID || got[2].ID != c.ID {
		t.Errorf("expected order [A, B, C], got [%s, %s, %s]", got[0].Title, got[1].Title, got[2].Title)
	}
	// First occurrence wins: the created copy of B is retained
	if got[1].Title != "B" {
		t.Errorf("expected created copy of B to win, got %q", got[1].Title)
	}
}

func TestAggregateEventsSkipsNil(t *testing.T) {
	a := eventOn("A", time.Now())
	got := AggregateEvents([]*models.Event{nil, a}, []*models.Event{nil})
	if len(got) != 1 || got[0].ID != a.ID {
		t.Fatalf("expected just A, got %d events", len(got))
	}
}

func TestComputeAttendanceRates(t *testing.T) {
	half := eventOn("half", time.Now())
	half.CurrentAttendees = 5
	half.MaxAttendees = 10

	zeroCap := eventOn("zero capacity", time.Now())
	zeroCap.CurrentAttendees = 3
	zeroCap.MaxAttendees = 0

	rates := ComputeAttendanceRates([]*models.Event{half, zeroCap})

	if len(rates) != 2 {
		t.Fatalf("expected 2 rates, got %d", len(rates))
	}
	if rates[0].Percentage != 50 {
		t.Errorf("expected 50%%, got %v", rates[0].Percentage)
	}
	if rates[0].Label != "half" {
		t.Errorf("expected label from event title, got %q", rates[0].Label)
	}
	// max_attendees = 0 is defined as 0%, not a division error
	if rates[1].Percentage != 0 {
		t.Errorf("expected 0%% for zero capacity, got %v", rates[1].Percentage)
	}
}

func TestComputeMonthlyDistribution(t *testing.T) {
	ref := time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC)

	events := []*models.Event{
		eventOn("e1", time.Date(2024, time.July, 3, 10, 0, 0, 0, time.UTC)),
		eventOn("e2", time.Date(2024, time.July, 3, 19, 0, 0, 0, time.UTC)),
		eventOn("e3", time.Date(2024, time.July, 9, 9, 0, 0, 0, time.UTC)),
		eventOn("june", time.Date(2024, time.June, 30, 23, 59, 0, 0, time.UTC)),
	}

	got := ComputeMonthlyDistribution(events, ref)

	if len(got) != 2 {
		t.Fatalf("expected 2 day buckets, got %d", len(got))
	}
	if got[0].Day != "3" || got[0].Count != 2 {
		t.Errorf("expected (3,2) first, got (%s,%d)", got[0].Day, got[0].Count)
	}
	if got[1].Day != "9" || got[1].Count != 1 {
		t.Errorf("expected (9,1) second, got (%s,%d)", got[1].Day, got[1].Count)
	}
}

func TestComputeMonthlyDistributionFirstOccurrenceOrder(t *testing.T) {
	ref := time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC)

	// Day 9 appears before day 3 in the input, so its bucket comes first
	events := []*models.Event{
		eventOn("e1", time.Date(2024, time.July, 9, 9, 0, 0, 0, time.UTC)),
		eventOn("e2", time.Date(2024, time.July, 3, 10, 0, 0, 0, time.UTC)),
		eventOn("e3", time.Date(2024, time.July, 3, 19, 0, 0, 0, time.UTC)),
	}

	got := ComputeMonthlyDistribution(events, ref)

	if len(got) != 2 {
		t.Fatalf("expected 2 day buckets, got %d", len(got))
	}
	if got[0].Day != "9" || got[1].Day != "3" {
		t.Errorf("buckets must keep first-occurrence order, got [%s, %s]", got[0].Day, got[1].Day)
	}
}

func TestComputeMonthlyDistributionBoundsInclusive(t *testing.T) {
	ref := time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)

	events := []*models.Event{
		eventOn("first", time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)),
		eventOn("last", time.Date(2024, time.July, 31, 23, 59, 59, 0, time.UTC)),
		eventOn("next month", time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)),
	}

	got := ComputeMonthlyDistribution(events, ref)

	if len(got) != 2 {
		t.Fatalf("expected both month boundaries included and August excluded, got %d buckets", len(got))
	}
	if got[0].Day != "1" || got[1].Day != "31" {
		t.Errorf("expected days [1, 31], got [%s, %s]", got[0].Day, got[1].Day)
	}
}

func TestComputeMonthlyDistributionEmpty(t *testing.T) {
	got := ComputeMonthlyDistribution(nil, time.Now())
	if len(got) != 0 {
		t.Errorf("expected no buckets for no events, got %d", len(got))
	}
}

func TestBuildDashboard(t *testing.T) {
	userID := uuid.New()
	ref := time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC)

	created := eventOn("mine", time.Date(2024, time.July, 3, 10, 0, 0, 0, time.UTC))
	created.UserID = userID
	created.CurrentAttendees = 5

	attended := eventOn("joined", time.Date(2024, time.July, 9, 10, 0, 0, 0, time.UTC))
	attended.CurrentAttendees = 2

	// Also attending own event: must not double count
	store := newFakeStore(created, attended)
	store.records[pairKey(created.ID, userID)] = true
	store.records[pairKey(attended.ID, userID)] = true

	as := NewAnalyticsService(store, store, testLogger())

	dashboard, err := as.BuildDashboard(context.Background(), userID, "", ref)
	if err != nil {
		t.Fatalf("BuildDashboard returned error: %v", err)
	}

	if len(dashboard.Events) != 2 {
		t.Fatalf("expected 2 unique events, got %d", len(dashboard.Events))
	}
	if len(dashboard.AttendanceRates) != 2 {
		t.Errorf("expected 2 attendance rates, got %d", len(dashboard.AttendanceRates))
	}
	if len(dashboard.MonthlyDistribution) != 2 {
		t.Errorf("expected 2 day buckets, got %d", len(dashboard.MonthlyDistribution))
	}

	total := 0
	for _, dc := range dashboard.MonthlyDistribution {
		total += dc.Count
	}
	if total != 2 {
		t.Errorf("expected 2 events counted in the month, got %d", total)
	}
}

func TestBuildDashboardUnauthenticated(t *testing.T) {
	store := newFakeStore()
	as := NewAnalyticsService(store, store, testLogger())

	if _, err := as.BuildDashboard(context.Background(), uuid.Nil, "", time.Now()); err == nil {
		t.Fatal("expected error for nil user ID")
	}
}
