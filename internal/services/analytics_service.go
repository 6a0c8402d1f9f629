package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/gatherly/internal/models"
)

type AttendanceRate struct {
	Label      string  `json:"name"`
	Percentage float64 `json:"value"`
}

type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// Dashboard is the full analytics payload for one user's events page.
type Dashboard struct {
	Events              []*models.Event  `json:"events"`
	AttendanceRates     []AttendanceRate `json:"attendance_rates"`
	MonthlyDistribution []DayCount       `json:"monthly_distribution"`
}

type AnalyticsService struct {
	events     models.EventStore
	attendance models.AttendanceStore
	logger     *slog.Logger
}

func NewAnalyticsService(events models.EventStore, attendance models.AttendanceStore, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{
		events:     events,
		attendance: attendance,
		logger:     logger,
	}
}

// BuildDashboard fetches the user's created and attended events and derives
// the chart data from the combined, deduplicated list.
func (as *AnalyticsService) BuildDashboard(ctx context.Context, userID uuid.UUID, accessToken string, now time.Time) (*Dashboard, error) {
	if userID == uuid.Nil {
		return nil, models.ErrUnauthenticated
	}

	created, err := as.events.ListEventsByOwner(ctx, userID, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created events: %v", err)
	}

	records, err := as.attendance.ListAttendanceByUser(ctx, userID, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attendance records: %v", err)
	}

	attendedIDs := make([]uuid.UUID, 0, len(records))
	for _, r := range records {
		attendedIDs = append(attendedIDs, r.EventID)
	}

	attended, err := as.events.ListEventsByIDs(ctx, attendedIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve attended events: %v", err)
	}

	unique := AggregateEvents(created, attended)

	return &Dashboard{
		Events:              unique,
		AttendanceRates:     ComputeAttendanceRates(unique),
		MonthlyDistribution: ComputeMonthlyDistribution(unique, now),
	}, nil
}

// AggregateEvents combines created and attended events into one distinct
// list. Created events come first, so on an ID collision the created copy
// wins; output order is first-seen across the concatenation. Inputs are not
// mutated.
func AggregateEvents(created, attended []*models.Event) []*models.Event {
	seen := make(map[uuid.UUID]bool, len(created)+len(attended))
	unique := make([]*models.Event, 0, len(created)+len(attended))

	for _, list := range [][]*models.Event{created, attended} {
		for _, event := range list {
			if event == nil || seen[event.ID] {
				continue
			}
			seen[event.ID] = true
			unique = append(unique, event)
		}
	}

	return unique
}

// ComputeAttendanceRates maps each event to its fill percentage. An event
// with max_attendees = 0 rates as 0% rather than dividing by zero.
func ComputeAttendanceRates(events []*models.Event) []AttendanceRate {
	rates := make([]AttendanceRate, 0, len(events))
	for _, event := range events {
		var pct float64
		if event.MaxAttendees > 0 {
			pct = float64(event.CurrentAttendees) / float64(event.MaxAttendees) * 100
		}
		rates = append(rates, AttendanceRate{
			Label:      event.Title,
			Percentage: pct,
		})
	}
	return rates
}

// ComputeMonthlyDistribution counts events per day-of-month within the
// reference date's calendar month, bounds inclusive. Day labels are plain
// integers (no zero padding) so "9" and "09" can never split into two
// buckets; buckets appear in first-occurrence order, not sorted, and days
// with no events are omitted.
func ComputeMonthlyDistribution(events []*models.Event, reference time.Time) []DayCount {
	monthStart := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, reference.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	counts := make([]DayCount, 0)
	index := make(map[string]int)

	for _, event := range events {
		d := event.Date
		if d.Before(monthStart) || d.After(monthEnd) {
			continue
		}

		day := strconv.Itoa(d.Day())
		if i, ok := index[day]; ok {
			counts[i].Count++
			continue
		}
		index[day] = len(counts)
		counts = append(counts, DayCount{Day: day, Count: 1})
	}

	return counts
}
