package models

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
)

type EventStore interface {
	GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	ListEventsByOwner(ctx context.Context, ownerID uuid.UUID, accessToken string) ([]*Event, error)
	ListEventsByIDs(ctx context.Context, ids []uuid.UUID) ([]*Event, error)
	CreateEvent(ctx context.Context, event *Event, accessToken string) (*Event, error)
	UpdateEventFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}, accessToken string) (*Event, error)
	AdjustAttendees(ctx context.Context, id uuid.UUID, delta int) (*Event, error)
}

func (su *SupabaseRepo) GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid event ID")
	}

	raw, _, err := su.supabaseClient.From(EventsTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get event by ID: %v", err)
	}

	// Supabase returns an array even for single results
	var events []Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event rows: %v", err)
	}

	if len(events) == 0 {
		return nil, ErrNotFound
	}

	return &events[0], nil
}

// ListEvents returns every event ordered by date ascending, the home-listing
// order.
func (su *SupabaseRepo) ListEvents(ctx context.Context) ([]*Event, error) {
	raw, _, err := su.supabaseClient.From(EventsTable).
		Select("*", "", false).
		Order("date", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %v", err)
	}

	return unmarshalEvents(raw)
}

func (su *SupabaseRepo) ListEventsByOwner(ctx context.Context, ownerID uuid.UUID, accessToken string) ([]*Event, error) {
	if ownerID == uuid.Nil {
		return nil, fmt.Errorf("invalid owner ID")
	}

	client, err := su.client(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %v", err)
	}

	raw, _, err := client.From(EventsTable).
		Select("*", "", false).
		Eq("user_id", ownerID.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list events by owner: %v", err)
	}

	return unmarshalEvents(raw)
}

func (su *SupabaseRepo) ListEventsByIDs(ctx context.Context, ids []uuid.UUID) ([]*Event, error) {
	if len(ids) == 0 {
		return []*Event{}, nil
	}

	stringed := make([]string, 0, len(ids))
	for _, id := range ids {
		stringed = append(stringed, id.String())
	}

	raw, _, err := su.supabaseClient.From(EventsTable).
		Select("*", "", false).
		In("id", stringed).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list events by IDs: %v", err)
	}

	return unmarshalEvents(raw)
}

func (su *SupabaseRepo) CreateEvent(ctx context.Context, event *Event, accessToken string) (*Event, error) {
	client, err := su.client(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %v", err)
	}

	eventData := map[string]interface{}{
		"id":                event.ID,
		"user_id":           event.UserID,
		"title":             event.Title,
		"description":       event.Description,
		"date":              event.Date,
		"location":          event.Location,
		"image_url":         event.ImageURL,
		"max_attendees":     event.MaxAttendees,
		"current_attendees": event.CurrentAttendees,
		"created_at":        event.CreatedAt,
	}

	raw, count, err := client.From(EventsTable).
		Insert(eventData, false, "", "", "exact").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %v", err)
	}

	var created []Event
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, fmt.Errorf("failed to unmarshal created event: %v", err)
	}

	if count == 0 || len(created) == 0 {
		return nil, fmt.Errorf("no event data returned after insert")
	}

	return &created[0], nil
}

func (su *SupabaseRepo) UpdateEventFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}, accessToken string) (*Event, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid event ID")
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	client, err := su.client(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %v", err)
	}

	raw, count, err := client.From(EventsTable).
		Update(fields, "", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %v", err)
	}

	if count == 0 {
		return nil, ErrNotFound
	}

	var updated []Event
	if err := json.Unmarshal(raw, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated event: %v", err)
	}

	if len(updated) == 0 {
		return nil, fmt.Errorf("no event data returned after update")
	}

	return &updated[0], nil
}

// AdjustAttendees applies a counter delta inside the store via the
// adjust_attendees stored procedure, which clamps at zero and at
// max_attendees and returns the updated row. Concurrent toggles therefore
// contend on the database row, not on whatever snapshot this process holds.
func (su *SupabaseRepo) AdjustAttendees(ctx context.Context, id uuid.UUID, delta int) (*Event, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid event ID")
	}

	res := su.rest.Rpc("adjust_attendees", "", map[string]interface{}{
		"p_event_id": id.String(),
		"p_delta":    delta,
	})
	if su.rest.ClientError != nil {
		return nil, fmt.Errorf("failed to adjust attendee count: %v", su.rest.ClientError)
	}

	var updated []Event
	if err := json.Unmarshal([]byte(res), &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal adjusted event: %v", err)
	}

	if len(updated) == 0 {
		return nil, ErrNotFound
	}

	return &updated[0], nil
}

func unmarshalEvents(raw []byte) ([]*Event, error) {
	var rows []Event
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event rows: %v", err)
	}

	events := make([]*Event, 0, len(rows))
	for i := range rows {
		events = append(events, &rows[i])
	}
	return events, nil
}
