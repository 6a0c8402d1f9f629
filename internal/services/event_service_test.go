package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/gatherly/internal/models"
)

func TestCreateEventValidation(t *testing.T) {
	store := newFakeStore()
	es := NewEventService(store)

	bad := &models.Event{Title: "no date or location"}
	if _, err := es.CreateEvent(context.Background(), bad, uuid.New(), ""); err == nil {
		t.Fatal("expected validation error for incomplete event")
	}
	if len(store.events) != 0 {
		t.Error("invalid event must not reach the store")
	}
}

func TestCreateEventAssignsOwnerAndDefaults(t *testing.T) {
	store := newFakeStore()
	es := NewEventService(store)
	ownerID := uuid.New()

	event := &models.Event{
		Title:        "Launch",
		Description:  "d",
		Date:         time.Date(2024, 7, 9, 18, 0, 0, 0, time.UTC),
		Location:     "Accra",
		MaxAttendees: 25,
		// a stale client-supplied counter must be reset
		CurrentAttendees: 7,
	}

	created, err := es.CreateEvent(context.Background(), event, ownerID, "")
	if err != nil {
		t.Fatalf("CreateEvent returned error: %v", err)
	}

	if created.ID == uuid.Nil {
		t.Error("expected a generated event ID")
	}
	if created.UserID != ownerID {
		t.Error("expected owner from claims, not payload")
	}
	if created.CurrentAttendees != 0 {
		t.Errorf("expected counter reset to 0, got %d", created.CurrentAttendees)
	}
}

func TestUpdateEventOwnershipAndScrub(t *testing.T) {
	ownerID := uuid.New()
	event := testEvent(4, 10)
	event.UserID = ownerID

	store := newFakeStore(event)
	es := NewEventService(store)

	if _, err := es.UpdateEvent(context.Background(), event.ID, map[string]interface{}{"title": "New"}, uuid.New(), ""); err == nil {
		t.Fatal("expected error when a non-owner updates the event")
	}

	fields := map[string]interface{}{
		"title":             "New",
		"current_attendees": 999,
	}
	updated, err := es.UpdateEvent(context.Background(), event.ID, fields, ownerID, "")
	if err != nil {
		t.Fatalf("UpdateEvent returned error: %v", err)
	}
	if updated.CurrentAttendees != 4 {
		t.Errorf("counter must not be editable through update, got %d", updated.CurrentAttendees)
	}
}
