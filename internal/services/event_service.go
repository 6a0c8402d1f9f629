package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/gatherly/internal/connect"
	"github.com/joshua-takyi/gatherly/internal/helpers"
	"github.com/joshua-takyi/gatherly/internal/models"
)

type EventService struct {
	events models.EventStore
}

func NewEventService(events models.EventStore) *EventService {
	return &EventService{
		events: events,
	}
}

func (es *EventService) ListEvents(ctx context.Context) ([]*models.Event, error) {
	return es.events.ListEvents(ctx)
}

func (es *EventService) GetEventByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid event ID")
	}
	return es.events.GetEventByID(ctx, id)
}

func (es *EventService) CreateEvent(ctx context.Context, event *models.Event, ownerID uuid.UUID, accessToken string) (*models.Event, error) {
	if err := models.Validate.Struct(event); err != nil {
		return nil, fmt.Errorf("invalid event data provided: %v", err)
	}

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	event.UserID = ownerID
	event.CurrentAttendees = 0
	event.CreatedAt = time.Now()

	// Upload the cover image first if one was provided
	if event.ImageURL != "" {
		uploadChan := make(chan string, 1)
		errorChan := make(chan error, 1)

		go func() {
			url, uploadErr := helpers.UploadImage(ctx, connect.Cld, event.ImageURL, helpers.EventsFolder)
			if uploadErr != nil {
				errorChan <- uploadErr
				return
			}
			uploadChan <- url
		}()

		select {
		case url := <-uploadChan:
			event.ImageURL = url
		case uploadErr := <-errorChan:
			return nil, fmt.Errorf("failed to upload image: %v", uploadErr)
		case <-time.After(30 * time.Second):
			return nil, fmt.Errorf("image upload timeout")
		}
	}

	return es.events.CreateEvent(ctx, event, accessToken)
}

// UpdateEvent applies a partial field update after verifying ownership. The
// attendee counter is not editable this way; it belongs to the registration
// flow.
func (es *EventService) UpdateEvent(ctx context.Context, id uuid.UUID, fields map[string]interface{}, ownerID uuid.UUID, accessToken string) (*models.Event, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid event ID")
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}
	delete(fields, "current_attendees")
	delete(fields, "id")
	delete(fields, "user_id")

	event, err := es.events.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.UserID != ownerID {
		return nil, fmt.Errorf("only the event owner can update it")
	}

	return es.events.UpdateEventFields(ctx, id, fields, accessToken)
}
