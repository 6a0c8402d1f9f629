package models

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type AttendanceStore interface {
	GetAttendance(ctx context.Context, eventID, userID uuid.UUID) ([]AttendanceRecord, error)
	ListAttendanceByUser(ctx context.Context, userID uuid.UUID, accessToken string) ([]AttendanceRecord, error)
	CreateAttendance(ctx context.Context, eventID, userID uuid.UUID, accessToken string) error
	DeleteAttendance(ctx context.Context, eventID, userID uuid.UUID, accessToken string) error
}

func (su *SupabaseRepo) GetAttendance(ctx context.Context, eventID, userID uuid.UUID) ([]AttendanceRecord, error) {
	if eventID == uuid.Nil || userID == uuid.Nil {
		return nil, fmt.Errorf("invalid event or user ID")
	}

	raw, _, err := su.supabaseClient.From(AttendeesTable).
		Select("*", "", false).
		Eq("event_id", eventID.String()).
		Eq("user_id", userID.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance records: %v", err)
	}

	var records []AttendanceRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attendance rows: %v", err)
	}

	return records, nil
}

func (su *SupabaseRepo) ListAttendanceByUser(ctx context.Context, userID uuid.UUID, accessToken string) ([]AttendanceRecord, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("invalid user ID")
	}

	client, err := su.client(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %v", err)
	}

	raw, _, err := client.From(AttendeesTable).
		Select("event_id,user_id", "", false).
		Eq("user_id", userID.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by user: %v", err)
	}

	var records []AttendanceRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attendance rows: %v", err)
	}

	return records, nil
}

func (su *SupabaseRepo) CreateAttendance(ctx context.Context, eventID, userID uuid.UUID, accessToken string) error {
	if eventID == uuid.Nil || userID == uuid.Nil {
		return fmt.Errorf("invalid event or user ID")
	}

	client, err := su.client(accessToken)
	if err != nil {
		return fmt.Errorf("failed to create authenticated client: %v", err)
	}

	record := map[string]interface{}{
		"event_id": eventID,
		"user_id":  userID,
	}

	_, count, err := client.From(AttendeesTable).
		Insert(record, false, "", "", "exact").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to create attendance record: %v", err)
	}

	if count == 0 {
		return fmt.Errorf("no attendance record created")
	}

	return nil
}

func (su *SupabaseRepo) DeleteAttendance(ctx context.Context, eventID, userID uuid.UUID, accessToken string) error {
	if eventID == uuid.Nil || userID == uuid.Nil {
		return fmt.Errorf("invalid event or user ID")
	}

	client, err := su.client(accessToken)
	if err != nil {
		return fmt.Errorf("failed to create authenticated client: %v", err)
	}

	_, _, err = client.From(AttendeesTable).
		Delete("", "exact").
		Eq("event_id", eventID.String()).
		Eq("user_id", userID.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete attendance record: %v", err)
	}

	return nil
}
