package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/joshua-takyi/gatherly/internal/models"
)

// RegistrationStatus is deliberately a tri-state: a failed store lookup is
// reported as StatusUnknown instead of being collapsed into NotRegistered, so
// callers decide whether to fail open.
type RegistrationStatus int

const (
	StatusUnknown RegistrationStatus = iota
	NotRegistered
	Registered
)

// IsRegistered collapses the tri-state for fail-open callers: Unknown reads
// as not registered.
func (s RegistrationStatus) IsRegistered() bool {
	return s == Registered
}

func (s RegistrationStatus) String() string {
	switch s {
	case Registered:
		return "registered"
	case NotRegistered:
		return "not_registered"
	default:
		return "unknown"
	}
}

// ToggleResult carries both steps' outcomes so a partial failure (record
// mutated, counter not) stays observable to the caller.
type ToggleResult struct {
	Registered    bool
	Event         *models.Event
	RecordMutated bool
	CounterSynced bool
}

type RegistrationService struct {
	events     models.EventStore
	attendance models.AttendanceStore
	logger     *slog.Logger
}

func NewRegistrationService(events models.EventStore, attendance models.AttendanceStore, logger *slog.Logger) *RegistrationService {
	return &RegistrationService{
		events:     events,
		attendance: attendance,
		logger:     logger,
	}
}

// CheckRegistration looks up whether an attendance record exists for the
// (event, user) pair. A missing ID is NotRegistered without touching the
// store; a lookup failure is logged and reported as StatusUnknown.
func (rs *RegistrationService) CheckRegistration(ctx context.Context, eventID, userID uuid.UUID) RegistrationStatus {
	if eventID == uuid.Nil || userID == uuid.Nil {
		return NotRegistered
	}

	records, err := rs.attendance.GetAttendance(ctx, eventID, userID)
	if err != nil {
		rs.logger.Error("registration check failed",
			"event_id", eventID,
			"user_id", userID,
			"error", err,
		)
		return StatusUnknown
	}

	if len(records) > 0 {
		return Registered
	}
	return NotRegistered
}

// Toggle flips the user's registration for the given event snapshot. The
// snapshot is not re-read before deciding, so the caller's believed state
// drives the branch; two stale tabs can still disagree with the store, which
// the store-side counter clamp absorbs for the counter but not for the
// record set.
//
// The record mutation and the counter adjustment are two sequential store
// calls. When the second fails after the first committed, the returned error
// wraps models.ErrPartialUpdate and the result reports RecordMutated=true,
// CounterSynced=false; the snapshot count is still adjusted locally so the
// caller's view reflects the committed record.
func (rs *RegistrationService) Toggle(ctx context.Context, event *models.Event, userID uuid.UUID, registered bool, accessToken string) (*ToggleResult, error) {
	if userID == uuid.Nil {
		return nil, models.ErrUnauthenticated
	}
	if event == nil || event.ID == uuid.Nil {
		return nil, fmt.Errorf("invalid event snapshot")
	}

	if registered {
		return rs.unregister(ctx, event, userID, accessToken)
	}
	return rs.register(ctx, event, userID, accessToken)
}

func (rs *RegistrationService) register(ctx context.Context, event *models.Event, userID uuid.UUID, accessToken string) (*ToggleResult, error) {
	if event.IsFull() {
		return nil, models.ErrEventFull
	}

	if err := rs.attendance.CreateAttendance(ctx, event.ID, userID, accessToken); err != nil {
		return nil, fmt.Errorf("failed to register: %v", err)
	}

	result := &ToggleResult{Registered: true, RecordMutated: true}

	updated, err := rs.events.AdjustAttendees(ctx, event.ID, +1)
	if err != nil {
		rs.logger.Error("attendee counter increment failed after record insert",
			"event_id", event.ID,
			"user_id", userID,
			"error", err,
		)
		snapshot := *event
		snapshot.CurrentAttendees++
		result.Event = &snapshot
		return result, fmt.Errorf("%w: %v", models.ErrPartialUpdate, err)
	}

	result.Event = updated
	result.CounterSynced = true
	return result, nil
}

func (rs *RegistrationService) unregister(ctx context.Context, event *models.Event, userID uuid.UUID, accessToken string) (*ToggleResult, error) {
	if err := rs.attendance.DeleteAttendance(ctx, event.ID, userID, accessToken); err != nil {
		return nil, fmt.Errorf("failed to unregister: %v", err)
	}

	result := &ToggleResult{Registered: false, RecordMutated: true}

	updated, err := rs.events.AdjustAttendees(ctx, event.ID, -1)
	if err != nil {
		rs.logger.Error("attendee counter decrement failed after record delete",
			"event_id", event.ID,
			"user_id", userID,
			"error", err,
		)
		snapshot := *event
		if snapshot.CurrentAttendees > 0 {
			snapshot.CurrentAttendees--
		}
		result.Event = &snapshot
		return result, fmt.Errorf("%w: %v", models.ErrPartialUpdate, err)
	}

	result.Event = updated
	result.CounterSynced = true
	return result, nil
}
