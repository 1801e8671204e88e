package domain

import (
	"context"
	"errors"
)

// ErrNotPersisted is wrapped by service errors when a mutation was applied in memory
// but the schedule could not be saved. The in-memory state is not rolled back.
var ErrNotPersisted = errors.New("schedule not persisted")

// Snapshot is the full persisted state of a schedule: rooms in registration
// order and every active event.
type Snapshot struct {
	Rooms  []Room
	Events []Event
}

// ScheduleRepository loads and saves the schedule as a whole.
type ScheduleRepository interface {
	LoadSchedule(ctx context.Context) (Snapshot, error)
	SaveSchedule(ctx context.Context, s Snapshot) error
}

// Rejection records a room or event that failed validation on restore or import.
// Code is the lower-case form of the RoomResult or Outcome that rejected it.
type Rejection struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
	Code string `json:"code"`
}

// Rejection kinds.
const (
	RejectedRoom  = "room"
	RejectedEvent = "event"
)

// ScheduleService is the adapter-facing schedule API. Every mutation goes through
// the scheduling engine; a returned error wrapping ErrNotPersisted means the
// mutation took effect but saving failed.
type ScheduleService interface {
	AddRoom(ctx context.Context, id string, capacity int) (RoomResult, error)
	RemoveRoom(ctx context.Context, id string) (bool, error)
	ListRooms(ctx context.Context) []Room

	CreateEvent(ctx context.Context, req EventRequest) (Outcome, error)
	ModifyCapacity(ctx context.Context, eventID, roomID string, capacity int) (bool, error)
	CancelByID(ctx context.Context, eventID string) (bool, error)
	CancelByType(ctx context.Context, t EventType) (bool, error)
	CancelBySize(ctx context.Context, threshold int, greaterOrEqual bool) (bool, error)

	AddAttendee(ctx context.Context, eventID, attendeeID string) (Outcome, error)
	RemoveAttendee(ctx context.Context, eventID, attendeeID string) (bool, error)

	GetEvent(ctx context.Context, eventID string) (Event, error)
	ListEvents(ctx context.Context) []Event
	ScheduleForUser(ctx context.Context, userID string) []Event
}
