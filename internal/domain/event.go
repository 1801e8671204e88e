package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// EventType determines how many speakers an event requires.
type EventType int

const (
	NoSpeaker EventType = iota
	SingleSpeaker
	MultiSpeaker
)

var eventTypeNames = map[EventType]string{
	NoSpeaker:     "NO_SPEAKER",
	SingleSpeaker: "SINGLE_SPEAKER",
	MultiSpeaker:  "MULTI_SPEAKER",
}

func (t EventType) String() string {
	if s, ok := eventTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Valid reports whether t is one of the declared event types.
func (t EventType) Valid() bool {
	_, ok := eventTypeNames[t]
	return ok
}

// AcceptsSpeakerCount reports whether n speakers satisfy the cardinality of t:
// 0 for NoSpeaker, exactly 1 for SingleSpeaker, 2 or more for MultiSpeaker.
func (t EventType) AcceptsSpeakerCount(n int) bool {
	switch t {
	case NoSpeaker:
		return n == 0
	case SingleSpeaker:
		return n == 1
	case MultiSpeaker:
		return n >= 2
	}
	return false
}

// ParseEventType parses the canonical name (case-insensitive) of an event type.
func ParseEventType(s string) (EventType, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for t, n := range eventTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown event type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t EventType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown event type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *EventType) UnmarshalText(b []byte) error {
	parsed, err := ParseEventType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Event is a scheduled conference event occupying a room for [Start, End).
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type" swaggertype:"string" enums:"NO_SPEAKER,SINGLE_SPEAKER,MULTI_SPEAKER"`
	Capacity    int       `json:"capacity"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	RoomID      string    `json:"room_id"`
	SpeakerIDs  []string  `json:"speaker_ids"`
	AttendeeIDs []string  `json:"attendee_ids"`
}

// Occupancy is the number of speakers plus attendees assigned to the event.
func (e Event) Occupancy() int {
	return len(e.SpeakerIDs) + len(e.AttendeeIDs)
}

// Overlaps reports whether the half-open ranges [e.Start, e.End) and [start, end) intersect.
func (e Event) Overlaps(start, end time.Time) bool {
	return e.Start.Before(end) && start.Before(e.End)
}

// HasSpeaker reports whether id is one of the event's speakers.
func (e Event) HasSpeaker(id string) bool {
	return slices.Contains(e.SpeakerIDs, id)
}

// HasAttendee reports whether id is enrolled as an attendee.
func (e Event) HasAttendee(id string) bool {
	return slices.Contains(e.AttendeeIDs, id)
}

// Involves reports whether id takes part in the event as speaker or attendee.
func (e Event) Involves(id string) bool {
	return e.HasSpeaker(id) || e.HasAttendee(id)
}

// Clone returns a deep copy so the id slices never alias the receiver's.
func (e Event) Clone() Event {
	c := e
	c.SpeakerIDs = cloneIDs(e.SpeakerIDs)
	c.AttendeeIDs = cloneIDs(e.AttendeeIDs)
	return c
}

func cloneIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// EventRequest describes a candidate event submitted for admission to the schedule.
type EventRequest struct {
	ID          string
	Type        EventType
	Capacity    int
	Start       time.Time
	End         time.Time
	RoomID      string
	SpeakerIDs  []string
	AttendeeIDs []string
}

// Request returns the EventRequest that would recreate e.
func (e Event) Request() EventRequest {
	return EventRequest{
		ID:          e.ID,
		Type:        e.Type,
		Capacity:    e.Capacity,
		Start:       e.Start,
		End:         e.End,
		RoomID:      e.RoomID,
		SpeakerIDs:  cloneIDs(e.SpeakerIDs),
		AttendeeIDs: cloneIDs(e.AttendeeIDs),
	}
}
