package domain

import "strings"

// Outcome is the closed set of results returned by schedule mutations.
// Adapters switch over every value to produce user-facing text.
type Outcome int

const (
	EventAdded Outcome = iota
	EventAlreadyExists
	InvalidEventCapacity
	InvalidTimeSelection
	RoomDNE
	ExceedsRoomCapacity
	NumSpeakersMismatch
	SameSpeakerAdded
	SpeakerDNE
	AttendeeDNE
	AttendeeOverload
	DoubleBookRoom
	DoubleBookSpeaker

	// Enrollment outcomes.
	AttendeeAdded
	EventDNE
	AlreadyAttending
	EventFull
	DoubleBookAttendee
)

var outcomeNames = [...]string{
	EventAdded:           "EVENT_ADDED",
	EventAlreadyExists:   "EVENT_ALREADY_EXIST",
	InvalidEventCapacity: "INVALID_EVENT_CAPACITY",
	InvalidTimeSelection: "INVALID_TIME_SELECTION",
	RoomDNE:              "ROOM_DNE",
	ExceedsRoomCapacity:  "EXCEEDS_ROOM_CAPACITY",
	NumSpeakersMismatch:  "NUM_SPEAKERS_MISMATCH",
	SameSpeakerAdded:     "SAME_SPEAKER_ADDED",
	SpeakerDNE:           "SPEAKER_DNE",
	AttendeeDNE:          "ATTENDEE_DNE",
	AttendeeOverload:     "ATTENDEE_OVERLOAD",
	DoubleBookRoom:       "DOUBLE_BOOK_ROOM",
	DoubleBookSpeaker:    "DOUBLE_BOOK_SPEAKER",
	AttendeeAdded:        "ATTENDEE_ADDED",
	EventDNE:             "EVENT_DNE",
	AlreadyAttending:     "ALREADY_ATTENDING",
	EventFull:            "EVENT_FULL",
	DoubleBookAttendee:   "DOUBLE_BOOK_ATTENDEE",
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return "UNKNOWN"
	}
	return outcomeNames[o]
}

// Code is the lower snake_case form used in API payloads and metric labels.
func (o Outcome) Code() string {
	return strings.ToLower(o.String())
}

// Succeeded reports whether o records an accepted mutation.
func (o Outcome) Succeeded() bool {
	return o == EventAdded || o == AttendeeAdded
}
