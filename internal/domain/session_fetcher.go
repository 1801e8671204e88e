package domain

import (
	"context"
	"time"
)

// SessionFetcher fetches schedule data from Sessionize (or a test double).
type SessionFetcher interface {
	Fetch(ctx context.Context, sessionizeID string) (SessionFetcherResponse, error)
}

// SessionFetcherResponse is the Sessionize All API response shape.
type SessionFetcherResponse struct {
	Sessions []SessionFetcherSession `json:"sessions"`
	Speakers []SessionFetcherSpeaker `json:"speakers"`
	Rooms    []SessionFetcherRoom    `json:"rooms"`
}

// SessionFetcherRoom is a room in the Sessionize All response (flat list).
type SessionFetcherRoom struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Sort int    `json:"sort"`
}

// SessionFetcherSession is a session in the Sessionize All response.
type SessionFetcherSession struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	StartsAt         time.Time `json:"startsAt"`
	EndsAt           time.Time `json:"endsAt"`
	Speakers         []string  `json:"speakers"`
	RoomID           int       `json:"roomId"`
	IsServiceSession bool      `json:"isServiceSession"`
}

// SessionFetcherSpeaker is a speaker in the Sessionize All response.
type SessionFetcherSpeaker struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
}

// ImportReport summarizes a Sessionize import.
// swagger:model ImportReport
type ImportReport struct {
	RoomsAdded  int         `json:"rooms_added"`
	EventsAdded int         `json:"events_added"`
	Rejected    []Rejection `json:"rejected"`
}

// ImportService imports an external schedule into the engine.
type ImportService interface {
	ImportSessionize(ctx context.Context, sessionizeID string) (*ImportReport, error)
}

// SpeakerSourceSessionize names Sessionize as the origin of a speaker link.
const SpeakerSourceSessionize = "sessionize"

// SpeakerLinkRepository maps speaker ids of an external source onto user ids.
type SpeakerLinkRepository interface {
	// ResolveSpeakers returns user ids keyed by external id. Unlinked ids are absent.
	ResolveSpeakers(ctx context.Context, source string, externalIDs []string) (map[string]string, error)
}
