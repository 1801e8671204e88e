package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"multitrackscheduling/internal/domain"
)

const sessionizeIDPrefix = "sessionize-"

// codeSpeakerNotLinked marks a session whose Sessionize speaker has no user link.
const codeSpeakerNotLinked = "speaker_not_linked"

type importService struct {
	fetcher        domain.SessionFetcher
	links          domain.SpeakerLinkRepository
	schedule       domain.ScheduleService
	roomCapacity   int
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewImportService returns an ImportService that pulls a Sessionize schedule
// and feeds it through schedule. Sessionize speakers are mapped onto users
// through links. Imported rooms and events get roomCapacity.
func NewImportService(fetcher domain.SessionFetcher, links domain.SpeakerLinkRepository, schedule domain.ScheduleService, roomCapacity int, logger *slog.Logger, timeout time.Duration) domain.ImportService {
	return &importService{
		fetcher:        fetcher,
		links:          links,
		schedule:       schedule,
		roomCapacity:   roomCapacity,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// ImportSessionize adds every Sessionize room and session it can. Items the
// engine rejects are listed in the report; a save failure stops the import.
func (s *importService) ImportSessionize(ctx context.Context, sessionizeID string) (*domain.ImportReport, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	data, err := s.fetcher.Fetch(fetchCtx, sessionizeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessionize data: %w", err)
	}

	report := &domain.ImportReport{Rejected: []domain.Rejection{}}
	linkCtx, cancelLinks := context.WithTimeout(ctx, s.contextTimeout)
	defer cancelLinks()
	userIDs, err := s.links.ResolveSpeakers(linkCtx, domain.SpeakerSourceSessionize, sessionSpeakerIDs(data.Sessions))
	if err != nil {
		return report, fmt.Errorf("failed to resolve sessionize speakers: %w", err)
	}

	for _, r := range data.Rooms {
		id := sessionizeRoomID(r.ID)
		res, err := s.schedule.AddRoom(ctx, id, s.roomCapacity)
		if err != nil {
			return report, err
		}
		switch res {
		case domain.RoomAdded:
			report.RoomsAdded++
		case domain.RoomAlreadyExists:
			// re-import reuses the room
		default:
			report.Rejected = append(report.Rejected, domain.Rejection{Kind: domain.RejectedRoom, ID: id, Code: res.Code()})
		}
	}

	for _, session := range data.Sessions {
		req, ok := sessionToRequest(session, userIDs, s.roomCapacity)
		if !ok {
			report.Rejected = append(report.Rejected, domain.Rejection{Kind: domain.RejectedEvent, ID: req.ID, Code: codeSpeakerNotLinked})
			continue
		}
		o, err := s.schedule.CreateEvent(ctx, req)
		if err != nil {
			return report, err
		}
		if o != domain.EventAdded {
			report.Rejected = append(report.Rejected, domain.Rejection{Kind: domain.RejectedEvent, ID: req.ID, Code: o.Code()})
			continue
		}
		report.EventsAdded++
	}

	s.logger.InfoContext(ctx, "sessionize import finished",
		"sessionize_id", sessionizeID,
		"rooms_added", report.RoomsAdded,
		"events_added", report.EventsAdded,
		"rejected", len(report.Rejected))
	return report, nil
}

func sessionizeRoomID(id int) string {
	return sessionizeIDPrefix + strconv.Itoa(id)
}

func sessionSpeakerIDs(sessions []domain.SessionFetcherSession) []string {
	var ids []string
	for _, session := range sessions {
		for _, id := range session.Speakers {
			if !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// sessionToRequest builds the event for session, translating speakers through
// userIDs. It reports false if a speaker has no linked user.
func sessionToRequest(session domain.SessionFetcherSession, userIDs map[string]string, capacity int) (domain.EventRequest, bool) {
	t := domain.NoSpeaker
	switch {
	case len(session.Speakers) == 1:
		t = domain.SingleSpeaker
	case len(session.Speakers) > 1:
		t = domain.MultiSpeaker
	}
	req := domain.EventRequest{
		ID:       sessionizeIDPrefix + session.ID,
		Type:     t,
		Capacity: capacity,
		Start:    session.StartsAt,
		End:      session.EndsAt,
		RoomID:   sessionizeRoomID(session.RoomID),
	}
	for _, id := range session.Speakers {
		userID, ok := userIDs[id]
		if !ok {
			return req, false
		}
		req.SpeakerIDs = append(req.SpeakerIDs, userID)
	}
	return req, true
}
