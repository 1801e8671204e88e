package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"multitrackscheduling/internal/domain"
	"multitrackscheduling/internal/metrics"
	"multitrackscheduling/internal/scheduling"
)

type scheduleService struct {
	// mu orders mutations with the saves that follow them.
	mu             sync.Mutex
	engine         *scheduling.Engine
	scheduleRepo   domain.ScheduleRepository
	userRepo       domain.UserRepository
	emailService   domain.EmailService
	metrics        *metrics.Recorder
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewScheduleService returns a ScheduleService that validates through engine,
// saves the schedule after every accepted mutation, and emails participants of
// cancelled events.
func NewScheduleService(
	engine *scheduling.Engine,
	scheduleRepo domain.ScheduleRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	recorder *metrics.Recorder,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ScheduleService {
	return &scheduleService{
		engine:         engine,
		scheduleRepo:   scheduleRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		metrics:        recorder,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *scheduleService) AddRoom(ctx context.Context, id string, capacity int) (domain.RoomResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.engine.AddRoom(id, capacity)
	s.metrics.Operation("add_room", res.Code())
	if res != domain.RoomAdded {
		return res, nil
	}
	return res, s.persist(ctx, "add_room")
}

func (s *scheduleService) RemoveRoom(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok := s.engine.RemoveRoom(id)
	return ok, s.afterBool(ctx, "remove_room", ok)
}

func (s *scheduleService) ListRooms(ctx context.Context) []domain.Room {
	return s.engine.Rooms()
}

func (s *scheduleService) CreateEvent(ctx context.Context, req domain.EventRequest) (domain.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := s.engine.CreateEvent(req)
	s.metrics.Operation("create_event", o.Code())
	if o != domain.EventAdded {
		s.logger.DebugContext(ctx, "event rejected", "event_id", req.ID, "outcome", o.String())
		return o, nil
	}
	return o, s.persist(ctx, "create_event")
}

func (s *scheduleService) ModifyCapacity(ctx context.Context, eventID, roomID string, capacity int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok := s.engine.ModifyCapacity(eventID, roomID, capacity)
	return ok, s.afterBool(ctx, "modify_capacity", ok)
}

func (s *scheduleService) CancelByID(ctx context.Context, eventID string) (bool, error) {
	return s.cancel(ctx, "cancel_by_id", func() bool { return s.engine.CancelByID(eventID) })
}

func (s *scheduleService) CancelByType(ctx context.Context, t domain.EventType) (bool, error) {
	return s.cancel(ctx, "cancel_by_type", func() bool { return s.engine.CancelByType(t) })
}

func (s *scheduleService) CancelBySize(ctx context.Context, threshold int, greaterOrEqual bool) (bool, error) {
	return s.cancel(ctx, "cancel_by_size", func() bool { return s.engine.CancelBySize(threshold, greaterOrEqual) })
}

// cancel runs fn, saves, and notifies participants of every event fn removed.
func (s *scheduleService) cancel(ctx context.Context, op string, fn func() bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.engine.Events()
	ok := fn()
	err := s.afterBool(ctx, op, ok)
	if ok {
		s.notifyCancelled(ctx, s.removedSince(before))
	}
	return ok, err
}

func (s *scheduleService) removedSince(before []domain.Event) []domain.Event {
	var removed []domain.Event
	for _, e := range before {
		if _, ok := s.engine.Event(e.ID); !ok {
			removed = append(removed, e)
		}
	}
	return removed
}

func (s *scheduleService) AddAttendee(ctx context.Context, eventID, attendeeID string) (domain.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := s.engine.AddAttendee(eventID, attendeeID)
	s.metrics.Operation("add_attendee", o.Code())
	if o != domain.AttendeeAdded {
		return o, nil
	}
	return o, s.persist(ctx, "add_attendee")
}

func (s *scheduleService) RemoveAttendee(ctx context.Context, eventID, attendeeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok := s.engine.RemoveAttendee(eventID, attendeeID)
	return ok, s.afterBool(ctx, "remove_attendee", ok)
}

func (s *scheduleService) GetEvent(ctx context.Context, eventID string) (domain.Event, error) {
	e, ok := s.engine.Event(eventID)
	if !ok {
		return domain.Event{}, domain.ErrNotFound
	}
	return e, nil
}

func (s *scheduleService) ListEvents(ctx context.Context) []domain.Event {
	return s.engine.Events()
}

func (s *scheduleService) ScheduleForUser(ctx context.Context, userID string) []domain.Event {
	return s.engine.EventsForUser(userID)
}

// afterBool records a boolean operation and saves if it changed anything.
func (s *scheduleService) afterBool(ctx context.Context, op string, changed bool) error {
	s.metrics.Operation(op, strconv.FormatBool(changed))
	if !changed {
		return nil
	}
	return s.persist(ctx, op)
}

// persist saves the whole schedule. A failure is logged and returned wrapped in
// domain.ErrNotPersisted; the in-memory schedule keeps the mutation.
func (s *scheduleService) persist(ctx context.Context, op string) error {
	snap := s.engine.Snapshot()
	s.metrics.ScheduleSize(len(snap.Events), len(snap.Rooms))

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	if err := s.scheduleRepo.SaveSchedule(ctx, snap); err != nil {
		s.metrics.PersistFailed()
		s.logger.ErrorContext(ctx, "save schedule failed", "operation", op, "err", err)
		return fmt.Errorf("%w: %w", domain.ErrNotPersisted, err)
	}
	return nil
}

// notifyCancelled emails every speaker and attendee of the removed events.
// Delivery problems are logged and counted, never returned.
func (s *scheduleService) notifyCancelled(ctx context.Context, removed []domain.Event) {
	for _, e := range removed {
		seen := make(map[string]struct{}, e.Occupancy())
		for _, ids := range [][]string{e.SpeakerIDs, e.AttendeeIDs} {
			for _, id := range ids {
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
				if err := s.notifyOne(ctx, e, id); err != nil {
					s.metrics.NotifyFailed()
					s.logger.WarnContext(ctx, "cancellation notice failed", "event_id", e.ID, "user_id", id, "err", err)
				}
			}
		}
	}
}

func (s *scheduleService) notifyOne(ctx context.Context, e domain.Event, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	return s.emailService.SendEventCancelled(ctx, &domain.EventCancelledEmailData{
		Email:   user.Email,
		Name:    user.Name,
		EventID: e.ID,
		RoomID:  e.RoomID,
		Start:   e.Start,
		End:     e.End,
	})
}
