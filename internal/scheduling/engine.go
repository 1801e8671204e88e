package scheduling

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"multitrackscheduling/internal/domain"
)

// Engine admits, modifies and cancels events. All reads and writes of the
// schedule go through one mutex, so an overlap scan and the insert that follows
// it are observed as a single step.
type Engine struct {
	mu    sync.Mutex
	rooms *RoomRegistry
	store *Store
	users domain.UserDirectory
}

// NewEngine returns an Engine over the given registry, store and directory.
func NewEngine(rooms *RoomRegistry, store *Store, users domain.UserDirectory) *Engine {
	return &Engine{rooms: rooms, store: store, users: users}
}

// AddRoom registers a room.
func (g *Engine) AddRoom(id string, capacity int) domain.RoomResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rooms.AddRoom(id, capacity)
}

// RemoveRoom unregisters a room. It refuses while any event is booked into it.
func (g *Engine) RemoveRoom(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for range g.store.EventsInRoom(id) {
		return false
	}
	return g.rooms.RemoveRoom(id)
}

// Rooms lists rooms in registration order.
func (g *Engine) Rooms() []domain.Room {
	return g.rooms.Rooms()
}

// CreateEvent validates req and, if every rule holds, stores the event.
// Rules are checked in a fixed order and the first violation is returned;
// the schedule is untouched unless the result is EventAdded.
func (g *Engine) CreateEvent(req domain.EventRequest) domain.Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.admit(req, g.users)
}

// admit validates req against users and inserts it. The caller holds g.mu.
func (g *Engine) admit(req domain.EventRequest, users domain.UserDirectory) domain.Outcome {
	if o := g.validate(req, users); o != domain.EventAdded {
		return o
	}
	g.store.Insert(domain.Event{
		ID:          req.ID,
		Type:        req.Type,
		Capacity:    req.Capacity,
		Start:       req.Start,
		End:         req.End,
		RoomID:      req.RoomID,
		SpeakerIDs:  slices.Clone(req.SpeakerIDs),
		AttendeeIDs: withoutSpeakers(dedupe(req.AttendeeIDs), req.SpeakerIDs),
	})
	return domain.EventAdded
}

func (g *Engine) validate(req domain.EventRequest, users domain.UserDirectory) domain.Outcome {
	if g.store.Contains(req.ID) {
		return domain.EventAlreadyExists
	}
	if req.Capacity <= 0 {
		return domain.InvalidEventCapacity
	}
	if !req.End.After(req.Start) {
		return domain.InvalidTimeSelection
	}
	roomCap, ok := g.rooms.Capacity(req.RoomID)
	if !ok {
		return domain.RoomDNE
	}
	if req.Capacity > roomCap {
		return domain.ExceedsRoomCapacity
	}
	if !req.Type.AcceptsSpeakerCount(len(req.SpeakerIDs)) {
		return domain.NumSpeakersMismatch
	}
	if hasDuplicate(req.SpeakerIDs) {
		return domain.SameSpeakerAdded
	}
	for _, id := range req.SpeakerIDs {
		if !users.IsKnownSpeaker(id) {
			return domain.SpeakerDNE
		}
	}
	attendees := dedupe(req.AttendeeIDs)
	for _, id := range attendees {
		if !users.IsKnownAttendee(id) {
			return domain.AttendeeDNE
		}
	}
	if len(req.SpeakerIDs)+len(attendees) > req.Capacity {
		return domain.AttendeeOverload
	}
	if g.roomBusy(req.RoomID, req.Start, req.End, "") {
		return domain.DoubleBookRoom
	}
	for _, id := range req.SpeakerIDs {
		for e := range g.store.EventsForSpeaker(id) {
			if e.Overlaps(req.Start, req.End) {
				return domain.DoubleBookSpeaker
			}
		}
	}
	return domain.EventAdded
}

// roomBusy reports whether any event other than except overlaps [start, end) in roomID.
func (g *Engine) roomBusy(roomID string, start, end time.Time, except string) bool {
	for e := range g.store.EventsInRoom(roomID) {
		if e.ID != except && e.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// ModifyCapacity moves the event to roomID with the new capacity. It reports
// false, changing nothing, if the event or room is missing, the capacity does
// not fit the room or the current occupancy, or the target room is already
// booked for the event's time range.
func (g *Engine) ModifyCapacity(eventID, roomID string, capacity int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.store.Get(eventID)
	if !ok {
		return false
	}
	roomCap, ok := g.rooms.Capacity(roomID)
	if !ok {
		return false
	}
	if capacity <= 0 || capacity > roomCap || capacity < e.Occupancy() {
		return false
	}
	if roomID != e.RoomID && g.roomBusy(roomID, e.Start, e.End, e.ID) {
		return false
	}
	return g.store.Update(eventID, func(e *domain.Event) {
		e.Capacity = capacity
		e.RoomID = roomID
	})
}

// CancelByID removes the event and reports whether it existed.
func (g *Engine) CancelByID(eventID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.store.Remove(eventID)
}

// CancelByType removes every event of type t and reports whether any existed.
func (g *Engine) CancelByType(t domain.EventType) bool {
	return g.cancelWhere(func(e domain.Event) bool { return e.Type == t })
}

// CancelBySize removes oversized or under-filled events. With greaterOrEqual it
// removes events whose capacity is at least threshold; otherwise it removes
// events whose attendee count equals threshold (0 selects empty events).
// It reports whether any event matched.
func (g *Engine) CancelBySize(threshold int, greaterOrEqual bool) bool {
	if greaterOrEqual {
		return g.cancelWhere(func(e domain.Event) bool { return e.Capacity >= threshold })
	}
	return g.cancelWhere(func(e domain.Event) bool { return len(e.AttendeeIDs) == threshold })
}

func (g *Engine) cancelWhere(match func(domain.Event) bool) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	var ids []string
	for e := range g.store.All() {
		if match(e) {
			ids = append(ids, e.ID)
		}
	}
	for _, id := range ids {
		g.store.Remove(id)
	}
	return len(ids) > 0
}

// AddAttendee enrolls attendeeID in the event if there is a free seat and the
// attendee is not busy elsewhere at that time. A speaker of the event already
// takes part in it and gets AlreadyAttending.
func (g *Engine) AddAttendee(eventID, attendeeID string) domain.Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.store.Get(eventID)
	if !ok {
		return domain.EventDNE
	}
	if !g.users.IsKnownAttendee(attendeeID) {
		return domain.AttendeeDNE
	}
	if e.Involves(attendeeID) {
		return domain.AlreadyAttending
	}
	if e.Occupancy() >= e.Capacity {
		return domain.EventFull
	}
	for other := range g.store.EventsForUser(attendeeID) {
		if other.ID != eventID && other.Overlaps(e.Start, e.End) {
			return domain.DoubleBookAttendee
		}
	}
	g.store.Update(eventID, func(e *domain.Event) {
		e.AttendeeIDs = append(e.AttendeeIDs, attendeeID)
	})
	return domain.AttendeeAdded
}

// RemoveAttendee withdraws attendeeID from the event and reports whether it was enrolled.
func (g *Engine) RemoveAttendee(eventID, attendeeID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.store.Get(eventID)
	if !ok || !e.HasAttendee(attendeeID) {
		return false
	}
	return g.store.Update(eventID, func(e *domain.Event) {
		e.AttendeeIDs = slices.DeleteFunc(e.AttendeeIDs, func(id string) bool { return id == attendeeID })
	})
}

// Event returns a copy of the event with the given id.
func (g *Engine) Event(eventID string) (domain.Event, bool) {
	return g.store.Get(eventID)
}

// Events returns every event ordered by start time, then id.
func (g *Engine) Events() []domain.Event {
	return sortByStart(slices.Collect(g.store.All()))
}

// EventsForUser returns the events userID speaks at or attends, ordered by start time.
func (g *Engine) EventsForUser(userID string) []domain.Event {
	return sortByStart(slices.Collect(g.store.EventsForUser(userID)))
}

// Snapshot captures rooms in registration order and events in insertion order.
func (g *Engine) Snapshot() domain.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return domain.Snapshot{
		Rooms:  g.rooms.Rooms(),
		Events: slices.Collect(g.store.All()),
	}
}

// Restore replays a persisted snapshot through the room and event rules.
// Directory membership is not rechecked: a user who lost a role since the
// snapshot was saved keeps their stored bookings. Entries that fail are
// skipped and returned.
func (g *Engine) Restore(s domain.Snapshot) []domain.Rejection {
	g.mu.Lock()
	defer g.mu.Unlock()

	var rejected []domain.Rejection
	for _, r := range s.Rooms {
		if res := g.rooms.AddRoom(r.ID, r.Capacity); res != domain.RoomAdded {
			rejected = append(rejected, domain.Rejection{Kind: domain.RejectedRoom, ID: r.ID, Code: res.Code()})
		}
	}
	for _, e := range s.Events {
		if o := g.admit(e.Request(), everyone{}); o != domain.EventAdded {
			rejected = append(rejected, domain.Rejection{Kind: domain.RejectedEvent, ID: e.ID, Code: o.Code()})
		}
	}
	return rejected
}

func sortByStart(events []domain.Event) []domain.Event {
	slices.SortStableFunc(events, func(a, b domain.Event) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return events
}

func hasDuplicate(ids []string) bool {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}

// withoutSpeakers drops ids that are already speakers of the event.
func withoutSpeakers(attendees, speakers []string) []string {
	return slices.DeleteFunc(attendees, func(id string) bool { return slices.Contains(speakers, id) })
}

// everyone accepts any id as a speaker or attendee.
type everyone struct{}

func (everyone) IsKnownSpeaker(string) bool              { return true }
func (everyone) IsKnownAttendee(string) bool             { return true }
func (everyone) ListIDsByRole(role domain.Role) []string { return nil }

// dedupe returns a copy of ids without repeats, keeping first occurrences.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
