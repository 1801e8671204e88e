package scheduling

import (
	"iter"
	"slices"
	"sync"

	"multitrackscheduling/internal/domain"
)

// Store owns every active event, keyed by id. It is the only place events live;
// callers always receive copies.
//
// Stored id slices are never modified in place: Update installs fresh slices, so
// a snapshot taken under the read lock stays valid after the lock is released.
type Store struct {
	mu     sync.RWMutex
	events map[string]domain.Event
	order  []string
}

// NewStore returns an empty event store.
func NewStore() *Store {
	return &Store{events: make(map[string]domain.Event)}
}

// Get returns a copy of the event with the given id.
func (s *Store) Get(id string) (domain.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return domain.Event{}, false
	}
	return e.Clone(), true
}

// Contains reports whether an event with the given id is stored.
func (s *Store) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.events[id]
	return ok
}

// Insert stores a copy of e. It reports false and changes nothing if the id is taken.
func (s *Store) Insert(e domain.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[e.ID]; ok {
		return false
	}
	s.events[e.ID] = e.Clone()
	s.order = append(s.order, e.ID)
	return true
}

// Update applies fn to a copy of the stored event and stores the result.
// fn must not change the id.
func (s *Store) Update(id string, fn func(e *domain.Event)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return false
	}
	e = e.Clone()
	fn(&e)
	e.ID = id
	s.events[id] = e
	return true
}

// Remove deletes the event and reports whether it was present.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return false
	}
	delete(s.events, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return true
}

// Len returns the number of stored events.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// All yields every event in insertion order.
func (s *Store) All() iter.Seq[domain.Event] {
	return s.filter(func(domain.Event) bool { return true })
}

// EventsInRoom yields the events booked into roomID.
func (s *Store) EventsInRoom(roomID string) iter.Seq[domain.Event] {
	return s.filter(func(e domain.Event) bool { return e.RoomID == roomID })
}

// EventsForSpeaker yields the events featuring speakerID.
func (s *Store) EventsForSpeaker(speakerID string) iter.Seq[domain.Event] {
	return s.filter(func(e domain.Event) bool { return e.HasSpeaker(speakerID) })
}

// EventsForUser yields the events userID speaks at or attends.
func (s *Store) EventsForUser(userID string) iter.Seq[domain.Event] {
	return s.filter(func(e domain.Event) bool { return e.Involves(userID) })
}

func (s *Store) filter(keep func(domain.Event) bool) iter.Seq[domain.Event] {
	return func(yield func(domain.Event) bool) {
		for _, e := range s.snapshot() {
			if !keep(e) {
				continue
			}
			if !yield(e.Clone()) {
				return
			}
		}
	}
}

func (s *Store) snapshot() []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Event, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.events[id])
	}
	return out
}
