package scheduling

import (
	"sync"

	"multitrackscheduling/internal/domain"
)

// RoomRegistry is the set of registered rooms, kept in registration order.
type RoomRegistry struct {
	mu       sync.RWMutex
	order    []string
	capacity map[string]int
}

// NewRoomRegistry returns an empty registry.
func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{capacity: make(map[string]int)}
}

// AddRoom registers a room. Nothing changes unless the result is RoomAdded.
func (r *RoomRegistry) AddRoom(id string, capacity int) domain.RoomResult {
	if capacity <= 0 {
		return domain.InvalidRoomCapacity
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.capacity[id]; ok {
		return domain.RoomAlreadyExists
	}
	r.capacity[id] = capacity
	r.order = append(r.order, id)
	return domain.RoomAdded
}

// Capacity returns the registered capacity of the room.
func (r *RoomRegistry) Capacity(id string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.capacity[id]
	return c, ok
}

// Exists reports whether id is a registered room.
func (r *RoomRegistry) Exists(id string) bool {
	_, ok := r.Capacity(id)
	return ok
}

// Rooms lists every room in registration order.
func (r *RoomRegistry) Rooms() []domain.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Room, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, domain.NewRoom(id, r.capacity[id]))
	}
	return out
}

// RemoveRoom unregisters the room and reports whether it was present.
// Callers are responsible for making sure no event still references it.
func (r *RoomRegistry) RemoveRoom(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.capacity[id]; !ok {
		return false
	}
	delete(r.capacity, id)
	for i, have := range r.order {
		if have == id {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of registered rooms.
func (r *RoomRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
