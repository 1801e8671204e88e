package scheduling

import (
	"slices"
	"testing"

	"multitrackscheduling/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectIDs(seq func(func(domain.Event) bool)) []string {
	var out []string
	for e := range seq {
		out = append(out, e.ID)
	}
	return out
}

func TestStore_Lookups(t *testing.T) {
	s := NewStore()
	require.True(t, s.Insert(domain.Event{ID: "E1", RoomID: "R1", SpeakerIDs: []string{"S1"}, AttendeeIDs: []string{"A1"}}))
	require.True(t, s.Insert(domain.Event{ID: "E2", RoomID: "R2", SpeakerIDs: []string{"S1", "S2"}}))
	require.True(t, s.Insert(domain.Event{ID: "E3", RoomID: "R1", AttendeeIDs: []string{"S2"}}))
	assert.False(t, s.Insert(domain.Event{ID: "E1", RoomID: "R9"}))

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"E1", "E2", "E3"}, collectIDs(s.All()))
	assert.Equal(t, []string{"E1", "E3"}, collectIDs(s.EventsInRoom("R1")))
	assert.Equal(t, []string{"E1", "E2"}, collectIDs(s.EventsForSpeaker("S1")))
	assert.Equal(t, []string{"E2", "E3"}, collectIDs(s.EventsForUser("S2")))
	assert.Empty(t, collectIDs(s.EventsInRoom("R9")))

	e, ok := s.Get("E1")
	require.True(t, ok)
	assert.Equal(t, "R1", e.RoomID)
}

func TestStore_RemoveAndUpdate(t *testing.T) {
	s := NewStore()
	s.Insert(domain.Event{ID: "E1", Capacity: 2, AttendeeIDs: []string{"A1"}})
	s.Insert(domain.Event{ID: "E2"})

	seq := s.All()
	assert.True(t, s.Update("E1", func(e *domain.Event) {
		e.Capacity = 5
		e.AttendeeIDs = append(e.AttendeeIDs, "A2")
		e.ID = "renamed"
	}))
	assert.False(t, s.Update("nope", func(*domain.Event) {}))

	e, _ := s.Get("E1")
	assert.Equal(t, 5, e.Capacity)
	assert.Equal(t, []string{"A1", "A2"}, e.AttendeeIDs)
	assert.Equal(t, "E1", e.ID)

	assert.True(t, s.Remove("E1"))
	assert.False(t, s.Remove("E1"))
	assert.Equal(t, []string{"E2"}, collectIDs(s.All()))
	// Sequences are evaluated lazily when ranged over.
	assert.Equal(t, []string{"E2"}, collectIDs(seq))
}

func TestStore_IterationToleratesMutation(t *testing.T) {
	s := NewStore()
	for _, id := range []string{"a", "b", "c"} {
		s.Insert(domain.Event{ID: id})
	}
	for e := range s.All() {
		s.Remove(e.ID)
	}
	assert.Equal(t, 0, s.Len())
	assert.True(t, slices.Equal([]string(nil), collectIDs(s.All())))
}
