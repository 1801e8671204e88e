package controllers

import (
	"net/http"
	"testing"

	"multitrackscheduling/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeStatus_CoversEveryOutcome(t *testing.T) {
	for o := domain.EventAdded; o <= domain.DoubleBookAttendee; o++ {
		assert.NotEqual(t, http.StatusInternalServerError, outcomeStatus(o), o.String())
	}
	assert.Equal(t, http.StatusInternalServerError, outcomeStatus(domain.Outcome(99)))
}

func TestOutcomeStatus(t *testing.T) {
	tests := map[domain.Outcome]int{
		domain.EventAdded:           http.StatusCreated,
		domain.AttendeeAdded:        http.StatusOK,
		domain.DoubleBookRoom:       http.StatusConflict,
		domain.EventFull:            http.StatusConflict,
		domain.InvalidTimeSelection: http.StatusUnprocessableEntity,
		domain.SpeakerDNE:           http.StatusUnprocessableEntity,
		domain.EventDNE:             http.StatusNotFound,
	}
	for o, want := range tests {
		assert.Equal(t, want, outcomeStatus(o), o.String())
	}
}

func TestRoomResultStatus(t *testing.T) {
	assert.Equal(t, http.StatusCreated, roomResultStatus(domain.RoomAdded))
	assert.Equal(t, http.StatusConflict, roomResultStatus(domain.RoomAlreadyExists))
	assert.Equal(t, http.StatusUnprocessableEntity, roomResultStatus(domain.InvalidRoomCapacity))
}

func TestPersistedFrom(t *testing.T) {
	ok, err := persistedFrom(nil)
	assert.True(t, ok)
	assert.NoError(t, err)

	ok, err = persistedFrom(domain.ErrNotPersisted)
	assert.False(t, ok)
	assert.NoError(t, err)

	_, err = persistedFrom(errBoom)
	assert.ErrorIs(t, err, errBoom)
}
