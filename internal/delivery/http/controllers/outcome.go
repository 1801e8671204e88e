package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"multitrackscheduling/internal/delivery/http/helpers"
	"multitrackscheduling/internal/domain"
)

// outcomeStatus maps a scheduling outcome to its HTTP status.
// Conflicts with existing bookings are 409, requests that can never succeed
// as written are 422, and a missing event in the path is 404.
func outcomeStatus(o domain.Outcome) int {
	switch o {
	case domain.EventAdded:
		return http.StatusCreated
	case domain.AttendeeAdded:
		return http.StatusOK
	case domain.EventAlreadyExists,
		domain.DoubleBookRoom,
		domain.DoubleBookSpeaker,
		domain.DoubleBookAttendee,
		domain.AlreadyAttending,
		domain.EventFull:
		return http.StatusConflict
	case domain.InvalidEventCapacity,
		domain.InvalidTimeSelection,
		domain.RoomDNE,
		domain.ExceedsRoomCapacity,
		domain.NumSpeakersMismatch,
		domain.SameSpeakerAdded,
		domain.SpeakerDNE,
		domain.AttendeeDNE,
		domain.AttendeeOverload:
		return http.StatusUnprocessableEntity
	case domain.EventDNE:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func roomResultStatus(r domain.RoomResult) int {
	switch r {
	case domain.RoomAdded:
		return http.StatusCreated
	case domain.RoomAlreadyExists:
		return http.StatusConflict
	case domain.InvalidRoomCapacity:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// OutcomeResult is the success payload of an event or enrollment mutation.
// Persisted is false when the change is live but could not be saved.
// swagger:model OutcomeResult
type OutcomeResult struct {
	Outcome   string        `json:"outcome"`
	Event     *domain.Event `json:"event,omitempty"`
	Persisted bool          `json:"persisted"`
}

// ChangeResult is the payload of a boolean schedule mutation.
// swagger:model ChangeResult
type ChangeResult struct {
	Changed   bool `json:"changed"`
	Persisted bool `json:"persisted"`
}

// persistedFrom splits a service error into the persisted flag and a hard failure.
func persistedFrom(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrNotPersisted):
		return false, nil
	}
	return false, err
}

// writeChange answers a boolean mutation. A false result is written as the
// given rejection; a true result as 200 with ChangeResult.
func writeChange(w http.ResponseWriter, r *http.Request, logger *slog.Logger, changed bool, err error, rejectStatus int, rejectCode, rejectMsg string) {
	persisted, err := persistedFrom(err)
	if err != nil {
		helpers.WriteInternalError(w, r, logger, err)
		return
	}
	if !changed && rejectStatus != 0 {
		helpers.WriteJSONError(w, rejectStatus, rejectCode, rejectMsg)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ChangeResult{Changed: changed, Persisted: persisted})
}
