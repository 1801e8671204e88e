package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"multitrackscheduling/internal/delivery/http/helpers"
	"multitrackscheduling/internal/domain"

	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeScheduleService returns canned results and records the last arguments.
type fakeScheduleService struct {
	rooms    []domain.Room
	events   map[string]domain.Event
	schedule []domain.Event

	roomResult domain.RoomResult
	outcome    domain.Outcome
	changed    bool
	err        error

	lastRequest   domain.EventRequest
	lastID        string
	lastRoomID    string
	lastCapacity  int
	lastType      domain.EventType
	lastThreshold int
	lastGreater   bool
	lastUserID    string
}

func (f *fakeScheduleService) AddRoom(ctx context.Context, id string, capacity int) (domain.RoomResult, error) {
	f.lastID, f.lastCapacity = id, capacity
	return f.roomResult, f.err
}

func (f *fakeScheduleService) RemoveRoom(ctx context.Context, id string) (bool, error) {
	f.lastID = id
	return f.changed, f.err
}

func (f *fakeScheduleService) ListRooms(ctx context.Context) []domain.Room { return f.rooms }

func (f *fakeScheduleService) CreateEvent(ctx context.Context, req domain.EventRequest) (domain.Outcome, error) {
	f.lastRequest = req
	return f.outcome, f.err
}

func (f *fakeScheduleService) ModifyCapacity(ctx context.Context, eventID, roomID string, capacity int) (bool, error) {
	f.lastID, f.lastRoomID, f.lastCapacity = eventID, roomID, capacity
	return f.changed, f.err
}

func (f *fakeScheduleService) CancelByID(ctx context.Context, eventID string) (bool, error) {
	f.lastID = eventID
	return f.changed, f.err
}

func (f *fakeScheduleService) CancelByType(ctx context.Context, t domain.EventType) (bool, error) {
	f.lastType = t
	return f.changed, f.err
}

func (f *fakeScheduleService) CancelBySize(ctx context.Context, threshold int, greaterOrEqual bool) (bool, error) {
	f.lastThreshold, f.lastGreater = threshold, greaterOrEqual
	return f.changed, f.err
}

func (f *fakeScheduleService) AddAttendee(ctx context.Context, eventID, attendeeID string) (domain.Outcome, error) {
	f.lastID, f.lastUserID = eventID, attendeeID
	return f.outcome, f.err
}

func (f *fakeScheduleService) RemoveAttendee(ctx context.Context, eventID, attendeeID string) (bool, error) {
	f.lastID, f.lastUserID = eventID, attendeeID
	return f.changed, f.err
}

func (f *fakeScheduleService) GetEvent(ctx context.Context, eventID string) (domain.Event, error) {
	e, ok := f.events[eventID]
	if !ok {
		return domain.Event{}, domain.ErrNotFound
	}
	return e, nil
}

func (f *fakeScheduleService) ListEvents(ctx context.Context) []domain.Event {
	out := make([]domain.Event, 0, len(f.events))
	for _, id := range []string{"E1", "E2", "E3"} {
		if e, ok := f.events[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeScheduleService) ScheduleForUser(ctx context.Context, userID string) []domain.Event {
	f.lastUserID = userID
	return f.schedule
}

// envelope decodes the response into the API envelope with data left raw.
type envelope struct {
	Data  json.RawMessage   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env
}

func decodeData[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	env := decode(t, rr)
	require.Nil(t, env.Error)
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}
