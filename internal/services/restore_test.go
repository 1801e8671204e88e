package services

import (
	"context"
	"testing"
	"time"

	"multitrackscheduling/internal/directory"
	"multitrackscheduling/internal/domain"
	"multitrackscheduling/internal/metrics"
	"multitrackscheduling/internal/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Rooms: []domain.Room{{ID: "R1", Capacity: 10}},
		Events: []domain.Event{
			{ID: "E1", Type: domain.SingleSpeaker, Capacity: 5, Start: at(10, 0), End: at(11, 0),
				RoomID: "R1", SpeakerIDs: []string{"S1"}, AttendeeIDs: []string{"A1"}},
		},
	}
}

// S1 lost the speaker role and A1 the attendee role between sessions.
func TestRestoreSchedule_KeepsBookingsOfUsersWhoLostTheirRole(t *testing.T) {
	ctx := context.Background()
	repo := &fakeScheduleRepo{saves: []domain.Snapshot{storedSnapshot()}}
	dir := directory.New(map[domain.Role][]string{
		domain.RoleSpeaker:  {"S2"},
		domain.RoleAttendee: {"A2"},
	})
	engine := scheduling.NewEngine(scheduling.NewRoomRegistry(), scheduling.NewStore(), dir)

	require.NoError(t, RestoreSchedule(ctx, engine, repo, discardLogger()))

	svc := NewScheduleService(engine, repo, newFakeUserRepo(), &fakeEmailService{}, metrics.NewRecorder(), discardLogger(), time.Second)
	res, err := svc.AddRoom(ctx, "R2", 5)
	require.NoError(t, err)
	require.Equal(t, domain.RoomAdded, res)

	saved, err := repo.LoadSchedule(ctx)
	require.NoError(t, err)
	require.Len(t, saved.Events, 1)
	assert.Equal(t, storedSnapshot().Events[0], saved.Events[0])
}

func TestRestoreSchedule_RefusesWhenEntriesAreRejected(t *testing.T) {
	snap := storedSnapshot()
	clash := snap.Events[0]
	clash.ID = "E2"
	clash.SpeakerIDs = []string{"S2"}
	clash.AttendeeIDs = nil
	snap.Events = append(snap.Events, clash)
	repo := &fakeScheduleRepo{saves: []domain.Snapshot{snap}}
	engine := scheduling.NewEngine(scheduling.NewRoomRegistry(), scheduling.NewStore(), directory.New(nil))

	err := RestoreSchedule(context.Background(), engine, repo, discardLogger())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRestoreRejected)
	assert.Equal(t, 1, repo.saveCount(), "nothing is written back")
}

func TestRestoreSchedule_LoadError(t *testing.T) {
	engine := scheduling.NewEngine(scheduling.NewRoomRegistry(), scheduling.NewStore(), directory.New(nil))

	err := RestoreSchedule(context.Background(), engine, &failingLoadRepo{}, discardLogger())

	assert.ErrorIs(t, err, errBoom)
}

type failingLoadRepo struct{ fakeScheduleRepo }

func (r *failingLoadRepo) LoadSchedule(ctx context.Context) (domain.Snapshot, error) {
	return domain.Snapshot{}, errBoom
}
