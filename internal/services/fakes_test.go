package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"multitrackscheduling/internal/directory"
	"multitrackscheduling/internal/domain"
	"multitrackscheduling/internal/metrics"
	"multitrackscheduling/internal/scheduling"

	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeScheduleRepo struct {
	mu    sync.Mutex
	saves []domain.Snapshot
	err   error
}

func (r *fakeScheduleRepo) LoadSchedule(ctx context.Context) (domain.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.saves) == 0 {
		return domain.Snapshot{}, nil
	}
	return r.saves[len(r.saves)-1], nil
}

func (r *fakeScheduleRepo) SaveSchedule(ctx context.Context, s domain.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.saves = append(r.saves, s)
	return nil
}

func (r *fakeScheduleRepo) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saves)
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*domain.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) ListIDsByRole(ctx context.Context, role domain.Role) ([]string, error) {
	var ids []string
	for _, u := range r.users {
		if u.HasRole(role) {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

type fakeEmailService struct {
	mu   sync.Mutex
	sent []domain.EventCancelledEmailData
	err  error
}

func (f *fakeEmailService) SendEventCancelled(ctx context.Context, data *domain.EventCancelledEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, *data)
	return nil
}

func (f *fakeEmailService) recipients() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.sent))
	for i, d := range f.sent {
		out[i] = d.Email
	}
	return out
}

type scheduleFixture struct {
	svc     domain.ScheduleService
	engine  *scheduling.Engine
	repo    *fakeScheduleRepo
	email   *fakeEmailService
	metrics *metrics.Recorder
}

func user(id string, roles ...domain.Role) *domain.User {
	return &domain.User{ID: id, Email: id + "@example.com", Name: id, Roles: roles}
}

func newScheduleFixture() *scheduleFixture {
	dir := directory.New(map[domain.Role][]string{
		domain.RoleSpeaker:  {"S1", "S2"},
		domain.RoleAttendee: {"A1", "A2"},
	})
	engine := scheduling.NewEngine(scheduling.NewRoomRegistry(), scheduling.NewStore(), dir)
	f := &scheduleFixture{
		engine:  engine,
		repo:    &fakeScheduleRepo{},
		email:   &fakeEmailService{},
		metrics: metrics.NewRecorder(),
	}
	users := newFakeUserRepo(
		user("S1", domain.RoleSpeaker),
		user("S2", domain.RoleSpeaker),
		user("A1", domain.RoleAttendee),
		user("A2", domain.RoleAttendee),
	)
	f.svc = NewScheduleService(engine, f.repo, users, f.email, f.metrics, discardLogger(), time.Second)
	return f
}

func at(h, m int) time.Time {
	return time.Date(2025, 3, 1, h, m, 0, 0, time.UTC)
}

// scrape returns the recorder's exposition text.
func scrape(t *testing.T, r *metrics.Recorder) string {
	t.Helper()
	rr := httptest.NewRecorder()
	r.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	return string(body)
}
