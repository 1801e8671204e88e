package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"multitrackscheduling/internal/domain"

	"github.com/lib/pq"
)

type scheduleRepository struct {
	DB *sql.DB
}

// NewScheduleRepository returns a ScheduleRepository backed by the rooms and events tables.
func NewScheduleRepository(db *sql.DB) domain.ScheduleRepository {
	return &scheduleRepository{DB: db}
}

func (r *scheduleRepository) LoadSchedule(ctx context.Context) (domain.Snapshot, error) {
	rooms, err := r.listRooms(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("list rooms: %w", err)
	}
	events, err := r.listEvents(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("list events: %w", err)
	}
	return domain.Snapshot{Rooms: rooms, Events: events}, nil
}

func (r *scheduleRepository) listRooms(ctx context.Context) ([]domain.Room, error) {
	query := `
		SELECT id, capacity
		FROM rooms
		ORDER BY position
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rooms := []domain.Room{}
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.Capacity); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *scheduleRepository) listEvents(ctx context.Context) ([]domain.Event, error) {
	query := `
		SELECT id, type, capacity, start_time, end_time, room_id, speaker_ids, attendee_ids
		FROM events
		ORDER BY position
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := []domain.Event{}
	for rows.Next() {
		var (
			e       domain.Event
			typeStr string
		)
		if err := rows.Scan(&e.ID, &typeStr, &e.Capacity, &e.Start, &e.End, &e.RoomID,
			pq.Array(&e.SpeakerIDs), pq.Array(&e.AttendeeIDs)); err != nil {
			return nil, err
		}
		if e.Type, err = domain.ParseEventType(typeStr); err != nil {
			return nil, fmt.Errorf("event %s: %w", e.ID, err)
		}
		if e.SpeakerIDs == nil {
			e.SpeakerIDs = []string{}
		}
		if e.AttendeeIDs == nil {
			e.AttendeeIDs = []string{}
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// SaveSchedule replaces the stored schedule with s in a single transaction.
func (r *scheduleRepository) SaveSchedule(ctx context.Context, s domain.Snapshot) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM events`); err != nil {
		return fmt.Errorf("clear events: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM rooms`); err != nil {
		return fmt.Errorf("clear rooms: %w", err)
	}
	for i, room := range s.Rooms {
		_, err = tx.ExecContext(ctx, `INSERT INTO rooms (id, capacity, position) VALUES ($1, $2, $3)`,
			room.ID, room.Capacity, i)
		if err != nil {
			return fmt.Errorf("insert room %s: %w", room.ID, err)
		}
	}
	insertEvent := `
		INSERT INTO events (id, type, capacity, start_time, end_time, room_id, speaker_ids, attendee_ids, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for i, e := range s.Events {
		_, err = tx.ExecContext(ctx, insertEvent, e.ID, e.Type.String(), e.Capacity, e.Start, e.End, e.RoomID,
			pq.Array(e.SpeakerIDs), pq.Array(e.AttendeeIDs), i)
		if err != nil {
			return fmt.Errorf("insert event %s: %w", e.ID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
