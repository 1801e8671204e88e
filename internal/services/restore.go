package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"multitrackscheduling/internal/domain"
	"multitrackscheduling/internal/scheduling"
)

// ErrRestoreRejected is returned by RestoreSchedule when stored entries no
// longer pass the schedule rules. Starting anyway would delete them on the
// next save.
var ErrRestoreRejected = errors.New("stored schedule rejected on restore")

// RestoreSchedule loads the saved schedule into engine. Every rejected entry
// is logged and the call fails, leaving the stored rows untouched.
func RestoreSchedule(ctx context.Context, engine *scheduling.Engine, repo domain.ScheduleRepository, logger *slog.Logger) error {
	snap, err := repo.LoadSchedule(ctx)
	if err != nil {
		return fmt.Errorf("load schedule: %w", err)
	}
	rejected := engine.Restore(snap)
	for _, rej := range rejected {
		logger.ErrorContext(ctx, "stored schedule entry rejected", "kind", rej.Kind, "id", rej.ID, "code", rej.Code)
	}
	if len(rejected) > 0 {
		return fmt.Errorf("%w: %d entries", ErrRestoreRejected, len(rejected))
	}
	logger.InfoContext(ctx, "schedule restored", "rooms", len(snap.Rooms), "events", len(snap.Events))
	return nil
}
