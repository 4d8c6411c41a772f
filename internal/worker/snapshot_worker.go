package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Archiver uploads a snapshot of the data document.
type Archiver interface {
	Archive(ctx context.Context) (string, error)
}

// SnapshotWorker archives the data document on a cron schedule.
type SnapshotWorker struct {
	archiver Archiver
	schedule string
	cron     *cron.Cron
}

// NewSnapshotWorker validates schedule (standard cron or a descriptor such
// as @daily) and constructs a SnapshotWorker.
func NewSnapshotWorker(archiver Archiver, schedule string, loc *time.Location) (*SnapshotWorker, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid snapshot schedule %q: %w", schedule, err)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &SnapshotWorker{
		archiver: archiver,
		schedule: schedule,
		cron:     cron.New(cron.WithLocation(loc)),
	}, nil
}

// Start schedules the job and blocks until ctx is cancelled. A snapshot in
// progress is allowed to finish before Start returns.
func (w *SnapshotWorker) Start(ctx context.Context) {
	if _, err := w.cron.AddFunc(w.schedule, func() { w.run(ctx) }); err != nil {
		log.Error().Err(err).Str("schedule", w.schedule).Msg("Failed to schedule snapshot worker")
		return
	}
	log.Info().Str("schedule", w.schedule).Msg("Starting snapshot worker")
	w.cron.Start()

	<-ctx.Done()
	<-w.cron.Stop().Done()
	log.Info().Msg("Snapshot worker stopped")
}

func (w *SnapshotWorker) run(ctx context.Context) {
	key, err := w.archiver.Archive(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to archive snapshot")
		return
	}
	log.Info().Str("key", key).Msg("Snapshot archived")
}
