// Package scheduler runs the background polling loop that turns due
// schedules into pipeline runs: a long-lived worker goroutine driven by a
// ticker, reshaped from "drain a job queue" into "poll a due-schedule
// query on an interval".
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/CodeCraftgenz/deskcraft/internal/cron"
	"github.com/CodeCraftgenz/deskcraft/internal/logging"
	"github.com/CodeCraftgenz/deskcraft/internal/notify"
	"github.com/CodeCraftgenz/deskcraft/internal/pipeline"
	"github.com/CodeCraftgenz/deskcraft/internal/store"
	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

// warmup delays the first poll after startup, giving the rest of the
// process a moment to finish initializing before the first tick can
// dispatch a run.
const warmup = 5 * time.Second

// pollInterval is the steady-state tick.
const pollInterval = 30 * time.Second

// Scheduler owns the polling loop.
type Scheduler struct {
	store        *store.Store
	log          *logging.Logger
	pollInterval time.Duration
	moveRetries  int
}

// New builds a Scheduler. interval <= 0 falls back to pollInterval.
func New(st *store.Store, log *logging.Logger, interval time.Duration, moveRetries int) *Scheduler {
	if interval <= 0 {
		interval = pollInterval
	}
	return &Scheduler{store: st, log: log, pollInterval: interval, moveRetries: moveRetries}
}

// Run blocks, polling for due schedules until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	timer := time.NewTimer(warmup)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			s.tick(ctx)
			timer.Reset(s.pollInterval)
		}
	}
}

// tick dispatches every currently-due schedule and then recomputes each
// one's last_run_at/next_run_at, regardless of whether the dispatched run
// itself succeeded: a failed run still advances the schedule rather than
// retrying indefinitely.
func (s *Scheduler) tick(ctx context.Context) {
	now := time.Now()

	due, err := s.store.DueSchedules(ctx, now)
	if err != nil {
		s.log.Errorf("scheduler: failed to load due schedules: %v", err)
		return
	}

	for _, schedule := range due {
		s.dispatch(ctx, schedule, now)
	}
}

func (s *Scheduler) dispatch(ctx context.Context, schedule types.Schedule, now time.Time) {
	lastRunAt := now.Format(types.TimestampLayout)
	nextRunAt := cron.NextRunAfter(schedule.CronExpr, now)

	defer func() {
		if err := s.store.TouchSchedule(ctx, schedule.ID, lastRunAt, nextRunAt); err != nil {
			s.log.Errorf("scheduler: failed to update schedule %s: %v", schedule.ID, err)
		}
	}()

	folder, ok, err := s.store.WatchedFolder(ctx, schedule.FolderID)
	if err != nil || !ok {
		msg := fmt.Sprintf("schedule %s references folder %s which no longer exists", schedule.ID, schedule.FolderID)
		s.log.Errorf("scheduler: %s", msg)
		notify.Critical("DeskCraft schedule could not run", msg)
		return
	}
	if !folder.Enabled {
		s.log.Warnf("scheduler: skipping schedule %s, folder %s is disabled", schedule.ID, folder.Path)
		return
	}

	outcome, err := pipeline.Run(ctx, s.store, s.log, pipeline.Options{
		ProfileID:   schedule.ProfileID,
		FolderPath:  folder.Path,
		Recurse:     false,
		RunType:     types.RunTypeScheduled,
		MoveRetries: s.moveRetries,
	})
	if err != nil {
		s.log.Errorf("scheduler: run for schedule %s failed: %v", schedule.ID, err)
		notify.Critical("DeskCraft scheduled run failed", err.Error())
		return
	}

	s.log.Successf("scheduler: schedule %s produced run %s (%d moved, %d skipped, %d errors)",
		schedule.ID, outcome.RunID, outcome.Counts.Moved, outcome.Counts.Skipped, outcome.Counts.Errors)
}
