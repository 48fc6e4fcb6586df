package store

import (
	"context"
	"time"

	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

// ListSchedules returns every schedule.
func (s *Store) ListSchedules(ctx context.Context) ([]types.Schedule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, profile_id, folder_id, cron_expr, enabled, last_run_at, next_run_at, created_at, updated_at
		FROM schedules ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSchedules(rows)
}

// DueSchedules returns every enabled schedule whose next_run_at is
// non-empty and not after asOf — the scheduler poll loop's query.
func (s *Store) DueSchedules(ctx context.Context, asOf time.Time) ([]types.Schedule, error) {
	cutoff := asOf.Format(types.TimestampLayout)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, profile_id, folder_id, cron_expr, enabled, last_run_at, next_run_at, created_at, updated_at
		FROM schedules
		WHERE enabled = 1 AND next_run_at != '' AND next_run_at <= ?
		ORDER BY next_run_at ASC
	`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSchedules(rows)
}

func scanSchedules(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]types.Schedule, error) {
	var schedules []types.Schedule
	for rows.Next() {
		var sc types.Schedule
		if err := rows.Scan(&sc.ID, &sc.ProfileID, &sc.FolderID, &sc.CronExpr, &sc.Enabled, &sc.LastRunAt, &sc.NextRunAt, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
			return nil, err
		}
		schedules = append(schedules, sc)
	}
	return schedules, rows.Err()
}

// SaveSchedule inserts or replaces a schedule.
func (s *Store) SaveSchedule(ctx context.Context, sc types.Schedule) error {
	now := time.Now().Format(types.TimestampLayout)
	if sc.CreatedAt == "" {
		sc.CreatedAt = now
	}
	sc.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO schedules (id, profile_id, folder_id, cron_expr, enabled, last_run_at, next_run_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			profile_id = excluded.profile_id,
			folder_id = excluded.folder_id,
			cron_expr = excluded.cron_expr,
			enabled = excluded.enabled,
			last_run_at = excluded.last_run_at,
			next_run_at = excluded.next_run_at,
			updated_at = excluded.updated_at
	`, sc.ID, sc.ProfileID, sc.FolderID, sc.CronExpr, boolToInt(sc.Enabled), sc.LastRunAt, sc.NextRunAt, sc.CreatedAt, sc.UpdatedAt)
	return err
}

// TouchSchedule updates a schedule's last_run_at and next_run_at after the
// scheduler dispatches it, regardless of whether the run itself succeeded:
// next_run_at is recomputed unconditionally.
func (s *Store) TouchSchedule(ctx context.Context, scheduleID, lastRunAt, nextRunAt string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE schedules SET last_run_at = ?, next_run_at = ?, updated_at = ? WHERE id = ?
	`, lastRunAt, nextRunAt, time.Now().Format(types.TimestampLayout), scheduleID)
	return err
}

// DeleteSchedule removes a schedule.
func (s *Store) DeleteSchedule(ctx context.Context, scheduleID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, scheduleID)
	return err
}
