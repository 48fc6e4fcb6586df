package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

// CreateRun inserts a new run header in the "running" state.
func (s *Store) CreateRun(ctx context.Context, r types.Run) error {
	if r.StartedAt == "" {
		r.StartedAt = time.Now().Format(types.TimestampLayout)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, profile_id, run_type, status, source_folder, total_files, moved_files, skipped_files, error_files, started_at, completed_at, rolled_back_at, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.ProfileID, r.RunType, r.Status, r.SourceFolder, r.TotalFiles, r.MovedFiles, r.SkippedFiles, r.ErrorFiles, r.StartedAt, r.CompletedAt, r.RolledBackAt, r.ErrorMessage)
	return err
}

// CompleteRun finalizes a run header once the executor has finished.
func (s *Store) CompleteRun(ctx context.Context, runID string, status types.RunStatus, moved, skipped, errors int, errorMessage string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE runs SET status = ?, moved_files = ?, skipped_files = ?, error_files = ?, completed_at = ?, error_message = ?
		WHERE id = ?
	`, status, moved, skipped, errors, time.Now().Format(types.TimestampLayout), errorMessage, runID)
	return err
}

// MarkRunRolledBack updates a run header's status, rolled_back_at, and
// counters after a rollback pass completes: moved_files becomes the
// number of completed entries that were not reverted, skipped_files resets
// to zero, and error_files becomes the rollback's own error count.
func (s *Store) MarkRunRolledBack(ctx context.Context, runID string, status types.RunStatus, movedFiles, errorFiles int) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE runs SET status = ?, moved_files = ?, skipped_files = 0, error_files = ?, rolled_back_at = ? WHERE id = ?
	`, status, movedFiles, errorFiles, time.Now().Format(types.TimestampLayout), runID)
	return err
}

// Run fetches a single run header by ID.
func (s *Store) Run(ctx context.Context, runID string) (types.Run, bool, error) {
	var r types.Run
	row := s.db.QueryRowContext(ctx, `
		SELECT id, profile_id, run_type, status, source_folder, total_files, moved_files, skipped_files, error_files, started_at, completed_at, rolled_back_at, error_message
		FROM runs WHERE id = ?
	`, runID)
	if err := row.Scan(&r.ID, &r.ProfileID, &r.RunType, &r.Status, &r.SourceFolder, &r.TotalFiles, &r.MovedFiles, &r.SkippedFiles, &r.ErrorFiles, &r.StartedAt, &r.CompletedAt, &r.RolledBackAt, &r.ErrorMessage); err != nil {
		if err == sql.ErrNoRows {
			return types.Run{}, false, nil
		}
		return types.Run{}, false, err
	}
	return r, true, nil
}

// ListRuns returns run headers newest-first, for history/status views.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]types.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, profile_id, run_type, status, source_folder, total_files, moved_files, skipped_files, error_files, started_at, completed_at, rolled_back_at, error_message
		FROM runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []types.Run
	for rows.Next() {
		var r types.Run
		if err := rows.Scan(&r.ID, &r.ProfileID, &r.RunType, &r.Status, &r.SourceFolder, &r.TotalFiles, &r.MovedFiles, &r.SkippedFiles, &r.ErrorFiles, &r.StartedAt, &r.CompletedAt, &r.RolledBackAt, &r.ErrorMessage); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// WriteRunItem persists one journal entry. This is the organizer.Journal
// implementation: each call is a standalone statement, not wrapped in the
// run's own transaction, so one failed write never blocks or rolls back
// entries already recorded for the same run.
func (s *Store) WriteRunItem(item types.RunItem) error {
	if item.ExecutedAt == "" {
		item.ExecutedAt = time.Now().Format(types.TimestampLayout)
	}
	_, err := s.db.Exec(`
		INSERT INTO run_items (id, run_id, rule_id, original_path, destination_path, file_size_bytes, action_type, status, conflict_strategy, error_message, executed_at, rolled_back_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.ID, item.RunID, item.RuleID, item.OriginalPath, item.DestinationPath, item.FileSizeBytes, item.ActionType, item.Status, item.ConflictStrategy, item.ErrorMessage, item.ExecutedAt, item.RolledBackAt)
	return err
}

// RunItems returns every journal entry for a run, in the order they were
// written. This is the organizer.JournalReader implementation rollback
// replays from.
func (s *Store) RunItems(runID string) ([]types.RunItem, error) {
	rows, err := s.db.Query(`
		SELECT id, run_id, rule_id, original_path, destination_path, file_size_bytes, action_type, status, conflict_strategy, error_message, executed_at, rolled_back_at
		FROM run_items WHERE run_id = ? ORDER BY rowid ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []types.RunItem
	for rows.Next() {
		var it types.RunItem
		if err := rows.Scan(&it.ID, &it.RunID, &it.RuleID, &it.OriginalPath, &it.DestinationPath, &it.FileSizeBytes, &it.ActionType, &it.Status, &it.ConflictStrategy, &it.ErrorMessage, &it.ExecutedAt, &it.RolledBackAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// MarkRunItem updates a single journal entry's status after a rollback
// attempt, completing the organizer.JournalReader implementation.
func (s *Store) MarkRunItem(itemID string, status types.RunItemStatus, rolledBackAt string) error {
	_, err := s.db.Exec(`
		UPDATE run_items SET status = ?, rolled_back_at = ? WHERE id = ?
	`, status, rolledBackAt, itemID)
	return err
}
