package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

// ListWatchedFolders returns every watched folder.
func (s *Store) ListWatchedFolders(ctx context.Context) ([]types.WatchedFolder, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, path, profile_id, enabled, watch_mode, created_at, updated_at
		FROM watched_folders ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []types.WatchedFolder
	for rows.Next() {
		var f types.WatchedFolder
		if err := rows.Scan(&f.ID, &f.Path, &f.ProfileID, &f.Enabled, &f.WatchMode, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// WatchedFolder looks up a single folder by ID, used by the scheduler to
// resolve a schedule's folder_id into a path to scan.
func (s *Store) WatchedFolder(ctx context.Context, folderID string) (types.WatchedFolder, bool, error) {
	var f types.WatchedFolder
	row := s.db.QueryRowContext(ctx, `
		SELECT id, path, profile_id, enabled, watch_mode, created_at, updated_at
		FROM watched_folders WHERE id = ?
	`, folderID)
	if err := row.Scan(&f.ID, &f.Path, &f.ProfileID, &f.Enabled, &f.WatchMode, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return types.WatchedFolder{}, false, nil
		}
		return types.WatchedFolder{}, false, err
	}
	return f, true, nil
}

// SaveWatchedFolder inserts or replaces a watched folder.
func (s *Store) SaveWatchedFolder(ctx context.Context, f types.WatchedFolder) error {
	now := time.Now().Format(types.TimestampLayout)
	if f.CreatedAt == "" {
		f.CreatedAt = now
	}
	f.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO watched_folders (id, path, profile_id, enabled, watch_mode, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			path = excluded.path,
			profile_id = excluded.profile_id,
			enabled = excluded.enabled,
			watch_mode = excluded.watch_mode,
			updated_at = excluded.updated_at
	`, f.ID, f.Path, f.ProfileID, boolToInt(f.Enabled), f.WatchMode, f.CreatedAt, f.UpdatedAt)
	return err
}

// DeleteWatchedFolder removes a watched folder; schedules referencing it
// cascade.
func (s *Store) DeleteWatchedFolder(ctx context.Context, folderID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM watched_folders WHERE id = ?`, folderID)
	return err
}
