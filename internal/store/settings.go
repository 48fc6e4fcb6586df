package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

// ConflictStrategyKey is the settings row the executor's default conflict
// strategy is read from when a caller doesn't pass one explicitly.
const ConflictStrategyKey = "conflict_strategy"

// Setting reads a single key, returning ok == false when it's unset.
func (s *Store) Setting(ctx context.Context, key string) (types.Setting, bool, error) {
	var set types.Setting
	row := s.db.QueryRowContext(ctx, `SELECT key, value, updated_at FROM settings WHERE key = ?`, key)
	if err := row.Scan(&set.Key, &set.Value, &set.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return types.Setting{}, false, nil
		}
		return types.Setting{}, false, err
	}
	return set, true, nil
}

// SettingOr reads a key's value, falling back to def when unset or on
// error — used for small, non-critical reads like the pipeline's default
// conflict strategy.
func (s *Store) SettingOr(ctx context.Context, key, def string) string {
	set, ok, err := s.Setting(ctx, key)
	if err != nil || !ok {
		return def
	}
	return set.Value
}

// SetSetting upserts a single key/value pair.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().Format(types.TimestampLayout))
	return err
}

// SettingsByPrefix returns every key/value pair whose key starts with
// prefix, used by the tips engine to load all tip_state:<id> rows in one
// query instead of one round trip per heuristic.
func (s *Store) SettingsByPrefix(ctx context.Context, prefix string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings WHERE key LIKE ? || '%'`, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}

// DeleteSetting removes a single key.
func (s *Store) DeleteSetting(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key)
	return err
}
