package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

// ErrDefaultProfileProtected is returned when a caller tries to delete the
// profile with is_default = true. There must always be one.
var ErrDefaultProfileProtected = errors.New("the default profile cannot be deleted")

// ListProfiles returns every profile with its ordered rule IDs attached.
func (s *Store) ListProfiles(ctx context.Context) ([]types.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, icon, color, is_active, is_default, created_at, updated_at
		FROM profiles ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []types.Profile
	for rows.Next() {
		var p types.Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.Icon, &p.Color, &p.IsActive, &p.IsDefault, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range profiles {
		ids, err := s.ruleIDsForProfile(ctx, profiles[i].ID)
		if err != nil {
			return nil, err
		}
		profiles[i].RuleIDs = ids
	}
	return profiles, nil
}

// ActiveProfile returns the profile currently flagged is_active, or
// ok == false if none is set (the caller falls back to the default).
func (s *Store) ActiveProfile(ctx context.Context) (types.Profile, bool, error) {
	return s.profileWhere(ctx, "is_active = 1")
}

// DefaultProfile returns the profile flagged is_default.
func (s *Store) DefaultProfile(ctx context.Context) (types.Profile, bool, error) {
	return s.profileWhere(ctx, "is_default = 1")
}

func (s *Store) profileWhere(ctx context.Context, where string) (types.Profile, bool, error) {
	var p types.Profile
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, icon, color, is_active, is_default, created_at, updated_at
		FROM profiles WHERE `+where+` LIMIT 1
	`)
	if err := row.Scan(&p.ID, &p.Name, &p.Icon, &p.Color, &p.IsActive, &p.IsDefault, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return types.Profile{}, false, nil
		}
		return types.Profile{}, false, err
	}
	ids, err := s.ruleIDsForProfile(ctx, p.ID)
	if err != nil {
		return types.Profile{}, false, err
	}
	p.RuleIDs = ids
	return p, true, nil
}

func (s *Store) ruleIDsForProfile(ctx context.Context, profileID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT rule_id FROM profile_rules WHERE profile_id = ? ORDER BY sort_order ASC
	`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SaveProfile inserts or replaces a profile header. Use SetProfileRules
// separately to manage its rule bindings.
func (s *Store) SaveProfile(ctx context.Context, p types.Profile) error {
	now := time.Now().Format(types.TimestampLayout)
	if p.CreatedAt == "" {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, name, icon, color, is_active, is_default, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			icon = excluded.icon,
			color = excluded.color,
			is_active = excluded.is_active,
			is_default = excluded.is_default,
			updated_at = excluded.updated_at
	`, p.ID, p.Name, p.Icon, p.Color, boolToInt(p.IsActive), boolToInt(p.IsDefault), p.CreatedAt, p.UpdatedAt)
	return err
}

// Activate marks profileID active and every other profile inactive, in a
// single transaction so exactly one profile is ever active.
func (s *Store) Activate(ctx context.Context, profileID string) error {
	return s.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE profiles SET is_active = 0`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `UPDATE profiles SET is_active = 1 WHERE id = ?`, profileID)
		return err
	})
}

// DeleteProfile removes a profile; its rule bindings, watched folders and
// schedules cascade. The default profile is protected and can never be
// deleted.
func (s *Store) DeleteProfile(ctx context.Context, profileID string) error {
	var isDefault bool
	err := s.db.QueryRowContext(ctx, `SELECT is_default FROM profiles WHERE id = ?`, profileID).Scan(&isDefault)
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	if isDefault {
		return ErrDefaultProfileProtected
	}

	_, err = s.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, profileID)
	return err
}
