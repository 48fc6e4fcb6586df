package store

import (
	"context"
	"fmt"
	"time"

	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

// ListRules returns every rule, ordered the way the engine must evaluate
// them: sort_order ascending, priority descending as a tiebreaker, each
// fully hydrated with its conditions and actions.
func (s *Store) ListRules(ctx context.Context) ([]types.Rule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, enabled, priority, sort_order, created_at, updated_at
		FROM rules
		ORDER BY sort_order ASC, priority DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []types.Rule
	for rows.Next() {
		var r types.Rule
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &r.Enabled, &r.Priority, &r.SortOrder, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range rules {
		conditions, err := s.conditionsForRule(ctx, rules[i].ID)
		if err != nil {
			return nil, err
		}
		actions, err := s.actionsForRule(ctx, rules[i].ID)
		if err != nil {
			return nil, err
		}
		rules[i].Conditions = conditions
		rules[i].Actions = actions
	}

	return rules, nil
}

func (s *Store) conditionsForRule(ctx context.Context, ruleID string) ([]types.Condition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, rule_id, field, operator, value, logic_gate, sort_order
		FROM rule_conditions WHERE rule_id = ? ORDER BY sort_order ASC
	`, ruleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conditions []types.Condition
	for rows.Next() {
		var c types.Condition
		if err := rows.Scan(&c.ID, &c.RuleID, &c.Field, &c.Operator, &c.Value, &c.LogicGate, &c.SortOrder); err != nil {
			return nil, err
		}
		conditions = append(conditions, c)
	}
	return conditions, rows.Err()
}

func (s *Store) actionsForRule(ctx context.Context, ruleID string) ([]types.Action, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, rule_id, action_type, destination, rename_pattern, tag_name, sort_order
		FROM rule_actions WHERE rule_id = ? ORDER BY sort_order ASC
	`, ruleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []types.Action
	for rows.Next() {
		var a types.Action
		if err := rows.Scan(&a.ID, &a.RuleID, &a.ActionType, &a.Destination, &a.RenamePattern, &a.TagName, &a.SortOrder); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

// RulesForProfile returns the rules bound to a profile, ordered per
// profile_rules.sort_order — the order the selection loop walks.
func (s *Store) RulesForProfile(ctx context.Context, profileID string) ([]types.Rule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id
		FROM profile_rules pr
		JOIN rules r ON r.id = pr.rule_id
		WHERE pr.profile_id = ?
		ORDER BY pr.sort_order ASC
	`, profileID)
	if err != nil {
		return nil, err
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	all, err := s.ListRules(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]types.Rule, len(all))
	for _, r := range all {
		byID[r.ID] = r
	}

	ordered := make([]types.Rule, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			ordered = append(ordered, r)
		}
	}
	return ordered, nil
}

// SaveRule inserts or replaces a rule along with its conditions and
// actions. Each statement stands alone rather than being wrapped in a
// spanning transaction, matching this store's single-statement write model.
func (s *Store) SaveRule(ctx context.Context, r types.Rule) error {
	now := time.Now().Format(types.TimestampLayout)
	if r.CreatedAt == "" {
		r.CreatedAt = now
	}
	r.UpdatedAt = now

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO rules (id, name, description, enabled, priority, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			enabled = excluded.enabled,
			priority = excluded.priority,
			sort_order = excluded.sort_order,
			updated_at = excluded.updated_at
	`, r.ID, r.Name, r.Description, boolToInt(r.Enabled), r.Priority, r.SortOrder, r.CreatedAt, r.UpdatedAt); err != nil {
		return fmt.Errorf("save rule: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM rule_conditions WHERE rule_id = ?`, r.ID); err != nil {
		return fmt.Errorf("clear conditions: %w", err)
	}
	for _, c := range r.Conditions {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO rule_conditions (id, rule_id, field, operator, value, logic_gate, sort_order)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, c.ID, r.ID, c.Field, c.Operator, c.Value, c.LogicGate, c.SortOrder); err != nil {
			return fmt.Errorf("save condition: %w", err)
		}
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM rule_actions WHERE rule_id = ?`, r.ID); err != nil {
		return fmt.Errorf("clear actions: %w", err)
	}
	for _, a := range r.Actions {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO rule_actions (id, rule_id, action_type, destination, rename_pattern, tag_name, sort_order)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, a.ID, r.ID, a.ActionType, a.Destination, a.RenamePattern, a.TagName, a.SortOrder); err != nil {
			return fmt.Errorf("save action: %w", err)
		}
	}

	return nil
}

// DeleteRule removes a rule; conditions, actions and profile bindings cascade.
func (s *Store) DeleteRule(ctx context.Context, ruleID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM rules WHERE id = ?`, ruleID)
	return err
}

// SetProfileRules replaces the full ordered rule set bound to a profile.
// Each statement stands alone rather than being wrapped in a spanning
// transaction, matching this store's single-statement write model.
func (s *Store) SetProfileRules(ctx context.Context, profileID string, ruleIDs []string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM profile_rules WHERE profile_id = ?`, profileID); err != nil {
		return err
	}
	for i, ruleID := range ruleIDs {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO profile_rules (profile_id, rule_id, sort_order) VALUES (?, ?, ?)
		`, profileID, ruleID, i); err != nil {
			return err
		}
	}
	return nil
}
