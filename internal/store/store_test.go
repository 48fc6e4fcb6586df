package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	st, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSaveRule_RoundTripsConditionsAndActions(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	rule := types.Rule{
		ID: "r1", Name: "pdf-bucket", Enabled: true, Priority: 10,
		Conditions: []types.Condition{
			{ID: "c1", Field: types.FieldExtension, Operator: types.OpEquals, Value: "pdf"},
		},
		Actions: []types.Action{
			{ID: "a1", ActionType: types.ActionMoveToFolder, Destination: "/out/pdf"},
		},
	}
	require.NoError(t, st.SaveRule(ctx, rule))

	all, err := st.ListRules(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	got := all[0]
	assert.Equal(t, "pdf-bucket", got.Name)
	assert.True(t, got.Enabled)
	require.Len(t, got.Conditions, 1)
	assert.Equal(t, types.FieldExtension, got.Conditions[0].Field)
	require.Len(t, got.Actions, 1)
	assert.Equal(t, "/out/pdf", got.Actions[0].Destination)
}

func TestSaveRule_ReplacesConditionsOnUpdate(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	rule := types.Rule{
		ID: "r1", Name: "v1", Enabled: true,
		Conditions: []types.Condition{{ID: "c1", Field: types.FieldExtension, Operator: types.OpEquals, Value: "pdf"}},
	}
	require.NoError(t, st.SaveRule(ctx, rule))

	rule.Conditions = []types.Condition{{ID: "c2", Field: types.FieldFilename, Operator: types.OpContains, Value: "invoice"}}
	require.NoError(t, st.SaveRule(ctx, rule))

	all, err := st.ListRules(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Len(t, all[0].Conditions, 1)
	assert.Equal(t, types.FieldFilename, all[0].Conditions[0].Field)
}

func TestListRules_OrdersBySortOrderThenPriority(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	require.NoError(t, st.SaveRule(ctx, types.Rule{ID: "last", Name: "last", Priority: 1, SortOrder: 1}))
	require.NoError(t, st.SaveRule(ctx, types.Rule{ID: "low", Name: "low", Priority: 1, SortOrder: 0}))
	require.NoError(t, st.SaveRule(ctx, types.Rule{ID: "high", Name: "high", Priority: 10, SortOrder: 0}))

	all, err := st.ListRules(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "high", all[0].ID)
	assert.Equal(t, "low", all[1].ID)
	assert.Equal(t, "last", all[2].ID)
}

func TestDeleteRule_CascadesConditionsAndActions(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	rule := types.Rule{
		ID: "r1", Name: "r1", Enabled: true,
		Conditions: []types.Condition{{ID: "c1", Field: types.FieldExtension, Operator: types.OpEquals, Value: "pdf"}},
		Actions:    []types.Action{{ID: "a1", ActionType: types.ActionDelete}},
	}
	require.NoError(t, st.SaveRule(ctx, rule))
	require.NoError(t, st.DeleteRule(ctx, "r1"))

	all, err := st.ListRules(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRulesForProfile_PreservesBindingOrder(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	require.NoError(t, st.SaveRule(ctx, types.Rule{ID: "r1", Name: "r1", Priority: 1}))
	require.NoError(t, st.SaveRule(ctx, types.Rule{ID: "r2", Name: "r2", Priority: 100}))
	require.NoError(t, st.SaveProfile(ctx, types.Profile{ID: "p1", Name: "default"}))

	// bind in an order that deliberately contradicts priority ordering
	require.NoError(t, st.SetProfileRules(ctx, "p1", []string{"r1", "r2"}))

	ordered, err := st.RulesForProfile(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, ordered, 2)
	assert.Equal(t, "r1", ordered[0].ID)
	assert.Equal(t, "r2", ordered[1].ID)
}

func TestActivate_OnlyOneProfileEverActive(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	require.NoError(t, st.SaveProfile(ctx, types.Profile{ID: "p1", Name: "p1"}))
	require.NoError(t, st.SaveProfile(ctx, types.Profile{ID: "p2", Name: "p2"}))

	require.NoError(t, st.Activate(ctx, "p1"))
	require.NoError(t, st.Activate(ctx, "p2"))

	active, ok, err := st.ActiveProfile(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "p2", active.ID)

	all, err := st.ListProfiles(ctx)
	require.NoError(t, err)
	activeCount := 0
	for _, p := range all {
		if p.IsActive {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)
}

func TestActiveProfile_NotOkWhenNoneActive(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	require.NoError(t, st.SaveProfile(ctx, types.Profile{ID: "p1", Name: "p1"}))

	_, ok, err := st.ActiveProfile(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWatchedFolder_SaveAndLookup(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	require.NoError(t, st.SaveProfile(ctx, types.Profile{ID: "p1", Name: "p1"}))

	require.NoError(t, st.SaveWatchedFolder(ctx, types.WatchedFolder{
		ID: "f1", Path: "/home/user/Downloads", ProfileID: "p1", Enabled: true, WatchMode: types.WatchModeScheduled,
	}))

	got, ok, err := st.WatchedFolder(ctx, "f1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "/home/user/Downloads", got.Path)
	assert.Equal(t, types.WatchModeScheduled, got.WatchMode)

	_, ok, err = st.WatchedFolder(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDueSchedules_FiltersByEnabledAndNextRunAt(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	require.NoError(t, st.SaveProfile(ctx, types.Profile{ID: "p1", Name: "p1"}))
	require.NoError(t, st.SaveWatchedFolder(ctx, types.WatchedFolder{ID: "f1", Path: "/x", ProfileID: "p1"}))

	asOf, err := time.Parse(types.TimestampLayout, "2026-02-14 10:00:00")
	require.NoError(t, err)

	require.NoError(t, st.SaveSchedule(ctx, types.Schedule{
		ID: "due", ProfileID: "p1", FolderID: "f1", CronExpr: "0 * * * *",
		Enabled: true, NextRunAt: "2026-02-14 09:00:00",
	}))
	require.NoError(t, st.SaveSchedule(ctx, types.Schedule{
		ID: "future", ProfileID: "p1", FolderID: "f1", CronExpr: "0 * * * *",
		Enabled: true, NextRunAt: "2026-02-14 11:00:00",
	}))
	require.NoError(t, st.SaveSchedule(ctx, types.Schedule{
		ID: "disabled", ProfileID: "p1", FolderID: "f1", CronExpr: "0 * * * *",
		Enabled: false, NextRunAt: "2026-02-14 09:00:00",
	}))
	require.NoError(t, st.SaveSchedule(ctx, types.Schedule{
		ID: "empty", ProfileID: "p1", FolderID: "f1", CronExpr: "0 * * * *",
		Enabled: true, NextRunAt: "",
	}))

	due, err := st.DueSchedules(ctx, asOf)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "due", due[0].ID)
}

func TestTouchSchedule_UpdatesRegardlessOfOutcome(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	require.NoError(t, st.SaveProfile(ctx, types.Profile{ID: "p1", Name: "p1"}))
	require.NoError(t, st.SaveWatchedFolder(ctx, types.WatchedFolder{ID: "f1", Path: "/x", ProfileID: "p1"}))
	require.NoError(t, st.SaveSchedule(ctx, types.Schedule{ID: "s1", ProfileID: "p1", FolderID: "f1", CronExpr: "0 * * * *"}))

	require.NoError(t, st.TouchSchedule(ctx, "s1", "2026-02-14 09:00:00", "2026-02-14 10:00:00"))

	all, err := st.ListSchedules(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "2026-02-14 09:00:00", all[0].LastRunAt)
	assert.Equal(t, "2026-02-14 10:00:00", all[0].NextRunAt)
}

func TestSetting_RoundTripAndUnsetKey(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	_, ok, err := st.Setting(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "fallback", st.SettingOr(ctx, "missing", "fallback"))

	require.NoError(t, st.SetSetting(ctx, ConflictStrategyKey, string(types.ConflictSkip)))
	got, ok, err := st.Setting(ctx, ConflictStrategyKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, string(types.ConflictSkip), got.Value)
}

func TestSettingsByPrefix_ReturnsOnlyMatchingKeys(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	require.NoError(t, st.SetSetting(ctx, "tip_state:desktop_clutter", "1|0|"))
	require.NoError(t, st.SetSetting(ctx, "tip_state:pdf_accumulation", "0|1|2026-03-01 00:00:00"))
	require.NoError(t, st.SetSetting(ctx, ConflictStrategyKey, "suffix"))

	matched, err := st.SettingsByPrefix(ctx, "tip_state:")
	require.NoError(t, err)
	assert.Len(t, matched, 2)
	assert.Contains(t, matched, "tip_state:desktop_clutter")
	assert.NotContains(t, matched, ConflictStrategyKey)
}

func TestRunItem_WriteReadAndMark(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	require.NoError(t, st.SaveProfile(ctx, types.Profile{ID: "p1", Name: "p1"}))
	require.NoError(t, st.CreateRun(ctx, types.Run{ID: "run-1", ProfileID: "p1", RunType: types.RunTypeManual, Status: types.RunStatusRunning}))

	item := types.RunItem{
		ID: "item-1", RunID: "run-1", OriginalPath: "/in/report.pdf",
		DestinationPath: "/out/pdf/report.pdf", ActionType: types.ActionMove,
		Status: types.RunItemCompleted, ConflictStrategy: types.ConflictSuffix,
	}
	require.NoError(t, st.WriteRunItem(item))

	items, err := st.RunItems("run-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "/out/pdf/report.pdf", items[0].DestinationPath)

	require.NoError(t, st.MarkRunItem("item-1", types.RunItemRolledBack, "2026-02-14 10:00:00"))

	items, err = st.RunItems("run-1")
	require.NoError(t, err)
	assert.Equal(t, types.RunItemRolledBack, items[0].Status)
	assert.Equal(t, "2026-02-14 10:00:00", items[0].RolledBackAt)
}

func TestCompleteRun_UpdatesCounters(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	require.NoError(t, st.SaveProfile(ctx, types.Profile{ID: "p1", Name: "p1"}))
	require.NoError(t, st.CreateRun(ctx, types.Run{ID: "run-1", ProfileID: "p1", RunType: types.RunTypeManual, Status: types.RunStatusRunning}))

	require.NoError(t, st.CompleteRun(ctx, "run-1", types.RunStatusCompleted, 3, 1, 0, ""))

	got, ok, err := st.Run(ctx, "run-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, types.RunStatusCompleted, got.Status)
	assert.Equal(t, 3, got.MovedFiles)
	assert.Equal(t, 1, got.SkippedFiles)
}
