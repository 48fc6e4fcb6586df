// Package pipeline wires the scanner, rule engine and organizer together
// into the single operation both a manual CLI invocation and a scheduled
// tick ultimately call: load a profile's rules, scan a folder,
// simulate, execute, and persist the outcome as a run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CodeCraftgenz/deskcraft/internal/logging"
	"github.com/CodeCraftgenz/deskcraft/internal/notify"
	"github.com/CodeCraftgenz/deskcraft/internal/organizer"
	"github.com/CodeCraftgenz/deskcraft/internal/scanner"
	"github.com/CodeCraftgenz/deskcraft/internal/store"
	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

// ErrNoRules is a precondition error: a profile with no bound rules must
// be rejected before a scan or a run header is ever created.
var ErrNoRules = errors.New("profile has no rules configured")

// Options configures a single pipeline invocation.
type Options struct {
	ProfileID        string
	FolderPath       string
	Recurse          bool
	RunType          types.RunType
	ConflictStrategy types.ConflictStrategy
	MoveRetries      int
}

// Outcome is what a caller (a CLI command or the scheduler) needs back.
type Outcome struct {
	RunID      string
	Simulation organizer.Simulation
	Counts     organizer.Counts
}

// Run executes one full pass: scan, simulate, execute, persist.
func Run(ctx context.Context, st *store.Store, log *logging.Logger, opts Options) (Outcome, error) {
	ruleList, err := st.RulesForProfile(ctx, opts.ProfileID)
	if err != nil {
		return Outcome{}, fmt.Errorf("load rules for profile: %w", err)
	}
	if len(ruleList) == 0 {
		return Outcome{}, ErrNoRules
	}

	scanResult, err := scanner.Scan(opts.FolderPath, opts.Recurse, log)
	if err != nil {
		return Outcome{}, fmt.Errorf("scan %s: %w", opts.FolderPath, err)
	}

	simulation := organizer.Simulate(scanResult.Files, ruleList, log)

	strategy := opts.ConflictStrategy
	if strategy == "" {
		strategy = resolveConflictStrategy(ctx, st)
	}
	retries := opts.MoveRetries
	if retries <= 0 {
		retries = 3
	}

	runID := organizer.NewRunID()
	startedAt := time.Now().Format(types.TimestampLayout)

	run := types.Run{
		ID:           runID,
		ProfileID:    opts.ProfileID,
		RunType:      opts.RunType,
		Status:       types.RunStatusRunning,
		SourceFolder: opts.FolderPath,
		TotalFiles:   simulation.TotalFiles,
		StartedAt:    startedAt,
	}
	if err := st.CreateRun(ctx, run); err != nil {
		return Outcome{}, fmt.Errorf("create run header: %w", err)
	}

	counts := organizer.Execute(ctx, runID, simulation.Items, strategy, retries, st, log)

	errorMessage := ""
	if len(counts.ErrorMessages) > 0 {
		errorMessage = counts.ErrorMessages[0]
	}
	status := counts.Status()
	if err := st.CompleteRun(ctx, runID, status, counts.Moved, counts.Skipped, counts.Errors, errorMessage); err != nil {
		log.Errorf("pipeline: failed to finalize run %s: %v", runID, err)
	}

	if status == types.RunStatusError {
		notify.Critical("DeskCraft run failed", fmt.Sprintf("run %s against %s completed with errors only", runID, opts.FolderPath))
	}

	return Outcome{RunID: runID, Simulation: simulation, Counts: counts}, nil
}

// Rollback reverts a prior run by ID.
func Rollback(ctx context.Context, st *store.Store, log *logging.Logger, runID string, retries int) (organizer.RollbackResult, error) {
	if retries <= 0 {
		retries = 3
	}
	result, err := organizer.Rollback(ctx, runID, retries, st, log)
	if err != nil {
		return result, err
	}
	movedFiles := result.CompletedEntries - result.RolledBack
	if markErr := st.MarkRunRolledBack(ctx, runID, result.Status(), movedFiles, result.Errors); markErr != nil {
		log.Errorf("pipeline: failed to finalize rollback status for %s: %v", runID, markErr)
	}
	return result, nil
}

func resolveConflictStrategy(ctx context.Context, st *store.Store) types.ConflictStrategy {
	value := st.SettingOr(ctx, store.ConflictStrategyKey, string(types.DefaultConflict))
	return types.ConflictStrategy(value)
}
