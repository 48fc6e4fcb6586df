package organizer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/CodeCraftgenz/deskcraft/internal/logging"
	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

// JournalReader is the read/update side of the journal rollback needs.
// Rollback never consults the rule engine — everything it needs comes
// from the journal rows themselves.
type JournalReader interface {
	RunItems(runID string) ([]types.RunItem, error)
	MarkRunItem(itemID string, status types.RunItemStatus, rolledBackAt string) error
}

// RollbackResult summarizes a rollback pass for the run header update.
type RollbackResult struct {
	CompletedEntries int
	RolledBack       int
	Errors           int
}

// Status derives the run header's terminal status: rolled_back if every
// completed entry reverted cleanly, rollback_partial otherwise.
func (r RollbackResult) Status() types.RunStatus {
	if r.Errors == 0 {
		return types.RunStatusRolledBack
	}
	return types.RunStatusRollbackPartial
}

// Rollback replays a run's journal in reverse, moving files back to their
// original paths. Only entries with status "completed" are considered;
// everything else (skipped, error, already rolled back) is left alone.
func Rollback(ctx context.Context, runID string, retries int, journal JournalReader, log *logging.Logger) (RollbackResult, error) {
	entries, err := journal.RunItems(runID)
	if err != nil {
		return RollbackResult{}, err
	}

	var result RollbackResult

	for _, entry := range entries {
		if entry.Status != types.RunItemCompleted {
			continue
		}
		result.CompletedEntries++

		if !exists(entry.DestinationPath) {
			if err := journal.MarkRunItem(entry.ID, types.RunItemRollbackSkipped, now()); err != nil {
				log.Errorf("organizer: failed to mark rollback_skipped for %s: %v", entry.ID, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(entry.OriginalPath), 0o755); err != nil {
			log.Errorf("organizer: rollback could not recreate parent dir for %s: %v", entry.OriginalPath, err)
			result.Errors++
			continue
		}

		if err := moveFile(ctx, entry.DestinationPath, entry.OriginalPath, retries); err != nil {
			log.Errorf("organizer: rollback failed for %s -> %s: %v", entry.DestinationPath, entry.OriginalPath, err)
			result.Errors++
			continue
		}

		if err := journal.MarkRunItem(entry.ID, types.RunItemRolledBack, now()); err != nil {
			log.Errorf("organizer: failed to mark rolled_back for %s: %v", entry.ID, err)
		}
		result.RolledBack++
	}

	return result, nil
}
