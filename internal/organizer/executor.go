package organizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/CodeCraftgenz/deskcraft/internal/logging"
	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

// Journal is the durability boundary the executor and rollback write
// through. Each call is a single, standalone statement, not wrapped in a
// transaction spanning multiple operations, so a journal write failing
// partway through a run never corrupts previously-written entries.
type Journal interface {
	WriteRunItem(item types.RunItem) error
}

// Counts summarizes one run's outcome for the run header.
type Counts struct {
	Moved, Skipped, Errors int
	ErrorMessages          []string
}

// Status derives the run header's terminal status from the counts:
// completed if nothing failed, error if nothing moved, completed_with_errors
// for anything in between.
func (c Counts) Status() types.RunStatus {
	switch {
	case c.Errors == 0:
		return types.RunStatusCompleted
	case c.Moved == 0:
		return types.RunStatusError
	default:
		return types.RunStatusCompletedWithError
	}
}

// Execute applies a simulation in order, journaling exactly one entry per
// item regardless of outcome. Items are processed sequentially — no
// concurrency within a run — so ordering matches the simulator's output,
// which mirrors the scanned file list and, within a file, each action's
// sort order.
func Execute(ctx context.Context, runID string, items []Item, strategy types.ConflictStrategy, retries int, journal Journal, log *logging.Logger) Counts {
	var counts Counts

	for _, item := range items {
		entry := types.RunItem{
			ID:               uuidNew(),
			RunID:            runID,
			RuleID:           item.RuleID,
			OriginalPath:     item.File.Path,
			FileSizeBytes:    item.File.SizeBytes,
			ActionType:       item.ActionType,
			ConflictStrategy: strategy,
			ExecutedAt:       now(),
		}

		if item.Destination == "" {
			entry.Status = types.RunItemSkipped
			writeEntry(journal, entry, log)
			counts.Skipped++
			continue
		}

		effective := effectiveDestination(item.Destination, item.File.Name)

		if exists(effective) {
			resolved, err := ResolveConflict(effective, strategy, log)
			if err != nil {
				entry.Status = types.RunItemError
				entry.ErrorMessage = err.Error()
				entry.DestinationPath = effective
				writeEntry(journal, entry, log)
				counts.Errors++
				counts.ErrorMessages = append(counts.ErrorMessages, err.Error())
				continue
			}

			if strategy == types.ConflictSkip && exists(resolved) {
				entry.Status = types.RunItemSkipped
				entry.DestinationPath = resolved
				writeEntry(journal, entry, log)
				counts.Skipped++
				continue
			}
			effective = resolved
		}

		entry.DestinationPath = effective

		if err := os.MkdirAll(filepath.Dir(effective), 0o755); err != nil {
			entry.Status = types.RunItemError
			entry.ErrorMessage = fmt.Sprintf("create parent directory: %v", err)
			writeEntry(journal, entry, log)
			counts.Errors++
			counts.ErrorMessages = append(counts.ErrorMessages, entry.ErrorMessage)
			continue
		}

		var opErr error
		if item.ActionType == types.ActionCopy {
			opErr = copyFile(ctx, item.File.Path, effective, retries)
		} else {
			opErr = moveFile(ctx, item.File.Path, effective, retries)
		}

		if opErr != nil {
			entry.Status = types.RunItemError
			entry.ErrorMessage = opErr.Error()
			writeEntry(journal, entry, log)
			counts.Errors++
			counts.ErrorMessages = append(counts.ErrorMessages, opErr.Error())
			log.Errorf("organizer: execute failed for %s -> %s: %v", item.File.Path, effective, opErr)
			continue
		}

		entry.Status = types.RunItemCompleted
		writeEntry(journal, entry, log)
		counts.Moved++
		log.Successf("organizer: moved %s -> %s", item.File.Path, effective)
	}

	return counts
}

// effectiveDestination appends the original filename when the resolved
// destination names an existing directory or ends with a path separator.
func effectiveDestination(dest, originalName string) string {
	if strings.HasSuffix(dest, string(filepath.Separator)) || strings.HasSuffix(dest, "/") {
		return filepath.Join(dest, originalName)
	}
	if fi, err := os.Stat(dest); err == nil && fi.IsDir() {
		return filepath.Join(dest, originalName)
	}
	return dest
}

func writeEntry(journal Journal, entry types.RunItem, log *logging.Logger) {
	if err := journal.WriteRunItem(entry); err != nil {
		log.Errorf("organizer: failed to journal run item for %s: %v", entry.OriginalPath, err)
	}
}

func now() string { return time.Now().Format(types.TimestampLayout) }
