package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CodeCraftgenz/deskcraft/internal/pipeline"
	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

var (
	executeProfileID string
	executeRecurse   bool
	executeStrategy  string
	executeRetries   int
)

var executeCmd = &cobra.Command{
	Use:   "execute [folder]",
	Short: "Scan, simulate and apply a profile's rules against a folder",
	Args:  cobra.ExactArgs(1),
	RunE:  runExecute,
}

func init() {
	rootCmd.AddCommand(executeCmd)
	executeCmd.Flags().StringVar(&executeProfileID, "profile", "", "Profile ID to run (defaults to the active profile)")
	executeCmd.Flags().BoolVar(&executeRecurse, "recurse", false, "Descend into subdirectories")
	executeCmd.Flags().StringVar(&executeStrategy, "conflict", "", "Conflict strategy: suffix, conflict_folder, or skip (defaults to the stored setting)")
	executeCmd.Flags().IntVar(&executeRetries, "retries", 3, "Copy/move retry count")
}

func runExecute(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.close()

	ctx := context.Background()
	profileID, err := resolveProfileID(ctx, sess, executeProfileID)
	if err != nil {
		return err
	}

	outcome, err := pipeline.Run(ctx, sess.store, sess.log, pipeline.Options{
		ProfileID:        profileID,
		FolderPath:       args[0],
		Recurse:          executeRecurse,
		RunType:          types.RunTypeManual,
		ConflictStrategy: types.ConflictStrategy(executeStrategy),
		MoveRetries:      executeRetries,
	})
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d moved, %d skipped, %d errors\n", outcome.RunID, outcome.Counts.Moved, outcome.Counts.Skipped, outcome.Counts.Errors)
	for _, msg := range outcome.Counts.ErrorMessages {
		fmt.Printf("  error: %s\n", msg)
	}
	return nil
}
