package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CodeCraftgenz/deskcraft/internal/pipeline"
)

var rollbackRetries int

var rollbackCmd = &cobra.Command{
	Use:   "rollback [run-id]",
	Short: "Revert a completed run by replaying its journal in reverse",
	Args:  cobra.ExactArgs(1),
	RunE:  runRollback,
}

func init() {
	rootCmd.AddCommand(rollbackCmd)
	rollbackCmd.Flags().IntVar(&rollbackRetries, "retries", 3, "Copy/move retry count")
}

func runRollback(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.close()

	result, err := pipeline.Rollback(context.Background(), sess.store, sess.log, args[0], rollbackRetries)
	if err != nil {
		return err
	}

	fmt.Printf("rollback %s: %d of %d entries reverted, %d errors\n", args[0], result.RolledBack, result.CompletedEntries, result.Errors)
	return nil
}
