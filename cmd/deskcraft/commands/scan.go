package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/CodeCraftgenz/deskcraft/internal/scanner"
)

var scanRecurse bool

var scanCmd = &cobra.Command{
	Use:   "scan [folder]",
	Short: "Enumerate a folder's files without matching or moving anything",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVar(&scanRecurse, "recurse", false, "Descend into subdirectories")
}

func runScan(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.close()

	result, err := scanner.Scan(args[0], scanRecurse, sess.log)
	if err != nil {
		return err
	}

	fmt.Printf("%d files, %s total, %d skipped\n", len(result.Files), humanize.Bytes(uint64(result.TotalSizeBytes)), result.SkippedCount)
	return nil
}
