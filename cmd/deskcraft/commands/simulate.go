package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CodeCraftgenz/deskcraft/internal/organizer"
	"github.com/CodeCraftgenz/deskcraft/internal/scanner"
)

var (
	simulateProfileID string
	simulateRecurse   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [folder]",
	Short: "Show what execute would do, without touching the filesystem",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().StringVar(&simulateProfileID, "profile", "", "Profile ID to simulate (defaults to the active profile)")
	simulateCmd.Flags().BoolVar(&simulateRecurse, "recurse", false, "Descend into subdirectories")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.close()

	ctx := context.Background()
	profileID, err := resolveProfileID(ctx, sess, simulateProfileID)
	if err != nil {
		return err
	}

	ruleList, err := sess.store.RulesForProfile(ctx, profileID)
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}
	if len(ruleList) == 0 {
		return fmt.Errorf("profile %s has no rules configured", profileID)
	}

	scanResult, err := scanner.Scan(args[0], simulateRecurse, sess.log)
	if err != nil {
		return err
	}

	sim := organizer.Simulate(scanResult.Files, ruleList, sess.log)

	fmt.Printf("%d total, %d matched, %d unmatched\n", sim.TotalFiles, sim.MatchedFiles, sim.UnmatchedFiles)
	for _, item := range sim.Items {
		conflict := ""
		if item.Conflict {
			conflict = " (conflict)"
		}
		fmt.Printf("  %-8s %s -> %s%s\n", item.ActionType, item.File.Path, item.Destination, conflict)
	}
	return nil
}

// resolveProfileID returns explicit when non-empty, otherwise the active
// profile, otherwise the default profile.
func resolveProfileID(ctx context.Context, sess *session, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if active, ok, err := sess.store.ActiveProfile(ctx); err != nil {
		return "", fmt.Errorf("load active profile: %w", err)
	} else if ok {
		return active.ID, nil
	}
	def, ok, err := sess.store.DefaultProfile(ctx)
	if err != nil {
		return "", fmt.Errorf("load default profile: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("no active or default profile configured")
	}
	return def.ID, nil
}
