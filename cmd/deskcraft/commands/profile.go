package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "List, create or activate profiles",
}

var profileListCmd = &cobra.Command{
	Use:  "list",
	RunE: runProfileList,
}

var profileCreateCmd = &cobra.Command{
	Use:  "create [name]",
	Args: cobra.ExactArgs(1),
	RunE: runProfileCreate,
}

var profileActivateCmd = &cobra.Command{
	Use:  "activate [profile-id]",
	Args: cobra.ExactArgs(1),
	RunE: runProfileActivate,
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileListCmd, profileCreateCmd, profileActivateCmd)
}

func runProfileList(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.close()

	profiles, err := sess.store.ListProfiles(context.Background())
	if err != nil {
		return err
	}
	for _, p := range profiles {
		marker := " "
		if p.IsActive {
			marker = "*"
		}
		fmt.Printf("%s %s\t%s\t(%d rules)\n", marker, p.ID, p.Name, len(p.RuleIDs))
	}
	return nil
}

func runProfileCreate(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.close()

	now := time.Now().Format(types.TimestampLayout)
	profile := types.Profile{
		ID:        uuid.NewString(),
		Name:      args[0],
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := sess.store.SaveProfile(context.Background(), profile); err != nil {
		return err
	}
	fmt.Println(profile.ID)
	return nil
}

func runProfileActivate(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.close()
	return sess.store.Activate(context.Background(), args[0])
}
