package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/CodeCraftgenz/deskcraft/internal/cron"
	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "List, add or remove schedules",
}

var scheduleListCmd = &cobra.Command{
	Use:  "list",
	RunE: runScheduleList,
}

var (
	scheduleProfileID string
	scheduleFolderID  string
)

var scheduleAddCmd = &cobra.Command{
	Use:   "add [cron-expr]",
	Short: `Add a schedule, e.g. deskcraft schedule add "0 10 * * 1" --profile P --folder F`,
	Args:  cobra.ExactArgs(1),
	RunE:  runScheduleAdd,
}

var scheduleDeleteCmd = &cobra.Command{
	Use:  "delete [schedule-id]",
	Args: cobra.ExactArgs(1),
	RunE: runScheduleDelete,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.AddCommand(scheduleListCmd, scheduleAddCmd, scheduleDeleteCmd)

	scheduleAddCmd.Flags().StringVar(&scheduleProfileID, "profile", "", "Profile ID to run")
	scheduleAddCmd.Flags().StringVar(&scheduleFolderID, "folder", "", "Watched folder ID to run against")
	scheduleAddCmd.MarkFlagRequired("profile")
	scheduleAddCmd.MarkFlagRequired("folder")
}

func runScheduleList(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.close()

	schedules, err := sess.store.ListSchedules(context.Background())
	if err != nil {
		return err
	}
	for _, s := range schedules {
		fmt.Printf("%s\t%s\tnext=%s\tlast=%s\n", s.ID, s.CronExpr, s.NextRunAt, s.LastRunAt)
	}
	return nil
}

func runScheduleAdd(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.close()

	if _, err := cron.Parse(args[0]); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}

	now := time.Now()
	schedule := types.Schedule{
		ID:        uuid.NewString(),
		ProfileID: scheduleProfileID,
		FolderID:  scheduleFolderID,
		CronExpr:  args[0],
		Enabled:   true,
		NextRunAt: cron.NextRunAfter(args[0], now),
		CreatedAt: now.Format(types.TimestampLayout),
		UpdatedAt: now.Format(types.TimestampLayout),
	}

	if err := sess.store.SaveSchedule(context.Background(), schedule); err != nil {
		return err
	}
	fmt.Println(schedule.ID)
	return nil
}

func runScheduleDelete(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.close()
	return sess.store.DeleteSchedule(context.Background(), args[0])
}
