package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/CodeCraftgenz/deskcraft/internal/scheduler"
)

var servePollInterval int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scheduler loop in the foreground until interrupted",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePollInterval, "poll-seconds", 0, "Override the scheduler poll interval (0 = use config.yaml's default)")
}

func runServe(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.close()

	interval := time.Duration(servePollInterval) * time.Second
	if interval <= 0 {
		interval = sess.cfg.SchedulerPollInterval
	}
	sched := scheduler.New(sess.store, sess.log, interval, sess.cfg.MoveRetries)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sess.log.Info("scheduler: starting, press Ctrl+C to stop")
	go sched.Run(ctx)

	<-sigChan
	sess.log.Info("scheduler: shutting down")
	cancel()
	return nil
}
