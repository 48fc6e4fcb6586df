// Package commands implements DeskCraft's command-line surface: a thin
// caller of the organizer core, built as one cobra subcommand per file
// sharing a root command that wires persistent flags and a session helper.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/CodeCraftgenz/deskcraft/internal/bootstrap"
	"github.com/CodeCraftgenz/deskcraft/internal/config"
	"github.com/CodeCraftgenz/deskcraft/internal/logging"
	"github.com/CodeCraftgenz/deskcraft/internal/store"
	"github.com/CodeCraftgenz/deskcraft/internal/utils"
)

var (
	configDir string
	noLogs    bool
)

var rootCmd = &cobra.Command{
	Use:   "deskcraft",
	Short: "Rule-based desktop file organizer",
	Long: `DeskCraft scans a folder, matches files against user-defined rules,
and moves, copies, renames or tags them accordingly -- with a dry-run
simulator, a transactional executor, and a journal-backed rollback.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	defaultConfigDir := "config"
	if root, err := utils.ExeDir(); err == nil {
		defaultConfigDir = filepath.Join(root, "config")
	}

	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", defaultConfigDir, "Directory holding config.yaml, logging.json and the database")
	rootCmd.PersistentFlags().BoolVar(&noLogs, "no-logs", false, "Disable file logging and print to stdout instead")
}

// session bundles what nearly every subcommand needs: a logger, the
// resolved config, and an open store. Callers must call close() when done,
// which closes the store and syncs the logger.
type session struct {
	log   *logging.Logger
	cfg   config.Config
	store *store.Store
}

func newSession() (*session, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(configDir, logging.Settings{NoLogs: noLogs || cfg.NoLogs, LogDir: cfg.LogDir})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	result, err := bootstrap.Run(configDir, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	return &session{log: log, cfg: result.Config, store: result.Store}, nil
}

func (s *session) close() {
	s.store.Close()
	s.log.Sync()
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
