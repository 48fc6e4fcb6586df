package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

func TestLoad_WritesDefaultWhenMissing(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "deskcraft.db"), cfg.DatabasePath)
	assert.Equal(t, filepath.Join(dir, "logs"), cfg.LogDir)
	assert.Equal(t, 30*time.Second, cfg.SchedulerPollInterval)
	assert.Equal(t, types.DefaultConflict, cfg.DefaultConflictStrategy)
	assert.Equal(t, 3, cfg.MoveRetries)

	assert.FileExists(t, filepath.Join(dir, "config.yaml"))
}

func TestLoad_ReadsExistingFileAndResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	contents := "database_path: custom.db\nlog_dir: custom-logs\nmove_retries: 5\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(contents), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "custom.db"), cfg.DatabasePath)
	assert.Equal(t, filepath.Join(dir, "custom-logs"), cfg.LogDir)
	assert.Equal(t, 5, cfg.MoveRetries)
}

func TestLoad_AbsolutePathsAreLeftUntouched(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "elsewhere.db")
	contents := "database_path: " + abs + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(contents), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, abs, cfg.DatabasePath)
}

func TestResolve_ZeroPollIntervalFallsBackToDefault(t *testing.T) {
	cfg := resolve(Config{}, t.TempDir())
	assert.Equal(t, defaultPollInterval, cfg.SchedulerPollInterval)
	assert.Equal(t, defaultMoveRetries, cfg.MoveRetries)
	assert.Equal(t, types.DefaultConflict, cfg.DefaultConflictStrategy)
}
