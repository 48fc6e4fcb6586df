package organizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeCraftgenz/deskcraft/internal/logging"
	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	log, err := logging.New(t.TempDir(), logging.Settings{NoLogs: true})
	require.NoError(t, err)
	return log
}

func TestResolveConflict_Suffix(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(dest, []byte("x"), 0o644))

	got, err := ResolveConflict(dest, types.ConflictSuffix, testLogger(t))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report_1.pdf"), got)
}

func TestResolveConflict_Skip(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(dest, []byte("x"), 0o644))

	got, err := ResolveConflict(dest, types.ConflictSkip, testLogger(t))
	require.NoError(t, err)
	assert.Equal(t, dest, got)
}

func TestResolveConflict_ConflictFolder(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(dest, []byte("x"), 0o644))

	got, err := ResolveConflict(dest, types.ConflictFolder, testLogger(t))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Conflicts", "report.pdf"), got)

	fi, err := os.Stat(filepath.Join(dir, "Conflicts"))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestResolveConflict_ConflictFolderRecursesToSuffix(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(dest, []byte("x"), 0o644))

	conflictsDir := filepath.Join(dir, "Conflicts")
	require.NoError(t, os.MkdirAll(conflictsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(conflictsDir, "report.pdf"), []byte("x"), 0o644))

	got, err := ResolveConflict(dest, types.ConflictFolder, testLogger(t))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(conflictsDir, "report_1.pdf"), got)
}
