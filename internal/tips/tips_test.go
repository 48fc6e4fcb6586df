package tips

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is a minimal in-memory settingStore for exercising Evaluate
// without a real database.
type memStore struct{ values map[string]string }

func newMemStore() *memStore { return &memStore{values: map[string]string{}} }

func (m *memStore) SettingsByPrefix(_ context.Context, prefix string) (map[string]string, error) {
	out := map[string]string{}
	for k, v := range m.values {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			out[k] = v
		}
	}
	return out, nil
}

func (m *memStore) SetSetting(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func writeNFiles(t *testing.T, dir string, n int, ext string) {
	t.Helper()
	for i := 0; i < n; i++ {
		path := filepath.Join(dir, fmt.Sprintf("f%d.%s", i, ext))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
}

func TestEvaluate_DesktopClutterThreshold(t *testing.T) {
	dir := t.TempDir()
	writeNFiles(t, dir, 31, "txt")

	suggestions, err := Evaluate(context.Background(), dir, newMemStore(), time.Now())
	require.NoError(t, err)

	require.Len(t, suggestions, 1)
	assert.Equal(t, "tip_desktop_clutter", suggestions[0].ID)
}

func TestEvaluate_BelowThresholdProducesNoTip(t *testing.T) {
	dir := t.TempDir()
	writeNFiles(t, dir, 10, "txt")

	suggestions, err := Evaluate(context.Background(), dir, newMemStore(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestEvaluate_PDFAccumulation(t *testing.T) {
	dir := t.TempDir()
	writeNFiles(t, dir, 11, "pdf")

	suggestions, err := Evaluate(context.Background(), dir, newMemStore(), time.Now())
	require.NoError(t, err)

	require.Len(t, suggestions, 1)
	assert.Equal(t, "tip_pdf_accumulation", suggestions[0].ID)
}

func TestEvaluate_InstallerPileupAcrossExtensions(t *testing.T) {
	dir := t.TempDir()
	writeNFiles(t, dir, 2, "exe")
	writeNFiles(t, dir, 2, "msi")
	writeNFiles(t, dir, 2, "dmg")

	suggestions, err := Evaluate(context.Background(), dir, newMemStore(), time.Now())
	require.NoError(t, err)

	require.Len(t, suggestions, 1)
	assert.Equal(t, "tip_installer_pileup", suggestions[0].ID)
}

func TestEvaluate_AcceptedTipNeverShownAgain(t *testing.T) {
	dir := t.TempDir()
	writeNFiles(t, dir, 31, "txt")

	st := newMemStore()
	require.NoError(t, Accept(context.Background(), st, "tip_desktop_clutter"))

	suggestions, err := Evaluate(context.Background(), dir, st, time.Now())
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestEvaluate_DismissedWithoutCooldownIsPermanent(t *testing.T) {
	dir := t.TempDir()
	writeNFiles(t, dir, 31, "txt")

	st := newMemStore()
	require.NoError(t, Dismiss(context.Background(), st, "tip_desktop_clutter", time.Time{}))

	suggestions, err := Evaluate(context.Background(), dir, st, time.Now())
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestEvaluate_DismissedWithExpiredCooldownReappears(t *testing.T) {
	dir := t.TempDir()
	writeNFiles(t, dir, 31, "txt")

	st := newMemStore()
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	require.NoError(t, Dismiss(context.Background(), st, "tip_desktop_clutter", now.Add(-time.Hour)))

	suggestions, err := Evaluate(context.Background(), dir, st, now)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
}

func TestEvaluate_DismissedWithFutureCooldownStaysHidden(t *testing.T) {
	dir := t.TempDir()
	writeNFiles(t, dir, 31, "txt")

	st := newMemStore()
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	require.NoError(t, Dismiss(context.Background(), st, "tip_desktop_clutter", now.Add(time.Hour)))

	suggestions, err := Evaluate(context.Background(), dir, st, now)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}
