package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

func pdfFile() types.FileRecord {
	rec := types.FileRecord{
		Path:      "/in/report.pdf",
		Name:      "report.pdf",
		Extension: "pdf",
		SizeBytes: 4096,
	}
	return rec.WithModifiedTime(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
}

func TestResolveDestination_PDFBucket(t *testing.T) {
	log := testLogger(t)
	a := types.Action{ActionType: types.ActionMove, Destination: "/out/{extension}"}

	dest, ok := ResolveDestination(a, pdfFile(), log)
	require.True(t, ok)
	assert.Equal(t, "/out/pdf/report.pdf", dest)
}

func TestResolveDestination_RenameWithTemplate(t *testing.T) {
	log := testLogger(t)
	a := types.Action{
		ActionType:    types.ActionMove,
		Destination:   "/a/{year}/{month}",
		RenamePattern: "{original}_{year}{month}{day}.{extension}",
	}

	dest, ok := ResolveDestination(a, pdfFile(), log)
	require.True(t, ok)
	assert.Equal(t, "/a/2025/06/report_20250615.pdf", dest)
}

func TestResolveDestination_TagActionsProduceNoDestination(t *testing.T) {
	log := testLogger(t)
	for _, actionType := range []types.ActionType{types.ActionTag, types.ActionAddTag, types.ActionDelete} {
		_, ok := ResolveDestination(types.Action{ActionType: actionType}, pdfFile(), log)
		assert.False(t, ok, "action type %s should produce no destination", actionType)
	}
}

func TestExpandTemplate_IdempotentWithoutPlaceholders(t *testing.T) {
	assert.Equal(t, "plain-literal", ExpandTemplate("plain-literal", pdfFile()))
}

func TestExpandTemplate_ZeroModifiedTimeFallsBackToZeroes(t *testing.T) {
	rec := types.FileRecord{Name: "a.txt", Extension: "txt"}
	assert.Equal(t, "0000-00-00", ExpandTemplate("{year}-{month}-{day}", rec))
}
