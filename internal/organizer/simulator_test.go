package organizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

// TestSimulate_ORChain covers a rule whose second condition ORs in an
// alternate extension, still matching a PDF file.
func TestSimulate_ORChain(t *testing.T) {
	f := types.FileRecord{Path: "/in/report.pdf", Name: "report.pdf", Extension: "pdf"}
	f = f.WithModifiedTime(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))

	ruleList := []types.Rule{{
		ID: "r1", Name: "docs-or-pdf", Enabled: true,
		Conditions: []types.Condition{
			{Field: types.FieldExtension, Operator: types.OpEquals, Value: "docx"},
			{Field: types.FieldExtension, Operator: types.OpEquals, Value: "pdf", LogicGate: types.GateOR},
		},
		Actions: []types.Action{{ActionType: types.ActionMoveToFolder, Destination: "/out/docs"}},
	}}

	sim := Simulate([]types.FileRecord{f}, ruleList, testLogger(t))

	assert.Equal(t, 1, sim.MatchedFiles)
	assert.Equal(t, 0, sim.UnmatchedFiles)
	assert.Len(t, sim.Items, 1)
	assert.Equal(t, "r1", sim.Items[0].RuleID)
}

func TestSimulate_UnmatchedFileCountsSeparately(t *testing.T) {
	f := types.FileRecord{Path: "/in/video.mp4", Name: "video.mp4", Extension: "mp4"}

	ruleList := []types.Rule{{
		ID: "r1", Name: "pdf-only", Enabled: true,
		Conditions: []types.Condition{{Field: types.FieldExtension, Operator: types.OpEquals, Value: "pdf"}},
		Actions:    []types.Action{{ActionType: types.ActionMoveToFolder, Destination: "/out/pdf"}},
	}}

	sim := Simulate([]types.FileRecord{f}, ruleList, testLogger(t))

	assert.Equal(t, 0, sim.MatchedFiles)
	assert.Equal(t, 1, sim.UnmatchedFiles)
	assert.Empty(t, sim.Items)
}
