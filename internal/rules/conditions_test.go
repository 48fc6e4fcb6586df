package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/CodeCraftgenz/deskcraft/internal/logging"
	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	log, err := logging.New(t.TempDir(), logging.Settings{NoLogs: true})
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	return log
}

func fileRecord(name string, size int64, modified time.Time) types.FileRecord {
	rec := types.FileRecord{
		Path:      "/home/user/Downloads/" + name,
		Name:      name,
		Extension: extOf(name),
		SizeBytes: size,
	}
	return rec.WithModifiedTime(modified)
}

func extOf(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i+1:]
		}
	}
	return ""
}

func TestEvaluateCondition(t *testing.T) {
	log := testLogger(t)
	f := fileRecord("report.PDF", 2048, time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name string
		cond types.Condition
		want bool
	}{
		{"equals is case-insensitive", types.Condition{Field: types.FieldExtension, Operator: types.OpEquals, Value: "pdf"}, true},
		{"not_equals", types.Condition{Field: types.FieldExtension, Operator: types.OpNotEquals, Value: "pdf"}, false},
		{"contains", types.Condition{Field: types.FieldFilename, Operator: types.OpContains, Value: "REPORT"}, true},
		{"starts_with", types.Condition{Field: types.FieldFilename, Operator: types.OpStartsWith, Value: "report"}, true},
		{"ends_with", types.Condition{Field: types.FieldFilename, Operator: types.OpEndsWith, Value: ".pdf"}, true},
		{"greater_than size", types.Condition{Field: types.FieldSize, Operator: types.OpGreaterThan, Value: "1024"}, true},
		{"less_than size false", types.Condition{Field: types.FieldSize, Operator: types.OpLessThan, Value: "1024"}, false},
		{"matches regex", types.Condition{Field: types.FieldFilename, Operator: types.OpMatches, Value: `^report\..+$`}, true},
		{"matches invalid regex defaults false", types.Condition{Field: types.FieldFilename, Operator: types.OpMatches, Value: `(unclosed`}, false},
		{"unknown operator defaults false", types.Condition{Field: types.FieldFilename, Operator: "bogus"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateCondition(tt.cond, f, log))
		})
	}
}

func TestEvaluateCondition_SourceFolder(t *testing.T) {
	log := testLogger(t)
	f := fileRecord("a.txt", 10, time.Time{})

	cond := types.Condition{Field: types.FieldSourceFolder, Operator: types.OpEquals, Value: "/home/user/Downloads"}
	assert.True(t, EvaluateCondition(cond, f, log))
}
