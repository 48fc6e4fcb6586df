package rules

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/CodeCraftgenz/deskcraft/internal/logging"
	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

// ResolveDestination computes the destination path for one action against
// one file. It returns ("", false) for actions that don't produce a
// destination (tag/add_tag/delete, and unknown action types — the latter
// logged).
func ResolveDestination(a types.Action, f types.FileRecord, log *logging.Logger) (string, bool) {
	switch a.ActionType {
	case types.ActionMove, types.ActionCopy, types.ActionMoveToFolder:
		dir := ExpandTemplate(a.Destination, f)
		name := resolveFilename(a.RenamePattern, f)
		return filepath.Join(dir, name), true

	case types.ActionMoveToSubfolder:
		dir := filepath.Join(filepath.Dir(f.Path), ExpandTemplate(a.Destination, f))
		name := resolveFilename(a.RenamePattern, f)
		return filepath.Join(dir, name), true

	case types.ActionRename:
		name := ExpandTemplate(a.RenamePattern, f)
		return filepath.Join(filepath.Dir(f.Path), name), true

	case types.ActionTag, types.ActionAddTag, types.ActionDelete:
		return "", false

	default:
		log.Warnf("rules: unknown action type %q for %s", a.ActionType, f.Path)
		return "", false
	}
}

// resolveFilename is the "rename_pattern if set, else the original
// basename" rule shared by move/copy/move_to_folder/move_to_subfolder.
func resolveFilename(renamePattern string, f types.FileRecord) string {
	if renamePattern == "" {
		return f.Name
	}
	return ExpandTemplate(renamePattern, f)
}

// ExpandTemplate substitutes every occurrence of the supported template
// placeholders. It is idempotent on strings that contain no placeholders,
// and safe to call on a plain literal destination (the common case where
// a user hasn't used templates at all).
func ExpandTemplate(template string, f types.FileRecord) string {
	if template == "" {
		return template
	}

	year, month, day := "0000", "00", "00"
	if mt := f.ModifiedTime(); !mt.IsZero() {
		year = strconv.Itoa(mt.Year())
		month = pad2(int(mt.Month()))
		day = pad2(mt.Day())
	}

	original := strings.TrimSuffix(f.Name, filepath.Ext(f.Name))

	replacer := strings.NewReplacer(
		"{extension}", f.Extension,
		"{year}", year,
		"{month}", month,
		"{day}", day,
		"{original}", original,
		// Per-file counters are not supported in the core; {counter}
		// always resolves to the literal "1".
		"{counter}", "1",
	)
	return replacer.Replace(template)
}

func pad2(n int) string {
	s := strconv.Itoa(n)
	if len(s) < 2 {
		return "0" + s
	}
	return s
}
