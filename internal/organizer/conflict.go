package organizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/CodeCraftgenz/deskcraft/internal/logging"
	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

// maxSuffixAttempts caps the suffix strategy's search so a directory full
// of identically-named conflicts can't spin forever.
const maxSuffixAttempts = 10000

// ResolveConflict returns the path the executor should actually use for a
// destination that already exists, per the given strategy.
//
//   - suffix: append "_N" (N from 1, capped at maxSuffixAttempts) to the
//     stem until a non-existing candidate is found.
//   - conflict_folder: retarget into parent(dest)/Conflicts/basename(dest),
//     creating that directory if needed; if that also collides, recurse
//     using suffix inside the quarantine folder.
//   - skip: return dest unchanged — the caller interprets pre-existence as
//     "do nothing".
//   - anything else: warn and fall back to suffix.
func ResolveConflict(dest string, strategy types.ConflictStrategy, log *logging.Logger) (string, error) {
	switch strategy {
	case types.ConflictSuffix:
		return suffixPath(dest), nil

	case types.ConflictFolder:
		dir := filepath.Join(filepath.Dir(dest), "Conflicts")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create conflict folder: %w", err)
		}
		candidate := filepath.Join(dir, filepath.Base(dest))
		if !exists(candidate) {
			return candidate, nil
		}
		return suffixPath(candidate), nil

	case types.ConflictSkip:
		return dest, nil

	default:
		log.Warnf("organizer: unknown conflict strategy %q, falling back to suffix", strategy)
		return suffixPath(dest), nil
	}
}

// suffixPath finds the first "<stem>_N<ext>" that doesn't currently exist,
// preserving the original extension. If every candidate up to
// maxSuffixAttempts exists, the last candidate is returned regardless.
func suffixPath(dest string) string {
	ext := filepath.Ext(dest)
	stem := strings.TrimSuffix(dest, ext)
	dir := filepath.Dir(dest)
	base := filepath.Base(stem)

	for n := 1; n <= maxSuffixAttempts; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, n, ext))
		if !exists(candidate) {
			return candidate
		}
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, maxSuffixAttempts, ext))
}
