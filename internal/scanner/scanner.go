// Package scanner enumerates a directory and yields file metadata records
// for the rule engine to evaluate.
//
// The walking pattern — os.ReadDir/WalkDir with per-entry errors logged and
// skipped rather than aborting the whole scan — is deliberately
// conservative: a broken entry never aborts the rest of the scan.
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/CodeCraftgenz/deskcraft/internal/logging"
	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

// ErrInvalidPath is returned when the scan root does not exist or is not a
// directory.
var ErrInvalidPath = errors.New("invalid path")

// Result is everything a scan produced: the file list plus the summary
// counters the tips heuristics and the CLI's `scan` output use.
type Result struct {
	Files          []types.FileRecord
	SkippedCount   int // entries whose metadata could not be read
	TotalSizeBytes int64
}

// Scan enumerates root's direct children (or, when recurse is true, every
// descendant file) and returns one FileRecord per regular file.
//
// Directories, symbolic links, and entries whose metadata cannot be read
// are skipped; the latter are logged as warnings and counted in
// Result.SkippedCount. This never fails once root itself has been
// validated — a broken child is a warning, not an abort.
func Scan(root string, recurse bool, log *logging.Logger) (Result, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return Result{}, fmt.Errorf("%w: %s", ErrInvalidPath, root)
	}

	var res Result

	walk := func(path string, d fs.DirEntry) {
		if d.IsDir() {
			return
		}

		// fs.DirEntry.Type() reports symlinks without following them; a
		// symlink to a regular file is still, for our purposes, "not a
		// regular file" — following it risks operating on something
		// outside the scanned root.
		if d.Type()&fs.ModeSymlink != 0 {
			return
		}
		if !d.Type().IsRegular() {
			return
		}

		fi, err := d.Info()
		if err != nil {
			log.Warnf("scanner: could not read metadata for %s: %v", path, err)
			res.SkippedCount++
			return
		}

		rec := toFileRecord(path, fi)
		res.Files = append(res.Files, rec)
		res.TotalSizeBytes += rec.SizeBytes
	}

	if recurse {
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.Warnf("scanner: walk error at %s: %v", path, err)
				res.SkippedCount++
				return nil
			}
			walk(path, d)
			return nil
		})
		if err != nil {
			return res, err
		}
		return res, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %v", ErrInvalidPath, root, err)
	}
	for _, entry := range entries {
		walk(filepath.Join(root, entry.Name()), entry)
	}
	return res, nil
}

// toFileRecord builds a types.FileRecord from a path and its fs.FileInfo.
//
// Timestamps are formatted in UTC; when no creation time is available
// (see birthTime), CreatedAt is left empty rather than guessed at.
func toFileRecord(path string, fi fs.FileInfo) types.FileRecord {
	name := fi.Name()
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	modTime := fi.ModTime().UTC()

	rec := types.FileRecord{
		Path:       path,
		Name:       name,
		Extension:  ext,
		SizeBytes:  fi.Size(),
		CreatedAt:  createdAt(fi),
		ModifiedAt: modTime.Format(types.TimestampLayout),
	}
	return rec.WithModifiedTime(modTime)
}

// createdAt extracts a creation timestamp when the OS/filesystem exposes
// one. The standard library doesn't expose st_birthtime portably, so this
// is deliberately best-effort: platforms that don't support it get an
// empty string.
func createdAt(fi fs.FileInfo) string {
	if bt, ok := birthTime(fi); ok {
		return bt.UTC().Format(types.TimestampLayout)
	}
	return ""
}

// birthTime reports a file's creation time. No platform-specific
// implementation exists in this package, so it reports none on every
// platform and CreatedAt is always empty.
var birthTime = func(fi fs.FileInfo) (time.Time, bool) {
	return time.Time{}, false
}
