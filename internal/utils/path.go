// Package utils holds small, dependency-free filesystem helpers shared by
// the CLI and the bootstrap layer.
package utils

import (
	"os"
	"path/filepath"
)

// ExeDir returns the directory containing the currently running
// executable.
//
// deskcraft can run interactively, from a scheduled task, or as a
// long-lived `serve` process; in all three cases the working directory is
// unreliable, so default locations for the database, config file, and logs
// resolve next to the binary instead of relying on os.Getwd().
//
// Behavior:
//   - Uses os.Executable() to obtain the full path to the running binary.
//   - Resolves symlinks (important when launched via a shortcut or wrapper
//     script).
//   - Returns the parent directory of the executable.
//
// Callers should fall back to os.Getwd() if this returns an error.
func ExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", err
	}

	return filepath.Dir(exe), nil
}
