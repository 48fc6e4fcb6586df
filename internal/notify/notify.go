// Package notify surfaces a critical condition to a human even when
// deskcraft is running unattended (a scheduled run, or `deskcraft serve`
// with no terminal attached).
//
// Same platform split as a native Windows message box with a stderr
// fallback everywhere else, retargeted at the moments the organizer core
// needs it: a run that ends in RunStatusError, a schedule whose folder_id
// can't be resolved to a path, and a scheduled run that fails to start.
package notify

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Critical displays a popup notification on Windows and falls back to
// stderr everywhere else.
func Critical(title, message string) {
	switch runtime.GOOS {
	case "windows":
		showWindowsPopup(title, message)
	default:
		_, _ = os.Stderr.Write([]byte("[" + title + "] " + message + "\n"))
	}
}

// showWindowsPopup uses PowerShell to display a native Windows message box.
//
// Implementation notes:
//   - WindowStyle Hidden prevents the PowerShell window from briefly
//     appearing.
//   - cmd.Start() (not cmd.Run()) avoids blocking the caller — deskcraft
//     should not hang waiting for someone to click OK.
func showWindowsPopup(title, message string) {
	escapedTitle := strings.ReplaceAll(title, `"`, "`\"")
	escapedMessage := strings.ReplaceAll(message, `"`, "`\"")

	args := []string{
		"-WindowStyle", "Hidden",
		"-NoProfile",
		"-Command",
		`Add-Type -AssemblyName System.Windows.Forms; [System.Windows.Forms.MessageBox]::Show("` + escapedMessage + `", "` + escapedTitle + `", [System.Windows.Forms.MessageBoxButtons]::OK, [System.Windows.Forms.MessageBoxIcon]::Error)`,
	}

	cmd := exec.Command("powershell", args...)
	_ = cmd.Start()
}
