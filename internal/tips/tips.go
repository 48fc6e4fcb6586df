// Package tips evaluates a small set of folder-clutter heuristics and
// turns them into user-facing suggestions, filtering out ones the user
// has already accepted or dismissed. The heuristics and the
// accept/dismiss filtering are folded into a single evaluator that reads
// its state from the settings table rather than a caller-supplied slice.
package tips

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

// Suggestion is one actionable tip surfaced to the user.
type Suggestion struct {
	ID          string
	Title       string
	Message     string
	ActionLabel string
	ActionType  string
}

// State is one tip's persisted accept/dismiss history.
type State struct {
	Accepted      bool
	Dismissed     bool
	CooldownUntil string // TimestampLayout; empty means permanently dismissed once Dismissed is true
}

// SettingKeyPrefix namespaces a tip's state row within the shared settings
// table (settings key: "tip_state:<tip_id>") rather than a dedicated table.
const SettingKeyPrefix = "tip_state:"

// settingStore is the narrow slice of *store.Store the evaluator needs,
// kept as an interface so this package doesn't import store directly.
type settingStore interface {
	SettingsByPrefix(ctx context.Context, prefix string) (map[string]string, error)
	SetSetting(ctx context.Context, key, value string) error
}

const (
	desktopClutterThreshold = 30
	pdfAccumulationThreshold = 10
	installerPileupThreshold = 5
)

var installerExtensions = map[string]bool{
	"exe": true, "msi": true, "dmg": true, "deb": true, "appimage": true,
}

// Evaluate runs every heuristic against folderPath and returns the
// suggestions that should currently be shown, having already filtered
// out accepted tips and tips still under a dismissal cooldown.
func Evaluate(ctx context.Context, folderPath string, store settingStore, now time.Time) ([]Suggestion, error) {
	all := gatherHeuristics(folderPath)

	raw, err := store.SettingsByPrefix(ctx, SettingKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("load tip state: %w", err)
	}
	states := decodeStates(raw)

	var visible []Suggestion
	for _, tip := range all {
		if shouldShowTip(tip, states[tip.ID], now) {
			visible = append(visible, tip)
		}
	}
	return visible, nil
}

// gatherHeuristics runs every check against folderPath.
func gatherHeuristics(folderPath string) []Suggestion {
	var tips []Suggestion
	if tip, ok := checkDesktopClutter(folderPath); ok {
		tips = append(tips, tip)
	}
	if tip, ok := checkPDFAccumulation(folderPath); ok {
		tips = append(tips, tip)
	}
	if tip, ok := checkInstallerPileup(folderPath); ok {
		tips = append(tips, tip)
	}
	return tips
}

// checkDesktopClutter fires when folderPath holds more than 30 entries.
func checkDesktopClutter(folderPath string) (Suggestion, bool) {
	entries, ok := readDir(folderPath)
	if !ok {
		return Suggestion{}, false
	}
	count := len(entries)
	if count <= desktopClutterThreshold {
		return Suggestion{}, false
	}
	return Suggestion{
		ID:          "tip_desktop_clutter",
		Title:       "Folder has a lot of files",
		Message:     fmt.Sprintf("This folder contains %d items. Consider organizing your files into subfolders for better productivity.", count),
		ActionLabel: "Organize now",
		ActionType:  "organize_folder",
	}, true
}

// checkPDFAccumulation fires when more than 10 PDFs sit in folderPath.
func checkPDFAccumulation(folderPath string) (Suggestion, bool) {
	entries, ok := readDir(folderPath)
	if !ok {
		return Suggestion{}, false
	}
	count := countByExtension(entries, func(ext string) bool { return ext == "pdf" })
	if count <= pdfAccumulationThreshold {
		return Suggestion{}, false
	}
	return Suggestion{
		ID:          "tip_pdf_accumulation",
		Title:       "PDF buildup detected",
		Message:     fmt.Sprintf("%d PDF files were found in this folder. Create a rule to organize them automatically.", count),
		ActionLabel: "Create a rule for PDFs",
		ActionType:  "create_rule",
	}, true
}

// checkInstallerPileup fires when more than 5 installer files (exe, msi,
// dmg, deb, appimage) sit in folderPath.
func checkInstallerPileup(folderPath string) (Suggestion, bool) {
	entries, ok := readDir(folderPath)
	if !ok {
		return Suggestion{}, false
	}
	count := countByExtension(entries, func(ext string) bool { return installerExtensions[ext] })
	if count <= installerPileupThreshold {
		return Suggestion{}, false
	}
	return Suggestion{
		ID:          "tip_installer_pileup",
		Title:       "Installers piling up",
		Message:     fmt.Sprintf("There are %d installers in this folder. Old installers can usually be removed safely once the program is installed.", count),
		ActionLabel: "Clean up installers",
		ActionType:  "cleanup_installers",
	}, true
}

func readDir(folderPath string) ([]os.DirEntry, bool) {
	fi, err := os.Stat(folderPath)
	if err != nil || !fi.IsDir() {
		return nil, false
	}
	entries, err := os.ReadDir(folderPath)
	if err != nil {
		return nil, false
	}
	return entries, true
}

func countByExtension(entries []os.DirEntry, match func(ext string) bool) int {
	count := 0
	for _, e := range entries {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(e.Name()), "."))
		if ext != "" && match(ext) {
			count++
		}
	}
	return count
}

// shouldShowTip applies the accept/dismiss filter: never shown once
// accepted; suppressed while dismissed and still within its cooldown
// window; permanently suppressed if dismissed with no cooldown at all.
func shouldShowTip(tip Suggestion, state State, now time.Time) bool {
	if state == (State{}) {
		return true
	}
	if state.Accepted {
		return false
	}
	if state.Dismissed {
		if state.CooldownUntil == "" {
			return false
		}
		if cooldown, err := time.ParseInLocation(types.TimestampLayout, state.CooldownUntil, now.Location()); err == nil {
			if now.Before(cooldown) {
				return false
			}
		}
	}
	return true
}

// Dismiss records a dismissal, optionally with a cooldown after which the
// tip may reappear. An empty until means the dismissal is permanent.
func Dismiss(ctx context.Context, store settingStore, tipID string, until time.Time) error {
	cooldown := ""
	if !until.IsZero() {
		cooldown = until.Format(types.TimestampLayout)
	}
	return store.SetSetting(ctx, SettingKeyPrefix+tipID, encodeState(State{Dismissed: true, CooldownUntil: cooldown}))
}

// Accept records that the user acted on a tip, suppressing it for good.
func Accept(ctx context.Context, store settingStore, tipID string) error {
	return store.SetSetting(ctx, SettingKeyPrefix+tipID, encodeState(State{Accepted: true}))
}

// encodeState serializes a State as a small pipe-delimited string — tip
// state is three flat fields, not worth a JSON dependency for.
func encodeState(s State) string {
	accepted := "0"
	if s.Accepted {
		accepted = "1"
	}
	dismissed := "0"
	if s.Dismissed {
		dismissed = "1"
	}
	return accepted + "|" + dismissed + "|" + s.CooldownUntil
}

func decodeState(raw string) State {
	parts := strings.SplitN(raw, "|", 3)
	if len(parts) < 2 {
		return State{}
	}
	s := State{Accepted: parts[0] == "1", Dismissed: parts[1] == "1"}
	if len(parts) == 3 {
		s.CooldownUntil = parts[2]
	}
	return s
}

func decodeStates(raw map[string]string) map[string]State {
	states := make(map[string]State, len(raw))
	for key, value := range raw {
		id := strings.TrimPrefix(key, SettingKeyPrefix)
		states[id] = decodeState(value)
	}
	return states
}
