// Package organizer implements the simulate/conflict/execute/rollback
// pipeline.
package organizer

import (
	"os"

	"github.com/CodeCraftgenz/deskcraft/internal/logging"
	"github.com/CodeCraftgenz/deskcraft/internal/rules"
	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

// Item is one planned action against one file, produced by the simulator
// and consumed by the executor.
type Item struct {
	File        types.FileRecord
	RuleID      string
	RuleName    string
	ActionType  types.ActionType
	Destination string // empty if the action resolver returned no destination
	Conflict    bool   // true iff Destination is non-empty and already exists on disk
}

// Simulation is the pure plan produced by Simulate: an auditable list of
// intended operations plus match counters.
type Simulation struct {
	Items         []Item
	TotalFiles    int
	MatchedFiles  int
	UnmatchedFiles int
}

// Simulate runs the rule engine over every file and, for each match,
// resolves every one of the winning rule's actions into a simulation
// item. Unmatched files count toward UnmatchedFiles and never appear in
// Items.
//
// The only filesystem interaction here is the conflict existence probe —
// everything else is pure. This probe is a hint only: the executor always
// re-probes against the same directory snapshot it is about to act on.
func Simulate(files []types.FileRecord, ruleList []types.Rule, log *logging.Logger) Simulation {
	sim := Simulation{TotalFiles: len(files)}

	for _, f := range files {
		match, ok := rules.SelectRule(f, ruleList, log)
		if !ok {
			sim.UnmatchedFiles++
			continue
		}
		sim.MatchedFiles++

		for _, action := range match.Actions {
			dest, _ := rules.ResolveDestination(action, f, log)
			item := Item{
				File:       f,
				RuleID:     match.RuleID,
				RuleName:   match.RuleName,
				ActionType: action.ActionType,
				Destination: dest,
			}
			if dest != "" {
				item.Conflict = exists(dest)
			}
			sim.Items = append(sim.Items, item)
		}
	}

	return sim
}

func exists(path string) bool {
	_, err := os.Stat(path)
	if err == nil {
		return true
	}
	return !os.IsNotExist(err)
}
