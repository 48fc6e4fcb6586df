package rules

import (
	"github.com/CodeCraftgenz/deskcraft/internal/logging"
	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

// Match is the rule engine's verdict for one file: which rule fired and
// what actions to run.
type Match struct {
	RuleID   string
	RuleName string
	Actions  []types.Action
}

// SelectRule runs the ordered rule chain against one file and returns the
// first matching rule's actions.
//
// rules must already be sorted by the caller (sort_order asc, priority
// desc — the engine does not re-sort, so callers control precedence).
// Disabled rules and rules with zero conditions are skipped. A rule whose
// condition chain evaluates true but that has zero actions is treated as
// a non-match (logged) rather than a match with no effect, since "match
// but do nothing" is indistinguishable from "didn't match" to every
// caller that matters.
func SelectRule(f types.FileRecord, ruleList []types.Rule, log *logging.Logger) (Match, bool) {
	for _, rule := range ruleList {
		if !rule.Enabled {
			continue
		}
		if len(rule.Conditions) == 0 {
			continue
		}

		if !evaluateChain(rule.Conditions, f, log) {
			continue
		}

		if len(rule.Actions) == 0 {
			log.Warnf("rules: rule %q matched %s but has no actions, skipping", rule.Name, f.Path)
			continue
		}

		return Match{RuleID: rule.ID, RuleName: rule.Name, Actions: rule.Actions}, true
	}
	return Match{}, false
}

// evaluateChain evaluates every condition in order — no short-circuiting —
// and combines them left to right using each condition's own logic gate.
// The first condition's gate is ignored; its truth value seeds the chain.
func evaluateChain(conditions []types.Condition, f types.FileRecord, log *logging.Logger) bool {
	result := EvaluateCondition(conditions[0], f, log)

	for _, c := range conditions[1:] {
		v := EvaluateCondition(c, f, log)
		switch c.LogicGate {
		case types.GateOR:
			result = result || v
		default: // types.GateAND and anything unrecognized combine as AND
			result = result && v
		}
	}
	return result
}
