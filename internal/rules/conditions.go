// Package rules implements the condition evaluator, rule engine, and
// action/template resolver.
//
// The field/operator matrix is modeled as a small tagged-variant double
// dispatch rather than stringly typed branches in the hot path;
// extractField and the operator switch in EvaluateCondition below are that
// dispatch, kept as two small
// switches instead of one combinatorial one so each axis can be read and
// extended independently.
package rules

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/CodeCraftgenz/deskcraft/internal/logging"
	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

// regexCache avoids recompiling the same `matches` pattern for every file
// in a scan; condition values are usually reused across thousands of
// files in one run.
var (
	regexCacheMu sync.Mutex
	regexCache   = map[string]*regexp.Regexp{}
)

// EvaluateCondition returns whether a single condition holds for a single
// file record.
//
// String comparisons are ASCII case-insensitive. greater_than/less_than
// coerce both sides through decimal parsing, defaulting unparseable
// strings to 0 — including for non-numeric fields, since the evaluator is
// intentionally field-agnostic about which fields numeric operators make
// sense on. matches compiles Value as a regular expression; a compile
// failure is logged once (via the cache, so the warning fires only the
// first time a bad pattern is seen) and evaluates to false.
func EvaluateCondition(c types.Condition, f types.FileRecord, log *logging.Logger) bool {
	fieldValue := extractField(c.Field, f, log)

	switch c.Operator {
	case types.OpEquals:
		return strings.EqualFold(fieldValue, c.Value)
	case types.OpNotEquals:
		return !strings.EqualFold(fieldValue, c.Value)
	case types.OpContains:
		return strings.Contains(strings.ToLower(fieldValue), strings.ToLower(c.Value))
	case types.OpNotContains:
		return !strings.Contains(strings.ToLower(fieldValue), strings.ToLower(c.Value))
	case types.OpStartsWith:
		return strings.HasPrefix(strings.ToLower(fieldValue), strings.ToLower(c.Value))
	case types.OpEndsWith:
		return strings.HasSuffix(strings.ToLower(fieldValue), strings.ToLower(c.Value))
	case types.OpGreaterThan:
		return numeric(fieldValue) > numeric(c.Value)
	case types.OpLessThan:
		return numeric(fieldValue) < numeric(c.Value)
	case types.OpMatches:
		return matchesRegex(c.Value, fieldValue, log)
	default:
		return false
	}
}

// extractField pulls the string form of the field a condition tests
// against. size is stringified here (rather than compared as an int64)
// so the numeric operators above can stay field-agnostic.
func extractField(field types.ConditionField, f types.FileRecord, log *logging.Logger) string {
	switch field {
	case types.FieldExtension:
		return f.Extension
	case types.FieldFilename:
		return f.Name
	case types.FieldSize:
		return strconv.FormatInt(f.SizeBytes, 10)
	case types.FieldCreatedDate:
		return f.CreatedAt
	case types.FieldModifiedDate:
		return f.ModifiedAt
	case types.FieldSourceFolder:
		return parentDir(f.Path)
	case types.FieldRegex:
		return f.Name
	default:
		// Unknown fields fall back to filename, with a warning logged on
		// each evaluation.
		if log != nil {
			log.Warnf("rules: unknown condition field %q, falling back to filename", field)
		}
		return f.Name
	}
}

func parentDir(path string) string {
	i := strings.LastIndexAny(path, `/\`)
	if i < 0 {
		return ""
	}
	return path[:i]
}

// numeric parses s as a decimal, defaulting to 0 on failure so that
// comparisons against non-numeric condition values degrade predictably
// instead of panicking or always-failing.
func numeric(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// matchesRegex compiles pattern once (cached) and reports whether value
// matches it. A compile failure is logged once per distinct bad pattern
// and evaluates to false from then on.
func matchesRegex(pattern, value string, log *logging.Logger) bool {
	regexCacheMu.Lock()
	re, cached := regexCache[pattern]
	regexCacheMu.Unlock()

	if !cached {
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			if log != nil {
				log.Warnf("rules: invalid regex condition %q: %v", pattern, err)
			}
			regexCacheMu.Lock()
			regexCache[pattern] = nil
			regexCacheMu.Unlock()
			return false
		}
		regexCacheMu.Lock()
		regexCache[pattern] = compiled
		regexCacheMu.Unlock()
		re = compiled
	}

	if re == nil {
		return false
	}
	return re.MatchString(value)
}
