// Package cron implements a restricted 5-field cron dialect and next-run
// calculator. It is deliberately not a general cron parser: day-of-month
// and month are accepted but ignored, and only four field shapes exist at
// all. No third-party cron library matches that restricted grammar or its
// exact dispatch precedence, so this is hand-written against the standard
// library only — see DESIGN.md for why that's the right call here
// specifically, rather than a default.
package cron

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrUnsupported is returned by Parse for a field shape the dialect
// doesn't recognize.
var ErrUnsupported = errors.New("cron: unsupported expression")

// fieldKind tags which of the three accepted shapes a field parsed as.
type fieldKind int

const (
	kindAny fieldKind = iota
	kindFixed
	kindStep
)

type field struct {
	kind  fieldKind
	value int // fixed value, or N for */N
}

// Expression is a parsed 5-field cron expression. Day-of-month and month
// are parsed (so malformed input is rejected) but never consulted by
// NextRun.
type Expression struct {
	minute field
	hour   field
	dow    field // day-of-week; kindAny means "no filter"
}

// Parse parses a "minute hour day-of-month month day-of-week" expression.
// Day-of-month and month fields are validated for shape only (they must
// be "*", a bare integer, or, for symmetry with minute/hour, rejected
// otherwise) but never affect NextRun: they are accepted but ignored.
func Parse(expr string) (Expression, error) {
	parts := strings.Fields(expr)
	if len(parts) != 5 {
		return Expression{}, fmt.Errorf("%w: expected 5 fields, got %d", ErrUnsupported, len(parts))
	}

	minute, err := parseField(parts[0], true)
	if err != nil {
		return Expression{}, err
	}
	hour, err := parseField(parts[1], true)
	if err != nil {
		return Expression{}, err
	}
	if _, err := parseField(parts[2], false); err != nil {
		return Expression{}, err
	}
	if _, err := parseField(parts[3], false); err != nil {
		return Expression{}, err
	}
	dow, err := parseField(parts[4], false)
	if err != nil {
		return Expression{}, err
	}

	return Expression{minute: minute, hour: hour, dow: dow}, nil
}

// parseField parses one field as "*", a bare non-negative integer, or (for
// minute/hour only, when allowStep is true) "*/N".
func parseField(s string, allowStep bool) (field, error) {
	if s == "*" {
		return field{kind: kindAny}, nil
	}
	if allowStep && strings.HasPrefix(s, "*/") {
		n, err := strconv.Atoi(s[2:])
		if err != nil || n <= 0 {
			return field{}, fmt.Errorf("%w: bad step %q", ErrUnsupported, s)
		}
		return field{kind: kindStep, value: n}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return field{}, fmt.Errorf("%w: bad field %q", ErrUnsupported, s)
	}
	return field{kind: kindFixed, value: n}, nil
}

// maxIterations bounds the hourly mode's minute-by-minute search.
const maxIterations = 1500

// maxDays bounds the daily/weekly mode's day-by-day search.
const maxDays = 400

// NextRun computes the next firing time strictly after from, in from's
// location (callers pass time.Now() in the local zone; the result is
// formatted in the local clock). Returns false when the
// expression doesn't match any of the four supported dispatch shapes, or
// the search overflows its bound.
func (e Expression) NextRun(from time.Time) (time.Time, bool) {
	switch {
	case e.hour.kind == kindAny && e.minute.kind == kindFixed:
		return e.nextHourly(from)
	case e.minute.kind == kindStep && e.hour.kind == kindAny:
		return e.nextEveryNMinutes(from)
	case e.hour.kind == kindStep:
		return e.nextEveryNHours(from)
	case e.hour.kind == kindFixed && e.minute.kind == kindFixed:
		return e.nextDailyWeekly(from)
	default:
		return time.Time{}, false
	}
}

// nextHourly steps forward minute by minute until the minute field
// matches, for "hour = *, minute = fixed" expressions.
func (e Expression) nextHourly(from time.Time) (time.Time, bool) {
	t := from.Add(time.Minute).Truncate(time.Minute)
	for i := 0; i < maxIterations; i++ {
		if t.Minute() == e.minute.value {
			return t, true
		}
		t = t.Add(time.Minute)
	}
	return time.Time{}, false
}

// nextEveryNMinutes advances to the next minute that is a multiple of N,
// wrapping the hour when needed, for "minute = */N, hour = *".
func (e Expression) nextEveryNMinutes(from time.Time) (time.Time, bool) {
	n := e.minute.value
	if n <= 0 || n > 59 {
		return time.Time{}, false
	}

	t := from.Add(time.Minute).Truncate(time.Minute)
	for i := 0; i < maxIterations; i++ {
		if t.Minute()%n == 0 {
			return t, true
		}
		t = t.Add(time.Minute)
	}
	return time.Time{}, false
}

// nextEveryNHours finds the next timestamp with hour%N == 0 and a
// matching minute, for "hour = */N".
func (e Expression) nextEveryNHours(from time.Time) (time.Time, bool) {
	n := e.hour.value
	if n <= 0 || n > 23 {
		return time.Time{}, false
	}

	minute := 0
	if e.minute.kind == kindFixed {
		minute = e.minute.value
	}

	t := from.Add(time.Minute).Truncate(time.Minute)
	for i := 0; i < maxIterations; i++ {
		if t.Hour()%n == 0 && (e.minute.kind != kindFixed || t.Minute() == minute) {
			return t, true
		}
		t = t.Add(time.Minute)
	}
	return time.Time{}, false
}

// nextDailyWeekly forms today's target time from the fixed hour/minute;
// rolls to tomorrow if that has already passed; then advances day by day,
// skipping any date whose weekday disagrees with the day-of-week filter
// (when one is set), up to maxDays.
func (e Expression) nextDailyWeekly(from time.Time) (time.Time, bool) {
	target := time.Date(from.Year(), from.Month(), from.Day(), e.hour.value, e.minute.value, 0, 0, from.Location())
	if !target.After(from) {
		target = target.AddDate(0, 0, 1)
	}

	for i := 0; i < maxDays; i++ {
		if e.dow.kind != kindFixed || int(target.Weekday()) == e.dow.value {
			return target, true
		}
		target = target.AddDate(0, 0, 1)
	}
	return time.Time{}, false
}

// NextRunAfter is the persistence-facing entry point: it parses expr and
// returns the local-clock formatted next_run_at string to store, or ""
// when the expression is unsupported.
func NextRunAfter(expr string, from time.Time) string {
	parsed, err := Parse(expr)
	if err != nil {
		return ""
	}
	t, ok := parsed.NextRun(from)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
