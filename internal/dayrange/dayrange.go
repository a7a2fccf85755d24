// Package dayrange evaluates the day-range grammar used by schedule rows:
// whole-week aliases, comma-separated sets, inclusive Start-End ranges that
// may wrap across the week boundary, and exact day names.
package dayrange

import (
	"strings"
	"time"

	"github.com/frankb2024/Bad-kids-sub000/internal/logger"
)

// Canonical week ordering, Sunday=0 through Saturday=6.
var dayIndex = map[string]int{
	"sunday":    0,
	"monday":    1,
	"tuesday":   2,
	"wednesday": 3,
	"thursday":  4,
	"friday":    5,
	"saturday":  6,
}

// DayName returns the canonical full name for a weekday.
func DayName(wd time.Weekday) string {
	return wd.String()
}

// Matches reports whether the given day name falls inside the range spec.
// Unknown or empty specs log a warning and return false; they never fail the
// caller.
func Matches(day, spec string) bool {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		logger.Warn("empty day-range spec", "day", day)
		return false
	}

	// Whole-week aliases
	if strings.EqualFold(spec, "Sunday-Saturday") || strings.EqualFold(spec, "All") || spec == "*" {
		return true
	}

	// Explicit set: "Monday,Wednesday,Friday"
	if strings.Contains(spec, ",") {
		for _, part := range strings.Split(spec, ",") {
			if strings.EqualFold(strings.TrimSpace(part), day) {
				return true
			}
		}
		return false
	}

	// Inclusive range: "Monday-Friday", wrapping when start > end
	if start, end, ok := strings.Cut(spec, "-"); ok {
		startIdx, startOk := lookup(start)
		endIdx, endOk := lookup(end)
		cur, curOk := lookup(day)
		if !startOk || !endOk || !curOk {
			logger.Warn("unknown day name in range spec", "spec", spec, "day", day)
			return false
		}
		// Rotate the back half of a wrapping range past the week boundary
		if endIdx < startIdx {
			endIdx += 7
		}
		if cur < startIdx {
			cur += 7
		}
		return cur >= startIdx && cur <= endIdx
	}

	// Single day name
	return strings.EqualFold(spec, day)
}

// Valid reports whether the spec would match at least one known weekday. Used
// by schedule loading to warn on dead rows without rejecting them.
func Valid(spec string) bool {
	for name := range dayIndex {
		if Matches(name, spec) {
			return true
		}
	}
	return false
}

func lookup(name string) (int, bool) {
	idx, ok := dayIndex[strings.ToLower(strings.TrimSpace(name))]
	return idx, ok
}
