package rotation

import (
	"time"

	"github.com/frankb2024/Bad-kids-sub000/internal/dayrange"
	"github.com/frankb2024/Bad-kids-sub000/internal/logger"
	"github.com/frankb2024/Bad-kids-sub000/internal/models"
	"github.com/frankb2024/Bad-kids-sub000/internal/utils"
)

// Resolver computes the assigned participant for a rotation on any date.
// It reads the store and never mutates it.
type Resolver struct {
	store *Store
}

func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// AssignedPerson resolves the assignee for a rotation key on the target date.
// A missing definition returns ("", false); the caller falls back to the
// first listed participant.
func (r *Resolver) AssignedPerson(key models.RotationKey, target time.Time) (string, bool) {
	def, ok := r.store.Definition(key)
	if !ok {
		logger.Warn("no rotation definition for key", "key", key.String())
		return "", false
	}
	return AssignedFor(def, target)
}

// AssignedFor is the pure assignment function: participant index equals the
// signed count of day-spec-matching calendar days between the anchor and the
// target (exclusive of anchor, inclusive of target; negated when the target
// precedes the anchor), taken modulo the participant count. No history is
// consulted, so any date past or future resolves identically across
// restarts.
func AssignedFor(def models.RotationDefinition, target time.Time) (string, bool) {
	n := len(def.Participants)
	if n == 0 {
		logger.Warn("rotation has no participants", "key", def.Key.String())
		return "", false
	}

	anchor, err := utils.ParseDateInLocation(def.Anchor, target.Location())
	if err != nil {
		logger.Warn("rotation has unparseable anchor", "key", def.Key.String(), "anchor", def.Anchor)
		return "", false
	}
	day := utils.Midnight(target)

	occurrences := 0
	switch {
	case day.After(anchor):
		for d := anchor.AddDate(0, 0, 1); !d.After(day); d = d.AddDate(0, 0, 1) {
			if dayrange.Matches(dayrange.DayName(d.Weekday()), def.Key.Days) {
				occurrences++
			}
		}
	case day.Before(anchor):
		for d := day.AddDate(0, 0, 1); !d.After(anchor); d = d.AddDate(0, 0, 1) {
			if dayrange.Matches(dayrange.DayName(d.Weekday()), def.Key.Days) {
				occurrences--
			}
		}
	}

	idx := occurrences % n
	if idx < 0 {
		idx += n
	}
	return def.Participants[idx], true
}
