package models

import (
	"strings"

	"github.com/frankb2024/Bad-kids-sub000/internal/constants"
)

// ScheduleEntry is one row of the household schedule: a time of day, the
// participant(s) responsible, the day-range spec it applies on, the action to
// announce, and a short label for displays. Entries are immutable once loaded
// and replaced wholesale on reload.
type ScheduleEntry struct {
	Time         string   // HH:MM
	Participants []string // ordered, size >= 1
	Days         string   // day-range spec, see dayrange package
	Action       string
	Label        string
}

// Rotating reports whether the entry is shared between multiple participants
// and therefore subject to rotation.
func (e ScheduleEntry) Rotating() bool {
	return len(e.Participants) > 1
}

// ParticipantSpec returns the participant list as written in the schedule
// file (colon-separated).
func (e ScheduleEntry) ParticipantSpec() string {
	return strings.Join(e.Participants, constants.ParticipantSeparator)
}

// FirstParticipant returns the first listed participant, the fallback
// assignee whenever rotation resolution is unavailable.
func (e ScheduleEntry) FirstParticipant() string {
	if len(e.Participants) == 0 {
		return ""
	}
	return e.Participants[0]
}

// RotationKey returns the key identifying this entry's rotation.
func (e ScheduleEntry) RotationKey() RotationKey {
	return NewRotationKey(e.Time, e.Days, e.Action)
}

// InstanceKey returns the key identifying this entry's task instance for a
// given day. Unlike the rotation key it includes the participant spec as
// written, so two entries sharing a rotation key but naming different people
// stay distinguishable.
func (e ScheduleEntry) InstanceKey() InstanceKey {
	return InstanceKey{
		Time:         strings.TrimSpace(e.Time),
		Participants: strings.TrimSpace(e.ParticipantSpec()),
		Action:       strings.TrimSpace(e.Action),
	}
}

// RotationKey identifies one rotating responsibility: the (time, day-range
// spec, action) triple. Components are trimmed at construction so the same
// entry always produces the same key regardless of incidental whitespace in
// the schedule file.
type RotationKey struct {
	Time   string
	Days   string
	Action string
}

// NewRotationKey builds a rotation key with uniformly trimmed components.
func NewRotationKey(timeStr, days, action string) RotationKey {
	return RotationKey{
		Time:   strings.TrimSpace(timeStr),
		Days:   strings.TrimSpace(days),
		Action: strings.TrimSpace(action),
	}
}

func (k RotationKey) String() string {
	return k.Time + "|" + k.Days + "|" + k.Action
}

// InstanceKey identifies one task instance within a day.
type InstanceKey struct {
	Time         string
	Participants string
	Action       string
}

func (k InstanceKey) String() string {
	return k.Time + "|" + k.Participants + "|" + k.Action
}
