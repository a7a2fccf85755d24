package models

import "time"

// TaskInstance is a schedule entry materialized for a concrete day. Instances
// are built fresh at day rollover, merged forward across same-day schedule
// reloads, and mutated only by the trigger engine.
type TaskInstance struct {
	ID       string
	Entry    ScheduleEntry
	At       time.Time // concrete date-time for today
	Assigned string    // resolved assignee, cached once resolved
	Called   bool
	Done     bool
	Injected bool // created by the inject hook rather than the schedule
}

// Key returns the instance key this instance is stored under.
func (t *TaskInstance) Key() InstanceKey {
	return t.Entry.InstanceKey()
}

// Pending reports whether the instance has neither fired nor expired.
func (t *TaskInstance) Pending() bool {
	return !t.Done
}

// TaskSummary is the next/last-task view handed to display collaborators.
type TaskSummary struct {
	Label  string
	Action string
	Person string
	At     time.Time
}

// Equal reports whether two summaries describe the same task occurrence.
func (s *TaskSummary) Equal(other *TaskSummary) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.Label == other.Label && s.Action == other.Action &&
		s.Person == other.Person && s.At.Equal(other.At)
}
