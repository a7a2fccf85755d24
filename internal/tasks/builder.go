// Package tasks materializes schedule entries into concrete task instances
// for the current day.
package tasks

import (
	"time"

	"github.com/google/uuid"

	"github.com/frankb2024/Bad-kids-sub000/internal/constants"
	"github.com/frankb2024/Bad-kids-sub000/internal/dayrange"
	"github.com/frankb2024/Bad-kids-sub000/internal/logger"
	"github.com/frankb2024/Bad-kids-sub000/internal/models"
	"github.com/frankb2024/Bad-kids-sub000/internal/rotation"
	"github.com/frankb2024/Bad-kids-sub000/internal/utils"
)

// Builder expands today's schedule entries into task instances, resolving
// each rotating entry's assignee once.
type Builder struct {
	resolver *rotation.Resolver
}

func NewBuilder(resolver *rotation.Resolver) *Builder {
	return &Builder{resolver: resolver}
}

// BuildToday returns the instance set for the calendar day of now. Entries
// whose day-range spec does not cover today produce nothing. Instances from
// prev are merged forward by key so called/completed state survives a
// same-day schedule reload, and injected or already-finished instances are
// never silently dropped.
func (b *Builder) BuildToday(entries []models.ScheduleEntry, now time.Time, prev map[models.InstanceKey]*models.TaskInstance) map[models.InstanceKey]*models.TaskInstance {
	today := dayrange.DayName(now.Weekday())
	instances := make(map[models.InstanceKey]*models.TaskInstance)

	for _, entry := range entries {
		if !dayrange.Matches(today, entry.Days) {
			continue
		}
		key := entry.InstanceKey()
		if existing, ok := prev[key]; ok {
			instances[key] = existing
			continue
		}

		at, err := utils.CombineDateAndTime(now.Format(constants.DateFormat), entry.Time, now.Location())
		if err != nil {
			logger.Warn("skipping entry with bad time", "time", entry.Time, "action", entry.Action, "error", err)
			continue
		}
		instances[key] = &models.TaskInstance{
			ID:       uuid.NewString(),
			Entry:    entry,
			At:       at,
			Assigned: b.resolveAssignee(entry, now),
		}
	}

	// Injected and already-finished instances ride along even when no
	// current entry produces their key
	for key, inst := range prev {
		if _, ok := instances[key]; ok {
			continue
		}
		if inst.Injected || inst.Called || inst.Done {
			instances[key] = inst
		}
	}

	logger.Debug("today's tasks built", "instances", len(instances), "day", today)
	return instances
}

// Inject creates a synthetic instance due delay from now, assigned to the
// given person, and adds it to the instance set. Used by the operator inject
// hook.
func (b *Builder) Inject(instances map[models.InstanceKey]*models.TaskInstance, person, action string, delay time.Duration, now time.Time) *models.TaskInstance {
	at := now.Add(delay)
	entry := models.ScheduleEntry{
		Time:         at.Format(constants.TimeFormat),
		Participants: []string{person},
		Days:         dayrange.DayName(at.Weekday()),
		Action:       action,
		Label:        "Injected",
	}
	inst := &models.TaskInstance{
		ID:       uuid.NewString(),
		Entry:    entry,
		At:       at,
		Assigned: person,
		Injected: true,
	}
	instances[entry.InstanceKey()] = inst
	logger.Info("task injected", "person", person, "action", action, "at", at.Format("15:04:05"))
	return inst
}

func (b *Builder) resolveAssignee(entry models.ScheduleEntry, now time.Time) string {
	if !entry.Rotating() {
		return entry.FirstParticipant()
	}
	person, ok := b.resolver.AssignedPerson(entry.RotationKey(), now)
	if !ok {
		// Resolver misses fall back to the first listed participant
		return entry.FirstParticipant()
	}
	return person
}
