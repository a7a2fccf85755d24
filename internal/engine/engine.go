// Package engine drives the scheduling core: a tick-driven detector that
// fires due task instances exactly once, expires stale ones, and keeps the
// next/last summaries current for the display collaborators.
package engine

import (
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/frankb2024/Bad-kids-sub000/internal/config"
	"github.com/frankb2024/Bad-kids-sub000/internal/constants"
	"github.com/frankb2024/Bad-kids-sub000/internal/content"
	"github.com/frankb2024/Bad-kids-sub000/internal/dayrange"
	"github.com/frankb2024/Bad-kids-sub000/internal/logger"
	"github.com/frankb2024/Bad-kids-sub000/internal/models"
	"github.com/frankb2024/Bad-kids-sub000/internal/notifier"
	"github.com/frankb2024/Bad-kids-sub000/internal/rotation"
	"github.com/frankb2024/Bad-kids-sub000/internal/schedule"
	"github.com/frankb2024/Bad-kids-sub000/internal/tasklog"
	"github.com/frankb2024/Bad-kids-sub000/internal/tasks"
	"github.com/frankb2024/Bad-kids-sub000/internal/utils"
)

// Engine owns all mutable scheduler state. Everything is driven from the
// single polling loop; Tick is guarded against reentry so a slow tick is
// skipped, never run concurrently.
type Engine struct {
	cfg       config.Config
	loc       *time.Location
	schedule  *schedule.Store
	rotations *rotation.Store
	resolver  *rotation.Resolver
	builder   *tasks.Builder
	library   *content.Library
	taskLog   *tasklog.Log
	notify    notifier.Notifier

	// Clock is injectable for tests
	now func() time.Time

	instances map[models.InstanceKey]*models.TaskInstance
	today     string
	next      *models.TaskSummary
	last      *models.TaskSummary

	ticking atomic.Bool
}

// New wires an engine from configuration. Call Start before Tick.
func New(cfg config.Config, notify notifier.Notifier) (*Engine, error) {
	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}
	rotations := rotation.NewStore(cfg.RotationStatePath(), loc)
	resolver := rotation.NewResolver(rotations)
	e := &Engine{
		cfg:       cfg,
		loc:       loc,
		schedule:  schedule.NewStore(cfg.SchedulePath()),
		rotations: rotations,
		resolver:  resolver,
		builder:   tasks.NewBuilder(resolver),
		library:   content.NewLibrary(cfg.DataDir),
		taskLog:   tasklog.New(cfg.TaskLogPath()),
		notify:    notify,
		now:       func() time.Time { return time.Now().In(loc) },
		instances: make(map[models.InstanceKey]*models.TaskInstance),
	}
	return e, nil
}

// Start performs the initial load: schedule, rotation state (rebuilding when
// missing or corrupt), content pools, and today's instances.
func (e *Engine) Start() error {
	if !e.schedule.Exists() {
		logger.Info("no schedule file, writing sample", "path", e.schedule.Path())
		if err := e.schedule.WriteSample(); err != nil {
			return err
		}
	} else if err := e.schedule.Load(); err != nil {
		return err
	}

	now := e.now()
	today := now.Format(constants.DateFormat)

	loaded, err := e.rotations.Load()
	if err != nil {
		logger.Warn("rotation state corrupt, rebuilding", "error", err)
		loaded = false
	}
	if !loaded {
		if err := e.rotations.Rebuild(e.schedule.Entries(), today); err != nil {
			return err
		}
	}

	if err := e.library.Load(); err != nil {
		return err
	}

	e.today = today
	e.instances = e.builder.BuildToday(e.schedule.Entries(), now, nil)
	e.refreshSummaries(now)
	return nil
}

// Tick runs one scheduling pass. Overlapping invocations are suppressed:
// if a tick is still executing, the new one returns immediately.
func (e *Engine) Tick() {
	if !e.ticking.CompareAndSwap(false, true) {
		logger.Debug("tick still in progress, skipping")
		return
	}
	defer e.ticking.Store(false)

	now := e.now()

	e.rolloverIfNeeded(now)
	e.reloadIfModified(now)
	e.expireStale(now)
	e.fireDue(now)
	e.refreshSummaries(now)
}

// rolloverIfNeeded discards yesterday's instances at the first tick of a
// new calendar day.
func (e *Engine) rolloverIfNeeded(now time.Time) {
	today := now.Format(constants.DateFormat)
	if today == e.today {
		return
	}
	logger.Info("day rollover", "from", e.today, "to", today)
	e.today = today
	e.instances = e.builder.BuildToday(e.schedule.Entries(), now, nil)
}

// reloadIfModified reloads the schedule when the file changed on disk,
// rebuilds rotation state, and recomputes today's instances with in-flight
// ones merged forward.
func (e *Engine) reloadIfModified(now time.Time) {
	if !e.schedule.Modified() {
		return
	}
	logger.Info("schedule file changed, reloading")
	if err := e.schedule.Load(); err != nil {
		logger.Error("schedule reload failed, keeping previous entries", "error", err)
		return
	}
	if err := e.rotations.Rebuild(e.schedule.Entries(), e.today); err != nil {
		logger.Error("rotation rebuild failed", "error", err)
	}
	e.instances = e.builder.BuildToday(e.schedule.Entries(), now, e.instances)
}

// expireStale completes (without firing) any pending instance more than the
// expiry grace past its scheduled time, so stale tasks cannot fire after
// long downtime.
func (e *Engine) expireStale(now time.Time) {
	for _, inst := range e.instances {
		if inst.Done {
			continue
		}
		if now.Sub(inst.At) > e.cfg.ExpiryGrace() {
			inst.Done = true
			logger.Warn("task expired without firing",
				"action", inst.Entry.Action, "scheduled", inst.At.Format(constants.TimeFormat))
		}
	}
}

// fireDue fires at most one due instance per tick. Instances are evaluated
// in arbitrary key order; the first whose scheduled time is within the
// trigger window of now fires, and the pass stops.
func (e *Engine) fireDue(now time.Time) {
	window := e.cfg.TriggerWindow()
	for _, inst := range e.instances {
		if inst.Done {
			continue
		}
		delta := now.Sub(inst.At)
		if delta < -window || delta > window {
			continue
		}
		e.fire(inst, now)
		return
	}
}

func (e *Engine) fire(inst *models.TaskInstance, now time.Time) {
	displayText, speechText := e.resolveTexts(inst, now)

	if err := e.taskLog.Fired(now, inst.Entry.Time, inst.Entry.Days, inst.Assigned, inst.Entry.Action); err != nil {
		logger.Error("task log append failed", "action", inst.Entry.Action, "error", err)
	}

	inst.Called = true
	inst.Done = true
	e.notify.TaskFired(inst, displayText, speechText)
	logger.Info("task fired", "action", inst.Entry.Action, "person", inst.Assigned,
		"scheduled", inst.At.Format(constants.TimeFormat))
}

// resolveTexts finalizes the assignee and builds the alert texts. Content
// category actions draw from the library; everything else announces the
// assigned person and action.
func (e *Engine) resolveTexts(inst *models.TaskInstance, now time.Time) (string, string) {
	if cat, ok := content.CategoryForAction(inst.Entry.Action); ok {
		item, err := e.library.Draw(cat)
		if err != nil {
			logger.Warn("content draw failed", "category", cat, "error", err)
			item = fmt.Sprintf("Time for a %s!", cat)
		}
		return item, item
	}

	if inst.Assigned == "" {
		if person, ok := e.resolver.AssignedPerson(inst.Entry.RotationKey(), now); ok {
			inst.Assigned = person
		} else {
			inst.Assigned = inst.Entry.FirstParticipant()
		}
	}
	display := fmt.Sprintf("%s: %s", inst.Assigned, inst.Entry.Action)
	speech := fmt.Sprintf("%s, time to %s", inst.Assigned, inst.Entry.Action)
	return display, speech
}

// refreshSummaries recomputes the next-upcoming and last-fired summaries
// from the full instance set and notifies collaborators on change.
func (e *Engine) refreshSummaries(now time.Time) {
	var next, last *models.TaskSummary
	var nextAt, lastAt time.Time

	for _, inst := range e.instances {
		if !inst.Done && inst.At.After(now) {
			if next == nil || inst.At.Before(nextAt) {
				next = summarize(inst)
				nextAt = inst.At
			}
		}
		if inst.Called {
			if last == nil || inst.At.After(lastAt) {
				last = summarize(inst)
				lastAt = inst.At
			}
		}
	}

	if !next.Equal(e.next) {
		e.next = next
		e.notify.NextTaskChanged(next)
	}
	if !last.Equal(e.last) {
		e.last = last
		e.notify.LastTaskChanged(last)
	}
}

func summarize(inst *models.TaskInstance) *models.TaskSummary {
	label := inst.Entry.Label
	if label == "" {
		label = inst.Entry.Action
	}
	return &models.TaskSummary{
		Label:  label,
		Action: inst.Entry.Action,
		Person: inst.Assigned,
		At:     inst.At,
	}
}

// Next returns the next-upcoming summary, or nil when nothing is pending.
func (e *Engine) Next() *models.TaskSummary { return e.next }

// Last returns the last-fired summary, or nil when nothing fired today.
func (e *Engine) Last() *models.TaskSummary { return e.last }

// SchedulePath returns the watched schedule file location.
func (e *Engine) SchedulePath() string { return e.schedule.Path() }

// Inject adds a synthetic task due delay from now, for the operator hook.
// The first argument names either a person or a content category; "inject
// story" queues a story draw rather than calling a person named story.
func (e *Engine) Inject(person, action string, delay time.Duration) *models.TaskInstance {
	if cat, ok := content.CategoryForAction(person); ok {
		action = string(cat)
	}
	now := e.now()
	inst := e.builder.Inject(e.instances, person, action, delay, now)
	e.refreshSummaries(now)
	return inst
}

// AdvanceRotations shifts every rotation forward one slot and rebuilds
// today's instances so pending assignments pick up the new anchors. Fired,
// expired, and injected instances are preserved.
func (e *Engine) AdvanceRotations() error {
	if err := e.rotations.Advance(); err != nil {
		return err
	}
	now := e.now()
	kept := make(map[models.InstanceKey]*models.TaskInstance)
	for key, inst := range e.instances {
		if inst.Called || inst.Done || inst.Injected {
			kept[key] = inst
		}
	}
	e.instances = e.builder.BuildToday(e.schedule.Entries(), now, kept)
	e.refreshSummaries(now)
	return nil
}

// Assignment is one row of a resolved assignment dump.
type Assignment struct {
	Date   string
	Day    string
	Time   string
	Person string
	Action string
	Label  string
}

// Dump resolves the full assignment list for the next days calendar days,
// starting today. Each day's rows come out in time-of-day order regardless of
// the schedule file's row order.
func (e *Engine) Dump(days int) []Assignment {
	entries := append([]models.ScheduleEntry(nil), e.schedule.Entries()...)
	sort.SliceStable(entries, func(i, j int) bool {
		mi, _ := utils.ParseTimeToMinutes(entries[i].Time)
		mj, _ := utils.ParseTimeToMinutes(entries[j].Time)
		return mi < mj
	})

	var out []Assignment
	start := utils.Midnight(e.now())
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		dayName := dayrange.DayName(d.Weekday())
		for _, entry := range entries {
			if !dayrange.Matches(dayName, entry.Days) {
				continue
			}
			person := entry.FirstParticipant()
			if entry.Rotating() {
				if p, ok := e.resolver.AssignedPerson(entry.RotationKey(), d); ok {
					person = p
				}
			}
			out = append(out, Assignment{
				Date:   d.Format(constants.DateFormat),
				Day:    dayName,
				Time:   entry.Time,
				Person: person,
				Action: entry.Action,
				Label:  entry.Label,
			})
		}
	}
	return out
}

// Rotations returns the current rotation definitions in stable order.
func (e *Engine) Rotations() []models.RotationDefinition {
	return e.rotations.Definitions()
}

// ResolveToday returns today's assignee for a rotation definition.
func (e *Engine) ResolveToday(def models.RotationDefinition) string {
	person, ok := rotation.AssignedFor(def, e.now())
	if !ok {
		return ""
	}
	return person
}

// TaskLog exposes the append-only fired-task log for status queries.
func (e *Engine) TaskLog() *tasklog.Log { return e.taskLog }
