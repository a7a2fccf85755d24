// Package rotation owns who is up for each shared task: durable rotation
// definitions (anchor date + ordered participants per rotating schedule
// entry) and the pure resolver that derives an assignee for any date from
// them.
package rotation

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/frankb2024/Bad-kids-sub000/internal/constants"
	"github.com/frankb2024/Bad-kids-sub000/internal/dayrange"
	"github.com/frankb2024/Bad-kids-sub000/internal/logger"
	"github.com/frankb2024/Bad-kids-sub000/internal/models"
	"github.com/frankb2024/Bad-kids-sub000/internal/storage"
	"github.com/frankb2024/Bad-kids-sub000/internal/utils"
)

// Persisted row layout: time, days, action, anchor, position, name, rotating.
const stateFields = 7

// Store derives, persists, and reloads rotation definitions. Definitions
// change only through Rebuild and Advance; resolution never writes.
type Store struct {
	path string
	loc  *time.Location
	defs map[models.RotationKey]models.RotationDefinition
}

func NewStore(path string, loc *time.Location) *Store {
	return &Store{
		path: path,
		loc:  loc,
		defs: make(map[models.RotationKey]models.RotationDefinition),
	}
}

// Definition returns the rotation definition for a key, if one exists.
func (s *Store) Definition(key models.RotationKey) (models.RotationDefinition, bool) {
	def, ok := s.defs[key]
	return def, ok
}

// Definitions returns all definitions in stable key order.
func (s *Store) Definitions() []models.RotationDefinition {
	defs := make([]models.RotationDefinition, 0, len(s.defs))
	for _, def := range s.defs {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Key.String() < defs[j].Key.String()
	})
	return defs
}

// Rebuild derives one definition per rotating schedule entry, anchored at
// today, and persists the result. Existing definitions are replaced
// wholesale.
func (s *Store) Rebuild(entries []models.ScheduleEntry, today string) error {
	defs := make(map[models.RotationKey]models.RotationDefinition)
	for _, entry := range entries {
		if !entry.Rotating() {
			continue
		}
		key := entry.RotationKey()
		if _, dup := defs[key]; dup {
			logger.Warn("duplicate rotation key in schedule", "key", key.String())
			continue
		}
		defs[key] = models.RotationDefinition{
			Key:          key,
			Anchor:       today,
			Participants: append([]string(nil), entry.Participants...),
		}
	}
	s.defs = defs
	logger.Info("rotation state rebuilt", "rotations", len(defs), "anchor", today)
	return s.Save()
}

// Load reads persisted definitions, grouping rows by rotation key and
// ordering participants by their 1-based position. A missing file returns
// (false, nil) so the caller can rebuild; a corrupt file returns an error for
// the same purpose.
func (s *Store) Load() (bool, error) {
	rows, err := storage.ReadCSV(s.path)
	if err != nil {
		return false, fmt.Errorf("load rotation state: %w", err)
	}
	if rows == nil {
		return false, nil
	}

	type member struct {
		position int
		name     string
	}
	anchors := make(map[models.RotationKey]string)
	members := make(map[models.RotationKey][]member)

	for i, row := range rows {
		if len(row) < stateFields {
			return false, fmt.Errorf("rotation state row %d: expected %d fields, got %d", i+1, stateFields, len(row))
		}
		key := models.NewRotationKey(row[0], row[1], row[2])
		anchor := row[3]
		if _, err := time.Parse(constants.DateFormat, anchor); err != nil {
			return false, fmt.Errorf("rotation state row %d: bad anchor %q", i+1, anchor)
		}
		position, err := strconv.Atoi(row[4])
		if err != nil || position < 1 {
			return false, fmt.Errorf("rotation state row %d: bad position %q", i+1, row[4])
		}
		if prev, ok := anchors[key]; ok && prev != anchor {
			return false, fmt.Errorf("rotation state row %d: conflicting anchors for key %q", i+1, key.String())
		}
		anchors[key] = anchor
		members[key] = append(members[key], member{position: position, name: row[5]})
	}

	defs := make(map[models.RotationKey]models.RotationDefinition, len(anchors))
	for key, ms := range members {
		sort.Slice(ms, func(i, j int) bool { return ms[i].position < ms[j].position })
		participants := make([]string, len(ms))
		for i, m := range ms {
			participants[i] = m.name
		}
		defs[key] = models.RotationDefinition{
			Key:          key,
			Anchor:       anchors[key],
			Participants: participants,
		}
	}
	s.defs = defs
	logger.Debug("rotation state loaded", "rotations", len(defs))
	return true, nil
}

// Save persists all definitions atomically: one row per participant, written
// to a temp file and renamed over the destination.
func (s *Store) Save() error {
	var rows [][]string
	for _, def := range s.Definitions() {
		for i, name := range def.Participants {
			rows = append(rows, []string{
				def.Key.Time,
				def.Key.Days,
				def.Key.Action,
				def.Anchor,
				strconv.Itoa(i + 1),
				name,
				strconv.FormatBool(len(def.Participants) > 1),
			})
		}
	}
	if err := storage.WriteCSV(s.path, rows); err != nil {
		return fmt.Errorf("save rotation state: %w", err)
	}
	return nil
}

// Advance shifts every rotation forward by exactly one slot by walking its
// anchor backward to the nearest earlier day matching its day-range spec,
// then persists. Participant ordering is untouched.
func (s *Store) Advance() error {
	for key, def := range s.defs {
		anchor, err := utils.ParseDateInLocation(def.Anchor, s.loc)
		if err != nil {
			logger.Warn("skipping rotation with bad anchor", "key", key.String(), "anchor", def.Anchor)
			continue
		}
		moved := false
		for i := 0; i < 7; i++ {
			anchor = anchor.AddDate(0, 0, -1)
			if dayrange.Matches(dayrange.DayName(anchor.Weekday()), key.Days) {
				moved = true
				break
			}
		}
		if !moved {
			logger.Warn("no matching day within a week of anchor", "key", key.String(), "days", key.Days)
			continue
		}
		def.Anchor = anchor.Format(constants.DateFormat)
		s.defs[key] = def
		logger.Info("rotation advanced", "key", key.String(), "anchor", def.Anchor)
	}
	return s.Save()
}
