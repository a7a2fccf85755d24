// Package schedule loads and watches the household schedule file: one CSV row
// per recurring task {time, participants, day-range spec, action, label}.
package schedule

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/frankb2024/Bad-kids-sub000/internal/constants"
	"github.com/frankb2024/Bad-kids-sub000/internal/dayrange"
	"github.com/frankb2024/Bad-kids-sub000/internal/logger"
	"github.com/frankb2024/Bad-kids-sub000/internal/models"
	"github.com/frankb2024/Bad-kids-sub000/internal/storage"
	"github.com/frankb2024/Bad-kids-sub000/internal/utils"
)

const rowFields = 5

// Store reads schedule entries from a CSV file and tracks on-disk
// modification so the polling loop can reload only when needed.
type Store struct {
	path    string
	entries []models.ScheduleEntry
	modTime time.Time
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Entries returns the currently loaded schedule.
func (s *Store) Entries() []models.ScheduleEntry {
	return s.entries
}

// Load parses the schedule file. Malformed rows are skipped with a warning,
// whether it is the CSV syntax or the field values that are bad; one bad row
// never aborts the load. A missing file loads as empty.
func (s *Store) Load() error {
	rows, err := storage.ReadCSVLenient(s.path)
	if err != nil {
		return fmt.Errorf("load schedule: %w", err)
	}

	entries := make([]models.ScheduleEntry, 0, len(rows))
	for i, row := range rows {
		entry, err := parseRow(row)
		if err != nil {
			logger.Warn("skipping malformed schedule row", "row", i+1, "raw", strings.Join(row, ","), "error", err)
			continue
		}
		entries = append(entries, entry)
	}
	s.entries = entries

	if info, err := os.Stat(s.path); err == nil {
		s.modTime = info.ModTime()
	}
	logger.Debug("schedule loaded", "entries", len(entries), "path", s.path)
	return nil
}

// Modified reports whether the file on disk has changed since the last Load.
// A vanished file counts as unchanged; the previous entries stay in effect.
func (s *Store) Modified() bool {
	info, err := os.Stat(s.path)
	if err != nil {
		return false
	}
	return !info.ModTime().Equal(s.modTime)
}

// Exists reports whether the schedule file is present on disk.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// WriteSample writes a starter schedule so a first run has something to show.
func (s *Store) WriteSample() error {
	rows := [][]string{
		{"07:15", "Alice", "Monday-Friday", "feed the dog", "Dog"},
		{"17:30", "Frank:Alice:Tom", "*", "set the table", "Table"},
		{"19:00", "Tom", "Saturday,Sunday", "take out the trash", "Trash"},
		{"20:00", "Frank:Alice:Tom", "Monday-Friday", "shower", "Shower"},
		{"20:30", "Frank", "*", "story", "Story time"},
	}
	if err := storage.WriteCSV(s.path, rows); err != nil {
		return fmt.Errorf("write sample schedule: %w", err)
	}
	return s.Load()
}

func parseRow(row []string) (models.ScheduleEntry, error) {
	var entry models.ScheduleEntry
	if len(row) < rowFields {
		return entry, fmt.Errorf("expected %d fields, got %d", rowFields, len(row))
	}

	timeStr := strings.TrimSpace(row[0])
	if !utils.ValidateTimeFormat(timeStr) {
		return entry, fmt.Errorf("invalid time %q", timeStr)
	}

	var participants []string
	for _, name := range strings.Split(row[1], constants.ParticipantSeparator) {
		if name = strings.TrimSpace(name); name != "" {
			participants = append(participants, name)
		}
	}
	if len(participants) == 0 {
		return entry, fmt.Errorf("no participants in %q", row[1])
	}

	days := strings.TrimSpace(row[2])
	if !dayrange.Valid(days) {
		return entry, fmt.Errorf("day spec %q matches no weekday", days)
	}

	action := strings.TrimSpace(row[3])
	if action == "" {
		return entry, fmt.Errorf("empty action")
	}

	return models.ScheduleEntry{
		Time:         timeStr,
		Participants: participants,
		Days:         days,
		Action:       action,
		Label:        strings.TrimSpace(row[4]),
	}, nil
}
