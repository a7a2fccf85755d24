// Package tasklog appends one record per fired task to a flat CSV file.
package tasklog

import (
	"fmt"
	"time"

	"github.com/frankb2024/Bad-kids-sub000/internal/constants"
	"github.com/frankb2024/Bad-kids-sub000/internal/storage"
)

// Record is one fired-task log row.
type Record struct {
	Date      string // YYYY-MM-DD
	Time      string // HH:MM:SS, when the fire actually happened
	Scheduled string // HH:MM, the scheduled instant
	Days      string // the entry's day-range spec
	Person    string
	Action    string
}

// Log is an append-only record of fired tasks.
type Log struct {
	path string
}

func New(path string) *Log {
	return &Log{path: path}
}

// Append writes one record. Each append is a single O_APPEND write, so a
// crash mid-append never corrupts earlier records.
func (l *Log) Append(rec Record) error {
	row := []string{rec.Date, rec.Time, rec.Scheduled, rec.Days, rec.Person, rec.Action}
	if err := storage.AppendCSVRow(l.path, row); err != nil {
		return fmt.Errorf("append task log: %w", err)
	}
	return nil
}

// Fired convenience-builds and appends a record for a task fired now.
func (l *Log) Fired(now time.Time, scheduled, days, person, action string) error {
	return l.Append(Record{
		Date:      now.Format(constants.DateFormat),
		Time:      now.Format("15:04:05"),
		Scheduled: scheduled,
		Days:      days,
		Person:    person,
		Action:    action,
	})
}

// Tail returns up to n of the most recent records. Short or unparsable rows
// are skipped; a missing log file yields no records.
func (l *Log) Tail(n int) ([]Record, error) {
	rows, err := storage.ReadCSVLenient(l.path)
	if err != nil {
		return nil, fmt.Errorf("read task log: %w", err)
	}

	var records []Record
	for _, row := range rows {
		if len(row) < 6 {
			continue
		}
		records = append(records, Record{
			Date:      row[0],
			Time:      row[1],
			Scheduled: row[2],
			Days:      row[3],
			Person:    row[4],
			Action:    row[5],
		})
	}
	if n > 0 && len(records) > n {
		records = records[len(records)-n:]
	}
	return records, nil
}
