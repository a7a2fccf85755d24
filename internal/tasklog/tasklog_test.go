package tasklog

import (
	"path/filepath"
	"testing"
	"time"
)

func TestAppendAndTail(t *testing.T) {
	log := New(filepath.Join(t.TempDir(), "task_log.csv"))

	now := time.Date(2023, 1, 4, 20, 0, 5, 0, time.UTC)
	for i, person := range []string{"Frank", "Alice", "Tom"} {
		if err := log.Fired(now.AddDate(0, 0, i), "20:00", "Monday-Friday", person, "shower"); err != nil {
			t.Fatalf("Fired failed: %v", err)
		}
	}

	records, err := log.Tail(2)
	if err != nil {
		t.Fatalf("Tail failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Tail(2) returned %d records", len(records))
	}
	if records[0].Person != "Alice" || records[1].Person != "Tom" {
		t.Errorf("unexpected tail order: %+v", records)
	}
	last := records[1]
	if last.Date != "2023-01-06" || last.Scheduled != "20:00" || last.Action != "shower" {
		t.Errorf("unexpected last record: %+v", last)
	}
}

func TestTail_MissingFile(t *testing.T) {
	log := New(filepath.Join(t.TempDir(), "absent.csv"))
	records, err := log.Tail(10)
	if err != nil {
		t.Fatalf("Tail of missing file should succeed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}
