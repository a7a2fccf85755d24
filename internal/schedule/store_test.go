package schedule

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSchedule(t *testing.T, content string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write schedule: %v", err)
	}
	return NewStore(path)
}

func TestLoad_ParsesEntries(t *testing.T) {
	s := writeSchedule(t, "20:00,Frank:Alice:Tom,Monday-Friday,shower,Shower\n07:15,Alice,*,feed the dog,Dog\n")
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	entries := s.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	shower := entries[0]
	if shower.Time != "20:00" || shower.Action != "shower" || shower.Label != "Shower" {
		t.Errorf("unexpected first entry: %+v", shower)
	}
	if len(shower.Participants) != 3 || shower.Participants[0] != "Frank" {
		t.Errorf("unexpected participants: %v", shower.Participants)
	}
	if !shower.Rotating() {
		t.Error("multi-person entry should be rotating")
	}
	if entries[1].Rotating() {
		t.Error("single-person entry should not be rotating")
	}
}

func TestLoad_SkipsMalformedRows(t *testing.T) {
	s := writeSchedule(t,
		"25:99,Frank,*,impossible time,Bad\n"+
			"20:00,,Monday,empty people,Bad\n"+
			"20:00,Frank,Blursday,unknown day,Bad\n"+
			"19:00,Tom,Saturday,take out the trash,Trash\n")
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(s.Entries()) != 1 {
		t.Fatalf("expected 1 surviving entry, got %d", len(s.Entries()))
	}
	if s.Entries()[0].Action != "take out the trash" {
		t.Errorf("wrong surviving entry: %+v", s.Entries()[0])
	}
}

func TestLoad_SurvivesUnparsableRow(t *testing.T) {
	// A stray quote is a CSV syntax error, not just a bad field value; it
	// must cost only its own row
	s := writeSchedule(t,
		"07:15,Alice,*,feed the dog,Dog\n"+
			"20:00,Fra\"nk,Monday-Friday,shower,Shower\n"+
			"19:00,Tom,Saturday,take out the trash,Trash\n")
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	entries := s.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 surviving entries, got %d", len(entries))
	}
	if entries[0].Action != "feed the dog" || entries[1].Action != "take out the trash" {
		t.Errorf("wrong surviving entries: %+v", entries)
	}
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "absent.csv"))
	if err := s.Load(); err != nil {
		t.Fatalf("Load of missing file should succeed, got %v", err)
	}
	if len(s.Entries()) != 0 {
		t.Errorf("expected no entries, got %d", len(s.Entries()))
	}
}

func TestModified(t *testing.T) {
	s := writeSchedule(t, "20:00,Frank,*,shower,Shower\n")
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Modified() {
		t.Error("freshly loaded schedule should not report modified")
	}

	// Backdate then touch so the mtime change is unambiguous
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(s.Path(), past, past); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}
	if !s.Modified() {
		t.Error("expected mtime change to be detected")
	}

	if err := s.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if s.Modified() {
		t.Error("reload should clear the modified flag")
	}
}

func TestWriteSample(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "schedule.csv"))
	if err := s.WriteSample(); err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}
	if !s.Exists() {
		t.Fatal("sample file should exist")
	}
	if len(s.Entries()) == 0 {
		t.Fatal("sample schedule should load at least one entry")
	}

	rotating := 0
	for _, e := range s.Entries() {
		if e.Rotating() {
			rotating++
		}
	}
	if rotating == 0 {
		t.Error("sample schedule should include a rotating entry")
	}
}
