package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicWriteFile_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.csv")

	if err := AtomicWriteFile(path, []byte("version one\n")); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("version two\n")); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(content) != "version two\n" {
		t.Errorf("content = %q, want %q", content, "version two\n")
	}

	// No temp files should remain after a successful write
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the destination file, found %d entries", len(entries))
	}
}

func TestReadCSV_MissingFileIsEmpty(t *testing.T) {
	rows, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	if err != nil {
		t.Fatalf("expected missing file to read as empty, got %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestReadCSVLenient_SkipsUnparsableRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edited.csv")
	raw := "07:15,Alice,*,feed the dog,Dog\n" +
		"20:00,Fra\"nk,Monday-Friday,shower,Shower\n" +
		"19:00,Tom,Saturday,take out the trash,Trash\n"
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := ReadCSV(path); err == nil {
		t.Error("expected strict read to fail on the stray quote")
	}

	rows, err := ReadCSVLenient(path)
	if err != nil {
		t.Fatalf("ReadCSVLenient failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][1] != "Alice" || rows[1][1] != "Tom" {
		t.Errorf("wrong rows survived: %v", rows)
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.csv")
	rows := [][]string{
		{"20:00", "Frank:Alice:Tom", "Monday-Friday", "shower", "Shower"},
		{"07:15", "Alice", "*", "feed the dog", "Dog"},
	}
	if err := WriteCSV(path, rows); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("row count = %d, want %d", len(got), len(rows))
	}
	for i := range rows {
		for j := range rows[i] {
			if got[i][j] != rows[i][j] {
				t.Errorf("row %d field %d = %q, want %q", i, j, got[i][j], rows[i][j])
			}
		}
	}
}

func TestAppendCSVRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	if err := AppendCSVRow(path, []string{"2023-01-04", "20:00", "shower"}); err != nil {
		t.Fatalf("first append failed: %v", err)
	}
	if err := AppendCSVRow(path, []string{"2023-01-05", "20:00", "shower"}); err != nil {
		t.Fatalf("second append failed: %v", err)
	}

	rows, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1][0] != "2023-01-05" {
		t.Errorf("second row date = %q, want 2023-01-05", rows[1][0])
	}
}
