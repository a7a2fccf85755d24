package storage

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/frankb2024/Bad-kids-sub000/internal/logger"
)

// ReadCSV reads every row of a CSV file. A missing file is not an error; it
// yields no rows, matching the treat-absent-as-empty policy for optional data
// files. Any syntactically bad row fails the whole read; use ReadCSVLenient
// for hand-edited files.
func ReadCSV(path string) ([][]string, error) {
	return readCSV(path, false)
}

// ReadCSVLenient reads a CSV file like ReadCSV but skips rows the parser
// rejects (stray quotes and the like) with a warning instead of failing the
// read. Hand-edited files go through here so one malformed line never takes
// down the load.
func ReadCSVLenient(path string) ([][]string, error) {
	return readCSV(path, true)
}

func readCSV(path string, lenient bool) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // row length is validated per-row by the caller
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		var parseErr *csv.ParseError
		if lenient && errors.As(err, &parseErr) {
			logger.Warn("skipping unparsable csv row", "path", path, "line", parseErr.Line, "error", parseErr.Err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		rows = append(rows, row)
	}
}

// WriteCSV atomically replaces the file at path with the given rows.
func WriteCSV(path string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	return AtomicWriteFile(path, buf.Bytes())
}

// AppendCSVRow appends a single row to the file at path, creating it if
// needed. Appends are O_APPEND single writes, so a crash mid-append can at
// worst truncate the final row, never corrupt earlier ones.
func AppendCSVRow(path string, row []string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open %s for append: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(row); err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return f.Sync()
}
