package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Writer streams output rows to a file, flushing after every batch so
// completed batches are on disk even if the run aborts later.
type Writer struct {
	f      *os.File
	w      *csv.Writer
	closed bool
}

// Create truncates or creates path and writes the output header.
func Create(path string, delimiter rune) (*Writer, error) {
	if delimiter == 0 {
		delimiter = ','
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output: %w", err)
	}

	w := csv.NewWriter(f)
	w.Comma = delimiter

	out := &Writer{f: f, w: w}
	if err := out.write(OutputHeader); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	return out, nil
}

// Write appends rows and flushes them.
func (w *Writer) Write(rows []OutputRow) error {
	for _, row := range rows {
		if err := w.write(row.Record()); err != nil {
			return err
		}
	}
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

func (w *Writer) write(record []string) error {
	if err := w.w.Write(record); err != nil {
		return fmt.Errorf("failed to write output row: %w", err)
	}
	return nil
}

// Close flushes pending data and releases the file. Later calls are no-ops.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.w.Flush()
	flushErr := w.w.Error()
	closeErr := w.f.Close()
	if flushErr != nil {
		return fmt.Errorf("failed to flush output: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close output: %w", closeErr)
	}
	return nil
}
