// Package casefile stores the docket as a flat CSV dataset with the header
// CaseNo,Offense,Vulnerable,AgeofCase,BailMatter,UnderTrial.
package casefile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	intake "github.com/okian/docket/internal/domain/intake"
)

// File is a CSV-backed case source. Rows are appended, never rewritten.
type File struct {
	mu   sync.Mutex
	path string
}

// New returns a case source over the CSV file at path. The file is created
// with a header on the first append if it does not exist.
func New(path string) *File {
	return &File{path: path}
}

// Path returns the dataset path.
func (f *File) Path() string { return f.path }

// Load reads every row. Columns are matched by header name, so extra
// columns and any column order are accepted. A missing file is an empty docket.
func (f *File) Load(ctx context.Context) ([]intake.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fh, err := os.Open(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer fh.Close()

	r := csv.NewReader(fh)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading dataset header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, field := range intake.Fields {
		if _, ok := cols[field]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, field)
		}
	}

	var out []intake.Record
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading dataset line %d: %w", line, err)
		}
		if isBlank(row) {
			continue
		}
		rec := make(intake.Record, len(intake.Fields))
		for _, field := range intake.Fields {
			if i := cols[field]; i < len(row) {
				rec[field] = row[i]
			} else {
				rec[field] = ""
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// Append writes rec as a new row, creating the file and header if needed.
func (f *File) Append(ctx context.Context, rec intake.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating dataset directory: %w", err)
		}
	}

	fh, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("opening dataset for append: %w", err)
	}
	defer fh.Close()

	info, err := fh.Stat()
	if err != nil {
		return fmt.Errorf("stat dataset: %w", err)
	}

	if info.Size() > 0 {
		// A hand-edited dataset may lack the final newline.
		last := make([]byte, 1)
		if _, err := fh.ReadAt(last, info.Size()-1); err != nil {
			return fmt.Errorf("reading dataset tail: %w", err)
		}
		if last[0] != '\n' {
			if _, err := fh.Write([]byte{'\n'}); err != nil {
				return fmt.Errorf("terminating last row: %w", err)
			}
		}
	}

	w := csv.NewWriter(fh)
	if info.Size() == 0 {
		if err := w.Write(intake.Fields); err != nil {
			return fmt.Errorf("writing dataset header: %w", err)
		}
	}
	if err := w.Write(rec.Values()); err != nil {
		return fmt.Errorf("writing case %s: %w", rec.Get(intake.FieldCaseNo), err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing dataset: %w", err)
	}
	return nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
