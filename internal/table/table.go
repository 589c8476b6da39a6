// Package table reads and writes the comma-separated tables exchanged between
// the pipeline and the analytics layer. A Frame keeps the raw string cells
// and hands out typed values per row; the first conversion failure of a row
// is remembered so callers can check it once.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the on-disk representation of calendar dates.
const DateLayout = "2006-01-02"

var dateLayouts = []string{DateLayout, "2006-01-02 15:04:05", time.RFC3339}

// ErrMissingColumn is returned when a required header is absent.
var ErrMissingColumn = errors.New("missing column")

// Frame is a parsed table: a header and its records.
type Frame struct {
	Header  []string
	index   map[string]int
	records [][]string
}

// Read opens path and parses it as a table with a header row.
func Read(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	fr, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return fr, nil
}

// Parse reads a header row followed by data records.
func Parse(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		header[i] = h
		index[h] = i
	}
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return &Frame{Header: header, index: index, records: records}, nil
}

// Len returns the number of data records.
func (f *Frame) Len() int { return len(f.records) }

// Has reports whether col is part of the header.
func (f *Frame) Has(col string) bool {
	_, ok := f.index[col]
	return ok
}

// Require fails with ErrMissingColumn naming the first absent column.
func (f *Frame) Require(cols ...string) error {
	for _, c := range cols {
		if !f.Has(c) {
			return fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}
	return nil
}

// Resolve returns the first of canonical and aliases present in the header.
func (f *Frame) Resolve(canonical string, aliases ...string) (string, error) {
	if f.Has(canonical) {
		return canonical, nil
	}
	for _, a := range aliases {
		if f.Has(a) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrMissingColumn, canonical)
}

// Scan calls fn for each record in order. It stops at the first error
// returned by fn or recorded on the row.
func (f *Frame) Scan(fn func(r *Row) error) error {
	for i, rec := range f.records {
		row := &Row{frame: f, line: i + 2, values: rec}
		if err := fn(row); err != nil {
			return err
		}
		if row.err != nil {
			return row.err
		}
	}
	return nil
}

// Row is a single record being scanned.
type Row struct {
	frame  *Frame
	line   int
	values []string
	err    error
}

// Err returns the first conversion error of the row.
func (r *Row) Err() error { return r.err }

func (r *Row) fail(col string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("line %d, column %s: %w", r.line, col, err)
	}
}

func (r *Row) Str(col string) string {
	i, ok := r.frame.index[col]
	if !ok {
		r.fail(col, ErrMissingColumn)
		return ""
	}
	if i >= len(r.values) {
		return ""
	}
	return strings.TrimSpace(r.values[i])
}

func (r *Row) Float(col string) float64 {
	s := r.Str(col)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.fail(col, err)
		return 0
	}
	return v
}

// Int accepts integral floats such as "12.0" as written by some tools.
func (r *Row) Int(col string) int {
	s := r.Str(col)
	if s == "" {
		return 0
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		r.fail(col, fmt.Errorf("invalid integer %q", s))
		return 0
	}
	return int(f)
}

func (r *Row) Date(col string) time.Time {
	s := r.Str(col)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
	}
	r.fail(col, fmt.Errorf("invalid date %q", s))
	return time.Time{}
}

func (r *Row) Bool(col string) bool {
	s := r.Str(col)
	if s == "" {
		return false
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		r.fail(col, err)
		return false
	}
	return v
}

// Write creates (or truncates) path and encodes the table into it.
func Write(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, header, rows); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// Encode writes header and rows as CSV.
func Encode(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func FormatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
func FormatInt(v int) string       { return strconv.Itoa(v) }
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatBool writes True/False, the spelling the raw data files use.
func FormatBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
