package reference

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const Separator = ';'

var (
	ErrMissingHeader = errors.New("reference file has no header row")
	ErrFieldCount    = errors.New("row field count does not match header")
	ErrMissingColumn = errors.New("reference file is missing a required column")
)

// Record maps header names to the raw field values of one row.
type Record map[string]string

// Load reads a semicolon-separated reference table. Rows keep file order.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference file %s: %w", path, err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

func Parse(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.Comma = Separator
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(row) != len(header) {
			return nil, fmt.Errorf("line %d: %w (got %d, want %d)", line, ErrFieldCount, len(row), len(header))
		}

		rec := make(Record, len(header))
		for i, name := range header {
			rec[name] = row[i]
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r Record) require(column string) (string, error) {
	v, ok := r[column]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingColumn, column)
	}
	return strings.TrimSpace(v), nil
}

func (r Record) requireInt(column string) (int64, error) {
	v, err := r.require(column)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("column %s: %q is not a positive integer", column, v)
	}
	return n, nil
}

func loadFrom(dir, name string) ([]Record, error) {
	return Load(filepath.Join(dir, name))
}
