// Package manifest loads the run manifest: a CSV file with one row per ccs
// run, naming the run and pointing at its FASTQ file and optional yield
// report.
package manifest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/farcloser/primordium/fault"
	"github.com/shenwei356/xopen"

	"github.com/farcloser/replisome/internal/types"
)

var (
	// ErrRepeatedColumn indicates the same column name was declared for
	// two different roles.
	ErrRepeatedColumn = errors.New("repeated column name")

	// ErrMissingColumn indicates a declared column is absent from the
	// manifest header.
	ErrMissingColumn = errors.New("manifest lacks column")

	errEmptyManifest = errors.New("manifest has no header row")
	errEmptyField    = errors.New("manifest field must not be empty")
)

// Columns names the manifest columns holding the run name, the FASTQ file
// and the report file. An empty Report disables report loading entirely.
type Columns struct {
	Name   string
	Fastq  string
	Report string
}

// DefaultColumns returns the conventional column names.
func DefaultColumns() Columns {
	return Columns{Name: "name", Fastq: "fastq", Report: "report"}
}

// Load reads a manifest file and returns one Run per data row, in file
// order. Column declarations are validated before the file is opened.
func Load(path string, cols Columns) ([]types.Run, error) {
	declared := []string{cols.Name, cols.Fastq}
	if cols.Report != "" {
		declared = append(declared, cols.Report)
	}

	seen := make(map[string]struct{}, len(declared))
	for _, col := range declared {
		if _, ok := seen[col]; ok {
			return nil, fmt.Errorf("%w: %q", ErrRepeatedColumn, col)
		}

		seen[col] = struct{}{}
	}

	reader, err := xopen.Ropen(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", fault.ErrReadFailure, path, err)
	}
	defer reader.Close()

	records, err := csv.NewReader(reader).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", fault.ErrReadFailure, path, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %q", errEmptyManifest, path)
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[strings.TrimSpace(name)] = i
	}

	for _, col := range declared {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %q in %q", ErrMissingColumn, col, path)
		}
	}

	runs := make([]types.Run, 0, len(records)-1)

	for _, record := range records[1:] {
		run := types.Run{
			Name:      strings.TrimSpace(record[index[cols.Name]]),
			FastqFile: strings.TrimSpace(record[index[cols.Fastq]]),
		}

		if run.Name == "" || run.FastqFile == "" {
			return nil, fmt.Errorf("%w: %q in %q", errEmptyField, record, path)
		}

		if cols.Report != "" {
			run.ReportFile = strings.TrimSpace(record[index[cols.Report]])
		}

		runs = append(runs, run)
	}

	return runs, nil
}
