// Package replisome parses and summarizes the output of a circular consensus
// sequencing (ccs) basecaller: per-read statistics from quality-encoded FASTQ
// files, normalized yield-report tables, and cross-run aggregation of both.
package replisome

import (
	"fmt"
	"strings"

	"github.com/farcloser/replisome/internal/fastq"
	"github.com/farcloser/replisome/internal/report"
	"github.com/farcloser/replisome/internal/types"
)

// Summary holds the statistics of a single ccs run. It is immutable after
// construction.
type Summary struct {
	// Name identifies the run.
	Name string

	// FastqFile is the consensus-read file the statistics were computed
	// from.
	FastqFile string

	// ReportFile is the yield report, or empty when none was supplied.
	ReportFile string

	// Reads lists per-read statistics in file order.
	Reads []types.ReadStats

	// Passes lists per-read pass counts in file order, or nil when the
	// pass tag was missing from any read (pass data is all-or-nothing).
	Passes []int

	// ZMWStats is the normalized yield-report table, or nil when no
	// report was supplied.
	ZMWStats []types.CategoryRow
}

// NewSummary builds the summary of one ccs run from its FASTQ file and,
// when reportFile is non-empty, its yield report. When both are present the
// two artifacts claim to describe the same run, so the report-declared
// success count must equal the number of reads; a mismatch is fatal.
func NewSummary(name, fastqFile, reportFile string, opts SummaryOptions) (*Summary, error) {
	stats, err := fastq.Extract(fastqFile, opts.PassTag)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Name:      name,
		FastqFile: fastqFile,
		Reads:     stats.Reads,
		Passes:    stats.Passes,
	}

	if reportFile == "" {
		return summary, nil
	}

	rows, err := report.Parse(reportFile)
	if err != nil {
		return nil, err
	}

	declared := successCount(rows)
	if declared != len(summary.Reads) {
		return nil, fmt.Errorf("%w: %q has %d, %q declares %d",
			ErrInconsistentCounts, fastqFile, len(summary.Reads), reportFile, declared)
	}

	summary.ReportFile = reportFile
	summary.ZMWStats = rows

	return summary, nil
}

// HasPasses reports whether every read in the run declared a pass count.
func (s *Summary) HasPasses() bool {
	return s.Passes != nil
}

// HasZMWStats reports whether the run has a parsed yield report.
func (s *Summary) HasZMWStats() bool {
	return s.ZMWStats != nil
}

// successCount sums the numbers of all categories whose status begins with
// SuccessPrefix.
func successCount(rows []types.CategoryRow) int {
	total := 0

	for _, row := range rows {
		if strings.HasPrefix(row.Status, SuccessPrefix) {
			total += row.Number
		}
	}

	return total
}
