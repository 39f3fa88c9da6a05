package replisome

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/farcloser/replisome/internal/types"
)

// SummarySet holds the summaries of many ccs runs, in input order.
type SummarySet struct {
	Summaries []*Summary
}

// NewSummarySet summarizes every run in the list, building the per-run
// summaries over a bounded worker pool. Run names must be unique; duplicates
// are rejected before any file is opened. Results keep input order regardless
// of completion order, and a pool of one behaves exactly like sequential
// construction. When runs fail, the error of the first failing run (in input
// order) is returned after the pool has drained.
func NewSummarySet(runs []types.Run, opts SetOptions) (*SummarySet, error) {
	if opts.Workers < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadWorkers, opts.Workers)
	}

	workers := opts.Workers
	if workers == 0 || workers > runtime.NumCPU() {
		workers = runtime.NumCPU()
	}

	workers = max(workers, 1)

	seen := make(map[string]struct{}, len(runs))
	for _, run := range runs {
		if _, ok := seen[run.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateRun, run.Name)
		}

		seen[run.Name] = struct{}{}
	}

	summaries := make([]*Summary, len(runs))
	errs := make([]error, len(runs))
	sem := make(chan struct{}, workers)

	var waitGroup sync.WaitGroup

	for idx, run := range runs {
		waitGroup.Add(1)

		go func(idx int, run types.Run) {
			defer waitGroup.Done()

			sem <- struct{}{}

			defer func() { <-sem }()

			summaries[idx], errs[idx] = NewSummary(run.Name, run.FastqFile, run.ReportFile,
				SummaryOptions{PassTag: opts.PassTag})
		}(idx, run)
	}

	waitGroup.Wait()

	for idx, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("run %q: %w", runs[idx].Name, err)
		}
	}

	return &SummarySet{Summaries: summaries}, nil
}

// Variables lists the per-read variables a set can be queried for.
func Variables() []string {
	return []string{"accuracy", "length", "passes"}
}

// HasStat reports whether every run in the set carries the given variable.
// The variable name itself is validated first.
func (s *SummarySet) HasStat(variable string) (bool, error) {
	switch variable {
	case "length", "accuracy":
		return true, nil
	case "passes":
		for _, summary := range s.Summaries {
			if !summary.HasPasses() {
				return false, nil
			}
		}

		return true, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownVariable, variable)
	}
}

// Stats returns the flat (run, value) projection of a per-read variable
// across all runs, preserving run input order and read file order.
func (s *SummarySet) Stats(variable string) ([]StatPoint, error) {
	ok, err := s.HasStat(variable)
	if err != nil {
		return nil, err
	}

	if !ok {
		for _, summary := range s.Summaries {
			if !summary.HasPasses() {
				return nil, fmt.Errorf("%w: run %q has no %q data",
					ErrMissingVariable, summary.Name, variable)
			}
		}
	}

	var points []StatPoint

	for _, summary := range s.Summaries {
		switch variable {
		case "length":
			for _, read := range summary.Reads {
				points = append(points, StatPoint{Run: summary.Name, Value: float64(read.Length)})
			}
		case "accuracy":
			for _, read := range summary.Reads {
				points = append(points, StatPoint{Run: summary.Name, Value: read.Accuracy})
			}
		case "passes":
			for _, passes := range summary.Passes {
				points = append(points, StatPoint{Run: summary.Name, Value: float64(passes)})
			}
		}
	}

	return points, nil
}

// HasZMWStats reports whether every run in the set has a yield report.
func (s *SummarySet) HasZMWStats() bool {
	for _, summary := range s.Summaries {
		if !summary.HasZMWStats() {
			return false
		}
	}

	return true
}
