package replisome

import (
	"fmt"
	"slices"
	"strings"
)

// workRow is one tagged category row during harmonization. maxFrac is the
// largest fraction the row's status reaches in any single run; it drives
// both rare-failure grouping and the final display ordering.
type workRow struct {
	run      string
	status   string
	number   int
	fraction float64
	failed   bool
	maxFrac  float64
}

// ZMWStats harmonizes the per-run category tables into one cross-run table.
//
// Rare failure categories, those whose status contains FailedMarker and
// whose maximum fraction across all runs stays below opts.MinFailFrac, are
// absorbed, per run, into a single GroupedFailureStatus row. The decision is
// made per status, not per row, so a category that clears the threshold in
// any one run is kept in every run and the harmonized category set stays
// identical across runs. With opts.GroupSuccess, each run's success
// categories are likewise collapsed into one GroupedSuccessStatus row.
//
// Row ordering is identical for every run: non-failed statuses first, then
// within each partition by descending maximum fraction. Run ordering
// preserves set input order.
func (s *SummarySet) ZMWStats(opts AggregateOptions) ([]RunCategoryRow, error) {
	for _, summary := range s.Summaries {
		if !summary.HasZMWStats() {
			return nil, fmt.Errorf("%w: run %q has no yield report", ErrMissingZMWStats, summary.Name)
		}
	}

	var rows []workRow

	for _, summary := range s.Summaries {
		for _, row := range summary.ZMWStats {
			rows = append(rows, workRow{
				run:      summary.Name,
				status:   row.Status,
				number:   row.Number,
				fraction: row.Fraction,
				failed:   strings.Contains(row.Status, FailedMarker),
			})
		}
	}

	maxFrac := make(map[string]float64)
	for _, row := range rows {
		maxFrac[row.status] = max(maxFrac[row.status], row.fraction)
	}

	for i := range rows {
		rows[i].maxFrac = maxFrac[rows[i].status]
	}

	rows = groupRareFailures(rows, opts.MinFailFrac)

	if opts.GroupSuccess {
		rows = groupSuccesses(rows)
	}

	return s.orderRows(rows), nil
}

// groupRareFailures absorbs, per run, every rare-failure row into one
// synthetic GroupedFailureStatus row. Numbers and fractions are summed; the
// synthetic category's maximum fraction is recomputed over all runs.
func groupRareFailures(rows []workRow, minFailFrac float64) []workRow {
	kept := rows[:0]
	absorbed := make(map[string]*workRow)

	var order []string

	for _, row := range rows {
		if !row.failed || row.maxFrac >= minFailFrac {
			kept = append(kept, row)

			continue
		}

		other, ok := absorbed[row.run]
		if !ok {
			other = &workRow{run: row.run, status: GroupedFailureStatus, failed: true}
			absorbed[row.run] = other

			order = append(order, row.run)
		}

		other.number += row.number
		other.fraction += row.fraction
	}

	if len(absorbed) == 0 {
		return kept
	}

	groupedMax := 0.0
	for _, other := range absorbed {
		groupedMax = max(groupedMax, other.fraction)
	}

	for _, run := range order {
		other := absorbed[run]
		other.maxFrac = groupedMax
		kept = append(kept, *other)
	}

	return kept
}

// groupSuccesses collapses, per run, all success rows into one synthetic
// GroupedSuccessStatus row carrying the summed number and fraction.
func groupSuccesses(rows []workRow) []workRow {
	kept := rows[:0]
	grouped := make(map[string]*workRow)

	var order []string

	for _, row := range rows {
		if !strings.HasPrefix(row.status, SuccessPrefix) {
			kept = append(kept, row)

			continue
		}

		success, ok := grouped[row.run]
		if !ok {
			success = &workRow{run: row.run, status: GroupedSuccessStatus}
			grouped[row.run] = success

			order = append(order, row.run)
		}

		success.number += row.number
		success.fraction += row.fraction
		success.maxFrac = max(success.maxFrac, row.maxFrac)
	}

	for _, run := range order {
		kept = append(kept, *grouped[run])
	}

	return kept
}

// orderRows applies the shared status ordering to every run and lays runs
// out in set input order, so the same status occupies the same relative
// position in every run.
func (s *SummarySet) orderRows(rows []workRow) []RunCategoryRow {
	type statusRank struct {
		failed  bool
		maxFrac float64
	}

	ranks := make(map[string]statusRank)

	var statuses []string

	for _, row := range rows {
		rank, ok := ranks[row.status]
		if !ok {
			statuses = append(statuses, row.status)
		}

		ranks[row.status] = statusRank{
			failed:  rank.failed || row.failed,
			maxFrac: max(rank.maxFrac, row.maxFrac),
		}
	}

	slices.SortStableFunc(statuses, func(a, b string) int {
		rankA, rankB := ranks[a], ranks[b]

		if rankA.failed != rankB.failed {
			if !rankA.failed {
				return -1
			}

			return 1
		}

		switch {
		case rankA.maxFrac > rankB.maxFrac:
			return -1
		case rankA.maxFrac < rankB.maxFrac:
			return 1
		default:
			return 0
		}
	})

	byRun := make(map[string]map[string]workRow)
	for _, row := range rows {
		if byRun[row.run] == nil {
			byRun[row.run] = make(map[string]workRow)
		}

		byRun[row.run][row.status] = row
	}

	var out []RunCategoryRow

	for _, summary := range s.Summaries {
		for _, status := range statuses {
			row, ok := byRun[summary.Name][status]
			if !ok {
				continue
			}

			out = append(out, RunCategoryRow{
				Run:      row.run,
				Status:   row.status,
				Number:   row.number,
				Fraction: row.fraction,
			})
		}
	}

	return out
}
