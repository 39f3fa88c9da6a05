package replisome

import "errors"

const (
	// DefaultPassTag is the FASTQ comment tag carrying the number of
	// consensus passes, as written by the ccs basecaller.
	DefaultPassTag = "np"

	// DefaultMinFailFrac is the default grouping threshold: failure
	// categories whose largest fraction across all runs stays below it are
	// collapsed into GroupedFailureStatus.
	DefaultMinFailFrac = 0.01

	// SuccessPrefix marks a category status as a success outcome.
	SuccessPrefix = "Success"

	// FailedMarker marks a category status as a failure outcome.
	FailedMarker = "Failed"

	// GroupedFailureStatus is the synthetic category absorbing rare
	// failure categories.
	GroupedFailureStatus = "Failed -- Other reason"

	// GroupedSuccessStatus is the synthetic category replacing individual
	// success categories when success grouping is enabled.
	GroupedSuccessStatus = "Success -- CCS generated"
)

var (
	// ErrDuplicateRun indicates two runs in a set share a name.
	ErrDuplicateRun = errors.New("duplicate run name")

	// ErrBadWorkers indicates a negative worker count.
	ErrBadWorkers = errors.New("worker count must not be negative")

	// ErrUnknownVariable indicates a per-read variable outside
	// {length, accuracy, passes}.
	ErrUnknownVariable = errors.New("unknown variable (valid: accuracy, length, passes)")

	// ErrMissingVariable indicates a projection was requested for a
	// variable some run does not carry.
	ErrMissingVariable = errors.New("variable not available for all runs")

	// ErrMissingZMWStats indicates ZMW aggregation was requested while
	// some run has no yield report.
	ErrMissingZMWStats = errors.New("ZMW stats not available")

	// ErrInconsistentCounts indicates the FASTQ file and the yield report
	// disagree on how many consensus reads the run produced.
	ErrInconsistentCounts = errors.New("fastq and report differ on number of CCS reads")
)

// SummaryOptions configures per-run summary construction.
type SummaryOptions struct {
	// PassTag is the FASTQ comment tag carrying the pass count. Empty
	// disables pass extraction.
	PassTag string
}

// DefaultSummaryOptions returns the standard ccs conventions.
func DefaultSummaryOptions() SummaryOptions {
	return SummaryOptions{PassTag: DefaultPassTag}
}

// SetOptions configures construction of a run-summary set.
type SetOptions struct {
	// Workers bounds the number of runs summarized concurrently.
	// 0 means one worker per CPU; the pool never exceeds the CPU count.
	// Negative is a configuration error.
	Workers int

	// PassTag is passed through to per-run summary construction.
	PassTag string
}

// DefaultSetOptions returns a full-width pool with standard ccs conventions.
func DefaultSetOptions() SetOptions {
	return SetOptions{Workers: 0, PassTag: DefaultPassTag}
}

// AggregateOptions configures cross-run category harmonization.
type AggregateOptions struct {
	// MinFailFrac is the rare-failure threshold: a failure category whose
	// maximum fraction across all runs is below it is absorbed into
	// GroupedFailureStatus.
	MinFailFrac float64

	// GroupSuccess collapses all success categories of each run into
	// GroupedSuccessStatus.
	GroupSuccess bool
}

// DefaultAggregateOptions returns the standard grouping policy.
func DefaultAggregateOptions() AggregateOptions {
	return AggregateOptions{MinFailFrac: DefaultMinFailFrac, GroupSuccess: true}
}

// StatPoint is one per-read value tagged with its run name. Run order in a
// projection follows set input order, not alphabetic order.
type StatPoint struct {
	Run   string
	Value float64
}

// RunCategoryRow is one row of the harmonized cross-run category table.
type RunCategoryRow struct {
	Run      string
	Status   string
	Number   int
	Fraction float64
}
