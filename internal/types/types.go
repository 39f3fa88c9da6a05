package types

// ReadStats holds the statistics extracted from one circular consensus read.
type ReadStats struct {
	// Length is the number of bases in the read.
	Length int
	// Accuracy is the mean per-base accuracy computed from the quality
	// values, in [0, 1].
	Accuracy float64
}

// CategoryRow is one normalized row of a ccs yield report: a ZMW outcome
// category, how many ZMWs landed in it, and its share of the total.
type CategoryRow struct {
	Status   string
	Number   int
	Fraction float64
}

// Run identifies one ccs run to be summarized. ReportFile may be empty when
// no yield report is available for the run.
type Run struct {
	Name       string
	FastqFile  string
	ReportFile string
}
