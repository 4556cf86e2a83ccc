package report

// #region imports
import "time"

// #endregion

// #region run

// Run is one batch invocation.
type Run struct {
	RunID      string
	Root       string
	StartedAt  time.Time
	FinishedAt *time.Time
	Totals     RunTotals
}

// RunTotals aggregates counters across every file of a run.
type RunTotals struct {
	FilesChecked   int
	FilesProcessed int
	Total          int
	Passed         int
	Failed         int
	Unchanged      int
}

// #endregion

// #region resolution

// Resolution is one recorded marker outcome.
type Resolution struct {
	File         string
	Line         int
	Verdict      string
	CriteriaKind string
	CriteriaText string
	Measured     string
}

// #endregion
