package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/testlog-resolver/internal/report"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to the resolution report database")
	last := flag.Int("last", 20, "show N most recent runs")
	run := flag.String("run", "", "show every resolution recorded for one run")
	verdict := flag.String("verdict", "", "filter resolutions to one verdict (pass/fail)")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: report-inspect --db path/to/runs.db [--last N] [--run id] [--verdict v] [--json]")
		os.Exit(2)
	}

	store, err := report.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *run != "" {
		if err := runDetailMode(store, *run, *verdict, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if err := runListMode(store, *last, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	RunID      string `json:"run_id"`
	Root       string `json:"root"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at,omitempty"`
	Files      int    `json:"files_processed"`
	Passed     int    `json:"passed"`
	Failed     int    `json:"failed"`
	Unchanged  int    `json:"unchanged"`
}

func runListMode(store *report.Store, last int, jsonOut bool) error {
	runs, err := store.ListRuns(last)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stderr, "no runs found")
		return nil
	}

	rows := make([]listRow, len(runs))
	for i, r := range runs {
		lr := listRow{
			RunID:     r.RunID,
			Root:      r.Root,
			StartedAt: r.StartedAt.Format("2006-01-02T15:04:05Z"),
			Files:     r.Totals.FilesProcessed,
			Passed:    r.Totals.Passed,
			Failed:    r.Totals.Failed,
			Unchanged: r.Totals.Unchanged,
		}
		if r.FinishedAt != nil {
			lr.FinishedAt = r.FinishedAt.Format("2006-01-02T15:04:05Z")
		}
		rows[i] = lr
	}

	if jsonOut {
		return printJSON(rows)
	}
	return printListTable(rows)
}

func printListTable(rows []listRow) error {
	fmt.Printf("%-10s  %5s  %6s  %6s  %9s  %-20s  %s\n",
		"Run", "Files", "Passed", "Failed", "Unchanged", "Started", "Root")
	fmt.Printf("%-10s+-%5s+-%6s+-%6s+-%9s+-%-20s+-%s\n",
		"----------", "-----", "------", "------", "---------", "--------------------", "--------------------")

	for _, r := range rows {
		fmt.Printf("%-10s  %5d  %6d  %6d  %9d  %-20s  %s\n",
			shortID(r.RunID), r.Files, r.Passed, r.Failed, r.Unchanged, r.StartedAt, r.Root)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type detailRow struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	Verdict      string `json:"verdict"`
	CriteriaKind string `json:"criteria_kind"`
	CriteriaText string `json:"criteria_text,omitempty"`
	Measured     string `json:"measured,omitempty"`
}

func runDetailMode(store *report.Store, runID, verdict string, jsonOut bool) error {
	entries, err := store.RunResolutions(runID)
	if err != nil {
		return err
	}

	rows := make([]detailRow, 0, len(entries))
	for _, e := range entries {
		if verdict != "" && e.Verdict != verdict {
			continue
		}
		rows = append(rows, detailRow{
			File:         e.File,
			Line:         e.Line,
			Verdict:      e.Verdict,
			CriteriaKind: e.CriteriaKind,
			CriteriaText: e.CriteriaText,
			Measured:     e.Measured,
		})
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "no resolutions found")
		return nil
	}

	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("%-6s  %-8s  %-20s  %-30s  %s\n",
		"Line", "Verdict", "Kind", "Criteria", "File")
	fmt.Printf("%-6s+-%-8s+-%-20s+-%-30s+-%s\n",
		"------", "--------", "--------------------", "------------------------------", "--------------------")
	for _, r := range rows {
		fmt.Printf("%-6d  %-8s  %-20s  %-30s  %s\n",
			r.Line, r.Verdict, r.CriteriaKind, truncate(r.CriteriaText, 30), r.File)
	}
	return nil
}

// #endregion detail-mode

// #region output

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

// #endregion output
