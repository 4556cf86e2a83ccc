// Package report persists per-run provenance: which files were processed,
// and how each pending marker was resolved. The interpreter itself never
// reads this store; it exists for after-the-fact review.
package report

// #region imports
import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #endregion

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id          TEXT PRIMARY KEY,
	root            TEXT NOT NULL,
	started_at      TEXT NOT NULL,
	finished_at     TEXT,
	files_checked   INTEGER NOT NULL DEFAULT 0,
	files_processed INTEGER NOT NULL DEFAULT 0,
	total           INTEGER NOT NULL DEFAULT 0,
	passed          INTEGER NOT NULL DEFAULT 0,
	failed          INTEGER NOT NULL DEFAULT 0,
	unchanged       INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS resolutions (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id        TEXT NOT NULL,
	file          TEXT NOT NULL,
	line          INTEGER NOT NULL,
	verdict       TEXT NOT NULL,
	criteria_kind TEXT,
	criteria_text TEXT,
	measured      TEXT,
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);
`

// #endregion schema

// #region store-struct
// Store manages the run-report database in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens the report database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region begin-run
// BeginRun inserts a new run row and returns its record.
func (s *Store) BeginRun(root string) (Run, error) {
	run := Run{
		RunID:     uuid.New().String(),
		Root:      root,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, root, started_at) VALUES (?, ?, ?)`,
		run.RunID, run.Root, run.StartedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// #endregion begin-run

// #region record-resolutions
// RecordResolutions writes one row per resolved or unchanged marker of a
// single file, in one transaction.
func (s *Store) RecordResolutions(runID, file string, entries []Resolution) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, e := range entries {
		_, err := tx.Exec(
			`INSERT INTO resolutions (run_id, file, line, verdict, criteria_kind, criteria_text, measured)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, file, e.Line, e.Verdict,
			nullIfEmpty(e.CriteriaKind), nullIfEmpty(e.CriteriaText), nullIfEmpty(e.Measured),
		)
		if err != nil {
			return fmt.Errorf("insert resolution: %w", err)
		}
	}
	return tx.Commit()
}

// #endregion record-resolutions

// #region finish-run
// FinishRun stamps the end time and aggregate counters on a run.
func (s *Store) FinishRun(runID string, totals RunTotals) error {
	_, err := s.db.Exec(
		`UPDATE runs SET finished_at = ?, files_checked = ?, files_processed = ?,
		        total = ?, passed = ?, failed = ?, unchanged = ?
		 WHERE run_id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano),
		totals.FilesChecked, totals.FilesProcessed,
		totals.Total, totals.Passed, totals.Failed, totals.Unchanged,
		runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// #endregion finish-run

// #region list-runs
// ListRuns returns the most recent runs.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT run_id, root, started_at, finished_at,
		        files_checked, files_processed, total, passed, failed, unchanged
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedStr string
		var finished sql.NullString
		if err := rows.Scan(&r.RunID, &r.Root, &startedStr, &finished,
			&r.Totals.FilesChecked, &r.Totals.FilesProcessed,
			&r.Totals.Total, &r.Totals.Passed, &r.Totals.Failed, &r.Totals.Unchanged); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, startedStr)
		if finished.Valid {
			t, _ := time.Parse(time.RFC3339Nano, finished.String)
			r.FinishedAt = &t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// #endregion list-runs

// #region run-resolutions
// RunResolutions returns every recorded marker outcome of one run, in file
// and line order.
func (s *Store) RunResolutions(runID string) ([]Resolution, error) {
	rows, err := s.db.Query(
		`SELECT file, line, verdict, criteria_kind, criteria_text, measured
		 FROM resolutions WHERE run_id = ? ORDER BY file, line`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list resolutions: %w", err)
	}
	defer rows.Close()

	var out []Resolution
	for rows.Next() {
		var e Resolution
		var kind, text, measured sql.NullString
		if err := rows.Scan(&e.File, &e.Line, &e.Verdict, &kind, &text, &measured); err != nil {
			return nil, fmt.Errorf("scan resolution: %w", err)
		}
		e.CriteriaKind = kind.String
		e.CriteriaText = text.String
		e.Measured = measured.String
		out = append(out, e)
	}
	return out, rows.Err()
}

// #endregion run-resolutions

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
