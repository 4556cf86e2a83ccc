// Package batch drives the scanner over files and directories: discovery,
// skip logic, output naming, and run reporting. All I/O lives here; the
// scanner itself never touches storage.
package batch

// #region imports
import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/danielpatrickdp/testlog-resolver/internal/report"
	"github.com/danielpatrickdp/testlog-resolver/internal/scan"
	"github.com/danielpatrickdp/testlog-resolver/internal/textio"
)

// #endregion

// #region options

// DefaultSuffix is appended to the input stem when no explicit output path
// is given ("unit7.log" -> "unit7_processed.log").
const DefaultSuffix = "_processed"

// Options configures one batch run.
type Options struct {
	Recursive bool
	OutputDir string // empty: write next to each input
	Suffix    string // empty: DefaultSuffix
	Scan      scan.Config
	Logger    *zap.Logger
	Report    *report.Store // nil: no run report
}

func (o Options) suffix() string {
	if o.Suffix == "" {
		return DefaultSuffix
	}
	return o.Suffix
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// #endregion

// #region results

// FileResult is the outcome for a single input file.
type FileResult struct {
	Input   string
	Output  string
	Skipped bool // no pending markers, no output written
	Stats   scan.Stats
}

// Summary aggregates a whole run.
type Summary struct {
	FilesChecked   int
	FilesProcessed int
	FilesSkipped   int
	Total          int
	Passed         int
	Failed         int
	Unchanged      int
}

// #endregion

// #region runner

// Runner executes batch runs with a fixed configuration.
type Runner struct {
	opts    Options
	scanner *scan.Scanner
	log     *zap.Logger
}

// NewRunner creates a runner from options.
func NewRunner(opts Options) *Runner {
	return &Runner{
		opts:    opts,
		scanner: scan.NewScanner(opts.Scan),
		log:     opts.logger(),
	}
}

// Run processes a file or a directory tree rooted at path. An explicit
// output path only applies to single-file runs.
func (r *Runner) Run(path, output string) (Summary, []FileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Summary{}, nil, fmt.Errorf("stat %s: %w", path, err)
	}

	var runID string
	if r.opts.Report != nil {
		run, err := r.opts.Report.BeginRun(path)
		if err != nil {
			return Summary{}, nil, err
		}
		runID = run.RunID
	}

	var summary Summary
	var results []FileResult
	if info.IsDir() {
		summary, results, err = r.runDirectory(path, runID)
	} else {
		var res FileResult
		res, err = r.processFile(path, r.outputFor(path, path, output), runID)
		if err == nil {
			results = []FileResult{res}
			summary = summarize(results)
		}
	}
	if err != nil {
		return Summary{}, nil, err
	}

	if r.opts.Report != nil {
		if rerr := r.opts.Report.FinishRun(runID, report.RunTotals{
			FilesChecked:   summary.FilesChecked,
			FilesProcessed: summary.FilesProcessed,
			Total:          summary.Total,
			Passed:         summary.Passed,
			Failed:         summary.Failed,
			Unchanged:      summary.Unchanged,
		}); rerr != nil {
			r.log.Warn("finish run report", zap.Error(rerr))
		}
	}
	return summary, results, nil
}

// #endregion

// #region directory

func (r *Runner) runDirectory(dir, runID string) (Summary, []FileResult, error) {
	files, err := r.discover(dir)
	if err != nil {
		return Summary{}, nil, err
	}

	var results []FileResult
	for _, file := range files {
		res, err := r.processFile(file, r.outputFor(dir, file, ""), runID)
		if err != nil {
			// One unreadable file must not sink the batch.
			r.log.Warn("skipping file", zap.String("file", file), zap.Error(err))
			continue
		}
		results = append(results, res)
	}
	return summarize(results), results, nil
}

func (r *Runner) discover(dir string) ([]string, error) {
	var files []string
	if r.opts.Recursive {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && !r.isOutput(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", dir, err)
		}
		return files, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			path := filepath.Join(dir, e.Name())
			if !r.isOutput(path) {
				files = append(files, path)
			}
		}
	}
	return files, nil
}

// isOutput recognizes files this tool produced, so reruns and watch mode do
// not reprocess their own output.
func (r *Runner) isOutput(path string) bool {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.HasSuffix(stem, r.opts.suffix())
}

// #endregion

// #region process-file

func (r *Runner) processFile(input, output, runID string) (FileResult, error) {
	lines, err := textio.ReadLines(input)
	if err != nil {
		return FileResult{}, err
	}

	if !r.scanner.HasPendingMarkers(lines) {
		r.log.Debug("no pending markers", zap.String("file", input))
		return FileResult{Input: input, Skipped: true}, nil
	}

	rewritten, stats := r.scanner.ScanDocument(lines)
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return FileResult{}, fmt.Errorf("create output dir: %w", err)
	}
	if err := textio.WriteLines(output, rewritten); err != nil {
		return FileResult{}, err
	}

	r.log.Info("processed",
		zap.String("file", input),
		zap.String("output", output),
		zap.Int("total", stats.Total),
		zap.Int("passed", stats.Passed),
		zap.Int("failed", stats.Failed),
		zap.Int("unchanged", stats.Unchanged))
	if len(stats.FailedLines) > 0 {
		r.log.Info("failed lines", zap.String("file", input), zap.Ints("lines", stats.FailedLines))
	}

	if r.opts.Report != nil && runID != "" {
		entries := make([]report.Resolution, 0, len(stats.Resolutions))
		for _, res := range stats.Resolutions {
			entries = append(entries, report.Resolution{
				File:         input,
				Line:         res.Line,
				Verdict:      string(res.Verdict),
				CriteriaKind: string(res.Kind),
				CriteriaText: res.CriteriaText,
				Measured:     res.Value,
			})
		}
		if err := r.opts.Report.RecordResolutions(runID, input, entries); err != nil {
			r.log.Warn("record resolutions", zap.String("file", input), zap.Error(err))
		}
	}

	return FileResult{Input: input, Output: output, Stats: stats}, nil
}

// #endregion

// #region output-naming

// outputFor derives the output path for one input. Explicit single-file
// output wins; otherwise stem+suffix next to the input, or under OutputDir
// preserving the tree relative to baseDir.
func (r *Runner) outputFor(baseDir, input, explicit string) string {
	if explicit != "" {
		return explicit
	}
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(filepath.Base(input), ext)
	name := stem + r.opts.suffix() + ext

	if r.opts.OutputDir == "" {
		return filepath.Join(filepath.Dir(input), name)
	}
	rel, err := filepath.Rel(baseDir, filepath.Dir(input))
	if err != nil || rel == "." {
		return filepath.Join(r.opts.OutputDir, name)
	}
	return filepath.Join(r.opts.OutputDir, rel, name)
}

// #endregion

// #region summary

func summarize(results []FileResult) Summary {
	s := Summary{FilesChecked: len(results)}
	for _, res := range results {
		if res.Skipped {
			s.FilesSkipped++
			continue
		}
		s.FilesProcessed++
		s.Total += res.Stats.Total
		s.Passed += res.Stats.Passed
		s.Failed += res.Stats.Failed
		s.Unchanged += res.Stats.Unchanged
	}
	return s
}

// #endregion
