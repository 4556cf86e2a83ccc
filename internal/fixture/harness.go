package fixture

import (
	"fmt"

	"github.com/danielpatrickdp/testlog-resolver/internal/scan"
)

// #region types

// ReplayResult captures the outcome of replaying one fixture.
type ReplayResult struct {
	Output     []string
	Stats      scan.Stats
	Mismatches []string
}

// Passed reports whether the replay matched the expectation exactly.
func (r ReplayResult) Passed() bool {
	return len(r.Mismatches) == 0
}

// #endregion types

// #region replay

// Replay runs the fixture's document through a scanner built from its
// config and compares the result against the expectation. Operates
// entirely in-memory.
func Replay(f *Fixture) ReplayResult {
	cfg := f.Config.ToScanConfig()
	scanner := scan.NewScanner(cfg)

	out, stats := scanner.ScanDocument(f.Document)
	result := ReplayResult{Output: out, Stats: stats}

	if len(out) != len(f.Expected.Document) {
		result.Mismatches = append(result.Mismatches,
			fmt.Sprintf("line count: got %d, want %d", len(out), len(f.Expected.Document)))
	} else {
		for i, line := range out {
			if line != f.Expected.Document[i] {
				result.Mismatches = append(result.Mismatches,
					fmt.Sprintf("line %d: got %q, want %q", i+1, line, f.Expected.Document[i]))
			}
		}
	}

	if stats.Passed != f.Expected.Passed {
		result.Mismatches = append(result.Mismatches,
			fmt.Sprintf("passed: got %d, want %d", stats.Passed, f.Expected.Passed))
	}
	if stats.Failed != f.Expected.Failed {
		result.Mismatches = append(result.Mismatches,
			fmt.Sprintf("failed: got %d, want %d", stats.Failed, f.Expected.Failed))
	}
	if stats.Unchanged != f.Expected.Unchanged {
		result.Mismatches = append(result.Mismatches,
			fmt.Sprintf("unchanged: got %d, want %d", stats.Unchanged, f.Expected.Unchanged))
	}

	return result
}

// Capture builds a fixture from a document by recording what the scanner
// currently produces for it. The caller reviews the result before freezing
// it as a regression case.
func Capture(description string, document []string, cfg FixtureConfig) *Fixture {
	scanner := scan.NewScanner(cfg.ToScanConfig())
	out, stats := scanner.ScanDocument(document)

	return &Fixture{
		Description: description,
		Config:      cfg,
		Document:    document,
		Expected: FixtureExpected{
			Document:    out,
			Passed:      stats.Passed,
			Failed:      stats.Failed,
			Unchanged:   stats.Unchanged,
			FailedLines: stats.FailedLines,
		},
	}
}

// #endregion replay
