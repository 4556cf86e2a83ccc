package scan

// #region imports
import (
	"github.com/danielpatrickdp/testlog-resolver/internal/criteria"
	"github.com/danielpatrickdp/testlog-resolver/internal/eval"
	"github.com/danielpatrickdp/testlog-resolver/internal/extract"
)

// #endregion

// #region lookback-windows

// Backward-scan windows tolerating layout variance in the source logs.
// Tunable through Config without touching the scan logic.
const (
	// DefaultCriteriaLookback is how many preceding lines are searched for
	// the governing S/B criteria of a pending-result line.
	DefaultCriteriaLookback = 9
	// DefaultCrossRefLookback is how many preceding lines are searched for
	// the measured binding of an inline cross-referenced parameter.
	DefaultCrossRefLookback = 20
)

// #endregion

// #region config

// Config controls one scanner instance.
type Config struct {
	Marker           extract.MarkerConfig
	CriteriaLookback int
	CrossRefLookback int
	Eval             eval.Config
}

// DefaultConfig returns the scanner configuration matching current logs.
func DefaultConfig() Config {
	return Config{
		Marker:           extract.DefaultMarkerConfig(),
		CriteriaLookback: DefaultCriteriaLookback,
		CrossRefLookback: DefaultCrossRefLookback,
		Eval:             eval.DefaultConfig(),
	}
}

// #endregion

// #region resolution

// Resolution records the outcome of a single pending-result line.
type Resolution struct {
	Line         int // 1-indexed
	Verdict      eval.Verdict
	Kind         criteria.Kind
	CriteriaText string
	Value        string
}

// #endregion

// #region stats

// Stats summarizes one document scan. Line numbers are 1-indexed.
type Stats struct {
	Total          int
	Passed         int
	Failed         int
	Unchanged      int
	FailedLines    []int
	UnchangedLines []int
	Resolutions    []Resolution
}

// #endregion
