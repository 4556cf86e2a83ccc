package eval

// #region imports
import "github.com/danielpatrickdp/testlog-resolver/internal/extract"

// #endregion

// #region verdict

// Verdict is the outcome of evaluating a measured value against a criteria.
type Verdict string

const (
	VerdictPass         Verdict = "pass"
	VerdictFail         Verdict = "fail"
	VerdictInconclusive Verdict = "inconclusive"
)

// #endregion

// #region config

// Config selects between the two numeric-extraction behaviors the log
// corpus has seen. Strict parsing fails values like "27.5 Hz" outright;
// unit-aware parsing reads the leading number and ignores the unit text.
type Config struct {
	UnitAwareNumbers bool
}

// DefaultConfig enables unit-aware numeric extraction.
func DefaultConfig() Config {
	return Config{UnitAwareNumbers: true}
}

// #endregion

// #region history

// History tracks the last recorded value per parameter key within a single
// document scan. It must be discarded between documents.
type History struct {
	prev map[string]histValue
}

type histValue struct {
	num   float64
	isNum bool
	str   string
}

// NewHistory returns an empty per-document history.
func NewHistory() *History {
	return &History{prev: make(map[string]histValue)}
}

// Record stores the value under key, numeric if a leading number can be
// extracted, raw string otherwise. Later records overwrite earlier ones.
func (h *History) Record(key, raw string) {
	if n, ok := extract.Numeric(raw); ok {
		h.prev[key] = histValue{num: n, isNum: true}
		return
	}
	h.prev[key] = histValue{str: raw}
}

func (h *History) previous(key string) (histValue, bool) {
	v, ok := h.prev[key]
	return v, ok
}

// #endregion
