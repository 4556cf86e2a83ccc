// Package eval decides PASS, FAIL, or inconclusive for a measured value
// against a classified criteria form.
package eval

// #region imports
import (
	"strconv"
	"strings"

	"github.com/danielpatrickdp/testlog-resolver/internal/criteria"
	"github.com/danielpatrickdp/testlog-resolver/internal/extract"
	"github.com/danielpatrickdp/testlog-resolver/internal/refs"
)

// #endregion

// #region evaluator

// Evaluator applies one criteria form to one measured value. It is read-only
// over the document; history writes are the scanner's responsibility.
type Evaluator struct {
	config Config
}

// NewEvaluator creates an evaluator with the given configuration.
func NewEvaluator(config Config) *Evaluator {
	return &Evaluator{config: config}
}

// Evaluate returns the verdict for value under c. doc and pos are needed only
// for cross-references; hist only for greater-than-previous.
func (e *Evaluator) Evaluate(value string, c criteria.Criteria, doc []string, pos int, hist *History) Verdict {
	trimmed := strings.TrimSpace(value)

	// Blank measurements pass only an explicit "blank" set member. An
	// unvalidatable form stays inconclusive regardless of the value.
	if trimmed == "" {
		if c.Kind == criteria.KindUnvalidatable {
			return VerdictInconclusive
		}
		if c.Kind == criteria.KindSet && containsFold(c.Members, "blank") {
			return VerdictPass
		}
		return VerdictFail
	}

	switch c.Kind {
	case criteria.KindUnvalidatable:
		return VerdictInconclusive
	case criteria.KindExact:
		return verdict(strings.EqualFold(trimmed, strings.TrimSpace(c.Value)))
	case criteria.KindSet:
		return verdict(containsFold(c.Members, trimmed))
	case criteria.KindRange:
		return verdict(inRange(trimmed, c.Min, c.Max))
	case criteria.KindTolerance:
		return e.evalTolerance(trimmed, c)
	case criteria.KindGreaterThan:
		n, ok := e.number(trimmed)
		if !ok {
			return VerdictFail
		}
		return verdict(n > c.Threshold)
	case criteria.KindGreaterThanPrevious:
		return evalGreaterThanPrevious(trimmed, c.Param, hist)
	case criteria.KindCrossReference:
		return evalCrossReference(trimmed, c.Reference, doc, pos)
	case criteria.KindComplexRange:
		return verdict(inComplexRange(trimmed, c.Alternative))
	}
	return VerdictFail
}

func verdict(pass bool) Verdict {
	if pass {
		return VerdictPass
	}
	return VerdictFail
}

// #endregion

// #region numeric-extraction

// number applies the configured extraction strictness.
func (e *Evaluator) number(s string) (float64, bool) {
	if e.config.UnitAwareNumbers {
		return extract.Numeric(s)
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), " ", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// evalTolerance checks the inclusive band [target-tol, target+tol]. Under
// strict parsing an unparseable value is a plain FAIL; under unit-aware
// parsing a value with no leading number at all cannot be judged.
func (e *Evaluator) evalTolerance(value string, c criteria.Criteria) Verdict {
	n, ok := e.number(value)
	if !ok {
		if e.config.UnitAwareNumbers {
			return VerdictInconclusive
		}
		return VerdictFail
	}
	return verdict(c.Target-c.Tolerance <= n && n <= c.Target+c.Tolerance)
}

// #endregion

// #region greater-than-previous

func evalGreaterThanPrevious(value, param string, hist *History) Verdict {
	n, ok := extract.Numeric(value)
	if !ok {
		return VerdictInconclusive
	}
	prev, found := hist.previous(param)
	if !found {
		// First occurrence of the parameter: nothing to exceed.
		return VerdictPass
	}
	if !prev.isNum {
		return VerdictInconclusive
	}
	return verdict(n > prev.num)
}

// #endregion

// #region cross-reference

// evalCrossReference compares against the value bound to the referenced
// parameter earlier in the document. Equality is tried as hexadecimal
// integers first so "001D" matches "1d", falling back to case-insensitive
// comparison with spaces and colons stripped.
func evalCrossReference(value, reference string, doc []string, pos int) Verdict {
	refValue, ok := refs.Resolve(doc, pos, reference)
	if !ok {
		return VerdictInconclusive
	}
	a := normalizeRef(value)
	b := normalizeRef(refValue)
	av, errA := strconv.ParseInt(a, 16, 64)
	bv, errB := strconv.ParseInt(b, 16, 64)
	if errA == nil && errB == nil {
		return verdict(av == bv)
	}
	return verdict(a == b)
}

func normalizeRef(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ":", "")
	return strings.ToLower(s)
}

// #endregion

// #region range

// inRange compares in the first domain all three operands fit: decimal,
// then hexadecimal, then lexicographic.
func inRange(value, min, max string) bool {
	v, errV := strconv.ParseFloat(stripSpaces(value), 64)
	lo, errLo := strconv.ParseFloat(stripSpaces(min), 64)
	hi, errHi := strconv.ParseFloat(stripSpaces(max), 64)
	if errV == nil && errLo == nil && errHi == nil {
		return lo <= v && v <= hi
	}

	hv, errV := strconv.ParseInt(stripSpaces(value), 16, 64)
	hlo, errLo := strconv.ParseInt(stripSpaces(min), 16, 64)
	hhi, errHi := strconv.ParseInt(stripSpaces(max), 16, 64)
	if errV == nil && errLo == nil && errHi == nil {
		return hlo <= hv && hv <= hhi
	}

	return min <= value && value <= max
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}

// #endregion

// #region complex-range

const octetMax = 255

// inComplexRange validates a packed dual-octet value (4-6 characters). A
// 6-character value splits into two fixed 3-character fields; shorter values
// try every split point and the first one with both halves in [0,255] wins.
func inComplexRange(value, alternative string) bool {
	clean := strings.TrimSpace(value)
	if alternative != "" && strings.EqualFold(clean, alternative) {
		return true
	}
	if len(clean) < 4 || len(clean) > 6 {
		return false
	}

	if len(clean) == 6 {
		return octetInRange(clean[0:3]) && octetInRange(clean[3:6])
	}
	for split := 1; split < len(clean); split++ {
		if octetInRange(clean[:split]) && octetInRange(clean[split:]) {
			return true
		}
	}
	return false
}

func octetInRange(field string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(field))
	return err == nil && n >= 0 && n <= octetMax
}

// #endregion

// #region helpers

func containsFold(members []string, value string) bool {
	v := strings.TrimSpace(value)
	for _, m := range members {
		if strings.EqualFold(strings.TrimSpace(m), v) {
			return true
		}
	}
	return false
}

// #endregion
