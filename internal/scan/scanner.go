// Package scan walks a document once, pairing each pending-result line with
// its governing criteria and rewriting the marker in place.
package scan

// #region imports
import (
	"regexp"
	"strings"

	"github.com/danielpatrickdp/testlog-resolver/internal/criteria"
	"github.com/danielpatrickdp/testlog-resolver/internal/eval"
	"github.com/danielpatrickdp/testlog-resolver/internal/extract"
	"github.com/danielpatrickdp/testlog-resolver/internal/refs"
)

// #endregion

// #region patterns

var (
	criteriaRe    = regexp.MustCompile(`(?i)S/B\s+(.+?)\s*$`)
	inlineParamRe = regexp.MustCompile(`(?i)^(.+?)\s+S/B\s*=`)
	bindingRe     = regexp.MustCompile(`[=:]\s*(.*)$`)
)

// placeholderCriteria are short stand-ins whose real criteria text lives on
// the following explanatory line.
var placeholderCriteria = map[string]bool{"X": true, "XX": true, "XXX": true}

// #endregion

// #region scanner

// Scanner resolves pending-result markers in one document at a time.
type Scanner struct {
	config    Config
	evaluator *eval.Evaluator
	lineRe    *regexp.Regexp
	rewriteRe *regexp.Regexp
}

// NewScanner creates a scanner with the given configuration.
func NewScanner(config Config) *Scanner {
	if config.CriteriaLookback <= 0 {
		config.CriteriaLookback = DefaultCriteriaLookback
	}
	if config.CrossRefLookback <= 0 {
		config.CrossRefLookback = DefaultCrossRefLookback
	}
	return &Scanner{
		config:    config,
		evaluator: eval.NewEvaluator(config.Eval),
		lineRe:    config.Marker.LineRe(),
		rewriteRe: config.Marker.RewriteRe(),
	}
}

// HasPendingMarkers reports whether any line still carries the pending
// marker. Cheap pre-check so batch drivers can skip documents with no work.
func (s *Scanner) HasPendingMarkers(lines []string) bool {
	for _, line := range lines {
		if s.lineRe.MatchString(rstrip(line)) {
			return true
		}
	}
	return false
}

// #endregion

// #region scan-document

// ScanDocument resolves every pending marker it can and returns the
// rewritten lines plus counters. Lines it cannot decide are copied verbatim.
// History is scoped to this call; concurrent scans of different documents
// are independent.
func (s *Scanner) ScanDocument(lines []string) ([]string, Stats) {
	out := make([]string, 0, len(lines))
	stats := Stats{}
	hist := eval.NewHistory()

	for i, line := range lines {
		m := s.lineRe.FindStringSubmatch(rstrip(line))
		if m == nil {
			out = append(out, line)
			continue
		}
		stats.Total++
		content := m[1]

		criteriaText, found := s.findCriteria(lines, i, content)
		if !found {
			s.leaveUnchanged(&out, &stats, line, i, Resolution{Line: i + 1, Verdict: eval.VerdictInconclusive})
			continue
		}

		form := criteria.Classify(criteriaText)
		value, ok := s.resolveValue(lines, i, line, content, form)
		if !ok {
			s.leaveUnchanged(&out, &stats, line, i, Resolution{
				Line: i + 1, Verdict: eval.VerdictInconclusive, Kind: form.Kind, CriteriaText: criteriaText,
			})
			continue
		}

		verdict := s.evaluator.Evaluate(value, form, lines, i, hist)
		res := Resolution{Line: i + 1, Verdict: verdict, Kind: form.Kind, CriteriaText: criteriaText, Value: value}
		if verdict == eval.VerdictInconclusive {
			s.leaveUnchanged(&out, &stats, line, i, res)
			continue
		}

		out = append(out, s.rewriteRe.ReplaceAllString(line, verdictWord(verdict)))
		stats.Resolutions = append(stats.Resolutions, res)
		if verdict == eval.VerdictPass {
			stats.Passed++
		} else {
			stats.Failed++
			stats.FailedLines = append(stats.FailedLines, i+1)
		}

		// Feed later greater-than-previous checks in this document.
		if key, keyOK := extract.Key(line); keyOK && value != "" {
			hist.Record(key, value)
		}
	}
	return out, stats
}

func (s *Scanner) leaveUnchanged(out *[]string, stats *Stats, line string, idx int, res Resolution) {
	*out = append(*out, line)
	stats.Unchanged++
	stats.UnchangedLines = append(stats.UnchangedLines, idx+1)
	stats.Resolutions = append(stats.Resolutions, res)
}

func verdictWord(v eval.Verdict) string {
	if v == eval.VerdictPass {
		return "PASS"
	}
	return "FAIL"
}

// #endregion

// #region find-criteria

// findCriteria locates the governing S/B text for a pending line: inline on
// the line itself, or on the nearest of the preceding lookback lines. A
// short placeholder criteria ("X") followed by an explanatory "may be" line
// is stitched together before classification.
func (s *Scanner) findCriteria(lines []string, idx int, content string) (string, bool) {
	if cm := criteriaRe.FindStringSubmatch(content); cm != nil {
		return strings.TrimSpace(cm[1]), true
	}

	stop := idx - s.config.CriteriaLookback
	if stop < 0 {
		stop = 0
	}
	for j := idx - 1; j >= stop; j-- {
		cm := criteriaRe.FindStringSubmatch(rstrip(lines[j]))
		if cm == nil {
			continue
		}
		text := strings.TrimSpace(cm[1])
		if j+1 < len(lines) {
			next := strings.TrimSpace(lines[j+1])
			if strings.Contains(strings.ToLower(next), "may be") || (placeholderCriteria[text] && next != "") {
				text = text + " " + next
			}
		}
		return text, true
	}
	return "", false
}

// #endregion

// #region resolve-value

// resolveValue finds the measured value a pending line is judged by. For an
// inline cross-reference ("PARAM S/B = REFERENCE  MARKER") the line itself
// holds no measurement, so the true parameter name is re-derived and its
// binding searched backward. Every other form reads the value off the
// pending line; a bare "PARAM  MARKER" line with no separator falls back to
// the parameter's last binding earlier in the document.
func (s *Scanner) resolveValue(lines []string, idx int, line, content string, form criteria.Criteria) (string, bool) {
	if form.Kind != criteria.KindCrossReference {
		if v, ok := extract.Value(line, s.config.Marker); ok {
			return v, true
		}
		return s.priorBinding(lines, idx, strings.TrimSpace(content))
	}

	pm := inlineParamRe.FindStringSubmatch(content)
	if pm == nil {
		return "", false
	}
	param := strings.TrimSpace(pm[1])

	stop := idx - s.config.CrossRefLookback
	if stop < 0 {
		stop = 0
	}
	for j := idx - 1; j >= stop; j-- {
		candidate := lines[j]
		if !strings.Contains(candidate, param) || strings.Contains(candidate, "S/B") {
			continue
		}
		if !strings.ContainsAny(candidate, "=:") {
			continue
		}
		if vm := bindingRe.FindStringSubmatch(strings.TrimSpace(candidate)); vm != nil {
			return strings.TrimSpace(vm[1]), true
		}
	}
	return "", false
}

// priorBinding returns the value last bound to param within the binding
// lookback window. Used when the pending line names a parameter but carries
// no measurement of its own.
func (s *Scanner) priorBinding(lines []string, idx int, param string) (string, bool) {
	if param == "" {
		return "", false
	}
	stop := idx - s.config.CrossRefLookback
	if stop < 0 {
		stop = 0
	}
	return refs.Resolve(lines[stop:idx], idx-stop, param)
}

// #endregion

// #region helpers

func rstrip(line string) string {
	return strings.TrimRight(line, " \t\r\n")
}

// #endregion
