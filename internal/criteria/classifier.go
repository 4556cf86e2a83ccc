// Package criteria classifies free-form should-be strings from equipment
// test logs into typed forms a later evaluator can act on.
package criteria

// #region imports
import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// #endregion

// #region patterns

var (
	referenceNameRe = regexp.MustCompile(`[A-Za-z]`)
	complexAltRe    = regexp.MustCompile(`(?i)\s+or\s+(\w+)\s*$`)
	toRangeRe       = regexp.MustCompile(`(?i)^(.+?)\s+to\s+(.+)$`)
	bareRangeRe     = regexp.MustCompile(`^\s*([+-]?\d+(?:\.\d+)?)\s*-\s*([+-]?\d+(?:\.\d+)?)\s*$`)
	greaterPrevRe   = regexp.MustCompile(`(?i)greater than previous\s+(.*)`)
	greaterThanRe   = regexp.MustCompile(`^>\s*([+-]?\d+(?:\.\d+)?)`)
	toleranceRe     = regexp.MustCompile(`^([+-]?\s*\d+(?:\.\d+)?)\s*(?:\+/-|±)\s*(\d+(?:\.\d+)?)`)
	mayBeRe         = regexp.MustCompile(`(?i)may be\s+(.+)`)
	orSplitRe       = regexp.MustCompile(`(?i)\s+or\s+`)
	subRangeRe      = regexp.MustCompile(`(\d+)\s*-+\s*(\d+)`)
	mayBeToRangeRe  = regexp.MustCompile(`^(\d+)\s+to\s+(\d+)`)
	dashSplitRe     = regexp.MustCompile(`\s*-\s*`)
)

// placeholderFragments are descriptive filler tokens inside mixed "may be"
// lists that never name a real value.
var placeholderFragments = []string{"may be", "x x", "xx ", " xx", "xxx"}

// #endregion

// #region classify

// Classify maps a raw criteria string to exactly one Criteria. The rule order
// is load-bearing: several surface forms overlap ("may be 1 to 9" must not be
// consumed by the bare range rule), so earlier rules win.
func Classify(text string) Criteria {
	c := strings.TrimSpace(text)
	lower := strings.ToLower(c)

	// 1. Leading "=" is either a cross-reference to another parameter or a
	// bare literal, depending on whether the operand looks like a name.
	if strings.HasPrefix(c, "=") {
		ref := strings.TrimSpace(c[1:])
		if referenceNameRe.MatchString(ref) || strings.Contains(ref, "/") || strings.Contains(ref, ".") {
			return Criteria{Kind: KindCrossReference, Reference: ref}
		}
		return Criteria{Kind: KindExact, Value: ref}
	}

	// 2. Packed dual-octet forms (IP/netmask style), with an optional
	// trailing "or DSABLD"-style escape literal.
	if strings.Contains(lower, "in range of") {
		alt := ""
		if m := complexAltRe.FindStringSubmatch(c); m != nil {
			alt = m[1]
		}
		return Criteria{Kind: KindComplexRange, Alternative: alt}
	}

	// 3. "X to Y" range, unless part of a "may be" clause handled below.
	if strings.Contains(lower, " to ") && !strings.Contains(lower, "may be") {
		if m := toRangeRe.FindStringSubmatch(c); m != nil {
			return Criteria{Kind: KindRange, Min: strings.TrimSpace(m[1]), Max: strings.TrimSpace(m[2])}
		}
	}

	// 4. Whole string is a numeric "N - M" range.
	if m := bareRangeRe.FindStringSubmatch(c); m != nil {
		return Criteria{Kind: KindRange, Min: m[1], Max: m[2]}
	}

	// 5. Monotonic constraint against the last value of a named parameter.
	if strings.Contains(lower, "greater than previous") {
		if m := greaterPrevRe.FindStringSubmatch(c); m != nil {
			if param := strings.TrimSpace(m[1]); param != "" {
				return Criteria{Kind: KindGreaterThanPrevious, Param: param}
			}
		}
		return Criteria{Kind: KindUnvalidatable}
	}

	// 6. "> N" strict threshold.
	if strings.HasPrefix(c, ">") {
		if m := greaterThanRe.FindStringSubmatch(c); m != nil {
			threshold, err := strconv.ParseFloat(m[1], 64)
			if err == nil {
				return Criteria{Kind: KindGreaterThan, Threshold: threshold}
			}
		}
	}

	// 7. "TARGET +/- TOL" band.
	if strings.Contains(c, "+/-") || strings.Contains(c, "±") {
		if m := toleranceRe.FindStringSubmatch(c); m != nil {
			target, errT := strconv.ParseFloat(strings.ReplaceAll(m[1], " ", ""), 64)
			tol, errD := strconv.ParseFloat(m[2], 64)
			if errT == nil && errD == nil {
				return Criteria{Kind: KindTolerance, Target: target, Tolerance: tol}
			}
		}
	}

	// 8. "May be ..." enumerations, possibly mixing sub-ranges with listed
	// values. Must run before the generic " or " rule.
	if strings.Contains(lower, "may be") {
		if m := mayBeRe.FindStringSubmatch(c); m != nil {
			if out, ok := classifyMayBe(strings.TrimSpace(m[1])); ok {
				return out
			}
		}
	}

	// 9. Plain "A or B or C" enumeration.
	if strings.Contains(lower, " or ") {
		return Criteria{Kind: KindSet, Members: splitTrim(orSplitRe.Split(c, -1))}
	}

	// 10. Anything else is an exact literal.
	return Criteria{Kind: KindExact, Value: c}
}

// #endregion

// #region may-be

// classifyMayBe handles the text following "may be". Returns ok=false when no
// sub-rule applies, letting the caller fall through to the generic rules.
func classifyMayBe(rest string) (Criteria, bool) {
	lower := strings.ToLower(rest)
	hasRange := strings.Contains(rest, " - ") || strings.Contains(lower, " to ")
	hasList := strings.Contains(rest, ",") || strings.Contains(lower, " or ")

	switch {
	case hasRange && hasList:
		// Mixed form like "1 - 9, A, B or C": expand each numeric sub-range
		// into individual members, keep listed values, drop filler tokens.
		var members []string
		for _, orPart := range orSplitRe.Split(rest, -1) {
			for _, part := range splitTrim(strings.Split(orPart, ",")) {
				if m := subRangeRe.FindStringSubmatch(part); m != nil {
					members = append(members, expandRange(m[1], m[2], part)...)
					continue
				}
				if isPlaceholder(part) {
					continue
				}
				members = append(members, part)
			}
		}
		return Criteria{Kind: KindSet, Members: members}, true

	case hasList:
		var members []string
		for _, orPart := range orSplitRe.Split(rest, -1) {
			members = append(members, splitTrim(strings.Split(orPart, ","))...)
		}
		return Criteria{Kind: KindSet, Members: members}, true

	case strings.Contains(lower, " to "):
		if m := mayBeToRangeRe.FindStringSubmatch(rest); m != nil {
			return Criteria{Kind: KindRange, Min: m[1], Max: m[2]}, true
		}

	case strings.Contains(rest, "-"):
		if parts := dashSplitRe.Split(rest, -1); len(parts) == 2 {
			return Criteria{Kind: KindRange, Min: strings.TrimSpace(parts[0]), Max: strings.TrimSpace(parts[1])}, true
		}
	}
	return Criteria{}, false
}

// expandRange enumerates an integer sub-range into individual members. The
// raw part is kept verbatim when the bounds do not parse.
func expandRange(start, end, raw string) []string {
	lo, errLo := strconv.Atoi(start)
	hi, errHi := strconv.Atoi(end)
	if errLo != nil || errHi != nil {
		return []string{raw}
	}
	var out []string
	for i := lo; i <= hi; i++ {
		out = append(out, fmt.Sprintf("%d", i))
	}
	return out
}

func isPlaceholder(part string) bool {
	lower := strings.ToLower(part)
	for _, frag := range placeholderFragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}

// #endregion

// #region helpers

// splitTrim trims each element and drops empties.
func splitTrim(parts []string) []string {
	var out []string
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// #endregion
