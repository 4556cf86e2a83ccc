// Package refs locates values bound to named parameters elsewhere in a
// document, for criteria that are defined relative to another measurement.
package refs

// #region imports
import (
	"regexp"
	"strings"
)

// #endregion

// #region resolve

// Resolve scans strictly backward from fromIdx-1 for the first line binding
// param to a value ("PARAM = VALUE", key match case-insensitive). ok=false
// means the parameter is never bound before fromIdx; callers must treat that
// as "cannot tell", not as a failed measurement.
func Resolve(lines []string, fromIdx int, param string) (string, bool) {
	if param == "" {
		return "", false
	}
	re := bindingRe(param)
	if fromIdx > len(lines) {
		fromIdx = len(lines)
	}
	for i := fromIdx - 1; i >= 0; i-- {
		if m := re.FindStringSubmatch(strings.TrimSpace(lines[i])); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}

// bindingRe matches "param = value", anchored to the key followed by a
// separator, capturing the first token of the value.
func bindingRe(param string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(param) + `\s*=\s*(\S+)`)
}

// #endregion
