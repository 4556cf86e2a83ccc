// Package extract derives parameter keys and measured values from raw
// test-log lines.
package extract

// #region imports
import (
	"regexp"
	"strconv"
	"strings"
)

// #endregion

// #region marker-config

// DefaultMarker is the literal placeholder a resolved line replaces.
const DefaultMarker = "PASS/FAIL"

// MarkerConfig selects how strictly the pending-result marker is matched.
// Older logs carry the bare token; later ones decorate it with trailing
// asterisks.
type MarkerConfig struct {
	Token           string
	AllowDecoration bool
}

// DefaultMarkerConfig matches the decorated form, which subsumes the bare one.
func DefaultMarkerConfig() MarkerConfig {
	return MarkerConfig{Token: DefaultMarker, AllowDecoration: true}
}

// suffixRe returns the pattern matching the marker (and any decoration) at
// end of line.
func (c MarkerConfig) suffixRe() *regexp.Regexp {
	token := regexp.QuoteMeta(c.tokenOrDefault())
	if c.AllowDecoration {
		return regexp.MustCompile(`\s+` + token + `[\*\s]*$`)
	}
	return regexp.MustCompile(`\s+` + token + `\s*$`)
}

// LineRe returns the pattern matching a whole pending-result line, capturing
// the content preceding the marker.
func (c MarkerConfig) LineRe() *regexp.Regexp {
	token := regexp.QuoteMeta(c.tokenOrDefault())
	if c.AllowDecoration {
		return regexp.MustCompile(`^(.+?)\s+` + token + `[\*\s]*$`)
	}
	return regexp.MustCompile(`^(.+?)\s+` + token + `\s*$`)
}

// RewriteRe returns the pattern used to splice a verdict over the marker,
// consuming trailing decoration but never the line terminator.
func (c MarkerConfig) RewriteRe() *regexp.Regexp {
	token := regexp.QuoteMeta(c.tokenOrDefault())
	if c.AllowDecoration {
		return regexp.MustCompile(token + `[\* ]*`)
	}
	return regexp.MustCompile(token)
}

func (c MarkerConfig) tokenOrDefault() string {
	if c.Token == "" {
		return DefaultMarker
	}
	return c.Token
}

// #endregion

// #region value

// Value returns the measured value of a line: the text after the last "="
// separator, with the pending marker stripped first. An empty string is a
// real value (the measurement was blank); ok=false means the line has no
// separator at all.
func Value(line string, cfg MarkerConfig) (string, bool) {
	stripped := cfg.suffixRe().ReplaceAllString(strings.TrimRight(line, "\r\n"), "")
	idx := strings.LastIndex(stripped, "=")
	if idx < 0 {
		return "", false
	}
	return strings.TrimSpace(stripped[idx+1:]), true
}

// #endregion

// #region key

// Key returns the parameter name of a line: the text before the first "="
// separator, trimmed. ok=false when the line has no separator or an empty
// name.
func Key(line string) (string, bool) {
	idx := strings.Index(line, "=")
	if idx < 0 {
		return "", false
	}
	key := strings.TrimSpace(line[:idx])
	if key == "" {
		return "", false
	}
	return key, true
}

// #endregion

// #region numeric

var leadingNumberRe = regexp.MustCompile(`^([+-]?\d+(?:\.\d+)?)`)

// Numeric extracts the leading signed decimal number from a value that may
// carry trailing unit text ("136.974944 Deg" -> 136.974944). ok=false when
// the value has no leading number.
func Numeric(s string) (float64, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	m := leadingNumberRe.FindStringSubmatch(cleaned)
	if m == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// #endregion
