package eval

import (
	"testing"

	"github.com/danielpatrickdp/testlog-resolver/internal/criteria"
)

func evaluate(t *testing.T, value string, c criteria.Criteria) Verdict {
	t.Helper()
	return NewEvaluator(DefaultConfig()).Evaluate(value, c, nil, 0, NewHistory())
}

func TestEvaluate_Exact(t *testing.T) {
	c := criteria.Criteria{Kind: criteria.KindExact, Value: "ENABLED"}
	if got := evaluate(t, "enabled", c); got != VerdictPass {
		t.Errorf("case-insensitive equality: got %q", got)
	}
	if got := evaluate(t, "DISABLED", c); got != VerdictFail {
		t.Errorf("mismatch: got %q", got)
	}
}

func TestEvaluate_Set(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		members []string
		want    Verdict
	}{
		{"member", "1", []string{"0", "1"}, VerdictPass},
		{"non-member", "2", []string{"0", "1"}, VerdictFail},
		{"case-insensitive", "b", []string{"A", "B"}, VerdictPass},
		{"blank-allowed", "", []string{"0", "9", "blank"}, VerdictPass},
		{"blank-not-allowed", "", []string{"0", "1"}, VerdictFail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := criteria.Criteria{Kind: criteria.KindSet, Members: tt.members}
			if got := evaluate(t, tt.value, c); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvaluate_Range(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		min, max string
		want     Verdict
	}{
		{"numeric-in", "150", "100", "200", VerdictPass},
		{"numeric-low", "99", "100", "200", VerdictFail},
		{"numeric-high", "201", "100", "200", VerdictFail},
		{"numeric-boundary", "100", "100", "200", VerdictPass},
		{"numeric-decimal", "9999.9", "0", "9999.9", VerdictPass},
		{"hex-in", "00FF", "0000", "FFFF", VerdictPass},
		{"hex-out", "1FFFF", "0000", "FFFF", VerdictFail},
		{"lexicographic", "BETA", "ALPHA", "GAMMA", VerdictPass},
		{"lexicographic-out", "ZULU", "ALPHA", "GAMMA", VerdictFail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := criteria.Criteria{Kind: criteria.KindRange, Min: tt.min, Max: tt.max}
			if got := evaluate(t, tt.value, c); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvaluate_Tolerance(t *testing.T) {
	c := criteria.Criteria{Kind: criteria.KindTolerance, Target: 30000, Tolerance: 10}
	if got := evaluate(t, "30005", c); got != VerdictPass {
		t.Errorf("in band: got %q", got)
	}
	if got := evaluate(t, "30011", c); got != VerdictFail {
		t.Errorf("out of band: got %q", got)
	}
}

// The two numeric-extraction generations behave differently on values with
// trailing unit text; both behaviors are selectable and pinned here.
func TestEvaluate_ToleranceUnitHandling(t *testing.T) {
	c := criteria.Criteria{Kind: criteria.KindTolerance, Target: 27.5, Tolerance: 1}
	hist := NewHistory()

	unitAware := NewEvaluator(Config{UnitAwareNumbers: true})
	if got := unitAware.Evaluate("27.5 Hz", c, nil, 0, hist); got != VerdictPass {
		t.Errorf("unit-aware: got %q, want %q", got, VerdictPass)
	}
	if got := unitAware.Evaluate("no reading", c, nil, 0, hist); got != VerdictInconclusive {
		t.Errorf("unit-aware unparseable: got %q, want %q", got, VerdictInconclusive)
	}

	strict := NewEvaluator(Config{UnitAwareNumbers: false})
	if got := strict.Evaluate("27.5 Hz", c, nil, 0, hist); got != VerdictFail {
		t.Errorf("strict: got %q, want %q", got, VerdictFail)
	}
	if got := strict.Evaluate("27.5", c, nil, 0, hist); got != VerdictPass {
		t.Errorf("strict plain number: got %q, want %q", got, VerdictPass)
	}
}

func TestEvaluate_GreaterThan(t *testing.T) {
	c := criteria.Criteria{Kind: criteria.KindGreaterThan, Threshold: 100}
	tests := []struct {
		name  string
		value string
		want  Verdict
	}{
		{"above", "101", VerdictPass},
		{"equal-is-fail", "100", VerdictFail},
		{"below", "99", VerdictFail},
		{"with-units", "150 Deg", VerdictPass},
		{"non-numeric", "ENABLED", VerdictFail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evaluate(t, tt.value, c); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvaluate_GreaterThanPrevious(t *testing.T) {
	c := criteria.Criteria{Kind: criteria.KindGreaterThanPrevious, Param: "MP 1"}
	ev := NewEvaluator(DefaultConfig())
	hist := NewHistory()

	// First occurrence: no prior value, passes unconditionally.
	if got := ev.Evaluate("10", c, nil, 0, hist); got != VerdictPass {
		t.Fatalf("first occurrence: got %q, want %q", got, VerdictPass)
	}
	hist.Record("MP 1", "10")

	if got := ev.Evaluate("15", c, nil, 0, hist); got != VerdictPass {
		t.Fatalf("increasing: got %q, want %q", got, VerdictPass)
	}
	hist.Record("MP 1", "15")

	if got := ev.Evaluate("12", c, nil, 0, hist); got != VerdictFail {
		t.Fatalf("decreasing: got %q, want %q", got, VerdictFail)
	}
}

func TestEvaluate_GreaterThanPrevious_Inconclusive(t *testing.T) {
	c := criteria.Criteria{Kind: criteria.KindGreaterThanPrevious, Param: "MP 1"}
	ev := NewEvaluator(DefaultConfig())

	hist := NewHistory()
	if got := ev.Evaluate("not a number", c, nil, 0, hist); got != VerdictInconclusive {
		t.Errorf("unextractable value: got %q, want %q", got, VerdictInconclusive)
	}

	// A prior value stored as a raw string cannot be compared numerically.
	hist.Record("MP 1", "OFFLINE")
	if got := ev.Evaluate("10", c, nil, 0, hist); got != VerdictInconclusive {
		t.Errorf("string prior: got %q, want %q", got, VerdictInconclusive)
	}
}

func TestEvaluate_CrossReference(t *testing.T) {
	doc := []string{
		"VEN2.01 = 001D",
		"VEN2.02 = 0A:3F",
		"MP 285 S/B = VEN2.01  PASS/FAIL",
	}
	ev := NewEvaluator(DefaultConfig())
	hist := NewHistory()

	tests := []struct {
		name  string
		value string
		ref   string
		want  Verdict
	}{
		{"hex-leading-zeros", "1D", "VEN2.01", VerdictPass},
		{"hex-case", "1d", "VEN2.01", VerdictPass},
		{"hex-mismatch", "1E", "VEN2.01", VerdictFail},
		{"colon-stripped", "0A3F", "VEN2.02", VerdictPass},
		{"unresolved", "1D", "VEN9.99", VerdictInconclusive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := criteria.Criteria{Kind: criteria.KindCrossReference, Reference: tt.ref}
			if got := ev.Evaluate(tt.value, c, doc, 2, hist); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvaluate_ComplexRange(t *testing.T) {
	tests := []struct {
		name  string
		value string
		alt   string
		want  Verdict
	}{
		{"six-char-valid", "192168", "", VerdictPass},
		{"six-char-invalid", "999999", "", VerdictFail},
		{"six-char-spaced", "255  0", "", VerdictPass},
		{"four-char-split", "1101", "", VerdictPass},
		{"five-char-split", "25525", "", VerdictPass},
		{"too-short", "1", "", VerdictFail},
		{"too-long", "1921681", "", VerdictFail},
		{"non-numeric", "ABCD", "", VerdictFail},
		{"alternative", "DSABLD", "DSABLD", VerdictPass},
		{"alternative-case", "dsabld", "DSABLD", VerdictPass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := criteria.Criteria{Kind: criteria.KindComplexRange, Alternative: tt.alt}
			if got := evaluate(t, tt.value, c); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvaluate_Unvalidatable(t *testing.T) {
	c := criteria.Criteria{Kind: criteria.KindUnvalidatable}
	for _, v := range []string{"", "42", "anything"} {
		if got := evaluate(t, v, c); got != VerdictInconclusive {
			t.Errorf("value %q: got %q, want %q", v, got, VerdictInconclusive)
		}
	}
}

func TestEvaluate_EmptyValue(t *testing.T) {
	// Empty values fail every form except a set with "blank" and the
	// unvalidatable form.
	forms := []criteria.Criteria{
		{Kind: criteria.KindExact, Value: "1"},
		{Kind: criteria.KindRange, Min: "0", Max: "9"},
		{Kind: criteria.KindTolerance, Target: 10, Tolerance: 1},
		{Kind: criteria.KindGreaterThan, Threshold: 0},
		{Kind: criteria.KindCrossReference, Reference: "VEN2.01"},
	}
	for _, c := range forms {
		if got := evaluate(t, "   ", c); got != VerdictFail {
			t.Errorf("%s: got %q, want %q", c.Kind, got, VerdictFail)
		}
	}
}
