package refs

import "testing"

func TestResolve(t *testing.T) {
	doc := []string{
		"VEN2.01 = 001D",
		"MP 100 = 42",
		"ven2.02 = 0A3F",
		"MP 285 S/B = VEN2.01  PASS/FAIL",
	}

	tests := []struct {
		name    string
		fromIdx int
		param   string
		want    string
		wantOK  bool
	}{
		{"found", 3, "VEN2.01", "001D", true},
		{"case-insensitive", 3, "VEN2.02", "0A3F", true},
		{"nearest-backward-wins", 3, "MP 100", "42", true},
		{"not-before-position", 0, "VEN2.01", "", false},
		{"never-bound", 3, "VEN9.99", "", false},
		{"empty-param", 3, "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(doc, tt.fromIdx, tt.param)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Resolve(%d, %q) = (%q, %v), want (%q, %v)",
					tt.fromIdx, tt.param, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolve_BackwardOnly(t *testing.T) {
	doc := []string{
		"MP 1 PASS/FAIL",
		"VEN2.01 = 001D",
	}
	if _, ok := Resolve(doc, 0, "VEN2.01"); ok {
		t.Error("forward binding must not resolve")
	}
}

func TestResolve_ParamWithRegexMetachars(t *testing.T) {
	doc := []string{"I-1.02 = 629"}
	got, ok := Resolve(doc, 1, "I-1.02")
	if !ok || got != "629" {
		t.Errorf("got (%q, %v), want (\"629\", true)", got, ok)
	}
	// The dot must not match arbitrary characters.
	doc = []string{"I-1X02 = 629"}
	if _, ok := Resolve(doc, 1, "I-1.02"); ok {
		t.Error("metacharacters in param must be literal")
	}
}
