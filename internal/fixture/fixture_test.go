package fixture

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleFixture() *Fixture {
	return &Fixture{
		Description: "range criteria resolves to PASS",
		Config:      DefaultFixtureConfig(),
		Document: []string{
			"S/B 0 to 100",
			"MP 1 = 50  PASS/FAIL",
		},
		Expected: FixtureExpected{
			Document: []string{
				"S/B 0 to 100",
				"MP 1 = 50  PASS",
			},
			Passed: 1,
		},
	}
}

func TestFixture_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "range.json")
	want := sampleFixture()

	if err := SaveFixture(want, path); err != nil {
		t.Fatalf("SaveFixture: %v", err)
	}
	got, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fixture mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFixture_Missing(t *testing.T) {
	if _, err := LoadFixture(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing fixture")
	}
}

func TestToScanConfig_Defaults(t *testing.T) {
	fc := FixtureConfig{}
	cfg := fc.ToScanConfig()
	if cfg.Marker.Token != "PASS/FAIL" {
		t.Errorf("marker: got %q", cfg.Marker.Token)
	}
	if cfg.CriteriaLookback != 9 || cfg.CrossRefLookback != 20 {
		t.Errorf("lookbacks: got %d/%d", cfg.CriteriaLookback, cfg.CrossRefLookback)
	}
	// zero-value bools are explicit settings, not fallbacks
	if cfg.Marker.AllowDecoration {
		t.Error("allow decoration: got true, want false")
	}
	if cfg.Eval.UnitAwareNumbers {
		t.Error("unit aware numbers: got true, want false")
	}
}

func TestReplay_Match(t *testing.T) {
	res := Replay(sampleFixture())
	if !res.Passed() {
		t.Errorf("expected clean replay, mismatches: %v", res.Mismatches)
	}
	if res.Stats.Passed != 1 {
		t.Errorf("passed: got %d, want 1", res.Stats.Passed)
	}
}

func TestReplay_Mismatch(t *testing.T) {
	f := sampleFixture()
	f.Expected.Document[1] = "MP 1 = 50  FAIL"
	f.Expected.Passed = 0
	f.Expected.Failed = 1

	res := Replay(f)
	if res.Passed() {
		t.Fatal("expected mismatches")
	}
	if len(res.Mismatches) != 3 {
		t.Errorf("mismatch count: got %d, want 3: %v", len(res.Mismatches), res.Mismatches)
	}
}

func TestCapture_IsReplayable(t *testing.T) {
	doc := []string{
		"Frequency S/B 27.5 +/- 2",
		"Frequency = 28.1  PASS/FAIL",
		"Voltage S/B 5.0 +/- 0.1",
		"Voltage = 5.4  PASS/FAIL",
	}
	f := Capture("tolerance pair", doc, DefaultFixtureConfig())

	if f.Expected.Passed != 1 || f.Expected.Failed != 1 {
		t.Fatalf("capture stats: got %d/%d, want 1/1", f.Expected.Passed, f.Expected.Failed)
	}
	if len(f.Expected.FailedLines) != 1 || f.Expected.FailedLines[0] != 4 {
		t.Errorf("failed lines: got %v, want [4]", f.Expected.FailedLines)
	}

	res := Replay(f)
	if !res.Passed() {
		t.Errorf("captured fixture should replay cleanly, mismatches: %v", res.Mismatches)
	}
}
