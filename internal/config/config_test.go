package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danielpatrickdp/testlog-resolver/internal/scan"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resolver.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_PartialOverride(t *testing.T) {
	path := writeConfig(t, "marker: CHECK/ME\ncriteria_lookback: 4\n")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg := c.ScanConfig()
	if cfg.Marker.Token != "CHECK/ME" {
		t.Errorf("marker: got %q, want %q", cfg.Marker.Token, "CHECK/ME")
	}
	if cfg.CriteriaLookback != 4 {
		t.Errorf("criteria lookback: got %d, want 4", cfg.CriteriaLookback)
	}
	if cfg.CrossRefLookback != scan.DefaultCrossRefLookback {
		t.Errorf("crossref lookback: got %d, want default %d", cfg.CrossRefLookback, scan.DefaultCrossRefLookback)
	}
	if !cfg.Marker.AllowDecoration {
		t.Error("allow decoration should default to true")
	}
	if !cfg.Eval.UnitAwareNumbers {
		t.Error("unit aware numbers should default to true")
	}
}

func TestLoad_BoolToggles(t *testing.T) {
	path := writeConfig(t, "allow_decoration: false\nunit_aware_numbers: false\n")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg := c.ScanConfig()
	if cfg.Marker.AllowDecoration {
		t.Error("allow decoration: got true, want false")
	}
	if cfg.Eval.UnitAwareNumbers {
		t.Error("unit aware numbers: got true, want false")
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := writeConfig(t, "marker: [unterminated\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestDefault_MatchesScanDefaults(t *testing.T) {
	cfg := Default().ScanConfig()
	if cfg.Marker.Token != scan.DefaultConfig().Marker.Token {
		t.Errorf("marker: got %q", cfg.Marker.Token)
	}
	if cfg.CriteriaLookback != scan.DefaultCriteriaLookback {
		t.Errorf("criteria lookback: got %d", cfg.CriteriaLookback)
	}
}
