// Package fixture provides JSON golden fixtures for the document scanner.
// A fixture captures an input document, the scanner configuration, and the
// expected processed output, so a real-world log can be frozen into a
// regression case.
package fixture

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/testlog-resolver/internal/eval"
	"github.com/danielpatrickdp/testlog-resolver/internal/scan"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a scanner fixture.
type Fixture struct {
	Description string          `json:"description"`
	Config      FixtureConfig   `json:"config"`
	Document    []string        `json:"document"`
	Expected    FixtureExpected `json:"expected"`
}

// FixtureConfig mirrors scan.Config with JSON tags.
type FixtureConfig struct {
	Marker           string `json:"marker"`
	AllowDecoration  bool   `json:"allow_decoration"`
	UnitAwareNumbers bool   `json:"unit_aware_numbers"`
	CriteriaLookback int    `json:"criteria_lookback"`
	CrossRefLookback int    `json:"crossref_lookback"`
}

// FixtureExpected captures the processed document and its counters.
type FixtureExpected struct {
	Document    []string `json:"document"`
	Passed      int      `json:"passed"`
	Failed      int      `json:"failed"`
	Unchanged   int      `json:"unchanged"`
	FailedLines []int    `json:"failed_lines,omitempty"`
}

// DefaultFixtureConfig returns the JSON form of the default scanner config.
func DefaultFixtureConfig() FixtureConfig {
	cfg := scan.DefaultConfig()
	return FixtureConfig{
		Marker:           cfg.Marker.Token,
		AllowDecoration:  cfg.Marker.AllowDecoration,
		UnitAwareNumbers: cfg.Eval.UnitAwareNumbers,
		CriteriaLookback: cfg.CriteriaLookback,
		CrossRefLookback: cfg.CrossRefLookback,
	}
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// SaveFixture writes a fixture as indented JSON.
func SaveFixture(f *Fixture, path string) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ToScanConfig converts a FixtureConfig to a domain scanner config.
func (fc *FixtureConfig) ToScanConfig() scan.Config {
	cfg := scan.DefaultConfig()
	if fc.Marker != "" {
		cfg.Marker.Token = fc.Marker
	}
	cfg.Marker.AllowDecoration = fc.AllowDecoration
	cfg.Eval = eval.Config{UnitAwareNumbers: fc.UnitAwareNumbers}
	if fc.CriteriaLookback > 0 {
		cfg.CriteriaLookback = fc.CriteriaLookback
	}
	if fc.CrossRefLookback > 0 {
		cfg.CrossRefLookback = fc.CrossRefLookback
	}
	return cfg
}

// #endregion fixture-loader
