// Package config loads the optional YAML file tuning the resolver.
package config

// #region imports
import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/testlog-resolver/internal/eval"
	"github.com/danielpatrickdp/testlog-resolver/internal/extract"
	"github.com/danielpatrickdp/testlog-resolver/internal/scan"
)

// #endregion

// #region file-config

// FileConfig mirrors the YAML file. Zero values fall back to the built-in
// defaults so a partial file only overrides what it names.
type FileConfig struct {
	Marker           string `yaml:"marker"`
	AllowDecoration  *bool  `yaml:"allow_decoration"`
	UnitAwareNumbers *bool  `yaml:"unit_aware_numbers"`
	CriteriaLookback int    `yaml:"criteria_lookback"`
	CrossRefLookback int    `yaml:"crossref_lookback"`
	Suffix           string `yaml:"output_suffix"`
	ReportDB         string `yaml:"report_db"`
}

// Default returns the configuration used when no file is given.
func Default() FileConfig {
	return FileConfig{}
}

// Load reads and parses a YAML config file.
func Load(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var c FileConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return FileConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

// #endregion

// #region scan-config

// ScanConfig converts the file settings into a scanner configuration.
func (c FileConfig) ScanConfig() scan.Config {
	cfg := scan.DefaultConfig()
	if c.Marker != "" {
		cfg.Marker.Token = c.Marker
	}
	if c.AllowDecoration != nil {
		cfg.Marker.AllowDecoration = *c.AllowDecoration
	}
	if c.UnitAwareNumbers != nil {
		cfg.Eval = eval.Config{UnitAwareNumbers: *c.UnitAwareNumbers}
	}
	if c.CriteriaLookback > 0 {
		cfg.CriteriaLookback = c.CriteriaLookback
	}
	if c.CrossRefLookback > 0 {
		cfg.CrossRefLookback = c.CrossRefLookback
	}
	return cfg
}

// MarkerConfig returns just the marker settings.
func (c FileConfig) MarkerConfig() extract.MarkerConfig {
	return c.ScanConfig().Marker
}

// #endregion
