package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/h2grid/core/metrics"
	"github.com/kilianp07/h2grid/core/microgrid"
	"github.com/kilianp07/h2grid/core/model"
)

type Config struct {
	Storage model.StorageConfig `json:"storage"`
	Summary SummaryConfig       `json:"summary"`
	Policy  PolicyConfig        `json:"policy"`
	Metrics metrics.Config      `json:"metrics"`
	Logging LoggingConfig       `json:"logging"`
	Batch   BatchConfig         `json:"batch"`
}

// SummaryConfig holds the day classification thresholds.
type SummaryConfig struct {
	RequiredMWh   float64 `json:"required_mwh"`
	MarginalRatio float64 `json:"marginal_ratio"`
	// Precision is the number of decimals of emitted records and totals.
	// Unset keeps microgrid.DisplayPrecision.
	Precision *int32 `json:"precision"`
}

// SetDefaults applies the pilot site thresholds.
func (c *SummaryConfig) SetDefaults() {
	if c.RequiredMWh == 0 {
		c.RequiredMWh = microgrid.DefaultRequiredMWh
	}
	if c.MarginalRatio == 0 {
		c.MarginalRatio = microgrid.DefaultMarginalRatio
	}
}

// Validate checks the thresholds.
func (c SummaryConfig) Validate() error {
	if c.RequiredMWh <= 0 {
		return fmt.Errorf("summary.required_mwh must be positive")
	}
	if c.MarginalRatio <= 0 || c.MarginalRatio > 1 {
		return fmt.Errorf("summary.marginal_ratio must be in (0, 1]")
	}
	if c.Precision != nil && (*c.Precision < 0 || *c.Precision > 6) {
		return fmt.Errorf("summary.precision must be in [0, 6]")
	}
	return nil
}

// PolicyConfig tunes display and tank behaviour of the dispatch.
type PolicyConfig struct {
	// CombinedSurplusLabel reports every surplus hour as
	// "charging + hydrogen production".
	CombinedSurplusLabel bool `json:"combined_surplus_label"`
}

// BatchConfig controls concurrent scenario runs.
type BatchConfig struct {
	Workers int `json:"workers"`
}

// SetDefaults applies sane defaults.
func (c *BatchConfig) SetDefaults() {
	if c.Workers <= 0 {
		c.Workers = 4
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{Storage: model.DefaultStorageConfig()}
	cfg.setDefaults()
	return cfg
}

func (c *Config) setDefaults() {
	c.Summary.SetDefaults()
	c.Logging.SetDefaults()
	c.Batch.SetDefaults()
	c.Metrics.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Summary.Validate(); err != nil {
		return err
	}
	return c.Logging.Validate()
}

// Options converts the configuration into simulator options.
func (c *Config) Options() []microgrid.Option {
	opts := []microgrid.Option{
		microgrid.WithRequiredEnergy(c.Summary.RequiredMWh),
		microgrid.WithMarginalRatio(c.Summary.MarginalRatio),
	}
	if c.Summary.Precision != nil {
		opts = append(opts, microgrid.WithPrecision(*c.Summary.Precision))
	}
	if c.Policy.CombinedSurplusLabel {
		opts = append(opts, microgrid.WithCombinedSurplusLabel())
	}
	return opts
}

// Load reads a yaml or json file, applies K_ prefixed environment overrides
// (K_STORAGE__BATTERY_CAPACITY_MWH=8) and validates the result. Storage fields
// absent from the file keep the pilot site defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	cfg := Config{Storage: model.DefaultStorageConfig()}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
