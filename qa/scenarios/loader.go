package scenarios

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/h2grid/core/microgrid"
	"github.com/kilianp07/h2grid/core/model"
)

// ConstantDef repeats the same readings for every hour of the day.
type ConstantDef struct {
	PV   float64 `yaml:"pv"`
	Wind float64 `yaml:"wind"`
	Load float64 `yaml:"load"`
}

// Expected holds the outcome a scenario must reproduce. Zero pointer fields
// are not checked.
type Expected struct {
	Status              string   `yaml:"status,omitempty"`
	FinalBatterySoCMWh  *float64 `yaml:"final_battery_soc_mwh,omitempty"`
	FinalHydrogenSoCMWh *float64 `yaml:"final_hydrogen_soc_mwh,omitempty"`
	UnservedMWh         *float64 `yaml:"unserved_mwh,omitempty"`
	CurtailedMWh        *float64 `yaml:"curtailed_mwh,omitempty"`
	// Actions maps an hour to its expected action label.
	Actions map[int]string `yaml:"actions,omitempty"`
	// Error names the expected rejection: "shape", "config", "negative",
	// "overflow" or "depleted".
	Error string `yaml:"error,omitempty"`
}

type Scenario struct {
	Name        string              `yaml:"name"`
	Description string              `yaml:"description,omitempty"`
	Storage     model.StorageConfig `yaml:"storage"`
	Series      model.Series        `yaml:"series,omitempty"`
	Constant    *ConstantDef        `yaml:"constant,omitempty"`
	Expected    Expected            `yaml:"expected"`
}

// Samples returns the hourly samples of the scenario.
func (s Scenario) Samples() ([]model.HourlySample, error) {
	if s.Constant != nil {
		return model.Constant(s.Constant.PV, s.Constant.Wind, s.Constant.Load).Samples()
	}
	return s.Series.Samples()
}

// ToRun converts the scenario into a simulator input.
func (s Scenario) ToRun() (microgrid.Scenario, error) {
	samples, err := s.Samples()
	if err != nil {
		return microgrid.Scenario{}, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	return microgrid.Scenario{Name: s.Name, Samples: samples, Storage: s.Storage}, nil
}

// Load reads a scenario file. Storage fields it omits keep the pilot defaults.
func Load(path string) (*Scenario, error) {
	return LoadWith(path, model.DefaultStorageConfig())
}

// LoadWith reads a scenario file on top of the base storage configuration.
func LoadWith(path string, base model.StorageConfig) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := Scenario{Storage: base}
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = filepath.Base(path)
	}
	return &sc, nil
}

// LoadDir loads every .yaml and .yml file of dir in lexical order.
func LoadDir(dir string) ([]*Scenario, error) {
	return LoadDirWith(dir, model.DefaultStorageConfig())
}

// LoadDirWith is LoadDir on top of the base storage configuration.
func LoadDirWith(dir string, base model.StorageConfig) ([]*Scenario, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		m, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, m...)
	}
	sort.Strings(paths)
	out := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		sc, err := LoadWith(p, base)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}
