package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sentinel-energy/uncertainty-cascade/internal/model"
)

// Config is the on-disk run configuration shape (YAML).
type Config struct {
	// Optional: load shared model defaults from a separate YAML (e.g.
	// examples/models/*.yaml). Keys set here override the model file.
	ModelFile string `yaml:"model_file"`

	// Year is the analysis year: the single source of truth for which
	// observational year capacity-factor statistics and time series are
	// assumed to represent.
	Year int `yaml:"year"`

	// SubsetTime is a [start, end] pair of ISO-8601 dates, inclusive bounds.
	SubsetTime []string `yaml:"subset_time,flow"`

	// TrimNinjaTimeseries controls whether archive rows outside subset_time
	// are dropped before use. Defaults to true when omitted.
	TrimNinjaTimeseries *bool `yaml:"trim-ninja-timeseries"`

	// Locations names the regional scenario (continental, national,
	// regional). Informational for this subsystem; spatial resolution is
	// handled by the caller.
	Locations string `yaml:"locations"`

	// ArchiveFile points at the time-series archive export consumed by the
	// run. Optional here because API callers inject an archive directly.
	ArchiveFile string `yaml:"archive_file"`

	CapacityFactors map[string]FactorConfig `yaml:"capacity-factors"`
}

// FactorConfig is one provenance-annotated capacity-factor entry.
type FactorConfig struct {
	Value float64 `yaml:"value"`
	Year  int     `yaml:"year"`
	Note  string  `yaml:"note"`
}

// Load reads, merges, and validates a run configuration.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.ModelFile != "" {
		modelPath := c.ModelFile
		if !filepath.IsAbs(modelPath) {
			// Prefer interpreting relative paths as relative to the config
			// file directory, falling back to the path as given.
			cand := filepath.Join(filepath.Dir(path), modelPath)
			if _, err := os.Stat(cand); err == nil {
				modelPath = cand
			}
		}
		base, err := loadModelFile(modelPath)
		if err != nil {
			return nil, err
		}
		c = Merge(base, c)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Year == 0 {
		return errors.New("year is required")
	}
	if len(c.SubsetTime) != 2 {
		return fmt.Errorf("subset_time must be a [start, end] pair, got %d elements", len(c.SubsetTime))
	}
	if _, err := c.Range(); err != nil {
		return err
	}
	for tech, f := range c.CapacityFactors {
		if f.Value < 0 || f.Value > 1 {
			return fmt.Errorf("capacity-factors.%s: value %v outside [0, 1]", tech, f.Value)
		}
	}
	return nil
}

// Range parses subset_time into a TimeRange. Ordering and year membership
// are deliberately left to the window resolver.
func (c *Config) Range() (model.TimeRange, error) {
	if len(c.SubsetTime) != 2 {
		return model.TimeRange{}, errors.New("subset_time must be a [start, end] pair")
	}
	return model.ParseTimeRange(c.SubsetTime[0], c.SubsetTime[1])
}

// Trim resolves the trim-ninja-timeseries flag, defaulting to true.
func (c *Config) Trim() bool {
	if c.TrimNinjaTimeseries == nil {
		return true
	}
	return *c.TrimNinjaTimeseries
}

// Entries converts the configured capacity factors into binder entries.
// An entry with no explicit year is assumed to describe the analysis year.
func (c *Config) Entries() []model.CapacityFactorEntry {
	out := make([]model.CapacityFactorEntry, 0, len(c.CapacityFactors))
	for tech, f := range c.CapacityFactors {
		year := f.Year
		if year == 0 {
			year = c.Year
		}
		out = append(out, model.CapacityFactorEntry{
			Technology: tech,
			Year:       model.ModelYear(year),
			Value:      f.Value,
			Provenance: f.Note,
		})
	}
	return out
}

type modelFileWrapper struct {
	Model Config `yaml:"model"`
}

func loadModelFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var w modelFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return Config{}, err
	}
	return w.Model, nil
}

// Merge overlays non-zero fields from override onto base. Capacity-factor
// maps merge per technology, with override entries winning.
func Merge(base, override Config) Config {
	out := base
	out.ModelFile = override.ModelFile
	if override.Year != 0 {
		out.Year = override.Year
	}
	if len(override.SubsetTime) != 0 {
		out.SubsetTime = override.SubsetTime
	}
	if override.TrimNinjaTimeseries != nil {
		out.TrimNinjaTimeseries = override.TrimNinjaTimeseries
	}
	if override.Locations != "" {
		out.Locations = override.Locations
	}
	if override.ArchiveFile != "" {
		out.ArchiveFile = override.ArchiveFile
	}
	if len(override.CapacityFactors) > 0 {
		merged := map[string]FactorConfig{}
		for tech, f := range base.CapacityFactors {
			merged[tech] = f
		}
		for tech, f := range override.CapacityFactors {
			merged[tech] = f
		}
		out.CapacityFactors = merged
	}
	return out
}
