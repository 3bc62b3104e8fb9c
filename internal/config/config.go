// Package config defines the YAML run configuration for the
// velocity-Verlet integrator and its thermostats.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTemperature      = 300.0 // K
	DefaultFrequency        = 10.0  // 1/ps
	DefaultDrudeTemperature = 1.0   // K
	DefaultDrudeFrequency   = 40.0  // 1/ps
	DefaultStepSize         = 0.001 // ps
	DefaultNHChains         = 3
	DefaultNHLoops          = 1
	DefaultTolerance        = 1e-5
	DefaultFriction         = 5.0  // 1/ps
	DefaultDrudeFriction    = 20.0 // 1/ps
)

// Config is the full configuration surface of the integrator.
type Config struct {
	Temperature      float64 `yaml:"temperature"`
	Frequency        float64 `yaml:"frequency"`
	DrudeTemperature float64 `yaml:"drude_temperature"`
	DrudeFrequency   float64 `yaml:"drude_frequency"`
	StepSize         float64 `yaml:"step_size"`
	NHChains         int     `yaml:"nh_chains"`
	NHLoops          int     `yaml:"nh_loops"`
	UseCOMTempGroup  bool    `yaml:"com_temp_group"`

	ConstraintTolerance float64 `yaml:"constraint_tolerance"`
	MaxDrudeDistance    float64 `yaml:"max_drude_distance"` // nm, 0 disables the hard wall

	Friction      float64 `yaml:"friction"`
	DrudeFriction float64 `yaml:"drude_friction"`
	Seed          int64   `yaml:"seed"`

	MirrorLocation  float64 `yaml:"mirror_location"`  // nm, z of the image-charge plane
	ElectricField   float64 `yaml:"electric_field"`   // kJ/(nm·e), along z
	CosAcceleration float64 `yaml:"cos_acceleration"` // nm/ps², 0 disables the perturbation

	Precision string `yaml:"precision"` // double | mixed | single
}

func DefaultConfig() *Config {
	return &Config{
		Temperature:         DefaultTemperature,
		Frequency:           DefaultFrequency,
		DrudeTemperature:    DefaultDrudeTemperature,
		DrudeFrequency:      DefaultDrudeFrequency,
		StepSize:            DefaultStepSize,
		NHChains:            DefaultNHChains,
		NHLoops:             DefaultNHLoops,
		ConstraintTolerance: DefaultTolerance,
		Friction:            DefaultFriction,
		DrudeFriction:       DefaultDrudeFriction,
		Precision:           "double",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the integrator cannot run.
func (c *Config) Validate() error {
	if c.StepSize <= 0 {
		return fmt.Errorf("config: step_size must be positive, got %g", c.StepSize)
	}
	if c.NHChains < 1 {
		return fmt.Errorf("config: nh_chains must be >= 1, got %d", c.NHChains)
	}
	if c.NHLoops < 1 {
		return fmt.Errorf("config: nh_loops must be >= 1, got %d", c.NHLoops)
	}
	if c.Temperature < 0 || c.DrudeTemperature < 0 {
		return fmt.Errorf("config: temperatures must be non-negative")
	}
	if c.Frequency <= 0 || c.DrudeFrequency <= 0 {
		return fmt.Errorf("config: coupling frequencies must be positive")
	}
	if c.ConstraintTolerance <= 0 {
		return fmt.Errorf("config: constraint_tolerance must be positive, got %g", c.ConstraintTolerance)
	}
	if c.MaxDrudeDistance < 0 {
		return fmt.Errorf("config: max_drude_distance must be non-negative, got %g", c.MaxDrudeDistance)
	}
	switch c.Precision {
	case "", "double", "mixed", "single":
	default:
		return fmt.Errorf("config: unknown precision %q", c.Precision)
	}
	return nil
}
