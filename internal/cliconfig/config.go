package cliconfig

import (
	"fmt"
	"strconv"

	"github.com/kirchner-lab/msdiff/internal/domain"
)

// Bounds for numeric options. Violations are rejected before any analysis
// starts.
const (
	MinBoxLength   = 500.0 // pm
	MinTemperature = 200.0 // K
	MinTolerance   = 0.001
	MaxTolerance   = 0.3
)

// Config holds CLI configuration for msdiff.
type Config struct {
	File   string
	Output string

	// Lengths holds 1, 2 or 3 box edge lengths in pm: one value means a
	// cubic box, two mean a tetragonal box (Lx=Ly, Lz), three a general
	// orthorhombic box.
	Lengths    []float64
	FromTravis bool

	Temperature    float64 // K
	Viscosity      float64 // Pa s
	DeltaViscosity float64 // Pa s

	Tolerance  float64
	Dimensions int

	Avg           bool
	OrthoboxyFile string
	Plot          bool
	Watch         bool

	// Derived during Validate.
	Box   [3]float64
	Cubic bool
}

// DefaultConfig returns a Config with default values. The default viscosity
// is that of [EMIM][NTf2].
func DefaultConfig() Config {
	return Config{
		Output:      "msdiff",
		Temperature: 353.15,
		Viscosity:   0.00787,
		Tolerance:   0.05,
		Dimensions:  3,
	}
}

// Validate checks the configuration for the diffusion pipeline and sets the
// derived box geometry. Errors wrap domain.ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := c.validateCommon(); err != nil {
		return err
	}

	switch len(c.Lengths) {
	case 1:
		c.Box = [3]float64{c.Lengths[0], c.Lengths[0], c.Lengths[0]}
	case 2:
		c.Box = [3]float64{c.Lengths[0], c.Lengths[0], c.Lengths[1]}
	case 3:
		c.Box = [3]float64{c.Lengths[0], c.Lengths[1], c.Lengths[2]}
	case 0:
		return fmt.Errorf("%w: box length not given", domain.ErrInvalidConfig)
	default:
		return fmt.Errorf("%w: too many box lengths given", domain.ErrInvalidConfig)
	}
	for _, l := range c.Box {
		if l < MinBoxLength {
			return fmt.Errorf("%w: box length %g pm is below %g", domain.ErrInvalidConfig, l, MinBoxLength)
		}
	}
	c.Cubic = c.Box[0] == c.Box[1] && c.Box[1] == c.Box[2]

	if c.Temperature < MinTemperature {
		return fmt.Errorf("%w: temperature %g K is below %g", domain.ErrInvalidConfig, c.Temperature, MinTemperature)
	}
	if c.Viscosity <= 0 {
		return fmt.Errorf("%w: viscosity must be positive", domain.ErrInvalidConfig)
	}
	if c.DeltaViscosity < 0 {
		return fmt.Errorf("%w: viscosity uncertainty must not be negative", domain.ErrInvalidConfig)
	}
	if c.Dimensions < 1 || c.Dimensions > 3 {
		return fmt.Errorf("%w: dimensions must be 1, 2 or 3", domain.ErrInvalidConfig)
	}

	if c.OrthoboxyFile != "" {
		if c.Cubic {
			return fmt.Errorf("%w: cubic box does not make sense for OrthoBoXY", domain.ErrInvalidConfig)
		}
		// OrthoBoXY input is the in-plane MSD, so the fit is two-dimensional.
		c.Dimensions = 2
	}
	return nil
}

// ValidateConductivity checks the subset of the configuration the
// conductivity pipeline uses.
func (c *Config) ValidateConductivity() error {
	return c.validateCommon()
}

func (c *Config) validateCommon() error {
	if c.File == "" {
		return fmt.Errorf("%w: input file is required", domain.ErrInvalidConfig)
	}
	if c.Tolerance < MinTolerance || c.Tolerance > MaxTolerance {
		return fmt.Errorf("%w: tolerance %g outside [%g, %g]",
			domain.ErrInvalidConfig, c.Tolerance, MinTolerance, MaxTolerance)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output name must not be empty", domain.ErrInvalidConfig)
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value if positive and flag not changed.
func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloats sets a float slice if non-empty and flag not changed.
func (s *configSetter) setFloats(flag string, value []float64, dst *[]float64) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination if
// valid. Used for environment variables.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if f <= 0 {
		return nil
	}
	*dst = f
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
