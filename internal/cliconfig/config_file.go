package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config for the TOML config file. Booleans are pointers
// so an absent key is distinguishable from an explicit false.
type FileConfig struct {
	Output         string    `toml:"output"`
	Length         []float64 `toml:"length"`
	Temperature    float64   `toml:"temperature"`
	Viscosity      float64   `toml:"viscosity"`
	DeltaViscosity float64   `toml:"delta_viscosity"`
	Tolerance      float64   `toml:"tolerance"`
	Dimensions     int       `toml:"dimensions"`
	Avg            *bool     `toml:"avg"`
	FromTravis     *bool     `toml:"from_travis"`
	Orthoboxy      string    `toml:"orthoboxy"`
	Plot           *bool     `toml:"plot"`
	Watch          *bool     `toml:"watch"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.msdiff/config.toml if the user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".msdiff", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("output", fc.Output, &cfg.Output)
	s.setString("orthoboxy", fc.Orthoboxy, &cfg.OrthoboxyFile)

	s.setFloats("len", fc.Length, &cfg.Lengths)

	s.setFloat("temp", fc.Temperature, &cfg.Temperature)
	s.setFloat("visco", fc.Viscosity, &cfg.Viscosity)
	s.setFloat("d-visco", fc.DeltaViscosity, &cfg.DeltaViscosity)
	s.setFloat("tol", fc.Tolerance, &cfg.Tolerance)

	s.setInt("dim", fc.Dimensions, &cfg.Dimensions)

	s.setBool("avg", fc.Avg, &cfg.Avg)
	s.setBool("from-travis", fc.FromTravis, &cfg.FromTravis)
	s.setBool("plot", fc.Plot, &cfg.Plot)
	s.setBool("watch", fc.Watch, &cfg.Watch)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
