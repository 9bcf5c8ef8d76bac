package cliconfig

import (
	"errors"
	"testing"

	"github.com/kirchner-lab/msdiff/internal/domain"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantErr  bool
		wantBox  [3]float64
		wantCube bool
		wantDims int
	}{
		{
			name:     "cubic box from one length",
			mutate:   func(c *Config) { c.Lengths = []float64{1234} },
			wantBox:  [3]float64{1234, 1234, 1234},
			wantCube: true,
			wantDims: 3,
		},
		{
			name:     "tetragonal box from two lengths",
			mutate:   func(c *Config) { c.Lengths = []float64{4950.97, 9901.94} },
			wantBox:  [3]float64{4950.97, 4950.97, 9901.94},
			wantCube: false,
			wantDims: 3,
		},
		{
			name:     "general box from three lengths",
			mutate:   func(c *Config) { c.Lengths = []float64{1000, 2000, 3000} },
			wantBox:  [3]float64{1000, 2000, 3000},
			wantCube: false,
			wantDims: 3,
		},
		{
			name:    "missing lengths",
			mutate:  func(c *Config) { c.Lengths = nil },
			wantErr: true,
		},
		{
			name:    "too many lengths",
			mutate:  func(c *Config) { c.Lengths = []float64{1, 2, 3, 4} },
			wantErr: true,
		},
		{
			name:    "box too small",
			mutate:  func(c *Config) { c.Lengths = []float64{499} },
			wantErr: true,
		},
		{
			name: "temperature too low",
			mutate: func(c *Config) {
				c.Lengths = []float64{1234}
				c.Temperature = 150
			},
			wantErr: true,
		},
		{
			name: "tolerance out of range",
			mutate: func(c *Config) {
				c.Lengths = []float64{1234}
				c.Tolerance = 0.5
			},
			wantErr: true,
		},
		{
			name: "negative viscosity uncertainty",
			mutate: func(c *Config) {
				c.Lengths = []float64{1234}
				c.DeltaViscosity = -0.1
			},
			wantErr: true,
		},
		{
			name: "orthoboxy rejects cubic box",
			mutate: func(c *Config) {
				c.Lengths = []float64{1234}
				c.OrthoboxyFile = "msd_z.csv"
			},
			wantErr: true,
		},
		{
			name: "orthoboxy forces two dimensions",
			mutate: func(c *Config) {
				c.Lengths = []float64{4950.97, 9901.94}
				c.OrthoboxyFile = "msd_z.csv"
			},
			wantBox:  [3]float64{4950.97, 4950.97, 9901.94},
			wantCube: false,
			wantDims: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.File = "msd.csv"
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, domain.ErrInvalidConfig) {
					t.Errorf("err = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Box != tt.wantBox {
				t.Errorf("Box = %v, want %v", cfg.Box, tt.wantBox)
			}
			if cfg.Cubic != tt.wantCube {
				t.Errorf("Cubic = %v, want %v", cfg.Cubic, tt.wantCube)
			}
			if cfg.Dimensions != tt.wantDims {
				t.Errorf("Dimensions = %d, want %d", cfg.Dimensions, tt.wantDims)
			}
		})
	}
}

func TestValidateRequiresFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lengths = []float64{1234}

	if err := cfg.Validate(); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	if err := cfg.ValidateConductivity(); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("conductivity err = %v, want ErrInvalidConfig", err)
	}
}
