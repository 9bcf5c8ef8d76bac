// Package diffusion runs the self-diffusion pipeline: locate the diffusive
// regime of an MSD series, fit it, scale the slope into a diffusion
// coefficient and apply the finite-size and viscosity corrections. For
// multi-molecule input it repeats the detection and fit per molecule column
// and aggregates the replicates.
package diffusion

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/kirchner-lab/msdiff/internal/domain"
	"github.com/kirchner-lab/msdiff/internal/linreg"
	"github.com/kirchner-lab/msdiff/internal/msdio"
	"github.com/kirchner-lab/msdiff/internal/physics"
)

// Params holds the physical and algorithmic inputs of a diffusion run.
// It is assembled by the CLI layer; the pipeline knows nothing about flags.
type Params struct {
	File          string
	OrthoboxyFile string

	// Lengths are the box edge lengths Lx, Ly, Lz in pm. Cubic marks an
	// isotropic box, which enables the Hummer correction.
	Lengths [3]float64
	Cubic   bool

	Temperature    float64 // K
	Viscosity      float64 // Pa s
	DeltaViscosity float64 // Pa s

	Tolerance  float64
	Dimensions int

	// Avg marks the input's third column as per-point standard errors of an
	// averaged MSD, enabling the weighted fit.
	Avg bool
}

// MoleculeResult is the fitted diffusion coefficient of one replicate column.
type MoleculeResult struct {
	Name    string
	D       float64 // 10^-12 m²/s
	DeltaD  float64
	R2      float64
	NPoints int
	Err     error // non-nil if this column's analysis failed
}

// Result is the outcome of a diffusion run.
type Result struct {
	// Primary column (single molecule, or the aggregate total).
	D       float64 // 10^-12 m²/s
	DeltaD  float64
	R2      float64
	NPoints int

	KHummer      float64 // 10^-12 m²/s, zero for non-cubic boxes
	DeltaKHummer float64

	Window    domain.Window
	TFitStart float64
	TFitEnd   float64

	Lengths [3]float64

	// OrthoBoXY extras, set when HasZ is true.
	HasZ     bool
	DZ       float64
	DeltaDZ  float64
	Eta      float64 // mPa s
	DeltaEta float64

	// Per-molecule replicates and their aggregate, set for multi-column
	// input (NMolecules > 1).
	NMolecules int
	Molecules  []MoleculeResult
	MeanD      float64
	SemD       float64

	// Series and window for plotting.
	Series domain.Series
}

// Run executes the pipeline. Per-replicate failures are reported on the
// MoleculeResult and logged; the run as a whole fails only when the primary
// column cannot be analyzed.
func Run(p Params, log zerolog.Logger) (*Result, error) {
	table, nmols, err := msdio.ReadTable(p.File, p.Avg)
	if err != nil {
		return nil, err
	}

	primary := table.Series(0)
	window := linreg.FindLinearRegion(primary, linreg.Options{
		Target:    linreg.DefaultTarget,
		Tolerance: p.Tolerance,
	})
	if !window.Found() {
		return nil, fmt.Errorf("%w: check the input file and the tolerance", domain.ErrNoLinearRegion)
	}

	fit, err := linreg.Fit(primary, window)
	if err != nil {
		return nil, err
	}
	if fit.Thin {
		log.Warn().Int("npoints", fit.NPoints).Msg("small number of data points in fit window")
	}

	res := &Result{
		R2:         fit.R2,
		NPoints:    fit.NPoints,
		Window:     window,
		TFitStart:  primary.Time[window.First],
		TFitEnd:    primary.Time[window.Last],
		Lengths:    p.Lengths,
		NMolecules: nmols,
		Series:     primary,
	}
	res.D, res.DeltaD = physics.DiffusionFromSlope(fit.Slope, fit.SlopeStderr, p.Dimensions)

	if p.Cubic {
		res.KHummer, res.DeltaKHummer = physics.HummerCorrection(
			p.Temperature, p.Viscosity, p.Lengths[0], p.DeltaViscosity)
	}

	if p.OrthoboxyFile != "" {
		if err := runOrthoboxy(p, window, res); err != nil {
			return nil, err
		}
	}

	if nmols > 1 {
		runReplicates(p, table, nmols, res, log)
	}

	return res, nil
}

// runOrthoboxy fits the companion z-direction MSD over the window selected on
// the xy data and derives the shear viscosity from the anisotropy.
func runOrthoboxy(p Params, window domain.Window, res *Result) error {
	tableZ, _, err := msdio.ReadTable(p.OrthoboxyFile, p.Avg)
	if err != nil {
		return err
	}
	fitZ, err := linreg.Fit(tableZ.Series(0), window)
	if err != nil {
		return fmt.Errorf("orthoboxy fit: %w", err)
	}

	// The z MSD is one-dimensional.
	res.DZ, res.DeltaDZ = physics.DiffusionFromSlope(fitZ.Slope, fitZ.SlopeStderr, 1)
	res.Eta, res.DeltaEta = physics.OrthoboxyViscosity(
		res.D, res.DeltaD, res.DZ, res.DeltaDZ, p.Temperature, p.Lengths[2])
	res.HasZ = true
	return nil
}

// runReplicates repeats detection and fit per molecule column. The columns
// are independent, so one failing replicate only loses that replicate.
func runReplicates(p Params, table domain.Table, nmols int, res *Result, log zerolog.Logger) {
	res.Molecules = make([]MoleculeResult, 0, nmols)
	var ds []float64
	for m := 1; m <= nmols; m++ {
		col := table.Series(m)
		mr := MoleculeResult{Name: table.Columns[m].Name}

		w := linreg.FindLinearRegion(col, linreg.Options{
			Target:    linreg.DefaultTarget,
			Tolerance: p.Tolerance,
		})
		if !w.Found() {
			mr.Err = domain.ErrNoLinearRegion
		} else if fit, err := linreg.Fit(col, w); err != nil {
			mr.Err = err
		} else {
			mr.D, mr.DeltaD = physics.DiffusionFromSlope(fit.Slope, fit.SlopeStderr, p.Dimensions)
			mr.R2 = fit.R2
			mr.NPoints = fit.NPoints
			ds = append(ds, mr.D)
		}
		if mr.Err != nil {
			log.Error().Err(mr.Err).Str("column", mr.Name).Msg("replicate analysis failed")
		}
		res.Molecules = append(res.Molecules, mr)
	}

	if len(ds) > 0 {
		res.MeanD = stat.Mean(ds, nil)
		if len(ds) > 1 {
			res.SemD = stat.StdDev(ds, nil) / math.Sqrt(float64(len(ds)))
		}
	}
}
