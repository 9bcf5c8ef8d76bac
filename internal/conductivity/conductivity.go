// Package conductivity runs the ionic conductivity pipeline: each raw
// Einstein-Helfand contribution column is taken through the same
// region-detection and regression core as the MSD pathway, the derived sums
// (cation/anion totals, Nernst-Einstein and Einstein-Helfand totals) are
// combined by first-order error propagation, and the a-posteriori quantities
// (ionicity, transport numbers) follow from the totals.
package conductivity

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/kirchner-lab/msdiff/internal/domain"
	"github.com/kirchner-lab/msdiff/internal/linreg"
	"github.com/kirchner-lab/msdiff/internal/msdio"
)

// Params holds the inputs of a conductivity run.
type Params struct {
	File      string
	Tolerance float64

	// Target is the expected log-log exponent of the cumulative integral.
	// Zero means linreg.DefaultTarget.
	Target float64
}

// Contribution is one fitted conductivity contribution in S/m.
type Contribution struct {
	Name       string
	Sigma      float64
	DeltaSigma float64
	R2         float64
	NPoints    int
	TStart     float64
	TEnd       float64
	Derived    bool  // summed from raw contributions, not fitted
	Err        error // non-nil if this column's analysis failed
}

// Posteriori holds the a-posteriori quantities derived from the totals.
// The mm/pp suffixes follow the anion (minus) / cation (plus) convention.
type Posteriori struct {
	Ionicity       float64
	IonicityErr    float64
	TMinusIdeal    float64
	TMinusIdealErr float64
	TPlusIdeal     float64
	TPlusIdealErr  float64
	TMinus         float64
	TMinusErr      float64
	TPlus          float64
	TPlusErr       float64
}

// Result is the outcome of a conductivity run.
type Result struct {
	Contributions []Contribution
	Posteriori    *Posteriori // nil when any raw contribution failed
}

// Run executes the pipeline. A failing contribution column does not abort
// its siblings; it is reported on its Contribution record and logged. The
// run as a whole fails only when every raw contribution fails. The derived
// totals and a-posteriori quantities require all raw fits and are skipped
// otherwise.
func Run(p Params, log zerolog.Logger) (*Result, error) {
	table, err := msdio.ReadConductivityTable(p.File)
	if err != nil {
		return nil, err
	}

	target := p.Target
	if target == 0 {
		target = linreg.DefaultTarget
	}

	raw := make(map[string]Contribution, len(table.Columns))
	res := &Result{}
	failures := 0
	for i, col := range table.Columns {
		c := fitContribution(table.Series(i), col.Name, target, p.Tolerance, log)
		if c.Err != nil {
			failures++
			log.Error().Err(c.Err).Str("contribution", c.Name).Msg("contribution analysis failed")
		}
		raw[c.Name] = c
		res.Contributions = append(res.Contributions, c)
	}
	if failures == len(table.Columns) {
		return nil, fmt.Errorf("all conductivity contributions failed: %w", domain.ErrNoLinearRegion)
	}
	if failures > 0 {
		return res, nil
	}

	appendDerived(res, raw)
	res.Posteriori = posteriori(res, log)
	return res, nil
}

func fitContribution(s domain.Series, name string, target, tol float64, log zerolog.Logger) Contribution {
	c := Contribution{Name: name}

	w := linreg.FindLinearRegion(s, linreg.Options{Target: target, Tolerance: tol})
	if !w.Found() {
		c.Err = domain.ErrNoLinearRegion
		return c
	}
	fit, err := linreg.Fit(s, w)
	if err != nil {
		c.Err = err
		return c
	}
	if fit.Thin {
		log.Warn().Str("contribution", name).Int("npoints", fit.NPoints).
			Msg("small number of data points in fit window")
	}

	// The cumulative integral carries no dimensional scaling: the slope is
	// the conductivity contribution itself.
	c.Sigma = fit.Slope
	c.DeltaSigma = fit.SlopeStderr
	c.R2 = fit.R2
	c.NPoints = fit.NPoints
	c.TStart = s.Time[w.First]
	c.TEnd = s.Time[w.Last]
	return c
}

// appendDerived adds the summed contributions. Independent uncertainties add
// in quadrature.
func appendDerived(res *Result, raw map[string]Contribution) {
	sum := func(name string, parts ...Contribution) Contribution {
		var s, e2 float64
		for _, p := range parts {
			s += p.Sigma
			e2 += p.DeltaSigma * p.DeltaSigma
		}
		return Contribution{Name: name, Sigma: s, DeltaSigma: math.Sqrt(e2), Derived: true}
	}

	catSelf := raw["cation_self"]
	catCross := raw["cation_cross"]
	anSelf := raw["anion_self"]
	anCross := raw["anion_cross"]
	anCat := raw["anion_cation"]

	res.Contributions = append(res.Contributions,
		sum("cation_tot", catSelf, catCross),
		sum("anion_tot", anSelf, anCross),
		sum("total_ne", catSelf, anSelf),
		sum("total_eh", catSelf, catCross, anSelf, anCross, anCat),
	)
}

// quotientErr is the first-order propagated uncertainty of f/g.
func quotientErr(f, df, g, dg float64) float64 {
	return math.Sqrt((df/g)*(df/g) + (f*dg/(g*g))*(f*dg/(g*g)))
}

// posteriori computes ionicity and transport numbers from the totals.
func posteriori(res *Result, log zerolog.Logger) *Posteriori {
	get := func(name string) Contribution {
		for _, c := range res.Contributions {
			if c.Name == name {
				return c
			}
		}
		return Contribution{}
	}
	eh := get("total_eh")
	ne := get("total_ne")
	anTot := get("anion_tot")
	anSelf := get("anion_self")
	catTot := get("cation_tot")
	catSelf := get("cation_self")
	anCat := get("anion_cation")

	var p Posteriori
	if ne.Sigma == 0 {
		log.Warn().Msg("Nernst-Einstein conductivity is zero, transport numbers are not calculated")
	} else {
		p.Ionicity = eh.Sigma / ne.Sigma
		p.IonicityErr = quotientErr(eh.Sigma, eh.DeltaSigma, ne.Sigma, ne.DeltaSigma)

		// Ideal transport numbers come from the self terms only.
		p.TMinusIdeal = anSelf.Sigma / ne.Sigma
		p.TMinusIdealErr = quotientErr(anSelf.Sigma, anSelf.DeltaSigma, ne.Sigma, ne.DeltaSigma)
		p.TPlusIdeal = catSelf.Sigma / ne.Sigma
		p.TPlusIdealErr = quotientErr(catSelf.Sigma, catSelf.DeltaSigma, ne.Sigma, ne.DeltaSigma)
	}

	// The cross cation-anion term has no transport number of its own; it is
	// attributed in equal halves to both ions.
	tpm := anCat.Sigma / eh.Sigma
	tpmErr := quotientErr(anCat.Sigma, anCat.DeltaSigma, eh.Sigma, eh.DeltaSigma)

	p.TMinus = anTot.Sigma/eh.Sigma + tpm/2
	p.TMinusErr = math.Sqrt(
		(anTot.DeltaSigma/eh.Sigma)*(anTot.DeltaSigma/eh.Sigma) +
			(anTot.Sigma*eh.DeltaSigma/(eh.Sigma*eh.Sigma))*(anTot.Sigma*eh.DeltaSigma/(eh.Sigma*eh.Sigma)) +
			(tpmErr/2)*(tpmErr/2))
	p.TPlus = catTot.Sigma/eh.Sigma + tpm/2
	p.TPlusErr = math.Sqrt(
		(catTot.DeltaSigma/eh.Sigma)*(catTot.DeltaSigma/eh.Sigma) +
			(catTot.Sigma*eh.DeltaSigma/(eh.Sigma*eh.Sigma))*(catTot.Sigma*eh.DeltaSigma/(eh.Sigma*eh.Sigma)) +
			(tpmErr/2)*(tpmErr/2))

	return &p
}
