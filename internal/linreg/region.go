package linreg

import (
	"math"

	"github.com/kirchner-lab/msdiff/internal/domain"
)

// Defaults for the region scan. The target exponent is a parameter rather
// than a hard-coded constant: both the MSD and the cumulative conductivity
// pathways expect 1.0 today, but they pass it explicitly.
const (
	// DefaultTarget is the expected log-log slope of a diffusive regime.
	DefaultTarget = 1.0

	// DefaultSlices is the number of coarse probe slices the series is
	// partitioned into.
	DefaultSlices = 10

	// DefaultIncrement is the window growth step as a fraction of the
	// series length.
	DefaultIncrement = 0.01
)

// Options controls the region scan.
type Options struct {
	// Target is the expected log-log exponent. Zero means DefaultTarget.
	Target float64

	// Tolerance is the admissible absolute deviation of the local slope
	// from Target. Must be in (0, 1).
	Tolerance float64

	// Slices is the probe slice count. Zero means DefaultSlices.
	Slices int

	// Increment is the window growth step fraction. Zero means
	// DefaultIncrement.
	Increment float64
}

func (o Options) withDefaults() Options {
	if o.Target == 0 {
		o.Target = DefaultTarget
	}
	if o.Slices == 0 {
		o.Slices = DefaultSlices
	}
	if o.Increment == 0 {
		o.Increment = DefaultIncrement
	}
	return o
}

// candidate is one interval that passed the tolerance test during the scan.
type candidate struct {
	t1, t2  int
	npoints int
	dev     float64
}

// FindLinearRegion scans a series on log-log axes and returns the window over
// which the local slope stays within Tolerance of the target exponent,
// preferring the window with the most points and breaking ties by the
// smallest slope deviation. Negative values are admitted by taking the
// absolute value before the logarithm (cumulative conductivity integrals may
// dip below zero).
//
// The scan partitions the series (minus the zero-time sample) into
// 2*Slices-1 overlapping probe intervals anchored at the large-time tail and
// grows each one backward toward smaller times until the two-point log-log
// slope leaves the tolerance band. Probes starting from different anchors
// keep a single locally acceptable stretch from masking a wider one.
//
// The returned window holds index positions into the full series. If no
// interval satisfies the tolerance anywhere, the domain.NoWindow sentinel is
// returned; that is a normal outcome, not an error.
func FindLinearRegion(s domain.Series, opts Options) domain.Window {
	opts = opts.withDefaults()

	n := s.Len()
	if n < 3 {
		return domain.NoWindow
	}

	// Drop index 0: log of the zero-time sample is undefined.
	ndata := n - 1
	lnTime := make([]float64, n)
	lnValue := make([]float64, n)
	for i := 1; i < n; i++ {
		lnTime[i] = math.Log(s.Time[i])
		lnValue[i] = math.Log(math.Abs(s.Value[i]))
	}

	step := int(float64(ndata) * opts.Increment)
	if step < 1 {
		step = 1
	}

	var cands []candidate
	for probe := 0; probe < 2*opts.Slices-1; probe++ {
		// t2 anchors the interval at larger correlation times, t1 at
		// smaller ones. Each probe starts half a slice before the
		// previous one.
		t1 := ndata - int(float64(probe+2)/2*float64(ndata)/float64(opts.Slices)) + 1
		t2 := ndata - int(float64(probe)/2*float64(ndata)/float64(opts.Slices))
		if t1 < 1 || t2 > ndata || t2 <= t1 {
			continue
		}

		for {
			slope := (lnValue[t1] - lnValue[t2]) / (lnTime[t1] - lnTime[t2])
			if math.IsNaN(slope) {
				break
			}
			if math.Abs(slope-opts.Target) > opts.Tolerance {
				break
			}
			cands = append(cands, candidate{
				t1:      t1,
				t2:      t2,
				npoints: t2 - t1,
				dev:     math.Abs(slope - opts.Target),
			})
			t1 -= step
			if t1 < 1 {
				break
			}
		}
	}

	if len(cands) == 0 {
		return domain.NoWindow
	}

	// Widest window wins; equally wide windows are ranked by slope quality,
	// then by scan order for a deterministic result.
	best := cands[0]
	for _, c := range cands[1:] {
		if c.npoints > best.npoints || (c.npoints == best.npoints && c.dev < best.dev) {
			best = c
		}
	}
	return domain.Window{First: best.t1, Last: best.t2}
}
