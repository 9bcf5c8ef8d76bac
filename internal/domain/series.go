package domain

// Series is one data column of a time series: an ordered sequence of
// (time, value, stderr) samples, strictly increasing in time. Index 0 is the
// zero-time sample and is excluded from log-log analysis by consumers.
type Series struct {
	// Time holds the time axis, typically in ps.
	Time []float64

	// Value holds the MSD (pm²) or cumulative conductivity integral.
	Value []float64

	// Stderr holds per-point uncertainties of Value. All zeros means the
	// uncertainties are unknown and fits fall back to unweighted regression.
	Stderr []float64
}

// Len returns the number of samples.
func (s Series) Len() int { return len(s.Time) }

// Slice returns the sub-series covering index positions [first, last]
// inclusive. The backing arrays are shared, not copied.
func (s Series) Slice(first, last int) Series {
	return Series{
		Time:   s.Time[first : last+1],
		Value:  s.Value[first : last+1],
		Stderr: s.Stderr[first : last+1],
	}
}

// Table is a parsed input file: one shared time axis and one or more value
// columns. For multi-molecule input the first column is the aggregate total
// and the remaining ones are per-molecule replicates.
type Table struct {
	Time    []float64
	Columns []Column
}

// Column is a named value column of a Table.
type Column struct {
	Name   string
	Value  []float64
	Stderr []float64
}

// Series assembles the i-th column into a standalone Series.
func (t Table) Series(i int) Series {
	c := t.Columns[i]
	stderr := c.Stderr
	if stderr == nil {
		stderr = make([]float64, len(c.Value))
	}
	return Series{Time: t.Time, Value: c.Value, Stderr: stderr}
}

// Window bounds the diffusive (linear) regime of a series as a pair of index
// positions into the full series, first < last. The zero-value sentinel for
// "no linear region" is {-1, -1}.
type Window struct {
	First int
	Last  int
}

// NoWindow is the not-found sentinel returned by the region finder.
var NoWindow = Window{First: -1, Last: -1}

// Found reports whether the window refers to an actual index range.
func (w Window) Found() bool { return w.First >= 0 && w.Last >= 0 }

// FitResult is the outcome of a linear regression over a window.
// Immutable once produced.
type FitResult struct {
	// Slope and its standard error. For MSD data the slope is proportional
	// to the diffusion coefficient.
	Slope       float64
	SlopeStderr float64

	// R2 is the coefficient of determination of the fit.
	R2 float64

	// NPoints is the number of samples inside the fit window.
	NPoints int

	// Thin flags a statistically thin fit (fewer than 100 points).
	// Non-fatal; callers decide whether to surface it.
	Thin bool
}
