package linreg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kirchner-lab/msdiff/internal/domain"
)

// linearSeries builds time = 0..n-1, value = slope*time. On log-log axes the
// local exponent is exactly 1 everywhere.
func linearSeries(n int, slope float64) domain.Series {
	s := domain.Series{
		Time:   make([]float64, n),
		Value:  make([]float64, n),
		Stderr: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		s.Time[i] = float64(i)
		s.Value[i] = slope * float64(i)
	}
	return s
}

// crossoverSeries grows quadratically up to time 50 and linearly afterwards,
// mimicking the ballistic-to-diffusive crossover of a real MSD.
func crossoverSeries(n int) domain.Series {
	s := domain.Series{
		Time:   make([]float64, n),
		Value:  make([]float64, n),
		Stderr: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		t := float64(i)
		s.Time[i] = t
		if i <= 50 {
			s.Value[i] = t * t
		} else {
			s.Value[i] = 100*t - 2500
		}
	}
	return s
}

func TestFindLinearRegionPureLinear(t *testing.T) {
	s := linearSeries(1001, 2)

	w := FindLinearRegion(s, Options{Tolerance: 0.05})

	require.Equal(t, domain.Window{First: 1, Last: 1000}, w)
}

func TestFindLinearRegionQuadraticSentinel(t *testing.T) {
	// value ∝ time² has a constant log-log slope of 2, never within
	// tolerance of 1, so the scan must come back empty.
	s := domain.Series{
		Time:   make([]float64, 100),
		Value:  make([]float64, 100),
		Stderr: make([]float64, 100),
	}
	for i := range s.Time {
		t := float64(i)
		s.Time[i] = t
		s.Value[i] = t * t
	}

	w := FindLinearRegion(s, Options{Tolerance: 0.1})

	require.Equal(t, domain.NoWindow, w)
	require.False(t, w.Found())
}

func TestFindLinearRegionCrossover(t *testing.T) {
	s := crossoverSeries(1001)

	w := FindLinearRegion(s, Options{Tolerance: 0.05})

	require.Equal(t, domain.Window{First: 321, Last: 1000}, w)
}

func TestFindLinearRegionNegativeValues(t *testing.T) {
	// Cumulative conductivity integrals may be negative; the scan takes the
	// absolute value before the logarithm, so a sign flip must not change
	// the detected window.
	s := linearSeries(1001, 2)
	for i := range s.Value {
		s.Value[i] = -s.Value[i]
	}

	w := FindLinearRegion(s, Options{Tolerance: 0.05})

	require.Equal(t, domain.Window{First: 1, Last: 1000}, w)
}

func TestFindLinearRegionDeterminism(t *testing.T) {
	s := crossoverSeries(1001)
	opts := Options{Tolerance: 0.05}

	first := FindLinearRegion(s, opts)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, FindLinearRegion(s, opts))
	}
}

func TestFindLinearRegionTooShort(t *testing.T) {
	s := linearSeries(2, 1)

	require.Equal(t, domain.NoWindow, FindLinearRegion(s, Options{Tolerance: 0.05}))
}

// Re-running detection and fit on the series restricted to the selected
// window must select the same rows and reproduce the fit exactly.
func TestFindLinearRegionIdempotent(t *testing.T) {
	s := crossoverSeries(1001)
	opts := Options{Tolerance: 0.05}

	w := FindLinearRegion(s, opts)
	require.True(t, w.Found())
	fit, err := Fit(s, w)
	require.NoError(t, err)

	// Keep one leading sample to play the excluded zero-time role.
	restricted := s.Slice(w.First-1, w.Last)
	w2 := FindLinearRegion(restricted, opts)
	require.Equal(t, domain.Window{First: 1, Last: restricted.Len() - 1}, w2)
	require.Equal(t, s.Time[w.First], restricted.Time[w2.First])
	require.Equal(t, s.Time[w.Last], restricted.Time[w2.Last])

	fit2, err := Fit(restricted, w2)
	require.NoError(t, err)
	require.Equal(t, fit, fit2)
}
