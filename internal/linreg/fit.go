package linreg

import (
	"math"

	"github.com/kirchner-lab/msdiff/internal/domain"
)

// ThinFitThreshold is the point count below which a fit is flagged as
// statistically thin. The fit still proceeds.
const ThinFitThreshold = 100

// Fit performs a linear regression value = slope*time + intercept over the
// given window of the series and returns the slope, its standard error, R²
// and the point count.
//
// If every per-point uncertainty inside the window is exactly zero the fit is
// an unweighted ordinary least squares; otherwise it is an inverse-variance
// weighted least squares with weights 1/σ². Windows with fewer than two
// points yield domain.ErrInsufficientData; windows with fewer than
// ThinFitThreshold points set the Thin flag on the result.
func Fit(s domain.Series, w domain.Window) (domain.FitResult, error) {
	if !w.Found() {
		return domain.FitResult{}, domain.ErrNoLinearRegion
	}
	sub := s.Slice(w.First, w.Last)
	n := sub.Len()
	if n < 2 {
		return domain.FitResult{}, domain.ErrInsufficientData
	}

	weighted := false
	for _, e := range sub.Stderr {
		if e != 0 {
			weighted = true
			break
		}
	}

	var res domain.FitResult
	if weighted {
		res = fitWeighted(sub.Time, sub.Value, sub.Stderr)
	} else {
		res = fitOrdinary(sub.Time, sub.Value)
	}
	res.NPoints = n
	res.Thin = n < ThinFitThreshold
	return res, nil
}

// fitOrdinary is the closed-form unweighted least squares estimator.
func fitOrdinary(x, y []float64) domain.FitResult {
	n := float64(len(x))
	var sumX, sumY, sumXY, sumXX float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumXX += x[i] * x[i]
	}

	den := n*sumXX - sumX*sumX
	a := (n*sumXY - sumX*sumY) / den
	b := (sumXX*sumY - sumX*sumXY) / den

	var stderr float64
	if len(x) > 2 {
		var ssr float64
		for i := range x {
			r := y[i] - a*x[i] - b
			ssr += r * r
		}
		stderr = math.Sqrt(n/den) * math.Sqrt(ssr/(n-2))
	}
	// A two-point fit is exact; its residuals and stderr are zero.

	return domain.FitResult{
		Slope:       a,
		SlopeStderr: stderr,
		R2:          rSquared(x, y, a, b),
	}
}

// fitWeighted is the closed-form inverse-variance weighted estimator,
// weights w = 1/σ². R² is reported on unweighted residuals.
func fitWeighted(x, y, sigma []float64) domain.FitResult {
	var sumW, sumXW, sumYW, sumXYW, sumXXW float64
	for i := range x {
		w := 1 / (sigma[i] * sigma[i])
		sumW += w
		sumXW += x[i] * w
		sumYW += y[i] * w
		sumXYW += x[i] * y[i] * w
		sumXXW += x[i] * x[i] * w
	}

	a := (sumXW*sumYW - sumXYW*sumW) / (sumXW*sumXW - sumXXW*sumW)
	b := (sumXYW - a*sumXXW) / sumXW
	stderr := math.Sqrt(sumW / (sumXXW*sumW - sumXW*sumXW))

	return domain.FitResult{
		Slope:       a,
		SlopeStderr: stderr,
		R2:          rSquared(x, y, a, b),
	}
}

func rSquared(x, y []float64, a, b float64) float64 {
	var meanY float64
	for _, v := range y {
		meanY += v
	}
	meanY /= float64(len(y))

	var ssr, sst float64
	for i := range x {
		r := y[i] - a*x[i] - b
		ssr += r * r
		d := y[i] - meanY
		sst += d * d
	}
	if sst == 0 {
		return 1
	}
	return 1 - ssr/sst
}
