// Package physics holds the closed-form physical corrections applied to raw
// regression output: dimensional scaling, the Hummer finite-size correction
// and the OrthoBoXY viscosity formula. All functions are pure arithmetic.
package physics

import "math"

// Physical and geometry constants. The zeta values are dimensionless box
// shape factors from https://doi.org/10.1021/acs.jpcb.3c04492.
const (
	// KBoltz is the Boltzmann constant in J/K.
	KBoltz = 1.38064852e-23

	// ZetaHummer is the shape factor of an isotropic cubic box.
	ZetaHummer = 2.8372974795

	// ZetaZZ is the shape factor of the tetragonal OrthoBoXY box.
	ZetaZZ = 8.1711245653
)

// DiffusionFromSlope converts an MSD slope and its standard error into a
// diffusion coefficient by dividing by 2·dimensions. The stderr propagates
// identically.
func DiffusionFromSlope(slope, slopeStderr float64, dimensions int) (d, deltaD float64) {
	f := 2 * float64(dimensions)
	return slope / f, slopeStderr / f
}

// HummerCorrection returns the finite-size correction term and its propagated
// uncertainty, in 10^-12 m²/s, for an isotropic cubic box.
//
// temp is in K, viscosity and deltaViscosity in Pa·s, boxLength in pm.
func HummerCorrection(temp, viscosity, boxLength, deltaViscosity float64) (k, deltaK float64) {
	k = KBoltz * ZetaHummer * temp * 1e24 / (6 * math.Pi * viscosity * boxLength)
	deltaK = KBoltz * ZetaHummer * temp * 1e24 * deltaViscosity /
		(6 * math.Pi * viscosity * viscosity * boxLength)
	return k, deltaK
}

// OrthoboxyViscosity derives the shear viscosity, in mPa·s, from the
// anisotropy between the in-plane (xy) and out-of-plane (z) diffusion
// coefficients of a tetragonal box.
//
// Diffusion coefficients are in 10^-12 m²/s, temp in K, boxLength (z edge)
// in pm.
func OrthoboxyViscosity(diffXY, deltaDiffXY, diffZ, deltaDiffZ, temp, boxLength float64) (eta, deltaEta float64) {
	eta = KBoltz * ZetaZZ * temp * 1e24 /
		(6 * math.Pi * boxLength * (diffXY - diffZ)) * 1e3
	deltaEta = KBoltz * ZetaZZ * temp * 1e24 /
		(6 * math.Pi * boxLength * (diffXY - diffZ) * (diffXY - diffZ)) *
		math.Sqrt(deltaDiffXY*deltaDiffXY+deltaDiffZ*deltaDiffZ) * 1e3
	return eta, deltaEta
}
