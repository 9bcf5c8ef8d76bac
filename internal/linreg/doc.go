// Package linreg implements the core of msdiff: the detector that locates the
// diffusive (log-log linear) time regime of an MSD-like series, and the
// closed-form linear regression that turns the selected window into a slope
// with its standard error and goodness of fit.
//
// Both halves are pure, deterministic functions over in-memory arrays. The
// estimators are implemented directly from their closed forms rather than
// through a generic curve-fitting library so that results are bit-reproducible
// across runs and platforms.
package linreg
