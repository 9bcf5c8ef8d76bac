package domain

import "errors"

// Domain errors represent error conditions in the msdiff domain.
// These errors are returned by the analysis pipelines and can be checked
// with errors.Is.
var (
	// ErrNoLinearRegion is returned when no window of the data satisfies the
	// slope tolerance anywhere, i.e. the region finder came back with the
	// not-found sentinel.
	ErrNoLinearRegion = errors.New("msdiff: no linear region found")

	// ErrInsufficientData is returned when a fit window contains fewer than
	// two points.
	ErrInsufficientData = errors.New("msdiff: not enough data points for linear regression")

	// ErrMissingAuxiliaryFile is returned when a required companion file
	// (travis.log, OrthoBoXY z-MSD) is absent.
	ErrMissingAuxiliaryFile = errors.New("msdiff: auxiliary file not found")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("msdiff: invalid configuration")

	// ErrBadInputShape is returned when the input file does not have a
	// recognized column layout.
	ErrBadInputShape = errors.New("msdiff: input file has wrong number of columns")
)
