// Package interp resamples sparse control curves onto dense grids.
//
// The package provides piecewise-linear interpolation with flat extrapolation
// beyond the known range, the behavior expected when mapping a handful of
// user-drawn (frequency, gain) control points onto FFT bin frequencies.
package interp
