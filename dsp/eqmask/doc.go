// Package eqmask converts sparse (frequency, gain) control points into a
// complex minimum-phase frequency-domain filter mask for real-time
// convolution on embedded targets.
//
// The pipeline is the classical cepstral minimum-phase derivation: the
// control curve is interpolated onto the FFT bin grid, converted to a
// log-magnitude spectrum, mirrored with even symmetry, inverse-transformed
// into a cepstrum, causally folded, forward-transformed into a complex
// log-spectrum, and exponentiated. The resulting mask realizes the requested
// magnitude response with the least possible group delay.
//
// Every step, including the 1e-10 magnitude floor and the doubling/zeroing
// causal window, is a fixed contract rather than a tunable default: firmware
// consumes the resulting numbers as exact constants. Generation is a pure
// function of its arguments, so identical inputs always produce bit-identical
// masks and concurrent calls need no coordination.
package eqmask
