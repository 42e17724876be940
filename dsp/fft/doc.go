// Package fft implements an iterative radix-2 decimation-in-time
// Cooley-Tukey transform over complex128 sequences, with real-input
// specializations.
//
// Unlike the rest of the ecosystem, this package does not delegate to an
// external FFT backend: the twiddle convention (negative exponent forward,
// positive inverse), the 1/N inverse normalization, and the bit-reversal
// ordering are a bit-compatibility contract with embedded firmware that
// consumes masks derived from these transforms. Every operation is a pure
// function of its inputs under IEEE-754 double precision.
//
// Transform lengths must be powers of two. Lengths of 0 or 1 are returned
// unchanged.
package fft
