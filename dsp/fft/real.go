package fft

import "math/cmplx"

// RealForward computes the forward transform of a real-valued sequence and
// returns only the non-redundant half-spectrum of len(in)/2+1 bins. The
// discarded upper half is the conjugate mirror of the returned bins.
func RealForward(in []float64) ([]complex128, error) {
	if len(in) == 0 {
		return nil, nil
	}

	buf := make([]complex128, len(in))
	for i, v := range in {
		buf[i] = complex(v, 0)
	}

	full, err := Compute(buf, false)
	if err != nil {
		return nil, err
	}

	return full[:len(in)/2+1], nil
}

// RealInverse reconstructs the full conjugate-symmetric spectrum from a
// half-spectrum of numBins = N/2+1 entries, runs the inverse transform, and
// returns the real parts. The imaginary parts of the inverse are assumed
// negligible and are discarded without validation.
func RealInverse(half []complex128) ([]float64, error) {
	numBins := len(half)
	if numBins == 0 {
		return nil, nil
	}
	if numBins == 1 {
		return []float64{real(half[0])}, nil
	}

	n := 2 * (numBins - 1)
	full := make([]complex128, n)
	copy(full, half)
	for i := numBins; i < n; i++ {
		full[i] = cmplx.Conj(full[n-i])
	}

	out, err := Compute(full, true)
	if err != nil {
		return nil, err
	}

	re := make([]float64, n)
	for i, v := range out {
		re[i] = real(v)
	}

	return re, nil
}
