package fft

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotPowerOfTwo is returned when a transform length is not a power of two.
var ErrNotPowerOfTwo = errors.New("fft: length must be a power of two")

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Compute performs an iterative radix-2 decimation-in-time Cooley-Tukey
// transform of in and returns a newly allocated sequence of the same length.
//
// The forward transform uses negative-exponent twiddles; the inverse uses
// positive-exponent twiddles and scales the result by 1/N. Lengths of 0 or 1
// are returned unchanged. Any other non-power-of-two length fails with
// [ErrNotPowerOfTwo].
func Compute(in []complex128, inverse bool) ([]complex128, error) {
	n := len(in)
	if n <= 1 {
		out := make([]complex128, n)
		copy(out, in)
		return out, nil
	}
	if !IsPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: %d", ErrNotPowerOfTwo, n)
	}

	bits := trailingLog2(n)
	out := make([]complex128, n)
	for i := range in {
		out[reverseBits(i, bits)] = in[i]
	}

	direction := -1.0
	if inverse {
		direction = 1.0
	}

	for size := 2; size <= n; size <<= 1 {
		halfSize := size / 2
		unit := 2 * math.Pi / float64(size)
		for start := 0; start < n; start += size {
			for j := 0; j < halfSize; j++ {
				angle := unit * direction * float64(j)
				twiddle := complex(math.Cos(angle), math.Sin(angle))

				even := out[start+j]
				odd := out[start+j+halfSize] * twiddle
				out[start+j] = even + odd
				out[start+j+halfSize] = even - odd
			}
		}
	}

	if inverse {
		scale := complex(1/float64(n), 0)
		for i := range out {
			out[i] *= scale
		}
	}

	return out, nil
}

// Forward computes the forward transform of in.
func Forward(in []complex128) ([]complex128, error) {
	return Compute(in, false)
}

// Inverse computes the inverse transform of in, scaled by 1/N.
func Inverse(in []complex128) ([]complex128, error) {
	return Compute(in, true)
}

// trailingLog2 returns log2(n) for a power-of-two n.
func trailingLog2(n int) int {
	bits := 0
	for n > 1 {
		n >>= 1
		bits++
	}
	return bits
}

// reverseBits reverses the low `bits` bits of i.
func reverseBits(i, bits int) int {
	r := 0
	for b := 0; b < bits; b++ {
		r = (r << 1) | (i & 1)
		i >>= 1
	}
	return r
}
