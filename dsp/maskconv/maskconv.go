package maskconv

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-dsp/dsp/window"
	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by mask application.
var (
	ErrEmptyInput = errors.New("maskconv: empty input")
	ErrMaskLength = errors.New("maskconv: mask must hold fftSize/2+1 bins for a power-of-two fftSize")
)

// Filter applies one half-spectrum mask to finite signals. It is reusable
// across calls but not safe for concurrent use (scratch buffers are shared).
type Filter struct {
	fullMask []complex128
	win      []float64
	plan     *algofft.Plan[complex128]
	fftSize  int
	hopSize  int

	frame    []float64
	fdBuf    []complex128
	realsBuf []float64
}

// New creates a filter for a mask of fftSize/2+1 bins, as produced by mask
// generation. The implied fftSize must be a power of two.
func New(mask []complex128) (*Filter, error) {
	numBins := len(mask)
	if numBins < 2 {
		return nil, fmt.Errorf("%w: %d bins", ErrMaskLength, numBins)
	}

	fftSize := 2 * (numBins - 1)
	if fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d bins", ErrMaskLength, numBins)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("maskconv: create fft plan: %w", err)
	}

	// Mirror the half spectrum so the filtered frames stay real:
	// [DC, f1, ..., Nyquist] -> [DC, f1, ..., Nyquist, conj(fN/2-1), ..., conj(f1)].
	fullMask := make([]complex128, fftSize)
	copy(fullMask, mask)
	for i := numBins; i < fftSize; i++ {
		fullMask[i] = cmplx.Conj(mask[fftSize-i])
	}

	return &Filter{
		fullMask: fullMask,
		win:      window.Generate(window.TypeHann, fftSize, window.WithPeriodic()),
		plan:     plan,
		fftSize:  fftSize,
		hopSize:  fftSize / 2,
		frame:    make([]float64, fftSize),
		fdBuf:    make([]complex128, fftSize),
		realsBuf: make([]float64, fftSize),
	}, nil
}

// FFTSize returns the frame length used internally.
func (f *Filter) FFTSize() int {
	return f.fftSize
}

// HopSize returns the frame advance (50% overlap).
func (f *Filter) HopSize() int {
	return f.hopSize
}

// Process filters input through the mask and returns a signal of the same
// length. The periodic Hann window at 50% overlap sums to unity, so apart
// from the fade-in of the first hop the mask response is applied at unit
// gain.
func (f *Filter) Process(input []float64) ([]float64, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	acc := make([]float64, len(input)+f.fftSize)

	for start := 0; start < len(input); start += f.hopSize {
		end := start + f.fftSize
		if end > len(input) {
			end = len(input)
		}

		n := copy(f.frame, input[start:end])
		for i := n; i < f.fftSize; i++ {
			f.frame[i] = 0
		}
		vecmath.MulBlockInPlace(f.frame, f.win)

		for i, v := range f.frame {
			f.fdBuf[i] = complex(v, 0)
		}

		if err := f.plan.Forward(f.fdBuf, f.fdBuf); err != nil {
			return nil, fmt.Errorf("maskconv: forward fft: %w", err)
		}

		for i := range f.fdBuf {
			f.fdBuf[i] *= f.fullMask[i]
		}

		if err := f.plan.Inverse(f.fdBuf, f.fdBuf); err != nil {
			return nil, fmt.Errorf("maskconv: inverse fft: %w", err)
		}

		for i, v := range f.fdBuf {
			f.realsBuf[i] = real(v)
		}
		vecmath.AddBlockInPlace(acc[start:start+f.fftSize], f.realsBuf)
	}

	return acc[:len(input)], nil
}

// Apply is a one-shot convenience that filters input through mask.
func Apply(mask []complex128, input []float64) ([]float64, error) {
	f, err := New(mask)
	if err != nil {
		return nil, err
	}
	return f.Process(input)
}
