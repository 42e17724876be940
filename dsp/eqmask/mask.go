package eqmask

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-dsp/dsp/spectrum"

	"github.com/cwbudde/algo-eqmask/dsp/fft"
	"github.com/cwbudde/algo-eqmask/dsp/interp"
)

// Default configuration for the embedded target this library was written for.
const (
	DefaultSampleRate = 16000.0
	DefaultFFTSize    = 256
)

// magnitudeFloor clamps the target magnitude before the log so that a curve
// requesting zero gain stays finite. The exact value is part of the firmware
// contract.
const magnitudeFloor = 1e-10

// ErrNoControlPoints is returned when the control curve is empty.
var ErrNoControlPoints = errors.New("eqmask: at least one control point required")

// ControlPoint is one knot of the target magnitude curve.
type ControlPoint struct {
	FrequencyHz float64
	GainDB      float64
}

// Config holds static mask generation parameters. The zero value selects
// 16 kHz / 256 points.
type Config struct {
	SampleRate float64
	FFTSize    int
}

func (c Config) normalized() Config {
	if c.SampleRate <= 0 {
		c.SampleRate = DefaultSampleRate
	}
	if c.FFTSize == 0 {
		c.FFTSize = DefaultFFTSize
	}
	return c
}

// Mask is a generated minimum-phase filter mask of fftSize/2+1 bins.
//
// Coefficients[0] (DC) and Coefficients[len-1] (Nyquist) always have zero
// imaginary part, a consequence of the conjugate symmetry of a real-input
// transform. AchievedMagnitude holds |Coefficients[i]| for verification
// against the requested curve.
type Mask struct {
	BinFrequencies    []float64
	Coefficients      []complex128
	AchievedMagnitude []float64
}

// BinFrequencies returns fftSize/2+1 frequencies evenly spaced from 0 to
// sampleRate/2 inclusive.
func BinFrequencies(sampleRate float64, fftSize int) []float64 {
	numBins := fftSize/2 + 1
	out := make([]float64, numBins)
	if numBins == 1 {
		return out
	}

	step := (sampleRate / 2) / float64(numBins-1)
	for i := range out {
		out[i] = float64(i) * step
	}
	return out
}

// Generate computes the minimum-phase mask realizing the magnitude curve
// sketched by points under cfg.
//
// points must contain at least one knot and should be sorted ascending by
// frequency; duplicate frequencies are not rejected but yield an
// implementation-defined interpolation in the duplicated span. The control
// curve is owned by the caller and is not retained.
func Generate(points []ControlPoint, cfg Config) (Mask, error) {
	if len(points) == 0 {
		return Mask{}, ErrNoControlPoints
	}

	cfg = cfg.normalized()
	fftSize := cfg.FFTSize
	if fftSize < 2 || !fft.IsPowerOfTwo(fftSize) {
		return Mask{}, fmt.Errorf("eqmask: fft size %d: %w", fftSize, fft.ErrNotPowerOfTwo)
	}
	numBins := fftSize/2 + 1

	binFreqs := BinFrequencies(cfg.SampleRate, fftSize)

	knotFreqs := make([]float64, len(points))
	knotGains := make([]float64, len(points))
	for i, p := range points {
		knotFreqs[i] = p.FrequencyHz
		knotGains[i] = p.GainDB
	}

	gainsDB, err := interp.Linear(knotFreqs, knotGains, binFreqs)
	if err != nil {
		return Mask{}, fmt.Errorf("eqmask: %w", err)
	}

	// Half-spectrum log magnitude, mirrored with even symmetry into a full
	// fftSize-length sequence. This is real-valued data, so the mirror copies
	// magnitudes without conjugation.
	logMag := make([]float64, fftSize)
	for i, g := range gainsDB {
		m := math.Pow(10, g/20)
		if m < magnitudeFloor {
			m = magnitudeFloor
		}
		logMag[i] = math.Log(m)
	}
	for i := numBins; i < fftSize; i++ {
		logMag[i] = logMag[fftSize-i]
	}

	buf := make([]complex128, fftSize)
	for i, v := range logMag {
		buf[i] = complex(v, 0)
	}

	cepstrum, err := fft.Inverse(buf)
	if err != nil {
		return Mask{}, err
	}

	// Causal fold: DC kept, positive quefrencies doubled, the rest zeroed.
	// This converts the zero-phase magnitude envelope into a minimum-phase one.
	folded := make([]complex128, fftSize)
	folded[0] = complex(real(cepstrum[0]), 0)
	for i := 1; i < fftSize/2; i++ {
		folded[i] = complex(2*real(cepstrum[i]), 0)
	}

	logSpec, err := fft.Forward(folded)
	if err != nil {
		return Mask{}, err
	}

	// Back from the log domain: real part is log magnitude, imaginary part is
	// the induced minimum phase.
	coeffs := make([]complex128, numBins)
	for i := range coeffs {
		coeffs[i] = cmplx.Rect(math.Exp(real(logSpec[i])), imag(logSpec[i]))
	}

	return Mask{
		BinFrequencies:    binFreqs,
		Coefficients:      coeffs,
		AchievedMagnitude: spectrum.Magnitude(coeffs),
	}, nil
}

// NumBins returns the number of mask bins.
func (m Mask) NumBins() int {
	return len(m.Coefficients)
}

// Interleaved flattens the mask into the serialization layout consumed by
// firmware: 2*numBins values in increasing bin order, (real, imaginary) per
// bin. The layout is a binary-compatibility contract.
func (m Mask) Interleaved() []float64 {
	out := make([]float64, 2*len(m.Coefficients))
	for i, c := range m.Coefficients {
		out[2*i] = real(c)
		out[2*i+1] = imag(c)
	}
	return out
}

// MagnitudeDB converts linear magnitudes to decibels for display, flooring at
// 1e-10 to keep silent bins finite.
func MagnitudeDB(magnitudes []float64) []float64 {
	out := make([]float64, len(magnitudes))
	for i, m := range magnitudes {
		out[i] = 20 * math.Log10(math.Max(m, magnitudeFloor))
	}
	return out
}
