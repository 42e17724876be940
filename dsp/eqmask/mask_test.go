package eqmask

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-eqmask/dsp/fft"
)

var bassCurve = []ControlPoint{
	{FrequencyHz: 100, GainDB: 6},
	{FrequencyHz: 1000, GainDB: 0},
	{FrequencyHz: 8000, GainDB: -6},
}

func TestGenerateFlatCurve(t *testing.T) {
	points := []ControlPoint{
		{FrequencyHz: 100, GainDB: 0},
		{FrequencyHz: 1000, GainDB: 0},
		{FrequencyHz: 8000, GainDB: 0},
	}

	mask, err := Generate(points, Config{})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if mask.NumBins() != DefaultFFTSize/2+1 {
		t.Fatalf("bins: got %d, want %d", mask.NumBins(), DefaultFFTSize/2+1)
	}

	for i, m := range mask.AchievedMagnitude {
		if math.Abs(m-1) > 1e-6 {
			t.Fatalf("bin %d: magnitude %v, want ~1", i, m)
		}
	}
}

func TestGenerateBassCurveEndToEnd(t *testing.T) {
	mask, err := Generate(bassCurve, Config{SampleRate: 16000, FFTSize: 256})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	wantDC := math.Pow(10, 6.0/20)   // 1.9953
	wantNyq := math.Pow(10, -6.0/20) // 0.5012

	if got := mask.AchievedMagnitude[0]; math.Abs(got-wantDC) > 1e-4 {
		t.Fatalf("DC magnitude: got %v, want %v", got, wantDC)
	}
	if got := mask.AchievedMagnitude[mask.NumBins()-1]; math.Abs(got-wantNyq) > 1e-4 {
		t.Fatalf("Nyquist magnitude: got %v, want %v", got, wantNyq)
	}
}

func TestGenerateTracksTargetCurve(t *testing.T) {
	mask, err := Generate(bassCurve, Config{})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	knotFreqs := []float64{100, 1000, 8000}
	knotGains := []float64{6, 0, -6}

	for i, f := range mask.BinFrequencies {
		targetDB := interpolateRef(knotFreqs, knotGains, f)
		target := math.Pow(10, targetDB/20)
		if rel := math.Abs(mask.AchievedMagnitude[i]-target) / target; rel > 0.05 {
			t.Fatalf("bin %d (%.1f Hz): achieved %v, target %v (rel err %v)",
				i, f, mask.AchievedMagnitude[i], target, rel)
		}
	}
}

// interpolateRef is an independent reference for the control curve.
func interpolateRef(x, y []float64, q float64) float64 {
	if q <= x[0] {
		return y[0]
	}
	if q >= x[len(x)-1] {
		return y[len(y)-1]
	}
	for i := 1; i < len(x); i++ {
		if q <= x[i] {
			t := (q - x[i-1]) / (x[i] - x[i-1])
			return y[i-1] + t*(y[i]-y[i-1])
		}
	}
	return y[len(y)-1]
}

func TestGenerateDCAndNyquistAreReal(t *testing.T) {
	mask, err := Generate(bassCurve, Config{})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if im := imag(mask.Coefficients[0]); im != 0 {
		t.Fatalf("DC imaginary part: got %v, want 0", im)
	}
	if im := imag(mask.Coefficients[mask.NumBins()-1]); im != 0 {
		t.Fatalf("Nyquist imaginary part: got %v, want 0", im)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	first, err := Generate(bassCurve, Config{})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	for run := 0; run < 3; run++ {
		again, err := Generate(bassCurve, Config{})
		if err != nil {
			t.Fatalf("Generate error: %v", err)
		}
		for i := range first.Coefficients {
			if again.Coefficients[i] != first.Coefficients[i] {
				t.Fatalf("run %d bin %d: %v != %v (not bit-identical)",
					run, i, again.Coefficients[i], first.Coefficients[i])
			}
		}
		for i := range first.AchievedMagnitude {
			if again.AchievedMagnitude[i] != first.AchievedMagnitude[i] {
				t.Fatalf("run %d bin %d: magnitudes differ", run, i)
			}
		}
	}
}

func TestGenerateSinglePoint(t *testing.T) {
	mask, err := Generate([]ControlPoint{{FrequencyHz: 1000, GainDB: -3}}, Config{})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	want := math.Pow(10, -3.0/20)
	for i, m := range mask.AchievedMagnitude {
		if math.Abs(m-want) > 1e-6 {
			t.Fatalf("bin %d: magnitude %v, want %v", i, m, want)
		}
	}
}

func TestGenerateAchievedMatchesCoefficients(t *testing.T) {
	mask, err := Generate(bassCurve, Config{})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	for i, c := range mask.Coefficients {
		if math.Abs(mask.AchievedMagnitude[i]-cmplx.Abs(c)) > 1e-12 {
			t.Fatalf("bin %d: achieved %v != |%v|", i, mask.AchievedMagnitude[i], c)
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	if _, err := Generate(nil, Config{}); !errors.Is(err, ErrNoControlPoints) {
		t.Fatalf("empty points: got %v, want ErrNoControlPoints", err)
	}

	_, err := Generate(bassCurve, Config{FFTSize: 100})
	if !errors.Is(err, fft.ErrNotPowerOfTwo) {
		t.Fatalf("fftSize=100: got %v, want ErrNotPowerOfTwo", err)
	}
}

func TestBinFrequencies(t *testing.T) {
	freqs := BinFrequencies(16000, 256)

	if len(freqs) != 129 {
		t.Fatalf("length: got %d, want 129", len(freqs))
	}
	if freqs[0] != 0 {
		t.Fatalf("first bin: got %v, want 0", freqs[0])
	}
	if freqs[128] != 8000 {
		t.Fatalf("last bin: got %v, want 8000", freqs[128])
	}
	if math.Abs(freqs[1]-62.5) > 1e-12 {
		t.Fatalf("bin spacing: got %v, want 62.5", freqs[1])
	}
}

func TestMaskInterleaved(t *testing.T) {
	mask, err := Generate(bassCurve, Config{})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	flat := mask.Interleaved()
	if len(flat) != 2*mask.NumBins() {
		t.Fatalf("length: got %d, want %d", len(flat), 2*mask.NumBins())
	}

	for i, c := range mask.Coefficients {
		if flat[2*i] != real(c) || flat[2*i+1] != imag(c) {
			t.Fatalf("bin %d: interleaved (%v, %v) != (%v, %v)",
				i, flat[2*i], flat[2*i+1], real(c), imag(c))
		}
	}

	// Firmware contract: DC and Nyquist carry zero imaginary parts.
	if flat[1] != 0 || flat[len(flat)-1] != 0 {
		t.Fatalf("DC/Nyquist imaginary: got %v, %v, want 0, 0", flat[1], flat[len(flat)-1])
	}
}

func TestMagnitudeDB(t *testing.T) {
	out := MagnitudeDB([]float64{1, 0.5, 0})

	if math.Abs(out[0]) > 1e-12 {
		t.Fatalf("0 dB: got %v", out[0])
	}
	if math.Abs(out[1]-20*math.Log10(0.5)) > 1e-12 {
		t.Fatalf("-6 dB: got %v", out[1])
	}
	if math.Abs(out[2]-(-200)) > 1e-9 {
		t.Fatalf("floored: got %v, want -200", out[2])
	}
}
