// Command maskinfo generates a minimum-phase EQ mask from control points and
// prints its per-bin coefficients.
//
// Usage:
//
//	maskinfo [flags]
//
// Control points are given as comma-separated frequency:gain pairs, with
// frequency in Hz and gain in dB.
//
// Examples:
//
//	maskinfo
//	maskinfo -points 100:6,1000:0,8000:-6
//	maskinfo -rate 48000 -size 1024 -points 60:4,250:0,4000:-3 -step 32
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-dsp/dsp/spectrum"

	"github.com/cwbudde/algo-eqmask/dsp/eqmask"
)

func main() {
	var (
		rate   = flag.Float64("rate", eqmask.DefaultSampleRate, "sample rate in Hz")
		size   = flag.Int("size", eqmask.DefaultFFTSize, "FFT size (power of two)")
		points = flag.String("points", "100:6,1000:0,8000:-6", "control points as freq:gainDB,...")
		step   = flag.Int("step", 8, "print every Nth bin (1 = all bins)")
	)
	flag.Parse()

	if err := run(*rate, *size, *points, *step); err != nil {
		fmt.Fprintln(os.Stderr, "maskinfo:", err)
		os.Exit(2)
	}
}

func run(rate float64, size int, pointSpec string, step int) error {
	if step < 1 {
		step = 1
	}

	points, err := parsePoints(pointSpec)
	if err != nil {
		return err
	}

	mask, err := eqmask.Generate(points, eqmask.Config{SampleRate: rate, FFTSize: size})
	if err != nil {
		return err
	}

	fmt.Printf("Sample rate: %g Hz\n", rate)
	fmt.Printf("FFT size:    %d\n", size)
	fmt.Printf("Bins:        %d\n", mask.NumBins())
	fmt.Printf("Nyquist:     %g Hz\n", rate/2)
	fmt.Println()

	magDB := eqmask.MagnitudeDB(mask.AchievedMagnitude)
	phase := spectrum.Phase(mask.Coefficients)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Bin\tFreq (Hz)\tReal\tImag\tMagnitude\tGain (dB)\tPhase (rad)\t")
	for i := 0; i < mask.NumBins(); i += step {
		c := mask.Coefficients[i]
		fmt.Fprintf(w, "%d\t%.1f\t%.6f\t%.6f\t%.4f\t%+.2f\t%+.4f\t\n",
			i, mask.BinFrequencies[i], real(c), imag(c),
			mask.AchievedMagnitude[i], magDB[i], phase[i])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	minMag, maxMag := mask.AchievedMagnitude[0], mask.AchievedMagnitude[0]
	for _, m := range mask.AchievedMagnitude[1:] {
		if m < minMag {
			minMag = m
		}
		if m > maxMag {
			maxMag = m
		}
	}

	fmt.Println()
	fmt.Printf("Magnitude range: %.4f .. %.4f\n", minMag, maxMag)

	gd, err := spectrum.GroupDelaySeconds(spectrum.UnwrapPhase(phase), size, rate)
	if err == nil && len(gd) > 0 {
		fmt.Printf("Group delay at DC: %.3f ms\n", gd[0]*1000)
	}

	return nil
}

// parsePoints parses "freq:gain,freq:gain,..." into control points.
func parsePoints(s string) ([]eqmask.ControlPoint, error) {
	fields := strings.Split(s, ",")
	points := make([]eqmask.ControlPoint, 0, len(fields))

	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		freqStr, gainStr, ok := strings.Cut(field, ":")
		if !ok {
			return nil, fmt.Errorf("invalid control point %q: want freq:gainDB", field)
		}

		freq, err := strconv.ParseFloat(strings.TrimSpace(freqStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid frequency in %q: %w", field, err)
		}
		if freq <= 0 {
			return nil, fmt.Errorf("frequency must be positive in %q", field)
		}

		gain, err := strconv.ParseFloat(strings.TrimSpace(gainStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid gain in %q: %w", field, err)
		}

		points = append(points, eqmask.ControlPoint{FrequencyHz: freq, GainDB: gain})
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("no control points in %q", s)
	}

	return points, nil
}
