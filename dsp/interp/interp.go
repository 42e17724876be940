package interp

import (
	"fmt"
	"sort"
)

// Linear resamples the piecewise-linear curve defined by the knots (x, y) at
// each point of queryX.
//
// Query points at or below x[0] return y[0]; points at or above x[len(x)-1]
// return y[len(y)-1]. The curve is never extrapolated beyond the given range.
//
// x must be sorted ascending; this is a documented precondition and is not
// validated, so the result is undefined for unsorted knots. Duplicate
// abscissae yield the left knot's value.
func Linear(x, y, queryX []float64) ([]float64, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, fmt.Errorf("interp: x and y must be non-empty")
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("interp: x/y length mismatch: %d != %d", len(x), len(y))
	}

	out := make([]float64, len(queryX))
	for i, q := range queryX {
		switch {
		case q <= x[0]:
			out[i] = y[0]
		case q >= x[len(x)-1]:
			out[i] = y[len(y)-1]
		default:
			j := sort.SearchFloat64s(x, q)
			x0, x1 := x[j-1], x[j]
			if x1 == x0 {
				out[i] = y[j-1]
				continue
			}
			t := (q - x0) / (x1 - x0)
			out[i] = y[j-1] + t*(y[j]-y[j-1])
		}
	}

	return out, nil
}
