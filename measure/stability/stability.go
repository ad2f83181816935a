// Package stability classifies discrete-time filters by their pole
// locations relative to the unit circle.
package stability

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/nrshousha/digital-signal-processing-project/dsp/filter/iim"
	"github.com/nrshousha/digital-signal-processing-project/dsp/poly"
)

// ErrDegenerateDenominator is returned when the denominator has no roots.
var ErrDegenerateDenominator = errors.New("stability: degenerate denominator")

// Report lists the denominator roots and the stability verdict.
//
// Stable is true only when every root magnitude is strictly below one;
// a root exactly on the unit circle counts as unstable.
type Report struct {
	Roots        []complex128
	Magnitudes   []float64
	MaxMagnitude float64
	Stable       bool
}

// Analyze finds all denominator roots of the filter and classifies it.
// The result is deterministic for identical coefficients.
func Analyze(c iim.Coefficients) (Report, error) {
	roots, err := poly.Roots(poly.FromReal(c.A))
	if err != nil {
		return Report{}, fmt.Errorf("stability: denominator roots: %w",
			errors.Join(ErrDegenerateDenominator, err))
	}

	report := Report{
		Roots:      roots,
		Magnitudes: make([]float64, len(roots)),
		Stable:     true,
	}

	for i, r := range roots {
		m := cmplx.Abs(r)
		report.Magnitudes[i] = m

		if m > report.MaxMagnitude {
			report.MaxMagnitude = m
		}

		if m >= 1 {
			report.Stable = false
		}
	}

	return report, nil
}
