package stability_test

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/nrshousha/digital-signal-processing-project/dsp/filter/design/analog"
	"github.com/nrshousha/digital-signal-processing-project/dsp/filter/iim"
	"github.com/nrshousha/digital-signal-processing-project/internal/polyroot"
	"github.com/nrshousha/digital-signal-processing-project/internal/testutil"
	"github.com/nrshousha/digital-signal-processing-project/measure/stability"
)

func TestAnalyzeStableFirstOrder(t *testing.T) {
	c := iim.Coefficients{B: []float64{1}, A: []float64{1, -0.5}, SampleRate: 8000}

	report, err := stability.Analyze(c)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if !report.Stable {
		t.Fatal("expected a stable verdict")
	}

	if len(report.Roots) != 1 {
		t.Fatalf("roots = %d, want 1", len(report.Roots))
	}

	testutil.RequireNearlyEqual(t, report.MaxMagnitude, 0.5, 1e-12)
}

func TestAnalyzeUnstableRealPoles(t *testing.T) {
	// z^2 - 5z + 6 = (z-2)(z-3): both poles outside the unit circle.
	c := iim.Coefficients{B: []float64{1}, A: []float64{1, -5, 6}, SampleRate: 8000}

	report, err := stability.Analyze(c)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if report.Stable {
		t.Fatal("expected an unstable verdict")
	}

	testutil.RequireNearlyEqual(t, report.MaxMagnitude, 3, 1e-9)

	for _, m := range report.Magnitudes {
		if m <= 1 {
			t.Fatalf("magnitude %v inside the unit circle", m)
		}
	}
}

func TestAnalyzeBoundaryPoleUnstable(t *testing.T) {
	// A pole exactly on the unit circle is not stable.
	c := iim.Coefficients{B: []float64{1}, A: []float64{1, -1}, SampleRate: 8000}

	report, err := stability.Analyze(c)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if report.Stable {
		t.Fatal("boundary pole classified as stable")
	}

	testutil.RequireNearlyEqual(t, report.MaxMagnitude, 1, 1e-12)
}

func TestAnalyzeConvertedButterworth(t *testing.T) {
	num, den, err := analog.Butterworth(2, analog.Lowpass, 2*math.Pi*3000)
	if err != nil {
		t.Fatalf("Butterworth: %v", err)
	}

	c, err := iim.Transform(num, den, 20000)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}

	report, err := stability.Analyze(c)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if !report.Stable {
		t.Fatalf("converted lowpass unstable, max |z| = %v", report.MaxMagnitude)
	}

	if len(report.Roots) != 2 {
		t.Fatalf("roots = %d, want 2", len(report.Roots))
	}

	// The poles form a conjugate pair sharing one magnitude.
	testutil.RequireNearlyEqual(t, report.Magnitudes[0], report.Magnitudes[1], 1e-9)

	sum := report.Roots[0] + report.Roots[1]
	testutil.RequireNearlyEqual(t, imag(sum), 0, 1e-9)

	// |z| = exp(Re(p)/fs) for an impulse-invariant pole pair.
	wantMag := math.Exp(-2 * math.Pi * 3000 / math.Sqrt2 / 20000)
	testutil.RequireNearlyEqual(t, report.MaxMagnitude, wantMag, 1e-9)
}

func TestAnalyzeDegenerateDenominator(t *testing.T) {
	for _, a := range [][]float64{nil, {}, {4}} {
		c := iim.Coefficients{B: []float64{1}, A: a, SampleRate: 8000}

		_, err := stability.Analyze(c)
		if !errors.Is(err, stability.ErrDegenerateDenominator) {
			t.Fatalf("a=%v: err = %v, want ErrDegenerateDenominator", a, err)
		}

		// The root solver's cause stays inspectable through the wrap.
		if !errors.Is(err, polyroot.ErrDegeneratePolynomial) {
			t.Fatalf("a=%v: err = %v does not expose the root-finding cause", a, err)
		}
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	c := iim.Coefficients{
		B:          []float64{0, 0.020198, 0},
		A:          []float64{1, -1.788622, 0.808858},
		SampleRate: 20000,
	}

	first, err := stability.Analyze(c)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	for range 10 {
		again, err := stability.Analyze(c)
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}

		if len(again.Roots) != len(first.Roots) {
			t.Fatalf("root count changed: %d vs %d", len(again.Roots), len(first.Roots))
		}

		for i := range again.Roots {
			if cmplx.Abs(again.Roots[i]-first.Roots[i]) != 0 {
				t.Fatalf("root %d changed between runs", i)
			}
		}
	}
}
