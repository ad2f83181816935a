package impulse

import (
	"errors"
	"math"
	"testing"

	"github.com/nrshousha/digital-signal-processing-project/dsp/filter/iim"
	"github.com/nrshousha/digital-signal-processing-project/internal/testutil"
)

func TestResponseGeometricDecay(t *testing.T) {
	c := iim.Coefficients{B: []float64{1}, A: []float64{1, -0.5}, SampleRate: 20000}

	h, err := Response(c, 5)
	if err != nil {
		t.Fatalf("Response: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, h, []float64{1, 0.5, 0.25, 0.125, 0.0625}, 1e-15)
}

func TestResponseMatchesRecursion(t *testing.T) {
	b := []float64{0, 0.020198, 0}
	a := []float64{1, -1.788622, 0.808858}
	c := iim.Coefficients{B: b, A: a, SampleRate: 20000}

	h, err := Response(c, 64)
	if err != nil {
		t.Fatalf("Response: %v", err)
	}

	want := make([]float64, 64)
	for n := range want {
		y := 0.0
		if n < len(b) {
			y = b[n]
		}

		for j := 1; j < len(a) && n-j >= 0; j++ {
			y -= a[j] * want[n-j]
		}

		want[n] = y
	}

	testutil.RequireSliceNearlyEqual(t, h, want, 1e-12)
}

func TestResponseDecaysForStableFilter(t *testing.T) {
	c := iim.Coefficients{B: []float64{1}, A: []float64{1, -1.788622, 0.808858}, SampleRate: 20000}

	h, err := Response(c, 200)
	if err != nil {
		t.Fatalf("Response: %v", err)
	}

	testutil.RequireFinite(t, h)

	if math.Abs(h[199]) > 1e-3 {
		t.Fatalf("h[199] = %v, expected decay toward zero", h[199])
	}
}

func TestResponseInvalidLength(t *testing.T) {
	c := iim.Coefficients{B: []float64{1}, A: []float64{1}, SampleRate: 1}

	for _, n := range []int{0, -3} {
		if _, err := Response(c, n); !errors.Is(err, ErrInvalidLength) {
			t.Fatalf("length %d: err = %v, want ErrInvalidLength", n, err)
		}
	}
}

func TestResponseInvalidCoefficients(t *testing.T) {
	c := iim.Coefficients{B: []float64{1}, A: nil, SampleRate: 1}

	if _, err := Response(c, 4); err == nil {
		t.Fatal("expected error for empty denominator")
	}
}

func TestTimeAxis(t *testing.T) {
	c := iim.Coefficients{B: []float64{1}, A: []float64{1}, SampleRate: 1000}

	ts := TimeAxis(c, 4)
	testutil.RequireSliceNearlyEqual(t, ts, []float64{0, 0.001, 0.002, 0.003}, 1e-15)

	if TimeAxis(c, 0) != nil {
		t.Fatal("expected nil for non-positive length")
	}
}
