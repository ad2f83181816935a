package analog

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/nrshousha/digital-signal-processing-project/dsp/poly"
	"github.com/nrshousha/digital-signal-processing-project/internal/testutil"
)

// gainAt evaluates |H(j*w)| for the transfer function num/den.
func gainAt(t *testing.T, num, den []float64, w float64) float64 {
	t.Helper()

	s := complex(0, w)
	d := poly.Eval(poly.FromReal(den), s)

	if d == 0 {
		t.Fatalf("denominator vanishes at w=%v", w)
	}

	return cmplx.Abs(poly.Eval(poly.FromReal(num), s) / d)
}

func TestButterworthLowpassNormalized(t *testing.T) {
	num, den, err := Butterworth(2, Lowpass, 1)
	if err != nil {
		t.Fatalf("Butterworth: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, num, []float64{1}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, den, []float64{1, math.Sqrt2, 1}, 1e-12)
}

func TestButterworthLowpassCutoffGain(t *testing.T) {
	const wc = 2 * math.Pi * 3000

	for order := 1; order <= 5; order++ {
		num, den, err := Butterworth(order, Lowpass, wc)
		if err != nil {
			t.Fatalf("order %d: %v", order, err)
		}

		if len(den) != order+1 {
			t.Fatalf("order %d: denominator length %d", order, len(den))
		}

		testutil.RequireNearlyEqual(t, gainAt(t, num, den, 0), 1, 1e-9)
		testutil.RequireNearlyEqual(t, gainAt(t, num, den, wc), 1/math.Sqrt2, 1e-9)
	}
}

func TestButterworthLowpassRolloff(t *testing.T) {
	const wc = 1000.0

	num, den, err := Butterworth(3, Lowpass, wc)
	if err != nil {
		t.Fatalf("Butterworth: %v", err)
	}

	// Third order: -18 dB per octave beyond cutoff.
	g1 := gainAt(t, num, den, 4*wc)
	g2 := gainAt(t, num, den, 8*wc)

	ratioDB := 20 * math.Log10(g1/g2)
	testutil.RequireNearlyEqual(t, ratioDB, 18, 0.5)
}

func TestButterworthHighpass(t *testing.T) {
	const wc = 500.0

	for order := 1; order <= 4; order++ {
		num, den, err := Butterworth(order, Highpass, wc)
		if err != nil {
			t.Fatalf("order %d: %v", order, err)
		}

		if num[0] != 1 || den[0] != 1 {
			t.Fatalf("order %d: expected monic numerator and denominator", order)
		}

		testutil.RequireNearlyEqual(t, gainAt(t, num, den, wc), 1/math.Sqrt2, 1e-9)
		testutil.RequireNearlyEqual(t, gainAt(t, num, den, 100*wc), 1, 1e-3)

		if g := gainAt(t, num, den, wc/100); g > math.Pow(0.011, float64(order)) {
			t.Fatalf("order %d: stopband gain %v too high", order, g)
		}
	}
}

func TestButterworthBandpass(t *testing.T) {
	w1 := 2 * math.Pi * 2000
	w2 := 2 * math.Pi * 4000
	w0 := math.Sqrt(w1 * w2)

	num, den, err := Butterworth(2, Bandpass, w1, w2)
	if err != nil {
		t.Fatalf("Butterworth: %v", err)
	}

	if len(den) != 5 || len(num) != 3 {
		t.Fatalf("lengths = %d/%d, want 3/5 for a doubled order", len(num), len(den))
	}

	testutil.RequireNearlyEqual(t, gainAt(t, num, den, w0), 1, 1e-9)
	testutil.RequireNearlyEqual(t, gainAt(t, num, den, w1), 1/math.Sqrt2, 1e-9)
	testutil.RequireNearlyEqual(t, gainAt(t, num, den, w2), 1/math.Sqrt2, 1e-9)
}

func TestButterworthBandstop(t *testing.T) {
	const (
		w1 = 1000.0
		w2 = 2000.0
	)

	w0 := math.Sqrt(w1 * w2)

	num, den, err := Butterworth(2, Bandstop, w1, w2)
	if err != nil {
		t.Fatalf("Butterworth: %v", err)
	}

	testutil.RequireNearlyEqual(t, gainAt(t, num, den, 0), 1, 1e-9)
	testutil.RequireNearlyEqual(t, gainAt(t, num, den, w1), 1/math.Sqrt2, 1e-9)
	testutil.RequireNearlyEqual(t, gainAt(t, num, den, w2), 1/math.Sqrt2, 1e-9)

	if g := gainAt(t, num, den, w0); g > 1e-9 {
		t.Fatalf("center gain = %v, want ~0", g)
	}
}

func TestButterworthStablePoles(t *testing.T) {
	num, den, err := Butterworth(5, Lowpass, 100)
	if err != nil {
		t.Fatalf("Butterworth: %v", err)
	}

	if len(num) != 1 {
		t.Fatalf("numerator = %v, want a single gain term", num)
	}

	roots, err := poly.Roots(poly.FromReal(den))
	if err != nil {
		t.Fatalf("Roots: %v", err)
	}

	for _, r := range roots {
		if real(r) >= 0 {
			t.Fatalf("pole %v in the right half plane", r)
		}
	}
}

func TestButterworthInvalidParams(t *testing.T) {
	tests := []struct {
		name  string
		order int
		band  Band
		freqs []float64
	}{
		{name: "zero order", order: 0, band: Lowpass, freqs: []float64{1}},
		{name: "missing cutoff", order: 2, band: Lowpass, freqs: nil},
		{name: "negative cutoff", order: 2, band: Highpass, freqs: []float64{-1}},
		{name: "one bandpass edge", order: 2, band: Bandpass, freqs: []float64{100}},
		{name: "descending edges", order: 2, band: Bandpass, freqs: []float64{200, 100}},
		{name: "unknown band", order: 2, band: Band(99), freqs: []float64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Butterworth(tt.order, tt.band, tt.freqs...)
			if !errors.Is(err, ErrInvalidParams) {
				t.Fatalf("err = %v, want ErrInvalidParams", err)
			}
		})
	}
}

func TestBandString(t *testing.T) {
	if Lowpass.String() != "lowpass" || Bandstop.String() != "bandstop" {
		t.Fatal("unexpected band names")
	}
}
