// Package analog designs continuous-time (Laplace-domain) filter
// prototypes as numerator/denominator coefficient sequences in descending
// powers of s. Frequencies are angular (rad/s).
package analog

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/nrshousha/digital-signal-processing-project/dsp/core"
	"github.com/nrshousha/digital-signal-processing-project/dsp/poly"
)

// ErrInvalidParams is returned for invalid design parameters.
var ErrInvalidParams = errors.New("analog: invalid parameters")

// Band selects the frequency band of a prototype.
type Band int

// Supported band types.
const (
	Lowpass Band = iota
	Highpass
	Bandpass
	Bandstop
)

// String returns the band name.
func (b Band) String() string {
	switch b {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	case Bandpass:
		return "bandpass"
	case Bandstop:
		return "bandstop"
	default:
		return fmt.Sprintf("Band(%d)", int(b))
	}
}

// Butterworth designs an analog Butterworth prototype of the given order.
//
// Lowpass and highpass take one cutoff frequency; bandpass and bandstop
// take the lower and upper edge frequencies, in that order. Band
// transforms double the order of the returned transfer function.
func Butterworth(order int, band Band, freqs ...float64) (num, den []float64, err error) {
	if order <= 0 {
		return nil, nil, fmt.Errorf("analog: order must be positive, got %d: %w", order, ErrInvalidParams)
	}

	switch band {
	case Lowpass, Highpass:
		if len(freqs) != 1 || freqs[0] <= 0 {
			return nil, nil, fmt.Errorf("analog: %s needs one positive cutoff: %w", band, ErrInvalidParams)
		}
	case Bandpass, Bandstop:
		if len(freqs) != 2 || freqs[0] <= 0 || freqs[1] <= freqs[0] {
			return nil, nil, fmt.Errorf("analog: %s needs ascending edge frequencies: %w", band, ErrInvalidParams)
		}
	default:
		return nil, nil, fmt.Errorf("analog: unknown band %d: %w", int(band), ErrInvalidParams)
	}

	proto := butterworthPoles(order)

	switch band {
	case Lowpass:
		return lowpassFrom(proto, freqs[0])
	case Highpass:
		return highpassFrom(proto, freqs[0])
	case Bandpass:
		return bandpassFrom(proto, freqs[0], freqs[1])
	default:
		return bandstopFrom(proto, freqs[0], freqs[1])
	}
}

// butterworthPoles returns the normalized (unit cutoff) Butterworth poles,
// equally spaced on the left half of the unit circle.
func butterworthPoles(order int) []complex128 {
	poles := make([]complex128, order)
	for k := range order {
		theta := math.Pi * float64(2*k+order+1) / (2 * float64(order))
		poles[k] = complex(math.Cos(theta), math.Sin(theta))
	}

	return poles
}

func lowpassFrom(proto []complex128, cutoff float64) (num, den []float64, err error) {
	poles := make([]complex128, len(proto))
	for i, p := range proto {
		poles[i] = p * complex(cutoff, 0)
	}

	den, err = realMonic(poles)
	if err != nil {
		return nil, nil, err
	}

	return []float64{math.Pow(cutoff, float64(len(proto)))}, den, nil
}

func highpassFrom(proto []complex128, cutoff float64) (num, den []float64, err error) {
	poles := make([]complex128, len(proto))
	for i, p := range proto {
		poles[i] = complex(cutoff, 0) / p
	}

	den, err = realMonic(poles)
	if err != nil {
		return nil, nil, err
	}

	num = make([]float64, len(proto)+1)
	num[0] = 1

	return num, den, nil
}

func bandpassFrom(proto []complex128, lower, upper float64) (num, den []float64, err error) {
	bw := upper - lower
	w0 := math.Sqrt(lower * upper)

	poles := make([]complex128, 0, 2*len(proto))
	for _, p := range proto {
		s := p * complex(bw/2, 0)
		d := cmplx.Sqrt(s*s - complex(w0*w0, 0))
		poles = append(poles, s+d, s-d)
	}

	den, err = realMonic(poles)
	if err != nil {
		return nil, nil, err
	}

	num = make([]float64, len(proto)+1)
	num[0] = math.Pow(bw, float64(len(proto)))

	return num, den, nil
}

func bandstopFrom(proto []complex128, lower, upper float64) (num, den []float64, err error) {
	bw := upper - lower
	w0 := math.Sqrt(lower * upper)

	poles := make([]complex128, 0, 2*len(proto))
	for _, p := range proto {
		q := complex(bw/2, 0) / p
		d := cmplx.Sqrt(q*q - complex(w0*w0, 0))
		poles = append(poles, q+d, q-d)
	}

	den, err = realMonic(poles)
	if err != nil {
		return nil, nil, err
	}

	// Zeros sit at +/- j*w0, each with the prototype's multiplicity.
	quad := []complex128{1, 0, complex(w0*w0, 0)}
	numC := []complex128{1}

	for range proto {
		numC = poly.Mul(numC, quad)
	}

	num, ok := core.RealParts(numC, 0)
	if !ok {
		return nil, nil, fmt.Errorf("analog: bandstop numerator: %w", ErrInvalidParams)
	}

	return num, den, nil
}

// realMonic expands the monic polynomial with the given roots and checks
// that conjugate symmetry yields real coefficients.
func realMonic(roots []complex128) ([]float64, error) {
	c := []complex128{1}
	for _, r := range roots {
		c = poly.Mul(c, []complex128{1, -r})
	}

	out, ok := core.RealParts(c, 0)
	if !ok {
		return nil, fmt.Errorf("analog: pole set is not conjugate-symmetric: %w", ErrInvalidParams)
	}

	return out, nil
}
