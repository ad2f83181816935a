// Package freqz evaluates the frequency response of discrete-time filter
// coefficients along the upper half of the unit circle.
package freqz

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/nrshousha/digital-signal-processing-project/dsp/core"
	"github.com/nrshousha/digital-signal-processing-project/dsp/filter/iim"
)

// Errors returned by response evaluation.
var (
	ErrInvalidPoints     = errors.New("freqz: point count must be positive")
	ErrDivisionByZero    = errors.New("freqz: evaluation point coincides with a pole")
	ErrNoDenominator     = errors.New("freqz: empty denominator")
	ErrInvalidSampleRate = errors.New("freqz: sample rate must be positive")
)

// dbFloor is added to linear magnitudes before the logarithm so exact
// zeros map to a large negative dB value instead of -Inf.
const dbFloor = 1e-12

// Response holds parallel frequency, magnitude and phase sequences.
//
// Frequencies span [0, sampleRate/2) with the endpoint excluded; phase is
// unwrapped so consecutive samples carry no artificial 2*pi jumps.
type Response struct {
	Frequencies []float64 // Hz
	MagnitudeDB []float64
	PhaseRad    []float64
}

// Evaluate computes H(z) = B(z)/A(z) at points equally spaced samples
// z = exp(j*2*pi*f/fs) for f in [0, fs/2).
//
// When twice the point count is a power of two the evaluation runs
// through an FFT of the zero-padded coefficient sequences; otherwise each
// point is a Horner evaluation followed by a complex division.
func Evaluate(c iim.Coefficients, points int) (Response, error) {
	if points <= 0 {
		return Response{}, ErrInvalidPoints
	}

	if len(c.A) == 0 {
		return Response{}, ErrNoDenominator
	}

	if c.SampleRate <= 0 {
		return Response{}, ErrInvalidSampleRate
	}

	h, err := transferSamples(c, points)
	if err != nil {
		return Response{}, err
	}

	re := make([]float64, points)
	im := make([]float64, points)

	for i, v := range h {
		re[i] = real(v)
		im[i] = imag(v)
	}

	mag := make([]float64, points)
	vecmath.Magnitude(mag, re, im)

	resp := Response{
		Frequencies: make([]float64, points),
		MagnitudeDB: make([]float64, points),
		PhaseRad:    make([]float64, points),
	}

	step := c.SampleRate / float64(2*points)
	for i := range points {
		resp.Frequencies[i] = float64(i) * step
		resp.MagnitudeDB[i] = core.LinearToDB(mag[i] + dbFloor)
		resp.PhaseRad[i] = math.Atan2(im[i], re[i])
	}

	unwrap(resp.PhaseRad)

	return resp, nil
}

// transferSamples returns H at the evaluation grid, preferring the FFT
// path when the full-circle grid size is a power of two.
func transferSamples(c iim.Coefficients, points int) ([]complex128, error) {
	full := 2 * points
	if isPowerOfTwo(full) && full >= len(c.B) && full >= len(c.A) {
		h, err := fftSamples(c, points)
		if err == nil {
			return h, nil
		}

		if errors.Is(err, ErrDivisionByZero) {
			return nil, err
		}
		// Plan creation failed; fall through to the direct path.
	}

	return hornerSamples(c, points)
}

func fftSamples(c iim.Coefficients, points int) ([]complex128, error) {
	full := 2 * points

	plan, err := algofft.NewPlan64(full)
	if err != nil {
		return nil, fmt.Errorf("freqz: FFT plan: %w", err)
	}

	bf, err := paddedSpectrum(plan, c.B, full)
	if err != nil {
		return nil, err
	}

	af, err := paddedSpectrum(plan, c.A, full)
	if err != nil {
		return nil, err
	}

	h := make([]complex128, points)
	for i := range points {
		if af[i] == 0 {
			return nil, ErrDivisionByZero
		}

		h[i] = bf[i] / af[i]
	}

	return h, nil
}

func paddedSpectrum(plan *algofft.Plan[complex128], coeff []float64, size int) ([]complex128, error) {
	in := make([]complex128, size)
	for i, v := range coeff {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("freqz: forward FFT: %w", err)
	}

	return out, nil
}

func hornerSamples(c iim.Coefficients, points int) ([]complex128, error) {
	h := make([]complex128, points)

	for i := range points {
		omega := math.Pi * float64(i) / float64(points)
		// z^-1 on the evaluation grid.
		w := complex(math.Cos(omega), -math.Sin(omega))

		den := evalAscending(c.A, w)
		if den == 0 {
			return nil, ErrDivisionByZero
		}

		h[i] = evalAscending(c.B, w) / den
	}

	return h, nil
}

// evalAscending evaluates coeff[0] + coeff[1]*w + ... by Horner's method.
func evalAscending(coeff []float64, w complex128) complex128 {
	var v complex128
	for i := len(coeff) - 1; i >= 0; i-- {
		v = v*w + complex(coeff[i], 0)
	}

	return v
}

// unwrap removes artificial 2*pi jumps from a phase sequence in place.
func unwrap(phase []float64) {
	for i := 1; i < len(phase); i++ {
		d := phase[i] - phase[i-1]
		for d > math.Pi {
			d -= 2 * math.Pi
		}

		for d < -math.Pi {
			d += 2 * math.Pi
		}

		phase[i] = phase[i-1] + d
	}
}

func isPowerOfTwo(n int) bool {
	return n > 0 && bits.OnesCount(uint(n)) == 1
}
