// Package directform implements a general-order recursive difference
// equation in Direct Form II Transposed.
package directform

import (
	"errors"

	"github.com/nrshousha/digital-signal-processing-project/dsp/core"
)

// ErrInvalidCoefficients is returned when the denominator is empty or its
// leading coefficient is zero.
var ErrInvalidCoefficients = errors.New("directform: invalid coefficients")

// Filter runs y[n] = sum(b[i]*x[n-i]) - sum(a[j]*y[n-j]) with all
// coefficients normalized by a[0] and zero initial state.
type Filter struct {
	b     []float64
	a     []float64
	state []float64
}

// New returns a Filter for the given numerator and denominator
// coefficients (constant term first, delay-operator convention).
func New(b, a []float64) (*Filter, error) {
	if len(a) == 0 || a[0] == 0 || len(b) == 0 {
		return nil, ErrInvalidCoefficients
	}

	order := len(b)
	if len(a) > order {
		order = len(a)
	}

	f := &Filter{
		b:     make([]float64, order),
		a:     make([]float64, order),
		state: make([]float64, order-1),
	}

	for i, c := range b {
		f.b[i] = c / a[0]
	}

	for i, c := range a {
		f.a[i] = c / a[0]
	}

	return f, nil
}

// ProcessSample filters one input sample and returns the output.
func (f *Filter) ProcessSample(x float64) float64 {
	y := f.b[0] * x
	if len(f.state) > 0 {
		y += f.state[0]
	}

	for i := range f.state {
		s := f.b[i+1]*x - f.a[i+1]*y
		if i+1 < len(f.state) {
			s += f.state[i+1]
		}

		f.state[i] = s
	}

	return y
}

// ProcessBlock filters a block of samples in-place.
func (f *Filter) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// Reset clears the filter state without touching the coefficients.
func (f *Filter) Reset() {
	core.Zero(f.state)
}
