// Package poly implements dense univariate polynomial arithmetic over
// complex coefficients.
//
// Coefficients are stored in descending power order, matching the usual
// transfer-function convention: c[0]*x^n + c[1]*x^(n-1) + ... + c[n].
// All operations return new slices and never mutate their inputs.
package poly

import (
	"errors"
	"math/cmplx"

	"github.com/nrshousha/digital-signal-processing-project/internal/polyroot"
)

// ErrDivisionByZeroPoly is returned when dividing by a zero polynomial.
var ErrDivisionByZeroPoly = errors.New("poly: division by zero polynomial")

// FromReal converts real coefficients to complex ones.
func FromReal(coeff []float64) []complex128 {
	out := make([]complex128, len(coeff))
	for i, c := range coeff {
		out[i] = complex(c, 0)
	}

	return out
}

// Degree returns the degree of the polynomial, ignoring exact leading
// zeros. The zero polynomial has degree -1.
func Degree(coeff []complex128) int {
	for i, c := range coeff {
		if c != 0 {
			return len(coeff) - 1 - i
		}
	}

	return -1
}

// Eval evaluates the polynomial at x using Horner's method.
func Eval(coeff []complex128, x complex128) complex128 {
	if len(coeff) == 0 {
		return 0
	}

	v := coeff[0]
	for i := 1; i < len(coeff); i++ {
		v = v*x + coeff[i]
	}

	return v
}

// Mul multiplies two polynomials by convolving their coefficient
// sequences. Either argument being empty yields an empty product.
func Mul(a, b []complex128) []complex128 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	out := make([]complex128, len(a)+len(b)-1)
	for i, ca := range a {
		if ca == 0 {
			continue
		}

		for j, cb := range b {
			out[i+j] += ca * cb
		}
	}

	return out
}

// Add sums two polynomials, aligning their constant terms.
func Add(a, b []complex128) []complex128 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	out := make([]complex128, n)
	copy(out[n-len(a):], a)

	off := n - len(b)
	for i, c := range b {
		out[off+i] += c
	}

	return out
}

// Scale multiplies every coefficient by k.
func Scale(coeff []complex128, k complex128) []complex128 {
	out := make([]complex128, len(coeff))
	for i, c := range coeff {
		out[i] = c * k
	}

	return out
}

// Derivative returns the formal derivative of the polynomial.
func Derivative(coeff []complex128) []complex128 {
	n := len(coeff) - 1
	if n < 1 {
		return []complex128{0}
	}

	out := make([]complex128, n)
	for i := range n {
		out[i] = coeff[i] * complex(float64(n-i), 0)
	}

	return out
}

// Div performs polynomial long division, returning quotient and remainder
// such that num = quot*den + rem with Degree(rem) < Degree(den).
func Div(num, den []complex128) (quot, rem []complex128, err error) {
	dn := Degree(den)
	if dn < 0 {
		return nil, nil, ErrDivisionByZeroPoly
	}

	den = den[len(den)-dn-1:]

	nn := Degree(num)
	if nn < dn {
		rem = make([]complex128, len(num))
		copy(rem, num)

		return []complex128{}, rem, nil
	}

	work := make([]complex128, len(num))
	copy(work, num)
	work = work[len(work)-nn-1:]

	quot = make([]complex128, nn-dn+1)
	lead := den[0]

	for i := 0; i <= nn-dn; i++ {
		q := work[i] / lead
		quot[i] = q

		for j, d := range den {
			work[i+j] -= q * d
		}
	}

	rem = work[len(quot):]
	if len(rem) == 0 {
		rem = []complex128{0}
	}

	return quot, rem, nil
}

// Trim strips leading coefficients whose magnitude is at most eps relative
// to the largest coefficient magnitude. The zero polynomial trims to an
// empty slice.
func Trim(coeff []complex128, eps float64) []complex128 {
	scale := 0.0
	for _, c := range coeff {
		if m := cmplx.Abs(c); m > scale {
			scale = m
		}
	}

	i := 0
	for i < len(coeff) && cmplx.Abs(coeff[i]) <= eps*scale {
		i++
	}

	out := make([]complex128, len(coeff)-i)
	copy(out, coeff[i:])

	return out
}

// Roots finds all roots of the polynomial.
func Roots(coeff []complex128) ([]complex128, error) {
	return polyroot.Roots(coeff)
}
