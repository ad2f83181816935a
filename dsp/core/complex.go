package core

import (
	"math"
	"math/cmplx"
)

// DefaultImagTolerance is the relative tolerance below which a residual
// imaginary part is treated as floating-point noise and discarded.
const DefaultImagTolerance = 1e-8

// MaxImag returns the largest absolute imaginary part in values.
func MaxImag(values []complex128) float64 {
	maxIm := 0.0
	for _, v := range values {
		if im := math.Abs(imag(v)); im > maxIm {
			maxIm = im
		}
	}

	return maxIm
}

// RealParts extracts the real parts of values, discarding imaginary parts
// that are negligible relative to the largest coefficient magnitude.
//
// It returns false when any imaginary part exceeds eps (relative to the
// dominant magnitude, with an absolute floor of eps), which indicates a
// genuinely complex input rather than conjugate-cancellation round-off.
func RealParts(values []complex128, eps float64) ([]float64, bool) {
	if eps <= 0 {
		eps = DefaultImagTolerance
	}

	scale := 0.0
	for _, v := range values {
		if m := cmplx.Abs(v); m > scale {
			scale = m
		}
	}

	if scale < 1 {
		scale = 1
	}

	out := make([]float64, len(values))
	for i, v := range values {
		if math.Abs(imag(v)) > eps*scale {
			return nil, false
		}

		out[i] = real(v)
	}

	return out, true
}

// NearlyEqualComplex reports whether a and b are equal within eps,
// comparing real and imaginary parts independently.
func NearlyEqualComplex(a, b complex128, eps float64) bool {
	return NearlyEqual(real(a), real(b), eps) && NearlyEqual(imag(a), imag(b), eps)
}
