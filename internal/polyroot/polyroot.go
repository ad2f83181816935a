// Package polyroot provides polynomial root-finding and root-clustering
// utilities shared by the partial-fraction and stability packages.
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// ErrDegeneratePolynomial is returned when a polynomial has degenerate
// coefficients (all zero, degree 0, convergence failure, etc.).
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// Roots finds all roots of a polynomial with coefficients in descending
// power order: coeff[0]*x^n + coeff[1]*x^(n-1) + ... + coeff[n].
//
// Real-coefficient polynomials are solved through the eigenvalues of the
// companion matrix; genuinely complex coefficients fall back to
// Durand-Kerner iteration. Leading zero coefficients are stripped first.
func Roots(coeff []complex128) ([]complex128, error) {
	coeff = stripLeadingZeros(coeff)
	if len(coeff) < 2 {
		return nil, ErrDegeneratePolynomial
	}

	if len(coeff) == 2 {
		return []complex128{-coeff[1] / coeff[0]}, nil
	}

	if re, ok := realCoeffs(coeff); ok {
		roots, err := companionRoots(re)
		if err == nil {
			return roots, nil
		}
	}

	return DurandKerner(coeff)
}

// companionRoots computes polynomial roots as the eigenvalues of the
// companion matrix of the monic polynomial. Coefficients are real,
// descending order, with a nonzero leading coefficient.
func companionRoots(coeff []float64) ([]complex128, error) {
	n := len(coeff) - 1
	lead := coeff[0]

	c := mat.NewDense(n, n, nil)
	for col := range n {
		c.Set(0, col, -coeff[col+1]/lead)
	}

	for row := 1; row < n; row++ {
		c.Set(row, row-1, 1)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(c, mat.EigenNone); !ok {
		return nil, ErrDegeneratePolynomial
	}

	return eig.Values(nil), nil
}

func stripLeadingZeros(coeff []complex128) []complex128 {
	i := 0
	for i < len(coeff) && coeff[i] == 0 {
		i++
	}

	return coeff[i:]
}

func realCoeffs(coeff []complex128) ([]float64, bool) {
	scale := 0.0
	for _, c := range coeff {
		if m := cmplx.Abs(c); m > scale {
			scale = m
		}
	}

	if scale == 0 {
		return nil, false
	}

	out := make([]float64, len(coeff))
	for i, c := range coeff {
		if math.Abs(imag(c)) > 1e-12*scale {
			return nil, false
		}

		out[i] = real(c)
	}

	return out, true
}

// DefaultClusterTolerance is the relative separation below which two roots
// are merged into a single repeated root.
const DefaultClusterTolerance = 1e-6

// Cluster groups near-coincident roots into distinct values with
// multiplicities. Roots closer than tol relative to the characteristic
// root magnitude are merged; each merged value is the cluster mean.
// A non-positive tol selects DefaultClusterTolerance.
func Cluster(roots []complex128, tol float64) (values []complex128, mult []int) {
	if tol <= 0 {
		tol = DefaultClusterTolerance
	}

	scale := 0.0
	for _, r := range roots {
		if m := cmplx.Abs(r); m > scale {
			scale = m
		}
	}

	if scale < 1 {
		scale = 1
	}

	used := make([]bool, len(roots))
	for i, r := range roots {
		if used[i] {
			continue
		}

		sum := r
		count := 1
		used[i] = true

		for j := i + 1; j < len(roots); j++ {
			if used[j] {
				continue
			}

			if cmplx.Abs(roots[j]-r) <= tol*scale {
				sum += roots[j]
				count++
				used[j] = true
			}
		}

		values = append(values, sum/complex(float64(count), 0))
		mult = append(mult, count)
	}

	return values, mult
}

// DurandKerner finds all roots of a polynomial using the Durand-Kerner
// (Weierstrass) simultaneous iteration method. Coefficients are in
// descending power order with a nonzero leading coefficient.
//
//nolint:cyclop
func DurandKerner(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 {
		return nil, ErrDegeneratePolynomial
	}

	lead := coeff[0]
	if lead == 0 {
		return nil, ErrDegeneratePolynomial
	}

	n := len(coeff) - 1

	norm := make([]complex128, len(coeff))
	for i := range coeff {
		norm[i] = coeff[i] / lead
	}

	radius := 0.0
	for i := 1; i <= n; i++ {
		if r := cmplx.Abs(norm[i]); r > radius {
			radius = r
		}
	}

	if radius < 1 {
		radius = 1
	}

	roots := make([]complex128, n)
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.3
		r := radius * (1 + 0.1*float64(i)/float64(n))
		roots[i] = complex(r*math.Cos(angle), r*math.Sin(angle))
	}

	const (
		maxIter = 500
		tol     = 1e-12
	)

	for range maxIter {
		maxDelta := 0.0

		for i := range n {
			den := complex(1, 0)

			for j := range n {
				if i == j {
					continue
				}

				den *= roots[i] - roots[j]
			}

			if cmplx.Abs(den) == 0 {
				roots[i] += complex(1e-10, 1e-10)
				continue
			}

			f := PolyEval(norm, roots[i])
			delta := f / den

			roots[i] -= delta
			if d := cmplx.Abs(delta); d > maxDelta {
				maxDelta = d
			}
		}

		if maxDelta < tol {
			return roots, nil
		}
	}

	maxResidual := 0.0

	for _, r := range roots {
		res := cmplx.Abs(PolyEval(norm, r))
		if res > maxResidual {
			maxResidual = res
		}
	}

	if maxResidual < 1e-6 {
		return roots, nil
	}

	return nil, ErrDegeneratePolynomial
}

// PolyEval evaluates a polynomial at x using Horner's method. Coefficients
// are in descending power order: coeff[0]*x^n + ... + coeff[n].
func PolyEval(coeff []complex128, x complex128) complex128 {
	v := coeff[0]
	for i := 1; i < len(coeff); i++ {
		v = v*x + coeff[i]
	}

	return v
}

// ConjugateTol is the relative tolerance for conjugate pair matching.
const ConjugateTol = 1e-7

// IsConjugate checks whether a and b are complex conjugates within tolerance.
func IsConjugate(a, b complex128, tol float64) bool {
	if math.Abs(real(a)-real(b)) > tol*math.Max(1, math.Abs(real(a))) {
		return false
	}

	if math.Abs(imag(a)+imag(b)) > tol*math.Max(1, math.Abs(imag(a))) {
		return false
	}

	return true
}
