// Package partfrac decomposes rational functions into poles, residues and
// a direct term, and recombines them back into a single rational function.
//
// Expand works on transfer functions given as coefficient sequences in
// descending power order. Reconstruct supports two readings of the
// coefficient lists: the default descending-power reading is the exact
// inverse of Expand, while the ascending delay-operator reading treats
// each pole factor as (1 - p*z^-1). Products are identical in both
// readings, since (s - p) descending and (1 - p*z^-1) ascending share
// the same list [1, -p]; sums of different-length terms are not, which
// is what the Alignment option controls.
package partfrac

import (
	"errors"
	"fmt"

	"github.com/nrshousha/digital-signal-processing-project/dsp/core"
	"github.com/nrshousha/digital-signal-processing-project/dsp/poly"
	"github.com/nrshousha/digital-signal-processing-project/internal/polyroot"
)

// Errors returned by expansion and reconstruction.
var (
	ErrDegenerateInput = errors.New("partfrac: denominator has no poles to expand")
	ErrNonRealResult   = errors.New("partfrac: reconstruction produced non-real coefficients")
)

// Pole is a denominator root together with its multiplicity.
type Pole struct {
	Value        complex128
	Multiplicity int
}

// Expansion is the partial-fraction form of a rational function.
//
// Residues[i] holds Multiplicity residues for Poles[i]; entry k-1 weighs
// the k-th power of that pole's factor. Direct holds the polynomial
// quotient of an improper ratio in descending order (constant term last);
// it is empty for strictly proper inputs.
type Expansion struct {
	Poles    []Pole
	Residues [][]complex128
	Direct   []complex128
}

// Alignment selects which reading of the coefficient lists Reconstruct
// uses when summing numerator terms of different lengths.
type Alignment int

const (
	// AlignDescending reads lists as descending powers (the s-domain
	// convention) and aligns terms at their trailing constant
	// coefficient. This makes Reconstruct the exact inverse of Expand.
	AlignDescending Alignment = iota

	// AlignAscending reads lists as ascending powers of the delay
	// operator z^-1 and aligns terms at their leading z^0 coefficient,
	// so a residue of order k contributes r/(1 - p*z^-1)^k with no
	// extra delay.
	AlignAscending
)

// Option adjusts expansion and reconstruction behavior.
type Option func(*config)

type config struct {
	rootTol float64
	imagTol float64
	align   Alignment
}

func defaultConfig() config {
	return config{
		rootTol: polyroot.DefaultClusterTolerance,
		imagTol: core.DefaultImagTolerance,
	}
}

// WithRootTolerance sets the relative separation below which denominator
// roots are merged into one repeated pole.
func WithRootTolerance(tol float64) Option {
	return func(c *config) {
		if tol > 0 {
			c.rootTol = tol
		}
	}
}

// WithImagTolerance sets the relative tolerance for discarding residual
// imaginary parts of reconstructed coefficients.
func WithImagTolerance(tol float64) Option {
	return func(c *config) {
		if tol > 0 {
			c.imagTol = tol
		}
	}
}

// WithAlignment selects the term alignment Reconstruct uses.
func WithAlignment(a Alignment) Option {
	return func(c *config) {
		c.align = a
	}
}

// Expand decomposes num/den into poles, residues and a direct term such
// that Reconstruct reproduces the input up to floating-point tolerance.
//
// For a pole of multiplicity one the residue is the deflated ratio
// evaluated at the pole. For multiplicity m, the m residues come from
// successive derivatives of the deflated ratio, each scaled by the
// inverse factorial of the derivative order.
func Expand(num, den []float64, opts ...Option) (Expansion, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	d := poly.Trim(poly.FromReal(den), 0)
	if poly.Degree(d) < 1 {
		return Expansion{}, ErrDegenerateInput
	}

	n := poly.FromReal(num)

	var direct []complex128

	if poly.Degree(n) >= poly.Degree(d) {
		quot, rem, err := poly.Div(n, d)
		if err != nil {
			return Expansion{}, fmt.Errorf("partfrac: direct term extraction: %w", err)
		}

		direct = quot
		n = rem
	}

	roots, err := poly.Roots(d)
	if err != nil {
		return Expansion{}, fmt.Errorf("partfrac: denominator roots: %w", err)
	}

	values, mult := polyroot.Cluster(roots, cfg.rootTol)

	out := Expansion{
		Poles:    make([]Pole, len(values)),
		Residues: make([][]complex128, len(values)),
		Direct:   direct,
	}

	for i, p := range values {
		m := mult[i]
		out.Poles[i] = Pole{Value: p, Multiplicity: m}

		deflated, err := deflate(d, p, m)
		if err != nil {
			return Expansion{}, err
		}

		residues, err := residuesAt(n, deflated, p, m)
		if err != nil {
			return Expansion{}, err
		}

		out.Residues[i] = residues
	}

	return out, nil
}

// deflate divides den by (x - p) m times, discarding the near-zero
// remainders left by the numeric root.
func deflate(den []complex128, p complex128, m int) ([]complex128, error) {
	factor := []complex128{1, -p}
	out := den

	for range m {
		quot, _, err := poly.Div(out, factor)
		if err != nil {
			return nil, fmt.Errorf("partfrac: deflating pole %v: %w", p, err)
		}

		out = quot
	}

	return out, nil
}

// residuesAt computes the residues of num/deflated around a pole of
// multiplicity m. The k-th entry (power k = index+1) is the derivative of
// order m-k of the ratio at p, divided by (m-k)!.
func residuesAt(num, deflated []complex128, p complex128, m int) ([]complex128, error) {
	residues := make([]complex128, m)

	gn, gd := num, deflated
	fact := 1.0

	for order := range m {
		if order > 0 {
			fact *= float64(order)
			gn, gd = ratioDerivative(gn, gd)
		}

		dv := poly.Eval(gd, p)
		if dv == 0 {
			return nil, fmt.Errorf("partfrac: residue at pole %v: %w", p, ErrDegenerateInput)
		}

		residues[m-1-order] = poly.Eval(gn, p) / dv / complex(fact, 0)
	}

	return residues, nil
}

// ratioDerivative returns the numerator and denominator of d/dx (gn/gd).
func ratioDerivative(gn, gd []complex128) (num, den []complex128) {
	num = poly.Add(poly.Mul(poly.Derivative(gn), gd), poly.Scale(poly.Mul(gn, poly.Derivative(gd)), -1))
	den = poly.Mul(gd, gd)

	return num, den
}

// Reconstruct recombines an expansion into a single rational function.
//
// The denominator is the product of each pole's factor raised to its
// multiplicity. Each residue of power k contributes the residue times the
// denominator with that factor's power reduced by k; the direct term
// contributes its product with the full denominator. Terms of different
// length are summed under the configured Alignment. Conjugate pole pairs
// cancel algebraically, so the summed coefficients must be real within
// tolerance; a larger imaginary residue reports ErrNonRealResult.
func Reconstruct(exp Expansion, opts ...Option) (num, den []float64, err error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if len(exp.Poles) == 0 {
		return nil, nil, ErrDegenerateInput
	}

	factors := make([][]complex128, len(exp.Poles))
	denC := []complex128{1}

	for i, p := range exp.Poles {
		factors[i] = []complex128{1, -p.Value}
		for range p.Multiplicity {
			denC = poly.Mul(denC, factors[i])
		}
	}

	numC := []complex128{0}

	for i, p := range exp.Poles {
		if len(exp.Residues[i]) != p.Multiplicity {
			return nil, nil, fmt.Errorf("partfrac: pole %v: %d residues for multiplicity %d: %w",
				p.Value, len(exp.Residues[i]), p.Multiplicity, ErrDegenerateInput)
		}

		for k, r := range exp.Residues[i] {
			// Complementary product: every other pole at full power,
			// this pole reduced by k+1.
			term := []complex128{r}
			for j, q := range exp.Poles {
				reps := q.Multiplicity
				if j == i {
					reps -= k + 1
				}

				for range reps {
					term = poly.Mul(term, factors[j])
				}
			}

			numC = addAligned(numC, term, cfg.align)
		}
	}

	if len(exp.Direct) > 0 {
		numC = addAligned(numC, poly.Mul(exp.Direct, denC), cfg.align)
	}

	num, ok := core.RealParts(numC, cfg.imagTol)
	if !ok {
		return nil, nil, ErrNonRealResult
	}

	den, ok = core.RealParts(denC, cfg.imagTol)
	if !ok {
		return nil, nil, ErrNonRealResult
	}

	return num, den, nil
}

// addAligned sums two coefficient lists under the selected reading:
// constant-term alignment for descending powers, leading-term alignment
// for ascending powers of the delay operator.
func addAligned(a, b []complex128, align Alignment) []complex128 {
	if align == AlignDescending {
		return poly.Add(a, b)
	}

	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	out := make([]complex128, n)
	copy(out, a)

	for i, c := range b {
		out[i] += c
	}

	return out
}
