// Package iim converts continuous-time rational transfer functions into
// discrete-time IIR filter coefficients via the impulse-invariance method.
//
// The pipeline expands the analog transfer function into poles and
// residues, maps each pole p to exp(p*T) with T = 1/sampleRate, scales
// the residues by T, and recombines the result into a single
// delay-operator transfer function.
package iim

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/nrshousha/digital-signal-processing-project/dsp/partfrac"
)

// ErrInvalidSampleRate is returned for a non-positive sampling rate.
var ErrInvalidSampleRate = errors.New("iim: sample rate must be positive")

// Coefficients is a discrete-time transfer function in negative powers of
// the delay operator: B[0] + B[1]*z^-1 + ... over A[0] + A[1]*z^-1 + ...
// It is immutable once produced; all analysis packages share it read-only.
type Coefficients struct {
	B          []float64
	A          []float64
	SampleRate float64
}

// Option adjusts the conversion behavior.
type Option func(*config)

type config struct {
	scaleResidues bool
	expandOpts    []partfrac.Option
}

// WithResidueScaling controls whether residues are multiplied by the
// sampling interval T, realizing h[n] = T*h_analog(n*T). This is the
// textbook gain convention and the default; disabling it selects the
// unscaled h[n] = h_analog(n*T) variant.
func WithResidueScaling(enabled bool) Option {
	return func(c *config) {
		c.scaleResidues = enabled
	}
}

// WithExpansionOptions forwards tolerance options to the underlying
// partial-fraction expansion and reconstruction.
func WithExpansionOptions(opts ...partfrac.Option) Option {
	return func(c *config) {
		c.expandOpts = append(c.expandOpts, opts...)
	}
}

// MapPole maps a continuous-time pole to the discrete-time plane:
// exp(p*T) with T the sampling interval.
func MapPole(p complex128, t float64) complex128 {
	return cmplx.Exp(p * complex(t, 0))
}

// Transform converts the analog transfer function num/den (descending
// power coefficients) into discrete-time coefficients at the given
// sampling rate. It either succeeds completely or fails before any
// coefficients are produced.
func Transform(num, den []float64, sampleRate float64, opts ...Option) (Coefficients, error) {
	cfg := config{scaleResidues: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if sampleRate <= 0 {
		return Coefficients{}, ErrInvalidSampleRate
	}

	expansion, err := partfrac.Expand(num, den, cfg.expandOpts...)
	if err != nil {
		return Coefficients{}, fmt.Errorf("iim: analog expansion: %w", err)
	}

	t := 1 / sampleRate

	mapped := partfrac.Expansion{
		Poles:    make([]partfrac.Pole, len(expansion.Poles)),
		Residues: make([][]complex128, len(expansion.Poles)),
		Direct:   expansion.Direct,
	}

	scale := complex(1, 0)
	if cfg.scaleResidues {
		scale = complex(t, 0)
	}

	for i, p := range expansion.Poles {
		mapped.Poles[i] = partfrac.Pole{
			Value:        MapPole(p.Value, t),
			Multiplicity: p.Multiplicity,
		}

		residues := make([]complex128, len(expansion.Residues[i]))
		for k, r := range expansion.Residues[i] {
			residues[k] = r * scale
		}

		mapped.Residues[i] = residues
	}

	// The reconstruction sums terms in the delay-operator reading, so a
	// repeated pole's higher-order residues land on z^0 undelayed.
	recOpts := append(append([]partfrac.Option(nil), cfg.expandOpts...),
		partfrac.WithAlignment(partfrac.AlignAscending))

	b, a, err := partfrac.Reconstruct(mapped, recOpts...)
	if err != nil {
		return Coefficients{}, fmt.Errorf("iim: reconstruction: %w", err)
	}

	return Coefficients{B: b, A: a, SampleRate: sampleRate}, nil
}
