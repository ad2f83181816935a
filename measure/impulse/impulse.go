// Package impulse simulates the impulse response of discrete-time filter
// coefficients.
package impulse

import (
	"errors"
	"fmt"

	"github.com/nrshousha/digital-signal-processing-project/dsp/filter/directform"
	"github.com/nrshousha/digital-signal-processing-project/dsp/filter/iim"
)

// ErrInvalidLength is returned for a non-positive response length.
var ErrInvalidLength = errors.New("impulse: length must be positive")

// Response runs the filter's difference equation against a unit sample
// (1 at index 0, 0 elsewhere) from zero initial state and returns the
// first length output samples.
func Response(c iim.Coefficients, length int) ([]float64, error) {
	if length <= 0 {
		return nil, ErrInvalidLength
	}

	f, err := directform.New(c.B, c.A)
	if err != nil {
		return nil, fmt.Errorf("impulse: %w", err)
	}

	out := make([]float64, length)
	out[0] = 1

	f.ProcessBlock(out)

	return out, nil
}

// TimeAxis returns the sample instants in seconds for a response of the
// given length at the filter's sampling rate.
func TimeAxis(c iim.Coefficients, length int) []float64 {
	if length <= 0 || c.SampleRate <= 0 {
		return nil
	}

	t := make([]float64, length)
	for i := range t {
		t[i] = float64(i) / c.SampleRate
	}

	return t
}
