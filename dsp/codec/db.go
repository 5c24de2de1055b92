package codec

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

// DefaultAmin is the default amplitude floor of [AmplitudeToDB]. It suits
// single precision input; use a smaller floor for float64 data.
const DefaultAmin = 1e-7

// AmplitudeToDB maps amplitudes to decibels: 10·log10(max(x, amin)/ref).
// ref is the amplitude mapped to 0 dB and must be finite and > 0.
func AmplitudeToDB(x []float64, ref, amin float64) ([]float64, error) {
	if !core.IsFinitePositive(amin) {
		return nil, fmt.Errorf("codec: amin must be finite and > 0: %v: %w", amin, core.ErrInvalidConfiguration)
	}

	if !core.IsFinitePositive(ref) {
		return nil, fmt.Errorf("codec: ref must be finite and > 0: %v: %w", ref, core.ErrInvalidConfiguration)
	}

	out := make([]float64, len(x))
	logRef := mathLog10(ref)

	for i, v := range x {
		// max also maps NaN to amin.
		if !(v > amin) {
			v = amin
		}

		out[i] = 10 * (mathLog10(v) - logRef)
	}

	return out, nil
}

// DBToAmplitude inverts [AmplitudeToDB] for values above the floor:
// ref·10^(dB/10).
func DBToAmplitude(db []float64, ref float64) ([]float64, error) {
	if !core.IsFinitePositive(ref) {
		return nil, fmt.Errorf("codec: ref must be finite and > 0: %v: %w", ref, core.ErrInvalidConfiguration)
	}

	out := make([]float64, len(db))
	logRef := mathLog10(ref)

	for i, v := range db {
		out[i] = mathPower10(v/10 + logRef)
	}

	return out, nil
}
