package codec

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

// DefaultQuantize is the 8-bit mu-law level count.
const DefaultQuantize = 256

func checkQuantize(n int) error {
	if n < 2 {
		return fmt.Errorf("codec: quantization levels must be >= 2: %d: %w", n, core.ErrInvalidConfiguration)
	}

	return nil
}

// MuLawEncode compands samples in [-1, 1] and quantizes them to integers in
// [0, nQuantize-1]. Samples outside [-1, 1] are clipped.
func MuLawEncode(x []float64, nQuantize int) ([]int, error) {
	if err := checkQuantize(nQuantize); err != nil {
		return nil, err
	}

	mu := float64(nQuantize - 1)
	norm := mathLog1p(mu)
	out := make([]int, len(x))

	for i, v := range x {
		if math.IsNaN(v) {
			return nil, fmt.Errorf("codec: NaN sample at index %d: %w", i, core.ErrDomainViolation)
		}

		v = max(-1, min(1, v))
		y := math.Copysign(mathLog1p(mu*math.Abs(v))/norm, v)
		q := int((y+1)/2*mu + 0.5)
		out[i] = max(0, min(nQuantize-1, q))
	}

	return out, nil
}

// MuLawDecode maps quantized values back to samples in [-1, 1].
func MuLawDecode(q []int, nQuantize int) ([]float64, error) {
	if err := checkQuantize(nQuantize); err != nil {
		return nil, err
	}

	mu := float64(nQuantize - 1)
	norm := mathLog1p(mu)
	out := make([]float64, len(q))

	for i, v := range q {
		y := float64(v)/mu*2 - 1
		// Approximate exp can overshoot full scale at the end codes.
		out[i] = max(-1, min(1, math.Copysign((mathExp(math.Abs(y)*norm)-1)/mu, y)))
	}

	return out, nil
}
