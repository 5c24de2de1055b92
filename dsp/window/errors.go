package window

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window: size must be > 0: %d: %w", size, core.ErrInvalidConfiguration)
	}
	return nil
}

// Validate checks that coeffs is a usable analysis window for an FFT of
// length fftLen: non-empty, finite and no longer than fftLen.
func Validate(coeffs []float64, fftLen int) error {
	if len(coeffs) == 0 {
		return fmt.Errorf("window: coefficients must not be empty: %w", core.ErrInvalidConfiguration)
	}

	if len(coeffs) > fftLen {
		return fmt.Errorf("window: length %d exceeds fft length %d: %w", len(coeffs), fftLen, core.ErrInvalidConfiguration)
	}

	for i, v := range coeffs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("window: non-finite coefficient %v at index %d: %w", v, i, core.ErrInvalidConfiguration)
		}
	}

	return nil
}
