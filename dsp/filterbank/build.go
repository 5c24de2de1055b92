package filterbank

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/mel"
)

// BuildMel constructs a (numFreqs, numMels) triangular mel filterbank.
//
// numFreqs linear sample points span [minFreq, maxFreq]. numMels+2 boundary
// frequencies are spaced evenly on the mel scale between the same limits.
// Filter b rises linearly from boundary b to boundary b+1 and falls to zero at
// boundary b+2, with a peak value of 1 at its centre.
func BuildMel(numFreqs, numMels int, minFreq, maxFreq float64, htk bool) (*Matrix, error) {
	if err := validateMel(numFreqs, numMels, minFreq, maxFreq); err != nil {
		return nil, err
	}

	mMin := mel.HertzToMel(minFreq, htk)
	mMax := mel.HertzToMel(maxFreq, htk)

	freqs := core.Linspace(minFreq, maxFreq, numFreqs)
	fPts := mel.MelsToHertz(core.Linspace(mMin, mMax, numMels+2), htk)

	fDiff := make([]float64, numMels+1)
	for i := range fDiff {
		fDiff[i] = fPts[i+1] - fPts[i]
	}

	data := make([]float64, numFreqs*numMels)

	for f, freq := range freqs {
		row := data[f*numMels : (f+1)*numMels]
		for b := range row {
			down := (freq - fPts[b]) / fDiff[b]
			up := (fPts[b+2] - freq) / fDiff[b+1]
			row[b] = math.Max(0, math.Min(down, up))
		}
	}

	return &Matrix{numFreqs: numFreqs, numBands: numMels, data: data}, nil
}

func validateMel(numFreqs, numMels int, minFreq, maxFreq float64) error {
	if numFreqs < 2 {
		return fmt.Errorf("filterbank: num_freqs must be >= 2: %d: %w", numFreqs, core.ErrDomainViolation)
	}

	if numMels < 1 {
		return fmt.Errorf("filterbank: num_mels must be >= 1: %d: %w", numMels, core.ErrDomainViolation)
	}

	if minFreq < 0 || math.IsNaN(minFreq) || math.IsInf(minFreq, 0) {
		return fmt.Errorf("filterbank: min_freq must be finite and >= 0: %f: %w", minFreq, core.ErrInvalidConfiguration)
	}

	if !(maxFreq > minFreq) || math.IsInf(maxFreq, 0) {
		return fmt.Errorf("filterbank: max_freq must be > min_freq: %f <= %f: %w",
			maxFreq, minFreq, core.ErrInvalidConfiguration)
	}

	return nil
}
