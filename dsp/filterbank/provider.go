package filterbank

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/mel"
)

const (
	defaultMelNumFreqs = 2048/2 + 1
	defaultMelNumMels  = 128
)

// Provider produces a filterbank matrix at configuration time.
type Provider interface {
	Filterbank() (*Matrix, error)
}

// Identity provides an n x n identity filterbank.
type Identity int

// Filterbank implements [Provider].
func (n Identity) Filterbank() (*Matrix, error) { return IdentityMatrix(int(n)) }

// Custom provides a caller-supplied matrix unchanged.
type Custom struct {
	Matrix *Matrix
}

// Filterbank implements [Provider].
func (c Custom) Filterbank() (*Matrix, error) {
	if c.Matrix == nil {
		return nil, fmt.Errorf("filterbank: custom provider has no matrix: %w", core.ErrInvalidConfiguration)
	}

	return c.Matrix, nil
}

// MelOption configures a [Mel] provider.
type MelOption func(*Mel)

// Mel provides a triangular mel filterbank.
//
// MaxFreq falls back to SampleRate/2 (integer halved) when unset. At least one
// of the two must be given.
type Mel struct {
	NumFreqs   int
	NumMels    int
	MinFreq    float64
	MaxFreq    float64
	SampleRate int
	Scale      mel.Scale
}

// WithNumFreqs sets the number of linear frequency rows.
func WithNumFreqs(n int) MelOption {
	return func(m *Mel) { m.NumFreqs = n }
}

// WithNumMels sets the number of mel bands.
func WithNumMels(n int) MelOption {
	return func(m *Mel) { m.NumMels = n }
}

// WithFreqRange sets the minimum and maximum frequency in Hz.
func WithFreqRange(minFreq, maxFreq float64) MelOption {
	return func(m *Mel) {
		m.MinFreq = minFreq
		m.MaxFreq = maxFreq
	}
}

// WithSampleRate sets the sample rate used to derive MaxFreq.
func WithSampleRate(sampleRate int) MelOption {
	return func(m *Mel) { m.SampleRate = sampleRate }
}

// WithScale selects the mel formula.
func WithScale(s mel.Scale) MelOption {
	return func(m *Mel) { m.Scale = s }
}

// WithHTK selects the HTK formula when htk is true.
func WithHTK(htk bool) MelOption {
	return func(m *Mel) { m.Scale = mel.ScaleFor(htk) }
}

// NewMel resolves defaults and validates a mel provider.
func NewMel(opts ...MelOption) (*Mel, error) {
	m := &Mel{
		NumFreqs: defaultMelNumFreqs,
		NumMels:  defaultMelNumMels,
		Scale:    mel.ScaleSlaney,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if m.MaxFreq == 0 {
		if m.SampleRate <= 0 {
			return nil, fmt.Errorf("filterbank: either max_freq or sample_rate must be given: %w",
				core.ErrInvalidConfiguration)
		}

		m.MaxFreq = float64(m.SampleRate / 2)
	}

	if err := validateMel(m.NumFreqs, m.NumMels, m.MinFreq, m.MaxFreq); err != nil {
		return nil, err
	}

	return m, nil
}

// Filterbank implements [Provider].
func (m *Mel) Filterbank() (*Matrix, error) {
	return BuildMel(m.NumFreqs, m.NumMels, m.MinFreq, m.MaxFreq, m.Scale == mel.ScaleHTK)
}

// String describes the provider parameters.
func (m *Mel) String() string {
	return fmt.Sprintf("MelFilterbank(num_freqs=%d, num_mels=%d, min_freq=%g, max_freq=%g, scale=%s)",
		m.NumFreqs, m.NumMels, m.MinFreq, m.MaxFreq, m.Scale)
}
