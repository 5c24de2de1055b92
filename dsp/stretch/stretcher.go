package stretch

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

const (
	defaultHopLen  = 512
	defaultNumBins = 1025
	defaultRate    = 1.0
)

// Option configures a Stretcher.
type Option func(*config)

type config struct {
	hopLen  int
	numBins int
	rate    float64
	workers int
}

func defaultConfig() config {
	return config{
		hopLen:  defaultHopLen,
		numBins: defaultNumBins,
		rate:    defaultRate,
	}
}

// WithHopLen sets the hop of the analysed spectrogram.
func WithHopLen(n int) Option {
	return func(c *config) { c.hopLen = n }
}

// WithNumBins sets the number of frequency bins, fftLen/2+1.
func WithNumBins(n int) Option {
	return func(c *config) { c.numBins = n }
}

// WithRate sets the default stretch rate used by Stretch.
func WithRate(rate float64) Option {
	return func(c *config) { c.rate = rate }
}

// WithWorkers bounds the number of rows processed in parallel.
// Zero selects GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// Stretcher applies the phase vocoder with a precomputed phase-advance table.
// It is immutable and safe for concurrent use.
type Stretcher struct {
	hopLen  int
	rate    float64
	workers int
	advance []float64
}

// New validates the options and builds the phase-advance table.
func New(opts ...Option) (*Stretcher, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if !core.IsFinitePositive(cfg.rate) {
		return nil, fmt.Errorf("stretch: rate must be finite and > 0: %v: %w", cfg.rate, core.ErrDomainViolation)
	}

	if cfg.workers < 0 {
		return nil, fmt.Errorf("stretch: workers must be >= 0: %d: %w", cfg.workers, core.ErrInvalidConfiguration)
	}

	advance, err := PhaseAdvance(cfg.hopLen, cfg.numBins)
	if err != nil {
		return nil, err
	}

	return &Stretcher{
		hopLen:  cfg.hopLen,
		rate:    cfg.rate,
		workers: cfg.workers,
		advance: advance,
	}, nil
}

// Rate returns the default stretch rate.
func (s *Stretcher) Rate() float64 { return s.rate }

// HopLen returns the analysis hop.
func (s *Stretcher) HopLen() int { return s.hopLen }

// NumBins returns the number of frequency bins the table covers.
func (s *Stretcher) NumBins() int { return len(s.advance) }

// PhaseAdvance returns a copy of the phase-advance table.
func (s *Stretcher) PhaseAdvance() []float64 { return append([]float64(nil), s.advance...) }

// Stretch applies the default rate.
func (s *Stretcher) Stretch(spec *core.Array) (*core.Array, error) {
	return s.StretchRate(spec, s.rate)
}

// StretchRate applies rate instead of the default one.
func (s *Stretcher) StretchRate(spec *core.Array, rate float64) (*core.Array, error) {
	return phaseVocoder(spec, rate, s.advance, s.workers)
}

// String describes the stretcher parameters.
func (s *Stretcher) String() string {
	return fmt.Sprintf("TimeStretch(hop_len=%d, num_bins=%d, rate=%g)", s.hopLen, len(s.advance), s.rate)
}
