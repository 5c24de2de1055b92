package pipeline

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/filterbank"
	"github.com/cwbudde/algo-spectral/dsp/mel"
	"github.com/cwbudde/algo-spectral/dsp/stft"
)

const (
	defaultPower      = 1.0
	defaultMelPower   = 2.0
	defaultNumMels    = 128
	defaultSampleRate = 22050
)

// Option configures the spectrogram constructors.
type Option func(*config)

type config struct {
	stftOpts   []stft.Option
	power      float64
	powerSet   bool
	mono       bool
	numMels    int
	sampleRate int
	minFreq    float64
	maxFreq    float64
	scale      mel.Scale
	provider   filterbank.Provider
}

func defaultConfig() config {
	return config{
		power:      defaultPower,
		mono:       true,
		numMels:    defaultNumMels,
		sampleRate: defaultSampleRate,
		scale:      mel.ScaleSlaney,
	}
}

// WithSTFT forwards options to the underlying [stft.Framer].
func WithSTFT(opts ...stft.Option) Option {
	return func(c *config) { c.stftOpts = append(c.stftOpts, opts...) }
}

// WithPower sets the magnitude exponent. The mel spectrogram only accepts 2.
func WithPower(power float64) Option {
	return func(c *config) {
		c.power = power
		c.powerSet = true
	}
}

// WithMono enables or disables averaging over the channel axis.
func WithMono(mono bool) Option {
	return func(c *config) { c.mono = mono }
}

// WithNumMels sets the number of mel bands.
func WithNumMels(n int) Option {
	return func(c *config) { c.numMels = n }
}

// WithSampleRate sets the sample rate used to derive the mel upper frequency.
func WithSampleRate(sampleRate int) Option {
	return func(c *config) { c.sampleRate = sampleRate }
}

// WithFreqRange limits the mel filterbank to [minFreq, maxFreq] Hz.
// A zero maxFreq selects sampleRate/2.
func WithFreqRange(minFreq, maxFreq float64) Option {
	return func(c *config) {
		c.minFreq = minFreq
		c.maxFreq = maxFreq
	}
}

// WithHTK selects the HTK mel formula.
func WithHTK(htk bool) Option {
	return func(c *config) { c.scale = mel.ScaleFor(htk) }
}

// WithFilterbank replaces the mel filterbank with p.
func WithFilterbank(p filterbank.Provider) Option {
	return func(c *config) { c.provider = p }
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

func buildSpectrogram(cfg config) (*Chain, *stft.Framer, error) {
	framer, err := stft.New(cfg.stftOpts...)
	if err != nil {
		return nil, nil, err
	}

	if !core.IsFinitePositive(cfg.power) {
		return nil, nil, fmt.Errorf("pipeline: power must be finite and > 0: %v: %w", cfg.power, core.ErrDomainViolation)
	}

	c := New(Frame(framer), Norm(cfg.power))
	if cfg.mono {
		c.Append(Downmix(-3))
	}

	return c, framer, nil
}

// NewSpectrogram builds STFT -> ComplexNorm(power) [-> Downmix].
//
// Input is (channel, time) or (batch, channel, time); output is
// (..., bins, frames). With mono enabled (the default) the channel axis is
// averaged to size 1.
func NewSpectrogram(opts ...Option) (*Chain, error) {
	c, _, err := buildSpectrogram(applyOptions(opts))
	return c, err
}

// NewMelSpectrogram builds a power spectrogram followed by a mel filterbank.
// The filterbank rows match the framer's fftLen/2+1 bins unless a custom
// provider is given, whose row count must then agree.
func NewMelSpectrogram(opts ...Option) (*Chain, error) {
	cfg := applyOptions(opts)
	if cfg.powerSet && cfg.power != defaultMelPower {
		return nil, fmt.Errorf("pipeline: mel spectrogram uses power %g, got %v: %w",
			defaultMelPower, cfg.power, core.ErrInvalidConfiguration)
	}

	cfg.power = defaultMelPower

	c, framer, err := buildSpectrogram(cfg)
	if err != nil {
		return nil, err
	}

	provider := cfg.provider
	if provider == nil {
		m, err := filterbank.NewMel(
			filterbank.WithNumFreqs(framer.NumBins()),
			filterbank.WithNumMels(cfg.numMels),
			filterbank.WithFreqRange(cfg.minFreq, cfg.maxFreq),
			filterbank.WithSampleRate(cfg.sampleRate),
			filterbank.WithScale(cfg.scale),
		)
		if err != nil {
			return nil, err
		}

		provider = m
	}

	fb, err := provider.Filterbank()
	if err != nil {
		return nil, err
	}

	if fb.NumFreqs() != framer.NumBins() {
		return nil, fmt.Errorf("pipeline: filterbank has %d rows, framer yields %d bins: %w",
			fb.NumFreqs(), framer.NumBins(), core.ErrShapeMismatch)
	}

	return c.Append(Filter(fb)), nil
}
