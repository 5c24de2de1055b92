package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

const defaultSampleRate = 22050.0

// Generator creates deterministic test signals at a fixed sample rate.
type Generator struct {
	sampleRate float64
	seed       int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSampleRate sets the sample rate in Hz.
func WithSampleRate(sampleRate float64) Option {
	return func(g *Generator) {
		g.sampleRate = sampleRate
	}
}

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		sampleRate: defaultSampleRate,
		seed:       1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	if !core.IsFinitePositive(g.sampleRate) {
		return nil, fmt.Errorf("signal: sample rate must be finite and > 0: %v: %w",
			g.sampleRate, core.ErrInvalidConfiguration)
	}

	return g, nil
}

// SampleRate returns the generator sample rate in Hz.
func (g *Generator) SampleRate() float64 { return g.sampleRate }

// Seed returns the noise seed.
func (g *Generator) Seed() int64 { return g.seed }

// Samples converts a duration in seconds to a sample count.
func (g *Generator) Samples(seconds float64) int {
	return int(math.Round(seconds * g.sampleRate))
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: sine samples must be > 0: %d: %w", samples, core.ErrInvalidConfiguration)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// Chirp generates a linear sweep from startHz to endHz over samples.
func (g *Generator) Chirp(startHz, endHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: chirp samples must be > 0: %d: %w", samples, core.ErrInvalidConfiguration)
	}
	out := make([]float64, samples)
	duration := float64(samples) / g.sampleRate
	rate := (endHz - startHz) / duration
	for i := range out {
		t := float64(i) / g.sampleRate
		out[i] = amplitude * math.Sin(2*math.Pi*(startHz*t+0.5*rate*t*t))
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: noise samples must be > 0: %d: %w", samples, core.ErrInvalidConfiguration)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("signal: noise amplitude must be >= 0: %f: %w", amplitude, core.ErrInvalidConfiguration)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Stack packs equal-length channels into a (batch=1, channel, time) array.
func Stack(channels ...[]float64) (*core.Array, error) {
	rows, err := core.FromRows(channels)
	if err != nil {
		return nil, fmt.Errorf("signal: %w", err)
	}

	return rows.Reshape(1, rows.Dim(0), rows.Dim(1))
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("signal: normalize target peak must be >= 0: %f: %w", targetPeak, core.ErrInvalidConfiguration)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("signal: normalize input must not be empty: %w", core.ErrInvalidConfiguration)
	}

	maxAbs := 0.0
	for _, v := range data {
		av := math.Abs(v)
		if av > maxAbs {
			maxAbs = av
		}
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
