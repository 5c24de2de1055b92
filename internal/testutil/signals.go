package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// SteadySpectrogram builds a (bins, frames, 2) complex spectrogram whose bin k
// has constant magnitude mag[k] and a phase that advances by advance[k] per
// frame starting from phase0[k]. It models a stationary sinusoid per bin.
func SteadySpectrogram(mag, phase0, advance []float64, frames int) *core.Array {
	bins := len(mag)
	out, _ := core.NewArray(bins, frames, 2)
	data := out.Data()
	for k := range bins {
		for n := range frames {
			p := phase0[k] + float64(n)*advance[k]
			off := (k*frames + n) * 2
			data[off] = mag[k] * math.Cos(p)
			data[off+1] = mag[k] * math.Sin(p)
		}
	}
	return out
}
