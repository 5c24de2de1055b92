// Package frequency computes spectral shape descriptors from magnitude
// spectra and spectrograms.
package frequency

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

const defaultRolloff = 0.85

// Descriptors holds the shape statistics of one magnitude spectrum.
type Descriptors struct {
	Energy    float64 // sum of squared magnitudes
	PeakBin   int
	PeakHz    float64
	Centroid  float64 // spectral centroid (Hz)
	Spread    float64 // spectral spread (Hz)
	Flatness  float64 // Wiener entropy, 0..1, DC excluded
	Rolloff   float64 // frequency below which the rolloff fraction of energy lies (Hz)
	Bandwidth float64 // 3 dB bandwidth around the peak (Hz)
}

// Option configures descriptor extraction.
type Option func(*config)

type config struct {
	rolloff float64
}

// WithRolloff sets the energy fraction used for the rolloff frequency.
// Defaults to 0.85.
func WithRolloff(fraction float64) Option {
	return func(c *config) { c.rolloff = fraction }
}

func resolve(opts []Option) (config, error) {
	cfg := config{rolloff: defaultRolloff}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if !(cfg.rolloff > 0 && cfg.rolloff <= 1) {
		return cfg, fmt.Errorf("frequency: rolloff fraction must be in (0, 1]: %v: %w",
			cfg.rolloff, core.ErrInvalidConfiguration)
	}

	return cfg, nil
}

// binFreq returns the frequency in Hz of bin i of a one-sided spectrum with
// binCount bins, i.e. fftLen = 2*(binCount-1).
func binFreq(i int, sampleRate float64, binCount int) float64 {
	return float64(i) * sampleRate / float64(2*(binCount-1))
}

// Frame computes the descriptors of a one-sided magnitude spectrum
// (linear scale, bins 0..fftLen/2). Spectra with fewer than two bins or no
// energy yield zero descriptors.
func Frame(magnitude []float64, sampleRate float64, opts ...Option) (Descriptors, error) {
	cfg, err := resolve(opts)
	if err != nil {
		return Descriptors{}, err
	}

	if !core.IsFinitePositive(sampleRate) {
		return Descriptors{}, fmt.Errorf("frequency: sample rate must be finite and > 0: %v: %w",
			sampleRate, core.ErrInvalidConfiguration)
	}

	return describe(magnitude, sampleRate, cfg.rolloff), nil
}

func describe(magnitude []float64, sampleRate, rolloffFraction float64) Descriptors {
	n := len(magnitude)
	if n < 2 {
		return Descriptors{}
	}

	var d Descriptors

	sum := 0.0
	for i, v := range magnitude {
		sum += v
		d.Energy += v * v
		if v > magnitude[d.PeakBin] {
			d.PeakBin = i
		}
	}

	if sum == 0 {
		return Descriptors{}
	}

	d.PeakHz = binFreq(d.PeakBin, sampleRate, n)
	d.Centroid = centroid(magnitude, sampleRate, sum)
	d.Spread = spread(magnitude, sampleRate, d.Centroid, sum)
	d.Flatness = flatness(magnitude)
	d.Rolloff = rolloff(magnitude, sampleRate, rolloffFraction, d.Energy)
	d.Bandwidth = bandwidth(magnitude, sampleRate, d.PeakBin)

	return d
}

// Track holds per-frame descriptors of a spectrogram, row-major over
// (rows, frames) where rows flattens the leading dimensions.
type Track struct {
	Rows   int
	Frames int
	Values []Descriptors
}

// At returns the descriptors of frame f in row r.
func (t *Track) At(r, f int) Descriptors { return t.Values[r*t.Frames+f] }

// Mean averages every descriptor over all rows and frames. PeakBin is
// rounded to the nearest bin.
func (t *Track) Mean() Descriptors {
	var m Descriptors
	if len(t.Values) == 0 {
		return m
	}

	peak := 0.0
	for _, d := range t.Values {
		m.Energy += d.Energy
		m.PeakHz += d.PeakHz
		m.Centroid += d.Centroid
		m.Spread += d.Spread
		m.Flatness += d.Flatness
		m.Rolloff += d.Rolloff
		m.Bandwidth += d.Bandwidth
		peak += float64(d.PeakBin)
	}

	k := 1 / float64(len(t.Values))
	m.Energy *= k
	m.PeakHz *= k
	m.Centroid *= k
	m.Spread *= k
	m.Flatness *= k
	m.Rolloff *= k
	m.Bandwidth *= k
	m.PeakBin = int(math.Round(peak * k))

	return m
}

// Spectrogram computes descriptors for every frame of a magnitude
// spectrogram shaped (..., bins, frames).
func Spectrogram(mag *core.Array, sampleRate float64, opts ...Option) (*Track, error) {
	cfg, err := resolve(opts)
	if err != nil {
		return nil, err
	}

	if !core.IsFinitePositive(sampleRate) {
		return nil, fmt.Errorf("frequency: sample rate must be finite and > 0: %v: %w",
			sampleRate, core.ErrInvalidConfiguration)
	}

	if mag == nil || mag.Rank() < 2 {
		return nil, fmt.Errorf("frequency: spectrogram must be (..., bins, frames): %w", core.ErrShapeMismatch)
	}

	bins := mag.Dim(-2)
	frames := mag.Dim(-1)
	rows := mag.Leading(2)

	t := &Track{Rows: rows, Frames: frames, Values: make([]Descriptors, rows*frames)}
	column := make([]float64, bins)
	data := mag.Data()

	for r := range rows {
		base := r * bins * frames
		for f := range frames {
			for k := range bins {
				column[k] = data[base+k*frames+f]
			}

			t.Values[r*frames+f] = describe(column, sampleRate, cfg.rolloff)
		}
	}

	return t, nil
}

func centroid(magnitude []float64, sampleRate float64, sumMag float64) float64 {
	n := len(magnitude)
	weightedSum := 0.0
	for i, v := range magnitude {
		weightedSum += binFreq(i, sampleRate, n) * v
	}
	return weightedSum / sumMag
}

// spread is the standard deviation of the spectrum around the centroid.
func spread(magnitude []float64, sampleRate float64, cent float64, sumMag float64) float64 {
	n := len(magnitude)
	weightedSqSum := 0.0
	for i, v := range magnitude {
		diff := binFreq(i, sampleRate, n) - cent
		weightedSqSum += diff * diff * v
	}
	return math.Sqrt(weightedSqSum / sumMag)
}

// flatness is exp(mean(log|X|)) / mean(|X|) over bins 1..N-1.
func flatness(magnitude []float64) float64 {
	nBins := len(magnitude) - 1
	sumLin := 0.0
	sumLog := 0.0

	for _, v := range magnitude[1:] {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}

	return math.Exp(sumLog/float64(nBins)) / (sumLin / float64(nBins))
}

func rolloff(magnitude []float64, sampleRate float64, fraction float64, totalEnergy float64) float64 {
	n := len(magnitude)
	threshold := fraction * totalEnergy
	cumEnergy := 0.0
	for i, v := range magnitude {
		cumEnergy += v * v
		if cumEnergy >= threshold {
			return binFreq(i, sampleRate, n)
		}
	}
	return binFreq(n-1, sampleRate, n)
}

// bandwidth measures the distance between the points left and right of the
// peak where the magnitude falls to peak/sqrt(2), interpolating linearly.
func bandwidth(magnitude []float64, sampleRate float64, peakBin int) float64 {
	n := len(magnitude)
	threshold := magnitude[peakBin] / math.Sqrt2

	lowerFreq := binFreq(0, sampleRate, n)
	for i := peakBin; i >= 1; i-- {
		if magnitude[i-1] <= threshold && magnitude[i] > threshold {
			lowerFreq = interpFreq(i-1, i, magnitude[i-1], magnitude[i], threshold, sampleRate, n)
			break
		}
	}

	upperFreq := binFreq(n-1, sampleRate, n)
	for i := peakBin; i < n-1; i++ {
		if magnitude[i+1] <= threshold && magnitude[i] > threshold {
			upperFreq = interpFreq(i, i+1, magnitude[i], magnitude[i+1], threshold, sampleRate, n)
			break
		}
	}

	return max(0, upperFreq-lowerFreq)
}

func interpFreq(binLow, binHigh int, magLow, magHigh, threshold, sampleRate float64, binCount int) float64 {
	fLow := binFreq(binLow, sampleRate, binCount)
	fHigh := binFreq(binHigh, sampleRate, binCount)

	denom := magHigh - magLow
	if denom == 0 {
		return (fLow + fHigh) / 2
	}
	t := (threshold - magLow) / denom
	return fLow + t*(fHigh-fLow)
}
