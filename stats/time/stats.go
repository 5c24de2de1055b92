// Package time summarises sample sequences such as waveforms or flattened
// spectrogram arrays.
package time

import "math"

// Stats holds single-pass statistics of a sample sequence.
type Stats struct {
	Length        int
	Mean          float64
	StdDev        float64
	RMS           float64
	Max           float64
	MaxPos        int
	Min           float64
	MinPos        int
	Peak          float64 // max(|max|, |min|)
	CrestFactor   float64 // peak / RMS, 0 for silence
	ZeroCrossings int
	NonFinite     int // NaN and ±Inf samples, excluded from all other fields
}

// Calculate computes all statistics in one pass, using Welford's algorithm
// for the variance. Non-finite samples are counted and skipped.
func Calculate(signal []float64) Stats {
	var (
		s     Stats
		mean  float64
		m2    float64
		sumSq float64
		prev  float64
		n     int
	)

	for i, x := range signal {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			s.NonFinite++
			continue
		}

		if n == 0 || x > s.Max {
			s.Max = x
			s.MaxPos = i
		}

		if n == 0 || x < s.Min {
			s.Min = x
			s.MinPos = i
		}

		if n > 0 && prev*x < 0 {
			s.ZeroCrossings++
		}

		n++
		delta := x - mean
		mean += delta / float64(n)
		m2 += delta * (x - mean)
		sumSq += x * x
		prev = x
	}

	s.Length = n
	if n == 0 {
		return s
	}

	s.Mean = mean
	s.StdDev = math.Sqrt(m2 / float64(n))
	s.RMS = math.Sqrt(sumSq / float64(n))
	s.Peak = math.Max(math.Abs(s.Max), math.Abs(s.Min))

	if s.RMS > 0 {
		s.CrestFactor = s.Peak / s.RMS
	}

	return s
}
