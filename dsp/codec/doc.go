// Package codec converts spectral magnitudes and waveforms between
// representations: amplitude and decibels, and mu-law companding.
//
// Build with -tags fastmath to replace the logarithm and exponential with the
// approximations from algo-approx.
package codec
