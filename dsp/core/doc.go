// Package core holds the array type and error taxonomy shared by the
// spectral packages.
//
// An [Array] is a dense row-major float64 buffer with an explicit shape.
// Waveforms use shape (..., time), complex spectrograms (..., bins, frames, 2)
// and magnitude spectrograms (..., bins, frames). The leading "..." is any
// number of batch or channel dimensions.
package core
