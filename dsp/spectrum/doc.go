// Package spectrum provides elementwise operations on complex spectrograms.
//
// Complex values are stored as a trailing pair dimension (real, imaginary),
// so a spectrogram has shape (..., bins, frames, 2). The package does not
// implement the FFT itself.
package spectrum
