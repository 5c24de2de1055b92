// Package stft frames multi-channel waveforms into complex short-time spectra.
//
// [Transform] is the short-time Fourier transform primitive: it maps a
// (rows, time) array to (rows, fftLen/2+1, frames, 2). [Framer] wraps it for
// waveforms of any rank >= 2, shape (..., time). It applies optional edge
// padding itself and then calls the primitive with centring disabled, so the
// signal is never padded twice. The leading dimensions are flattened into
// rows and restored on the output as (..., bins, frames, 2).
//
// The FFT is pluggable through [BackendFactory]. Three backends are provided:
// algo-fft (the default for power-of-two lengths), gonum and go-dsp. Rows are
// transformed in parallel, each worker owning its own backend instance.
package stft
