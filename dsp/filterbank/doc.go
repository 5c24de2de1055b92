// Package filterbank builds and applies frequency-warping filterbank matrices.
//
// A filterbank is a non-negative (numFreqs, numBands) matrix. [BuildMel]
// constructs triangular mel filters, [Apply] contracts the frequency axis of
// a magnitude spectrogram (..., numFreqs, frames) against it to produce
// (..., numBands, frames).
//
// Matrices are immutable after construction and can be shared between
// goroutines.
//
// The mel builder samples the linear-frequency axis at numFreqs evenly spaced
// points between minFreq and maxFreq, not at FFT bin centres. Results
// therefore differ slightly from bin-exact constructions such as librosa's.
package filterbank
