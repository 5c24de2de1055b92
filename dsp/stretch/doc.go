// Package stretch changes the frame rate of complex spectrograms with a
// phase vocoder.
//
// [PhaseVocoder] resamples a (..., bins, frames, 2) spectrogram along the
// frame axis. Magnitudes are interpolated linearly between neighbouring
// frames. Phases are rebuilt by accumulating wrapped per-hop increments, so
// each bin keeps the rotation rate given by the phase-advance table.
//
// rate > 1 shortens the spectrogram (faster playback), rate < 1 lengthens it.
// Frames past the end of the input read as zero. Every synthetic position t
// satisfies t < frames, so the interpolation partner floor(t)+1 is at most
// one frame past the end and stays within the two zero frames that the
// classic formulation appends.
//
// [Stretcher] bundles the phase-advance table with a default rate.
package stretch
