// Package pipeline composes the spectral building blocks into sequential
// processing chains.
//
// A [Chain] runs [Stage] values in order, each consuming the previous
// stage's array. [NewSpectrogram] and [NewMelSpectrogram] assemble the
// common chains:
//
//	waveform (..., time)
//	  -> STFT            (..., bins, frames, 2)
//	  -> complex norm    (..., bins, frames)
//	  -> mono downmix    (batch, 1, bins, frames)   optional
//	  -> mel filterbank  (..., mels, frames)        mel spectrogram only
//
// Chains can also be described in JSON and built through a [Registry] of
// named stage factories, see [Load].
package pipeline
