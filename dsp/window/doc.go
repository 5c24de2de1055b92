// Package window generates analysis windows for short-time framing.
//
// Periodic windows (see [WithPeriodic]) are the right choice for STFT
// framing; [Hann] returns that form directly.
package window
