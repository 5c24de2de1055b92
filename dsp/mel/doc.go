// Package mel converts between linear frequency in Hz and the perceptual mel
// scale.
//
// Two formulas are supported:
//   - HTK: mel = 2595 * log10(1 + hz/700).
//   - Slaney (default): linear below 1 kHz with a slope of 3/200 mel/Hz and
//     logarithmic above, continuous in value and slope at the 1 kHz breakpoint.
//
// The Slaney segment choice is made per element, so slices that straddle the
// breakpoint convert correctly.
package mel
