//go:build fastmath

package codec

// codecTol is the comparison tolerance for the approximate math build.
const codecTol = 1e-4
