//go:build !fastmath

package codec

// codecTol is the comparison tolerance for the exact math build.
const codecTol = 1e-9
