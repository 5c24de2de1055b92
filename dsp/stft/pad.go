package stft

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

// PadMode selects how the time axis is extended before framing.
type PadMode int

const (
	// PadReflect mirrors around the edge sample, excluding it: [3 2 | 1 2 3 4 | 3 2].
	PadReflect PadMode = iota
	// PadReplicate repeats the edge sample: [1 1 | 1 2 3 4 | 4 4].
	PadReplicate
	// PadCircular wraps around: [3 4 | 1 2 3 4 | 1 2].
	PadCircular
	// PadConstant fills with zeros.
	PadConstant
)

var padModeNames = map[PadMode]string{
	PadReflect:   "reflect",
	PadReplicate: "replicate",
	PadCircular:  "circular",
	PadConstant:  "constant",
}

// String returns the lower-case mode name.
func (m PadMode) String() string {
	if n, ok := padModeNames[m]; ok {
		return n
	}

	return "unknown"
}

// ParsePadMode maps a mode name to a PadMode.
func ParsePadMode(name string) (PadMode, error) {
	for m, n := range padModeNames {
		if n == name {
			return m, nil
		}
	}

	return 0, fmt.Errorf("stft: unknown pad mode %q: %w", name, core.ErrInvalidConfiguration)
}

func checkPad(mode PadMode, pad, length int) error {
	if pad < 0 {
		return fmt.Errorf("stft: pad must be >= 0: %d: %w", pad, core.ErrInvalidConfiguration)
	}

	switch mode {
	case PadReflect:
		if pad >= length {
			return fmt.Errorf("stft: reflect pad %d must be < signal length %d: %w", pad, length, core.ErrInvalidConfiguration)
		}
	case PadCircular:
		if pad > length {
			return fmt.Errorf("stft: circular pad %d must be <= signal length %d: %w", pad, length, core.ErrInvalidConfiguration)
		}
	case PadReplicate, PadConstant:
	default:
		return fmt.Errorf("stft: unknown pad mode %d: %w", mode, core.ErrInvalidConfiguration)
	}

	return nil
}

// padRow writes src extended by pad samples on both ends into dst,
// which must have length len(src)+2*pad.
func padRow(dst, src []float64, pad int, mode PadMode) {
	n := len(src)
	copy(dst[pad:pad+n], src)

	for i := range pad {
		left := pad - 1 - i
		right := pad + n + i

		switch mode {
		case PadReflect:
			dst[left] = src[i+1]
			dst[right] = src[n-2-i]
		case PadReplicate:
			dst[left] = src[0]
			dst[right] = src[n-1]
		case PadCircular:
			dst[left] = src[n-1-i]
			dst[right] = src[i]
		default:
			dst[left] = 0
			dst[right] = 0
		}
	}
}

// PadRows pads every row of a (rows, time) array by pad samples on both ends.
func PadRows(rows *core.Array, pad int, mode PadMode) (*core.Array, error) {
	if rows == nil || rows.Rank() != 2 {
		return nil, fmt.Errorf("stft: padding needs a (rows, time) array: %w", core.ErrShapeMismatch)
	}

	n := rows.Dim(1)
	if err := checkPad(mode, pad, n); err != nil {
		return nil, err
	}

	if pad == 0 {
		return rows, nil
	}

	out, err := core.NewArray(rows.Dim(0), n+2*pad)
	if err != nil {
		return nil, err
	}

	src := rows.Data()
	dst := out.Data()
	width := n + 2*pad

	for r := range rows.Dim(0) {
		padRow(dst[r*width:(r+1)*width], src[r*n:(r+1)*n], pad, mode)
	}

	return out, nil
}
