package filterbank

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"gonum.org/v1/gonum/mat"
)

// Matrix is an immutable row-major (numFreqs, numBands) weight matrix.
type Matrix struct {
	numFreqs int
	numBands int
	data     []float64
}

// NewMatrix copies data into a new (numFreqs, numBands) matrix.
func NewMatrix(numFreqs, numBands int, data []float64) (*Matrix, error) {
	if numFreqs <= 0 || numBands <= 0 {
		return nil, fmt.Errorf("filterbank: matrix dimensions must be > 0: (%d, %d): %w",
			numFreqs, numBands, core.ErrInvalidConfiguration)
	}

	if len(data) != numFreqs*numBands {
		return nil, fmt.Errorf("filterbank: matrix (%d, %d) needs %d values, got %d: %w",
			numFreqs, numBands, numFreqs*numBands, len(data), core.ErrShapeMismatch)
	}

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("filterbank: non-finite weight at index %d: %w", i, core.ErrInvalidConfiguration)
		}
	}

	return &Matrix{numFreqs: numFreqs, numBands: numBands, data: append([]float64(nil), data...)}, nil
}

// IdentityMatrix returns the n x n identity filterbank.
func IdentityMatrix(n int) (*Matrix, error) {
	if n <= 0 {
		return nil, fmt.Errorf("filterbank: identity size must be > 0: %d: %w", n, core.ErrInvalidConfiguration)
	}

	data := make([]float64, n*n)
	for i := range n {
		data[i*n+i] = 1
	}

	return &Matrix{numFreqs: n, numBands: n, data: data}, nil
}

// NumFreqs returns the number of input frequency rows.
func (m *Matrix) NumFreqs() int { return m.numFreqs }

// NumBands returns the number of output band columns.
func (m *Matrix) NumBands() int { return m.numBands }

// At returns the weight of frequency row f in band b.
func (m *Matrix) At(f, b int) float64 { return m.data[f*m.numBands+b] }

// Column returns a copy of band b across all frequency rows.
func (m *Matrix) Column(b int) []float64 {
	out := make([]float64, m.numFreqs)
	for f := range out {
		out[f] = m.data[f*m.numBands+b]
	}

	return out
}

// Array returns a copy of the weights as a (numFreqs, numBands) array.
func (m *Matrix) Array() *core.Array {
	a, _ := core.FromSlice(append([]float64(nil), m.data...), m.numFreqs, m.numBands)
	return a
}

// String describes the matrix dimensions.
func (m *Matrix) String() string {
	return fmt.Sprintf("Matrix(num_freqs=%d, num_bands=%d)", m.numFreqs, m.numBands)
}

// dense wraps the weights for gonum without copying. The result must not
// be written to.
func (m *Matrix) dense() *mat.Dense {
	return mat.NewDense(m.numFreqs, m.numBands, m.data)
}
