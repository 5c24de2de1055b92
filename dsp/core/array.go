package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Array is a dense, row-major float64 array with an explicit shape.
//
// Arrays produced by this module are never mutated after they are returned;
// Reshape shares the underlying buffer.
type Array struct {
	shape []int
	data  []float64
}

// NewArray allocates a zero-filled array with the given shape.
func NewArray(shape ...int) (*Array, error) {
	n, err := shapeSize(shape)
	if err != nil {
		return nil, err
	}

	return &Array{shape: append([]int(nil), shape...), data: make([]float64, n)}, nil
}

// FromSlice wraps data in an array of the given shape without copying.
func FromSlice(data []float64, shape ...int) (*Array, error) {
	n, err := shapeSize(shape)
	if err != nil {
		return nil, err
	}

	if n != len(data) {
		return nil, fmt.Errorf("core: shape %v needs %d values, got %d: %w", shape, n, len(data), ErrShapeMismatch)
	}

	return &Array{shape: append([]int(nil), shape...), data: data}, nil
}

// FromRows stacks equally long rows into a (len(rows), len(rows[0])) array.
func FromRows(rows [][]float64) (*Array, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("core: rows must not be empty: %w", ErrShapeMismatch)
	}

	width := len(rows[0])
	data := make([]float64, 0, len(rows)*width)

	for i, r := range rows {
		if len(r) != width {
			return nil, fmt.Errorf("core: row %d has length %d, want %d: %w", i, len(r), width, ErrShapeMismatch)
		}

		data = append(data, r...)
	}

	return &Array{shape: []int{len(rows), width}, data: data}, nil
}

// Shape returns a copy of the array shape.
func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }

// Rank returns the number of dimensions.
func (a *Array) Rank() int { return len(a.shape) }

// Len returns the total number of elements.
func (a *Array) Len() int { return len(a.data) }

// Data returns the backing buffer. Callers must treat it as read-only
// unless they own the array.
func (a *Array) Data() []float64 { return a.data }

// Dim returns the size of axis i. Negative values count from the end.
func (a *Array) Dim(i int) int {
	if i < 0 {
		i += len(a.shape)
	}

	return a.shape[i]
}

// Leading returns the product of all dimensions before the last n axes.
func (a *Array) Leading(n int) int {
	p := 1
	for _, d := range a.shape[:len(a.shape)-n] {
		p *= d
	}

	return p
}

// Reshape returns a view with a new shape of equal size.
// A single -1 entry is inferred from the remaining dimensions.
func (a *Array) Reshape(shape ...int) (*Array, error) {
	shape = append([]int(nil), shape...)

	infer := -1
	known := 1

	for i, d := range shape {
		switch {
		case d == -1 && infer < 0:
			infer = i
		case d <= 0:
			return nil, fmt.Errorf("core: invalid reshape %v: %w", shape, ErrShapeMismatch)
		default:
			known *= d
		}
	}

	if infer >= 0 {
		if known == 0 || len(a.data)%known != 0 {
			return nil, fmt.Errorf("core: cannot reshape %v into %v: %w", a.shape, shape, ErrShapeMismatch)
		}

		shape[infer] = len(a.data) / known
		known *= shape[infer]
	}

	if known != len(a.data) {
		return nil, fmt.Errorf("core: cannot reshape %v into %v: %w", a.shape, shape, ErrShapeMismatch)
	}

	return &Array{shape: shape, data: a.data}, nil
}

// Clone returns a deep copy.
func (a *Array) Clone() *Array {
	return &Array{shape: a.Shape(), data: append([]float64(nil), a.data...)}
}

// At returns the element at the given multi-index.
func (a *Array) At(idx ...int) float64 { return a.data[a.offset(idx)] }

// Set stores v at the given multi-index. Only use on arrays you own.
func (a *Array) Set(v float64, idx ...int) { a.data[a.offset(idx)] = v }

// String implements fmt.Stringer with the shape only.
func (a *Array) String() string {
	return "Array" + FormatShape(a.shape)
}

func (a *Array) offset(idx []int) int {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("core: index rank %d does not match array rank %d", len(idx), len(a.shape)))
	}

	off := 0
	for i, v := range idx {
		if v < 0 || v >= a.shape[i] {
			panic(fmt.Sprintf("core: index %d out of range for axis %d of size %d", v, i, a.shape[i]))
		}

		off = off*a.shape[i] + v
	}

	return off
}

// SameShape reports whether two shapes are identical.
func SameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// FormatShape renders a shape as "(d0, d1, ...)".
func FormatShape(shape []int) string {
	parts := make([]string, len(shape))
	for i, d := range shape {
		parts[i] = strconv.Itoa(d)
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

func shapeSize(shape []int) (int, error) {
	if len(shape) == 0 {
		return 0, fmt.Errorf("core: shape must have at least one dimension: %w", ErrShapeMismatch)
	}

	n := 1
	for _, d := range shape {
		if d <= 0 {
			return 0, fmt.Errorf("core: dimensions must be > 0: %v: %w", shape, ErrShapeMismatch)
		}

		n *= d
	}

	return n, nil
}
