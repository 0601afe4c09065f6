package core

import (
	"fmt"
	"math"
)

// Matrix is a dense row-major matrix.
type Matrix struct {
	R, C int
	Data []float64
}

// NewMatrix allocates a zero matrix.
func NewMatrix(r, c int) *Matrix {
	return &Matrix{R: r, C: c, Data: make([]float64, r*c)}
}

// Identity returns the n x n identity matrix.
func Identity(n int) *Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.Data[i*n+i] = 1
	}
	return m
}

// Dims returns the shape of a nested slice, rejecting empty, ragged and
// non-finite input.
func Dims(a [][]float64) (rows, cols int, err error) {
	rows = len(a)
	if rows == 0 {
		return 0, 0, fmt.Errorf("no rows: %w", ErrEmptyInput)
	}
	cols = len(a[0])
	if cols == 0 {
		return 0, 0, fmt.Errorf("no columns: %w", ErrEmptyInput)
	}
	for i, row := range a {
		if len(row) != cols {
			return 0, 0, fmt.Errorf("row %d has %d values, want %d: %w", i, len(row), cols, ErrInputShape)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, 0, fmt.Errorf("row %d column %d is not finite: %w", i, j, ErrInputShape)
			}
		}
	}
	return rows, cols, nil
}

// FromRows creates a Matrix from a nested slice (copies data).
func FromRows(a [][]float64) (*Matrix, error) {
	r, c, err := Dims(a)
	if err != nil {
		return nil, err
	}
	m := NewMatrix(r, c)
	for i := 0; i < r; i++ {
		copy(m.Data[i*c:(i+1)*c], a[i])
	}
	return m, nil
}

// ToRows returns a nested-slice copy of the matrix.
func (m *Matrix) ToRows() [][]float64 {
	out := make([][]float64, m.R)
	for i := 0; i < m.R; i++ {
		out[i] = m.Row(i)
	}
	return out
}

// At returns element (i, j)
func (m *Matrix) At(i, j int) float64 { return m.Data[i*m.C+j] }

// Set sets element (i, j)
func (m *Matrix) Set(i, j int, v float64) { m.Data[i*m.C+j] = v }

// Clone deep copies the matrix.
func (m *Matrix) Clone() *Matrix {
	n := &Matrix{R: m.R, C: m.C, Data: make([]float64, len(m.Data))}
	copy(n.Data, m.Data)
	return n
}

func (m *Matrix) Transpose() *Matrix {
	t := NewMatrix(m.C, m.R)
	for i := 0; i < m.R; i++ {
		for j := 0; j < m.C; j++ {
			t.Data[j*t.C+i] = m.Data[i*m.C+j]
		}
	}
	return t
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	v := make([]float64, m.C)
	copy(v, m.Data[i*m.C:(i+1)*m.C])
	return v
}

// Col returns a copy of column j.
func (m *Matrix) Col(j int) []float64 {
	v := make([]float64, m.R)
	for i := 0; i < m.R; i++ {
		v[i] = m.Data[i*m.C+j]
	}
	return v
}

// IsSymmetric reports whether m is square and |m(i,j) - m(j,i)| <= tol.
func (m *Matrix) IsSymmetric(tol float64) bool {
	if m.R != m.C {
		return false
	}
	for i := 0; i < m.R; i++ {
		for j := i + 1; j < m.C; j++ {
			if math.Abs(m.At(i, j)-m.At(j, i)) > tol {
				return false
			}
		}
	}
	return true
}

// FrobeniusNorm returns sqrt(sum of squared entries).
func (m *Matrix) FrobeniusNorm() float64 {
	s := 0.0
	for _, v := range m.Data {
		s += v * v
	}
	return math.Sqrt(s)
}

// Dot computes the dot product of two equal-length vectors.
func Dot(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("dot of length %d and %d: %w", len(a), len(b), ErrInputShape)
	}
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum, nil
}

func MatMul(A, B *Matrix) (*Matrix, error) {
	if A.C != B.R {
		return nil, fmt.Errorf("matmul %dx%d by %dx%d: %w", A.R, A.C, B.R, B.C, ErrInputShape)
	}
	C := NewMatrix(A.R, B.C)
	for i := 0; i < A.R; i++ {
		for k := 0; k < A.C; k++ {
			ai := A.Data[i*A.C+k]
			for j := 0; j < B.C; j++ {
				C.Data[i*C.C+j] += ai * B.Data[k*B.C+j]
			}
		}
	}
	return C, nil
}
