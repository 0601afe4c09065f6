package core

import (
	"fmt"
	"math"
	"sort"
)

const (
	// DefaultMaxSweeps bounds the number of cyclic Jacobi sweeps.
	DefaultMaxSweeps = 100
	// DefaultTolerance is the relative off-diagonal norm at which the
	// solver stops.
	DefaultTolerance = 1e-12
	// SymmetryTolerance is how far a(i,j) may differ from a(j,i).
	SymmetryTolerance = 1e-9
)

// Eigen holds the eigenpairs of a symmetric matrix sorted by eigenvalue
// descending. Vectors[i] is the unit eigenvector for Values[i].
type Eigen struct {
	Values  []float64
	Vectors [][]float64
	Sweeps  int
}

type eigenConfig struct {
	maxSweeps int
	tol       float64
}

// EigenOption tunes SymmetricEigen.
type EigenOption func(*eigenConfig)

// WithMaxSweeps sets the sweep budget. Zero means the input must already be
// diagonal.
func WithMaxSweeps(n int) EigenOption {
	return func(c *eigenConfig) { c.maxSweeps = n }
}

// WithTolerance sets the relative convergence tolerance.
func WithTolerance(tol float64) EigenOption {
	return func(c *eigenConfig) { c.tol = tol }
}

// SymmetricEigen decomposes a symmetric matrix with cyclic Jacobi rotations.
//
// Each eigenvector is flipped so that its largest-magnitude component is
// positive (lowest index on an exact tie), which makes output reproducible
// for the same input. Eigenvalues that are negative only by rounding are
// clamped to zero.
func SymmetricEigen(a *Matrix, opts ...EigenOption) (*Eigen, error) {
	cfg := eigenConfig{maxSweeps: DefaultMaxSweeps, tol: DefaultTolerance}
	for _, opt := range opts {
		opt(&cfg)
	}
	if a == nil || a.R == 0 {
		return nil, fmt.Errorf("eigen of empty matrix: %w", ErrEmptyInput)
	}
	if a.R != a.C {
		return nil, fmt.Errorf("eigen of %dx%d matrix: %w", a.R, a.C, ErrInputShape)
	}
	for _, v := range a.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("eigen of non-finite matrix: %w", ErrNumericInstability)
		}
	}
	if !a.IsSymmetric(SymmetryTolerance) {
		return nil, fmt.Errorf("eigen of non-symmetric matrix: %w", ErrInputShape)
	}

	n := a.R
	A := a.Clone()
	V := Identity(n)
	scale := A.FrobeniusNorm()

	sweeps := 0
	for {
		off := offDiagonalNorm(A)
		if off <= cfg.tol*scale {
			break
		}
		if sweeps >= cfg.maxSweeps {
			return nil, fmt.Errorf("jacobi did not converge after %d sweeps (off-diagonal norm %g): %w",
				sweeps, off, ErrNumericInstability)
		}
		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				rotate(A, V, p, q)
			}
		}
		sweeps++
	}

	values := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = A.At(i, i)
		if values[i] < 0 && values[i] > -cfg.tol*scale {
			values[i] = 0
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return values[order[i]] > values[order[j]] })

	e := &Eigen{Values: make([]float64, n), Vectors: make([][]float64, n), Sweeps: sweeps}
	for i, idx := range order {
		e.Values[i] = values[idx]
		e.Vectors[i] = orientVector(V.Col(idx))
	}
	return e, nil
}

// rotate zeroes A(p,q) with the rotation A' = Jᵀ A J and accumulates V = V J.
func rotate(A, V *Matrix, p, q int) {
	apq := A.At(p, q)
	if apq == 0 {
		return
	}
	n := A.R
	theta := (A.At(q, q) - A.At(p, p)) / (2 * apq)
	var t float64
	if math.Abs(theta) > 1e150 {
		t = 1 / (2 * theta)
	} else {
		t = 1 / (math.Abs(theta) + math.Sqrt(theta*theta+1))
		if theta < 0 {
			t = -t
		}
	}
	c := 1 / math.Sqrt(t*t+1)
	s := t * c

	// columns p and q
	for k := 0; k < n; k++ {
		akp, akq := A.At(k, p), A.At(k, q)
		A.Set(k, p, c*akp-s*akq)
		A.Set(k, q, s*akp+c*akq)
	}
	// rows p and q
	for k := 0; k < n; k++ {
		apk, aqk := A.At(p, k), A.At(q, k)
		A.Set(p, k, c*apk-s*aqk)
		A.Set(q, k, s*apk+c*aqk)
	}
	A.Set(p, q, 0)
	A.Set(q, p, 0)

	for k := 0; k < n; k++ {
		vkp, vkq := V.At(k, p), V.At(k, q)
		V.Set(k, p, c*vkp-s*vkq)
		V.Set(k, q, s*vkp+c*vkq)
	}
}

func offDiagonalNorm(A *Matrix) float64 {
	s := 0.0
	for i := 0; i < A.R; i++ {
		for j := 0; j < A.C; j++ {
			if i != j {
				v := A.At(i, j)
				s += v * v
			}
		}
	}
	return math.Sqrt(s)
}

// orientVector flips v so its largest-magnitude component is positive.
func orientVector(v []float64) []float64 {
	best := 0
	for i := 1; i < len(v); i++ {
		if math.Abs(v[i]) > math.Abs(v[best]) {
			best = i
		}
	}
	if v[best] < 0 {
		for i := range v {
			v[i] = -v[i]
		}
	}
	return v
}
