package model

import (
	"errors"
	"fmt"

	"pcalab/pkg/core"
	"pcalab/pkg/stats"
)

// PCA via the covariance matrix and a Jacobi eigendecomposition.
type PCA struct {
	K         int // requested components; 0 keeps all
	MaxSweeps int
	Tolerance float64 // relative Jacobi stopping threshold

	NComponents int // components kept by Transform, resolved by Fit
	Means       []float64

	Covariance  *core.Matrix
	Eigenvalues []float64   // all m, descending
	Vectors     [][]float64 // m x m, Vectors[i] is a unit eigenvector
	// ExplainedVarianceRatio has one entry per feature, not only K.
	ExplainedVarianceRatio []float64
}

// NewPCA creates a PCA that keeps k components. k = 0 keeps all of them.
func NewPCA(k int) *PCA {
	return &PCA{K: k, MaxSweeps: core.DefaultMaxSweeps, Tolerance: core.DefaultTolerance}
}

// Fit centres X, builds its sample covariance matrix and decomposes it.
func (pca *PCA) Fit(X [][]float64) error {
	n, d, err := core.Dims(X)
	if err != nil {
		return err
	}
	if n < 2 {
		return fmt.Errorf("pca needs at least 2 rows, got %d: %w", n, core.ErrEmptyInput)
	}
	k := pca.K
	if k == 0 {
		k = d
	}
	if k < 1 || k > d {
		return fmt.Errorf("%d components requested for %d features: %w", pca.K, d, core.ErrInputShape)
	}

	// --- Step 1: Centre the data ---
	means := make([]float64, d)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			means[j] += X[i][j]
		}
	}
	for j := range means {
		means[j] /= float64(n)
	}
	Z := core.NewMatrix(n, d)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			Z.Set(i, j, X[i][j]-means[j])
		}
	}

	// --- Step 2: Covariance and decomposition ---
	cov, err := stats.CovarianceMatrix(Z)
	if err != nil {
		return err
	}
	opts := []core.EigenOption{core.WithMaxSweeps(pca.MaxSweeps)}
	if pca.Tolerance > 0 {
		opts = append(opts, core.WithTolerance(pca.Tolerance))
	}
	eig, err := core.SymmetricEigen(cov, opts...)
	if err != nil {
		return err
	}

	total := stats.Sum(eig.Values)
	if total <= 0 {
		return fmt.Errorf("total variance is zero: %w", core.ErrDegenerateInput)
	}
	ratio := make([]float64, d)
	for i, v := range eig.Values {
		ratio[i] = v / total
	}

	pca.NComponents = k
	pca.Means = means
	pca.Covariance = cov
	pca.Eigenvalues = eig.Values
	pca.Vectors = eig.Vectors
	pca.ExplainedVarianceRatio = ratio
	return nil
}

// Components returns the kept eigenvectors.
func (pca *PCA) Components() [][]float64 {
	return pca.Vectors[:pca.NComponents]
}

// ExplainedVariance returns the kept eigenvalues.
func (pca *PCA) ExplainedVariance() []float64 {
	return pca.Eigenvalues[:pca.NComponents]
}

// Transform projects the centred rows of X onto the kept components:
// (X - mean) * Vk, where the columns of Vk are the eigenvectors.
func (pca *PCA) Transform(X [][]float64) ([][]float64, error) {
	if pca.Vectors == nil {
		return nil, errors.New("pca is not fitted")
	}
	n, d, err := core.Dims(X)
	if err != nil {
		return nil, err
	}
	if d != len(pca.Means) {
		return nil, fmt.Errorf("got %d features, pca fitted on %d: %w", d, len(pca.Means), core.ErrInputShape)
	}

	Z := core.NewMatrix(n, d)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			Z.Set(i, j, X[i][j]-pca.Means[j])
		}
	}
	W, err := core.FromRows(pca.Components())
	if err != nil {
		return nil, err
	}
	P, err := core.MatMul(Z, W.Transpose())
	if err != nil {
		return nil, err
	}
	return P.ToRows(), nil
}

func (pca *PCA) FitTransform(X [][]float64) ([][]float64, error) {
	if err := pca.Fit(X); err != nil {
		return nil, err
	}
	return pca.Transform(X)
}

// InverseTransform maps projected rows back to feature space. When every
// component is kept the reconstruction is exact up to rounding.
func (pca *PCA) InverseTransform(Y [][]float64) ([][]float64, error) {
	if pca.Vectors == nil {
		return nil, errors.New("pca is not fitted")
	}
	out, err := Reconstruct(Y, pca.Components())
	if err != nil {
		return nil, err
	}
	for _, row := range out {
		for j := range row {
			row[j] += pca.Means[j]
		}
	}
	return out, nil
}

// Reconstruct computes Y * Vk^T, where components holds the rows of Vk^T
// (one unit eigenvector per row). The result has no mean added back.
func Reconstruct(Y, components [][]float64) ([][]float64, error) {
	_, k, err := core.Dims(Y)
	if err != nil {
		return nil, err
	}
	if k != len(components) {
		return nil, fmt.Errorf("got %d components, basis has %d: %w", k, len(components), core.ErrInputShape)
	}
	P, err := core.FromRows(Y)
	if err != nil {
		return nil, err
	}
	W, err := core.FromRows(components)
	if err != nil {
		return nil, err
	}
	R, err := core.MatMul(P, W)
	if err != nil {
		return nil, err
	}
	return R.ToRows(), nil
}

// ReconstructionError is the mean squared error between X and its
// projection mapped back to feature space.
func (pca *PCA) ReconstructionError(X [][]float64) (float64, error) {
	Y, err := pca.Transform(X)
	if err != nil {
		return 0, err
	}
	R, err := pca.InverseTransform(Y)
	if err != nil {
		return 0, err
	}
	return MatrixMSE(X, R), nil
}
