package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcalab/pkg/core"
	"pcalab/pkg/stats"
)

var X = [][]float64{
	{2.5, 2.4, 0.5},
	{0.5, 0.7, 1.9},
	{2.2, 2.9, 0.4},
	{1.9, 2.2, 1.1},
	{3.1, 3.0, 0.2},
	{2.3, 2.7, 0.9},
}

func TestPCA_ExplainedVarianceRatioSumsToOne(t *testing.T) {
	pca := NewPCA(2)
	require.NoError(t, pca.Fit(X))
	assert.Len(t, pca.ExplainedVarianceRatio, 3)
	assert.InDelta(t, 1, stats.Sum(pca.ExplainedVarianceRatio), 1e-9)
	assert.Len(t, pca.Components(), 2)
	assert.Len(t, pca.ExplainedVariance(), 2)

	for i := 1; i < len(pca.Eigenvalues); i++ {
		assert.GreaterOrEqual(t, pca.Eigenvalues[i-1], pca.Eigenvalues[i])
	}
	for _, v := range pca.Eigenvalues {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestPCA_ComponentsOrthonormal(t *testing.T) {
	pca := NewPCA(0)
	require.NoError(t, pca.Fit(X))
	for i, a := range pca.Vectors {
		for j, b := range pca.Vectors {
			d, err := core.Dot(a, b)
			require.NoError(t, err)
			if i == j {
				assert.InDelta(t, 1, d, 1e-9)
			} else {
				assert.InDelta(t, 0, d, 1e-9)
			}
		}
	}
}

func TestPCA_RoundTrip(t *testing.T) {
	pca := NewPCA(0)
	Y, err := pca.FitTransform(X)
	require.NoError(t, err)
	assert.Equal(t, 3, pca.NComponents)

	R, err := pca.InverseTransform(Y)
	require.NoError(t, err)
	for i := range X {
		assert.InDeltaSlice(t, X[i], R[i], 1e-9)
	}

	mse, err := pca.ReconstructionError(X)
	require.NoError(t, err)
	assert.InDelta(t, 0, mse, 1e-18)
}

func TestPCA_TruncatedReconstructionLosesOnlyDroppedVariance(t *testing.T) {
	pca := NewPCA(1)
	require.NoError(t, pca.Fit(X))
	mse, err := pca.ReconstructionError(X)
	require.NoError(t, err)

	// squared residual per cell equals the dropped eigenvalues spread over the table
	n, d := float64(len(X)), float64(len(X[0]))
	dropped := pca.Eigenvalues[1] + pca.Eigenvalues[2]
	assert.InDelta(t, dropped*(n-1)/(n*d), mse, 1e-9)
}

func TestPCA_ProjectionVarianceMatchesEigenvalues(t *testing.T) {
	pca := NewPCA(0)
	Y, err := pca.FitTransform(X)
	require.NoError(t, err)
	for k := range pca.Eigenvalues {
		col := make([]float64, len(Y))
		for i := range Y {
			col[i] = Y[i][k]
		}
		assert.InDelta(t, 0, stats.Mean(col), 1e-9)
		assert.InDelta(t, pca.Eigenvalues[k], stats.SampleVariance(col), 1e-9)
	}
}

func TestPCA_Errors(t *testing.T) {
	_, err := NewPCA(4).FitTransform(X)
	assert.ErrorIs(t, err, core.ErrInputShape)

	_, err = NewPCA(-1).FitTransform(X)
	assert.ErrorIs(t, err, core.ErrInputShape)

	_, err = NewPCA(1).FitTransform(X[:1])
	assert.ErrorIs(t, err, core.ErrEmptyInput)

	_, err = NewPCA(1).FitTransform([][]float64{{1, 1}, {1, 1}})
	assert.ErrorIs(t, err, core.ErrDegenerateInput)

	_, err = NewPCA(1).Transform(X)
	assert.Error(t, err)

	pca := NewPCA(2)
	require.NoError(t, pca.Fit(X))
	_, err = pca.Transform([][]float64{{1, 2}})
	assert.ErrorIs(t, err, core.ErrInputShape)
	_, err = pca.InverseTransform([][]float64{{1, 2, 3}})
	assert.ErrorIs(t, err, core.ErrInputShape)
}

func TestMetrics(t *testing.T) {
	assert.Equal(t, 0.0, MSE(nil, nil))
	assert.InDelta(t, 2.5, MSE([]float64{1, 2}, []float64{2, 4}), 1e-12)
	assert.InDelta(t, 2, RMSE([]float64{0, 0}, []float64{2, -2}), 1e-12)
	assert.InDelta(t, 0.25, MatrixMSE([][]float64{{1, 1}, {1, 1}}, [][]float64{{1, 2}, {1, 1}}), 1e-12)
	assert.InDelta(t, 0.5, MatrixRMSE([][]float64{{1, 1}, {1, 1}}, [][]float64{{1, 2}, {1, 1}}), 1e-12)
}

func TestReconstruct(t *testing.T) {
	basis := [][]float64{{0.6, 0.8}, {-0.8, 0.6}}
	got, err := Reconstruct([][]float64{{1, 0}, {0, 2}, {1, 1}}, basis)
	require.NoError(t, err)
	want := [][]float64{{0.6, 0.8}, {-1.6, 1.2}, {-0.2, 1.4}}
	for i := range want {
		assert.InDeltaSlice(t, want[i], got[i], 1e-12)
	}

	_, err = Reconstruct([][]float64{{1, 2, 3}}, basis)
	assert.ErrorIs(t, err, core.ErrInputShape)
	_, err = Reconstruct(nil, basis)
	assert.ErrorIs(t, err, core.ErrEmptyInput)
}

func TestPCA_Tolerance(t *testing.T) {
	strict := NewPCA(0)
	strict.MaxSweeps = 1
	assert.ErrorIs(t, strict.Fit(X), core.ErrNumericInstability)

	// A tolerance of 1 accepts the covariance matrix as already diagonal.
	loose := NewPCA(0)
	loose.MaxSweeps = 1
	loose.Tolerance = 1
	require.NoError(t, loose.Fit(X))
	for i := range loose.Eigenvalues {
		assert.InDelta(t, loose.Covariance.At(i, i), loose.Eigenvalues[i], 1e-12)
	}
}
