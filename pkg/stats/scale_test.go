package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcalab/pkg/core"
)

var students = [][]float64{
	{40, 2, 45},
	{55, 4, 55},
	{60, 6, 70},
	{85, 8, 80},
}

func column(X [][]float64, j int) []float64 {
	col := make([]float64, len(X))
	for i := range X {
		col[i] = X[i][j]
	}
	return col
}

func TestStandardScaler_ZeroMeanUnitStd(t *testing.T) {
	tables := map[string][][]float64{
		"students": students,
		"offset": {
			{1e6 + 1, -3},
			{1e6 + 2, 7},
			{1e6 + 4, 0.5},
		},
		"two rows": {{1, 10}, {2, 20}},
	}
	for name, X := range tables {
		t.Run(name, func(t *testing.T) {
			s := NewStandardScaler()
			Z, err := s.FitTransform(X)
			require.NoError(t, err)
			for j := range X[0] {
				col := column(Z, j)
				assert.InDelta(t, 0, Mean(col), 1e-9)
				assert.InDelta(t, 1, Std(col), 1e-9)
			}
		})
	}
}

func TestStandardScaler_PopulationStd(t *testing.T) {
	s := NewStandardScaler()
	require.NoError(t, s.Fit(students))
	assert.InDelta(t, 60, s.Mean[0], 1e-12)
	// population std of 40, 55, 60, 85
	assert.InDelta(t, 16.20185174601965, s.Std[0], 1e-12)
	assert.InDelta(t, 2.23606797749979, s.Std[1], 1e-12)
}

func TestStandardScaler_DoesNotMutateInput(t *testing.T) {
	X := [][]float64{{1, 2}, {3, 5}}
	_, err := NewStandardScaler().FitTransform(X)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}, {3, 5}}, X)
}

func TestStandardScaler_ConstantColumn(t *testing.T) {
	X := [][]float64{{1, 0.1}, {2, 0.1}, {3, 0.1}}
	s := NewStandardScaler("a", "b")
	Z, err := s.FitTransform(X)
	assert.ErrorIs(t, err, core.ErrDegenerateInput)
	assert.Contains(t, err.Error(), `"b"`)
	assert.Nil(t, Z)
	_, err = s.Transform(X)
	assert.Error(t, err, "a failed fit must leave the scaler unfitted")
}

func TestStandardScaler_LargeMagnitudes(t *testing.T) {
	X := [][]float64{{1e200, 1}, {-1e200, 2}, {3e200, 4}}
	s := NewStandardScaler()
	Z, err := s.FitTransform(X)
	require.NoError(t, err)
	assert.False(t, math.IsInf(s.Std[0], 0))
	assert.InEpsilon(t, 1.632993161855452e200, s.Std[0], 1e-12)
	for j := range X[0] {
		col := column(Z, j)
		assert.InDelta(t, 0, Mean(col), 1e-9)
		assert.InDelta(t, 1, Std(col), 1e-9)
	}
	assert.InDeltaSlice(t, []float64{0, -1.224744871391589, 1.224744871391589}, column(Z, 0), 1e-9)
}

func TestStandardScaler_Overflow(t *testing.T) {
	X := [][]float64{{math.MaxFloat64, 1}, {math.MaxFloat64, 2}, {-math.MaxFloat64, 4}}
	_, err := NewStandardScaler().FitTransform(X)
	assert.ErrorIs(t, err, core.ErrNumericInstability)
}

func TestStandardScaler_ShapeErrors(t *testing.T) {
	_, err := NewStandardScaler().FitTransform([][]float64{{1, 2}})
	assert.ErrorIs(t, err, core.ErrEmptyInput)

	_, err = NewStandardScaler().FitTransform(nil)
	assert.ErrorIs(t, err, core.ErrEmptyInput)

	_, err = NewStandardScaler().FitTransform([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, core.ErrInputShape)

	s := NewStandardScaler()
	require.NoError(t, s.Fit(students))
	_, err = s.Transform([][]float64{{1, 2}})
	assert.ErrorIs(t, err, core.ErrInputShape)

	_, err = NewStandardScaler().Transform(students)
	assert.Error(t, err)
}

func TestStandardScaler_InverseTransform(t *testing.T) {
	s := NewStandardScaler()
	Z, err := s.FitTransform(students)
	require.NoError(t, err)
	X, err := s.InverseTransform(Z)
	require.NoError(t, err)
	for i := range students {
		assert.InDeltaSlice(t, students[i], X[i], 1e-9)
	}
}
