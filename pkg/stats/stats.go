package stats

import (
	"fmt"
	"math"

	"pcalab/pkg/core"
)

// Mean computes the average of a slice.
func Mean(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	return Sum(x) / float64(n)
}

// Variance computes the population variance (divides by n). It makes two
// passes so large offsets do not cancel.
func Variance(x []float64) float64 {
	n := float64(len(x))
	if n == 0 {
		return 0
	}
	return sumSquaredDeviations(x) / n
}

// SampleVariance computes the unbiased variance (divides by n-1).
func SampleVariance(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return sumSquaredDeviations(x) / float64(len(x)-1)
}

// Std computes the population standard deviation. Values are divided by
// max|x| before squaring, so magnitudes past 1e154 do not overflow.
func Std(x []float64) float64 {
	scale := MaxAbs(x)
	if scale == 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return math.Sqrt(Variance(x))
	}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = v / scale
	}
	return scale * math.Sqrt(Variance(y))
}

// MaxAbs returns the largest absolute value in the slice.
func MaxAbs(x []float64) float64 {
	m := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > m || math.IsNaN(a) {
			m = a
		}
	}
	return m
}

func sumSquaredDeviations(x []float64) float64 {
	mean := Mean(x)
	s := 0.0
	for _, v := range x {
		d := v - mean
		s += d * d
	}
	return s
}

// MinMax returns the minimum and maximum values in the slice.
func MinMax(x []float64) (float64, float64) {
	if len(x) == 0 {
		return 0, 0
	}
	min, max := x[0], x[0]
	for i := 1; i < len(x); i++ {
		if x[i] < min {
			min = x[i]
		} else if x[i] > max {
			max = x[i]
		}
	}
	return min, max
}

// Sum returns the sum of all elements in the slice.
func Sum(x []float64) float64 {
	s := 0.0
	for _, v := range x {
		s += v
	}
	return s
}

// Covariance computes the sample covariance (n-1) between two slices.
func Covariance(x, y []float64) float64 {
	n := len(x)
	if n < 2 || len(y) != n {
		return 0
	}
	mx, my := Mean(x), Mean(y)
	s := 0.0
	for i := range x {
		s += (x[i] - mx) * (y[i] - my)
	}
	return s / float64(n-1)
}

// CovarianceMatrix computes the sample covariance matrix of zero-mean
// columns: entry (i,j) = 1/(n-1) * sum over rows of z[r][i]*z[r][j].
// The lower triangle mirrors the upper one, so the result is exactly
// symmetric.
func CovarianceMatrix(z *core.Matrix) (*core.Matrix, error) {
	if z == nil || z.R < 2 {
		return nil, fmt.Errorf("covariance needs at least 2 rows: %w", core.ErrEmptyInput)
	}
	if z.C == 0 {
		return nil, fmt.Errorf("covariance needs at least 1 column: %w", core.ErrEmptyInput)
	}
	m := z.C
	cols := make([][]float64, m)
	for j := range cols {
		cols[j] = z.Col(j)
	}
	cov := core.NewMatrix(m, m)
	denom := float64(z.R - 1)
	for i := 0; i < m; i++ {
		for j := i; j < m; j++ {
			s, err := core.Dot(cols[i], cols[j])
			if err != nil {
				return nil, err
			}
			s /= denom
			cov.Set(i, j, s)
			cov.Set(j, i, s)
		}
	}
	return cov, nil
}
