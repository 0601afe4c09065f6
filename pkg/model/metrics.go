package model

import "math"

func MSE(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	n := float64(len(yTrue))
	s := 0.0
	for i := range yTrue {
		d := yPred[i] - yTrue[i]
		s += d * d
	}
	return s / n
}

func RMSE(yTrue, yPred []float64) float64 { return math.Sqrt(MSE(yTrue, yPred)) }

// MatrixMSE is the mean squared difference over every cell of two tables of
// the same shape.
func MatrixMSE(A, B [][]float64) float64 { return MSE(flatten(A), flatten(B)) }

// MatrixRMSE is the square root of MatrixMSE, in the units of the tables.
func MatrixRMSE(A, B [][]float64) float64 { return RMSE(flatten(A), flatten(B)) }

func flatten(A [][]float64) []float64 {
	var out []float64
	for _, row := range A {
		out = append(out, row...)
	}
	return out
}
