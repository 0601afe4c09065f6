package model

// Transformer is for preprocessing steps (fit on train, transform both).
// Both stats.StandardScaler and PCA satisfy it.
type Transformer interface {
	Fit(X [][]float64) error
	Transform(X [][]float64) ([][]float64, error)
	FitTransform(X [][]float64) ([][]float64, error)
}
