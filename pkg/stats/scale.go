package stats

import (
	"errors"
	"fmt"
	"math"

	"pcalab/pkg/core"
)

// degenerateStd is the relative spread below which a column counts as
// constant. Summation of equal values can leave rounding noise in Std.
const degenerateStd = 1e-12

// StandardScaler rescales each column to zero mean and unit population
// standard deviation, sqrt(mean squared deviation).
type StandardScaler struct {
	Mean []float64
	Std  []float64
	// Names labels columns in error messages. Optional.
	Names []string
	fit   bool
}

func NewStandardScaler(names ...string) *StandardScaler {
	return &StandardScaler{Names: names}
}

// Fit computes per-column mean and standard deviation. It needs at least 2
// rows and fails with core.ErrDegenerateInput on a constant column and
// core.ErrNumericInstability when a column's mean or spread overflows.
func (s *StandardScaler) Fit(X [][]float64) error {
	r, c, err := core.Dims(X)
	if err != nil {
		return err
	}
	if r < 2 {
		return fmt.Errorf("standardize needs at least 2 rows, got %d: %w", r, core.ErrEmptyInput)
	}

	mean := make([]float64, c)
	std := make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			col[i] = X[i][j]
		}
		mean[j] = Mean(col)
		std[j] = Std(col)
		if math.IsInf(mean[j], 0) || math.IsInf(std[j], 0) {
			return fmt.Errorf("column %s overflows float64: %w", s.columnName(j), core.ErrNumericInstability)
		}
		lo, hi := MinMax(col)
		if lo == hi || std[j] <= degenerateStd*math.Max(math.Abs(lo), math.Abs(hi)) {
			return fmt.Errorf("column %s has zero variance: %w", s.columnName(j), core.ErrDegenerateInput)
		}
	}
	s.Mean, s.Std, s.fit = mean, std, true
	return nil
}

// Transform applies the fitted scaling. It returns a new table.
func (s *StandardScaler) Transform(X [][]float64) ([][]float64, error) {
	if !s.fit {
		return nil, errors.New("scaler is not fitted")
	}
	r, c, err := core.Dims(X)
	if err != nil {
		return nil, err
	}
	if c != len(s.Mean) {
		return nil, fmt.Errorf("got %d columns, scaler fitted on %d: %w", c, len(s.Mean), core.ErrInputShape)
	}
	Y := make([][]float64, r)
	for i := 0; i < r; i++ {
		row := make([]float64, c)
		for j := 0; j < c; j++ {
			row[j] = (X[i][j] - s.Mean[j]) / s.Std[j]
			if math.IsInf(row[j], 0) {
				return nil, fmt.Errorf("row %d column %s overflows after centring: %w", i, s.columnName(j), core.ErrNumericInstability)
			}
		}
		Y[i] = row
	}
	return Y, nil
}

func (s *StandardScaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform maps standardized values back to the original units.
func (s *StandardScaler) InverseTransform(Z [][]float64) ([][]float64, error) {
	if !s.fit {
		return nil, errors.New("scaler is not fitted")
	}
	r, c, err := core.Dims(Z)
	if err != nil {
		return nil, err
	}
	if c != len(s.Mean) {
		return nil, fmt.Errorf("got %d columns, scaler fitted on %d: %w", c, len(s.Mean), core.ErrInputShape)
	}
	X := make([][]float64, r)
	for i := 0; i < r; i++ {
		row := make([]float64, c)
		for j := 0; j < c; j++ {
			row[j] = Z[i][j]*s.Std[j] + s.Mean[j]
		}
		X[i] = row
	}
	return X, nil
}

func (s *StandardScaler) columnName(j int) string {
	if j < len(s.Names) && s.Names[j] != "" {
		return fmt.Sprintf("%d %q", j, s.Names[j])
	}
	return fmt.Sprint(j)
}
