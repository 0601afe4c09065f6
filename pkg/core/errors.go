package core

import "errors"

// Error kinds reported by every stage of the PCA pipeline. Stages wrap them
// with context using fmt.Errorf("...: %w", ...); match with errors.Is.
var (
	// ErrInputShape reports ragged rows, mismatched column counts, an
	// out-of-range component count or a non-finite value.
	ErrInputShape = errors.New("invalid input shape")

	// ErrDegenerateInput reports a zero-variance column.
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrEmptyInput reports fewer than 2 rows or no columns.
	ErrEmptyInput = errors.New("empty input")

	// ErrNumericInstability reports an eigendecomposition that did not
	// converge within its sweep budget.
	ErrNumericInstability = errors.New("numeric instability")
)
