package data

import (
	"fmt"
	"strings"

	"pcalab/pkg/core"
)

// FeatureTable is an ordered set of observations over named numeric
// features. Labels, when present, name each row.
type FeatureTable struct {
	Names  []string
	Rows   [][]float64
	Labels []string
}

// NewFeatureTable validates and deep-copies its arguments. labels may be nil.
func NewFeatureTable(names []string, rows [][]float64, labels []string) (*FeatureTable, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no feature names: %w", core.ErrEmptyInput)
	}
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			return nil, fmt.Errorf("blank feature name: %w", core.ErrInputShape)
		}
		if _, ok := seen[n]; ok {
			return nil, fmt.Errorf("duplicate feature %q: %w", n, core.ErrInputShape)
		}
		seen[n] = struct{}{}
	}

	r, c, err := core.Dims(rows)
	if err != nil {
		return nil, err
	}
	if c != len(names) {
		return nil, fmt.Errorf("rows have %d values for %d features: %w", c, len(names), core.ErrInputShape)
	}
	if labels != nil && len(labels) != r {
		return nil, fmt.Errorf("%d labels for %d rows: %w", len(labels), r, core.ErrInputShape)
	}

	t := &FeatureTable{
		Names: append([]string(nil), names...),
		Rows:  make([][]float64, r),
	}
	for i, row := range rows {
		t.Rows[i] = append([]float64(nil), row...)
	}
	if labels != nil {
		t.Labels = append([]string(nil), labels...)
	}
	return t, nil
}

// Len returns the number of rows.
func (t *FeatureTable) Len() int { return len(t.Rows) }

// Index returns the position of a feature, or -1.
func (t *FeatureTable) Index(name string) int {
	for i, n := range t.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// Label returns the label of row i, or its 1-based number when unlabelled.
func (t *FeatureTable) Label(i int) string {
	if i < len(t.Labels) {
		return t.Labels[i]
	}
	return fmt.Sprint(i + 1)
}

// Select returns a new table holding the named features in the given order.
func (t *FeatureTable) Select(names ...string) (*FeatureTable, error) {
	idx := make([]int, len(names))
	for i, n := range names {
		idx[i] = t.Index(n)
		if idx[i] < 0 {
			return nil, fmt.Errorf("unknown feature %q: %w", n, core.ErrInputShape)
		}
	}
	return NewFeatureTable(names, FeatureSelect(t.Rows, idx), t.Labels)
}

// FeatureSelect selects columns by indices.
func FeatureSelect(X [][]float64, indices []int) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		selected := make([]float64, len(indices))
		for j, idx := range indices {
			selected[j] = row[idx]
		}
		out[i] = selected
	}
	return out
}
