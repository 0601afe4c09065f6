package pipeline

import (
	"fmt"

	"pcalab/pkg/core"
	"pcalab/pkg/data"
)

// Schema describes the features a pipeline expects.
type Schema struct {
	FeatureNames []string
}

// SchemaOf returns the schema of a table.
func SchemaOf(t *data.FeatureTable) Schema {
	return Schema{FeatureNames: append([]string(nil), t.Names...)}
}

// Check reports whether t carries exactly the schema's features in order.
func (s Schema) Check(t *data.FeatureTable) error {
	if len(t.Names) != len(s.FeatureNames) {
		return fmt.Errorf("table has %d features, schema has %d: %w", len(t.Names), len(s.FeatureNames), core.ErrInputShape)
	}
	for i, n := range s.FeatureNames {
		if t.Names[i] != n {
			return fmt.Errorf("feature %d is %q, schema wants %q: %w", i, t.Names[i], n, core.ErrInputShape)
		}
	}
	return nil
}
