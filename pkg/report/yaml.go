package report

import (
	"io"

	"gopkg.in/yaml.v3"

	"pcalab/pkg/pipeline"
)

// Document is the YAML form of a pipeline result.
type Document struct {
	Features     []string            `yaml:"features"`
	Labels       []string            `yaml:"labels"`
	Means        []float64           `yaml:"means,flow"`
	Stds         []float64           `yaml:"stds,flow"`
	Standardized [][]float64         `yaml:"standardized"`
	Covariance   [][]float64         `yaml:"covariance"`
	Components   []ComponentDocument `yaml:"components"`
	Projection   [][]float64         `yaml:"projection"`
	Extra        map[string][]string `yaml:"extra,omitempty"`
}

// ComponentDocument is one principal component.
type ComponentDocument struct {
	Name                   string    `yaml:"name"`
	Eigenvalue             float64   `yaml:"eigenvalue"`
	ExplainedVarianceRatio float64   `yaml:"explained_variance_ratio"`
	Loadings               []float64 `yaml:"loadings,flow"`
	Kept                   bool      `yaml:"kept"`
}

// NewDocument converts a Result.
func NewDocument(res *pipeline.Result, extra ...Column) Document {
	doc := Document{
		Features:     res.Features,
		Labels:       res.Labels,
		Means:        res.Means,
		Stds:         res.Stds,
		Standardized: res.Standardized,
		Covariance:   res.Covariance.ToRows(),
		Projection:   res.Projection,
	}
	for i, c := range res.Components {
		doc.Components = append(doc.Components, ComponentDocument{
			Name:                   ComponentName(i),
			Eigenvalue:             c.Eigenvalue,
			ExplainedVarianceRatio: c.ExplainedVarianceRatio,
			Loadings:               c.Vector,
			Kept:                   i < res.K,
		})
	}
	if len(extra) > 0 {
		doc.Extra = make(map[string][]string, len(extra))
		for _, c := range extra {
			doc.Extra[c.Header] = c.Values
		}
	}
	return doc
}

// WriteYAML encodes the result as a YAML document.
func WriteYAML(w io.Writer, res *pipeline.Result, extra ...Column) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(res, extra...)); err != nil {
		return err
	}
	return enc.Close()
}
