package pipeline

import (
	"fmt"

	"github.com/rs/zerolog"

	"pcalab/pkg/core"
	"pcalab/pkg/data"
	"pcalab/pkg/model"
	"pcalab/pkg/stats"
)

// Component is one principal direction.
type Component struct {
	Eigenvalue             float64
	Vector                 []float64
	ExplainedVarianceRatio float64
}

// Result holds every stage output of a run. Nothing in it aliases the input
// table.
type Result struct {
	Features []string
	Labels   []string

	Means []float64
	Stds  []float64

	Standardized [][]float64
	Covariance   *core.Matrix
	// Components lists every principal direction, largest eigenvalue first.
	Components []Component
	// Projection has one column per kept component.
	Projection [][]float64
	K          int
}

// ExplainedVarianceRatio returns the ratio of every component.
func (r *Result) ExplainedVarianceRatio() []float64 {
	out := make([]float64, len(r.Components))
	for i, c := range r.Components {
		out[i] = c.ExplainedVarianceRatio
	}
	return out
}

// Loadings returns the kept eigenvectors, one row per component.
func (r *Result) Loadings() [][]float64 {
	out := make([][]float64, r.K)
	for i := 0; i < r.K; i++ {
		out[i] = append([]float64(nil), r.Components[i].Vector...)
	}
	return out
}

// Pipeline standardizes a table, decomposes its covariance and projects it.
type Pipeline struct {
	components int
	maxSweeps  int
	tolerance  float64
	schema     *Schema
	log        zerolog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithComponents keeps k components. 0 keeps all of them.
func WithComponents(k int) Option {
	return func(p *Pipeline) { p.components = k }
}

// WithMaxSweeps bounds the eigensolver.
func WithMaxSweeps(n int) Option {
	return func(p *Pipeline) { p.maxSweeps = n }
}

// WithTolerance sets the eigensolver's relative stopping threshold.
func WithTolerance(tol float64) Option {
	return func(p *Pipeline) { p.tolerance = tol }
}

// WithSchema rejects tables whose features differ from s.
func WithSchema(s Schema) Option {
	return func(p *Pipeline) { p.schema = &s }
}

// WithLogger sets the logger used for per-stage debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

func New(opts ...Option) *Pipeline {
	p := &Pipeline{maxSweeps: core.DefaultMaxSweeps, tolerance: core.DefaultTolerance, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// step is one stage of the fit chain.
type step struct {
	name string
	model.Transformer
}

// fitChain fits each step on the output of the previous one and returns
// every intermediate table.
func fitChain(X [][]float64, steps ...step) ([][][]float64, error) {
	outs := make([][][]float64, 0, len(steps))
	for _, s := range steps {
		var err error
		if X, err = s.FitTransform(X); err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		outs = append(outs, X)
	}
	return outs, nil
}

// Run executes standardize, covariance, eigendecomposition and projection in
// order. The first failing stage aborts the run and no partial result is
// returned.
func (p *Pipeline) Run(t *data.FeatureTable) (*Result, error) {
	if t == nil {
		return nil, fmt.Errorf("nil table: %w", core.ErrEmptyInput)
	}
	// A literal FeatureTable skips the constructor's checks.
	t, err := data.NewFeatureTable(t.Names, t.Rows, t.Labels)
	if err != nil {
		return nil, err
	}
	if p.schema != nil {
		if err := p.schema.Check(t); err != nil {
			return nil, err
		}
	}
	log := p.log.With().Int("rows", t.Len()).Int("features", len(t.Names)).Logger()

	scaler := stats.NewStandardScaler(t.Names...)
	pca := model.NewPCA(p.components)
	pca.MaxSweeps = p.maxSweeps
	pca.Tolerance = p.tolerance
	outs, err := fitChain(t.Rows, step{"standardize", scaler}, step{"decompose", pca})
	if err != nil {
		return nil, err
	}
	z, projection := outs[0], outs[1]
	log.Debug().Floats64("mean", scaler.Mean).Floats64("std", scaler.Std).Msg("standardized")
	log.Debug().
		Floats64("eigenvalues", pca.Eigenvalues).
		Floats64("explained_variance_ratio", pca.ExplainedVarianceRatio).
		Msg("decomposed")

	res := &Result{
		Features:     append([]string(nil), t.Names...),
		Labels:       make([]string, t.Len()),
		Means:        scaler.Mean,
		Stds:         scaler.Std,
		Standardized: z,
		Covariance:   pca.Covariance,
		Components:   make([]Component, len(pca.Eigenvalues)),
		Projection:   projection,
		K:            pca.NComponents,
	}
	for i := range res.Labels {
		res.Labels[i] = t.Label(i)
	}
	for i, v := range pca.Eigenvalues {
		res.Components[i] = Component{
			Eigenvalue:             v,
			Vector:                 pca.Vectors[i],
			ExplainedVarianceRatio: pca.ExplainedVarianceRatio[i],
		}
	}

	back, err := Reconstruct(res)
	if err != nil {
		return nil, fmt.Errorf("reconstruct: %w", err)
	}
	log.Debug().
		Int("components", res.K).
		Float64("reconstruction_rmse", model.MatrixRMSE(z, back)).
		Msg("projected")
	return res, nil
}

// Reconstruct maps the projection back onto the standardized feature space,
// Projection * Vk^T. With every component kept it reproduces Standardized up
// to rounding.
func Reconstruct(r *Result) ([][]float64, error) {
	if r == nil {
		return nil, fmt.Errorf("nil result: %w", core.ErrEmptyInput)
	}
	if r.K < 1 || r.K > len(r.Components) {
		return nil, fmt.Errorf("result keeps %d of %d components: %w", r.K, len(r.Components), core.ErrInputShape)
	}
	return model.Reconstruct(r.Projection, r.Loadings())
}
