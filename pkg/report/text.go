// Package report renders pipeline results as text, YAML and charts. It only
// reads a Result and never feeds anything back into the computation.
package report

import (
	"fmt"
	"io"

	"pcalab/pkg/pipeline"
)

// Column is extra per-row data shown next to the projection, such as a
// grade that was not part of the analysis.
type Column struct {
	Header string
	Values []string
}

// ComponentName returns "PC1", "PC2", ...
func ComponentName(i int) string { return fmt.Sprintf("PC%d", i+1) }

// WriteText prints explained variance, loadings and the projected rows as
// fixed-width tables.
func WriteText(w io.Writer, res *pipeline.Result, extra ...Column) error {
	p := &printer{w: w}

	p.printf("Explained variance\n")
	p.printf("%-15s%-15s%-15s\n", "Component", "Eigenvalue", "Ratio")
	for i, c := range res.Components {
		p.printf("%-15s%-15.6f%-15.6f\n", ComponentName(i), c.Eigenvalue, c.ExplainedVarianceRatio)
	}

	p.printf("\nLoadings\n")
	p.printf("%-15s", "")
	for _, f := range res.Features {
		p.printf("%-22s", f)
	}
	p.printf("\n")
	for i, row := range res.Loadings() {
		p.printf("%-15s", ComponentName(i))
		for _, v := range row {
			p.printf("%-22.6f", v)
		}
		p.printf("\n")
	}

	p.printf("\nProjection\n")
	p.printf("%-15s", "Row")
	for i := 0; i < res.K; i++ {
		p.printf("%-15s", ComponentName(i))
	}
	for _, c := range extra {
		p.printf("%-22s", c.Header)
	}
	p.printf("\n")
	for i, row := range res.Projection {
		p.printf("%-15s", res.Labels[i])
		for _, v := range row {
			p.printf("%-15.6f", v)
		}
		for _, c := range extra {
			val := ""
			if i < len(c.Values) {
				val = c.Values[i]
			}
			p.printf("%-22s", val)
		}
		p.printf("\n")
	}
	return p.err
}

// printer keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
