package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"pcalab/pkg/pipeline"
)

// PlotProjection saves a PC1 vs PC2 scatter with one label per row. With a
// single kept component every point sits on PC2 = 0. The file format
// follows the extension of path.
func PlotProjection(res *pipeline.Result, path string) error {
	if res.K < 1 {
		return fmt.Errorf("nothing to plot")
	}
	p := plot.New()
	p.Title.Text = "Projection onto principal components"
	p.X.Label.Text = axisLabel(res, 0)
	p.Y.Label.Text = axisLabel(res, 1)
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(res.Projection))
	for i, row := range res.Projection {
		pts[i].X = row[0]
		if len(row) > 1 {
			pts[i].Y = row[1]
		}
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.Color = color.RGBA{B: 255, A: 255, R: 50, G: 50}
	s.Shape = draw.CircleGlyph{}
	s.Radius = vg.Points(4)
	p.Add(s)

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: res.Labels})
	if err != nil {
		return err
	}
	labels.Offset = vg.Point{X: vg.Points(6), Y: vg.Points(2)}
	p.Add(labels)

	return p.Save(5*vg.Inch, 5*vg.Inch, path)
}

// PlotExplainedVariance saves a bar chart of the explained variance ratio of
// every component.
func PlotExplainedVariance(res *pipeline.Result, path string) error {
	p := plot.New()
	p.Title.Text = "Explained variance ratio"
	p.Y.Label.Text = "Ratio"
	p.Y.Min = 0
	p.Y.Max = 1

	vals := make(plotter.Values, len(res.Components))
	names := make([]string, len(res.Components))
	for i, c := range res.Components {
		vals[i] = c.ExplainedVarianceRatio
		names[i] = ComponentName(i)
	}
	bars, err := plotter.NewBarChart(vals, vg.Points(30))
	if err != nil {
		return err
	}
	bars.Color = color.RGBA{R: 255, G: 120, A: 255}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)

	return p.Save(4*vg.Inch, 4*vg.Inch, path)
}

func axisLabel(res *pipeline.Result, i int) string {
	if i >= len(res.Components) {
		return ComponentName(i)
	}
	return fmt.Sprintf("%s (%.1f%%)", ComponentName(i), 100*res.Components[i].ExplainedVarianceRatio)
}
