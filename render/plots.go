// Package render draws boosting runs: prediction charts with gonum/plot and
// tree diagrams with Graphviz.
//
// All functions take the plain data of a boosting.RunResult and never modify
// it.
package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/boostviz/boosting"
	"github.com/YuminosukeSato/boostviz/pkg/errors"
)

// Default chart size.
const (
	PlotWidth  = 8 * vg.Inch
	PlotHeight = 4 * vg.Inch
)

var (
	dataColor       = color.RGBA{R: 0x36, G: 0x7d, B: 0xd8, A: 0xff}
	predictionColor = color.RGBA{R: 0xe5, G: 0x3e, B: 0x3e, A: 0xff}
	baselineColor   = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
)

// PredictionsPlot draws the true samples and the predictions of one history
// step. The Y axis is fixed to res.Bounds so that consecutive steps share the
// same scale.
func PredictionsPlot(res *boosting.RunResult, step int) (*plot.Plot, error) {
	if err := checkStep(res, step); err != nil {
		return nil, err
	}
	s := res.History[step]

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Predictions at Step %d (MSE: %.3f)", step, s.MSE)
	p.X.Label.Text = "X"
	p.Y.Label.Text = "y"

	if err := addData(p, res); err != nil {
		return nil, err
	}
	if err := addLine(p, "Predictions", res.X, s.Predictions, predictionColor, false); err != nil {
		return nil, err
	}

	fixY(p, res.Bounds)
	return p, nil
}

// OverviewPlot draws the true samples with the initial mean prediction and the
// final ensemble prediction.
func OverviewPlot(res *boosting.RunResult) (*plot.Plot, error) {
	if err := checkStep(res, 0); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Gradient Boosting: %d Trees (MSE: %.3f)", res.Rounds(), res.Metrics.MSE)
	p.X.Label.Text = "X"
	p.Y.Label.Text = "y"

	if err := addData(p, res); err != nil {
		return nil, err
	}
	if err := addLine(p, "Initial (Mean)", res.X, res.History[0].Predictions, baselineColor, true); err != nil {
		return nil, err
	}
	if err := addLine(p, "Final Prediction", res.X, res.FinalPredictions, predictionColor, false); err != nil {
		return nil, err
	}

	fixY(p, res.Bounds)
	return p, nil
}

// LearningCurvePlot draws the training MSE of every history step.
func LearningCurvePlot(res *boosting.RunResult) (*plot.Plot, error) {
	if err := checkStep(res, 0); err != nil {
		return nil, err
	}

	pts := make(plotter.XYs, len(res.History))
	for i, s := range res.History {
		pts[i].X = float64(i)
		pts[i].Y = s.MSE
	}

	p := plot.New()
	p.Title.Text = "Training MSE"
	p.X.Label.Text = "Step"
	p.Y.Label.Text = "MSE"

	if err := plotutil.AddLinePoints(p, "MSE", pts); err != nil {
		return nil, errors.Wrap(err, "render: learning curve")
	}
	p.Y.Min = 0
	return p, nil
}

// ResidualPlot draws a box plot of the final residuals.
func ResidualPlot(res *boosting.RunResult) (*plot.Plot, error) {
	if err := checkStep(res, 0); err != nil {
		return nil, err
	}

	residuals := make(plotter.Values, len(res.Y))
	for i := range res.Y {
		residuals[i] = res.Y[i] - res.FinalPredictions[i]
	}

	p := plot.New()
	p.Title.Text = "Final Residuals"
	p.Y.Label.Text = "y - prediction"

	box, err := plotter.NewBoxPlot(vg.Points(40), 0, residuals)
	if err != nil {
		return nil, errors.Wrap(err, "render: residual box plot")
	}
	p.Add(box)
	p.NominalX("residuals")
	return p, nil
}

// SavePlot writes p to path using the default chart size. The image format
// follows the file extension.
func SavePlot(p *plot.Plot, path string) error {
	if err := p.Save(PlotWidth, PlotHeight, path); err != nil {
		return errors.Wrapf(err, "render: save %s", path)
	}
	return nil
}

// WritePlot encodes p in format ("png", "svg", "pdf", ...) to w.
func WritePlot(p *plot.Plot, format string, w io.Writer) error {
	wt, err := p.WriterTo(PlotWidth, PlotHeight, format)
	if err != nil {
		return errors.Wrapf(err, "render: encode %s", format)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "render: write plot")
	}
	return nil
}

func checkStep(res *boosting.RunResult, step int) error {
	if res == nil || len(res.History) == 0 {
		return errors.NewValueError("render", "empty run result")
	}
	if step < 0 || step >= len(res.History) {
		return errors.NewValidationError("step", fmt.Sprintf("must be in [0, %d]", len(res.History)-1), step)
	}
	return nil
}

func addData(p *plot.Plot, res *boosting.RunResult) error {
	pts := make(plotter.XYs, len(res.X))
	for i := range res.X {
		pts[i].X = res.X[i]
		pts[i].Y = res.Y[i]
	}

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "render: data scatter")
	}
	sc.GlyphStyle.Color = dataColor
	sc.GlyphStyle.Radius = vg.Points(2)

	p.Add(sc)
	p.Legend.Add("True Data", sc)
	return nil
}

func addLine(p *plot.Plot, name string, xs, ys []float64, c color.Color, dashed bool) error {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}

	l, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrapf(err, "render: %s line", name)
	}
	l.LineStyle.Color = c
	l.LineStyle.Width = vg.Points(2)
	if dashed {
		l.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	}

	p.Add(l)
	p.Legend.Add(name, l)
	return nil
}

// fixY pins the Y axis after all plotters were added.
func fixY(p *plot.Plot, b boosting.Bounds) {
	if b.Max-b.Min <= 0 || math.IsNaN(b.Min) || math.IsNaN(b.Max) {
		return
	}
	p.Y.Min = b.Min
	p.Y.Max = b.Max
}
