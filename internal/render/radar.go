package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/couchcryptid/accident-eda/internal/domain"
)

// MonthRadar draws accidents per month as a filled polygon over twelve
// evenly spaced spokes, January on the positive x axis and counter-clockwise.
type MonthRadar struct{}

func (MonthRadar) Name() string { return MonthFile }

func (MonthRadar) Render(w io.Writer, rep *domain.Report) error {
	months := rep.ByMonth
	n := len(months)
	if n == 0 {
		return fmt.Errorf("radar chart needs at least one month")
	}

	maxCount := 0
	for _, b := range months {
		maxCount = max(maxCount, b.Count)
	}
	radius := func(count int) float64 {
		if maxCount == 0 {
			return 0
		}
		return float64(count) / float64(maxCount)
	}
	point := func(k int, r float64) plotter.XY {
		theta := 2 * math.Pi * float64(k%n) / float64(n)
		return plotter.XY{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
	}

	p := plot.New()
	p.Title.Text = "Accidents by Month"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.HideAxes()

	for _, r := range []float64{0.25, 0.5, 0.75, 1} {
		ring := make(plotter.XYs, n+1)
		for k := range ring {
			ring[k] = point(k, r)
		}
		if err := addLine(p, ring, grey, vg.Points(0.5)); err != nil {
			return err
		}
	}
	for k := range n {
		if err := addLine(p, plotter.XYs{{}, point(k, 1)}, grey, vg.Points(0.5)); err != nil {
			return err
		}
	}

	loop := domain.CloseLoop(months)
	outline := make(plotter.XYs, len(loop))
	for k, b := range loop {
		outline[k] = point(k, radius(b.Count))
	}
	area, err := plotter.NewPolygon(outline)
	if err != nil {
		return fmt.Errorf("month polygon: %w", err)
	}
	area.Color = withAlpha(orange, 64)
	area.LineStyle.Width = vg.Length(0)
	p.Add(area)
	if err := addLine(p, outline, orange, vg.Points(2)); err != nil {
		return err
	}

	xys := make(plotter.XYs, n)
	names := make([]string, n)
	for k, b := range months {
		xys[k] = point(k, 1.15)
		names[k] = b.Label
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: names})
	if err != nil {
		return fmt.Errorf("month labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(labels)

	p.X.Min, p.X.Max = -1.35, 1.35
	p.Y.Min, p.Y.Max = -1.35, 1.35
	return writePNG(w, p, 8*vg.Inch, 8*vg.Inch)
}

func addLine(p *plot.Plot, xys plotter.XYs, c color.Color, width vg.Length) error {
	l, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("line: %w", err)
	}
	l.Color = c
	l.Width = width
	p.Add(l)
	return nil
}
