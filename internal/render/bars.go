package render

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/couchcryptid/accident-eda/internal/domain"
)

// WeekdayChart draws accidents per weekday as horizontal bars on a
// coolwarm gradient.
type WeekdayChart struct{}

func (WeekdayChart) Name() string { return WeekdayFile }

func (WeekdayChart) Render(w io.Writer, rep *domain.Report) error {
	return horizontalBars(w, barChart{
		title:   "Accidents by Day of Week",
		xLabel:  "Number of Accidents",
		yLabel:  "Day of Week",
		buckets: rep.ByWeekday,
		colors:  gradient(coolwarm(), len(rep.ByWeekday)),
		width:   10 * vg.Inch,
		height:  6 * vg.Inch,
	})
}

// RoadFeatureChart draws the road-feature totals as horizontal bars on a
// viridis gradient.
type RoadFeatureChart struct{}

func (RoadFeatureChart) Name() string { return RoadFile }

func (RoadFeatureChart) Render(w io.Writer, rep *domain.Report) error {
	cm, err := viridis()
	if err != nil {
		return err
	}
	return horizontalBars(w, barChart{
		title:   "Number of Accidents by Road Condition Features",
		xLabel:  "Number of Accidents",
		yLabel:  "Road Condition Feature",
		buckets: rep.RoadFeatures,
		colors:  gradient(cm, len(rep.RoadFeatures)),
		width:   12 * vg.Inch,
		height:  6 * vg.Inch,
	})
}

type barChart struct {
	title, xLabel, yLabel string
	buckets               []domain.Bucket
	colors                []color.Color
	width, height         vg.Length
}

// horizontalBars draws one bar per bucket, the first bucket at the bottom,
// with the count printed past the end of each bar.
func horizontalBars(w io.Writer, c barChart) error {
	p := plot.New()
	p.Title.Text = c.title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = c.xLabel
	p.Y.Label.Text = c.yLabel

	maxCount := 0
	names := make([]string, len(c.buckets))
	for i, b := range c.buckets {
		names[i] = b.Label
		maxCount = max(maxCount, b.Count)

		bar, err := plotter.NewBarChart(plotter.Values{float64(b.Count)}, vg.Points(20))
		if err != nil {
			return fmt.Errorf("bar %q: %w", b.Label, err)
		}
		bar.Horizontal = true
		bar.XMin = float64(i)
		bar.Color = c.colors[i]
		bar.LineStyle.Width = vg.Length(0)
		p.Add(bar)
	}

	if len(c.buckets) > 0 {
		pad := float64(max(maxCount, 1)) * 0.01
		xys := make(plotter.XYs, len(c.buckets))
		text := make([]string, len(c.buckets))
		for i, b := range c.buckets {
			xys[i] = plotter.XY{X: float64(b.Count) + pad, Y: float64(i)}
			text[i] = formatCount(b.Count)
		}
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: text})
		if err != nil {
			return fmt.Errorf("count labels: %w", err)
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].YAlign = draw.YCenter
		}
		p.Add(labels)
		p.NominalY(names...)
	}

	p.X.Min = 0
	p.X.Max = float64(max(maxCount, 1)) * 1.15
	return writePNG(w, p, c.width, c.height)
}

func writePNG(w io.Writer, p *plot.Plot, width, height vg.Length) error {
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("draw plot: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}
