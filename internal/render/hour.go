package render

import (
	"fmt"
	"io"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/couchcryptid/accident-eda/internal/domain"
)

// HourChart draws accidents per hour of day as a line with a filled area.
type HourChart struct{}

func (HourChart) Name() string { return HourFile }

func (HourChart) Render(w io.Writer, rep *domain.Report) error {
	xs := make([]float64, 0, len(rep.ByHour))
	ys := make([]float64, 0, len(rep.ByHour))
	maxCount := 0
	for _, h := range rep.ByHour {
		xs = append(xs, float64(h.Hour))
		ys = append(ys, float64(h.Count))
		maxCount = max(maxCount, h.Count)
	}
	if len(xs) == 0 {
		// go-chart rejects empty series; draw a flat line instead.
		xs, ys = []float64{0, 23}, []float64{0, 0}
	}

	ticks := make([]chart.Tick, 24)
	for h := range ticks {
		ticks[h] = chart.Tick{Value: float64(h), Label: strconv.Itoa(h)}
	}

	line := drawing.Color{R: purple.R, G: purple.G, B: purple.B, A: 255}
	graph := chart.Chart{
		Title:  "Accidents by Hour of Day",
		Width:  1200,
		Height: 600,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "Hour of Day",
			Range: &chart.ContinuousRange{Min: 0, Max: 23},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  "Number of Accidents",
			Range: &chart.ContinuousRange{Min: 0, Max: float64(max(maxCount, 1)) * 1.1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return formatCount(int(f))
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Accidents",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: line,
					StrokeWidth: 3,
					FillColor:   line.WithAlpha(51),
					DotColor:    line,
					DotWidth:    4,
				},
			},
		},
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("hour chart: %w", err)
	}
	return nil
}
