package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/couchcryptid/accident-eda/internal/domain"
)

// WeatherChart writes an interactive horizontal bar chart of the most
// frequent weather conditions, coloured on a continuous viridis scale.
type WeatherChart struct{}

func (WeatherChart) Name() string { return WeatherFile }

func (WeatherChart) Render(w io.Writer, rep *domain.Report) error {
	labels := make([]string, len(rep.Weather))
	data := make([]opts.BarData, len(rep.Weather))
	maxCount := 0
	for i, b := range rep.Weather {
		labels[i] = b.Label
		data[i] = opts.BarData{Name: b.Label, Value: b.Count}
		maxCount = max(maxCount, b.Count)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Accidents by Weather Condition",
			Theme:     types.ThemeChalk,
			Width:     "900px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Accidents by Weather Condition",
			Subtitle: fmt.Sprintf("Top %d conditions", len(rep.Weather)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(max(maxCount, 1)),
			InRange:    &opts.VisualMapInRange{Color: viridisStops},
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Number of Accidents"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Weather Condition"}),
	)
	bar.SetXAxis(labels).AddSeries("Accidents", data)
	bar.XYReversal()

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("weather chart: %w", err)
	}
	return nil
}
