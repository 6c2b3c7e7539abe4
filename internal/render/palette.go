package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// viridisStops are control points of the viridis colour scale, dark to light.
var viridisStops = []string{"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"}

var (
	purple = color.RGBA{R: 128, G: 0, B: 128, A: 255}
	orange = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	grey   = color.RGBA{R: 190, G: 190, B: 190, A: 255}
)

func coolwarm() palette.ColorMap {
	cm := moreland.SmoothBlueRed()
	cm.SetMax(1)
	cm.SetMin(0)
	return cm
}

func viridis() (palette.ColorMap, error) {
	stops := make([]color.Color, len(viridisStops))
	for i, s := range viridisStops {
		c, err := parseHex(s)
		if err != nil {
			return nil, err
		}
		stops[i] = c
	}
	cm, err := moreland.NewLuminance(stops)
	if err != nil {
		return nil, fmt.Errorf("viridis palette: %w", err)
	}
	cm.SetMax(1)
	cm.SetMin(0)
	return cm, nil
}

// gradient returns n colours spread evenly across cm.
func gradient(cm palette.ColorMap, n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		c, err := cm.At(t)
		if err != nil {
			c = grey
		}
		out[i] = c
	}
	return out
}

func parseHex(s string) (color.RGBA, error) {
	var c color.RGBA
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("parse colour %q: %w", s, err)
	}
	c.A = 255
	return c, nil
}

func withAlpha(c color.RGBA, a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}
