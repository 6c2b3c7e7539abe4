// Package render turns a domain.Report into chart and map artifacts.
package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/couchcryptid/accident-eda/internal/domain"
)

// Artifact file names.
const (
	HourFile    = "accidents_by_hour.png"
	WeekdayFile = "accidents_by_day.png"
	MonthFile   = "accidents_by_month.png"
	RoadFile    = "road_conditions.png"
	WeatherFile = "weather_conditions.html"
	MapFile     = "accident_hotspots_map.html"
)

// Renderer writes one artifact for a report.
type Renderer interface {
	// Name is the artifact file name.
	Name() string
	Render(w io.Writer, rep *domain.Report) error
}

// All returns the renderers for every artifact, writing the cluster map to
// mapFile.
func All(mapFile string) []Renderer {
	if mapFile == "" {
		mapFile = MapFile
	}
	return []Renderer{
		HourChart{},
		WeekdayChart{},
		MonthRadar{},
		RoadFeatureChart{},
		WeatherChart{},
		ClusterMap{File: mapFile},
	}
}

// WriteFile renders r into dir and returns the written path. A partially
// written file is removed when rendering fails.
func WriteFile(dir string, r Renderer, rep *domain.Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, r.Name())
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", r.Name(), err)
	}
	renderErr := r.Render(f, rep)
	closeErr := f.Close()
	if err := errors.Join(renderErr, closeErr); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("render %s: %w", r.Name(), err)
	}
	return path, nil
}
