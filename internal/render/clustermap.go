package render

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/couchcryptid/accident-eda/internal/domain"
)

// DefaultZoom is the initial zoom level of the cluster map.
const DefaultZoom = 6

//go:embed clustermap.html.tmpl
var clusterMapSource string

var clusterMapTmpl = template.Must(template.New("clustermap").Parse(clusterMapSource))

// ClusterMap writes a Leaflet page with one clustered marker per sampled
// accident and a circle per hotspot cell.
type ClusterMap struct {
	File string
}

func (m ClusterMap) Name() string {
	if m.File == "" {
		return MapFile
	}
	return m.File
}

type mapMarker struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Popup string  `json:"popup"`
}

type mapHotspot struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Radius float64 `json:"radius"`
	Label  string  `json:"label"`
}

type mapPage struct {
	Title    string
	Center   domain.Geo
	Zoom     int
	Markers  []mapMarker
	Hotspots []mapHotspot
}

func (m ClusterMap) Render(w io.Writer, rep *domain.Report) error {
	page := mapPage{
		Title:    "Accident Hotspots",
		Center:   rep.MapCenter,
		Zoom:     DefaultZoom,
		Markers:  make([]mapMarker, 0, len(rep.MapSample)),
		Hotspots: make([]mapHotspot, 0, len(rep.Hotspots)),
	}
	for i := range rep.MapSample {
		a := &rep.MapSample[i]
		page.Markers = append(page.Markers, mapMarker{Lat: a.Geo.Lat, Lon: a.Geo.Lon, Popup: popup(a)})
	}

	top := 0
	for _, h := range rep.Hotspots {
		top = max(top, h.Count)
	}
	for _, h := range rep.Hotspots {
		page.Hotspots = append(page.Hotspots, mapHotspot{
			Lat:    h.Center.Lat,
			Lon:    h.Center.Lon,
			Radius: 8 + 22*float64(h.Count)/float64(max(top, 1)),
			Label:  hotspotLabel(h),
		})
	}

	if err := clusterMapTmpl.Execute(w, page); err != nil {
		return fmt.Errorf("cluster map: %w", err)
	}
	return nil
}

func popup(a *domain.Accident) string {
	parts := []string{a.ID, a.StartTime.Format("2006-01-02 15:04")}
	if a.City != "" || a.State != "" {
		parts = append(parts, strings.TrimPrefix(a.City+", "+a.State, ", "))
	}
	if a.Weather.Condition != "" {
		parts = append(parts, a.Weather.Condition)
	}
	return strings.Join(parts, " | ")
}

func hotspotLabel(h domain.Hotspot) string {
	name := h.PlaceName
	if name == "" {
		name = "cell " + h.CellID
	}
	noun := "accidents"
	if h.Count == 1 {
		noun = "accident"
	}
	return fmt.Sprintf("%s: %s %s", name, formatCount(h.Count), noun)
}
