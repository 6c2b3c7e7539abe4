package domain

import (
	"fmt"
	"math"
	"sort"
)

// Hotspot is a lat/lon grid cell ranked by the number of accidents in it.
type Hotspot struct {
	CellID string `json:"cell_id"` // "<row>_<col>" on the grid
	Center Geo    `json:"center"`
	Count  int    `json:"count"`

	// Geocoding enrichment fields.
	PlaceName        string  `json:"place_name,omitempty"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
	GeoConfidence    float64 `json:"geo_confidence,omitempty"`
	GeoSource        string  `json:"geo_source,omitempty"` // "reverse", "original", "failed"
}

// Hotspots buckets accidents on a grid of cellDeg-degree cells and returns
// the n busiest cells, highest count first. Ties are ordered by cell ID.
func Hotspots(accidents []Accident, cellDeg float64, n int) []Hotspot {
	if cellDeg <= 0 || n <= 0 || len(accidents) == 0 {
		return nil
	}

	type cellKey struct{ row, col int }
	counts := make(map[cellKey]int)
	for i := range accidents {
		k := cellKey{
			row: int(math.Floor(accidents[i].Geo.Lat / cellDeg)),
			col: int(math.Floor(accidents[i].Geo.Lon / cellDeg)),
		}
		counts[k]++
	}

	out := make([]Hotspot, 0, len(counts))
	for k, c := range counts {
		out = append(out, Hotspot{
			CellID: fmt.Sprintf("%d_%d", k.row, k.col),
			Center: Geo{
				Lat: (float64(k.row) + 0.5) * cellDeg,
				Lon: (float64(k.col) + 0.5) * cellDeg,
			},
			Count: c,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].CellID < out[j].CellID
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
