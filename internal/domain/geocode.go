package domain

import (
	"context"
	"log/slog"
)

// EnrichHotspots attaches place names to hotspots via reverse geocoding.
// A nil geocoder leaves the hotspots untouched; a failed lookup marks the
// hotspot as "failed" and moves on (graceful degradation).
func EnrichHotspots(ctx context.Context, hotspots []Hotspot, geocoder Geocoder, logger *slog.Logger) []Hotspot {
	if geocoder == nil {
		return hotspots
	}

	out := make([]Hotspot, len(hotspots))
	for i, h := range hotspots {
		out[i] = enrichHotspot(ctx, h, geocoder, logger)
	}
	return out
}

func enrichHotspot(ctx context.Context, h Hotspot, geocoder Geocoder, logger *slog.Logger) Hotspot {
	result, err := geocoder.ReverseGeocode(ctx, h.Center.Lat, h.Center.Lon)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"cell_id", h.CellID,
			"lat", h.Center.Lat,
			"lon", h.Center.Lon,
			"error", err,
		)
		h.GeoSource = "failed"
		return h
	}
	if result.FormattedAddress == "" {
		h.GeoSource = "original"
		return h
	}
	h.PlaceName = result.PlaceName
	h.FormattedAddress = result.FormattedAddress
	h.GeoConfidence = result.Confidence
	h.GeoSource = "reverse"
	return h
}
