package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidTimestamp is returned when Start_Time matches no known layout.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	// ErrInvalidCoordinate is returned for unparseable or out-of-range coordinates.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrInvalidFlag is returned when a road-feature column is not a boolean.
	ErrInvalidFlag = errors.New("invalid road feature flag")
)

// timeLayouts are tried in order when parsing Start_Time. time.Parse accepts
// fractional seconds after the seconds field even when the layout omits them.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// ParseAccident converts a cleaned row into a typed Accident. Timestamp,
// coordinates and road flags are required; the remaining numeric fields
// fall back to zero when unparseable.
func ParseAccident(raw RawAccident) (Accident, error) {
	start, err := ParseTimestamp(raw.StartTime)
	if err != nil {
		return Accident{}, fmt.Errorf("row %d: %w", raw.Line, err)
	}

	geo, err := parseGeo(raw.StartLat, raw.StartLng)
	if err != nil {
		return Accident{}, fmt.Errorf("row %d: %w", raw.Line, err)
	}

	road, err := parseRoadFeatures(raw)
	if err != nil {
		return Accident{}, fmt.Errorf("row %d: %w", raw.Line, err)
	}

	return Accident{
		ID:          raw.ID,
		Source:      raw.Source,
		Severity:    int(parseFloatOrZero(raw.Severity)),
		StartTime:   start,
		Geo:         geo,
		DistanceMi:  parseFloatOrZero(raw.DistanceMi),
		Description: raw.Description,
		City:        raw.City,
		County:      raw.County,
		State:       raw.State,
		Weather: Weather{
			Condition:     strings.TrimSpace(raw.WeatherCondition),
			TemperatureF:  parseFloatOrZero(raw.TemperatureF),
			HumidityPct:   parseFloatOrZero(raw.HumidityPct),
			PressureIn:    parseFloatOrZero(raw.PressureIn),
			VisibilityMi:  parseFloatOrZero(raw.VisibilityMi),
			WindDirection: raw.WindDirection,
			WindSpeedMph:  parseFloatOrZero(raw.WindSpeedMph),
		},
		Road: road,
	}, nil
}

// ParseTimestamp parses a Start_Time value using the layouts seen in the
// dataset. Times carry no zone and are kept as written (UTC location).
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidTimestamp)
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// DeriveTimeFeatures fills Hour, Day and Month from StartTime.
func DeriveTimeFeatures(a Accident) Accident {
	a.Hour = a.StartTime.Hour()
	a.Day = a.StartTime.Weekday()
	a.Month = a.StartTime.Month()
	return a
}

func parseGeo(latStr, lonStr string) (Geo, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil || lat < -90 || lat > 90 {
		return Geo{}, fmt.Errorf("%w: lat %q", ErrInvalidCoordinate, latStr)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil || lon < -180 || lon > 180 {
		return Geo{}, fmt.Errorf("%w: lng %q", ErrInvalidCoordinate, lonStr)
	}
	return Geo{Lat: lat, Lon: lon}, nil
}

func parseRoadFeatures(raw RawAccident) (RoadFeatures, error) {
	values := []string{
		raw.Amenity, raw.Bump, raw.Crossing, raw.GiveWay, raw.Junction, raw.NoExit,
		raw.Railway, raw.Roundabout, raw.Station, raw.Stop, raw.TrafficCalming,
		raw.TrafficSignal, raw.TurningLoop,
	}
	flags := make([]bool, len(values))
	for i, v := range values {
		b, err := parseFlag(v)
		if err != nil {
			return RoadFeatures{}, fmt.Errorf("%w: %s=%q", ErrInvalidFlag, RoadFeatureColumns[i], v)
		}
		flags[i] = b
	}
	return RoadFeatures{
		Amenity:        flags[0],
		Bump:           flags[1],
		Crossing:       flags[2],
		GiveWay:        flags[3],
		Junction:       flags[4],
		NoExit:         flags[5],
		Railway:        flags[6],
		Roundabout:     flags[7],
		Station:        flags[8],
		Stop:           flags[9],
		TrafficCalming: flags[10],
		TrafficSignal:  flags[11],
		TurningLoop:    flags[12],
	}, nil
}

// parseFlag accepts the dataset's True/False spelling, plus strconv's other forms.
func parseFlag(s string) (bool, error) {
	return strconv.ParseBool(strings.TrimSpace(s))
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
