// Package mockdata generates synthetic US-Accidents rows for fixtures,
// local runs and integration tests.
package mockdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/couchcryptid/accident-eda/internal/domain"
)

// Header is the column layout of generated files. It is a subset of the
// real dataset's columns that includes every column the analysis reads or drops.
var Header = append([]string{
	"ID", "Source", "Severity", "Start_Time", "End_Time", "Start_Lat", "Start_Lng",
	"End_Lat", "End_Lng", "Distance(mi)", "Description", "Street", "City", "County", "State",
	"Zipcode", "Timezone", "Temperature(F)", "Wind_Chill(F)", "Humidity(%)", "Pressure(in)",
	"Visibility(mi)", "Wind_Direction", "Wind_Speed(mph)", "Precipitation(in)",
	"Weather_Condition",
}, domain.RoadFeatureColumns...)

type city struct {
	name, county, state, zip, tz string
	lat, lon                     float64
}

var cities = []city{
	{"Los Angeles", "Los Angeles", "CA", "90012", "US/Pacific", 34.0522, -118.2437},
	{"Houston", "Harris", "TX", "77002", "US/Central", 29.7604, -95.3698},
	{"Miami", "Miami-Dade", "FL", "33130", "US/Eastern", 25.7617, -80.1918},
	{"Charlotte", "Mecklenburg", "NC", "28202", "US/Eastern", 35.2271, -80.8431},
	{"Dayton", "Montgomery", "OH", "45402", "US/Eastern", 39.7589, -84.1916},
	{"Sacramento", "Sacramento", "CA", "95814", "US/Pacific", 38.5816, -121.4944},
	{"Minneapolis", "Hennepin", "MN", "55401", "US/Central", 44.9778, -93.2650},
	{"Seattle", "King", "WA", "98101", "US/Pacific", 47.6062, -122.3321},
}

var weather = []string{
	"Fair", "Fair", "Fair", "Clear", "Mostly Cloudy", "Cloudy", "Overcast",
	"Partly Cloudy", "Light Rain", "Rain", "Light Snow", "Fog", "Haze",
	"Heavy Rain", "Thunderstorm", "Scattered Clouds",
}

var windDirections = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW", "CALM", "VAR"}

// roadRate is the probability of each road-feature flag being True, in
// domain.RoadFeatureColumns order.
var roadRate = []float64{0.01, 0.001, 0.08, 0.005, 0.12, 0.03, 0.01, 0.02, 0.04, 0.001, 0.03, 0.15, 0}

// base is the start of the generated time range (2016-2023, like the real dataset).
var base = time.Date(2016, time.January, 1, 0, 0, 0, 0, time.UTC)

const spanHours = 8 * 365 * 24

// Records returns a header row followed by n generated rows. The same seed
// always yields the same rows. About one row in fifty has an empty
// Weather_Condition, and End_Lat, End_Lng, Wind_Chill(F) and
// Precipitation(in) are mostly empty, as in the real data.
func Records(n int, seed uint64) [][]string {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	records := make([][]string, 0, n+1)
	records = append(records, Header)
	for i := range n {
		records = append(records, row(rng, i))
	}
	return records
}

func row(rng *rand.Rand, i int) []string {
	c := cities[rng.IntN(len(cities))]
	// Skew toward commute hours.
	start := base.Add(time.Duration(rng.IntN(spanHours)) * time.Hour)
	if rng.Float64() < 0.4 {
		rush := []int{7, 8, 16, 17}[rng.IntN(4)]
		start = time.Date(start.Year(), start.Month(), start.Day(), rush, 0, 0, 0, time.UTC)
	}
	start = start.Add(time.Duration(rng.IntN(3600)) * time.Second)
	lat := c.lat + rng.NormFloat64()*0.15
	lon := c.lon + rng.NormFloat64()*0.15

	cond := weather[rng.IntN(len(weather))]
	if rng.IntN(50) == 0 {
		cond = ""
	}
	var endLat, endLng, windChill, precip string
	if rng.IntN(4) == 0 {
		endLat = formatFloat(lat+0.01, 6)
		endLng = formatFloat(lon+0.01, 6)
		windChill = formatFloat(20+rng.Float64()*40, 1)
		precip = formatFloat(rng.Float64()*0.2, 2)
	}

	r := []string{
		fmt.Sprintf("A-%d", i+1),
		[]string{"Source1", "Source2", "Source3"}[rng.IntN(3)],
		strconv.Itoa(1 + rng.IntN(4)),
		start.Format("2006-01-02 15:04:05"),
		start.Add(time.Duration(15+rng.IntN(240)) * time.Minute).Format("2006-01-02 15:04:05"),
		formatFloat(lat, 6),
		formatFloat(lon, 6),
		endLat, endLng,
		formatFloat(rng.Float64()*2, 3),
		"Accident on " + c.name + " road",
		"Main St",
		c.name, c.county, c.state, c.zip, c.tz,
		formatFloat(10+rng.Float64()*80, 1),
		windChill,
		formatFloat(20+rng.Float64()*80, 0),
		formatFloat(29+rng.Float64()*1.5, 2),
		formatFloat(float64(1+rng.IntN(10)), 1),
		windDirections[rng.IntN(len(windDirections))],
		formatFloat(rng.Float64()*25, 1),
		precip,
		cond,
	}
	for _, p := range roadRate {
		r = append(r, titleBool(rng.Float64() < p))
	}
	return r
}

// Write encodes records as CSV.
func Write(w io.Writer, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// titleBool matches the dataset's "True"/"False" spelling.
func titleBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
