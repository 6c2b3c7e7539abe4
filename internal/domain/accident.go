package domain

import "time"

// RawAccident is one cleaned dataset row before type conversion. Field
// names follow the US-Accidents header; the json tags are the column names.
type RawAccident struct {
	ID                   string `json:"ID"`
	Source               string `json:"Source"`
	Severity             string `json:"Severity"`
	StartTime            string `json:"Start_Time"`
	EndTime              string `json:"End_Time"`
	StartLat             string `json:"Start_Lat"`
	StartLng             string `json:"Start_Lng"`
	DistanceMi           string `json:"Distance(mi)"`
	Description          string `json:"Description"`
	Street               string `json:"Street"`
	City                 string `json:"City"`
	County               string `json:"County"`
	State                string `json:"State"`
	Zipcode              string `json:"Zipcode"`
	Country              string `json:"Country"`
	Timezone             string `json:"Timezone"`
	AirportCode          string `json:"Airport_Code"`
	WeatherTimestamp     string `json:"Weather_Timestamp"`
	TemperatureF         string `json:"Temperature(F)"`
	HumidityPct          string `json:"Humidity(%)"`
	PressureIn           string `json:"Pressure(in)"`
	VisibilityMi         string `json:"Visibility(mi)"`
	WindDirection        string `json:"Wind_Direction"`
	WindSpeedMph         string `json:"Wind_Speed(mph)"`
	WeatherCondition     string `json:"Weather_Condition"`
	Amenity              string `json:"Amenity"`
	Bump                 string `json:"Bump"`
	Crossing             string `json:"Crossing"`
	GiveWay              string `json:"Give_Way"`
	Junction             string `json:"Junction"`
	NoExit               string `json:"No_Exit"`
	Railway              string `json:"Railway"`
	Roundabout           string `json:"Roundabout"`
	Station              string `json:"Station"`
	Stop                 string `json:"Stop"`
	TrafficCalming       string `json:"Traffic_Calming"`
	TrafficSignal        string `json:"Traffic_Signal"`
	TurningLoop          string `json:"Turning_Loop"`
	SunriseSunset        string `json:"Sunrise_Sunset"`
	CivilTwilight        string `json:"Civil_Twilight"`
	NauticalTwilight     string `json:"Nautical_Twilight"`
	AstronomicalTwilight string `json:"Astronomical_Twilight"`

	// Line is the 1-based data row number in the source file.
	Line int `json:"-"`
}

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Weather holds the conditions reported by the nearest weather station.
type Weather struct {
	Condition     string  `json:"condition"`
	TemperatureF  float64 `json:"temperature_f,omitempty"`
	HumidityPct   float64 `json:"humidity_pct,omitempty"`
	PressureIn    float64 `json:"pressure_in,omitempty"`
	VisibilityMi  float64 `json:"visibility_mi,omitempty"`
	WindDirection string  `json:"wind_direction,omitempty"`
	WindSpeedMph  float64 `json:"wind_speed_mph,omitempty"`
}

// RoadFeatures flags points of interest near the accident.
type RoadFeatures struct {
	Amenity        bool `json:"amenity"`
	Bump           bool `json:"bump"`
	Crossing       bool `json:"crossing"`
	GiveWay        bool `json:"give_way"`
	Junction       bool `json:"junction"`
	NoExit         bool `json:"no_exit"`
	Railway        bool `json:"railway"`
	Roundabout     bool `json:"roundabout"`
	Station        bool `json:"station"`
	Stop           bool `json:"stop"`
	TrafficCalming bool `json:"traffic_calming"`
	TrafficSignal  bool `json:"traffic_signal"`
	TurningLoop    bool `json:"turning_loop"`
}

// RoadFeatureColumns lists the road-feature columns in schema order.
var RoadFeatureColumns = []string{
	"Amenity", "Bump", "Crossing", "Give_Way", "Junction", "No_Exit",
	"Railway", "Roundabout", "Station", "Stop", "Traffic_Calming",
	"Traffic_Signal", "Turning_Loop",
}

// Flags returns the feature values in RoadFeatureColumns order.
func (r RoadFeatures) Flags() []bool {
	return []bool{
		r.Amenity, r.Bump, r.Crossing, r.GiveWay, r.Junction, r.NoExit,
		r.Railway, r.Roundabout, r.Station, r.Stop, r.TrafficCalming,
		r.TrafficSignal, r.TurningLoop,
	}
}

// Accident is the typed representation of a cleaned row, including the
// derived time features.
type Accident struct {
	ID          string       `json:"id"`
	Source      string       `json:"source,omitempty"`
	Severity    int          `json:"severity"`
	StartTime   time.Time    `json:"start_time"`
	Geo         Geo          `json:"geo"`
	DistanceMi  float64      `json:"distance_mi,omitempty"`
	Description string       `json:"description,omitempty"`
	City        string       `json:"city,omitempty"`
	County      string       `json:"county,omitempty"`
	State       string       `json:"state,omitempty"`
	Weather     Weather      `json:"weather"`
	Road        RoadFeatures `json:"road"`

	Hour  int          `json:"hour"`
	Day   time.Weekday `json:"day"`
	Month time.Month   `json:"month"`
}
