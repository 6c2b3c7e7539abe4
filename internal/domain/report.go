package domain

import "time"

// RowStats accounts for every row between the file and the final records.
type RowStats struct {
	Loaded  int `json:"loaded"`  // data rows read from the file
	Cleaned int `json:"cleaned"` // rows left after dropping incomplete ones
	Parsed  int `json:"parsed"`  // rows that converted into typed records
}

// ReportOptions controls the sampled and ranked parts of a report.
type ReportOptions struct {
	TopWeather   int
	SampleSize   int
	SampleSeed   uint64
	HotspotCount int
	HotspotCell  float64
}

// Report bundles every aggregation computed for one analysis run.
type Report struct {
	Source      string    `json:"source"`
	GeneratedAt time.Time `json:"generated_at"`
	Rows        RowStats  `json:"rows"`

	ByHour       []HourCount `json:"by_hour"`
	ByWeekday    []Bucket    `json:"by_weekday"`
	ByMonth      []Bucket    `json:"by_month"`
	RoadFeatures []Bucket    `json:"road_features"`
	Weather      []Bucket    `json:"weather"`
	Hotspots     []Hotspot   `json:"hotspots"`

	MapCenter  Geo        `json:"map_center"`
	SampleSeed uint64     `json:"sample_seed"`
	MapSample  []Accident `json:"-"`
}

// BuildReport computes every aggregation over the parsed accidents.
func BuildReport(source string, rows RowStats, accidents []Accident, opts ReportOptions) *Report {
	return &Report{
		Source:       source,
		GeneratedAt:  clock.Now().UTC(),
		Rows:         rows,
		ByHour:       CountByHour(accidents),
		ByWeekday:    CountByWeekday(accidents),
		ByMonth:      CountByMonth(accidents),
		RoadFeatures: SumRoadFeatures(accidents),
		Weather:      TopWeatherConditions(accidents, opts.TopWeather),
		Hotspots:     Hotspots(accidents, opts.HotspotCell, opts.HotspotCount),
		MapCenter:    MapCenter(accidents),
		SampleSeed:   opts.SampleSeed,
		MapSample:    Sample(accidents, opts.SampleSize, opts.SampleSeed),
	}
}
