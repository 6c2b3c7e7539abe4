package domain

import (
	"sort"
	"time"
)

// Bucket is one category of an aggregation and its count.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// HourCount is the number of accidents that started in a given hour.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// Weekdays is the canonical Monday-first weekday order.
var Weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// CountByHour counts accidents per hour of day, ascending by hour. Hours
// with no accidents are omitted.
func CountByHour(accidents []Accident) []HourCount {
	var counts [24]int
	for i := range accidents {
		counts[accidents[i].Hour]++
	}
	out := make([]HourCount, 0, 24)
	for h, c := range counts {
		if c > 0 {
			out = append(out, HourCount{Hour: h, Count: c})
		}
	}
	return out
}

// CountByWeekday counts accidents per weekday in Monday..Sunday order.
// Weekdays absent from the data are reported with a zero count.
func CountByWeekday(accidents []Accident) []Bucket {
	var counts [7]int
	for i := range accidents {
		counts[accidents[i].Day]++
	}
	out := make([]Bucket, len(Weekdays))
	for i, d := range Weekdays {
		out[i] = Bucket{Label: d.String(), Count: counts[d]}
	}
	return out
}

// CountByMonth counts accidents per month in January..December order.
// Months absent from the data are reported with a zero count.
func CountByMonth(accidents []Accident) []Bucket {
	var counts [13]int
	for i := range accidents {
		counts[accidents[i].Month]++
	}
	out := make([]Bucket, 0, 12)
	for m := time.January; m <= time.December; m++ {
		out = append(out, Bucket{Label: m.String(), Count: counts[m]})
	}
	return out
}

// CloseLoop returns a copy of buckets with the first bucket repeated at the
// end, closing the outline of a radar chart.
func CloseLoop(buckets []Bucket) []Bucket {
	if len(buckets) == 0 {
		return nil
	}
	out := make([]Bucket, len(buckets), len(buckets)+1)
	copy(out, buckets)
	return append(out, buckets[0])
}

// SumRoadFeatures counts, for each road-feature flag, the accidents where it
// is set. The result is sorted by count descending; ties keep schema order.
func SumRoadFeatures(accidents []Accident) []Bucket {
	sums := make([]int, len(RoadFeatureColumns))
	for i := range accidents {
		for j, set := range accidents[i].Road.Flags() {
			if set {
				sums[j]++
			}
		}
	}
	out := make([]Bucket, len(RoadFeatureColumns))
	for i, name := range RoadFeatureColumns {
		out[i] = Bucket{Label: name, Count: sums[i]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// TopWeatherConditions counts accidents per weather condition and returns at
// most n conditions, highest count first. Ties are ordered by label.
func TopWeatherConditions(accidents []Accident, n int) []Bucket {
	counts := make(map[string]int)
	for i := range accidents {
		counts[accidents[i].Weather.Condition]++
	}
	return topBuckets(counts, n)
}

// MapCenter returns the mean coordinate of all accidents.
func MapCenter(accidents []Accident) Geo {
	if len(accidents) == 0 {
		return Geo{}
	}
	var lat, lon float64
	for i := range accidents {
		lat += accidents[i].Geo.Lat
		lon += accidents[i].Geo.Lon
	}
	n := float64(len(accidents))
	return Geo{Lat: lat / n, Lon: lon / n}
}

func topBuckets(counts map[string]int, n int) []Bucket {
	out := make([]Bucket, 0, len(counts))
	for label, c := range counts {
		out = append(out, Bucket{Label: label, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Total sums the counts of buckets.
func Total(buckets []Bucket) int {
	n := 0
	for _, b := range buckets {
		n += b.Count
	}
	return n
}
