package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accidentAt(t time.Time) Accident {
	return DeriveTimeFeatures(Accident{StartTime: t})
}

func accidentsAtHours(hours ...int) []Accident {
	out := make([]Accident, len(hours))
	for i, h := range hours {
		out[i] = accidentAt(time.Date(2022, time.June, 1, h, 0, 0, 0, time.UTC))
	}
	return out
}

func TestCountByHour(t *testing.T) {
	got := CountByHour(accidentsAtHours(0, 0, 5, 5, 5, 23))

	want := []HourCount{{Hour: 0, Count: 2}, {Hour: 5, Count: 3}, {Hour: 23, Count: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("hour counts mismatch (-want +got):\n%s", diff)
	}
}

func TestCountByHour_Empty(t *testing.T) {
	assert.Empty(t, CountByHour(nil))
}

func TestCountByWeekday_OrderAndZeroFill(t *testing.T) {
	// 2024-01-01 is a Monday; 2024-01-07 a Sunday.
	accidents := []Accident{
		accidentAt(time.Date(2024, 1, 7, 8, 0, 0, 0, time.UTC)),
		accidentAt(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)),
		accidentAt(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)),
	}

	got := CountByWeekday(accidents)

	want := []Bucket{
		{Label: "Monday", Count: 2},
		{Label: "Tuesday"},
		{Label: "Wednesday"},
		{Label: "Thursday"},
		{Label: "Friday"},
		{Label: "Saturday"},
		{Label: "Sunday", Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("weekday counts mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, len(accidents), Total(got))
}

func TestCountByMonth_OrderAndZeroFill(t *testing.T) {
	accidents := []Accident{
		accidentAt(time.Date(2021, time.December, 24, 8, 0, 0, 0, time.UTC)),
		accidentAt(time.Date(2021, time.February, 2, 8, 0, 0, 0, time.UTC)),
		accidentAt(time.Date(2022, time.February, 3, 8, 0, 0, 0, time.UTC)),
	}

	got := CountByMonth(accidents)

	require.Len(t, got, 12)
	assert.Equal(t, "January", got[0].Label)
	assert.Zero(t, got[0].Count)
	assert.Equal(t, Bucket{Label: "February", Count: 2}, got[1])
	assert.Equal(t, Bucket{Label: "December", Count: 1}, got[11])
	assert.Equal(t, len(accidents), Total(got))
}

func TestCloseLoop(t *testing.T) {
	in := []Bucket{{Label: "January", Count: 4}, {Label: "February", Count: 2}}

	got := CloseLoop(in)

	assert.Equal(t, []Bucket{
		{Label: "January", Count: 4},
		{Label: "February", Count: 2},
		{Label: "January", Count: 4},
	}, got)
	assert.Len(t, in, 2, "input must not be modified")
	assert.Nil(t, CloseLoop(nil))
}

func TestSumRoadFeatures(t *testing.T) {
	accidents := []Accident{
		{Road: RoadFeatures{TrafficSignal: true, Crossing: true}},
		{Road: RoadFeatures{TrafficSignal: true, Junction: true}},
		{Road: RoadFeatures{TrafficSignal: true, Crossing: true}},
		{},
	}

	got := SumRoadFeatures(accidents)

	require.Len(t, got, len(RoadFeatureColumns))
	assert.Equal(t, Bucket{Label: "Traffic_Signal", Count: 3}, got[0])
	assert.Equal(t, Bucket{Label: "Crossing", Count: 2}, got[1])
	assert.Equal(t, Bucket{Label: "Junction", Count: 1}, got[2])
	// Zero-count features keep schema order.
	assert.Equal(t, "Amenity", got[3].Label)
	assert.Equal(t, "Turning_Loop", got[len(got)-1].Label)

	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i].Count, got[i-1].Count, "position %d", i)
	}
}

func TestTopWeatherConditions(t *testing.T) {
	var accidents []Accident
	for i := 0; i < 20; i++ {
		cond := fmt.Sprintf("Condition %02d", i)
		for j := 0; j <= i; j++ {
			accidents = append(accidents, Accident{Weather: Weather{Condition: cond}})
		}
	}

	got := TopWeatherConditions(accidents, 15)

	require.Len(t, got, 15)
	assert.Equal(t, Bucket{Label: "Condition 19", Count: 20}, got[0])
	assert.Equal(t, Bucket{Label: "Condition 05", Count: 6}, got[14])
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i].Count, got[i-1].Count)
	}
}

func TestTopWeatherConditions_TiesByLabel(t *testing.T) {
	accidents := []Accident{
		{Weather: Weather{Condition: "Snow"}},
		{Weather: Weather{Condition: "Fair"}},
		{Weather: Weather{Condition: "Cloudy"}},
	}

	got := TopWeatherConditions(accidents, 2)

	assert.Equal(t, []Bucket{{Label: "Cloudy", Count: 1}, {Label: "Fair", Count: 1}}, got)
}

func TestMapCenter(t *testing.T) {
	accidents := []Accident{
		{Geo: Geo{Lat: 30, Lon: -100}},
		{Geo: Geo{Lat: 40, Lon: -80}},
	}

	assert.Equal(t, Geo{Lat: 35, Lon: -90}, MapCenter(accidents))
	assert.Equal(t, Geo{}, MapCenter(nil))
}

func TestTemporalTotalsMatchRowCount(t *testing.T) {
	var accidents []Accident
	start := time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 500; i++ {
		accidents = append(accidents, accidentAt(start.Add(time.Duration(i)*17*time.Hour)))
	}

	hourTotal := 0
	for _, h := range CountByHour(accidents) {
		assert.GreaterOrEqual(t, h.Hour, 0)
		assert.LessOrEqual(t, h.Hour, 23)
		hourTotal += h.Count
	}
	assert.Equal(t, len(accidents), hourTotal)
	assert.Equal(t, len(accidents), Total(CountByWeekday(accidents)))
	assert.Equal(t, len(accidents), Total(CountByMonth(accidents)))
}
