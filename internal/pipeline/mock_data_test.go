package pipeline_test

import (
	"fmt"
	"strconv"
	"time"

	"github.com/couchcryptid/accident-eda/internal/domain"
)

var mockHeader = append([]string{
	"ID", "Source", "Severity", "Start_Time", "End_Time", "Start_Lat", "Start_Lng",
	"End_Lat", "End_Lng", "Distance(mi)", "Description", "City", "County", "State",
	"Temperature(F)", "Wind_Chill(F)", "Humidity(%)", "Precipitation(in)",
	"Weather_Condition",
}, domain.RoadFeatureColumns...)

var mockWeather = []string{"Clear", "Overcast", "Light Rain", "Mostly Cloudy", "Snow", "Fog"}

// mockRecords builds n well-formed rows spread across hours, weekdays and
// months, with End_Lat, End_Lng and Wind_Chill(F) left empty on every row.
func mockRecords(n int) [][]string {
	base := time.Date(2016, time.January, 4, 0, 30, 0, 0, time.UTC) // a Monday
	records := [][]string{mockHeader}
	for i := range n {
		start := base.Add(time.Duration(i) * 31 * time.Hour).AddDate(0, i%12, 0)
		row := []string{
			fmt.Sprintf("A-%d", i+1),
			"Source2",
			strconv.Itoa(1 + i%4),
			start.Format("2006-01-02 15:04:05"),
			start.Add(time.Hour).Format("2006-01-02 15:04:05"),
			strconv.FormatFloat(30+float64(i%10), 'f', 6, 64),
			strconv.FormatFloat(-100+float64(i%7), 'f', 6, 64),
			"", "",
			"0.01",
			"Accident on I-70",
			"Dayton", "Montgomery", "OH",
			"36.9", "", "91.0", "0.02",
			mockWeather[i%len(mockWeather)],
		}
		for j := range domain.RoadFeatureColumns {
			row = append(row, strconv.FormatBool((i+j)%5 == 0))
		}
		records = append(records, row)
	}
	return records
}

func setColumn(records [][]string, row int, column, value string) {
	for i, name := range records[0] {
		if name == column {
			records[row][i] = value
			return
		}
	}
	panic("unknown column " + column)
}
