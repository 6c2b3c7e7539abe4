// Package dataset loads the US-Accidents CSV into a gota DataFrame, cleans
// it and maps the surviving rows onto domain.RawAccident.
package dataset

import (
	"errors"
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/couchcryptid/accident-eda/internal/domain"
)

var (
	// ErrEmptyDataset is returned when the file holds no data rows.
	ErrEmptyDataset = errors.New("dataset has no data rows")
	// ErrMissingColumn is returned when a column needed by the analysis is absent.
	ErrMissingColumn = errors.New("missing required column")
)

// DroppedColumns are removed before rows with missing values are discarded.
// They are sparsely populated and would otherwise eliminate most rows.
var DroppedColumns = []string{"End_Lat", "End_Lng", "Wind_Chill(F)", "Precipitation(in)"}

// nanValues are the cell contents treated as missing. Matching is exact
// and case-sensitive, so "none" or "Null" are kept as values.
var nanValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// Table is an in-memory, string-typed view of the dataset. Every operation
// returns a new Table; the receiver is never modified.
type Table struct {
	df dataframe.DataFrame
	// lines holds the 1-based source row number of each table row.
	lines []int
}

// NewTable builds a Table from CSV records whose first record is the header.
func NewTable(records [][]string) (*Table, error) {
	if len(records) < 2 {
		return nil, ErrEmptyDataset
	}
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.NaNValues(nanValues),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("load records: %w", df.Err)
	}
	lines := make([]int, df.Nrow())
	for i := range lines {
		lines[i] = i + 1
	}
	return &Table{df: df, lines: lines}, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int { return t.df.Nrow() }

// Columns returns the column names in file order.
func (t *Table) Columns() []string { return t.df.Names() }

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.df.Names() {
		if c == name {
			return true
		}
	}
	return false
}

// Clean drops the named columns that exist in the table and then removes
// every row with a missing value in any remaining column.
func (t *Table) Clean(drop []string) (*Table, error) {
	df := t.df
	var present []string
	for _, name := range drop {
		if t.HasColumn(name) {
			present = append(present, name)
		}
	}
	if len(present) > 0 {
		df = df.Drop(present)
		if df.Err != nil {
			return nil, fmt.Errorf("drop columns: %w", df.Err)
		}
	}

	missing := make([]bool, df.Nrow())
	for _, name := range df.Names() {
		for i, nan := range df.Col(name).IsNaN() {
			if nan {
				missing[i] = true
			}
		}
	}
	keep := make([]int, 0, len(missing))
	lines := make([]int, 0, len(missing))
	for i, m := range missing {
		if !m {
			keep = append(keep, i)
			lines = append(lines, t.lines[i])
		}
	}
	if len(keep) == df.Nrow() {
		return &Table{df: df, lines: lines}, nil
	}

	if len(keep) == 0 {
		return &Table{df: emptyLike(df), lines: lines}, nil
	}
	df = df.Subset(keep)
	if df.Err != nil {
		return nil, fmt.Errorf("drop incomplete rows: %w", df.Err)
	}
	return &Table{df: df, lines: lines}, nil
}

// MissingCells counts the cells holding a missing value.
func (t *Table) MissingCells() int {
	n := 0
	for _, name := range t.df.Names() {
		for _, nan := range t.df.Col(name).IsNaN() {
			if nan {
				n++
			}
		}
	}
	return n
}

// RequiredColumns must be present for rows to map onto domain.RawAccident.
func RequiredColumns() []string {
	cols := []string{"Start_Time", "Start_Lat", "Start_Lng", "Weather_Condition"}
	return append(cols, domain.RoadFeatureColumns...)
}

// Records maps every row onto a RawAccident. Columns the struct does not
// know are ignored; known columns absent from the table are left empty.
func (t *Table) Records() ([]domain.RawAccident, error) {
	for _, name := range RequiredColumns() {
		if !t.HasColumn(name) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	names := t.df.Names()
	type binding struct {
		values []string
		field  func(*domain.RawAccident) *string
	}
	var bound []binding
	for _, name := range names {
		if field, ok := rawFields[name]; ok {
			bound = append(bound, binding{values: t.df.Col(name).Records(), field: field})
		}
	}

	out := make([]domain.RawAccident, t.df.Nrow())
	for row := range out {
		out[row].Line = t.lines[row]
		for _, b := range bound {
			*b.field(&out[row]) = b.values[row]
		}
	}
	return out, nil
}

// rawFields maps dataset column names onto the RawAccident fields they fill.
var rawFields = map[string]func(*domain.RawAccident) *string{
	"ID":                    func(r *domain.RawAccident) *string { return &r.ID },
	"Source":                func(r *domain.RawAccident) *string { return &r.Source },
	"Severity":              func(r *domain.RawAccident) *string { return &r.Severity },
	"Start_Time":            func(r *domain.RawAccident) *string { return &r.StartTime },
	"End_Time":              func(r *domain.RawAccident) *string { return &r.EndTime },
	"Start_Lat":             func(r *domain.RawAccident) *string { return &r.StartLat },
	"Start_Lng":             func(r *domain.RawAccident) *string { return &r.StartLng },
	"Distance(mi)":          func(r *domain.RawAccident) *string { return &r.DistanceMi },
	"Description":           func(r *domain.RawAccident) *string { return &r.Description },
	"Street":                func(r *domain.RawAccident) *string { return &r.Street },
	"City":                  func(r *domain.RawAccident) *string { return &r.City },
	"County":                func(r *domain.RawAccident) *string { return &r.County },
	"State":                 func(r *domain.RawAccident) *string { return &r.State },
	"Zipcode":               func(r *domain.RawAccident) *string { return &r.Zipcode },
	"Country":               func(r *domain.RawAccident) *string { return &r.Country },
	"Timezone":              func(r *domain.RawAccident) *string { return &r.Timezone },
	"Airport_Code":          func(r *domain.RawAccident) *string { return &r.AirportCode },
	"Weather_Timestamp":     func(r *domain.RawAccident) *string { return &r.WeatherTimestamp },
	"Temperature(F)":        func(r *domain.RawAccident) *string { return &r.TemperatureF },
	"Humidity(%)":           func(r *domain.RawAccident) *string { return &r.HumidityPct },
	"Pressure(in)":          func(r *domain.RawAccident) *string { return &r.PressureIn },
	"Visibility(mi)":        func(r *domain.RawAccident) *string { return &r.VisibilityMi },
	"Wind_Direction":        func(r *domain.RawAccident) *string { return &r.WindDirection },
	"Wind_Speed(mph)":       func(r *domain.RawAccident) *string { return &r.WindSpeedMph },
	"Weather_Condition":     func(r *domain.RawAccident) *string { return &r.WeatherCondition },
	"Amenity":               func(r *domain.RawAccident) *string { return &r.Amenity },
	"Bump":                  func(r *domain.RawAccident) *string { return &r.Bump },
	"Crossing":              func(r *domain.RawAccident) *string { return &r.Crossing },
	"Give_Way":              func(r *domain.RawAccident) *string { return &r.GiveWay },
	"Junction":              func(r *domain.RawAccident) *string { return &r.Junction },
	"No_Exit":               func(r *domain.RawAccident) *string { return &r.NoExit },
	"Railway":               func(r *domain.RawAccident) *string { return &r.Railway },
	"Roundabout":            func(r *domain.RawAccident) *string { return &r.Roundabout },
	"Station":               func(r *domain.RawAccident) *string { return &r.Station },
	"Stop":                  func(r *domain.RawAccident) *string { return &r.Stop },
	"Traffic_Calming":       func(r *domain.RawAccident) *string { return &r.TrafficCalming },
	"Traffic_Signal":        func(r *domain.RawAccident) *string { return &r.TrafficSignal },
	"Turning_Loop":          func(r *domain.RawAccident) *string { return &r.TurningLoop },
	"Sunrise_Sunset":        func(r *domain.RawAccident) *string { return &r.SunriseSunset },
	"Civil_Twilight":        func(r *domain.RawAccident) *string { return &r.CivilTwilight },
	"Nautical_Twilight":     func(r *domain.RawAccident) *string { return &r.NauticalTwilight },
	"Astronomical_Twilight": func(r *domain.RawAccident) *string { return &r.AstronomicalTwilight },
}

// emptyLike returns a frame with the columns of df and no rows.
func emptyLike(df dataframe.DataFrame) dataframe.DataFrame {
	names := df.Names()
	cols := make([]series.Series, len(names))
	for i, name := range names {
		cols[i] = series.New([]string{}, series.String, name)
	}
	return dataframe.New(cols...)
}
