// Package domain models US traffic-accident records and the aggregations
// computed over them.
//
// # Data Source
//
// Records follow the US-Accidents dataset layout (Moosavi et al.), one CSV
// row per accident reported by traffic APIs between 2016 and 2023. Only a
// bounded prefix of the file is analysed; the dataset adapter reads it,
// drops unneeded columns, removes incomplete rows and hands each remaining
// row to this package as a [RawAccident].
//
// # Dataset Conventions
//
// Time format:
//
//	"2016-02-08 05:46:00" local wall-clock time of the accident, no zone.
//	Later releases append fractional seconds: "2016-02-08 05:46:00.000000000".
//	Hour, weekday and month are derived from the wall clock as written.
//
// Coordinates:
//
//	Start_Lat / Start_Lng are WGS-84 decimal degrees. End_Lat / End_Lng are
//	mostly empty and are dropped before cleaning.
//
// Road features:
//
//	Thirteen point-of-interest flags ("True" / "False") describe the road
//	layout near the accident: Amenity, Bump, Crossing, Give_Way, Junction,
//	No_Exit, Railway, Roundabout, Station, Stop, Traffic_Calming,
//	Traffic_Signal, Turning_Loop.
//
// Weather:
//
//	Weather_Condition is free text from the nearest airport station
//	("Fair", "Light Rain", "Overcast"). It is counted verbatim.
//
// # Aggregations
//
// Hour counts include only hours present in the data. Weekday and month
// counts follow the canonical Monday..Sunday and January..December order and
// are zero-filled, so a category absent from the sample still appears with a
// count of 0. Road-feature and weather aggregations are sorted by count,
// highest first.
package domain
