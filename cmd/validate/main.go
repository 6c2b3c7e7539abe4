// Command validate runs the load, clean, derive and aggregate stages over
// an accidents CSV and checks the invariants each stage must uphold. It
// renders nothing and exits non-zero when any phase fails.
//
// Usage:
//
//	go run ./cmd/validate -csv data/mock/accidents.csv -max-rows 100000
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/accident-eda/internal/adapter/dataset"
	"github.com/couchcryptid/accident-eda/internal/domain"
	"github.com/couchcryptid/accident-eda/internal/observability"
	"github.com/couchcryptid/accident-eda/internal/pipeline"
)

const (
	sampleSize = 5000
	topWeather = 15
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", "", "path to the accidents CSV")
	maxRows := flag.Int("max-rows", 100000, "maximum data rows to read (0 for all)")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*csvPath, *maxRows))
}

func run(csvPath string, maxRows int) int {
	// Fixed clock so the sample is reproducible between runs.
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2024, time.April, 27, 6, 0, 0, 0, time.UTC)))
	defer domain.SetClock(nil)

	fmt.Println("=== Accident Dataset Validation ===")
	fmt.Println()

	table, err := dataset.ReadTable(csvPath, maxRows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load dataset: %v\n", err)
		return 1
	}
	cleaned, err := table.Clean(dataset.DroppedColumns)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: clean dataset: %v\n", err)
		return 1
	}
	raws, err := cleaned.Records()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read records: %v\n", err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	accidents := pipeline.NewDeriver(logger, observability.NewMetricsForTesting()).Derive(raws)
	rows := domain.RowStats{Loaded: table.Len(), Cleaned: cleaned.Len(), Parsed: len(accidents)}
	rep := domain.BuildReport(csvPath, rows, accidents, domain.ReportOptions{
		TopWeather:   topWeather,
		SampleSize:   sampleSize,
		SampleSeed:   domain.DefaultSeed(),
		HotspotCount: 10,
		HotspotCell:  0.5,
	})

	phases := []*phase{
		validateCleaning(table, cleaned),
		validateTimeFeatures(accidents),
		validateTotals(rep),
		validateOrdering(rep),
		validateSample(rep),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d loaded, %d cleaned, %d parsed\n", rows.Loaded, rows.Cleaned, rows.Parsed)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
			if i == 19 && len(p.errors) > 20 {
				fmt.Printf("  ... %d more\n", len(p.errors)-20)
				break
			}
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func validateCleaning(loaded, cleaned *dataset.Table) *phase {
	p := &phase{name: "Cleaning (dropped columns, missing values)"}
	for _, col := range dataset.DroppedColumns {
		if cleaned.HasColumn(col) {
			p.errorf("column %s survived cleaning", col)
		}
	}
	if n := cleaned.MissingCells(); n != 0 {
		p.errorf("%d missing cells after cleaning", n)
	}
	if cleaned.Len() > loaded.Len() {
		p.errorf("cleaning added rows: %d -> %d", loaded.Len(), cleaned.Len())
	}
	if cleaned.Len() == 0 {
		p.errorf("no complete rows left after cleaning")
	}
	return p
}

func validateTimeFeatures(accidents []domain.Accident) *phase {
	p := &phase{name: "Time features (hour, day, month)"}
	for i := range accidents {
		a := &accidents[i]
		if a.Hour < 0 || a.Hour > 23 {
			p.errorf("%s: hour %d out of range", a.ID, a.Hour)
		}
		if !slices.Contains(domain.Weekdays, a.Day) {
			p.errorf("%s: unknown weekday %d", a.ID, a.Day)
		}
		if a.Month < time.January || a.Month > time.December {
			p.errorf("%s: unknown month %d", a.ID, a.Month)
		}
		if a.Hour != a.StartTime.Hour() || a.Day != a.StartTime.Weekday() || a.Month != a.StartTime.Month() {
			p.errorf("%s: time features disagree with start time %s", a.ID, a.StartTime.Format(time.RFC3339))
		}
	}
	return p
}

func validateTotals(rep *domain.Report) *phase {
	p := &phase{name: "Aggregation totals"}
	want := rep.Rows.Parsed
	var hours int
	for _, h := range rep.ByHour {
		hours += h.Count
	}
	if hours != want {
		p.errorf("hour counts sum to %d, want %d", hours, want)
	}
	if got := domain.Total(rep.ByWeekday); got != want {
		p.errorf("weekday counts sum to %d, want %d", got, want)
	}
	if got := domain.Total(rep.ByMonth); got != want {
		p.errorf("month counts sum to %d, want %d", got, want)
	}
	if len(rep.ByWeekday) != 7 {
		p.errorf("weekday buckets = %d, want 7", len(rep.ByWeekday))
	}
	if len(rep.ByMonth) != 12 {
		p.errorf("month buckets = %d, want 12", len(rep.ByMonth))
	}
	return p
}

func validateOrdering(rep *domain.Report) *phase {
	p := &phase{name: "Ranking (road features, weather)"}
	checkDescending(p, "road features", rep.RoadFeatures)
	checkDescending(p, "weather", rep.Weather)
	if len(rep.RoadFeatures) != len(domain.RoadFeatureColumns) {
		p.errorf("road features = %d, want %d", len(rep.RoadFeatures), len(domain.RoadFeatureColumns))
	}
	if len(rep.Weather) > topWeather {
		p.errorf("weather conditions = %d, want at most %d", len(rep.Weather), topWeather)
	}
	return p
}

func checkDescending(p *phase, name string, buckets []domain.Bucket) {
	for i := 1; i < len(buckets); i++ {
		if buckets[i].Count > buckets[i-1].Count {
			p.errorf("%s not descending at %d: %s=%d after %s=%d",
				name, i, buckets[i].Label, buckets[i].Count, buckets[i-1].Label, buckets[i-1].Count)
		}
	}
}

func validateSample(rep *domain.Report) *phase {
	p := &phase{name: "Map sample"}
	if want := min(sampleSize, rep.Rows.Parsed); len(rep.MapSample) != want {
		p.errorf("sample size = %d, want %d", len(rep.MapSample), want)
	}
	seen := make(map[string]bool, len(rep.MapSample))
	for _, a := range rep.MapSample {
		if seen[a.ID] {
			p.errorf("%s sampled twice", a.ID)
		}
		seen[a.ID] = true
	}
	return p
}
