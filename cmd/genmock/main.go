// Command genmock writes a synthetic US-Accidents CSV fixture. The rows
// follow the real dataset's column layout closely enough for a full
// analysis run, and the same seed always produces the same file.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/accidents.csv -rows 5000 -seed 42
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/couchcryptid/accident-eda/internal/mockdata"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the CSV fixture")
	rows := flag.Int("rows", 5000, "number of data rows to generate")
	seed := flag.Uint64("seed", 42, "random seed")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *rows <= 0 {
		return fmt.Errorf("-rows must be positive, got %d", *rows)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create %s: %w", *out, err)
	}
	defer f.Close()

	records := mockdata.Records(*rows, *seed)
	if err := mockdata.Write(f, records); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", *out, err)
	}
	log.Printf("wrote %d rows to %s (seed %d)", *rows, *out, *seed)

	printStats(records)
	return nil
}

// printStats summarizes the generated rows by state and weather.
func printStats(records [][]string) {
	col := map[string]int{}
	for i, name := range records[0] {
		col[name] = i
	}

	states := map[string]int{}
	weather := map[string]int{}
	var missingWeather int
	for _, r := range records[1:] {
		states[r[col["State"]]]++
		if w := r[col["Weather_Condition"]]; w != "" {
			weather[w]++
		} else {
			missingWeather++
		}
	}

	fmt.Println("\nBy state:")
	printCounts(states)
	fmt.Println("\nBy weather:")
	printCounts(weather)
	fmt.Printf("\nRows without Weather_Condition: %d\n", missingWeather)
}

func printCounts(counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		fmt.Printf("  %-18s %s\n", k, strings.Repeat("#", min(counts[k]/25+1, 40)))
	}
}
